package embedding

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxWordRunes is the longest word WordPiece will try to split; longer words map to the unknown token.
const maxWordRunes = 100

// Encoding holds the model inputs for one sequence, without padding.
type Encoding struct {
	IDs           []int64
	AttentionMask []int64
	TypeIDs       []int64
}

// Len returns the sequence length including special tokens.
func (e Encoding) Len() int {
	return len(e.IDs)
}

// Tokenizer produces token IDs for BERT-style models.
type Tokenizer interface {
	Encode(text string, maxTokens int) Encoding
}

// SpecialTokens names the vocabulary entries used around every sequence.
type SpecialTokens struct {
	CLS string
	SEP string
	Unk string
}

// WordPieceTokenizer implements BERT basic tokenization followed by greedy
// longest-match-first WordPiece.
type WordPieceTokenizer struct {
	vocab     map[string]int64
	clsID     int64
	sepID     int64
	unkID     int64
	unkToken  string
	lowercase bool
}

// LoadVocab reads a vocab.txt file; the token on line N has id N.
func LoadVocab(path string) (map[string]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocab: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	var id int64
	for scanner.Scan() {
		token := strings.TrimRight(scanner.Text(), "\r")
		if _, dup := vocab[token]; !dup {
			vocab[token] = id
		}
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocab: %w", err)
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vocab %s is empty", path)
	}
	return vocab, nil
}

// NewWordPieceTokenizer builds a tokenizer over vocab. Every special token must be present.
func NewWordPieceTokenizer(vocab map[string]int64, special SpecialTokens, lowercase bool) (*WordPieceTokenizer, error) {
	lookup := func(name, token string) (int64, error) {
		id, ok := vocab[token]
		if !ok {
			return 0, fmt.Errorf("%s token %q not in vocab", name, token)
		}
		return id, nil
	}
	t := &WordPieceTokenizer{vocab: vocab, unkToken: special.Unk, lowercase: lowercase}
	var err error
	if t.clsID, err = lookup("cls", special.CLS); err != nil {
		return nil, err
	}
	if t.sepID, err = lookup("sep", special.SEP); err != nil {
		return nil, err
	}
	if t.unkID, err = lookup("unk", special.Unk); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadWordPieceTokenizer loads vocab from path and builds a tokenizer.
func LoadWordPieceTokenizer(path string, special SpecialTokens, lowercase bool) (*WordPieceTokenizer, error) {
	vocab, err := LoadVocab(path)
	if err != nil {
		return nil, err
	}
	return NewWordPieceTokenizer(vocab, special, lowercase)
}

// Encode tokenizes text and wraps it in CLS/SEP, truncating so the whole
// sequence fits in maxTokens.
func (t *WordPieceTokenizer) Encode(text string, maxTokens int) Encoding {
	if maxTokens < 3 {
		maxTokens = 3
	}
	ids := t.ids(text)
	if len(ids) > maxTokens-2 {
		ids = ids[:maxTokens-2]
	}

	n := len(ids) + 2
	enc := Encoding{
		IDs:           make([]int64, 0, n),
		AttentionMask: make([]int64, n),
		TypeIDs:       make([]int64, n),
	}
	enc.IDs = append(enc.IDs, t.clsID)
	enc.IDs = append(enc.IDs, ids...)
	enc.IDs = append(enc.IDs, t.sepID)
	for i := range enc.AttentionMask {
		enc.AttentionMask[i] = 1
	}
	return enc
}

// Tokens returns the WordPiece tokens for text without special tokens.
func (t *WordPieceTokenizer) Tokens(text string) []string {
	var out []string
	for _, word := range t.basicTokens(text) {
		out = append(out, t.wordPieces(word)...)
	}
	return out
}

func (t *WordPieceTokenizer) ids(text string) []int64 {
	tokens := t.Tokens(text)
	ids := make([]int64, len(tokens))
	for i, tok := range tokens {
		if id, ok := t.vocab[tok]; ok {
			ids[i] = id
		} else {
			ids[i] = t.unkID
		}
	}
	return ids
}

// basicTokens cleans text, isolates CJK characters and punctuation, and
// optionally lowercases and strips accents.
func (t *WordPieceTokenizer) basicTokens(text string) []string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == 0 || r == unicode.ReplacementChar || isControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case isCJK(r):
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	var tokens []string
	for _, word := range strings.Fields(b.String()) {
		if t.lowercase {
			word = stripAccents(strings.ToLower(word))
		}
		tokens = append(tokens, splitPunctuation(word)...)
	}
	return tokens
}

func (t *WordPieceTokenizer) wordPieces(word string) []string {
	runes := []rune(word)
	if len(runes) > maxWordRunes {
		return []string{t.unkToken}
	}
	var pieces []string
	start := 0
	for start < len(runes) {
		end := len(runes)
		found := ""
		for start < end {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if _, ok := t.vocab[sub]; ok {
				found = sub
				break
			}
			end--
		}
		if found == "" {
			return []string{t.unkToken}
		}
		pieces = append(pieces, found)
		start = end
	}
	return pieces
}

func stripAccents(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func splitPunctuation(word string) []string {
	var out []string
	var cur []rune
	for _, r := range word {
		if isPunctuation(r) {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
			out = append(out, string(r))
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// isPunctuation treats all non-alphanumeric ASCII as punctuation, as BERT does.
func isPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r) || unicode.In(r, unicode.Cf)
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x2A700 && r <= 0x2B73F) ||
		(r >= 0x2B740 && r <= 0x2B81F) ||
		(r >= 0x2B820 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}

// HashString returns a deterministic non-negative hash of s.
func HashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
