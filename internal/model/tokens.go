package model

import "strings"

// Tokens is the mutable, index-addressable token sequence of one source file.
// Insertions shift every later index by the number of inserted tokens.
type Tokens struct {
	items []Token
}

// NewTokens wraps the given tokens in a buffer.
func NewTokens(items []Token) *Tokens {
	return &Tokens{items: items}
}

// Len returns the number of tokens.
func (ts *Tokens) Len() int {
	return len(ts.items)
}

// At returns the token at index i.
func (ts *Tokens) At(i int) Token {
	return ts.items[i]
}

// Set replaces the token at index i.
func (ts *Tokens) Set(i int, tok Token) {
	ts.items[i] = tok
}

// InsertAt inserts tokens before index i.
func (ts *Tokens) InsertAt(i int, toks ...Token) {
	ts.items = append(ts.items[:i], append(append([]Token(nil), toks...), ts.items[i:]...)...)
}

// Slice returns a copy of the underlying tokens.
func (ts *Tokens) Slice() []Token {
	out := make([]Token, len(ts.items))
	copy(out, ts.items)

	return out
}

// Clone returns an independent copy of the buffer.
func (ts *Tokens) Clone() *Tokens {
	return NewTokens(ts.Slice())
}

// Code renders the buffer back to source text.
func (ts *Tokens) Code() string {
	var b strings.Builder

	for _, tok := range ts.items {
		b.WriteString(tok.Text)
	}

	return b.String()
}

// IsKindFound reports whether any token has the given kind.
func (ts *Tokens) IsKindFound(kind Kind) bool {
	return ts.IsAnyKindFound(kind)
}

// IsAnyKindFound reports whether any token has one of the given kinds.
func (ts *Tokens) IsAnyKindFound(kinds ...Kind) bool {
	for _, tok := range ts.items {
		for _, kind := range kinds {
			if tok.Kind == kind {
				return true
			}
		}
	}

	return false
}

// IsKeywordFound reports whether the given keyword appears anywhere.
func (ts *Tokens) IsKeywordFound(word string) bool {
	for _, tok := range ts.items {
		if tok.IsKeyword(word) {
			return true
		}
	}

	return false
}

// PrevMeaningful returns the index of the nearest meaningful token before i,
// or -1 when there is none.
func (ts *Tokens) PrevMeaningful(i int) int {
	for j := i - 1; j >= 0; j-- {
		if ts.items[j].IsMeaningful() {
			return j
		}
	}

	return -1
}

// NextMeaningful returns the index of the nearest meaningful token after i,
// or -1 when there is none.
func (ts *Tokens) NextMeaningful(i int) int {
	for j := i + 1; j < len(ts.items); j++ {
		if ts.items[j].IsMeaningful() {
			return j
		}
	}

	return -1
}

// FindBlockEnd returns the index of the token closing the bracket opened at
// index i, or -1 when i is not an opener or the pair is unbalanced.
func (ts *Tokens) FindBlockEnd(i int) int {
	if i < 0 || i >= len(ts.items) || !ts.items[i].IsBlockOpener() {
		return -1
	}

	depth := 0

	for j := i; j < len(ts.items); j++ {
		tok := ts.items[j]

		switch {
		case tok.IsBlockOpener():
			depth++
		case tok.IsBlockCloser():
			depth--
			if depth == 0 {
				return j
			}
		}
	}

	return -1
}

// FindBlockStart returns the index of the token opening the bracket closed at
// index i, or -1 when i is not a closer or the pair is unbalanced.
func (ts *Tokens) FindBlockStart(i int) int {
	if i < 0 || i >= len(ts.items) || !ts.items[i].IsBlockCloser() {
		return -1
	}

	depth := 0

	for j := i; j >= 0; j-- {
		tok := ts.items[j]

		switch {
		case tok.IsBlockCloser():
			depth++
		case tok.IsBlockOpener():
			depth--
			if depth == 0 {
				return j
			}
		}
	}

	return -1
}

// HasNewlineBetween reports whether any whitespace token strictly between
// start and end contains a line break.
func (ts *Tokens) HasNewlineBetween(start, end int) bool {
	for j := start + 1; j < end && j < len(ts.items); j++ {
		if ts.items[j].IsWhitespace() && ts.items[j].HasNewline() {
			return true
		}
	}

	return false
}
