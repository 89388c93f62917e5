// Package model defines the data structures shared by the tokenizer, the
// fixers and the fix workflow.
package model

import "strings"

// Kind represents the lexical category of a token.
type Kind uint8

const (
	// KindInlineHTML is text outside of PHP tags.
	KindInlineHTML Kind = iota
	// KindOpenTag is `<?php` or `<?=` including one trailing whitespace character.
	KindOpenTag
	// KindCloseTag is `?>` including one trailing newline.
	KindCloseTag
	// KindWhitespace is a run of spaces, tabs and line breaks.
	KindWhitespace
	// KindComment is a `//`, `#` or `/* */` comment.
	KindComment
	// KindDocComment is a `/** */` comment.
	KindDocComment
	// KindVariable is `$name`.
	KindVariable
	// KindStringVarname is the bare name in `"${name}"` interpolation.
	KindStringVarname
	// KindIdentifier is a class, function, constant or property name.
	KindIdentifier
	// KindKeyword is a reserved word such as `throw`, `return` or `match`.
	KindKeyword
	// KindNumber is an integer or float literal.
	KindNumber
	// KindConstantString is a string literal without interpolation.
	KindConstantString
	// KindEncapsedString is a literal fragment of an interpolated string.
	KindEncapsedString
	// KindQuote is the delimiter of an interpolated string (`"` or backtick).
	KindQuote
	// KindStartHeredoc is `<<<LABEL` plus its line break.
	KindStartHeredoc
	// KindEndHeredoc is the closing heredoc label, indentation included.
	KindEndHeredoc
	// KindCurlyOpen is the `{` of `{$expr}` interpolation.
	KindCurlyOpen
	// KindDollarOpenCurly is the `${` of `${expr}` interpolation.
	KindDollarOpenCurly
	// KindOperator is any operator, including `?`, `:` and `??`.
	KindOperator
	// KindPunct is one of `( ) [ ] { } ; ,` or the attribute opener `#[`.
	KindPunct
)

var kindNames = map[Kind]string{
	KindInlineHTML:      "inline_html",
	KindOpenTag:         "open_tag",
	KindCloseTag:        "close_tag",
	KindWhitespace:      "whitespace",
	KindComment:         "comment",
	KindDocComment:      "doc_comment",
	KindVariable:        "variable",
	KindStringVarname:   "string_varname",
	KindIdentifier:      "identifier",
	KindKeyword:         "keyword",
	KindNumber:          "number",
	KindConstantString:  "constant_string",
	KindEncapsedString:  "encapsed_string",
	KindQuote:           "quote",
	KindStartHeredoc:    "start_heredoc",
	KindEndHeredoc:      "end_heredoc",
	KindCurlyOpen:       "curly_open",
	KindDollarOpenCurly: "dollar_open_curly",
	KindOperator:        "operator",
	KindPunct:           "punct",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Token is a single lexical unit of a PHP source file.
type Token struct {
	Kind Kind
	Text string
}

// NewWhitespace builds a whitespace token.
func NewWhitespace(text string) Token {
	return Token{Kind: KindWhitespace, Text: text}
}

// IsWhitespace reports whether the token is a whitespace run.
func (t Token) IsWhitespace() bool {
	return t.Kind == KindWhitespace
}

// IsComment reports whether the token is a comment or a doc comment.
func (t Token) IsComment() bool {
	return t.Kind == KindComment || t.Kind == KindDocComment
}

// IsMeaningful reports whether the token is neither whitespace nor a comment.
func (t Token) IsMeaningful() bool {
	return !t.IsWhitespace() && !t.IsComment()
}

// Equals reports whether the token is an operator or punctuation with the given text.
func (t Token) Equals(text string) bool {
	return (t.Kind == KindOperator || t.Kind == KindPunct) && t.Text == text
}

// IsKeyword reports whether the token is the given reserved word. PHP keywords
// are case-insensitive.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == KindKeyword && strings.EqualFold(t.Text, word)
}

// IsVariableLike reports whether the token names a variable, either directly
// or inside `${name}` interpolation.
func (t Token) IsVariableLike() bool {
	return t.Kind == KindVariable || t.Kind == KindStringVarname
}

// HasNewline reports whether the token text contains a line break.
func (t Token) HasNewline() bool {
	return strings.Contains(t.Text, "\n")
}

// IsBlockOpener reports whether the token opens a bracket pair.
func (t Token) IsBlockOpener() bool {
	switch t.Kind {
	case KindCurlyOpen, KindDollarOpenCurly:
		return true
	case KindPunct:
		return t.Text == "(" || t.Text == "[" || t.Text == "{" || t.Text == "#["
	}

	return false
}

// IsBlockCloser reports whether the token closes a bracket pair.
func (t Token) IsBlockCloser() bool {
	return t.Kind == KindPunct && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// IsCurlyOpener reports whether the token opens a curly-brace pair, including
// the interpolation forms `{$` and `${`.
func (t Token) IsCurlyOpener() bool {
	return t.Kind == KindCurlyOpen || t.Kind == KindDollarOpenCurly || t.Equals("{")
}
