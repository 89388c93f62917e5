package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// $a = foo($b[1]);
func sampleTokens() *Tokens {
	return NewTokens([]Token{
		{Kind: KindOpenTag, Text: "<?php\n"},
		{Kind: KindVariable, Text: "$a"},
		NewWhitespace(" "),
		{Kind: KindOperator, Text: "="},
		NewWhitespace(" "),
		{Kind: KindIdentifier, Text: "foo"},
		{Kind: KindPunct, Text: "("},
		{Kind: KindVariable, Text: "$b"},
		{Kind: KindPunct, Text: "["},
		{Kind: KindNumber, Text: "1"},
		{Kind: KindPunct, Text: "]"},
		{Kind: KindPunct, Text: ")"},
		{Kind: KindComment, Text: "/* c */"},
		{Kind: KindPunct, Text: ";"},
	})
}

func TestTokens_Code(t *testing.T) {
	assert.Equal(t, "<?php\n$a = foo($b[1])/* c */;", sampleTokens().Code())
}

func TestTokens_MeaningfulLookup(t *testing.T) {
	ts := sampleTokens()

	assert.Equal(t, 1, ts.PrevMeaningful(3))
	assert.Equal(t, 5, ts.NextMeaningful(3))
	assert.Equal(t, 11, ts.PrevMeaningful(13), "comment is skipped")
	assert.Equal(t, -1, ts.PrevMeaningful(0))
	assert.Equal(t, -1, ts.NextMeaningful(13))
}

func TestTokens_BlockLookup(t *testing.T) {
	ts := sampleTokens()

	assert.Equal(t, 11, ts.FindBlockEnd(6))
	assert.Equal(t, 10, ts.FindBlockEnd(8))
	assert.Equal(t, 6, ts.FindBlockStart(11))
	assert.Equal(t, 8, ts.FindBlockStart(10))
	assert.Equal(t, -1, ts.FindBlockEnd(1), "not an opener")
	assert.Equal(t, -1, ts.FindBlockStart(1), "not a closer")
}

func TestTokens_InsertAt(t *testing.T) {
	ts := sampleTokens()
	ts.InsertAt(13, NewWhitespace("\n"))

	require.Equal(t, 15, ts.Len())
	assert.Equal(t, "<?php\n$a = foo($b[1])/* c */\n;", ts.Code())
	assert.True(t, ts.At(14).Equals(";"))
}

func TestTokens_CloneIsIndependent(t *testing.T) {
	ts := sampleTokens()
	clone := ts.Clone()
	clone.Set(1, Token{Kind: KindVariable, Text: "$z"})

	assert.Equal(t, "$a", ts.At(1).Text)
	assert.Equal(t, "$z", clone.At(1).Text)
}

func TestTokens_KindQueries(t *testing.T) {
	ts := sampleTokens()

	assert.True(t, ts.IsKindFound(KindVariable))
	assert.False(t, ts.IsKindFound(KindDocComment))
	assert.True(t, ts.IsAnyKindFound(KindDocComment, KindComment))
	assert.False(t, ts.IsKeywordFound("throw"))
}

func TestTokens_HasNewlineBetween(t *testing.T) {
	ts := sampleTokens()
	assert.False(t, ts.HasNewlineBetween(1, 13))

	ts.Set(4, NewWhitespace("\n    "))
	assert.True(t, ts.HasNewlineBetween(1, 13))
	assert.False(t, ts.HasNewlineBetween(0, 1), "open tag newline is not whitespace")
}

func TestToken_Predicates(t *testing.T) {
	assert.True(t, Token{Kind: KindKeyword, Text: "THROW"}.IsKeyword("throw"))
	assert.False(t, Token{Kind: KindIdentifier, Text: "throw"}.IsKeyword("throw"))
	assert.True(t, Token{Kind: KindOperator, Text: "??"}.Equals("??"))
	assert.False(t, Token{Kind: KindConstantString, Text: "??"}.Equals("??"))
	assert.True(t, Token{Kind: KindCurlyOpen, Text: "{"}.IsCurlyOpener())
	assert.True(t, Token{Kind: KindDollarOpenCurly, Text: "${"}.IsBlockOpener())
	assert.True(t, Token{Kind: KindStringVarname, Text: "name"}.IsVariableLike())
	assert.False(t, Token{Kind: KindDocComment, Text: "/** x */"}.IsMeaningful())
	assert.Equal(t, "variable", KindVariable.String())
}

func TestNewWhitespacesConfig_Basic(t *testing.T) {
	cfg, err := NewWhitespacesConfig("  ", "\r\n")
	require.NoError(t, err)
	assert.Equal(t, WhitespacesConfig{Indent: "  ", LineEnding: "\r\n"}, cfg)

	_, err = NewWhitespacesConfig("\t", "\n")
	require.NoError(t, err)

	for _, tc := range []struct{ indent, eol string }{
		{"", "\n"},
		{" \t", "\n"},
		{"x", "\n"},
		{"    ", "\r"},
	} {
		_, err := NewWhitespacesConfig(tc.indent, tc.eol)
		require.ErrorIs(t, err, ErrInvalidWhitespace, "indent %q eol %q", tc.indent, tc.eol)
	}
}

func TestFixStatus_StringAndChanged(t *testing.T) {
	assert.Equal(t, "fixed", StatusFixed.String())
	assert.Equal(t, "cached", StatusCached.String())
	assert.Equal(t, "unknown", FixStatus(99).String())
	assert.True(t, FixResult{Status: StatusFixed}.Changed())
	assert.False(t, FixResult{Status: StatusUnchanged}.Changed())
}
