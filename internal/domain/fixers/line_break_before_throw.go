package fixers

import (
	m "csrules.dev/pkg/csrules/internal/model"
)

// LineBreakBeforeThrowExpressionName is the rule name used in rule sets.
const LineBreakBeforeThrowExpressionName = NamePrefix + "line_break_before_throw_expression"

// LineBreakBeforeThrowExpression puts `?? throw` and `?: throw` on their own
// line, indented one level past the statement they guard.
type LineBreakBeforeThrowExpression struct {
	whitespaces m.WhitespacesConfig
}

// NewLineBreakBeforeThrowExpression returns the rule with default whitespace settings.
func NewLineBreakBeforeThrowExpression() *LineBreakBeforeThrowExpression {
	return &LineBreakBeforeThrowExpression{whitespaces: m.DefaultWhitespacesConfig()}
}

// Name implements Fixer.
func (f *LineBreakBeforeThrowExpression) Name() string {
	return LineBreakBeforeThrowExpressionName
}

// Definition implements Fixer.
func (f *LineBreakBeforeThrowExpression) Definition() Definition {
	return Definition{
		Summary: "Coalesce or elvis throw expressions (`?? throw`, `?: throw`) must be on their own line.",
		Samples: []CodeSample{
			{Code: "<?php\n$result = $this->fetchNullable() ?? throw new \\RuntimeException('message');\n"},
		},
	}
}

// IsRisky implements Fixer.
func (f *LineBreakBeforeThrowExpression) IsRisky() bool {
	return false
}

// Priority runs the rule before operator line-break rules at priority 0.
func (f *LineBreakBeforeThrowExpression) Priority() int {
	return 1
}

// Options implements Fixer.
func (f *LineBreakBeforeThrowExpression) Options() []OptionSpec {
	return nil
}

// Configure accepts only an empty option set.
func (f *LineBreakBeforeThrowExpression) Configure(options map[string]any) error {
	_, err := ResolveOptions(f.Name(), f.Options(), options)

	return err
}

// SetWhitespacesConfig implements WhitespacesAware.
func (f *LineBreakBeforeThrowExpression) SetWhitespacesConfig(cfg m.WhitespacesConfig) {
	f.whitespaces = cfg
}

// IsCandidate implements Fixer.
func (f *LineBreakBeforeThrowExpression) IsCandidate(tokens *m.Tokens) bool {
	return tokens.IsKeywordFound("throw")
}

// Fix scans back to front so insertions never shift unvisited indices.
func (f *LineBreakBeforeThrowExpression) Fix(tokens *m.Tokens) {
	for index := tokens.Len() - 1; index > 0; index-- {
		if !tokens.At(index).IsKeyword("throw") {
			continue
		}

		operator := precedingThrowOperator(tokens, index)
		if operator < 0 {
			continue
		}

		f.breakBeforeOperator(tokens, operator)
	}
}

// precedingThrowOperator returns the index of the `??` or of the `?` of `?:`
// directly before the throw keyword, or -1.
func precedingThrowOperator(tokens *m.Tokens, throwIndex int) int {
	prev := tokens.PrevMeaningful(throwIndex)
	if prev < 0 {
		return -1
	}

	if tokens.At(prev).Equals("??") {
		return prev
	}

	if tokens.At(prev).Equals(":") {
		question := tokens.PrevMeaningful(prev)
		if question >= 0 && tokens.At(question).Equals("?") {
			return question
		}
	}

	return -1
}

func (f *LineBreakBeforeThrowExpression) breakBeforeOperator(tokens *m.Tokens, operator int) {
	operand := tokens.PrevMeaningful(operator)
	if operand < 0 {
		return
	}

	if spansLines(tokens, operand) {
		return
	}

	start := FindStatementStart(tokens, operator)

	var indentation string
	if tokens.HasNewlineBetween(start, operand) {
		indentation = lineIndentation(tokens, operand)
	} else {
		indentation = lineIndentation(tokens, start) + f.whitespaces.Indent
	}

	want := f.whitespaces.LineEnding + indentation
	oldIndentation := lineIndentation(tokens, operator)

	before := tokens.At(operator - 1)

	switch {
	case before.IsWhitespace() && before.Text == want:
		return
	case before.IsWhitespace():
		tokens.Set(operator-1, m.NewWhitespace(want))
	default:
		tokens.InsertAt(operator, m.NewWhitespace(want))
		operator++
	}

	rebaseIndentation(tokens, operator, FindStatementEnd(tokens, operator), oldIndentation, indentation)
}

// spansLines reports whether the token at index closes a `)` or `}` block
// whose opener sits on an earlier line.
func spansLines(tokens *m.Tokens, index int) bool {
	tok := tokens.At(index)
	if !tok.Equals(")") && !tok.Equals("}") {
		return false
	}

	open := tokens.FindBlockStart(index)
	if open < 0 {
		return false
	}

	return tokens.HasNewlineBetween(open, index)
}
