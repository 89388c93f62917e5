package fixers

import (
	m "csrules.dev/pkg/csrules/internal/model"
)

type bracketFamily int

const (
	familyNone bracketFamily = iota
	familyParen
	familySquare
	familyCurly
	familyCount
)

// nesting tracks open bracket pairs per family during a scan.
type nesting [familyCount]int

func (n *nesting) topLevel() bool {
	for _, depth := range n {
		if depth != 0 {
			return false
		}
	}

	return true
}

func familyOf(tok m.Token) bracketFamily {
	switch {
	case tok.IsCurlyOpener(), tok.Equals("}"):
		return familyCurly
	case tok.Equals("("), tok.Equals(")"):
		return familyParen
	case tok.Equals("["), tok.Equals("#["), tok.Equals("]"):
		return familySquare
	}

	return familyNone
}

// isHardBoundary reports tokens that end a statement at any nesting level.
func isHardBoundary(tok m.Token) bool {
	return tok.Kind == m.KindOpenTag || tok.Kind == m.KindCloseTag
}

// isSoftBoundary reports separators that end a statement or expression only
// outside of nested brackets.
func isSoftBoundary(tok m.Token) bool {
	return tok.Equals(";") || tok.Equals(",") || tok.Equals("=>")
}

// FindStatementStart returns the index of the first meaningful token of the
// statement or expression that contains index. The scan stops at an open or
// close tag, a top-level `;`, `,`, `=>` or statement-block `}`, or an opener
// that encloses index. Expression blocks such as `$obj->{$name}` or a one-line
// `match` are skipped. It returns 0 when no boundary exists.
func FindStatementStart(tokens *m.Tokens, index int) int {
	var depth nesting

	for j := index - 1; j >= 0; j-- {
		tok := tokens.At(j)

		if isHardBoundary(tok) {
			return startAfter(tokens, j, index)
		}

		family := familyOf(tok)

		switch {
		case tok.IsBlockCloser():
			if tok.Equals("}") && depth.topLevel() {
				open := tokens.FindBlockStart(j)
				if open < 0 || !closesExpression(tokens, j, index) {
					return startAfter(tokens, j, index)
				}

				j = open

				continue
			}

			depth[family]++
		case tok.IsBlockOpener():
			if depth[family] == 0 {
				return startAfter(tokens, j, index)
			}

			depth[family]--
		case isSoftBoundary(tok) && depth.topLevel():
			return startAfter(tokens, j, index)
		}
	}

	return 0
}

// prefixOperators may begin a new statement right after a block.
var prefixOperators = map[string]bool{
	"!": true, "-": true, "+": true, "++": true, "--": true,
	"@": true, "~": true, "&": true, "\\": true, "$": true,
}

// closesExpression reports whether the `}` at closer ends an expression
// block: the code that follows it up to index continues with an operator.
func closesExpression(tokens *m.Tokens, closer, index int) bool {
	next := tokens.NextMeaningful(closer)
	if next < 0 || next > index {
		return false
	}

	tok := tokens.At(next)

	return tok.Kind == m.KindOperator && !prefixOperators[tok.Text]
}

func startAfter(tokens *m.Tokens, boundary, index int) int {
	next := tokens.NextMeaningful(boundary)
	if next < 0 || next > index {
		return index
	}

	return next
}

// FindStatementEnd returns the index of the token that terminates the
// statement or expression containing index, or the token count when the
// statement runs to the end of the buffer. The rules mirror FindStatementStart.
func FindStatementEnd(tokens *m.Tokens, index int) int {
	var depth nesting

	for j := index + 1; j < tokens.Len(); j++ {
		tok := tokens.At(j)

		if isHardBoundary(tok) {
			return j
		}

		family := familyOf(tok)

		switch {
		case tok.IsBlockOpener():
			if tok.IsCurlyOpener() && depth.topLevel() {
				return j
			}

			depth[family]++
		case tok.IsBlockCloser():
			if depth[family] == 0 {
				return j
			}

			depth[family]--
		case isSoftBoundary(tok) && depth.topLevel():
			return j
		}
	}

	return tokens.Len()
}
