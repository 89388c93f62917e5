package fixers

import (
	"strings"

	m "csrules.dev/pkg/csrules/internal/model"
)

// lineIndentation returns the leading spaces and tabs of the line on which
// the token at index sits.
func lineIndentation(tokens *m.Tokens, index int) string {
	start := 0
	head := ""

	for j := index - 1; j >= 0; j-- {
		text := tokens.At(j).Text
		if nl := strings.LastIndex(text, "\n"); nl >= 0 {
			start = j + 1
			head = text[nl+1:]

			break
		}
	}

	var line strings.Builder

	line.WriteString(head)

	for j := start; j < index && isBlank(line.String()); j++ {
		line.WriteString(tokens.At(j).Text)
	}

	return leadingBlank(line.String())
}

func leadingBlank(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func isBlank(s string) bool {
	return strings.TrimLeft(s, " \t") == ""
}

// rebaseIndentation moves the continuation lines found in whitespace tokens
// strictly between from and to from indentation oldIndent onto newIndent.
// Lines indented less than oldIndent are left untouched.
func rebaseIndentation(tokens *m.Tokens, from, to int, oldIndent, newIndent string) {
	if oldIndent == newIndent {
		return
	}

	for j := from + 1; j < to && j < tokens.Len(); j++ {
		tok := tokens.At(j)
		if !tok.IsWhitespace() || !tok.HasNewline() {
			continue
		}

		nl := strings.LastIndex(tok.Text, "\n")
		indent := tok.Text[nl+1:]

		if !strings.HasPrefix(indent, oldIndent) {
			continue
		}

		tokens.Set(j, m.NewWhitespace(tok.Text[:nl+1]+newIndent+indent[len(oldIndent):]))
	}
}
