package fixers

import (
	"regexp"
	"strings"

	m "csrules.dev/pkg/csrules/internal/model"
)

// PhpdocSimplifyArrayKeyName is the rule name used in rule sets.
const PhpdocSimplifyArrayKeyName = NamePrefix + "phpdoc_simplify_array_key"

var (
	docTypeTag = regexp.MustCompile(`@(?:param|return|var|property-read|property-write|property|method|throws|type)[\t\f\r ]+`)
	// Horizontal whitespace only: a type broken across lines is left alone.
	defaultArrayKey = regexp.MustCompile(`\barray<[^\S\n]*(?:array-key|int[^\S\n]*\|[^\S\n]*string|string[^\S\n]*\|[^\S\n]*int)[^\S\n]*,[^\S\n]*`)
)

// PhpdocSimplifyArrayKey rewrites `array<array-key, T>` and its `int|string`
// spellings to `array<T>` in PHPDoc types.
type PhpdocSimplifyArrayKey struct{}

// NewPhpdocSimplifyArrayKey returns the rule.
func NewPhpdocSimplifyArrayKey() *PhpdocSimplifyArrayKey {
	return &PhpdocSimplifyArrayKey{}
}

// Name implements Fixer.
func (f *PhpdocSimplifyArrayKey) Name() string {
	return PhpdocSimplifyArrayKeyName
}

// Definition implements Fixer.
func (f *PhpdocSimplifyArrayKey) Definition() Definition {
	return Definition{
		Summary: "PHPDoc `array<T>` should be used instead of `array<array-key, T>`.",
		Samples: []CodeSample{
			{Code: "<?php\n/**\n * @param array<array-key, string> $x\n * @param array<string|int, Foo> $y\n * @return array<int|string, Foo>\n */\n"},
		},
	}
}

// IsRisky implements Fixer.
func (f *PhpdocSimplifyArrayKey) IsRisky() bool {
	return false
}

// Priority implements Fixer.
func (f *PhpdocSimplifyArrayKey) Priority() int {
	return 0
}

// Options implements Fixer.
func (f *PhpdocSimplifyArrayKey) Options() []OptionSpec {
	return nil
}

// Configure accepts only an empty option set.
func (f *PhpdocSimplifyArrayKey) Configure(options map[string]any) error {
	_, err := ResolveOptions(f.Name(), f.Options(), options)

	return err
}

// IsCandidate implements Fixer.
func (f *PhpdocSimplifyArrayKey) IsCandidate(tokens *m.Tokens) bool {
	return tokens.IsKindFound(m.KindDocComment)
}

// Fix implements Fixer.
func (f *PhpdocSimplifyArrayKey) Fix(tokens *m.Tokens) {
	for i := 0; i < tokens.Len(); i++ {
		tok := tokens.At(i)
		if tok.Kind != m.KindDocComment {
			continue
		}

		if fixed := SimplifyDocArrayKeys(tok.Text); fixed != tok.Text {
			tokens.Set(i, m.Token{Kind: m.KindDocComment, Text: fixed})
		}
	}
}

// SimplifyDocArrayKeys applies the rewrite to the type of every typed tag in
// a doc comment.
func SimplifyDocArrayKeys(doc string) string {
	var out strings.Builder

	last := 0

	for _, loc := range docTypeTag.FindAllStringIndex(doc, -1) {
		start := loc[1]
		if start < last {
			continue
		}

		end := typeEnd(doc, start)

		out.WriteString(doc[last:start])
		out.WriteString(defaultArrayKey.ReplaceAllString(doc[start:end], "array<"))

		last = end
	}

	if last == 0 {
		return doc
	}

	out.WriteString(doc[last:])

	return out.String()
}

// typeEnd returns the end offset of the type expression starting at start:
// the first whitespace outside of brackets, a line break, or the comment end.
// Whitespace around the `:` of a callable return type stays inside the type.
func typeEnd(doc string, start int) int {
	depth := 0

	for i := start; i < len(doc); i++ {
		switch c := doc[i]; c {
		case '<', '(', '[', '{':
			depth++
		case '>', ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '\n':
			return i
		case ' ', '\t', '\r', '\f':
			if depth == 0 && !inCallableReturn(doc[start:i], doc[i:]) {
				return i
			}
		case '*':
			if strings.HasPrefix(doc[i:], "*/") {
				return i
			}
		}
	}

	return len(doc)
}

// inCallableReturn reports whether the whitespace between before and after
// separates `callable(...)` from its `: ReturnType`.
func inCallableReturn(before, after string) bool {
	const space = " \t\r\f"

	before = strings.TrimRight(before, space)
	if rest, ok := strings.CutSuffix(before, ":"); ok {
		return strings.HasSuffix(strings.TrimRight(rest, space), ")")
	}

	return strings.HasSuffix(before, ")") && strings.HasPrefix(strings.TrimLeft(after, space), ":")
}
