package fixers

import (
	"fmt"
	"regexp"
	"strings"

	m "csrules.dev/pkg/csrules/internal/model"
)

// VariableCaseName is the rule name used in rule sets.
const VariableCaseName = NamePrefix + "variable_case"

// Casing modes accepted by the `case` option.
const (
	CamelCase = "camel_case"
	SnakeCase = "snake_case"
)

const optionCase = "case"

// Variables that belong to the runtime and keep their spelling.
var reservedVariables = map[string]struct{}{
	"$this":     {},
	"$GLOBALS":  {},
	"$_SERVER":  {},
	"$_GET":     {},
	"$_POST":    {},
	"$_FILES":   {},
	"$_COOKIE":  {},
	"$_SESSION": {},
	"$_REQUEST": {},
	"$_ENV":     {},
}

var (
	leadingUnderscores = regexp.MustCompile(`^\$?_*`)
	wordSeparators     = regexp.MustCompile(`[$_]`)
	letterDigit        = regexp.MustCompile(`(?i)([a-z]+)([0-9]+)`)
	lowerUpper         = regexp.MustCompile(`([a-z]+)([A-Z]+)`)
	digitLetter        = regexp.MustCompile(`(?i)([0-9]+)([a-z]+)`)
)

// VariableCase renames every variable to camelCase or snake_case.
type VariableCase struct {
	mode string
}

// NewVariableCase returns the rule in camel_case mode.
func NewVariableCase() *VariableCase {
	return &VariableCase{mode: CamelCase}
}

// Name implements Fixer.
func (f *VariableCase) Name() string {
	return VariableCaseName
}

// Definition implements Fixer.
func (f *VariableCase) Definition() Definition {
	return Definition{
		Summary:          "Enforce camel (or snake) case for variable names, following configuration.",
		RiskyDescription: "Risky because it cannot detect a change that will have an impact in other files.",
		Samples: []CodeSample{
			{Code: "<?php $my_variable = 2;\n"},
			{Code: "<?php $myVariable = 2;\n", Options: map[string]any{optionCase: SnakeCase}},
		},
	}
}

// IsRisky reports true: renaming cannot follow dynamic or cross-file references.
func (f *VariableCase) IsRisky() bool {
	return true
}

// Priority implements Fixer.
func (f *VariableCase) Priority() int {
	return 0
}

// Options implements Fixer.
func (f *VariableCase) Options() []OptionSpec {
	return []OptionSpec{
		{
			Name:        optionCase,
			Description: "Apply `camel_case` or `snake_case` to variables.",
			Allowed:     []any{CamelCase, SnakeCase},
			Default:     CamelCase,
		},
	}
}

// Configure implements Fixer.
func (f *VariableCase) Configure(options map[string]any) error {
	resolved, err := ResolveOptions(f.Name(), f.Options(), options)
	if err != nil {
		return err
	}

	mode, ok := resolved[optionCase].(string)
	if !ok {
		return fmt.Errorf("%w: [%s] option %q must be a string", ErrInvalidConfiguration, f.Name(), optionCase)
	}

	f.mode = mode

	return nil
}

// Mode returns the configured casing mode.
func (f *VariableCase) Mode() string {
	return f.mode
}

// IsCandidate implements Fixer.
func (f *VariableCase) IsCandidate(tokens *m.Tokens) bool {
	return tokens.IsAnyKindFound(m.KindVariable, m.KindStringVarname)
}

// Fix rewrites variable and interpolated variable-name tokens in place.
func (f *VariableCase) Fix(tokens *m.Tokens) {
	for i := 0; i < tokens.Len(); i++ {
		tok := tokens.At(i)
		if !tok.IsVariableLike() {
			continue
		}

		if _, reserved := reservedVariables[variableName(tok)]; reserved {
			continue
		}

		renamed := f.rename(tok.Text)
		if renamed != tok.Text {
			tokens.Set(i, m.Token{Kind: tok.Kind, Text: renamed})
		}
	}
}

func (f *VariableCase) rename(name string) string {
	if f.mode == SnakeCase {
		return ToSnakeCase(name)
	}

	return ToCamelCase(name)
}

func variableName(tok m.Token) string {
	if tok.Kind == m.KindStringVarname {
		return "$" + tok.Text
	}

	return tok.Text
}

// ToCamelCase converts a variable name to camelCase. A leading `$` and any
// leading underscores are kept; runs of underscores collapse to one word
// boundary.
func ToCamelCase(name string) string {
	lead := leadingUnderscores.FindString(name)

	words := strings.TrimSpace(wordSeparators.ReplaceAllString(name, " "))
	words = upperWords(words)
	words = strings.ReplaceAll(words, " ", "")

	return lead + lowerFirst(words)
}

// ToSnakeCase converts a variable name to snake_case, splitting letter/digit
// and lower/upper boundaries.
func ToSnakeCase(name string) string {
	name = letterDigit.ReplaceAllString(name, "${1}_${2}")
	name = lowerUpper.ReplaceAllString(name, "${1}_${2}")
	name = digitLetter.ReplaceAllString(name, "${1}_${2}")

	return asciiLower(name)
}

// upperWords uppercases the first ASCII letter of every space-separated word.
func upperWords(s string) string {
	b := []byte(s)

	for i := range b {
		if (i == 0 || b[i-1] == ' ') && b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}

	return string(b)
}

func asciiLower(s string) string {
	b := []byte(s)

	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}

	return string(b)
}

func lowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}

	return string(s[0]+('a'-'A')) + s[1:]
}
