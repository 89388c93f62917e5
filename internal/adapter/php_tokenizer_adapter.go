package adapter

import (
	"fmt"

	m "csrules.dev/pkg/csrules/internal/model"
)

// PHPTokenizerAdapter turns PHP source into the token buffer the fixers edit.
// Keeping lexing behind an interface lets the domain layer stay independent
// of the concrete scanner.
type PHPTokenizerAdapter interface {
	// Tokenize splits src into tokens. Rendering the result with Code must
	// reproduce src byte for byte.
	Tokenize(src []byte) (*m.Tokens, error)
}

// LocalPHPTokenizerAdapter is the built-in PHP scanner.
type LocalPHPTokenizerAdapter struct{}

// NewLocalPHPTokenizerAdapter constructs a LocalPHPTokenizerAdapter.
func NewLocalPHPTokenizerAdapter() *LocalPHPTokenizerAdapter {
	return &LocalPHPTokenizerAdapter{}
}

// Tokenize scans src into a token buffer.
func (a *LocalPHPTokenizerAdapter) Tokenize(src []byte) (*m.Tokens, error) {
	tokens, err := newPHPLexer(string(src)).run()
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	return m.NewTokens(tokens), nil
}
