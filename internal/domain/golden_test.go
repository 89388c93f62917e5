package domain_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"csrules.dev/pkg/csrules/internal/adapter"
	"csrules.dev/pkg/csrules/internal/domain"
	"csrules.dev/pkg/csrules/internal/domain/fixers"
	"csrules.dev/pkg/csrules/internal/testutil"
)

func TestGoldenFiles(t *testing.T) {
	tokenizer := adapter.NewLocalPHPTokenizerAdapter()

	fixFn := func(input string) (string, error) {
		list, err := domain.Resolve(domain.DefaultRegistry(), domain.NewConfig(map[string]any{fixers.VariableCaseName: true}))
		if err != nil {
			return "", err
		}

		tokens, err := tokenizer.Tokenize([]byte(input))
		if err != nil {
			return "", err
		}

		require.Equal(t, input, tokens.Code(), "tokenizer must round-trip")

		for _, fixer := range list {
			if fixer.IsCandidate(tokens) {
				fixer.Fix(tokens)
			}
		}

		return tokens.Code(), nil
	}

	_, filename, _, _ := runtime.Caller(0)
	testdataDir := filepath.Join(filepath.Dir(filename), "..", "..", "testdata")

	testutil.RunGoldenDir(t, testdataDir, fixFn)
}
