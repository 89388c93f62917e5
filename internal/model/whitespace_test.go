package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWhitespacesConfig(t *testing.T) {
	tests := []struct {
		name       string
		indent     string
		lineEnding string
		wantErr    bool
	}{
		{name: "four spaces", indent: "    ", lineEnding: "\n"},
		{name: "two spaces crlf", indent: "  ", lineEnding: "\r\n"},
		{name: "tab", indent: "\t", lineEnding: "\n"},
		{name: "empty indent", indent: "", lineEnding: "\n", wantErr: true},
		{name: "two tabs", indent: "\t\t", lineEnding: "\n", wantErr: true},
		{name: "mixed indent", indent: " \t", lineEnding: "\n", wantErr: true},
		{name: "carriage return only", indent: "    ", lineEnding: "\r", wantErr: true},
		{name: "empty line ending", indent: "    ", lineEnding: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewWhitespacesConfig(tt.indent, tt.lineEnding)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidWhitespace)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, WhitespacesConfig{Indent: tt.indent, LineEnding: tt.lineEnding}, cfg)
		})
	}
}

func TestDefaultWhitespacesConfig(t *testing.T) {
	assert.Equal(t, WhitespacesConfig{Indent: "    ", LineEnding: "\n"}, DefaultWhitespacesConfig())
}
