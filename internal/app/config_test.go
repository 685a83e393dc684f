package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		in          Config
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "model with defaults",
			in:   Config{ModelPath: "model.hcl"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, FormatHCL, cfg.Format)
				assert.NotNil(t, cfg.Defines)
			},
		},
		{
			name: "expression with text format",
			in:   Config{Expression: "{a,b}", Format: FormatText},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, FormatText, cfg.Format)
			},
		},
		{
			name:        "nothing to do",
			in:          Config{},
			errContains: "either ModelPath or Expression",
		},
		{
			name:        "both inputs",
			in:          Config{ModelPath: "m.hcl", Expression: "x"},
			errContains: "mutually exclusive",
		},
		{
			name:        "unknown format",
			in:          Config{ModelPath: "m.hcl", Format: "yaml"},
			errContains: "unsupported output format",
		},
		{
			name:        "empty define name",
			in:          Config{ModelPath: "m.hcl", Defines: map[string]string{"": "1"}},
			errContains: "define names cannot be empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := NewConfig(tc.in)
			if tc.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}
