package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/netmacro/internal/hcl_adapter"
	"github.com/specialistvlad/netmacro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ringModel = `
	define "n" {
	  value = 3
	}

	node "cell{1:@n}" {
	  x = "$(@1 * 2)"
	}

	edge "link{1:$(@n - 1)}" {
	  from = "cell@1"
	  to   = "cell$(@1 + 1)"
	}
`

// setupApp creates a new app instance writing its results to the returned
// buffer.
func setupApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	testutil.DumpLogsOnCleanup(t, logs)

	return NewApp(out, logs, appConfig, hcl_adapter.NewLoader()), out, logs
}

func TestRun_ModelToHCL(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": ringModel})
	testApp, out, logs := setupApp(t, Config{ModelPath: dir})

	require.NoError(t, testApp.Run(context.Background()))

	assert.Contains(t, out.String(), `node "cell3" {`)
	assert.Contains(t, out.String(), `x = "6"`)
	assert.Contains(t, out.String(), `edge "link2" {`)
	assert.Contains(t, logs.String(), "Network construction successful")
}

func TestRun_ModelToText(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": ringModel})
	testApp, out, _ := setupApp(t, Config{
		ModelPath: dir,
		Format:    FormatText,
		Defines:   map[string]string{"n": "2"},
	})

	require.NoError(t, testApp.Run(context.Background()))

	expected := "node cell1\n" +
		"  x = 2\n" +
		"node cell2\n" +
		"  x = 4\n" +
		"edge link1: cell1 -> cell2\n"
	assert.Equal(t, expected, out.String())
}

func TestRun_OutputFile(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": ringModel})
	outPath := filepath.Join(t.TempDir(), "out.hcl")
	testApp, out, _ := setupApp(t, Config{ModelPath: dir, Output: outPath})

	require.NoError(t, testApp.Run(context.Background()))

	assert.Empty(t, out.String())
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `node "cell1" {`)
}

func TestRun_Expression(t *testing.T) {
	t.Parallel()

	testApp, out, _ := setupApp(t, Config{
		Expression: "n{1:@count}_{a,b}",
		Defines:    map[string]string{"count": "3"},
	})

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, "n1_a\nn1_b\nn2_a\nn2_b\nn3_a\nn3_b\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		cfg         func(dir string) Config
		files       map[string]string
		errContains string
	}{
		{
			name:        "invalid hcl",
			files:       map[string]string{"main.hcl": "node \"a\" {\n"},
			cfg:         func(dir string) Config { return Config{ModelPath: dir} },
			errContains: "failed to load model",
		},
		{
			name:        "unknown expansion",
			files:       map[string]string{"main.hcl": `node "a@missing" {}`},
			cfg:         func(dir string) Config { return Config{ModelPath: dir} },
			errContains: "failed to build network",
		},
		{
			name:        "bad expression",
			cfg:         func(string) Config { return Config{Expression: "$(1 +"} },
			errContains: "invalid expression",
		},
		{
			name:        "expression with missing define",
			cfg:         func(string) Config { return Config{Expression: "@missing"} },
			errContains: "failed to expand expression",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.WriteFiles(t, tc.files)
			testApp, _, _ := setupApp(t, tc.cfg(dir))

			err := testApp.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}
