package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsWithA = `
start: p
alphabet: [a, b]
final_states: [q]
nodes:
  p:
    a: [p, q]
    b: [p]
  q: {}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func nfaFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nfa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(endsWithA), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "quotient version "))
}

func TestMinimize(t *testing.T) {
	out, err := execute(t, "minimize", nfaFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, `"start": "p"`)
	assert.Contains(t, out, `"p + q"`)
}

func TestDeterminizeMermaid(t *testing.T) {
	out, err := execute(t, "determinize", "--format", "mermaid", nfaFile(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", nfaFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "(2 states, 2 symbols)")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"start":"x","alphabet":[],"final_states":[],"nodes":{}}`), 0o644))
	_, err = execute(t, "validate", bad)
	assert.ErrorContains(t, err, "validation failed")
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "--word", "b,a", nfaFile(t))
	require.NoError(t, err)
	assert.Equal(t, "p -> p -> p + q\naccepted\n", out)
}

func TestGraphStageNfa(t *testing.T) {
	out, err := execute(t, "graph", "--stage", "nfa", nfaFile(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))

	_, err = execute(t, "graph", "--stage", "dot", nfaFile(t))
	assert.ErrorContains(t, err, `unknown stage "dot"`)
}

func TestValidateWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"start": "p", "alphabet": ["a"], "final_states": ["q"],
		"nodes": {"p": {"a": ["q"]}, "q": {}, "island": {"a": ["q"]}}
	}`), 0o644))

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Warnings:\nunreachable state \"island\"")
}
