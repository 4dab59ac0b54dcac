package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/quotient"
	"github.com/aretw0/quotient/pkg/automata"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nfaDoc = `{
	"start": "1",
	"alphabet": ["a", "b"],
	"nodes": {
		"1": {"a": ["1", "2"], "b": ["1"]},
		"2": {"a": ["3"], "b": ["3"]},
		"3": {"a": ["1"], "b": ["2"]}
	},
	"final_states": ["3"]
}`

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	content, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return content.Text
}

func TestMinimizeTool(t *testing.T) {
	s := NewServer(quotient.New(), nil)

	res, err := s.handleMinimize(context.Background(), call(map[string]any{"automaton": nfaDoc}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var out struct {
		ConversionID string          `json:"conversion_id"`
		Dfa          automata.RawDfa `json:"dfa"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Len(t, out.ConversionID, 64)
	assert.Len(t, out.Dfa.Nodes, 4)

	contents, err := s.readConversion(context.Background(), mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: conversionURIPrefix + out.ConversionID},
	})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, out.ConversionID)
}

func TestMinimizeDfaTool_Complete(t *testing.T) {
	s := NewServer(quotient.New(), nil)

	doc := `{"start": "1", "alphabet": ["a", "b"], "final_states": ["2", "4"],
		"nodes": {"1": {"a": "2", "b": "3"}, "2": {}, "3": {"a": "4", "b": "1"}, "4": {}}}`
	res, err := s.handleMinimizeDfa(context.Background(), call(map[string]any{"automaton": doc, "complete": true}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var dfa automata.RawDfa
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &dfa))
	assert.Equal(t, map[string]string{"a": "2 | 4", "b": "1 | 3"}, dfa.Nodes["1 | 3"])
	assert.Equal(t, map[string]string{"a": "", "b": ""}, dfa.Nodes["2 | 4"])
}

func TestDeterminizeTool(t *testing.T) {
	s := NewServer(quotient.New(), nil)

	res, err := s.handleDeterminize(context.Background(), call(map[string]any{"automaton": nfaDoc}))
	require.NoError(t, err)

	var dfa automata.RawDfa
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &dfa))
	assert.ElementsMatch(t, []string{"1 + 2 + 3", "1 + 3"}, dfa.FinalStates)
}

func TestValidateTool_Errors(t *testing.T) {
	s := NewServer(quotient.New(), nil)
	ctx := context.Background()

	res, err := s.handleValidate(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "missing argument")

	res, err = s.handleValidate(ctx, call(map[string]any{"automaton": "{"}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "malformed JSON")

	res, err = s.handleValidate(ctx, call(map[string]any{
		"automaton": `{"start": "1", "alphabet": ["a"], "finals": ["1"], "nodes": {"1": {}}}`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "unknown field")
	assert.Contains(t, text(t, res), `unknown field "finals"`)

	res, err = s.handleValidate(ctx, call(map[string]any{
		"automaton": `{"start": "1", "alphabet": ["a"], "final_states": ["7"], "nodes": {"1": {}}}`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), `unknown state "7"`)

	res, err = s.handleValidate(ctx, call(map[string]any{"automaton": nfaDoc}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"valid": true, "states": 3, "symbols": 2, "final_states": 1}`, text(t, res))
}
