package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/wayfinder"
	mcpAdapter "github.com/aretw0/wayfinder/pkg/adapters/mcp"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *wayfinder.Engine {
	t.Helper()
	eng, err := wayfinder.New("", wayfinder.WithSource(memory.NewSource(map[string]any{
		"botName": "Manu",
		"steps": []any{
			map[string]any{"stepId": "abertura", "stepName": "Abertura"},
			map[string]any{"stepId": "vendas", "stepName": "Fechamento"},
		},
	})))
	require.NoError(t, err)
	return eng
}

func callLookup(t *testing.T, s *mcpAdapter.Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = domain.ToolName
	req.Params.Arguments = args

	result, err := s.HandleLookup(context.Background(), req)
	require.NoError(t, err)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return tc.Text
}

func TestHandleLookup(t *testing.T) {
	s := mcpAdapter.NewServer(newEngine(t))

	result := callLookup(t, s, map[string]any{"step_id": "abrtura"})
	assert.False(t, result.IsError)
	assert.Contains(t, text(t, result), `"step_id": "abertura"`)

	result = callLookup(t, s, map[string]any{"step_id": "venda"})
	assert.False(t, result.IsError, "diagnostics are answers, not tool errors")
	assert.Contains(t, text(t, result), "did you mean 'vendas'?")

	result = callLookup(t, s, map[string]any{})
	assert.False(t, result.IsError)
	assert.Contains(t, text(t, result), "empty identifier")
}

func TestHandleLookup_QueryRejected(t *testing.T) {
	s := mcpAdapter.NewServer(newEngine(t), mcpAdapter.WithMaxQuerySize(3))

	result := callLookup(t, s, map[string]any{"step_id": "abertura"})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "query rejected")
}

type brokenSource struct{}

func (brokenSource) Get(context.Context, string, int, any) (any, error) {
	return nil, errors.New("backend down")
}

func TestHandleLookup_SourceFailure(t *testing.T) {
	eng, err := wayfinder.New("", wayfinder.WithSource(brokenSource{}))
	require.NoError(t, err)

	result := callLookup(t, mcpAdapter.NewServer(eng), map[string]any{"step_id": "abertura"})
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "parameter source unavailable")
}

func TestHandleReport(t *testing.T) {
	s := mcpAdapter.NewServer(newEngine(t))

	result, err := s.HandleReport(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &report))
	assert.Equal(t, 2, report.StepsCount)
	assert.Equal(t, []string{"abertura", "vendas"}, report.StepsIDs)
}

func TestReadSteps(t *testing.T) {
	s := mcpAdapter.NewServer(newEngine(t))

	contents, err := s.ReadSteps(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	rc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, mcpAdapter.StepsURI, rc.URI)

	var cfg domain.FlowConfiguration
	require.NoError(t, json.Unmarshal([]byte(rc.Text), &cfg))
	assert.Equal(t, "Manu", cfg.Identity.Name)
	assert.Len(t, cfg.Steps, 2)
}
