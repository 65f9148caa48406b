package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/api"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	b := dsl.New().Bot("Manu")
	b.Add("abertura").Name("Abertura").Instructions("Cumprimente <cliente>")
	b.Add("vendas").Name("Fechamento")

	eng, err := wayfinder.New("", wayfinder.WithSource(b.Build()))
	require.NoError(t, err)
	return NewHandler(eng, opts...)
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) LookupResponse {
	t.Helper()
	var resp LookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLookupStep_Exact(t *testing.T) {
	w := serve(newTestHandler(t), "/steps/abertura")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decode(t, w)
	assert.True(t, resp.Found)
	assert.Equal(t, domain.MatchExact, resp.MatchType)
	assert.Empty(t, resp.AvailableIDs)

	payload, ok := resp.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", payload["status"])
	step := payload["current_step"].(map[string]any)
	assert.Equal(t, "abertura", step["step_id"])
	assert.NotContains(t, step, "required_fields")
	assert.Contains(t, w.Body.String(), "Cumprimente <cliente>")
}

func TestLookupStep_Fuzzy(t *testing.T) {
	w := serve(newTestHandler(t), "/steps/abrtura")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.True(t, resp.Found)
	assert.Equal(t, domain.MatchFuzzy, resp.MatchType)
}

func TestLookupStep_NotFound(t *testing.T) {
	w := serve(newTestHandler(t), "/steps/xyzxyz")
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decode(t, w)
	assert.False(t, resp.Found)
	assert.Equal(t, domain.MatchNotFound, resp.MatchType)
	assert.Nil(t, resp.Payload)
	assert.Equal(t, []string{"abertura", "vendas"}, resp.AvailableIDs)
	assert.Equal(t, "Error: step ID 'xyzxyz' does not exist in the flow.", resp.Message)
}

func TestLookupStep_EscapedQuery(t *testing.T) {
	w := serve(newTestHandler(t), "/steps/%20ABERTURA%20")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.MatchExact, decode(t, w).MatchType)
}

func TestLookupStep_Text(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h, "/steps/vendas?format=text")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), `"step_id": "vendas"`)

	w = serve(h, "/steps/xyzxyz?format=text")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `Available IDs: "abertura", "vendas".`)
}

func TestLookupStep_QueryTooLarge(t *testing.T) {
	w := serve(newTestHandler(t, WithMaxQuerySize(4)), "/steps/abertura")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

type unavailableEngine struct{}

func (unavailableEngine) Resolve(context.Context, string) (domain.Resolution, *domain.FlowConfiguration, error) {
	return domain.Resolution{}, nil, domain.ErrSourceUnavailable
}

func (unavailableEngine) Report(context.Context) (*domain.Report, error) {
	return nil, domain.ErrSourceUnavailable
}

func (unavailableEngine) Configuration(context.Context) (*domain.FlowConfiguration, error) {
	return nil, errors.New("boom")
}

func TestHandler_SourceErrors(t *testing.T) {
	h := NewHandler(unavailableEngine{})

	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "/steps/abertura").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "/report").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(h, "/steps").Code)
}

func TestGetSteps(t *testing.T) {
	w := serve(newTestHandler(t), "/steps")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg domain.FlowConfiguration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, "Manu", cfg.Identity.Name)
	assert.Len(t, cfg.Steps, 2)
}

func TestGetReport(t *testing.T) {
	w := serve(newTestHandler(t), "/report")
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.StepsCount)
}

func TestGetTool(t *testing.T) {
	w := serve(newTestHandler(t), "/tool")
	require.Equal(t, http.StatusOK, w.Code)

	var tool domain.Tool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tool))
	assert.Equal(t, domain.ToolName, tool.Name)
}

func TestHealthAndDocs(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), wayfinder.Version)

	w = serve(h, "/openapi.yaml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.Spec, w.Body.Bytes())

	w = serve(h, "/swagger")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}

func TestMetricsRoute(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(newTestHandler(t), "/metrics").Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	w := serve(newTestHandler(t, WithMetrics(metrics)), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/steps/abertura", nil)
	w := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutesAreDocumented(t *testing.T) {
	doc, err := api.Load(context.Background())
	require.NoError(t, err)

	for _, path := range []string{"/steps", "/steps/{id}", "/report", "/tool", "/healthz"} {
		item := doc.Paths.Find(path)
		require.NotNil(t, item, path)
		assert.NotNil(t, item.Get, path)
	}
}
