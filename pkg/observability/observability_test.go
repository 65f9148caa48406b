package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveEvent(kind domain.MatchKind) *domain.ResolveEvent {
	return &domain.ResolveEvent{
		EventBase: domain.EventBase{Type: domain.EventResolve, Flow: "sales"},
		Query:     "abrtura",
		StepID:    "abertura",
		Kind:      kind,
		Duration:  2 * time.Millisecond,
	}
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnResolve(ctx, resolveEvent(domain.MatchFuzzy))
	hooks.OnResolve(ctx, resolveEvent(domain.MatchFuzzy))
	hooks.OnResolve(ctx, resolveEvent(domain.MatchNotFound))
	hooks.OnReport(ctx, &domain.ReportEvent{EventBase: domain.EventBase{Flow: "sales"}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("sales", "fuzzy_auto_corrected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("sales", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reports.WithLabelValues("sales")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Latency))
}

func TestMetrics_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	m.Hooks().OnResolve(context.Background(), resolveEvent(domain.MatchExact))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `wayfinder_lookups_total{flow="sales",match="exact"} 1`)
}

func TestCompose(t *testing.T) {
	var calls []string
	a := domain.LookupHooks{OnResolve: func(context.Context, *domain.ResolveEvent) { calls = append(calls, "a") }}
	b := domain.LookupHooks{
		OnResolve: func(context.Context, *domain.ResolveEvent) { calls = append(calls, "b") },
		OnReport:  func(context.Context, *domain.ReportEvent) { calls = append(calls, "report") },
	}

	hooks := observability.Compose(a, domain.LookupHooks{}, b)
	hooks.OnResolve(context.Background(), resolveEvent(domain.MatchExact))
	hooks.OnReport(context.Background(), &domain.ReportEvent{})

	assert.Equal(t, []string{"a", "b", "report"}, calls)
	assert.Nil(t, observability.Compose().OnResolve)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	observability.LogHooks(logger).OnResolve(context.Background(), resolveEvent(domain.MatchFuzzy))
	assert.Contains(t, buf.String(), "match=fuzzy_auto_corrected")
	assert.Contains(t, buf.String(), "step_id=abertura")
}
