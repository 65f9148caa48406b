package tests

import (
	"context"
	"testing"

	"github.com/aretw0/wayfinder/pkg/ports"
)

// ParameterSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.ParameterSource.
// expected holds the parameters the adapter was seeded with for item 0.
func ParameterSourceContractTest(t *testing.T, src ports.ParameterSource, expected map[string]any) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for name := range expected {
			got, err := src.Get(ctx, name, 0, nil)
			if err != nil {
				t.Fatalf("unexpected error getting %s: %v", name, err)
			}
			if got == nil {
				t.Errorf("parameter %s: got nil, want a value", name)
			}
		}
	})

	t.Run("Get_MissingReturnsDefault", func(t *testing.T) {
		got, err := src.Get(ctx, "non-existent-parameter", 0, "fallback")
		if err != nil {
			t.Fatalf("unexpected error for missing parameter: %v", err)
		}
		if got != "fallback" {
			t.Errorf("expected default %q for missing parameter, got %#v", "fallback", got)
		}
	})

	t.Run("Get_MissingNilDefault", func(t *testing.T) {
		got, err := src.Get(ctx, "non-existent-parameter", 0, nil)
		if err != nil {
			t.Fatalf("unexpected error for missing parameter: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for missing parameter, got %#v", got)
		}
	})

	t.Run("Get_Strings", func(t *testing.T) {
		for name, want := range expected {
			s, ok := want.(string)
			if !ok {
				continue
			}
			got, err := src.Get(ctx, name, 0, nil)
			if err != nil {
				t.Fatalf("unexpected error getting %s: %v", name, err)
			}
			if got != s {
				t.Errorf("parameter %s mismatch. got %#v, want %q", name, got, s)
			}
		}
	})
}
