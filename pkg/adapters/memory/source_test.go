package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	contract "github.com/aretw0/wayfinder/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Contract(t *testing.T) {
	data := map[string]any{
		"botName": "Manu",
		"botTone": "Warm",
		"steps":   map[string]any{"step": []any{map[string]any{"stepId": "opening"}}},
	}

	contract.ParameterSourceContractTest(t, memory.NewSource(data), data)
}

func TestSource_ItemOverrides(t *testing.T) {
	src := memory.NewItems(
		map[string]any{"testStepId": "opening"},
		map[string]any{"testStepId": "closing", "botName": "Other"},
	)
	src.Set("botName", "Manu")
	ctx := context.Background()

	got, err := src.Get(ctx, "testStepId", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "closing", got)

	got, err = src.Get(ctx, "botName", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "Manu", got, "shared parameter applies when the item has none")

	got, err = src.Get(ctx, "botName", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "Other", got)

	got, err = src.Get(ctx, "testStepId", 7, "none")
	require.NoError(t, err)
	assert.Equal(t, "none", got, "out-of-range items only see shared parameters")

	n, err := src.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSource_ExplicitNil(t *testing.T) {
	src := memory.NewSource(map[string]any{"contextData": nil})
	got, err := src.Get(context.Background(), "contextData", 0, map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := src.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
