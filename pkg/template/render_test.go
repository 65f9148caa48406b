package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	ctx := map[string]any{
		"name":    "Maria",
		"age":     30,
		"score":   4.5,
		"vip":     true,
		"missing": nil,
		"nested":  "{name}",
	}

	tests := []struct {
		name     string
		value    any
		ctx      map[string]any
		expected string
	}{
		{"Nil Value", nil, ctx, ""},
		{"Plain Text", "Hello", ctx, "Hello"},
		{"String Key", "Hi {name}!", ctx, "Hi Maria!"},
		{"Int Value", "Age {age}", ctx, "Age 30"},
		{"Float Value", "Score {score}", ctx, "Score 4.5"},
		{"Bool Value", "VIP {vip}", ctx, "VIP true"},
		{"Absent Key Kept", "Hi {surname}", ctx, "Hi {surname}"},
		{"Nil Key Kept", "Value {missing}", ctx, "Value {missing}"},
		{"No Recursion", "Echo {nested}", ctx, "Echo {name}"},
		{"Repeated Key", "{name} and {name}", ctx, "Maria and Maria"},
		{"Invalid Token Grammar", "Hi {first name} {na-me}", ctx, "Hi {first name} {na-me}"},
		{"Double Braces", "Hi {{name}}", ctx, "Hi {Maria}"},
		{"Number Input", 42, ctx, "42"},
		{"Bool Input", false, ctx, "false"},
		{"Nil Context", "Hi {name}", nil, "Hi {name}"},
		{"Empty Context", "Hi {name}", map[string]any{}, "Hi {name}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.value, tt.ctx))
		})
	}
}

func TestRender_LiteralBraceCollision(t *testing.T) {
	// There is no escape syntax: a literal {word} matching a key is substituted.
	got := Render(`Reply with JSON like {status}`, map[string]any{"status": "ok"})
	assert.Equal(t, "Reply with JSON like ok", got)
}

func TestRender_CompositeValues(t *testing.T) {
	ctx := map[string]any{
		"tags":   []string{"a", "b"},
		"client": map[string]any{"id": 7},
	}
	assert.Equal(t, `Tags ["a","b"]`, Render("Tags {tags}", ctx))
	assert.Equal(t, `Client {"id":7}`, Render("Client {client}", ctx))
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("Hi {name}, order {order_id} for {name} {not valid}")
	assert.Equal(t, []string{"name", "order_id"}, got)
	assert.Empty(t, Placeholders("no tokens here"))
}

func TestToText(t *testing.T) {
	assert.Equal(t, "", ToText(nil))
	assert.Equal(t, "3", ToText(3.0))
	assert.Equal(t, "raw", ToText([]byte("raw")))
	assert.Equal(t, "-7", ToText(int64(-7)))
}
