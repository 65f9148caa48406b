package runner

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeQuery_SizeLimit(t *testing.T) {
	limit := DefaultMaxQuerySize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeQuery(strings.Repeat("a", tt.inputSize), 0)
			if tt.wantErr && !errors.Is(err, ErrQueryTooLarge) {
				t.Errorf("SanitizeQuery() expected ErrQueryTooLarge for size %d, got %v", tt.inputSize, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("SanitizeQuery() unexpected error: %v", err)
			}
		})
	}
}

func TestSanitizeQuery_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "abertura", "abertura"},
		{"Trailing Newline", "abertura\r\n", "abertura"},
		{"ANSI Code", "\x1b[31mvendas\x1b[0m", "[31mvendas[0m"},
		{"Null Byte", "aber\x00tura", "abertura"},
		{"Tab", "a\tb", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeQuery(tt.input, 0)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizeQuery_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxQuerySize, "10")

	if _, err := SanitizeQuery("12345678901", 0); err == nil {
		t.Error("Expected error for query > 10 when env var is set")
	}
	if _, err := SanitizeQuery("12345", 0); err != nil {
		t.Error("Unexpected error for valid query")
	}
}

func TestSanitizeQuery_ExplicitLimit(t *testing.T) {
	t.Setenv(EnvMaxQuerySize, "10")

	if _, err := SanitizeQuery("12345", 4); err == nil {
		t.Error("Expected explicit limit to win over the environment")
	}
}

func TestSanitizeQuery_InvalidUTF8(t *testing.T) {
	_, err := SanitizeQuery("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98", 0)
	if err != ErrInvalidUTF8 {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}
