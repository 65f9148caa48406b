package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxQuerySize is 1KB. Step IDs are short; anything larger is noise.
	DefaultMaxQuerySize = 1024
	// EnvMaxQuerySize is the environment variable that overrides the default.
	EnvMaxQuerySize = "WAYFINDER_QUERY_MAX_SIZE"
)

var (
	ErrQueryTooLarge = errors.New("query exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("query contains invalid UTF-8 sequences")
)

// SanitizeQuery enforces a size limit, validates UTF-8 and strips control
// characters from a query. A limit <= 0 uses the environment or the default.
//
// Oversized queries are rejected rather than truncated: a truncated step ID
// would resolve to a different step.
func SanitizeQuery(query string, limit int) (string, error) {
	if limit <= 0 {
		limit = maxQuerySize()
	}
	if len(query) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrQueryTooLarge, len(query), limit)
	}

	if !utf8.ValidString(query) {
		return "", ErrInvalidUTF8
	}

	// Fast path: nothing to strip.
	clean := true
	for _, r := range query {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return query, nil
	}

	var b strings.Builder
	b.Grow(len(query))
	for _, r := range query {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func maxQuerySize() int {
	if val := os.Getenv(EnvMaxQuerySize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxQuerySize
}
