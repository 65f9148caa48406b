package ports

import "context"

// ParameterSource defines how the engine retrieves its raw configuration.
// Values are returned exactly as the backend holds them: the normalizer is
// responsible for coping with missing, null or wrong-typed values.
type ParameterSource interface {
	// Get returns the raw value of the named parameter for the given item.
	// When the parameter is absent it returns def and a nil error.
	// A non-nil error means the backend itself failed.
	Get(ctx context.Context, name string, itemIndex int, def any) (any, error)
}

// ItemCounter is implemented by sources that know how many items a batch holds.
type ItemCounter interface {
	Items(ctx context.Context) (int, error)
}
