package domain

import "errors"

// ErrSourceUnavailable is returned when the parameter source cannot deliver a
// parameter the engine cannot work without.
var ErrSourceUnavailable = errors.New("parameter source unavailable")

// ErrInvalidMode is returned when the configured output mode is unknown.
var ErrInvalidMode = errors.New("invalid output mode")

// ErrParameterNotFound is returned by parameter sources that distinguish a
// missing parameter from an empty one.
var ErrParameterNotFound = errors.New("parameter not found")
