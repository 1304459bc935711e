package space

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed feature or cost input: ragged feature
	// arrays, an empty instance set, duplicate names or non-finite values.
	ErrInvalidInput = errors.New("footprint: invalid input")

	// ErrInsufficientData marks computations that need more distinct data than
	// was supplied, e.g. clustering fewer than two distinct instances.
	ErrInsufficientData = errors.New("footprint: insufficient data")

	// ErrMissingData marks a cost or feature lookup that did not cover an
	// expected instance.
	ErrMissingData = errors.New("footprint: missing data")

	// ErrDegenerateGeometry marks a convex hull that cannot be built because
	// the points are too few or collinear. The region engine always recovers
	// from it locally.
	ErrDegenerateGeometry = errors.New("footprint: degenerate geometry")
)

// MissingDataError reports which configuration/instance pair a lookup failed
// to cover. It unwraps to ErrMissingData.
type MissingDataError struct {
	Config   ConfigID
	Instance string
}

func (e *MissingDataError) Error() string {
	if e.Config == "" {
		return fmt.Sprintf("%v: no value for instance %q", ErrMissingData, e.Instance)
	}
	return fmt.Sprintf("%v: no cost for configuration %q on instance %q", ErrMissingData, e.Config, e.Instance)
}

func (e *MissingDataError) Unwrap() error { return ErrMissingData }
