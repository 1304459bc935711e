package footprint

import "github.com/banshee-data/footprint/internal/footprint/space"

// Re-exported so callers need not import space.
var (
	ErrInvalidInput       = space.ErrInvalidInput
	ErrInsufficientData   = space.ErrInsufficientData
	ErrMissingData        = space.ErrMissingData
	ErrDegenerateGeometry = space.ErrDegenerateGeometry
)

type (
	// ConfigID identifies one compared configuration.
	ConfigID = space.ConfigID
	// MissingDataError names the configuration and instance of a failed
	// cost lookup.
	MissingDataError = space.MissingDataError
)
