package domain

import "errors"

var (
	ErrInvalidCoordinate       = errors.New("invalid coordinate")
	ErrInvalidPolygon          = errors.New("invalid polygon")
	ErrInvalidRoute            = errors.New("invalid route")
	ErrInvalidRadius           = errors.New("invalid radius")
	ErrInvalidBounds           = errors.New("invalid rectangle bounds")
	ErrIncompleteConfiguration = errors.New("incomplete rectangle configuration")
	ErrInvalidPrecedence       = errors.New("invalid rectangle precedence")
	ErrUnknownShape            = errors.New("unknown geofence shape")
)

// IsInputError reports whether err was caused by malformed caller input
// rather than a failing collaborator.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrInvalidCoordinate,
		ErrInvalidPolygon,
		ErrInvalidRoute,
		ErrInvalidRadius,
		ErrInvalidBounds,
		ErrIncompleteConfiguration,
		ErrInvalidPrecedence,
		ErrUnknownShape,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
