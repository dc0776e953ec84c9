package audioport

import "errors"

// Domain errors for the audioport package.
var (
	// ErrBadValue is returned when a port config requests a value no profile supports.
	ErrBadValue = errors.New("audioport: bad value")

	// ErrNilConfig is returned when a nil config is validated or applied.
	ErrNilConfig = errors.New("audioport: nil config")
)
