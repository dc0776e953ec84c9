package routing

import "errors"

// Domain-specific errors for routing operations.
var (
	// ErrAlreadyConnected is returned when a connect event names a device
	// that is already available.
	ErrAlreadyConnected = errors.New("routing: device already connected")

	// ErrNotConnected is returned when a disconnect event names a device
	// that is not available.
	ErrNotConnected = errors.New("routing: device not connected")

	// ErrUndeclaredDevice is returned when no module declares a device of
	// the event's type.
	ErrUndeclaredDevice = errors.New("routing: no module declares this device type")

	// ErrUnknownStrategy is returned for a strategy name not in config.
	ErrUnknownStrategy = errors.New("routing: unknown strategy")

	// ErrInvalidEvent is returned for a malformed connection event.
	ErrInvalidEvent = errors.New("routing: invalid connection event")

	// ErrInvalidTopology is returned when the audio configuration cannot
	// be turned into a device catalogue.
	ErrInvalidTopology = errors.New("routing: invalid audio topology")
)
