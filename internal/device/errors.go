package device

import "errors"

// Domain errors for the device package.
//
// Registry operations never fail; they report "not added" or "not found"
// through their return values. These errors are used by callers that need
// to surface those outcomes:
//
//	if outputs.Add(d) < 0 {
//	    return fmt.Errorf("%w: %s", device.ErrDeviceExists, d)
//	}
var (
	// ErrDeviceNotFound is returned when a device is not a registry member.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceExists is returned when an equal device is already a registry member.
	ErrDeviceExists = errors.New("device: already exists")

	// ErrInvalidDevice is returned when a device definition cannot be built.
	ErrInvalidDevice = errors.New("device: invalid")
)
