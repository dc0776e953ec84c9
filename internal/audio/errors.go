package audio

import "errors"

// Domain errors for the audio package.
var (
	// ErrUnknownDeviceType is returned when a device type name is not recognised.
	ErrUnknownDeviceType = errors.New("audio: unknown device type")

	// ErrUnknownFormat is returned when a format name is not recognised.
	ErrUnknownFormat = errors.New("audio: unknown format")

	// ErrMixedDirection is returned when a type mask names both input and
	// output devices.
	ErrMixedDirection = errors.New("audio: mixed input and output device types")

	// ErrUnknownChannelMask is returned when a channel mask name is not recognised.
	ErrUnknownChannelMask = errors.New("audio: unknown channel mask")
)
