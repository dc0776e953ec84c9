// Package audio defines the value types shared by the audio routing packages:
// device type bitmasks, encoded and PCM formats, channel masks, and the fixed
// priority ranking used to order devices of different types.
//
// # Device Types
//
// A DeviceType is a bitmask. The top bit (DeviceBitIn) marks an input device;
// every other bit names one device category. By convention a single device
// carries exactly one category bit, while masks built by OR-ing several types
// are used for queries:
//
//	mask := audio.DeviceOutWiredHeadset | audio.DeviceOutWiredHeadphone
//	if mask.Intersects(d.Type()) { ... }
//
// # Names
//
// Every constant has a canonical name (e.g. "AUDIO_DEVICE_OUT_SPEAKER",
// "AUDIO_FORMAT_AC3") used in configuration files, MQTT payloads and dumps.
// Use ParseDeviceType and ParseFormat to convert names back to values.
package audio
