// Package device provides the audio Device and the Device Registry used to
// resolve which endpoints an audio stream should be routed to.
//
// # Architecture
//
//	┌────────────────────────────────────────────────────────────────────┐
//	│                         Device Registry                             │
//	│                                                                     │
//	│  ┌──────────────────┐   ┌──────────────────┐   ┌────────────────┐   │
//	│  │     Registry     │   │      Device      │   │    Ordering    │   │
//	│  │  (registry.go)   │──▶│   (device.go)    │   │   (order.go)   │   │
//	│  │                  │   │                  │   │                │   │
//	│  │ • dedup add      │   │ • identity/equal │   │ • type rank    │   │
//	│  │ • type mask      │   │ • formats        │   │ • id, address  │   │
//	│  │ • queries        │   │ • port config    │   │ • sequence     │   │
//	│  └──────────────────┘   └──────────────────┘   └────────────────┘   │
//	│                                  │                                  │
//	└──────────────────────────────────│──────────────────────────────────┘
//	                                   ▼
//	                     ┌──────────────────────────┐
//	                     │  audioport (collaborator) │
//	                     │  • id allocation          │
//	                     │  • profiles, config       │
//	                     └──────────────────────────┘
//
// # Identity
//
// Two devices are the same device when their type, address and set of
// encoded formats match. Equality ignores the registry-assigned id, the tag
// name and the order or duplication of encoded formats. A registry never
// holds two equal devices.
//
// # Ordering
//
// Registries keep their members sorted by Compare: type priority first, then
// the most recently allocated id, then address, then construction order.
// The order makes iteration and dumps deterministic; lookups are linear and
// use equality, not the order.
//
// # Sharing
//
// A *Device may be held by several registries at once. Mutating a device
// (its current encoded format, its port config) is visible through every
// registry holding it.
//
// # Usage
//
//	var ids audioport.SequenceAllocator
//	primary := audioport.NewHwModule("primary", &ids)
//
//	hdmi := device.New(audio.DeviceOutHDMI, "HDMI Out")
//	hdmi.Attach(primary, &ids)
//
//	outputs := device.NewRegistry(hdmi)
//	outputs.SetLogger(log)
//
//	sinks := outputs.DevicesFromTypeMask(audio.DeviceOutHDMI | audio.DeviceOutSpeaker)
//	best := outputs.FirstExistingDevice([]audio.DeviceType{
//	    audio.DeviceOutBluetoothA2DP, audio.DeviceOutHDMI, audio.DeviceOutSpeaker,
//	})
//
// # Thread Safety
//
// Neither Device nor Registry is safe for concurrent use. Callers that share
// them across goroutines must serialise access (see package routing).
package device
