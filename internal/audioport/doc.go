// Package audioport holds the generic audio port state shared by every
// routable endpoint, and the collaborators a device needs from its
// surroundings:
//
//   - IDAllocator hands out process-unique handles when a device is attached
//   - HwModule is the hardware module a device is attached to
//   - Port carries audio profiles and the active sample rate, channel mask,
//     format, gain and flags, and knows how to validate, apply and snapshot
//     a Config
//
// Config is the fixed-layout snapshot exchanged with the HAL side. This package
// sequences field copies and validation; it does not talk to any driver.
//
// # Thread Safety
//
// SequenceAllocator is safe for concurrent use. Port is not; callers serialise
// access the same way they serialise access to the device registry.
package audioport
