package audio

import "math/bits"

// DeviceType is a bitmask identifying an audio device category.
// The DeviceBitIn bit distinguishes input devices from output devices.
type DeviceType uint32

// Direction and special bits.
const (
	DeviceNone       DeviceType = 0x0
	DeviceBitIn      DeviceType = 0x80000000
	DeviceBitDefault DeviceType = 0x40000000
)

// Output device types.
const (
	DeviceOutEarpiece                DeviceType = 0x1
	DeviceOutSpeaker                 DeviceType = 0x2
	DeviceOutWiredHeadset            DeviceType = 0x4
	DeviceOutWiredHeadphone          DeviceType = 0x8
	DeviceOutBluetoothSCO            DeviceType = 0x10
	DeviceOutBluetoothSCOHeadset     DeviceType = 0x20
	DeviceOutBluetoothSCOCarkit      DeviceType = 0x40
	DeviceOutBluetoothA2DP           DeviceType = 0x80
	DeviceOutBluetoothA2DPHeadphones DeviceType = 0x100
	DeviceOutBluetoothA2DPSpeaker    DeviceType = 0x200
	DeviceOutHDMI                    DeviceType = 0x400
	DeviceOutAnlgDockHeadset         DeviceType = 0x800
	DeviceOutDgtlDockHeadset         DeviceType = 0x1000
	DeviceOutUSBAccessory            DeviceType = 0x2000
	DeviceOutUSBDevice               DeviceType = 0x4000
	DeviceOutRemoteSubmix            DeviceType = 0x8000
	DeviceOutTelephonyTx             DeviceType = 0x10000
	DeviceOutLine                    DeviceType = 0x20000
	DeviceOutHDMIArc                 DeviceType = 0x40000
	DeviceOutSPDIF                   DeviceType = 0x80000
	DeviceOutFM                      DeviceType = 0x100000
	DeviceOutAuxLine                 DeviceType = 0x200000
	DeviceOutSpeakerSafe             DeviceType = 0x400000
	DeviceOutIP                      DeviceType = 0x800000
	DeviceOutBus                     DeviceType = 0x1000000
	DeviceOutProxy                   DeviceType = 0x2000000
	DeviceOutUSBHeadset              DeviceType = 0x4000000
	DeviceOutHearingAid              DeviceType = 0x8000000
	DeviceOutEchoCanceller           DeviceType = 0x10000000
	DeviceOutDefault                            = DeviceBitDefault
)

// Input device types.
const (
	DeviceInCommunication        = DeviceBitIn | 0x1
	DeviceInAmbient              = DeviceBitIn | 0x2
	DeviceInBuiltinMic           = DeviceBitIn | 0x4
	DeviceInBluetoothSCOHeadset  = DeviceBitIn | 0x8
	DeviceInWiredHeadset         = DeviceBitIn | 0x10
	DeviceInHDMI                 = DeviceBitIn | 0x20
	DeviceInTelephonyRx          = DeviceBitIn | 0x40
	DeviceInBackMic              = DeviceBitIn | 0x80
	DeviceInRemoteSubmix         = DeviceBitIn | 0x100
	DeviceInAnlgDockHeadset      = DeviceBitIn | 0x200
	DeviceInDgtlDockHeadset      = DeviceBitIn | 0x400
	DeviceInUSBAccessory         = DeviceBitIn | 0x800
	DeviceInUSBDevice            = DeviceBitIn | 0x1000
	DeviceInFMTuner              = DeviceBitIn | 0x2000
	DeviceInTVTuner              = DeviceBitIn | 0x4000
	DeviceInLine                 = DeviceBitIn | 0x8000
	DeviceInSPDIF                = DeviceBitIn | 0x10000
	DeviceInBluetoothA2DP        = DeviceBitIn | 0x20000
	DeviceInLoopback             = DeviceBitIn | 0x40000
	DeviceInIP                   = DeviceBitIn | 0x80000
	DeviceInBus                  = DeviceBitIn | 0x100000
	DeviceInProxy                = DeviceBitIn | 0x1000000
	DeviceInUSBHeadset           = DeviceBitIn | 0x2000000
	DeviceInBluetoothBLE         = DeviceBitIn | 0x4000000
	DeviceInDefault              = DeviceBitIn | DeviceBitDefault
)

// Convenience masks.
const (
	DeviceOutAllA2DP = DeviceOutBluetoothA2DP | DeviceOutBluetoothA2DPHeadphones | DeviceOutBluetoothA2DPSpeaker
	DeviceOutAllSCO  = DeviceOutBluetoothSCO | DeviceOutBluetoothSCOHeadset | DeviceOutBluetoothSCOCarkit
	DeviceOutAllUSB  = DeviceOutUSBAccessory | DeviceOutUSBDevice | DeviceOutUSBHeadset
)

// IsOutput reports whether t describes output devices (direction bit clear).
// DeviceNone is neither input nor output.
func (t DeviceType) IsOutput() bool {
	return t != DeviceNone && t&DeviceBitIn == 0
}

// IsInput reports whether t describes input devices (direction bit set).
func (t DeviceType) IsInput() bool {
	return t&DeviceBitIn != 0 && t != DeviceBitIn
}

// Category returns t with the direction bit cleared.
func (t DeviceType) Category() DeviceType {
	return t &^ DeviceBitIn
}

// Intersects reports whether t and other share a direction and at least one
// category bit.
func (t DeviceType) Intersects(other DeviceType) bool {
	return t.IsOutput() == other.IsOutput() && t.Category()&other.Category() != 0
}

// CategoryCount returns the number of category bits set in t.
func (t DeviceType) CategoryCount() int {
	return bits.OnesCount32(uint32(t.Category()))
}

// IsRemoteSubmix reports whether t is the output or input remote submix.
func (t DeviceType) IsRemoteSubmix() bool {
	return t == DeviceOutRemoteSubmix || t == DeviceInRemoteSubmix
}

// IsBluetoothA2DPOut reports whether t is one of the A2DP output types.
func (t DeviceType) IsBluetoothA2DPOut() bool {
	return t.IsOutput() && t&^DeviceOutAllA2DP == 0
}

// HasEncodingCapability reports whether devices of type t negotiate an encoded
// (compressed) format with the sink. Only single-category output types qualify.
func (t DeviceType) HasEncodingCapability() bool {
	if t.CategoryCount() != 1 {
		return false
	}
	return t.IsBluetoothA2DPOut() || t == DeviceOutHDMI || t == DeviceOutHDMIArc
}

// Split returns the individual device types contained in mask, each carrying
// the mask's direction bit. The result is ordered by ascending bit value.
func (t DeviceType) Split() []DeviceType {
	dir := t & DeviceBitIn
	cat := uint32(t.Category())
	var out []DeviceType
	for cat != 0 {
		bit := cat & -cat
		out = append(out, dir|DeviceType(bit))
		cat &^= bit
	}
	return out
}
