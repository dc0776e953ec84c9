package audio

// typePriorityOrder lists device types from most to least preferred. Outputs
// rank ahead of inputs; within a direction, user-attached endpoints rank ahead
// of built-in and virtual ones so that iteration and dumps show the devices a
// listener most likely wants first.
var typePriorityOrder = []DeviceType{
	DeviceOutBluetoothA2DP,
	DeviceOutBluetoothA2DPHeadphones,
	DeviceOutBluetoothA2DPSpeaker,
	DeviceOutHearingAid,
	DeviceOutUSBHeadset,
	DeviceOutWiredHeadset,
	DeviceOutWiredHeadphone,
	DeviceOutBluetoothSCO,
	DeviceOutBluetoothSCOHeadset,
	DeviceOutBluetoothSCOCarkit,
	DeviceOutUSBDevice,
	DeviceOutUSBAccessory,
	DeviceOutDgtlDockHeadset,
	DeviceOutAnlgDockHeadset,
	DeviceOutHDMI,
	DeviceOutHDMIArc,
	DeviceOutSPDIF,
	DeviceOutLine,
	DeviceOutAuxLine,
	DeviceOutIP,
	DeviceOutBus,
	DeviceOutProxy,
	DeviceOutFM,
	DeviceOutSpeakerSafe,
	DeviceOutSpeaker,
	DeviceOutEarpiece,
	DeviceOutTelephonyTx,
	DeviceOutEchoCanceller,
	DeviceOutRemoteSubmix,
	DeviceOutDefault,
	DeviceInBluetoothSCOHeadset,
	DeviceInBluetoothBLE,
	DeviceInBluetoothA2DP,
	DeviceInUSBHeadset,
	DeviceInWiredHeadset,
	DeviceInUSBDevice,
	DeviceInUSBAccessory,
	DeviceInDgtlDockHeadset,
	DeviceInAnlgDockHeadset,
	DeviceInHDMI,
	DeviceInLine,
	DeviceInSPDIF,
	DeviceInBuiltinMic,
	DeviceInBackMic,
	DeviceInIP,
	DeviceInBus,
	DeviceInProxy,
	DeviceInFMTuner,
	DeviceInTVTuner,
	DeviceInTelephonyRx,
	DeviceInCommunication,
	DeviceInAmbient,
	DeviceInLoopback,
	DeviceInRemoteSubmix,
	DeviceInDefault,
}

var typeRank = func() map[DeviceType]int {
	m := make(map[DeviceType]int, len(typePriorityOrder))
	for i, t := range typePriorityOrder {
		m[t] = i
	}
	return m
}()

// ComparePriority orders two device types by the fixed priority ranking.
// It returns a negative value when a ranks ahead of b, positive when b ranks
// ahead of a, and zero only when a == b. Types missing from the ranking sort
// after every ranked type, ordered by numeric value.
func ComparePriority(a, b DeviceType) int {
	if a == b {
		return 0
	}
	ra, okA := typeRank[a]
	rb, okB := typeRank[b]
	switch {
	case okA && okB:
		return ra - rb
	case okA:
		return -1
	case okB:
		return 1
	case a < b:
		return -1
	default:
		return 1
	}
}
