package audio

import (
	"fmt"
	"sort"
	"strings"
)

var deviceTypeNames = map[DeviceType]string{
	DeviceNone:                       "AUDIO_DEVICE_NONE",
	DeviceOutEarpiece:                "AUDIO_DEVICE_OUT_EARPIECE",
	DeviceOutSpeaker:                 "AUDIO_DEVICE_OUT_SPEAKER",
	DeviceOutWiredHeadset:            "AUDIO_DEVICE_OUT_WIRED_HEADSET",
	DeviceOutWiredHeadphone:          "AUDIO_DEVICE_OUT_WIRED_HEADPHONE",
	DeviceOutBluetoothSCO:            "AUDIO_DEVICE_OUT_BLUETOOTH_SCO",
	DeviceOutBluetoothSCOHeadset:     "AUDIO_DEVICE_OUT_BLUETOOTH_SCO_HEADSET",
	DeviceOutBluetoothSCOCarkit:      "AUDIO_DEVICE_OUT_BLUETOOTH_SCO_CARKIT",
	DeviceOutBluetoothA2DP:           "AUDIO_DEVICE_OUT_BLUETOOTH_A2DP",
	DeviceOutBluetoothA2DPHeadphones: "AUDIO_DEVICE_OUT_BLUETOOTH_A2DP_HEADPHONES",
	DeviceOutBluetoothA2DPSpeaker:    "AUDIO_DEVICE_OUT_BLUETOOTH_A2DP_SPEAKER",
	DeviceOutHDMI:                    "AUDIO_DEVICE_OUT_HDMI",
	DeviceOutAnlgDockHeadset:         "AUDIO_DEVICE_OUT_ANLG_DOCK_HEADSET",
	DeviceOutDgtlDockHeadset:         "AUDIO_DEVICE_OUT_DGTL_DOCK_HEADSET",
	DeviceOutUSBAccessory:            "AUDIO_DEVICE_OUT_USB_ACCESSORY",
	DeviceOutUSBDevice:               "AUDIO_DEVICE_OUT_USB_DEVICE",
	DeviceOutRemoteSubmix:            "AUDIO_DEVICE_OUT_REMOTE_SUBMIX",
	DeviceOutTelephonyTx:             "AUDIO_DEVICE_OUT_TELEPHONY_TX",
	DeviceOutLine:                    "AUDIO_DEVICE_OUT_LINE",
	DeviceOutHDMIArc:                 "AUDIO_DEVICE_OUT_HDMI_ARC",
	DeviceOutSPDIF:                   "AUDIO_DEVICE_OUT_SPDIF",
	DeviceOutFM:                      "AUDIO_DEVICE_OUT_FM",
	DeviceOutAuxLine:                 "AUDIO_DEVICE_OUT_AUX_LINE",
	DeviceOutSpeakerSafe:             "AUDIO_DEVICE_OUT_SPEAKER_SAFE",
	DeviceOutIP:                      "AUDIO_DEVICE_OUT_IP",
	DeviceOutBus:                     "AUDIO_DEVICE_OUT_BUS",
	DeviceOutProxy:                   "AUDIO_DEVICE_OUT_PROXY",
	DeviceOutUSBHeadset:              "AUDIO_DEVICE_OUT_USB_HEADSET",
	DeviceOutHearingAid:              "AUDIO_DEVICE_OUT_HEARING_AID",
	DeviceOutEchoCanceller:           "AUDIO_DEVICE_OUT_ECHO_CANCELLER",
	DeviceOutDefault:                 "AUDIO_DEVICE_OUT_DEFAULT",
	DeviceInCommunication:            "AUDIO_DEVICE_IN_COMMUNICATION",
	DeviceInAmbient:                  "AUDIO_DEVICE_IN_AMBIENT",
	DeviceInBuiltinMic:               "AUDIO_DEVICE_IN_BUILTIN_MIC",
	DeviceInBluetoothSCOHeadset:      "AUDIO_DEVICE_IN_BLUETOOTH_SCO_HEADSET",
	DeviceInWiredHeadset:             "AUDIO_DEVICE_IN_WIRED_HEADSET",
	DeviceInHDMI:                     "AUDIO_DEVICE_IN_HDMI",
	DeviceInTelephonyRx:              "AUDIO_DEVICE_IN_TELEPHONY_RX",
	DeviceInBackMic:                  "AUDIO_DEVICE_IN_BACK_MIC",
	DeviceInRemoteSubmix:             "AUDIO_DEVICE_IN_REMOTE_SUBMIX",
	DeviceInAnlgDockHeadset:          "AUDIO_DEVICE_IN_ANLG_DOCK_HEADSET",
	DeviceInDgtlDockHeadset:          "AUDIO_DEVICE_IN_DGTL_DOCK_HEADSET",
	DeviceInUSBAccessory:             "AUDIO_DEVICE_IN_USB_ACCESSORY",
	DeviceInUSBDevice:                "AUDIO_DEVICE_IN_USB_DEVICE",
	DeviceInFMTuner:                  "AUDIO_DEVICE_IN_FM_TUNER",
	DeviceInTVTuner:                  "AUDIO_DEVICE_IN_TV_TUNER",
	DeviceInLine:                     "AUDIO_DEVICE_IN_LINE",
	DeviceInSPDIF:                    "AUDIO_DEVICE_IN_SPDIF",
	DeviceInBluetoothA2DP:            "AUDIO_DEVICE_IN_BLUETOOTH_A2DP",
	DeviceInLoopback:                 "AUDIO_DEVICE_IN_LOOPBACK",
	DeviceInIP:                       "AUDIO_DEVICE_IN_IP",
	DeviceInBus:                      "AUDIO_DEVICE_IN_BUS",
	DeviceInProxy:                    "AUDIO_DEVICE_IN_PROXY",
	DeviceInUSBHeadset:               "AUDIO_DEVICE_IN_USB_HEADSET",
	DeviceInBluetoothBLE:             "AUDIO_DEVICE_IN_BLUETOOTH_BLE",
	DeviceInDefault:                  "AUDIO_DEVICE_IN_DEFAULT",
}

var formatNames = map[Format]string{
	FormatDefault:        "AUDIO_FORMAT_DEFAULT",
	FormatPCM16Bit:       "AUDIO_FORMAT_PCM_16_BIT",
	FormatPCM8Bit:        "AUDIO_FORMAT_PCM_8_BIT",
	FormatPCM32Bit:       "AUDIO_FORMAT_PCM_32_BIT",
	FormatPCM8_24Bit:     "AUDIO_FORMAT_PCM_8_24_BIT",
	FormatPCMFloat:       "AUDIO_FORMAT_PCM_FLOAT",
	FormatPCM24BitPacked: "AUDIO_FORMAT_PCM_24_BIT_PACKED",
	FormatMP3:            "AUDIO_FORMAT_MP3",
	FormatAMRNB:          "AUDIO_FORMAT_AMR_NB",
	FormatAAC:            "AUDIO_FORMAT_AAC",
	FormatHEAACV1:        "AUDIO_FORMAT_HE_AAC_V1",
	FormatVorbis:         "AUDIO_FORMAT_VORBIS",
	FormatOpus:           "AUDIO_FORMAT_OPUS",
	FormatAC3:            "AUDIO_FORMAT_AC3",
	FormatEAC3:           "AUDIO_FORMAT_E_AC3",
	FormatDTS:            "AUDIO_FORMAT_DTS",
	FormatDTSHD:          "AUDIO_FORMAT_DTS_HD",
	FormatIEC61937:       "AUDIO_FORMAT_IEC61937",
	FormatDolbyTrueHD:    "AUDIO_FORMAT_DOLBY_TRUEHD",
	FormatFLAC:           "AUDIO_FORMAT_FLAC",
	FormatALAC:           "AUDIO_FORMAT_ALAC",
	FormatSBC:            "AUDIO_FORMAT_SBC",
	FormatAPTX:           "AUDIO_FORMAT_APTX",
	FormatAPTXHD:         "AUDIO_FORMAT_APTX_HD",
	FormatAC4:            "AUDIO_FORMAT_AC4",
	FormatLDAC:           "AUDIO_FORMAT_LDAC",
	FormatMAT:            "AUDIO_FORMAT_MAT",
}

var channelMaskNames = map[ChannelMask]string{
	ChannelNone:        "AUDIO_CHANNEL_NONE",
	ChannelOutMono:     "AUDIO_CHANNEL_OUT_MONO",
	ChannelOutStereo:   "AUDIO_CHANNEL_OUT_STEREO",
	ChannelOutQuad:     "AUDIO_CHANNEL_OUT_QUAD",
	ChannelOut5Point1:  "AUDIO_CHANNEL_OUT_5POINT1",
	ChannelOut7Point1:  "AUDIO_CHANNEL_OUT_7POINT1",
	ChannelInMono:      "AUDIO_CHANNEL_IN_MONO",
	ChannelInStereo:    "AUDIO_CHANNEL_IN_STEREO",
	ChannelInFrontBack: "AUDIO_CHANNEL_IN_FRONT_BACK",
}

var (
	deviceTypesByName  = invert(deviceTypeNames)
	formatsByName      = invert(formatNames)
	channelMasksByName = invert(channelMaskNames)
)

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// String returns the canonical name of a single device type. Masks with
// several categories are rendered as names joined by "|"; unknown bits are
// rendered in hex.
func (t DeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	parts := make([]string, 0, t.CategoryCount())
	for _, single := range t.Split() {
		if name, ok := deviceTypeNames[single]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("%#08x", uint32(single)))
		}
	}
	return strings.Join(parts, "|")
}

// String returns the canonical name of the format, or its hex value.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("%#08x", uint32(f))
}

// String returns the canonical name of the channel mask, or its hex value.
func (m ChannelMask) String() string {
	if name, ok := channelMaskNames[m]; ok {
		return name
	}
	return fmt.Sprintf("%#x", uint32(m))
}

// ParseDeviceType converts a device type name, or several joined by "|", to a
// DeviceType. Names are case-insensitive and the "AUDIO_DEVICE_" prefix is optional.
// Joined names must share one direction.
func ParseDeviceType(s string) (DeviceType, error) {
	var out DeviceType
	var inputs, outputs bool
	for _, part := range strings.Split(s, "|") {
		name := canonicalName(part, "AUDIO_DEVICE_")
		t, ok := deviceTypesByName[name]
		if !ok {
			return DeviceNone, fmt.Errorf("%w: %q", ErrUnknownDeviceType, strings.TrimSpace(part))
		}
		inputs = inputs || t.IsInput()
		outputs = outputs || t.IsOutput()
		out |= t
	}
	if inputs && outputs {
		return DeviceNone, fmt.Errorf("%w: %q", ErrMixedDirection, s)
	}
	return out, nil
}

// ParseFormat converts a format name to a Format. Names are case-insensitive
// and the "AUDIO_FORMAT_" prefix is optional.
func ParseFormat(s string) (Format, error) {
	f, ok := formatsByName[canonicalName(s, "AUDIO_FORMAT_")]
	if !ok {
		return FormatInvalid, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// ParseFormats converts a list of format names.
func ParseFormats(names []string) ([]Format, error) {
	out := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ParseChannelMask converts a channel mask name to a ChannelMask.
func ParseChannelMask(s string) (ChannelMask, error) {
	m, ok := channelMasksByName[canonicalName(s, "AUDIO_CHANNEL_")]
	if !ok {
		return ChannelNone, fmt.Errorf("%w: %q", ErrUnknownChannelMask, s)
	}
	return m, nil
}

// DeviceTypeNames returns every known single device type name, sorted.
func DeviceTypeNames() []string {
	out := make([]string, 0, len(deviceTypesByName))
	for name := range deviceTypesByName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func canonicalName(s, prefix string) string {
	name := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(name, prefix) {
		name = prefix + name
	}
	return name
}
