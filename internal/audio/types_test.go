package audio

import (
	"errors"
	"slices"
	"sort"
	"testing"
)

func TestDeviceType_Direction(t *testing.T) {
	tests := []struct {
		name     string
		in       DeviceType
		isOutput bool
		isInput  bool
	}{
		{"speaker", DeviceOutSpeaker, true, false},
		{"builtin mic", DeviceInBuiltinMic, false, true},
		{"none", DeviceNone, false, false},
		{"bare direction bit", DeviceBitIn, false, false},
		{"output mask", DeviceOutAllA2DP, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.IsOutput(); got != tt.isOutput {
				t.Errorf("IsOutput() = %v, want %v", got, tt.isOutput)
			}
			if got := tt.in.IsInput(); got != tt.isInput {
				t.Errorf("IsInput() = %v, want %v", got, tt.isInput)
			}
		})
	}
}

func TestDeviceType_Intersects(t *testing.T) {
	// Input wired headset shares bit 0x10 with output Bluetooth SCO.
	if DeviceInWiredHeadset.Intersects(DeviceOutBluetoothSCO) {
		t.Error("input and output types must never intersect")
	}
	if !DeviceOutAllA2DP.Intersects(DeviceOutBluetoothA2DPSpeaker) {
		t.Error("A2DP mask should intersect A2DP speaker")
	}
	if DeviceOutSpeaker.Intersects(DeviceOutEarpiece) {
		t.Error("speaker should not intersect earpiece")
	}
}

func TestDeviceType_Split(t *testing.T) {
	got := (DeviceInBuiltinMic | DeviceInWiredHeadset).Split()
	if len(got) != 2 {
		t.Fatalf("Split() returned %d types, want 2", len(got))
	}
	if got[0] != DeviceInBuiltinMic || got[1] != DeviceInWiredHeadset {
		t.Errorf("Split() = %v, want [builtin mic, wired headset]", got)
	}
}

func TestDeviceType_HasEncodingCapability(t *testing.T) {
	for _, dt := range []DeviceType{DeviceOutHDMI, DeviceOutBluetoothA2DP, DeviceOutHDMIArc} {
		if !dt.HasEncodingCapability() {
			t.Errorf("%s should have encoding capability", dt)
		}
	}
	for _, dt := range []DeviceType{DeviceOutSpeaker, DeviceInHDMI, DeviceOutAllA2DP} {
		if dt.HasEncodingCapability() {
			t.Errorf("%s should not have encoding capability", dt)
		}
	}
}

func TestDeviceType_StringAndParse(t *testing.T) {
	for _, dt := range []DeviceType{DeviceOutSpeaker, DeviceInRemoteSubmix, DeviceOutHDMI, DeviceNone} {
		parsed, err := ParseDeviceType(dt.String())
		if err != nil {
			t.Fatalf("ParseDeviceType(%q) error = %v", dt.String(), err)
		}
		if parsed != dt {
			t.Errorf("ParseDeviceType(%q) = %#x, want %#x", dt.String(), parsed, dt)
		}
	}

	mask, err := ParseDeviceType("out_wired_headset | AUDIO_DEVICE_OUT_WIRED_HEADPHONE")
	if err != nil {
		t.Fatalf("ParseDeviceType() error = %v", err)
	}
	if mask != DeviceOutWiredHeadset|DeviceOutWiredHeadphone {
		t.Errorf("ParseDeviceType() = %#x", mask)
	}
	if mask.String() != "AUDIO_DEVICE_OUT_WIRED_HEADSET|AUDIO_DEVICE_OUT_WIRED_HEADPHONE" {
		t.Errorf("String() = %q", mask.String())
	}

	if _, err := ParseDeviceType("AUDIO_DEVICE_OUT_TOASTER"); !errors.Is(err, ErrUnknownDeviceType) {
		t.Errorf("expected ErrUnknownDeviceType, got %v", err)
	}
	if _, err := ParseDeviceType("OUT_SPEAKER|IN_BUILTIN_MIC"); !errors.Is(err, ErrMixedDirection) {
		t.Errorf("expected ErrMixedDirection, got %v", err)
	}
}

func TestDeviceTypeNames(t *testing.T) {
	names := DeviceTypeNames()
	if !sort.StringsAreSorted(names) {
		t.Error("DeviceTypeNames() not sorted")
	}
	for _, want := range []string{"AUDIO_DEVICE_OUT_SPEAKER", "AUDIO_DEVICE_IN_BUILTIN_MIC"} {
		if !slices.Contains(names, want) {
			t.Errorf("DeviceTypeNames() missing %s", want)
		}
	}
}

func TestDeviceType_IsBluetoothA2DPOut(t *testing.T) {
	tests := []struct {
		t    DeviceType
		want bool
	}{
		{DeviceOutBluetoothA2DP, true},
		{DeviceOutBluetoothA2DPSpeaker, true},
		{DeviceOutAllA2DP, true},
		{DeviceOutBluetoothSCO, false},
		{DeviceOutBluetoothA2DP | DeviceOutSpeaker, false},
		{DeviceInBluetoothA2DP, false},
		{DeviceNone, false},
	}
	for _, tt := range tests {
		if got := tt.t.IsBluetoothA2DPOut(); got != tt.want {
			t.Errorf("%s.IsBluetoothA2DPOut() = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("ac3")
	if err != nil || f != FormatAC3 {
		t.Errorf("ParseFormat(ac3) = %v, %v", f, err)
	}
	if _, err := ParseFormat("AUDIO_FORMAT_WAV"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}

	formats, err := ParseFormats([]string{"AUDIO_FORMAT_AC3", "AUDIO_FORMAT_IEC61937"})
	if err != nil {
		t.Fatalf("ParseFormats() error = %v", err)
	}
	if len(formats) != 2 || formats[1] != FormatIEC61937 {
		t.Errorf("ParseFormats() = %v", formats)
	}
}

func TestFormat_BetterThan(t *testing.T) {
	tests := []struct {
		name  string
		f     Format
		other Format
		want  bool
	}{
		{"float beats 16 bit", FormatPCMFloat, FormatPCM16Bit, true},
		{"16 bit does not beat float", FormatPCM16Bit, FormatPCMFloat, false},
		{"anything beats default", FormatAC3, FormatDefault, true},
		{"default beats nothing", FormatDefault, FormatDefault, false},
		{"encoded keeps existing", FormatAC3, FormatEAC3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.BetterThan(tt.other); got != tt.want {
				t.Errorf("BetterThan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComparePriority(t *testing.T) {
	if ComparePriority(DeviceOutSpeaker, DeviceOutSpeaker) != 0 {
		t.Error("equal types must compare 0")
	}
	if ComparePriority(DeviceOutBluetoothA2DP, DeviceOutSpeaker) >= 0 {
		t.Error("A2DP should rank ahead of speaker")
	}
	if ComparePriority(DeviceInBuiltinMic, DeviceOutEarpiece) <= 0 {
		t.Error("outputs should rank ahead of inputs")
	}

	unranked := DeviceOutSpeaker | DeviceOutEarpiece
	if ComparePriority(unranked, DeviceOutEarpiece) <= 0 {
		t.Error("unranked masks should sort after ranked types")
	}
	if ComparePriority(unranked, unranked|DeviceOutLine) >= 0 {
		t.Error("unranked masks should order by numeric value")
	}
}

func TestChannelMask_Count(t *testing.T) {
	if ChannelOut5Point1.Count() != 6 {
		t.Errorf("5.1 Count() = %d, want 6", ChannelOut5Point1.Count())
	}
	if ChannelInStereo.Count() != 2 {
		t.Errorf("in stereo Count() = %d, want 2", ChannelInStereo.Count())
	}
}
