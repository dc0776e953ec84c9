package device

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
	"github.com/nerrad567/gray-logic-audio/internal/audioport"
)

// recordingLogger captures warnings for assertions.
type recordingLogger struct {
	noopLogger
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func btDevice(address string) *Device {
	return New(audio.DeviceOutBluetoothA2DP, "BT "+address, WithAddress(address))
}

func TestRegistry_ZeroValue(t *testing.T) {
	var r Registry
	if !r.IsEmpty() || r.Types() != audio.DeviceNone {
		t.Fatal("zero registry should be empty")
	}
	if r.Add(New(audio.DeviceOutSpeaker, "spk")) != 0 {
		t.Fatal("Add() on zero registry should insert at 0")
	}
	if r.Types() != audio.DeviceOutSpeaker {
		t.Errorf("Types() = %s", r.Types())
	}
}

func TestRegistry_AddDeduplicates(t *testing.T) {
	var ids audioport.SequenceAllocator
	module := audioport.NewHwModule("primary", &ids)
	log := &recordingLogger{}

	r := NewRegistry()
	r.SetLogger(log)

	first := btDevice("AA:BB")
	first.Attach(module, &ids)
	if r.Add(first) < 0 {
		t.Fatal("Add() rejected first device")
	}
	firstID := first.ID()

	dup := btDevice("AA:BB")
	if got := r.Add(dup); got != -1 {
		t.Errorf("Add(duplicate) = %d, want -1", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if r.At(0) != first || first.ID() != firstID {
		t.Error("duplicate insert changed the existing member")
	}
	if len(log.warns) != 1 {
		t.Errorf("warnings = %v, want one", log.warns)
	}

	if r.Add(nil) != -1 {
		t.Error("Add(nil) should be rejected")
	}
}

func TestRegistry_TypesTracksMembership(t *testing.T) {
	spk := New(audio.DeviceOutSpeaker, "spk")
	hdmi := New(audio.DeviceOutHDMI, "hdmi")
	r := NewRegistry(spk, hdmi)

	if r.Types() != audio.DeviceOutSpeaker|audio.DeviceOutHDMI {
		t.Fatalf("Types() = %s", r.Types())
	}
	if r.Remove(spk) < 0 {
		t.Fatal("Remove() did not find speaker")
	}
	if r.Types() != audio.DeviceOutHDMI {
		t.Errorf("Types() after remove = %s", r.Types())
	}
	if r.Remove(spk) != -1 {
		t.Error("Remove() of non-member should return -1")
	}
	if r.Remove(nil) != -1 {
		t.Error("Remove(nil) should return -1")
	}
	r.Remove(hdmi)
	if r.Types() != audio.DeviceNone {
		t.Errorf("Types() of empty registry = %s", r.Types())
	}
}

func TestRegistry_AddAllAndRemoveAll(t *testing.T) {
	a, b, c := btDevice("A"), btDevice("B"), btDevice("C")
	r := NewRegistry(a)

	if got := r.AddAll(NewRegistry(a, b, c)); got != 2 {
		t.Errorf("AddAll() = %d, want 2", got)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	other := NewRegistry(b, New(audio.DeviceOutSpeaker, "spk"))
	if got := r.RemoveAll(other); got != 1 {
		t.Errorf("RemoveAll() = %d, want 1 (partial match)", got)
	}
	if r.Contains(b) || r.Len() != 2 {
		t.Errorf("after RemoveAll() = %s", r)
	}
	if r.AddAll(nil) != 0 {
		t.Error("AddAll(nil) should add nothing")
	}
}

func TestRegistry_Device(t *testing.T) {
	aa := btDevice("AA:BB")
	cc := btDevice("CC:DD")
	r := NewRegistry(aa, cc)

	t.Run("exact address", func(t *testing.T) {
		if got := r.Device(audio.DeviceOutBluetoothA2DP, "AA:BB", audio.FormatDefault); got != aa {
			t.Errorf("Device(AA:BB) = %v, want %v", got, aa)
		}
		if got := r.Device(audio.DeviceOutBluetoothA2DP, "CC:DD", audio.FormatDefault); got != cc {
			t.Errorf("Device(CC:DD) = %v, want %v", got, cc)
		}
	})

	t.Run("unknown address", func(t *testing.T) {
		if got := r.Device(audio.DeviceOutBluetoothA2DP, "EE:FF", audio.FormatDefault); got != nil {
			t.Errorf("Device(EE:FF) = %v, want nil", got)
		}
	})

	t.Run("empty address returns last candidate", func(t *testing.T) {
		want := r.At(r.Len() - 1)
		if got := r.Device(audio.DeviceOutBluetoothA2DP, "", audio.FormatDefault); got != want {
			t.Errorf("Device(\"\") = %v, want last scanned %v", got, want)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		if got := r.Device(audio.DeviceOutSpeaker, "", audio.FormatDefault); got != nil {
			t.Errorf("Device(speaker) = %v, want nil", got)
		}
	})
}

func TestRegistry_DeviceByFormat(t *testing.T) {
	ac3 := New(audio.DeviceOutHDMI, "hdmi-1", WithAddress("1"), WithEncodedFormats(audio.FormatAC3))
	dts := New(audio.DeviceOutHDMI, "hdmi-2", WithAddress("2"), WithEncodedFormats(audio.FormatDTS))
	open := New(audio.DeviceOutHDMI, "hdmi-3", WithAddress("3"), WithLegacyFormats(nil))
	r := NewRegistry(ac3, dts, open)

	t.Run("format match ignores address", func(t *testing.T) {
		got := r.Device(audio.DeviceOutHDMI, "9", audio.FormatDTS)
		if got == nil || !got.SupportsFormat(audio.FormatDTS) {
			t.Fatalf("Device(DTS) = %v", got)
		}
	})

	t.Run("address match stops the scan", func(t *testing.T) {
		if got := r.Device(audio.DeviceOutHDMI, "1", audio.FormatAC3); got != ac3 {
			t.Errorf("Device(1, AC3) = %v, want %v", got, ac3)
		}
	})

	t.Run("last format candidate wins without address match", func(t *testing.T) {
		// ac3 and open both accept AC3; the later one in registry order wins.
		want := ac3
		if r.IndexOf(open) > r.IndexOf(ac3) {
			want = open
		}
		if got := r.Device(audio.DeviceOutHDMI, "9", audio.FormatAC3); got != want {
			t.Errorf("Device(9, AC3) = %v, want %v", got, want)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		r := NewRegistry(ac3, dts)
		if got := r.Device(audio.DeviceOutHDMI, "", audio.FormatMP3); got != nil {
			t.Errorf("Device(MP3) = %v, want nil", got)
		}
	})
}

func TestRegistry_DeviceFromID(t *testing.T) {
	var ids audioport.SequenceAllocator
	module := audioport.NewHwModule("primary", &ids)
	spk := New(audio.DeviceOutSpeaker, "spk")
	spk.Attach(module, &ids)
	detached := New(audio.DeviceOutEarpiece, "ear")
	r := NewRegistry(spk, detached)

	if got := r.DeviceFromID(spk.ID()); got != spk {
		t.Errorf("DeviceFromID(%d) = %v", spk.ID(), got)
	}
	if got := r.DeviceFromID(audioport.HandleNone); got != nil {
		t.Errorf("DeviceFromID(none) = %v, want nil", got)
	}
	if got := r.DeviceFromID(9999); got != nil {
		t.Errorf("DeviceFromID(9999) = %v, want nil", got)
	}
}

func TestRegistry_DevicesFromTypeMask(t *testing.T) {
	aa := btDevice("AA:BB")
	cc := btDevice("CC:DD")
	spk := New(audio.DeviceOutSpeaker, "spk")
	mic := New(audio.DeviceInBuiltinMic, "mic")
	// Input sharing category bit 0x2 with DeviceOutSpeaker.
	ambient := New(audio.DeviceInAmbient, "ambient")
	r := NewRegistry(aa, cc, spk, mic, ambient)

	tests := []struct {
		name string
		mask audio.DeviceType
		want []*Device
	}{
		{"single type", audio.DeviceOutBluetoothA2DP, []*Device{aa, cc}},
		{"combined mask", audio.DeviceOutBluetoothA2DP | audio.DeviceOutSpeaker, []*Device{aa, cc, spk}},
		{"direction respected for outputs", audio.DeviceOutSpeaker, []*Device{spk}},
		{"direction respected for inputs", audio.DeviceInAmbient, []*Device{ambient}},
		{"input mask", audio.DeviceInBuiltinMic | audio.DeviceInAmbient, []*Device{mic, ambient}},
		{"none", audio.DeviceNone, nil},
		{"bare input bit", audio.DeviceBitIn, nil},
		{"no members", audio.DeviceOutHDMI, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.DevicesFromTypeMask(tt.mask)
			if got.Len() != len(tt.want) {
				t.Fatalf("DevicesFromTypeMask(%s) = %s, want %d devices", tt.mask, got, len(tt.want))
			}
			for _, d := range tt.want {
				if !got.Contains(d) {
					t.Errorf("result missing %s", d)
				}
			}
		})
	}
}

func TestRegistry_HwModuleQueries(t *testing.T) {
	var ids audioport.SequenceAllocator
	primary := audioport.NewHwModule("primary", &ids)
	a2dp := audioport.NewHwModule("a2dp", &ids)

	spk := New(audio.DeviceOutSpeaker, "spk")
	spk.Attach(primary, &ids)
	ear := New(audio.DeviceOutEarpiece, "ear")
	ear.Attach(primary, &ids)
	bt := btDevice("AA:BB")
	bt.Attach(a2dp, &ids)
	r := NewRegistry(spk, ear, bt)

	if got := r.DevicesFromHwModule(primary.Handle); got.Len() != 2 || got.Contains(bt) {
		t.Errorf("DevicesFromHwModule(primary) = %s", got)
	}
	if got := r.DeviceTypesFromHwModule(primary.Handle); got != audio.DeviceOutSpeaker|audio.DeviceOutEarpiece {
		t.Errorf("DeviceTypesFromHwModule(primary) = %s", got)
	}
	if got := r.DeviceTypesFromHwModule(audioport.ModuleNone); got != audio.DeviceNone {
		t.Errorf("DeviceTypesFromHwModule(none) = %s", got)
	}
}

func TestRegistry_DeviceFromTagName(t *testing.T) {
	spk := New(audio.DeviceOutSpeaker, "Speaker")
	r := NewRegistry(spk, New(audio.DeviceOutEarpiece, "Earpiece"))

	if got := r.DeviceFromTagName("Speaker"); got != spk {
		t.Errorf("DeviceFromTagName(Speaker) = %v", got)
	}
	if got := r.DeviceFromTagName("speaker"); got != nil {
		t.Errorf("tag lookup should be exact, got %v", got)
	}
}

func TestRegistry_PriorityFallback(t *testing.T) {
	spk := New(audio.DeviceOutSpeaker, "spk")
	hdmi := New(audio.DeviceOutHDMI, "hdmi")
	r := NewRegistry(spk, hdmi)
	order := []audio.DeviceType{audio.DeviceOutBluetoothA2DP, audio.DeviceOutHDMI, audio.DeviceOutSpeaker}

	if got := r.FirstDevicesFromTypes(order); got.Len() != 1 || !got.Contains(hdmi) {
		t.Errorf("FirstDevicesFromTypes() = %s, want {hdmi}", got)
	}
	if got := r.FirstExistingDevice(order); got != hdmi {
		t.Errorf("FirstExistingDevice() = %v, want hdmi", got)
	}
	if got := r.FirstDevicesFromTypes([]audio.DeviceType{audio.DeviceOutLine}); !got.IsEmpty() {
		t.Errorf("FirstDevicesFromTypes(line) = %s, want empty", got)
	}
	if got := r.FirstExistingDevice(nil); got != nil {
		t.Errorf("FirstExistingDevice(nil) = %v", got)
	}
}

func TestRegistry_ReplaceDevicesByType(t *testing.T) {
	t.Run("no member of the type", func(t *testing.T) {
		hdmi := New(audio.DeviceOutHDMI, "hdmi")
		r := NewRegistry(hdmi)
		x := btDevice("AA:BB")
		if r.ReplaceDevicesByType(audio.DeviceOutSpeaker, NewRegistry(x)) {
			t.Error("ReplaceDevicesByType() reported a replacement")
		}
		if r.Len() != 1 || r.Contains(x) {
			t.Errorf("registry changed: %s", r)
		}
	})

	t.Run("nothing to add", func(t *testing.T) {
		spk := New(audio.DeviceOutSpeaker, "spk")
		r := NewRegistry(spk)
		if r.ReplaceDevicesByType(audio.DeviceOutSpeaker, NewRegistry()) {
			t.Error("ReplaceDevicesByType() reported a replacement")
		}
		if !r.Contains(spk) {
			t.Error("speaker removed without replacement")
		}
	})

	t.Run("replaces", func(t *testing.T) {
		old := btDevice("AA:BB")
		spk := New(audio.DeviceOutSpeaker, "spk")
		r := NewRegistry(old, spk)
		replacement := btDevice("CC:DD")
		if !r.ReplaceDevicesByType(audio.DeviceOutBluetoothA2DP, NewRegistry(replacement)) {
			t.Fatal("ReplaceDevicesByType() did not replace")
		}
		if r.Contains(old) || !r.Contains(replacement) || !r.Contains(spk) {
			t.Errorf("after replace = %s", r)
		}
	})
}

func TestRegistry_SetAlgebra(t *testing.T) {
	x := New(audio.DeviceOutSpeaker, "x")
	y := btDevice("Y")
	z := New(audio.DeviceOutHDMI, "z")
	r1 := NewRegistry(x, y)
	r2 := NewRegistry(y, z)

	f := r1.Filter(r2)
	if f.Len() != 1 || !f.Contains(y) {
		t.Errorf("R1.Filter(R2) = %s, want {Y}", f)
	}
	if !r1.ContainsAtLeastOne(r2) {
		t.Error("R1.ContainsAtLeastOne(R2) = false")
	}
	if r1.ContainsAllDevices(r2) {
		t.Error("R1.ContainsAllDevices(R2) = true")
	}

	t.Run("filter is idempotent", func(t *testing.T) {
		self := r1.Filter(r1)
		if self.Len() != r1.Len() || !self.ContainsAllDevices(r1) {
			t.Errorf("R.Filter(R) = %s, want %s", self, r1)
		}
	})

	t.Run("contains all of empty and subsets", func(t *testing.T) {
		if !r1.ContainsAllDevices(NewRegistry()) {
			t.Error("ContainsAllDevices(empty) = false")
		}
		if !r1.ContainsAllDevices(nil) {
			t.Error("ContainsAllDevices(nil) = false")
		}
		if !r1.ContainsAllDevices(NewRegistry(y)) {
			t.Error("ContainsAllDevices(subset) = false")
		}
	})

	t.Run("membership uses equality", func(t *testing.T) {
		twin := btDevice("Y")
		if !r1.Contains(twin) || !r1.ContainsAtLeastOne(NewRegistry(twin)) {
			t.Error("equal but distinct device not recognised")
		}
	})

	t.Run("derived views share devices", func(t *testing.T) {
		y.SetCurrentEncodedFormat(audio.FormatSBC)
		if f.At(0).CurrentEncodedFormat() != audio.FormatSBC {
			t.Error("mutation not visible through derived registry")
		}
	})
}

func TestRegistry_FilterForEngine(t *testing.T) {
	submixDefault := New(audio.DeviceOutRemoteSubmix, "submix-0", WithAddress("0"))
	submixCast := New(audio.DeviceOutRemoteSubmix, "submix-cast", WithAddress("cast"))
	inSubmixDefault := New(audio.DeviceInRemoteSubmix, "in-submix-0", WithAddress("0"))
	spk := New(audio.DeviceOutSpeaker, "spk")
	lineZero := New(audio.DeviceOutLine, "line", WithAddress("0"))
	r := NewRegistry(submixDefault, submixCast, inSubmixDefault, spk, lineZero)

	got := r.FilterForEngine()
	if got.Len() != 3 {
		t.Fatalf("FilterForEngine() = %s, want 3 devices", got)
	}
	if got.Contains(submixDefault) || got.Contains(inSubmixDefault) {
		t.Error("default submix placeholders should be dropped")
	}

	// Relative order of survivors is preserved.
	var want []*Device
	for _, d := range r.Devices() {
		if d != submixDefault && d != inSubmixDefault {
			want = append(want, d)
		}
	}
	for i, d := range got.Devices() {
		if d != want[i] {
			t.Errorf("position %d = %s, want %s", i, d, want[i])
		}
	}
}

func TestRegistry_StringAndDump(t *testing.T) {
	empty := NewRegistry()
	if empty.String() != "AUDIO_DEVICE_NONE" {
		t.Errorf("empty String() = %q", empty.String())
	}
	var b strings.Builder
	empty.Dump(&b, "Available", 0, false)
	if b.Len() != 0 {
		t.Errorf("empty Dump() wrote %q", b.String())
	}

	r := NewRegistry(btDevice("AA:BB"), New(audio.DeviceOutSpeaker, "Speaker"))
	s := r.String()
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") || strings.Count(s, ";") != 1 {
		t.Errorf("String() = %q", s)
	}

	r.Dump(&b, "Available", 2, false)
	out := b.String()
	for _, want := range []string{"  - Available devices:", "Device 1:", "Device 2:", "Speaker", "AA:BB"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() missing %q:\n%s", want, out)
		}
	}
}

func TestRegistry_NilSafety(t *testing.T) {
	var r *Registry
	if r.Len() != 0 || !r.IsEmpty() || r.Contains(New(audio.DeviceOutSpeaker, "spk")) {
		t.Error("nil registry should behave as empty")
	}
	if r.Device(audio.DeviceOutSpeaker, "", audio.FormatDefault) != nil {
		t.Error("nil registry lookup should find nothing")
	}
	if got := r.DevicesFromTypeMask(audio.DeviceOutSpeaker); !got.IsEmpty() {
		t.Error("nil registry mask query should be empty")
	}
	if r.String() != "AUDIO_DEVICE_NONE" {
		t.Errorf("nil String() = %q", r.String())
	}
	if NewRegistry().IndexOf(nil) != -1 {
		t.Error("IndexOf(nil) should be -1")
	}
}

func TestRegistry_DerivedInheritLogger(t *testing.T) {
	log := &recordingLogger{}
	spk := New(audio.DeviceOutSpeaker, "spk")
	r := NewRegistry(spk)
	r.SetLogger(log)

	view := r.DevicesFromTypeMask(audio.DeviceOutSpeaker)
	view.Add(New(audio.DeviceOutSpeaker, "twin"))
	if len(log.warns) != 1 {
		t.Errorf("derived registry did not log through parent logger: %v", log.warns)
	}
}

func TestRegistry_Infos(t *testing.T) {
	r := NewRegistry(New(audio.DeviceOutSpeaker, "spk"), New(audio.DeviceOutHDMI, "hdmi"))
	infos := r.Infos()
	if len(infos) != 2 {
		t.Fatalf("Infos() = %d entries", len(infos))
	}
	for i, info := range infos {
		if info.TagName != r.At(i).TagName() {
			t.Errorf("Infos()[%d] = %+v, want tag %q", i, info, r.At(i).TagName())
		}
	}
}

func ExampleRegistry_FirstExistingDevice() {
	outputs := NewRegistry(
		New(audio.DeviceOutSpeaker, "Speaker"),
		New(audio.DeviceOutHDMI, "HDMI Out"),
	)
	best := outputs.FirstExistingDevice([]audio.DeviceType{
		audio.DeviceOutBluetoothA2DP, audio.DeviceOutHDMI, audio.DeviceOutSpeaker,
	})
	fmt.Println(best.TagName())
	// Output: HDMI Out
}
