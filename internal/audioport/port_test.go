package audioport

import (
	"errors"
	"sync"
	"testing"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
)

func stereoPCMProfile() Profile {
	return Profile{
		Format:       audio.FormatPCM16Bit,
		SampleRates:  []uint32{44100, 48000},
		ChannelMasks: []audio.ChannelMask{audio.ChannelOutStereo},
	}
}

func TestSequenceAllocator(t *testing.T) {
	var ids SequenceAllocator
	if got := ids.NextUniqueID(); got != 1 {
		t.Fatalf("first id = %d, want 1", got)
	}

	const workers = 8
	seen := make(chan Handle, workers*100)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				seen <- ids.NextUniqueID()
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[Handle]bool)
	for h := range seen {
		if h == HandleNone {
			t.Fatal("allocator returned HandleNone")
		}
		if unique[h] {
			t.Fatalf("duplicate handle %d", h)
		}
		unique[h] = true
	}
}

func TestPort_AttachDetach(t *testing.T) {
	var ids SequenceAllocator
	module := NewHwModule("primary", &ids)
	p := NewPort("speaker", RoleSink, nil)

	if p.ModuleHandle() != ModuleNone {
		t.Fatal("new port should not be attached")
	}
	p.Attach(module)
	if p.ModuleHandle() != module.Handle || p.ModuleName() != "primary" {
		t.Errorf("attached module = %d/%q", p.ModuleHandle(), p.ModuleName())
	}
	p.Detach()
	if p.Module() != nil {
		t.Error("Detach() should clear the module")
	}
}

func TestPort_Validate(t *testing.T) {
	p := NewPort("speaker", RoleSink, Profiles{stereoPCMProfile()})

	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{"nil config", nil, ErrNilConfig},
		{"empty mask", &Config{}, nil},
		{"supported rate", &Config{Mask: ConfigSampleRate, SampleRate: 48000}, nil},
		{"unsupported rate", &Config{Mask: ConfigSampleRate, SampleRate: 96000}, ErrBadValue},
		{"unmasked bad rate ignored", &Config{SampleRate: 96000}, nil},
		{
			"supported combination",
			&Config{Mask: ConfigSampleRate | ConfigChannelMask | ConfigFormat, SampleRate: 44100,
				ChannelMask: audio.ChannelOutStereo, Format: audio.FormatPCM16Bit},
			nil,
		},
		{"unsupported format", &Config{Mask: ConfigFormat, Format: audio.FormatAC3}, ErrBadValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Validate(tt.cfg)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPort_ApplyAndSnapshot(t *testing.T) {
	p := NewPort("speaker", RoleSink, Profiles{stereoPCMProfile()})
	p.ApplyConfig(&Config{
		Mask:       ConfigSampleRate | ConfigGain,
		SampleRate: 48000,
		Gain:       Gain{Index: 0, ValuesMB: []int32{-600}},
		Flags:      7,
	})
	p.ApplyPolicyConfig(&Config{Mask: ConfigFlags, Flags: 4})

	if p.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", p.SampleRate)
	}
	if p.Flags != 4 {
		t.Errorf("Flags = %d, want 4", p.Flags)
	}

	dst := &Config{Mask: ConfigSampleRate | ConfigGain | ConfigFlags}
	src := &Config{Mask: ConfigGain, Gain: Gain{Index: 1, ValuesMB: []int32{-300}}}
	p.ToConfig(dst, src)
	p.ToPolicyConfig(dst, src)

	if dst.SampleRate != 48000 {
		t.Errorf("dst.SampleRate = %d, want 48000", dst.SampleRate)
	}
	if dst.Gain.Index != 1 || dst.Gain.ValuesMB[0] != -300 {
		t.Errorf("src gain should override port gain, got %+v", dst.Gain)
	}
	if dst.Flags != 4 {
		t.Errorf("dst.Flags = %d, want 4", dst.Flags)
	}
	if dst.Format != audio.FormatInvalid {
		t.Errorf("unselected format should be invalid, got %s", dst.Format)
	}

	// The snapshot must not alias the port's gain values.
	src.Gain.ValuesMB[0] = 0
	if dst.Gain.ValuesMB[0] != -300 {
		t.Error("snapshot gain aliases the source slice")
	}
}

func TestPort_ImportAudioPort(t *testing.T) {
	dyn := Profile{Format: audio.FormatAC3, SampleRates: []uint32{48000},
		ChannelMasks: []audio.ChannelMask{audio.ChannelOut5Point1}, Dynamic: true}
	src := NewPort("hdmi-sink", RoleSink, Profiles{stereoPCMProfile(), dyn})
	dst := NewPort("hdmi", RoleSink, Profiles{stereoPCMProfile()})

	dst.ImportAudioPort(src)
	if len(dst.Profiles) != 2 {
		t.Fatalf("Profiles = %d, want 2 (duplicate skipped)", len(dst.Profiles))
	}
	if !dst.HasDynamicProfile() {
		t.Error("imported dynamic profile should be visible")
	}

	src.Profiles[1].SampleRates[0] = 1
	if dst.Profiles[1].SampleRates[0] != 48000 {
		t.Error("imported profile aliases the source")
	}
}

func TestProfiles_Pick(t *testing.T) {
	tests := []struct {
		name       string
		profiles   Profiles
		wantOK     bool
		wantRate   uint32
		wantMask   audio.ChannelMask
		wantFormat audio.Format
	}{
		{"empty", nil, false, 0, audio.ChannelNone, audio.FormatDefault},
		{
			"unfilled dynamic profile",
			Profiles{{Format: audio.FormatPCM16Bit, Dynamic: true}},
			false, 0, audio.ChannelNone, audio.FormatDefault,
		},
		{
			"prefers float over 16 bit",
			Profiles{
				stereoPCMProfile(),
				{Format: audio.FormatPCMFloat, SampleRates: []uint32{48000, 384000},
					ChannelMasks: []audio.ChannelMask{audio.ChannelOutMono, audio.ChannelOut7Point1}},
			},
			true, 48000, audio.ChannelOut7Point1, audio.FormatPCMFloat,
		},
		{
			"first encoded format wins",
			Profiles{
				{Format: audio.FormatAC3, SampleRates: []uint32{48000}, ChannelMasks: []audio.ChannelMask{audio.ChannelOut5Point1}},
				{Format: audio.FormatEAC3, SampleRates: []uint32{96000}, ChannelMasks: []audio.ChannelMask{audio.ChannelOut7Point1}},
			},
			true, 48000, audio.ChannelOut5Point1, audio.FormatAC3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, mask, format, ok := tt.profiles.Pick()
			if ok != tt.wantOK || rate != tt.wantRate || mask != tt.wantMask || format != tt.wantFormat {
				t.Errorf("Pick() = (%d, %s, %s, %v), want (%d, %s, %s, %v)",
					rate, mask, format, ok, tt.wantRate, tt.wantMask, tt.wantFormat, tt.wantOK)
			}
		})
	}
}
