package audioport

import (
	"fmt"
	"slices"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
)

// Port is the generic state every audio port carries: declared profiles, the
// active sample rate, channel mask, format, gain and flags, and the module
// the port is attached to.
type Port struct {
	Name     string
	Role     Role
	Profiles Profiles

	SampleRate  uint32
	ChannelMask audio.ChannelMask
	Format      audio.Format
	Gain        Gain
	Flags       uint32

	module *HwModule
}

// NewPort creates a detached port. The format starts as FormatInvalid so
// that snapshots do not advertise a format until one is picked or applied.
func NewPort(name string, role Role, profiles Profiles) *Port {
	return &Port{
		Name:     name,
		Role:     role,
		Profiles: profiles,
		Format:   audio.FormatInvalid,
	}
}

// Attach associates the port with a hardware module.
func (p *Port) Attach(module *HwModule) {
	p.module = module
}

// Detach clears the module association.
func (p *Port) Detach() {
	p.module = nil
}

// Module returns the attached module, or nil.
func (p *Port) Module() *HwModule {
	return p.module
}

// ModuleHandle returns the attached module's handle, or ModuleNone.
func (p *Port) ModuleHandle() ModuleHandle {
	if p.module == nil {
		return ModuleNone
	}
	return p.module.Handle
}

// ModuleName returns the attached module's name, or "".
func (p *Port) ModuleName() string {
	if p.module == nil {
		return ""
	}
	return p.module.Name
}

// HasDynamicProfile reports whether any declared profile is dynamic.
func (p *Port) HasDynamicProfile() bool {
	return p.Profiles.HasDynamic()
}

// ImportAudioPort copies every profile of src that this port does not
// already declare.
func (p *Port) ImportAudioPort(src *Port) {
	if src == nil || src == p {
		return
	}
	for _, prof := range src.Profiles {
		if !p.Profiles.Contains(prof) {
			p.Profiles = append(p.Profiles, prof.clone())
		}
	}
}

// PickAudioProfile selects the best rate, mask and format across the
// port's profiles. See Profiles.Pick.
func (p *Port) PickAudioProfile() (rate uint32, mask audio.ChannelMask, format audio.Format, ok bool) {
	return p.Profiles.Pick()
}

// Validate checks that every field selected by cfg.Mask is supported by a
// single declared profile.
func (p *Port) Validate(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}

	var (
		rate   uint32
		mask   audio.ChannelMask
		format audio.Format
	)
	if cfg.Mask.Has(ConfigSampleRate) {
		rate = cfg.SampleRate
	}
	if cfg.Mask.Has(ConfigChannelMask) {
		mask = cfg.ChannelMask
	}
	if cfg.Mask.Has(ConfigFormat) {
		format = cfg.Format
	}
	if rate == 0 && mask == audio.ChannelNone && format == audio.FormatDefault {
		return nil
	}
	if err := p.Profiles.CheckExact(rate, mask, format); err != nil {
		return fmt.Errorf("validating config for port %q: %w", p.Name, err)
	}
	return nil
}

// ApplyConfig copies the generic fields selected by cfg.Mask onto the port.
// Flags are policy-specific and are applied by ApplyPolicyConfig.
func (p *Port) ApplyConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Mask.Has(ConfigSampleRate) {
		p.SampleRate = cfg.SampleRate
	}
	if cfg.Mask.Has(ConfigChannelMask) {
		p.ChannelMask = cfg.ChannelMask
	}
	if cfg.Mask.Has(ConfigFormat) {
		p.Format = cfg.Format
	}
	if cfg.Mask.Has(ConfigGain) {
		p.Gain = cloneGain(cfg.Gain)
	}
}

// ApplyPolicyConfig copies the policy-specific fields (flags) selected by
// cfg.Mask onto the port.
func (p *Port) ApplyPolicyConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Mask.Has(ConfigFlags) {
		p.Flags = cfg.Flags
	}
}

// ToConfig fills the generic fields of dst that dst.Mask selects, using the
// port's active values. When src selects the same field, src's value wins.
// Fields not selected by dst.Mask are zeroed.
func (p *Port) ToConfig(dst, src *Config) {
	pick := func(bit ConfigMask) bool {
		return src != nil && src.Mask.Has(bit)
	}

	switch {
	case !dst.Mask.Has(ConfigSampleRate):
		dst.SampleRate = 0
	case pick(ConfigSampleRate):
		dst.SampleRate = src.SampleRate
	default:
		dst.SampleRate = p.SampleRate
	}

	switch {
	case !dst.Mask.Has(ConfigChannelMask):
		dst.ChannelMask = audio.ChannelNone
	case pick(ConfigChannelMask):
		dst.ChannelMask = src.ChannelMask
	default:
		dst.ChannelMask = p.ChannelMask
	}

	switch {
	case !dst.Mask.Has(ConfigFormat):
		dst.Format = audio.FormatInvalid
	case pick(ConfigFormat):
		dst.Format = src.Format
	default:
		dst.Format = p.Format
	}

	switch {
	case !dst.Mask.Has(ConfigGain):
		dst.Gain = Gain{Index: -1}
	case pick(ConfigGain):
		dst.Gain = cloneGain(src.Gain)
	default:
		dst.Gain = cloneGain(p.Gain)
	}
}

// ToPolicyConfig fills the policy-specific fields of dst.
func (p *Port) ToPolicyConfig(dst, src *Config) {
	switch {
	case !dst.Mask.Has(ConfigFlags):
		dst.Flags = 0
	case src != nil && src.Mask.Has(ConfigFlags):
		dst.Flags = src.Flags
	default:
		dst.Flags = p.Flags
	}
}

func cloneGain(g Gain) Gain {
	g.ValuesMB = slices.Clone(g.ValuesMB)
	return g
}
