package audioport

import (
	"fmt"
	"slices"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
)

// Pick limits applied by PickAudioProfile.
const (
	maxPickSampleRate   = 192000
	maxPickChannelCount = 8
)

// Profile describes one supported format together with the sample rates and
// channel masks available for it.
//
// A dynamic profile is one whose rates and masks are discovered at connection
// time (e.g. read from an HDMI sink's EDID) rather than declared up front.
type Profile struct {
	Format       audio.Format        `json:"format" yaml:"format"`
	SampleRates  []uint32            `json:"sample_rates,omitempty" yaml:"sample_rates"`
	ChannelMasks []audio.ChannelMask `json:"channel_masks,omitempty" yaml:"channel_masks"`
	Dynamic      bool                `json:"dynamic,omitempty" yaml:"dynamic"`
}

// Equal reports whether p and other describe the same capability.
func (p Profile) Equal(other Profile) bool {
	return p.Format == other.Format &&
		p.Dynamic == other.Dynamic &&
		slices.Equal(p.SampleRates, other.SampleRates) &&
		slices.Equal(p.ChannelMasks, other.ChannelMasks)
}

// supports reports whether the profile accepts the requested values.
// Zero values in the request mean "any".
func (p Profile) supports(rate uint32, mask audio.ChannelMask, format audio.Format) bool {
	if format != audio.FormatDefault && p.Format != format {
		return false
	}
	if rate != 0 && !slices.Contains(p.SampleRates, rate) {
		return false
	}
	if mask != audio.ChannelNone && !slices.Contains(p.ChannelMasks, mask) {
		return false
	}
	return true
}

// clone returns a deep copy of p.
func (p Profile) clone() Profile {
	cpy := p
	cpy.SampleRates = slices.Clone(p.SampleRates)
	cpy.ChannelMasks = slices.Clone(p.ChannelMasks)
	return cpy
}

// Profiles is an ordered list of audio profiles.
type Profiles []Profile

// HasDynamic reports whether any profile is dynamic.
func (ps Profiles) HasDynamic() bool {
	for _, p := range ps {
		if p.Dynamic {
			return true
		}
	}
	return false
}

// Contains reports whether an equal profile is present.
func (ps Profiles) Contains(p Profile) bool {
	return slices.ContainsFunc(ps, p.Equal)
}

// CheckExact returns nil if a single profile supports the requested rate,
// mask and format. Zero values in the request mean "any".
func (ps Profiles) CheckExact(rate uint32, mask audio.ChannelMask, format audio.Format) error {
	for _, p := range ps {
		if p.supports(rate, mask, format) {
			return nil
		}
	}
	return fmt.Errorf("%w: no profile supports rate=%d mask=%s format=%s",
		ErrBadValue, rate, mask, format)
}

// Pick selects the best sample rate, channel mask and format across all
// profiles. The format is chosen first (best PCM precision, otherwise the
// first concrete format); within profiles carrying the chosen format it then
// takes the mask with the most channels up to eight, and the highest sample
// rate up to 192 kHz. ok is false when no profile carries a concrete format,
// rate and mask.
func (ps Profiles) Pick() (rate uint32, mask audio.ChannelMask, format audio.Format, ok bool) {
	for _, p := range ps {
		if len(p.SampleRates) == 0 || len(p.ChannelMasks) == 0 {
			continue
		}
		if p.Format.BetterThan(format) {
			format = p.Format
		}
	}
	if format == audio.FormatDefault {
		return 0, audio.ChannelNone, audio.FormatDefault, false
	}

	for _, p := range ps {
		if p.Format != format {
			continue
		}
		for _, m := range p.ChannelMasks {
			n := m.Count()
			if n <= maxPickChannelCount && n > mask.Count() {
				mask = m
			}
		}
		for _, r := range p.SampleRates {
			if r <= maxPickSampleRate && r > rate {
				rate = r
			}
		}
	}
	if rate == 0 || mask == audio.ChannelNone {
		return 0, audio.ChannelNone, audio.FormatDefault, false
	}
	return rate, mask, format, true
}
