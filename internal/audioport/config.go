package audioport

import "github.com/nerrad567/gray-logic-audio/internal/audio"

// Role is the role of a port in an audio patch.
type Role int

// Port roles. Output devices are sinks; input devices are sources.
const (
	RoleNone Role = iota
	RoleSource
	RoleSink
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleSink:
		return "sink"
	default:
		return "none"
	}
}

// Kind is the kind of entity a port represents.
type Kind int

// Port kinds.
const (
	KindNone Kind = iota
	KindDevice
	KindMix
)

// ConfigMask selects which fields of a Config are meaningful.
type ConfigMask uint32

// Config mask bits.
const (
	ConfigSampleRate ConfigMask = 1 << iota
	ConfigChannelMask
	ConfigFormat
	ConfigGain
	ConfigFlags
)

// Has reports whether every bit of bit is set in m.
func (m ConfigMask) Has(bit ConfigMask) bool {
	return m&bit == bit
}

// Gain is a gain setting expressed in millibels.
type Gain struct {
	Index       int               `json:"index"`
	ChannelMask audio.ChannelMask `json:"channel_mask,omitempty"`
	ValuesMB    []int32           `json:"values_mb,omitempty"`
	RampMs      uint32            `json:"ramp_ms,omitempty"`
}

// Config is a port configuration snapshot. Only the fields selected by
// Mask carry meaning; the identity fields are always filled.
type Config struct {
	ID          Handle            `json:"id"`
	Role        Role              `json:"role"`
	Kind        Kind              `json:"kind"`
	Mask        ConfigMask        `json:"mask"`
	SampleRate  uint32            `json:"sample_rate,omitempty"`
	ChannelMask audio.ChannelMask `json:"channel_mask,omitempty"`
	Format      audio.Format      `json:"format,omitempty"`
	Gain        Gain              `json:"gain"`
	Flags       uint32            `json:"flags,omitempty"`

	// Device extension.
	DeviceType audio.DeviceType `json:"device_type"`
	Address    string           `json:"address,omitempty"`
	HwModule   ModuleHandle     `json:"hw_module"`
}

// Descriptor is the externally visible description of a port.
type Descriptor struct {
	ID         Handle           `json:"id"`
	Role       Role             `json:"role"`
	Kind       Kind             `json:"kind"`
	Name       string           `json:"name"`
	Profiles   Profiles         `json:"profiles"`
	DeviceType audio.DeviceType `json:"device_type"`
	Address    string           `json:"address,omitempty"`
	HwModule   ModuleHandle     `json:"hw_module"`
	Active     Config           `json:"active_config"`
}
