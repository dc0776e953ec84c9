package device

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
	"github.com/nerrad567/gray-logic-audio/internal/audioport"
)

// DefaultLegacyEncodedFormats lists the encoded formats injected into a
// device that is constructed without any. HDMI sinks declared against older
// HAL configurations omit their formats but are expected to pass AC3 through.
//
// To opt a single device out, declare its formats explicitly (for example
// just FormatPCM16Bit). To change the policy for a whole process, pass
// WithLegacyFormats or configure audio.legacy_encoded_formats.
var DefaultLegacyEncodedFormats = map[audio.DeviceType][]audio.Format{
	audio.DeviceOutHDMI: {audio.FormatAC3, audio.FormatIEC61937},
}

// sequence numbers devices in construction order. It is the final,
// deterministic tie-break of Compare.
var sequence atomic.Uint64

// Device is one routable audio endpoint.
//
// Its identity (type, address, encoded formats) is fixed at construction,
// except for the address which may be set once the physical instance is
// known. Its state (id, current encoded format, port config) changes over
// its lifetime.
type Device struct {
	deviceType           audio.DeviceType
	address              string
	tagName              string
	encodedFormats       []audio.Format
	currentEncodedFormat audio.Format
	id                   audioport.Handle
	seq                  uint64
	port                 *audioport.Port
}

type options struct {
	address  string
	formats  []audio.Format
	legacy   map[audio.DeviceType][]audio.Format
	profiles audioport.Profiles
}

// Option configures a Device at construction.
type Option func(*options)

// WithAddress sets the device address.
func WithAddress(address string) Option {
	return func(o *options) { o.address = address }
}

// WithEncodedFormats declares the encoded formats the device supports.
// Passing no formats is the same as not using the option.
func WithEncodedFormats(formats ...audio.Format) Option {
	return func(o *options) { o.formats = slices.Clone(formats) }
}

// WithLegacyFormats replaces DefaultLegacyEncodedFormats for this device.
// A nil map disables legacy injection.
func WithLegacyFormats(legacy map[audio.DeviceType][]audio.Format) Option {
	return func(o *options) { o.legacy = legacy }
}

// WithProfiles declares the audio profiles of the device's port.
func WithProfiles(profiles audioport.Profiles) Option {
	return func(o *options) { o.profiles = profiles }
}

// New creates a detached device of type t labelled tagName.
//
// When no encoded formats are declared, the formats listed for t in the
// legacy table (DefaultLegacyEncodedFormats unless overridden) are injected.
func New(t audio.DeviceType, tagName string, opts ...Option) *Device {
	o := options{legacy: DefaultLegacyEncodedFormats}
	for _, opt := range opts {
		opt(&o)
	}

	formats := o.formats
	if len(formats) == 0 {
		formats = slices.Clone(o.legacy[t])
	}

	role := audioport.RoleSink
	if t.IsInput() {
		role = audioport.RoleSource
	}

	return &Device{
		deviceType:           t,
		address:              o.address,
		tagName:              tagName,
		encodedFormats:       formats,
		currentEncodedFormat: audio.FormatDefault,
		id:                   audioport.HandleNone,
		seq:                  sequence.Add(1),
		port:                 audioport.NewPort(tagName, role, o.profiles),
	}
}

// Type returns the device type.
func (d *Device) Type() audio.DeviceType { return d.deviceType }

// Address returns the device address; "" means no specific instance.
func (d *Device) Address() string { return d.address }

// SetAddress sets the device address. Changing the address of a device that
// is already a registry member changes its identity; remove it first.
func (d *Device) SetAddress(address string) { d.address = address }

// TagName returns the configuration label of the device.
func (d *Device) TagName() string { return d.tagName }

// ID returns the registry-assigned handle, or HandleNone when detached.
func (d *Device) ID() audioport.Handle { return d.id }

// EncodedFormats returns a copy of the declared encoded formats.
func (d *Device) EncodedFormats() []audio.Format { return slices.Clone(d.encodedFormats) }

// CurrentEncodedFormat returns the negotiated encoded format, or
// FormatDefault when none has been selected.
func (d *Device) CurrentEncodedFormat() audio.Format { return d.currentEncodedFormat }

// SetCurrentEncodedFormat records the negotiated encoded format.
func (d *Device) SetCurrentEncodedFormat(f audio.Format) { d.currentEncodedFormat = f }

// Port returns the device's generic port state.
func (d *Device) Port() *audioport.Port { return d.port }

// ModuleHandle returns the handle of the module the device is attached to.
func (d *Device) ModuleHandle() audioport.ModuleHandle { return d.port.ModuleHandle() }

// Equals reports whether d and other are the same device: same type, same
// address (case-sensitive) and the same set of encoded formats. A nil device
// is never equal to anything.
func (d *Device) Equals(other *Device) bool {
	if d == nil || other == nil {
		return false
	}
	return d.deviceType == other.deviceType &&
		d.address == other.address &&
		sameFormatSet(d.encodedFormats, other.encodedFormats)
}

func sameFormatSet(a, b []audio.Format) bool {
	sa := make(map[audio.Format]struct{}, len(a))
	for _, f := range a {
		sa[f] = struct{}{}
	}
	sb := make(map[audio.Format]struct{}, len(b))
	for _, f := range b {
		if _, ok := sa[f]; !ok {
			return false
		}
		sb[f] = struct{}{}
	}
	return len(sa) == len(sb)
}

// HasCurrentEncodedFormat reports whether the device is ready to carry
// encoded audio: always for types without encoding capability or devices
// without format restrictions, otherwise only once a current encoded format
// has been selected.
func (d *Device) HasCurrentEncodedFormat() bool {
	if !d.deviceType.HasEncodingCapability() {
		return true
	}
	if len(d.encodedFormats) == 0 {
		return true
	}
	return d.currentEncodedFormat != audio.FormatDefault
}

// SupportsFormat reports whether the device accepts format. A device with no
// declared encoded formats accepts everything.
func (d *Device) SupportsFormat(format audio.Format) bool {
	if len(d.encodedFormats) == 0 {
		return true
	}
	return slices.Contains(d.encodedFormats, format)
}

// Attach attaches the device's port to module, then assigns a fresh id.
func (d *Device) Attach(module *audioport.HwModule, ids audioport.IDAllocator) {
	d.port.Attach(module)
	d.id = ids.NextUniqueID()
}

// Detach clears the id, then detaches the device's port from its module.
func (d *Device) Detach() {
	d.id = audioport.HandleNone
	d.port.Detach()
}

// ApplyAudioPortConfig validates cfg against the device's profiles and, if
// valid, applies it. When backup is non-nil it always receives the state
// from before the call, whether or not validation succeeded. The validation
// error is returned unchanged; nothing is rolled back.
func (d *Device) ApplyAudioPortConfig(cfg *audioport.Config, backup *audioport.Config) error {
	var local audioport.Config
	d.ToAudioPortConfig(&local, nil)

	err := d.port.Validate(cfg)
	if err == nil {
		d.port.ApplyConfig(cfg)
		d.port.ApplyPolicyConfig(cfg)
	}

	if backup != nil {
		*backup = local
	}
	return err
}

// ToAudioPortConfig fills dst with the device's active configuration. Fields
// selected by src override the device's values.
func (d *Device) ToAudioPortConfig(dst, src *audioport.Config) {
	mask := audioport.ConfigGain
	if d.port.SampleRate != 0 {
		mask |= audioport.ConfigSampleRate
	}
	if d.port.ChannelMask != audio.ChannelNone {
		mask |= audioport.ConfigChannelMask
	}
	if d.port.Format != audio.FormatInvalid {
		mask |= audioport.ConfigFormat
	}
	if d.port.Flags != 0 {
		mask |= audioport.ConfigFlags
	}
	if src != nil {
		mask |= src.Mask
	}
	dst.Mask = mask

	d.port.ToConfig(dst, src)
	dst.ID = d.id
	dst.Role = d.port.Role
	dst.Kind = audioport.KindDevice
	dst.DeviceType = d.deviceType
	dst.Address = d.address

	d.port.ToPolicyConfig(dst, src)
	dst.HwModule = d.ModuleHandle()
}

// ToAudioPort describes the device as an audio port.
func (d *Device) ToAudioPort() audioport.Descriptor {
	desc := audioport.Descriptor{
		ID:         d.id,
		Role:       d.port.Role,
		Kind:       audioport.KindDevice,
		Name:       d.tagName,
		Profiles:   slices.Clone(d.port.Profiles),
		DeviceType: d.deviceType,
		Address:    d.address,
		HwModule:   d.ModuleHandle(),
	}
	d.ToAudioPortConfig(&desc.Active, nil)
	return desc
}

// ImportAudioPortAndPickAudioProfile imports the profiles of src and selects
// the best sample rate, channel mask and format among them. It does nothing
// unless force is set or src advertises dynamic profiles.
func (d *Device) ImportAudioPortAndPickAudioProfile(src *audioport.Port, force bool) {
	if src == nil {
		return
	}
	if !force && !src.HasDynamicProfile() {
		return
	}
	d.port.ImportAudioPort(src)
	if rate, mask, format, ok := src.PickAudioProfile(); ok {
		d.port.SampleRate = rate
		d.port.ChannelMask = mask
		d.port.Format = format
	}
}

// String returns a one-line description of the device.
func (d *Device) String() string {
	if d == nil {
		return audio.DeviceNone.String()
	}
	return fmt.Sprintf("{type:%s, @:%s}", d.deviceType, d.address)
}

// Dump writes a multi-line description of the device, indented by spaces.
// index is the device's position in the enclosing dump.
func (d *Device) Dump(b *strings.Builder, spaces, index int, verbose bool) {
	pad := strings.Repeat(" ", spaces)
	fmt.Fprintf(b, "%sDevice %d:\n", pad, index+1)
	if d.id != audioport.HandleNone {
		fmt.Fprintf(b, "%s- id: %2d\n", pad, d.id)
	}
	if d.tagName != "" {
		fmt.Fprintf(b, "%s- tag name: %s\n", pad, d.tagName)
	}
	fmt.Fprintf(b, "%s- type: %s\n", pad, d.deviceType)
	if d.address != "" {
		fmt.Fprintf(b, "%s- address: %s\n", pad, d.address)
	}
	if len(d.encodedFormats) > 0 {
		names := make([]string, len(d.encodedFormats))
		for i, f := range d.encodedFormats {
			names[i] = f.String()
		}
		fmt.Fprintf(b, "%s- encoded formats: %s\n", pad, strings.Join(names, ", "))
	}
	if !verbose {
		return
	}
	if d.currentEncodedFormat != audio.FormatDefault {
		fmt.Fprintf(b, "%s- current encoded format: %s\n", pad, d.currentEncodedFormat)
	}
	if name := d.port.ModuleName(); name != "" {
		fmt.Fprintf(b, "%s- hw module: %s (%d)\n", pad, name, d.ModuleHandle())
	}
	for i, p := range d.port.Profiles {
		fmt.Fprintf(b, "%s- profile %d: %s rates=%v masks=%v dynamic=%t\n",
			pad, i+1, p.Format, p.SampleRates, p.ChannelMasks, p.Dynamic)
	}
}

// Info is a serialisable snapshot of a device.
type Info struct {
	ID                   audioport.Handle `json:"id"`
	Type                 string           `json:"type"`
	Address              string           `json:"address,omitempty"`
	TagName              string           `json:"tag_name,omitempty"`
	EncodedFormats       []string         `json:"encoded_formats,omitempty"`
	CurrentEncodedFormat string           `json:"current_encoded_format,omitempty"`
	Module               string           `json:"module,omitempty"`
}

// Info returns a snapshot of the device for API and MQTT payloads.
func (d *Device) Info() Info {
	info := Info{
		ID:      d.id,
		Type:    d.deviceType.String(),
		Address: d.address,
		TagName: d.tagName,
		Module:  d.port.ModuleName(),
	}
	for _, f := range d.encodedFormats {
		info.EncodedFormats = append(info.EncodedFormats, f.String())
	}
	if d.currentEncodedFormat != audio.FormatDefault {
		info.CurrentEncodedFormat = d.currentEncodedFormat.String()
	}
	return info
}
