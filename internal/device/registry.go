package device

import (
	"slices"
	"strings"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
	"github.com/nerrad567/gray-logic-audio/internal/audioport"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry is an ordered, duplicate-free collection of devices.
//
// Members are kept sorted by Compare and no two members are Equals. The
// aggregate type mask is recomputed from the members on every change.
//
// The zero value is an empty registry ready to use. A Registry is not safe
// for concurrent use.
type Registry struct {
	devices []*Device
	types   audio.DeviceType
	logger  Logger
}

// NewRegistry creates a registry holding devices. Nil and duplicate devices
// are skipped.
func NewRegistry(devices ...*Device) *Registry {
	r := &Registry{logger: noopLogger{}}
	r.addAll(devices)
	return r
}

// SetLogger sets the logger for the registry. Registries derived from r by
// queries inherit it.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

func (r *Registry) log() Logger {
	if r == nil || r.logger == nil {
		return noopLogger{}
	}
	return r.logger
}

// derive returns an empty registry sharing r's logger.
func (r *Registry) derive() *Registry {
	return &Registry{logger: r.log()}
}

// Len returns the number of members.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.devices)
}

// IsEmpty reports whether the registry has no members.
func (r *Registry) IsEmpty() bool { return r.Len() == 0 }

// At returns the member at index i in registry order.
func (r *Registry) At(i int) *Device { return r.devices[i] }

// Devices returns the members in registry order. The slice is a copy; the
// devices are shared.
func (r *Registry) Devices() []*Device {
	if r == nil {
		return nil
	}
	return slices.Clone(r.devices)
}

// Types returns the bitwise OR of the member types.
func (r *Registry) Types() audio.DeviceType {
	if r == nil {
		return audio.DeviceNone
	}
	return r.types
}

// IndexOf returns the position of the member equal to d, or -1.
func (r *Registry) IndexOf(d *Device) int {
	if d == nil || r == nil {
		return -1
	}
	return slices.IndexFunc(r.devices, d.Equals)
}

// Contains reports whether a member equal to d exists.
func (r *Registry) Contains(d *Device) bool {
	return r.IndexOf(d) >= 0
}

// Add inserts d in order and returns its index. It returns -1, leaving the
// registry unchanged, when d is nil or an equal device is already a member.
func (r *Registry) Add(d *Device) int {
	if d == nil {
		return -1
	}
	if r.IndexOf(d) >= 0 {
		r.log().Warn("device already in registry", "type", d.deviceType, "address", d.address)
		return -1
	}
	r.insert(d)
	r.refreshTypes()
	return slices.Index(r.devices, d)
}

// AddAll adds every member of other that is not already present and returns
// how many were added.
func (r *Registry) AddAll(other *Registry) int {
	if other == nil {
		return 0
	}
	return r.addAll(other.devices)
}

func (r *Registry) addAll(devices []*Device) int {
	added := 0
	for _, d := range devices {
		if d == nil || r.IndexOf(d) >= 0 {
			continue
		}
		r.insert(d)
		added++
	}
	if added > 0 {
		r.refreshTypes()
	}
	return added
}

// insert places d at its sorted position. Members whose id changed since
// they were added may be out of place, so the whole slice is re-sorted.
func (r *Registry) insert(d *Device) {
	r.devices = append(r.devices, d)
	slices.SortFunc(r.devices, Compare)
}

// Remove removes the member equal to d and returns the index it had, or -1
// when no such member exists.
func (r *Registry) Remove(d *Device) int {
	i := r.IndexOf(d)
	if i < 0 {
		if d != nil {
			r.log().Warn("device not in registry", "type", d.deviceType, "address", d.address)
		}
		return -1
	}
	r.devices = slices.Delete(r.devices, i, i+1)
	r.refreshTypes()
	return i
}

// RemoveAll removes every member equal to a member of other and returns how
// many were removed.
func (r *Registry) RemoveAll(other *Registry) int {
	removed := 0
	for _, d := range other.Devices() {
		if r.Remove(d) >= 0 {
			removed++
		}
	}
	return removed
}

func (r *Registry) refreshTypes() {
	r.types = audio.DeviceNone
	for _, d := range r.devices {
		r.types |= d.deviceType
	}
	r.log().Debug("registry types refreshed", "types", r.types)
}

// DevicesFromHwModule returns the members attached to module.
func (r *Registry) DevicesFromHwModule(module audioport.ModuleHandle) *Registry {
	out := r.derive()
	for _, d := range r.Devices() {
		if d.ModuleHandle() == module {
			out.Add(d)
		}
	}
	return out
}

// DeviceTypesFromHwModule returns the OR of the types of members attached
// to module.
func (r *Registry) DeviceTypesFromHwModule(module audioport.ModuleHandle) audio.DeviceType {
	types := audio.DeviceNone
	for _, d := range r.Devices() {
		if d.ModuleHandle() == module {
			types |= d.deviceType
		}
	}
	return types
}

// Device returns a member of type t.
//
// With format FormatDefault, a member matches when address is "" or equals
// its address. With any other format, a member matches when it supports the
// format, whatever its address. Scanning stops at the first match whose
// address equals address; otherwise the last match found is returned. Nil
// means no member matched.
func (r *Registry) Device(t audio.DeviceType, address string, format audio.Format) *Device {
	var found *Device
	for _, d := range r.Devices() {
		if d.deviceType != t {
			continue
		}
		addressMatch := address == "" || d.address == address
		if (addressMatch && format == audio.FormatDefault) ||
			(format != audio.FormatDefault && d.SupportsFormat(format)) {
			found = d
			if d.address == address {
				break
			}
		}
	}
	r.log().Debug("device lookup", "type", t, "address", address, "format", format, "found", found != nil)
	return found
}

// DeviceFromID returns the member with the given id. HandleNone never
// matches.
func (r *Registry) DeviceFromID(id audioport.Handle) *Device {
	if id == audioport.HandleNone {
		return nil
	}
	for _, d := range r.Devices() {
		if d.id == id {
			return d
		}
	}
	return nil
}

// DevicesFromTypeMask returns the members sharing the direction of mask and
// at least one of its category bits.
func (r *Registry) DevicesFromTypeMask(mask audio.DeviceType) *Registry {
	out := r.derive()
	if mask.Category() == audio.DeviceNone {
		return out
	}
	for _, d := range r.Devices() {
		if mask.Intersects(d.deviceType) {
			out.Add(d)
		}
	}
	return out
}

// DeviceFromTagName returns the first member labelled tag, or nil.
func (r *Registry) DeviceFromTagName(tag string) *Device {
	for _, d := range r.Devices() {
		if d.tagName == tag {
			return d
		}
	}
	return nil
}

// FirstDevicesFromTypes returns the members matching the first entry of
// ordered that matches any, or an empty registry.
func (r *Registry) FirstDevicesFromTypes(ordered []audio.DeviceType) *Registry {
	for _, t := range ordered {
		if devices := r.DevicesFromTypeMask(t); !devices.IsEmpty() {
			return devices
		}
	}
	return r.derive()
}

// FirstExistingDevice returns the device Device(t, "", FormatDefault) finds
// for the first entry of ordered that finds one, or nil.
func (r *Registry) FirstExistingDevice(ordered []audio.DeviceType) *Device {
	for _, t := range ordered {
		if d := r.Device(t, "", audio.FormatDefault); d != nil {
			return d
		}
	}
	return nil
}

// ReplaceDevicesByType removes the members matching typeToRemove and adds
// toAdd. Nothing changes unless both sides are non-empty. It reports whether
// the replacement happened.
func (r *Registry) ReplaceDevicesByType(typeToRemove audio.DeviceType, toAdd *Registry) bool {
	toRemove := r.DevicesFromTypeMask(typeToRemove)
	if toRemove.IsEmpty() || toAdd.IsEmpty() {
		return false
	}
	r.RemoveAll(toRemove)
	r.AddAll(toAdd)
	r.log().Info("devices replaced", "removed", toRemove.String(), "added", toAdd.String())
	return true
}

// Filter returns the members of r that other contains, in r's order.
func (r *Registry) Filter(other *Registry) *Registry {
	out := r.derive()
	for _, d := range r.Devices() {
		if other.Contains(d) {
			out.Add(d)
		}
	}
	return out
}

// ContainsAtLeastOne reports whether r and other share a member.
func (r *Registry) ContainsAtLeastOne(other *Registry) bool {
	return !r.Filter(other).IsEmpty()
}

// ContainsAllDevices reports whether every member of other is in r. It is
// true when other is empty.
func (r *Registry) ContainsAllDevices(other *Registry) bool {
	return r.Filter(other).Len() == other.Len()
}

// FilterForEngine returns the members without the default remote submix
// placeholders (remote submix devices addressed "0").
func (r *Registry) FilterForEngine() *Registry {
	out := r.derive()
	for _, d := range r.Devices() {
		if d.deviceType.IsRemoteSubmix() && d.address == RemoteSubmixDefaultAddress {
			continue
		}
		out.Add(d)
	}
	return out
}

// RemoteSubmixDefaultAddress is the address of the remote submix device that
// stands for "no endpoint".
const RemoteSubmixDefaultAddress = "0"

// String renders the registry on one line: "{dev;dev}" in registry order,
// or AUDIO_DEVICE_NONE when empty.
func (r *Registry) String() string {
	if r.IsEmpty() {
		return audio.DeviceNone.String()
	}
	parts := make([]string, 0, r.Len())
	for _, d := range r.devices {
		parts = append(parts, d.String())
	}
	return "{" + strings.Join(parts, ";") + "}"
}

// Dump writes a multi-line description of every member under a "tag
// devices" heading. An empty registry writes nothing.
func (r *Registry) Dump(b *strings.Builder, tag string, spaces int, verbose bool) {
	if r.IsEmpty() {
		return
	}
	b.WriteString(strings.Repeat(" ", spaces))
	b.WriteString("- ")
	b.WriteString(tag)
	b.WriteString(" devices:\n")
	for i, d := range r.devices {
		d.Dump(b, spaces+2, i, verbose)
	}
}

// Infos returns a snapshot of every member in registry order.
func (r *Registry) Infos() []Info {
	infos := make([]Info, 0, r.Len())
	for _, d := range r.Devices() {
		infos = append(infos, d.Info())
	}
	return infos
}
