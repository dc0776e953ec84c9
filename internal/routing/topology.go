package routing

import (
	"fmt"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
	"github.com/nerrad567/gray-logic-audio/internal/audioport"
	"github.com/nerrad567/gray-logic-audio/internal/device"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/config"
)

// declaration is a configured device together with the module it belongs to.
type declaration struct {
	template *device.Device
	module   *audioport.HwModule
	attached bool
}

// topology is the device catalogue built from configuration.
type topology struct {
	modules      []*audioport.HwModule
	declarations []declaration
	declared     *device.Registry
	legacy       map[audio.DeviceType][]audio.Format
}

// moduleOf returns the module that declared template.
func (t *topology) moduleOf(template *device.Device) *audioport.HwModule {
	for _, d := range t.declarations {
		if d.template == template {
			return d.module
		}
	}
	return nil
}

func buildTopology(cfg config.AudioConfig, ids audioport.IDAllocator) (*topology, error) {
	legacy, ok := cfg.LegacyFormats()
	if !ok {
		legacy = device.DefaultLegacyEncodedFormats
	}

	topo := &topology{declared: device.NewRegistry(), legacy: legacy}
	for _, mc := range cfg.Modules {
		module := audioport.NewHwModule(mc.Name, ids)
		topo.modules = append(topo.modules, module)

		for _, dc := range mc.Devices {
			template, err := declareDevice(dc, legacy)
			if err != nil {
				return nil, fmt.Errorf("%w: module %q device %q: %w", ErrInvalidTopology, mc.Name, dc.TagName, err)
			}
			if topo.declared.Add(template) < 0 {
				return nil, fmt.Errorf("%w: module %q device %q is declared twice", ErrInvalidTopology, mc.Name, dc.TagName)
			}
			topo.declarations = append(topo.declarations, declaration{
				template: template,
				module:   module,
				attached: dc.Attached,
			})
		}
	}
	return topo, nil
}

func declareDevice(dc config.AudioDeviceConfig, legacy map[audio.DeviceType][]audio.Format) (*device.Device, error) {
	t, err := audio.ParseDeviceType(dc.Type)
	if err != nil {
		return nil, err
	}
	if t.CategoryCount() != 1 {
		return nil, fmt.Errorf("type %q must name exactly one device type", dc.Type)
	}
	formats, err := audio.ParseFormats(dc.EncodedFormats)
	if err != nil {
		return nil, err
	}
	profiles, err := parseProfiles(dc.Profiles)
	if err != nil {
		return nil, err
	}

	return device.New(t, dc.TagName,
		device.WithAddress(dc.Address),
		device.WithEncodedFormats(formats...),
		device.WithLegacyFormats(legacy),
		device.WithProfiles(profiles),
	), nil
}

func parseProfiles(cfgs []config.AudioProfileConfig) (audioport.Profiles, error) {
	var out audioport.Profiles
	for _, pc := range cfgs {
		format, err := audio.ParseFormat(pc.Format)
		if err != nil {
			return nil, err
		}
		p := audioport.Profile{
			Format:      format,
			SampleRates: append([]uint32(nil), pc.SampleRates...),
			Dynamic:     pc.Dynamic,
		}
		for _, name := range pc.ChannelMasks {
			mask, err := audio.ParseChannelMask(name)
			if err != nil {
				return nil, err
			}
			p.ChannelMasks = append(p.ChannelMasks, mask)
		}
		out = append(out, p)
	}
	return out, nil
}

// instantiate creates a concrete device from a declared template, taking
// the connection's address and encoded formats when given.
func (t *topology) instantiate(template *device.Device, address string, formats []audio.Format) *device.Device {
	if len(formats) == 0 {
		formats = template.EncodedFormats()
	}
	d := device.New(template.Type(), template.TagName(),
		device.WithAddress(address),
		device.WithEncodedFormats(formats...),
		device.WithLegacyFormats(t.legacy),
	)
	d.ImportAudioPortAndPickAudioProfile(template.Port(), true)
	return d
}
