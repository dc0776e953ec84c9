package routing

import (
	"fmt"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
	"github.com/nerrad567/gray-logic-audio/internal/device"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/config"
)

// Strategy routes a class of streams to the first available device type of
// an ordered preference list.
type Strategy struct {
	Name  string
	Types []audio.DeviceType
}

// IsInput reports whether the strategy selects capture devices.
func (s Strategy) IsInput() bool {
	return len(s.Types) > 0 && s.Types[0].IsInput()
}

// Route is the resolution of a strategy against the available devices.
type Route struct {
	Strategy  string        `json:"strategy"`
	Devices   []device.Info `json:"devices"`
	Preferred *device.Info  `json:"preferred,omitempty"`
}

// parseStrategies converts configured strategies. All types of a strategy
// must share one direction.
func parseStrategies(cfgs []config.StrategyConfig) ([]Strategy, error) {
	out := make([]Strategy, 0, len(cfgs))
	seen := make(map[string]bool, len(cfgs))
	for _, sc := range cfgs {
		if sc.Name == "" || seen[sc.Name] {
			return nil, fmt.Errorf("%w: strategy name %q is empty or duplicated", ErrInvalidTopology, sc.Name)
		}
		seen[sc.Name] = true
		if len(sc.Types) == 0 {
			return nil, fmt.Errorf("%w: strategy %q has no types", ErrInvalidTopology, sc.Name)
		}

		s := Strategy{Name: sc.Name}
		for _, name := range sc.Types {
			t, err := audio.ParseDeviceType(name)
			if err != nil {
				return nil, fmt.Errorf("%w: strategy %q: %w", ErrInvalidTopology, sc.Name, err)
			}
			if len(s.Types) > 0 && t.IsInput() != s.Types[0].IsInput() {
				return nil, fmt.Errorf("%w: strategy %q mixes input and output types", ErrInvalidTopology, sc.Name)
			}
			s.Types = append(s.Types, t)
		}
		out = append(out, s)
	}
	return out, nil
}

// resolve computes the route of s against available.
func resolve(s Strategy, available *device.Registry) Route {
	engine := available.FilterForEngine()
	route := Route{
		Strategy: s.Name,
		Devices:  engine.FirstDevicesFromTypes(s.Types).Infos(),
	}
	if d := engine.FirstExistingDevice(s.Types); d != nil {
		info := d.Info()
		route.Preferred = &info
	}
	return route
}
