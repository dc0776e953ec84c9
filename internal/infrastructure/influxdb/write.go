package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementConnection = "audio_connection"
	MeasurementRoute      = "audio_route"
	MeasurementRegistry   = "audio_registry"
)

// WriteConnection records a device connecting (state 1) or disconnecting
// (state 0).
//
//	client.WriteConnection("AUDIO_DEVICE_OUT_HDMI", "hdmi-0", "HDMI Out", true)
func (c *Client) WriteConnection(deviceType, address, tagName string, connected bool) {
	c.write(ConnectionPoint(deviceType, address, tagName, connected, time.Now()))
}

// WriteRoute records the outcome of resolving a strategy: how many devices
// matched and which one is preferred ("" when none).
func (c *Client) WriteRoute(strategy string, devices int, preferred string) {
	c.write(RoutePoint(strategy, devices, preferred, time.Now()))
}

// WriteRegistrySize records the number of available devices per role
// ("output" or "input").
func (c *Client) WriteRegistrySize(role string, size int) {
	c.write(RegistryPoint(role, size, time.Now()))
}

func (c *Client) write(p *write.Point) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(p)
}

// ConnectionPoint builds an audio_connection point. The device type is a tag;
// the address is a field because it is unbounded.
func ConnectionPoint(deviceType, address, tagName string, connected bool, ts time.Time) *write.Point {
	state := 0
	if connected {
		state = 1
	}
	return write.NewPoint(
		MeasurementConnection,
		map[string]string{"device_type": deviceType},
		map[string]any{
			"state":    state,
			"address":  address,
			"tag_name": tagName,
		},
		ts,
	)
}

// RoutePoint builds an audio_route point tagged by strategy.
func RoutePoint(strategy string, devices int, preferred string, ts time.Time) *write.Point {
	return write.NewPoint(
		MeasurementRoute,
		map[string]string{"strategy": strategy},
		map[string]any{
			"devices":   devices,
			"preferred": preferred,
		},
		ts,
	)
}

// RegistryPoint builds an audio_registry point tagged by role.
func RegistryPoint(role string, size int, ts time.Time) *write.Point {
	return write.NewPoint(
		MeasurementRegistry,
		map[string]string{"role": role},
		map[string]any{"size": size},
		ts,
	)
}
