// Package routing keeps the registries of available audio devices current
// and resolves routing strategies against them.
//
// A Service is built from the audio section of the configuration. Declared
// devices form a catalogue of templates, one per hardware module entry;
// attached devices are available from startup and the rest become available
// through connection events (SetDeviceConnectionState, or MQTT messages via
// HandleConnectionMessage).
//
// Every connection change is journalled, measured and followed by the
// republication of every strategy's route. Routes resolve by filtering the
// available devices for the engine and taking the devices of the first
// strategy type that matches any:
//
//	svc, err := routing.New(cfg.Audio, routing.Deps{Journal: repo, Publisher: mqttClient})
//	if err != nil {
//	    return err
//	}
//	route, err := svc.Route("media")
//
// The device registries are not safe for concurrent use; Service serialises
// access to them and only hands out snapshots.
package routing
