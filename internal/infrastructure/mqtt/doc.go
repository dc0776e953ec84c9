// Package mqtt connects the audio service to the Gray Logic MQTT bus.
//
// Inbound, it carries device connection events published by bridges on
// graylogic/audio/connection/{TYPE}. Outbound, it publishes the resolved
// device list of every routing strategy as a retained message on
// graylogic/audio/route/{strategy}, plus registry change events.
//
// The client reconnects automatically with backoff, restores subscriptions
// after a reconnect, and registers a Last Will so subscribers see the
// service go offline.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllConnections(), 1,
//	    func(topic string, payload []byte) error {
//	        return svc.HandleConnectionMessage(ctx, topic, payload)
//	    })
package mqtt
