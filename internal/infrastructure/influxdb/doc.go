// Package influxdb records audio routing metrics in InfluxDB.
//
// Three measurements are written:
//   - audio_connection: a device connecting or disconnecting
//   - audio_route: the result of resolving a routing strategy
//   - audio_registry: the number of available devices per role
//
// Writes are non-blocking and batched according to batch_size and
// flush_interval. Asynchronous write failures are delivered to the callback
// set with SetOnError. Metrics are optional: when influxdb.enabled is false,
// Connect returns ErrDisabled and the caller runs without them.
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteRoute("media", 2, "BT A2DP Out")
package influxdb
