// Package api implements the HTTP REST API of the audio service.
//
// It exposes the available device registries, routing strategy resolution,
// connection events, the text dump of the registries and the audit journal.
// Responses are JSON except the dump, which is plain text.
//
//	GET  /api/v1/health
//	GET  /api/v1/metrics
//	GET  /api/v1/devices?type=OUT_HDMI|OUT_SPEAKER
//	GET  /api/v1/devices/declared
//	GET  /api/v1/devices/types
//	GET  /api/v1/devices/{id}
//	POST /api/v1/devices/connection
//	GET  /api/v1/routes
//	GET  /api/v1/routes/{strategy}
//	GET  /api/v1/routes/{strategy}/preferred
//	GET  /api/v1/dump?verbose=true
//	GET  /api/v1/audit
//	GET  /api/v1/ws
//
// The WebSocket endpoint relays route and connection publications from the
// bus to subscribed clients on the channels route.changed, device.connected
// and device.disconnected.
//
// When a JWT secret is configured every endpoint except /health requires a
// bearer token (or ?token= for /ws). Observers may read, controllers may
// also post connection events and admins may also read the journal.
//
// The server degrades gracefully: without MQTT or the journal the
// corresponding parts of /metrics, /ws and /audit report that they are absent.
package api
