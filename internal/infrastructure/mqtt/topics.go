package mqtt

import "fmt"

// Topic prefixes for the audio service.
//
// Every topic lives under graylogic/audio so the service can share a broker
// with the rest of the Gray Logic stack.
const (
	// TopicPrefixAudio is the base for all audio topics.
	TopicPrefixAudio = "graylogic/audio"
)

// Topics provides builders for audio MQTT topics.
//
//	topics := mqtt.Topics{}
//	routeTopic := topics.Route("media")
//	// Returns: "graylogic/audio/route/media"
type Topics struct{}

// Connection returns the topic on which connection events for a device type
// are received. The type is the canonical name without its prefix.
//
// Example: graylogic/audio/connection/OUT_BLUETOOTH_A2DP
func (Topics) Connection(deviceType string) string {
	return fmt.Sprintf("%s/connection/%s", TopicPrefixAudio, deviceType)
}

// Route returns the retained topic carrying the resolved devices of a
// strategy.
//
// Example: graylogic/audio/route/media
func (Topics) Route(strategy string) string {
	return fmt.Sprintf("%s/route/%s", TopicPrefixAudio, strategy)
}

// Event returns the topic for registry change events.
//
// Example: graylogic/audio/event/device_connected
func (Topics) Event(eventType string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefixAudio, eventType)
}

// Status returns the service status topic (online/offline, LWT).
//
// Example: graylogic/audio/status
func (Topics) Status() string {
	return TopicPrefixAudio + "/status"
}

// AllConnections returns a pattern matching every connection event topic.
//
// Pattern: graylogic/audio/connection/+
func (Topics) AllConnections() string {
	return TopicPrefixAudio + "/connection/+"
}

// AllRoutes returns a pattern matching every route topic.
//
// Pattern: graylogic/audio/route/+
func (Topics) AllRoutes() string {
	return TopicPrefixAudio + "/route/+"
}

// AllEvents returns a pattern matching every registry change event topic.
//
// Pattern: graylogic/audio/event/+
func (Topics) AllEvents() string {
	return TopicPrefixAudio + "/event/+"
}

// LastLevel returns the final level of a topic, or "" for an empty topic.
//
// LastLevel("graylogic/audio/connection/OUT_HDMI") returns "OUT_HDMI".
func LastLevel(topic string) string {
	for i := len(topic) - 1; i >= 0; i-- {
		if topic[i] == '/' {
			return topic[i+1:]
		}
	}
	return topic
}
