package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/mqtt"
)

// connectionMessage is the JSON body of a connection event.
//
//	{"state":"connected","address":"AA:BB:CC:DD:EE:FF","encoded_formats":["SBC","AAC"]}
//
// The device type comes from the last topic level unless the body names one.
type connectionMessage struct {
	Type           string   `json:"type,omitempty"`
	State          string   `json:"state"`
	Address        string   `json:"address"`
	EncodedFormats []string `json:"encoded_formats,omitempty"`
	Format         string   `json:"format,omitempty"`
}

// ParseConnectionMessage decodes a connection event received on topic.
func ParseConnectionMessage(topic string, payload []byte) (ConnectionEvent, error) {
	var msg connectionMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return ConnectionEvent{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	typeName := msg.Type
	if typeName == "" {
		typeName = mqtt.LastLevel(topic)
	}
	t, err := audio.ParseDeviceType(typeName)
	if err != nil {
		return ConnectionEvent{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	ev := ConnectionEvent{
		Type:          t,
		Address:       msg.Address,
		CurrentFormat: audio.FormatDefault,
		Source:        "mqtt",
	}

	switch strings.ToLower(msg.State) {
	case "connected", "available":
		ev.State = StateConnected
	case "disconnected", "unavailable":
		ev.State = StateDisconnected
	default:
		return ConnectionEvent{}, fmt.Errorf("%w: unknown state %q", ErrInvalidEvent, msg.State)
	}

	if ev.EncodedFormats, err = audio.ParseFormats(msg.EncodedFormats); err != nil {
		return ConnectionEvent{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	if msg.Format != "" {
		if ev.CurrentFormat, err = audio.ParseFormat(msg.Format); err != nil {
			return ConnectionEvent{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
	}
	return ev, nil
}

// HandleConnectionMessage applies a connection event received over MQTT.
// Its signature, bound to a context, fits mqtt.MessageHandler.
func (s *Service) HandleConnectionMessage(ctx context.Context, topic string, payload []byte) error {
	ev, err := ParseConnectionMessage(topic, payload)
	if err != nil {
		return err
	}
	return s.SetDeviceConnectionState(ctx, ev)
}
