package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
)

func TestParseConnectionMessage(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		payload string
		want    ConnectionEvent
		wantErr bool
	}{
		{
			name:    "type from topic",
			topic:   "graylogic/audio/connection/OUT_BLUETOOTH_A2DP",
			payload: `{"state":"connected","address":"AA:BB","encoded_formats":["SBC","AAC"],"format":"AAC"}`,
			want: ConnectionEvent{
				Type:           audio.DeviceOutBluetoothA2DP,
				Address:        "AA:BB",
				State:          StateConnected,
				EncodedFormats: []audio.Format{audio.FormatSBC, audio.FormatAAC},
				CurrentFormat:  audio.FormatAAC,
				Source:         "mqtt",
			},
		},
		{
			name:    "type in body wins",
			topic:   "graylogic/audio/connection/anything",
			payload: `{"type":"AUDIO_DEVICE_OUT_HDMI","state":"Unavailable"}`,
			want: ConnectionEvent{
				Type:          audio.DeviceOutHDMI,
				State:         StateDisconnected,
				CurrentFormat: audio.FormatDefault,
				Source:        "mqtt",
			},
		},
		{name: "bad json", topic: "t/OUT_HDMI", payload: `{`, wantErr: true},
		{name: "unknown type", topic: "t/OUT_TOASTER", payload: `{"state":"connected"}`, wantErr: true},
		{name: "unknown state", topic: "t/OUT_HDMI", payload: `{"state":"maybe"}`, wantErr: true},
		{name: "unknown format", topic: "t/OUT_HDMI", payload: `{"state":"connected","format":"WAV9"}`, wantErr: true},
		{name: "unknown encoded format", topic: "t/OUT_HDMI", payload: `{"state":"connected","encoded_formats":["WAV9"]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConnectionMessage(tt.topic, []byte(tt.payload))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEvent) {
					t.Errorf("error = %v, want ErrInvalidEvent", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got.Type != tt.want.Type || got.Address != tt.want.Address || got.State != tt.want.State ||
				got.CurrentFormat != tt.want.CurrentFormat || got.Source != tt.want.Source {
				t.Errorf("event = %+v, want %+v", got, tt.want)
			}
			if len(got.EncodedFormats) != len(tt.want.EncodedFormats) {
				t.Fatalf("formats = %v, want %v", got.EncodedFormats, tt.want.EncodedFormats)
			}
			for i := range got.EncodedFormats {
				if got.EncodedFormats[i] != tt.want.EncodedFormats[i] {
					t.Errorf("formats[%d] = %v, want %v", i, got.EncodedFormats[i], tt.want.EncodedFormats[i])
				}
			}
		})
	}
}

func TestHandleConnectionMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	topic := "graylogic/audio/connection/OUT_HDMI"

	if err := f.svc.HandleConnectionMessage(ctx, topic, []byte(`{"state":"connected","address":"hdmi-0"}`)); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if got := f.svc.Devices(audio.DeviceOutHDMI); len(got) != 1 || got[0].Address != "hdmi-0" {
		t.Fatalf("HDMI devices = %+v", got)
	}
	if f.journal.entries[0].Source != "mqtt" {
		t.Errorf("journal source = %q, want mqtt", f.journal.entries[0].Source)
	}

	err := f.svc.HandleConnectionMessage(ctx, topic, []byte(`{"state":"connected","address":"hdmi-0"}`))
	if !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("duplicate connect error = %v, want ErrAlreadyConnected", err)
	}
	if err := f.svc.HandleConnectionMessage(ctx, topic, []byte(`nope`)); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("bad payload error = %v, want ErrInvalidEvent", err)
	}
}
