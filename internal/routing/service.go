package routing

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
	"github.com/nerrad567/gray-logic-audio/internal/audioport"
	"github.com/nerrad567/gray-logic-audio/internal/audit"
	"github.com/nerrad567/gray-logic-audio/internal/device"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-audio/internal/infrastructure/mqtt"
)

// Logger defines the logging interface used by the Service.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Journal records connection and routing activity.
type Journal interface {
	Create(ctx context.Context, log *audit.AuditLog) error
}

// Metrics receives connection and routing measurements.
type Metrics interface {
	WriteConnection(deviceType, address, tagName string, connected bool)
	WriteRoute(strategy string, devices int, preferred string)
	WriteRegistrySize(role string, size int)
}

// Publisher sends route and event payloads to the message bus.
type Publisher interface {
	PublishJSON(topic string, v any, retained bool) error
}

// Deps holds the optional collaborators of a Service. Nil members are
// skipped.
type Deps struct {
	Journal   Journal
	Metrics   Metrics
	Publisher Publisher
	Logger    Logger
	IDs       audioport.IDAllocator
}

// ConnectionState is the state carried by a connection event.
type ConnectionState int

// Connection states.
const (
	StateDisconnected ConnectionState = iota
	StateConnected
)

// String returns "connected" or "disconnected".
func (s ConnectionState) String() string {
	if s == StateConnected {
		return "connected"
	}
	return "disconnected"
}

// ConnectionEvent reports a device becoming available or unavailable.
type ConnectionEvent struct {
	Type    audio.DeviceType
	Address string
	State   ConnectionState

	// EncodedFormats overrides the declared formats of the device.
	EncodedFormats []audio.Format

	// CurrentFormat is the encoded format negotiated on connection, or
	// audio.FormatDefault.
	CurrentFormat audio.Format

	// Source names the origin of the event for the journal ("api", "mqtt").
	Source string
}

// Service owns the available device registries and resolves strategies.
//
// Thread Safety:
//   - All methods are safe for concurrent use; registries are only touched
//     under mu and callers receive snapshots.
type Service struct {
	mu         sync.RWMutex
	topo       *topology
	ids        audioport.IDAllocator
	outputs    *device.Registry
	inputs     *device.Registry
	strategies []Strategy

	journal   Journal
	metrics   Metrics
	publisher Publisher
	logger    Logger
}

// New builds a Service from the audio configuration. Declared devices marked
// attached are instantiated, attached to their module and made available.
func New(cfg config.AudioConfig, deps Deps) (*Service, error) {
	s := &Service{
		ids:       deps.IDs,
		journal:   deps.Journal,
		metrics:   deps.Metrics,
		publisher: deps.Publisher,
		logger:    deps.Logger,
	}
	if s.ids == nil {
		s.ids = &audioport.SequenceAllocator{}
	}
	if s.logger == nil {
		s.logger = noopLogger{}
	}

	topo, err := buildTopology(cfg, s.ids)
	if err != nil {
		return nil, err
	}
	s.topo = topo

	strategies, err := parseStrategies(cfg.Strategies)
	if err != nil {
		return nil, err
	}
	s.strategies = strategies

	s.outputs = device.NewRegistry()
	s.inputs = device.NewRegistry()
	s.topo.declared.SetLogger(s.logger)
	s.outputs.SetLogger(s.logger)
	s.inputs.SetLogger(s.logger)

	for _, decl := range topo.declarations {
		if !decl.attached {
			continue
		}
		d := topo.instantiate(decl.template, decl.template.Address(), nil)
		d.Attach(decl.module, s.ids)
		s.available(d.Type()).Add(d)
	}

	return s, nil
}

// available returns the registry holding devices of t's direction.
func (s *Service) available(t audio.DeviceType) *device.Registry {
	if t.IsInput() {
		return s.inputs
	}
	return s.outputs
}

// Start journals the initial registry contents and publishes every route.
func (s *Service) Start(ctx context.Context) error {
	s.mu.RLock()
	outputs, inputs := s.outputs.Len(), s.inputs.Len()
	modules := make([]string, 0, len(s.topo.modules))
	for _, m := range s.topo.modules {
		modules = append(modules, m.Name)
	}
	s.mu.RUnlock()

	s.logger.Info("audio registry loaded",
		"modules", len(modules),
		"outputs", outputs,
		"inputs", inputs,
		"strategies", len(s.strategies),
	)
	s.record(ctx, &audit.AuditLog{
		Action:     audit.ActionLoad,
		EntityType: audit.EntityRegistry,
		Source:     "config",
		Details: map[string]any{
			"modules": modules,
			"outputs": outputs,
			"inputs":  inputs,
		},
	})
	s.measureRegistries(outputs, inputs)
	return s.PublishRoutes(ctx)
}

// SetDeviceConnectionState makes a device available or unavailable.
//
// On connect, the template declared with the event's type and address, or
// failing that the last one of its type, supplies the tag name, profiles and
// default formats; the new device is attached to the template's module. A device of the same type and address that is already
// available yields ErrAlreadyConnected. On disconnect, the device of that
// type and address is removed and detached, or ErrNotConnected is returned.
func (s *Service) SetDeviceConnectionState(ctx context.Context, ev ConnectionEvent) error {
	if ev.Type.CategoryCount() != 1 {
		return fmt.Errorf("%w: type %s must name exactly one device", ErrInvalidEvent, ev.Type)
	}

	connected := ev.State == StateConnected
	action := audit.ActionDisconnect
	var info device.Info

	s.mu.Lock()
	registry := s.available(ev.Type)
	existing := registry.Device(ev.Type, ev.Address, audio.FormatDefault)
	if existing != nil && existing.Address() != ev.Address {
		existing = nil
	}

	if connected {
		if existing != nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrAlreadyConnected, existing)
		}
		template := s.topo.declared.Device(ev.Type, ev.Address, audio.FormatDefault)
		if template == nil {
			template = s.topo.declared.Device(ev.Type, "", audio.FormatDefault)
		}
		if template == nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrUndeclaredDevice, ev.Type)
		}
		d := s.topo.instantiate(template, ev.Address, ev.EncodedFormats)
		if ev.CurrentFormat != audio.FormatDefault {
			d.SetCurrentEncodedFormat(ev.CurrentFormat)
		}
		d.Attach(s.topo.moduleOf(template), s.ids)
		registry.Add(d)
		info = d.Info()
		action = audit.ActionConnect
	} else {
		if existing == nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: {type:%s, @:%s}", ErrNotConnected, ev.Type, ev.Address)
		}
		info = existing.Info()
		registry.Remove(existing)
		existing.Detach()
	}
	outputs, inputs := s.outputs.Len(), s.inputs.Len()
	s.mu.Unlock()

	s.logger.Info("device connection state changed",
		"type", ev.Type,
		"address", ev.Address,
		"tag_name", info.TagName,
		"state", ev.State,
	)

	s.record(ctx, &audit.AuditLog{
		Action:     action,
		EntityType: audit.EntityDevice,
		EntityID:   info.TagName,
		Source:     ev.Source,
		Details: map[string]any{
			"type":    info.Type,
			"address": info.Address,
			"id":      int(info.ID),
		},
	})
	if s.metrics != nil {
		s.metrics.WriteConnection(info.Type, info.Address, info.TagName, connected)
	}
	s.measureRegistries(outputs, inputs)
	s.publish(mqtt.Topics{}.Event("device_"+ev.State.String()), info, false)

	return s.PublishRoutes(ctx)
}

// Route resolves the named strategy against the available devices.
func (s *Service) Route(name string) (Route, error) {
	strategy, ok := s.strategy(name)
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return resolve(strategy, s.availableFor(strategy)), nil
}

// Routes resolves every strategy, in configuration order.
func (s *Service) Routes() []Route {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Route, 0, len(s.strategies))
	for _, strategy := range s.strategies {
		out = append(out, resolve(strategy, s.availableFor(strategy)))
	}
	return out
}

// PreferredDevice returns the single device the named strategy would use.
// ok is false when no strategy type is available.
func (s *Service) PreferredDevice(name string) (info device.Info, ok bool, err error) {
	strategy, found := s.strategy(name)
	if !found {
		return device.Info{}, false, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.availableFor(strategy).FilterForEngine().FirstExistingDevice(strategy.Types)
	if d == nil {
		return device.Info{}, false, nil
	}
	return d.Info(), true, nil
}

// PublishRoutes publishes every route as a retained message and records the
// route metrics. Publish failures are logged and the first one is returned.
func (s *Service) PublishRoutes(_ context.Context) error {
	var first error
	for _, route := range s.Routes() {
		preferred := ""
		if route.Preferred != nil {
			preferred = route.Preferred.TagName
		}
		if s.metrics != nil {
			s.metrics.WriteRoute(route.Strategy, len(route.Devices), preferred)
		}
		if err := s.publish(mqtt.Topics{}.Route(route.Strategy), route, true); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Strategies returns the configured strategies.
func (s *Service) Strategies() []Strategy {
	out := make([]Strategy, len(s.strategies))
	for i, st := range s.strategies {
		out[i] = Strategy{Name: st.Name, Types: slices.Clone(st.Types)}
	}
	return out
}

// Devices returns the available devices matching mask, outputs first. A
// mask of audio.DeviceNone matches every available device.
func (s *Service) Devices(mask audio.DeviceType) []device.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if mask == audio.DeviceNone {
		return append(s.outputs.Infos(), s.inputs.Infos()...)
	}
	return s.available(mask).DevicesFromTypeMask(mask).Infos()
}

// Device returns the available device with the given id.
func (s *Service) Device(id audioport.Handle) (device.Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range []*device.Registry{s.outputs, s.inputs} {
		if d := r.DeviceFromID(id); d != nil {
			return d.Info(), true
		}
	}
	return device.Info{}, false
}

// Declared returns the declared device templates.
func (s *Service) Declared() []device.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topo.declared.Infos()
}

// Dump renders the available and declared registries as text.
func (s *Service) Dump(verbose bool) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	s.outputs.Dump(&b, "Available output", 0, verbose)
	s.inputs.Dump(&b, "Available input", 0, verbose)
	s.topo.declared.Dump(&b, "Declared", 0, verbose)
	return b.String()
}

func (s *Service) strategy(name string) (Strategy, bool) {
	for _, st := range s.strategies {
		if st.Name == name {
			return st, true
		}
	}
	return Strategy{}, false
}

func (s *Service) availableFor(strategy Strategy) *device.Registry {
	if strategy.IsInput() {
		return s.inputs
	}
	return s.outputs
}

func (s *Service) record(ctx context.Context, entry *audit.AuditLog) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Create(ctx, entry); err != nil {
		s.logger.Error("failed to journal audio event", "action", entry.Action, "error", err)
	}
}

func (s *Service) measureRegistries(outputs, inputs int) {
	if s.metrics == nil {
		return
	}
	s.metrics.WriteRegistrySize("output", outputs)
	s.metrics.WriteRegistrySize("input", inputs)
}

func (s *Service) publish(topic string, v any, retained bool) error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishJSON(topic, v, retained); err != nil {
		s.logger.Warn("failed to publish", "topic", topic, "error", err)
		return err
	}
	return nil
}
