package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
)

// Config is the root configuration structure for Gray Logic Audio.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
	Security  SecurityConfig  `yaml:"security"`
	Audio     AudioConfig     `yaml:"audio"`
}

// SiteConfig contains site-specific information.
type SiteConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DatabaseConfig contains SQLite database settings for the audit journal.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket push settings.
type WebSocketConfig struct {
	MaxMessageSize int `yaml:"max_message_size"`
	PingInterval   int `yaml:"ping_interval"`
	PongTimeout    int `yaml:"pong_timeout"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	JWT JWTConfig `yaml:"jwt"`
}

// JWTConfig contains controller token settings. An empty secret leaves the
// API open, as on a trusted installer network.
type JWTConfig struct {
	Secret   string `yaml:"secret"`
	TokenTTL int    `yaml:"token_ttl"` // minutes
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// AudioConfig declares the audio topology: hardware modules with the devices
// they can expose, routing strategies, and the legacy encoded-format table.
type AudioConfig struct {
	Modules    []AudioModuleConfig `yaml:"modules"`
	Strategies []StrategyConfig    `yaml:"strategies"`

	// LegacyEncodedFormats maps a device type name to the encoded formats
	// injected when a device of that type declares none. When absent, the
	// built-in table (HDMI: AC3, IEC61937) applies; an empty map disables
	// injection.
	LegacyEncodedFormats map[string][]string `yaml:"legacy_encoded_formats"`
}

// AudioModuleConfig is one hardware module and its declared devices.
type AudioModuleConfig struct {
	Name    string              `yaml:"name"`
	Devices []AudioDeviceConfig `yaml:"devices"`
}

// AudioDeviceConfig declares a device a module can route to.
type AudioDeviceConfig struct {
	TagName        string               `yaml:"tag_name"`
	Type           string               `yaml:"type"`
	Address        string               `yaml:"address"`
	EncodedFormats []string             `yaml:"encoded_formats"`
	Profiles       []AudioProfileConfig `yaml:"profiles"`

	// Attached devices are available from startup (speaker, built-in mic).
	// The rest become available through connection events.
	Attached bool `yaml:"attached"`
}

// AudioProfileConfig declares one audio profile of a device.
type AudioProfileConfig struct {
	Format       string   `yaml:"format"`
	SampleRates  []uint32 `yaml:"sample_rates"`
	ChannelMasks []string `yaml:"channel_masks"`
	Dynamic      bool     `yaml:"dynamic"`
}

// StrategyConfig names an ordered list of device types to route a stream
// class to, most preferred first.
type StrategyConfig struct {
	Name  string   `yaml:"name"`
	Types []string `yaml:"types"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GRAYLOGIC_AUDIO_SECTION_KEY
// For example: GRAYLOGIC_AUDIO_DATABASE_PATH, GRAYLOGIC_AUDIO_API_PORT
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:   "site-001",
			Name: "Gray Logic Audio",
		},
		Database: DatabaseConfig{
			Path:        "./data/graylogic-audio.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "graylogic-audio",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8090,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				TokenTTL: 60,
			},
		},
		InfluxDB: InfluxDBConfig{
			Bucket:        "audio",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GRAYLOGIC_AUDIO_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("GRAYLOGIC_AUDIO_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("GRAYLOGIC_AUDIO_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_AUDIO_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("GRAYLOGIC_AUDIO_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRAYLOGIC_AUDIO_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// API
	if v := os.Getenv("GRAYLOGIC_AUDIO_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_AUDIO_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// InfluxDB
	if v := os.Getenv("GRAYLOGIC_AUDIO_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv("GRAYLOGIC_AUDIO_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("GRAYLOGIC_AUDIO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Security - JWT secret (always override in production)
	if v := os.Getenv("GRAYLOGIC_AUDIO_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
}

// Validate checks the configuration for errors.
// All problems are collected and reported together.
func (c *Config) Validate() error {
	var errs []string

	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	if c.WebSocket.PingInterval <= 0 || c.WebSocket.PongTimeout <= 0 {
		errs = append(errs, "websocket.ping_interval and websocket.pong_timeout must be positive")
	}

	if s := c.Security.JWT.Secret; s != "" && len(s) < minJWTSecretLength {
		errs = append(errs, fmt.Sprintf("security.jwt.secret must be at least %d characters", minJWTSecretLength))
	}

	errs = append(errs, c.Audio.validate()...)

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// minJWTSecretLength is the shortest accepted HS256 signing secret.
const minJWTSecretLength = 32

// validate checks module, device and strategy declarations. Names are
// checked with the same parsers used to build devices.
func (a *AudioConfig) validate() []string {
	var errs []string

	modules := make(map[string]bool, len(a.Modules))
	tags := make(map[string]bool)
	for i, m := range a.Modules {
		if m.Name == "" {
			errs = append(errs, fmt.Sprintf("audio.modules[%d].name is required", i))
		} else if modules[m.Name] {
			errs = append(errs, fmt.Sprintf("audio.modules[%d].name %q is duplicated", i, m.Name))
		}
		modules[m.Name] = true

		for j, d := range m.Devices {
			field := fmt.Sprintf("audio.modules[%d].devices[%d]", i, j)
			if d.TagName == "" {
				errs = append(errs, field+".tag_name is required")
			} else if tags[d.TagName] {
				errs = append(errs, fmt.Sprintf("%s.tag_name %q is duplicated", field, d.TagName))
			}
			tags[d.TagName] = true

			t, err := audio.ParseDeviceType(d.Type)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s.type: %v", field, err))
			} else if t.CategoryCount() != 1 {
				errs = append(errs, fmt.Sprintf("%s.type %q must name exactly one device type", field, d.Type))
			}
			if _, err := audio.ParseFormats(d.EncodedFormats); err != nil {
				errs = append(errs, fmt.Sprintf("%s.encoded_formats: %v", field, err))
			}
			for k, p := range d.Profiles {
				if _, err := audio.ParseFormat(p.Format); err != nil {
					errs = append(errs, fmt.Sprintf("%s.profiles[%d].format: %v", field, k, err))
				}
				for _, mask := range p.ChannelMasks {
					if _, err := audio.ParseChannelMask(mask); err != nil {
						errs = append(errs, fmt.Sprintf("%s.profiles[%d].channel_masks: %v", field, k, err))
					}
				}
			}
		}
	}

	strategies := make(map[string]bool, len(a.Strategies))
	for i, s := range a.Strategies {
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("audio.strategies[%d].name is required", i))
		} else if strategies[s.Name] {
			errs = append(errs, fmt.Sprintf("audio.strategies[%d].name %q is duplicated", i, s.Name))
		}
		strategies[s.Name] = true

		if len(s.Types) == 0 {
			errs = append(errs, fmt.Sprintf("audio.strategies[%d].types must not be empty", i))
		}
		for _, name := range s.Types {
			if _, err := audio.ParseDeviceType(name); err != nil {
				errs = append(errs, fmt.Sprintf("audio.strategies[%d].types: %v", i, err))
			}
		}
	}

	for name, formats := range a.LegacyEncodedFormats {
		if _, err := audio.ParseDeviceType(name); err != nil {
			errs = append(errs, fmt.Sprintf("audio.legacy_encoded_formats: %v", err))
		}
		if _, err := audio.ParseFormats(formats); err != nil {
			errs = append(errs, fmt.Sprintf("audio.legacy_encoded_formats[%s]: %v", name, err))
		}
	}

	return errs
}

// LegacyFormats converts LegacyEncodedFormats to typed form. ok is false when
// the section is absent and the built-in table should be used. Invalid
// entries are skipped; Validate reports them.
func (a *AudioConfig) LegacyFormats() (table map[audio.DeviceType][]audio.Format, ok bool) {
	if a.LegacyEncodedFormats == nil {
		return nil, false
	}
	table = make(map[audio.DeviceType][]audio.Format, len(a.LegacyEncodedFormats))
	for name, names := range a.LegacyEncodedFormats {
		t, err := audio.ParseDeviceType(name)
		if err != nil {
			continue
		}
		formats, err := audio.ParseFormats(names)
		if err != nil {
			continue
		}
		table[t] = formats
	}
	return table, true
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
