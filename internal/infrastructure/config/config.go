package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Brauhaus Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Brewery   BreweryConfig   `yaml:"brewery"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
	Brewhouse BrewhouseConfig `yaml:"brewhouse"`
	Hardware  HardwareConfig  `yaml:"hardware"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Security  SecurityConfig  `yaml:"security"`
}

// BreweryConfig contains site-specific information about the installation.
type BreweryConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// DatabaseConfig contains SQLite database settings for the recipe library.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
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

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
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

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// InfluxDBConfig contains InfluxDB connection settings for brew telemetry.
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

// BrewhouseConfig contains the process-control settings for the brewhouse.
type BrewhouseConfig struct {
	// TickPeriodMS is the fixed control-loop period in milliseconds.
	// Default: 1000.
	TickPeriodMS int `yaml:"tick_period_ms"`

	// MainsFrequencyHz is the AC mains frequency. The relay scheduler
	// suppresses element pulses shorter than half a mains cycle.
	// Default: 60.
	MainsFrequencyHz int `yaml:"mains_frequency_hz"`

	// RecipeDir is a directory of JSON recipe files used to seed an
	// empty recipe library on first boot.
	RecipeDir string `yaml:"recipe_dir"`

	// BoilKettle configures the directly heated vessel.
	BoilKettle KettleConfig `yaml:"boil_kettle"`

	// MashTun configures the heat-exchanged vessel.
	MashTun MashTunConfig `yaml:"mash_tun"`
}

// KettleConfig contains the boil kettle's physical and control parameters.
type KettleConfig struct {
	// VolumeGallons is the working liquid volume in US gallons.
	VolumeGallons float64 `yaml:"volume_gallons"`

	// ElementRatingWatts is the heating element's rated power.
	ElementRatingWatts float64 `yaml:"element_rating_watts"`

	// Gains are the PI regulator gains driving the element duty cycle.
	Gains RegulatorGains `yaml:"gains"`
}

// MashTunConfig contains the mash tun's physical and control parameters.
type MashTunConfig struct {
	// VolumeGallons is the working liquid volume in US gallons.
	VolumeGallons float64 `yaml:"volume_gallons"`

	// HeatExchangerConductivity is the recirculation coil's thermal
	// conductivity in watts per °F of source/wort difference.
	HeatExchangerConductivity float64 `yaml:"heat_exchanger_conductivity"`

	// Gains are the PI regulator gains driving the source-temperature offset.
	Gains RegulatorGains `yaml:"gains"`

	// MaxSourceDelta clamps how far above the wort temperature the
	// requested source temperature may go (°F). Default: 25.
	MaxSourceDelta float64 `yaml:"max_source_delta"`
}

// RegulatorGains holds PI controller gains.
type RegulatorGains struct {
	Proportional float64 `yaml:"proportional"`
	Integral     float64 `yaml:"integral"`
}

// HardwareConfig selects and configures the sensor and actuator backend.
type HardwareConfig struct {
	// Mode selects the backend: "gpio" for real relay hardware, "sim"
	// for the built-in thermal simulator.
	Mode string `yaml:"mode"`

	GPIO GPIOConfig `yaml:"gpio"`
	Sim  SimConfig  `yaml:"sim"`
}

// GPIOConfig contains Linux GPIO character-device settings for the relays
// and 1-Wire device IDs for the temperature probes.
type GPIOConfig struct {
	// Chip is the gpiochip device name. Default: "gpiochip0".
	Chip string `yaml:"chip"`

	// ElementPin is the GPIO line driving the heating element SSR.
	ElementPin int `yaml:"element_pin"`

	// PumpPin is the GPIO line driving the pump relay.
	PumpPin int `yaml:"pump_pin"`

	// KettleSensorID and MashSensorID are 1-Wire device IDs (DS18B20)
	// read via /sys/bus/w1/devices.
	KettleSensorID string `yaml:"kettle_sensor_id"`
	MashSensorID   string `yaml:"mash_sensor_id"`

	// SensorSamples is the moving-average window applied to raw probe
	// readings. Default: 5.
	SensorSamples int `yaml:"sensor_samples"`
}

// SimConfig contains thermal-simulator settings for development without hardware.
type SimConfig struct {
	// AmbientTemperature is the simulated room temperature (°F). Default: 68.
	AmbientTemperature float64 `yaml:"ambient_temperature"`

	// StartTemperature is both vessels' initial liquid temperature (°F).
	// Defaults to the ambient temperature when zero.
	StartTemperature float64 `yaml:"start_temperature"`

	// HeatLossCoefficient is the ambient loss term in watts per °F of
	// liquid/ambient difference. Default: 12.
	HeatLossCoefficient float64 `yaml:"heat_loss_coefficient"`

	// StepMS is the simulator integration step in milliseconds. Default: 250.
	StepMS int `yaml:"step_ms"`
}

// TelemetryConfig contains settings for the telemetry recorder.
type TelemetryConfig struct {
	// Interval is how often a brewhouse snapshot is written, in seconds.
	// Default: 5.
	Interval int `yaml:"interval"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	JWT JWTConfig `yaml:"jwt"`

	// OperatorPINHash is the Argon2id PHC hash of the operator PIN used
	// to obtain API tokens. Generate with `brauhaus hash-pin`.
	OperatorPINHash string `yaml:"operator_pin_hash"`
}

// JWTConfig contains JWT token settings.
type JWTConfig struct {
	Secret         string `yaml:"secret"`
	AccessTokenTTL int    `yaml:"access_token_ttl"` // minutes
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: BRAUHAUS_SECTION_KEY
// For example: BRAUHAUS_DATABASE_PATH, BRAUHAUS_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
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
		Brewery: BreweryConfig{
			ID:       "brewery-001",
			Name:     "Brauhaus",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Path:        "./data/brauhaus.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Enabled: true,
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "brauhaus-core",
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
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Brewhouse: BrewhouseConfig{
			TickPeriodMS:     1000,
			MainsFrequencyHz: 60,
			RecipeDir:        "./configs/recipes",
			BoilKettle: KettleConfig{
				VolumeGallons:      15,
				ElementRatingWatts: 5500,
				Gains: RegulatorGains{
					Proportional: 0.05,
					Integral:     0.002,
				},
			},
			MashTun: MashTunConfig{
				VolumeGallons:             10,
				HeatExchangerConductivity: 120,
				Gains: RegulatorGains{
					Proportional: 1.5,
					Integral:     0.01,
				},
				MaxSourceDelta: 25,
			},
		},
		Hardware: HardwareConfig{
			Mode: "sim",
			GPIO: GPIOConfig{
				Chip:          "gpiochip0",
				ElementPin:    17,
				PumpPin:       27,
				SensorSamples: 5,
			},
			Sim: SimConfig{
				AmbientTemperature:  68,
				HeatLossCoefficient: 12,
				StepMS:              250,
			},
		},
		Telemetry: TelemetryConfig{
			Interval: 5,
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				AccessTokenTTL: 60,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: BRAUHAUS_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("BRAUHAUS_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("BRAUHAUS_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("BRAUHAUS_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("BRAUHAUS_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// API
	if v := os.Getenv("BRAUHAUS_API_HOST"); v != "" {
		cfg.API.Host = v
	}

	// InfluxDB
	if v := os.Getenv("BRAUHAUS_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Security. Prefer the environment for these rather than committing
	// them to the config file.
	if v := os.Getenv("BRAUHAUS_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
	if v := os.Getenv("BRAUHAUS_OPERATOR_PIN_HASH"); v != "" {
		cfg.Security.OperatorPINHash = v
	}
}

// Validate checks the configuration for errors.
//
// Configuration errors are fatal: the daemon drives heating elements, so it
// must refuse to start with a nonsensical control setup.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Brewery.ID == "" {
		errs = append(errs, "brewery.id is required")
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

	if c.Brewhouse.TickPeriodMS <= 0 {
		errs = append(errs, "brewhouse.tick_period_ms must be positive")
	}
	if c.Brewhouse.MainsFrequencyHz <= 0 {
		errs = append(errs, "brewhouse.mains_frequency_hz must be positive")
	}
	if c.Brewhouse.BoilKettle.VolumeGallons <= 0 {
		errs = append(errs, "brewhouse.boil_kettle.volume_gallons must be positive")
	}
	if c.Brewhouse.BoilKettle.ElementRatingWatts <= 0 {
		errs = append(errs, "brewhouse.boil_kettle.element_rating_watts must be positive")
	}
	if c.Brewhouse.MashTun.VolumeGallons <= 0 {
		errs = append(errs, "brewhouse.mash_tun.volume_gallons must be positive")
	}
	if c.Brewhouse.MashTun.HeatExchangerConductivity <= 0 {
		errs = append(errs, "brewhouse.mash_tun.heat_exchanger_conductivity must be positive")
	}

	switch c.Hardware.Mode {
	case "gpio", "sim":
	default:
		errs = append(errs, `hardware.mode must be "gpio" or "sim"`)
	}

	// The API arms heating elements, so token forgery would mean remote
	// control of physical equipment. Require a real secret.
	const minJWTSecretLength = 32
	if c.Security.JWT.Secret == "" {
		errs = append(errs, "security.jwt.secret is required (set BRAUHAUS_JWT_SECRET environment variable)")
	} else if len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 32 characters")
	}

	if c.Security.OperatorPINHash == "" {
		errs = append(errs, "security.operator_pin_hash is required (set BRAUHAUS_OPERATOR_PIN_HASH environment variable)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
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

// GetTickPeriod returns the control-loop tick period as a Duration.
func (c *Config) GetTickPeriod() time.Duration {
	return time.Duration(c.Brewhouse.TickPeriodMS) * time.Millisecond
}

// GetSimStep returns the simulator integration step as a Duration.
func (c *Config) GetSimStep() time.Duration {
	return time.Duration(c.Hardware.Sim.StepMS) * time.Millisecond
}

// GetTelemetryInterval returns the telemetry write interval as a Duration.
func (c *Config) GetTelemetryInterval() time.Duration {
	return time.Duration(c.Telemetry.Interval) * time.Second
}

// RelaySafetyThreshold returns the minimum relay pulse width the element
// scheduler will emit: half an AC mains cycle.
func (c *Config) RelaySafetyThreshold() time.Duration {
	return time.Second / time.Duration(2*c.Brewhouse.MainsFrequencyHz)
}
