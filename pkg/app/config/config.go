package config

import (
	"fmt"
	"io"
	"os"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"

	"rf433/pkg/protocol"
	"rf433/pkg/pulse"
	"rf433/pkg/transmitter"
)

// Config holds the application configuration.
// Config defines the struct of global config and the struct of the configuration file
type Config struct {
	Receiver    ReceiverConfig    `yaml:"receiver"`
	Transmitter TransmitterConfig `yaml:"transmitter"`
	Flag        FlagConfig        `yaml:"-"`
	Debug       DebugConfig       `yaml:"debug"`
	Webserver   WebserverConfig   `yaml:"webserver"`
	MQTT        MQTTConfig        `yaml:"mqtt"`
}

// ReceiverConfig defines the receiver pin and its decoding parameters.
// Gpio 0 disables the receiver.
type ReceiverConfig struct {
	Gpio       int    `yaml:"gpio"`
	Terminator string `yaml:"terminator"`
	Protocol   int    `yaml:"protocol"`
	// PulseLength overrides the protocol's base pulse length (µs), 0 keeps it.
	PulseLength int `yaml:"pulselength"`
	// Tolerance is the noise tolerance fraction in (0,1].
	Tolerance float64 `yaml:"tolerance"`
}

// TransmitterConfig defines the transmitter pin and its request defaults.
// Gpio 0 disables the transmitter.
type TransmitterConfig struct {
	Gpio     int `yaml:"gpio"`
	Protocol int `yaml:"protocol"`
	// PulseLength is the base pulse length (µs) applied to requests
	// that don't carry their own.
	PulseLength int `yaml:"pulselength"`
	BitLength   int `yaml:"bits"`
	Repeat      int `yaml:"repeat"`
}

// FlagConfig defines the configured flags (parameters)
type FlagConfig struct {
	Version    bool
	Debug      string
	ConfigFile string
}

// WebserverConfig defines the struct of the webserver and webservice configuration and configuration file
type WebserverConfig struct {
	URL         string          `yaml:"url"`
	Webservices map[string]bool `yaml:"webservices"`
}

// MQTTConfig defines the struct of the mqtt client configuration and configuration file
type MQTTConfig struct {
	Connection string `yaml:"connection"`
	Topic      string `yaml:"topic"`
}

// DebugConfig defines the struct of the debug configuration and configuration file
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

func NewConfig() *Config {
	return &Config{
		Receiver: ReceiverConfig{
			Terminator: "none",
			Protocol:   transmitter.DefaultProtocol,
			Tolerance:  pulse.DefaultTolerance,
		},
		Transmitter: TransmitterConfig{
			Protocol:    transmitter.DefaultProtocol,
			PulseLength: transmitter.DefaultPulseLength,
			BitLength:   transmitter.DefaultBitLength,
			Repeat:      transmitter.DefaultRepeat,
		},
		Flag: FlagConfig{},
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
		Webserver: WebserverConfig{
			URL: "http://0.0.0.0:4000",
			Webservices: map[string]bool{
				"version":  true,
				"health":   true,
				"code":     true,
				"transmit": true,
			},
		},
		MQTT: MQTTConfig{
			Connection: "",
			Topic:      "/rf433/code"},
	}
}

func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
	}

	if c.Flag.Debug != "" {
		c.Debug.FlagString = c.Flag.Debug
	}
	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("unable to open debug file %q: %w", c.Debug.FileString, err)
	}

	return c.Validate()
}

// Validate rejects configurations that cannot be wired: no pin at all,
// both directions on the same pin, or an unknown protocol id.
func (c *Config) Validate() error {
	if c.Receiver.Gpio == 0 && c.Transmitter.Gpio == 0 {
		return fmt.Errorf("neither a receiver nor a transmitter gpio is configured")
	}
	if c.Receiver.Gpio != 0 && c.Receiver.Gpio == c.Transmitter.Gpio {
		return fmt.Errorf("receiver and transmitter share gpio %v", c.Receiver.Gpio)
	}

	if c.Receiver.Gpio != 0 {
		if _, err := protocol.Get(c.Receiver.Protocol); err != nil {
			return fmt.Errorf("receiver protocol %v: %w", c.Receiver.Protocol, err)
		}
		if c.Receiver.Tolerance < 0 || c.Receiver.Tolerance > 1 {
			return fmt.Errorf("receiver tolerance %v outside [0,1]", c.Receiver.Tolerance)
		}
	}

	if c.Transmitter.Gpio != 0 {
		if _, err := protocol.Get(c.Transmitter.Protocol); err != nil {
			return fmt.Errorf("transmitter protocol %v: %w", c.Transmitter.Protocol, err)
		}
	}

	return nil
}

func (c *Config) readConfigFile() error {
	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil {
		return err
	}

	return nil
}

func (c *Config) setDebugConfig() (err error) {
	// defines Debug section of global.Config
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Debug.Flag = debug.Standard
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}
