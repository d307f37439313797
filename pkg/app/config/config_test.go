package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := NewConfig()

	if c.Receiver.Protocol != 1 || c.Receiver.Tolerance != 0.7 {
		t.Errorf("receiver defaults: %+v", c.Receiver)
	}
	if c.Transmitter.PulseLength != 3500 || c.Transmitter.BitLength != 24 || c.Transmitter.Repeat != 10 {
		t.Errorf("transmitter defaults: %+v", c.Transmitter)
	}
	if !c.Webserver.Webservices["code"] || !c.Webserver.Webservices["transmit"] {
		t.Errorf("webservice defaults: %+v", c.Webserver.Webservices)
	}
}

func TestLoadConfig(t *testing.T) {
	yml := `
receiver:
  gpio: 27
  terminator: pulldown
  protocol: 2
  tolerance: 0.5
transmitter:
  gpio: 17
  pulselength: 400
mqtt:
  connection: tcp://127.0.0.1:1883
  topic: /home/rf
`
	file := filepath.Join(t.TempDir(), "rf433.yaml")
	if err := os.WriteFile(file, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewConfig()
	c.Flag.ConfigFile = file
	if err := c.LoadConfig(); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if c.Receiver.Gpio != 27 || c.Receiver.Protocol != 2 || c.Receiver.Tolerance != 0.5 {
		t.Errorf("receiver: %+v", c.Receiver)
	}
	if c.Receiver.Terminator != "pulldown" {
		t.Errorf("terminator: %q", c.Receiver.Terminator)
	}
	if c.Transmitter.Gpio != 17 || c.Transmitter.PulseLength != 400 {
		t.Errorf("transmitter: %+v", c.Transmitter)
	}
	// unset fields keep their defaults
	if c.Transmitter.Repeat != 10 {
		t.Errorf("transmitter repeat: %v", c.Transmitter.Repeat)
	}
	if c.MQTT.Topic != "/home/rf" {
		t.Errorf("mqtt topic: %q", c.MQTT.Topic)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"receive only", func(c *Config) { c.Receiver.Gpio = 27 }, false},
		{"transmit only", func(c *Config) { c.Transmitter.Gpio = 17 }, false},
		{"no pins", func(c *Config) {}, true},
		{"shared pin", func(c *Config) { c.Receiver.Gpio = 17; c.Transmitter.Gpio = 17 }, true},
		{"bad rx protocol", func(c *Config) { c.Receiver.Gpio = 27; c.Receiver.Protocol = 0 }, true},
		{"bad tx protocol", func(c *Config) { c.Transmitter.Gpio = 17; c.Transmitter.Protocol = 7 }, true},
		{"bad tolerance", func(c *Config) { c.Receiver.Gpio = 27; c.Receiver.Tolerance = 1.5 }, true},
	}

	for _, tt := range tests {
		c := NewConfig()
		tt.mutate(c)
		if err := c.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
