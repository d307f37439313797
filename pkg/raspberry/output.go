package raspberry

import (
	"fmt"

	"github.com/warthog618/gpio"
)

// Mem is the handle to the memory mapped gpio range used for output pins.
type Mem struct {
	pins map[int]*OutputPin
}

// OutputPin is a single output pin, driven low on request.
// It satisfies the transmitter Pin interface.
type OutputPin struct {
	gpioPin *gpio.Pin
}

// OpenMem maps the GPIO memory range from /dev/gpiomem.
func OpenMem() (*Mem, error) {
	if err := gpio.Open(); err != nil {
		return nil, err
	}
	return &Mem{pins: map[int]*OutputPin{}}, nil
}

// Close unmaps the GPIO memory.
func (m *Mem) Close() error {
	return gpio.Close()
}

// NewOutputPin claims a pin as output and drives it low.
// The pin number provided is the BCM GPIO number.
func (m *Mem) NewOutputPin(p int) (*OutputPin, error) {
	if _, ok := m.pins[p]; ok {
		return nil, fmt.Errorf("pin %v already used", p)
	}

	pin := &OutputPin{gpioPin: gpio.NewPin(p)}
	pin.gpioPin.Output()
	pin.gpioPin.Low()

	m.pins[p] = pin
	return pin, nil
}

// High drives the pin high.
func (p *OutputPin) High() {
	p.gpioPin.High()
}

// Low drives the pin low.
func (p *OutputPin) Low() {
	p.gpioPin.Low()
}

// Pin returns the BCM number of the pin.
func (p *OutputPin) Pin() int {
	return p.gpioPin.Pin()
}
