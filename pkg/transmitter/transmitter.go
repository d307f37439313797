// Package transmitter sends OOK codes by keying a digital output pin
// through precisely timed high/low pulse pairs.
package transmitter

import (
	"sync"
	"time"

	"github.com/womat/debug"
)

// Pin drives the transmitter output line.
type Pin interface {
	High()
	Low()
}

// holdIncrements is the number of coarse sleep slices per hold.
// Cancellation is observed at every slice boundary, only the final
// slice is busy-polled.
const holdIncrements = 100

// Handler owns one transmitter pin.
type Handler struct {
	pin Pin

	// tx serializes transmissions on the pin.
	tx sync.Mutex

	stop sync.Once
	quit chan struct{}
}

// New initializes a transmitter on the given pin and forces it low.
func New(pin Pin) *Handler {
	pin.Low()
	return &Handler{
		pin:  pin,
		quit: make(chan struct{}),
	}
}

// Transmit validates and sends one request, blocking until all repeats
// are emitted or the handler is closed. A close mid-transmission leaves
// the pin low and is not an error.
func (h *Handler) Transmit(r Request) error {
	pairs, err := Encode(r)
	if err != nil {
		return err
	}

	h.tx.Lock()
	defer h.tx.Unlock()

	select {
	case <-h.quit:
		return nil
	default:
	}

	debug.InfoLog.Printf("transmitting code %v (%v pulses)", r.Code, len(pairs))

	for _, p := range pairs {
		h.pin.High()
		if !h.hold(p.High) {
			h.pin.Low()
			debug.InfoLog.Print("transmission cancelled")
			return nil
		}
		h.pin.Low()
		if !h.hold(p.Low) {
			debug.InfoLog.Print("transmission cancelled")
			return nil
		}
	}

	debug.InfoLog.Print("transmission complete")
	return nil
}

// hold pauses for the given duration and reports false if the handler
// was closed meanwhile. Most of the duration is slept in coarse
// increments so the scheduler is never starved and cancellation is
// picked up quickly; the remainder is busy-polled to keep the timing
// error well below one increment.
func (h *Handler) hold(d time.Duration) bool {
	deadline := time.Now().Add(d)

	if inc := d / holdIncrements; inc > 0 {
		coarseEnd := deadline.Add(-inc)
		for time.Now().Before(coarseEnd) {
			select {
			case <-h.quit:
				return false
			case <-time.After(inc):
			}
		}
	}

	for time.Now().Before(deadline) {
	}

	return true
}

// Close cancels a running transmission, waits for it to wind down and
// leaves the pin low.
func (h *Handler) Close() error {
	h.stop.Do(func() { close(h.quit) })

	h.tx.Lock()
	defer h.tx.Unlock()

	h.pin.Low()
	return nil
}
