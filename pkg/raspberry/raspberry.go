// Package raspberry is the gpio access layer.
//
// Receiver lines come from the gpiod character device, which delivers
// kernel timestamped edge events. The transmitter pin uses the memory
// mapped gpio interface instead, its writes are fast enough for the
// microsecond scale pulses the transmitter emits.
package raspberry

import (
	"fmt"

	"github.com/warthog618/gpiod"
	"github.com/womat/debug"

	"rf433/pkg/port"
)

var ErrInvalidParam = fmt.Errorf("invalid parameters")

// eventBuffer decouples the gpiod event handler from the decoder so a
// burst of edges is not dropped while a previous event is processed.
const eventBuffer = 128

// Chip represents a single GPIO chip that controls a set of lines.
type Chip struct {
	gpiodChip *gpiod.Chip
}

// Line represents a single requested input line.
type Line struct {
	gpiodLine *gpiod.Line
	// C receives the edge events of the line.
	C chan port.Event
}

// Open opens the GPIO character device.
func Open() (*Chip, error) {
	c, err := gpiod.NewChip("gpiochip0")
	chip := Chip{gpiodChip: c}
	return &chip, err
}

// NewLine requests control of a single input line on a chip.
//   If granted, control is maintained until the Line is closed.
//   Every edge is sent to channel C with its kernel timestamp; there is
//   no debouncing, sub-millisecond pulses are data here and noise
//   filtering is the decoder's job.
//   There can only be one watcher on the line at a time.
func (c *Chip) NewLine(gpio int, terminator string) (*Line, error) {
	var err error

	line := &Line{
		C: make(chan port.Event, eventBuffer)}

	handler := func(evt gpiod.LineEvent) {
		var t port.EventType

		switch evt.Type {
		case gpiod.LineEventRisingEdge:
			t = port.RisingEdge
		case gpiod.LineEventFallingEdge:
			t = port.FallingEdge
		default:
			debug.ErrorLog.Printf("unknown line event type: %v", evt.Type)
			return
		}

		select {
		case line.C <- port.Event{Type: t, Timestamp: evt.Timestamp}:
		default:
			debug.ErrorLog.Println("edge event buffer overflow, event dropped")
		}
	}

	switch terminator {
	case "pullup":
		line.gpiodLine, err = c.gpiodChip.RequestLine(gpio, gpiod.WithEventHandler(handler),
			gpiod.WithBothEdges, gpiod.AsInput, gpiod.WithPullUp)
	case "pulldown":
		line.gpiodLine, err = c.gpiodChip.RequestLine(gpio, gpiod.WithEventHandler(handler),
			gpiod.WithBothEdges, gpiod.AsInput, gpiod.WithPullDown)
	case "none", "":
		line.gpiodLine, err = c.gpiodChip.RequestLine(gpio, gpiod.WithEventHandler(handler),
			gpiod.WithBothEdges, gpiod.AsInput)
	default:
		return nil, ErrInvalidParam
	}

	return line, err
}

// Close releases the Chip.
//
// It does not release any lines which may be requested - they must be closed
// independently.
func (c *Chip) Close() error {
	return c.gpiodChip.Close()
}

// Close releases all resources held by the requested line.
//
// Note that this includes waiting for any running event handler to return.
// As a consequence the Close must not be called from the context of the event
// handler - the Close should be called from a different goroutine.
func (l *Line) Close() error {
	if err := l.gpiodLine.Close(); err != nil {
		return err
	}
	close(l.C)
	return nil
}
