// Package receiver decodes OOK pulse trains from a stream of gpio edge
// events into integer codes.
//
// The decoder has no framing beyond timing: it measures each high pulse
// and the gap to the pulse before it, filters noise, turns valid
// high/gap pairs into bits and commits the accumulated code whenever a
// sync gap is seen. The last committed code is kept as a snapshot and
// additionally sent to channel C for push consumers.
package receiver

import (
	"sync"
	"time"

	"github.com/womat/debug"

	"rf433/pkg/port"
	"rf433/pkg/pulse"
)

// unset marks a timestamp that has not been observed yet.
const unset = time.Duration(-1)

// codeBuffer is the capacity of the committed code channel C.
// A full channel drops, the decode loop never blocks on a consumer.
const codeBuffer = 16

// Code is one committed code.
type Code struct {
	// Value holds the received bits, last bit in the lowest position.
	Value uint64 `json:"code"`
	// CompletedAt is the commit time. The zero value means no code
	// has been received yet.
	CompletedAt time.Time `json:"completed_at"`
}

// Handler decodes the edge events of a single gpio line.
// Each line needs its own Handler, the decoder state is not shareable.
type Handler struct {
	classifier pulse.Classifier

	// rx is the channel delivering the line edge events.
	rx chan port.Event

	// C delivers committed codes, commits are dropped on overflow.
	C chan Code

	// edge timestamps of the pulse currently being measured
	rising  time.Duration
	falling time.Duration

	// start/end timestamps of the previous accepted pulse
	lastPulseStart time.Duration
	lastPulseEnd   time.Duration

	// code accumulates the bits received since the last sync gap.
	code uint64

	mu     sync.RWMutex
	latest Code

	stop sync.Once
	quit chan struct{}
	done chan struct{}
}

// New starts a decoder on the given event channel.
func New(c chan port.Event, classifier pulse.Classifier) *Handler {
	h := &Handler{
		classifier:     classifier,
		rx:             c,
		C:              make(chan Code, codeBuffer),
		rising:         unset,
		falling:        unset,
		lastPulseStart: unset,
		lastPulseEnd:   unset,
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
	}

	go h.run()
	return h
}

// LatestCode returns the most recently committed code without blocking
// the decoder. Before the first sync gap the zero Code is returned.
func (h *Handler) LatestCode() Code {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Close stops the decoder and waits until it has terminated, then
// closes C so push consumers end as well. Closing a decoder whose
// event channel is already closed is allowed.
func (h *Handler) Close() error {
	h.stop.Do(func() {
		close(h.quit)
		<-h.done
		close(h.C)
	})
	return nil
}

// run consumes edge events until Close is called or the event channel
// is closed. A closed channel is the normal end of the stream, not an
// error.
func (h *Handler) run() {
	defer close(h.done)

	for {
		select {
		case <-h.quit:
			return
		case evt, open := <-h.rx:
			if !open {
				debug.InfoLog.Print("edge event stream closed, stopping decoder")
				return
			}

			h.eventHandler(evt)
		}
	}
}

// eventHandler advances the decoder by one edge event.
// A falling edge completes the pulse opened by the preceding rising
// edge; everything else just records the timestamp.
func (h *Handler) eventHandler(evt port.Event) {
	switch evt.Type {
	case port.RisingEdge:
		h.rising = evt.Timestamp
		return
	case port.FallingEdge:
		h.falling = evt.Timestamp
	default:
		debug.ErrorLog.Printf("invalid event type %v", evt.Type)
		return
	}

	if h.rising == unset || h.falling <= h.rising {
		// no open pulse, e.g. the stream started on a low phase
		return
	}

	h.pulseClosed()
	h.rising = unset
}

// pulseClosed processes one completed high pulse.
func (h *Handler) pulseClosed() {
	high := h.falling - h.rising

	if h.classifier.IsNoise(high) {
		// too short to be a symbol, pretend the pulse never happened
		debug.TraceLog.Printf("noise pulse of %v discarded", high)
		return
	}

	if h.lastPulseEnd == unset {
		// first accepted pulse, nothing to measure a gap against
		h.lastPulseStart = h.rising
		h.lastPulseEnd = h.falling
		return
	}

	gap := h.rising - h.lastPulseEnd
	lastHigh := h.lastPulseEnd - h.lastPulseStart

	switch h.classifier.Classify(lastHigh, gap) {
	case pulse.Sync:
		h.commit()
	case pulse.Zero:
		h.code <<= 1
		debug.TraceLog.Printf("bit 0, code %#b", h.code)
	case pulse.One:
		h.code = h.code<<1 | 1
		debug.TraceLog.Printf("bit 1, code %#b", h.code)
	case pulse.Ambiguous:
		// neither a clean zero nor a clean one, skip the pair
		debug.TraceLog.Printf("ambiguous pair high %v gap %v", lastHigh, gap)
	}

	h.lastPulseStart = h.rising
	h.lastPulseEnd = h.falling
}

// commit publishes the accumulated code and starts a new one.
func (h *Handler) commit() {
	c := Code{Value: h.code, CompletedAt: time.Now()}
	h.code = 0

	debug.DebugLog.Printf("sync gap, committed code %v", c.Value)

	h.mu.Lock()
	h.latest = c
	h.mu.Unlock()

	select {
	case h.C <- c:
	default:
		debug.TraceLog.Print("code channel full, commit dropped")
	}
}
