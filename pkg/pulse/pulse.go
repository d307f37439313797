// Package pulse classifies measured pulse and gap durations against a
// protocol profile.
//
// A received code is a train of high pulses separated by low gaps. The
// classifier maps raw durations to symbols using only ratios of the
// profile's base pulse length: a high shorter than the noise floor is
// noise, a gap longer than six pulse lengths is the sync gap between two
// trains, and a (high, gap) pair on opposite sides of twice the pulse
// length is a data bit.
package pulse

import (
	"time"

	"rf433/pkg/protocol"
)

// DefaultTolerance is the default noise tolerance fraction.
// Highs shorter than this fraction of the pulse length are discarded.
const DefaultTolerance = 0.7

// syncFactor is the minimum gap, in pulse lengths, separating two pulse trains.
const syncFactor = 6

// bitFactor is the high/gap decision threshold in pulse lengths.
const bitFactor = 2

// Kind is the symbolic classification of a completed high/gap pair.
// Pulses below the noise floor are filtered out with IsNoise before a
// pair exists, so noise has no Kind.
type Kind int

const (
	// Zero is a short high followed by a long gap.
	Zero Kind = iota
	// One is a long high followed by a short gap.
	One
	// Sync is any high followed by the long inter-train gap.
	Sync
	// Ambiguous is a pair that matches neither bit pattern.
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Zero:
		return "zero"
	case One:
		return "one"
	case Sync:
		return "sync"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

// Classifier holds the duration thresholds derived from one profile
// and pulse length. The zero value is unusable, use NewClassifier.
type Classifier struct {
	unit          time.Duration
	noiseFloor    time.Duration
	bitThreshold  time.Duration
	syncThreshold time.Duration
}

// NewClassifier derives the thresholds from the profile, an optional
// pulse length override in microseconds (0 keeps the profile value) and
// the noise tolerance fraction (0 selects DefaultTolerance).
func NewClassifier(p protocol.Profile, pulseLength int, tolerance float64) Classifier {
	if pulseLength <= 0 {
		pulseLength = p.PulseLength
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	unit := time.Duration(pulseLength) * time.Microsecond
	return Classifier{
		unit:          unit,
		noiseFloor:    time.Duration(float64(unit) * tolerance),
		bitThreshold:  bitFactor * unit,
		syncThreshold: syncFactor * unit,
	}
}

// PulseLength returns the base pulse length the classifier was built with.
func (c Classifier) PulseLength() time.Duration {
	return c.unit
}

// IsNoise reports whether a high duration is below the noise floor.
func (c Classifier) IsNoise(high time.Duration) bool {
	return high < c.noiseFloor
}

// IsSyncGap reports whether a gap duration is a sync gap.
func (c Classifier) IsSyncGap(gap time.Duration) bool {
	return gap > c.syncThreshold
}

// Classify maps a completed high pulse and the gap following it to a
// symbol. A sync gap wins regardless of the high duration; otherwise
// both bit comparisons are strict, a duration exactly on the threshold
// satisfies neither side and yields Ambiguous. The decoder must not
// change any code state on Ambiguous.
func (c Classifier) Classify(high, gap time.Duration) Kind {
	if c.IsSyncGap(gap) {
		return Sync
	}

	shortHigh := high < c.bitThreshold
	longHigh := high > c.bitThreshold
	shortGap := gap < c.bitThreshold
	longGap := gap > c.bitThreshold

	switch {
	case shortHigh && longGap:
		return Zero
	case longHigh && shortGap:
		return One
	}
	return Ambiguous
}
