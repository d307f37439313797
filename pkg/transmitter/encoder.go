package transmitter

import (
	"errors"
	"time"

	"rf433/pkg/protocol"
)

// Defaults applied to a Request before validation. The 3500µs pulse
// length is the usual transmit baseline for protocol 1; receivers of
// the same protocol typically run at 350µs, so the pulse length is
// always explicit in the encoded output rather than an implicit
// property of the protocol id.
const (
	DefaultBitLength   = 24
	DefaultProtocol    = 1
	DefaultPulseLength = 3500
	DefaultRepeat      = 10
)

var (
	// ErrInvalidCode is returned when a code does not fit the requested bit length.
	ErrInvalidCode = errors.New("code does not fit bit length")
	// ErrInvalidBitLength is returned for a bit length outside 1..64.
	ErrInvalidBitLength = errors.New("invalid bit length")
	// ErrInvalidRepeat is returned for a repeat count below 1.
	ErrInvalidRepeat = errors.New("invalid repeat count")
	// ErrInvalidPulseLength is returned for a pulse length below 1µs.
	ErrInvalidPulseLength = errors.New("invalid pulse length")
)

// Request describes one transmission.
// Zero fields other than Code are replaced by the package defaults.
type Request struct {
	// Code holds the bits to send, first bit in the highest position
	// of the BitLength wide word.
	Code uint64 `json:"code"`
	// BitLength is the number of bits to send.
	BitLength int `json:"bits"`
	// Protocol selects the timing profile.
	Protocol int `json:"protocol"`
	// PulseLength overrides the profile's base pulse length (µs).
	PulseLength int `json:"pulselength"`
	// Repeat is the number of times the code is sent.
	Repeat int `json:"repeat"`
}

// setDefaults fills unset request fields.
func (r *Request) setDefaults() {
	if r.BitLength == 0 {
		r.BitLength = DefaultBitLength
	}
	if r.Protocol == 0 {
		r.Protocol = DefaultProtocol
	}
	if r.PulseLength == 0 {
		r.PulseLength = DefaultPulseLength
	}
	if r.Repeat == 0 {
		r.Repeat = DefaultRepeat
	}
}

// Pair is one output pulse: high for High, then low for Low.
type Pair struct {
	High time.Duration
	Low  time.Duration
}

// Encode expands a request into the pulse sequence to emit: per
// repetition the code's bits from most to least significant, each as
// its zero or one pair, followed by the sync pair.
//
// A code with bits above BitLength is rejected, never truncated.
func Encode(r Request) ([]Pair, error) {
	r.setDefaults()

	p, err := protocol.Get(r.Protocol)
	if err != nil {
		return nil, err
	}

	if r.BitLength < 1 || r.BitLength > 64 {
		return nil, ErrInvalidBitLength
	}
	if r.Code>>uint(r.BitLength) != 0 {
		return nil, ErrInvalidCode
	}
	// setDefaults only fills zero values, negative requests from e.g.
	// the web surface must be rejected here
	if r.Repeat < 1 {
		return nil, ErrInvalidRepeat
	}
	if r.PulseLength < 1 {
		return nil, ErrInvalidPulseLength
	}

	unit := time.Duration(r.PulseLength) * time.Microsecond
	zero := Pair{High: time.Duration(p.ZeroHigh) * unit, Low: time.Duration(p.ZeroLow) * unit}
	one := Pair{High: time.Duration(p.OneHigh) * unit, Low: time.Duration(p.OneLow) * unit}
	sync := Pair{High: time.Duration(p.SyncHigh) * unit, Low: time.Duration(p.SyncLow) * unit}

	pairs := make([]Pair, 0, r.Repeat*(r.BitLength+1))
	for n := 0; n < r.Repeat; n++ {
		for bit := r.BitLength - 1; bit >= 0; bit-- {
			if r.Code>>uint(bit)&1 == 1 {
				pairs = append(pairs, one)
			} else {
				pairs = append(pairs, zero)
			}
		}
		pairs = append(pairs, sync)
	}

	return pairs, nil
}
