package transmitter

import (
	"testing"
	"time"

	"rf433/pkg/protocol"
)

func TestEncode(t *testing.T) {
	pairs, err := Encode(Request{Code: 0b10, BitLength: 2, Protocol: 1, PulseLength: 350, Repeat: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	us := time.Microsecond
	want := []Pair{
		{High: 1050 * us, Low: 350 * us},   // 1
		{High: 350 * us, Low: 1050 * us},   // 0
		{High: 350 * us, Low: 10850 * us},  // sync
	}

	if len(pairs) != len(want) {
		t.Fatalf("pair count: got %v, want %v", len(pairs), len(want))
	}
	for i, p := range pairs {
		if p != want[i] {
			t.Errorf("pair %v: got %v, want %v", i, p, want[i])
		}
	}
}

func TestEncodeRepeat(t *testing.T) {
	pairs, err := Encode(Request{Code: 5, BitLength: 4, Protocol: 1, PulseLength: 350, Repeat: 3})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// 4 bit pairs plus one sync pair per repetition
	if len(pairs) != 3*5 {
		t.Fatalf("pair count: got %v, want 15", len(pairs))
	}

	// repetitions are identical
	for i := 0; i < 5; i++ {
		if pairs[i] != pairs[i+5] || pairs[i] != pairs[i+10] {
			t.Errorf("pair %v differs between repetitions", i)
		}
	}
}

func TestEncodeDefaults(t *testing.T) {
	pairs, err := Encode(Request{Code: 0x123456})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if len(pairs) != DefaultRepeat*(DefaultBitLength+1) {
		t.Fatalf("pair count: got %v, want %v", len(pairs), DefaultRepeat*(DefaultBitLength+1))
	}

	// default pulse length is the 3500µs transmit baseline
	if pairs[0].High != 3*3500*time.Microsecond {
		t.Errorf("first pair high: got %v, want 10.5ms", pairs[0].High)
	}
}

func TestEncodeCodeTooWide(t *testing.T) {
	if _, err := Encode(Request{Code: 0b100, BitLength: 2}); err != ErrInvalidCode {
		t.Errorf("3 bit code in 2 bits: got %v, want ErrInvalidCode", err)
	}

	// boundary: the widest code that still fits
	if _, err := Encode(Request{Code: 0b11, BitLength: 2}); err != nil {
		t.Errorf("2 bit code in 2 bits: %v", err)
	}

	if _, err := Encode(Request{Code: ^uint64(0), BitLength: 64}); err != nil {
		t.Errorf("64 bit code in 64 bits: %v", err)
	}
}

func TestEncodeInvalidBitLength(t *testing.T) {
	for _, bits := range []int{-1, 65} {
		if _, err := Encode(Request{Code: 1, BitLength: bits}); err != ErrInvalidBitLength {
			t.Errorf("bit length %v: got %v, want ErrInvalidBitLength", bits, err)
		}
	}
}

func TestEncodeNegativeRepeat(t *testing.T) {
	// only the zero value is defaulted, a negative count must be
	// rejected and not reach the pair slice allocation
	for _, repeat := range []int{-1, -5} {
		if _, err := Encode(Request{Code: 5, BitLength: 4, Repeat: repeat}); err != ErrInvalidRepeat {
			t.Errorf("repeat %v: got %v, want ErrInvalidRepeat", repeat, err)
		}
	}
}

func TestEncodeNegativePulseLength(t *testing.T) {
	if _, err := Encode(Request{Code: 5, BitLength: 4, PulseLength: -350}); err != ErrInvalidPulseLength {
		t.Errorf("pulse length -350: got %v, want ErrInvalidPulseLength", err)
	}
}

func TestEncodeInvalidProtocol(t *testing.T) {
	if _, err := Encode(Request{Code: 1, Protocol: 99}); err != protocol.ErrInvalidProtocol {
		t.Errorf("protocol 99: got %v, want ErrInvalidProtocol", err)
	}
}
