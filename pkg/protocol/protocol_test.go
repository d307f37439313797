package protocol

import "testing"

func TestGet(t *testing.T) {
	p, err := Get(1)
	if err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if p.PulseLength != 350 {
		t.Errorf("protocol 1 pulse length: got %v, want 350", p.PulseLength)
	}
	if p.SyncLow != 31 || p.ZeroLow != 3 || p.OneHigh != 3 {
		t.Errorf("protocol 1 multipliers: got %+v", p)
	}
}

func TestGetInvalid(t *testing.T) {
	for _, id := range []int{-1, 0, Count() + 1} {
		if _, err := Get(id); err != ErrInvalidProtocol {
			t.Errorf("Get(%v): got %v, want ErrInvalidProtocol", id, err)
		}
	}
}

func TestCount(t *testing.T) {
	if Count() != 6 {
		t.Errorf("Count: got %v, want 6", Count())
	}

	for id := 1; id <= Count(); id++ {
		p, err := Get(id)
		if err != nil {
			t.Fatalf("Get(%v): %v", id, err)
		}
		if p.PulseLength <= 0 {
			t.Errorf("protocol %v has no pulse length", id)
		}
	}
}
