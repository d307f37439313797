package pulse

import (
	"testing"
	"time"

	"rf433/pkg/protocol"
)

// unit yields a classifier for protocol 1 (350µs) with default tolerance.
func unit(t *testing.T) Classifier {
	t.Helper()
	p, err := protocol.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	return NewClassifier(p, 0, 0)
}

func TestIsNoise(t *testing.T) {
	c := unit(t)

	// floor is 0.7 * 350µs = 245µs
	if !c.IsNoise(244 * time.Microsecond) {
		t.Error("244µs should be noise")
	}
	if c.IsNoise(245 * time.Microsecond) {
		t.Error("245µs should not be noise")
	}
	if c.IsNoise(350 * time.Microsecond) {
		t.Error("a full pulse length should not be noise")
	}
}

func TestIsSyncGap(t *testing.T) {
	c := unit(t)

	// threshold is 6 * 350µs = 2100µs
	if c.IsSyncGap(2100 * time.Microsecond) {
		t.Error("gap equal to the threshold is not a sync gap")
	}
	if !c.IsSyncGap(2101 * time.Microsecond) {
		t.Error("2101µs should be a sync gap")
	}
	// protocol 1 sync low is 31 * 350µs
	if !c.IsSyncGap(10850 * time.Microsecond) {
		t.Error("10850µs should be a sync gap")
	}
}

func TestClassify(t *testing.T) {
	c := unit(t)
	short := 350 * time.Microsecond
	long := 1050 * time.Microsecond
	threshold := 700 * time.Microsecond
	syncGap := 10850 * time.Microsecond

	tests := []struct {
		name      string
		high, gap time.Duration
		want      Kind
	}{
		{"zero", short, long, Zero},
		{"one", long, short, One},
		{"sync after short high", short, syncGap, Sync},
		{"sync after long high", long, syncGap, Sync},
		{"both short", short, short, Ambiguous},
		{"both long", long, long, Ambiguous},
		{"high on threshold", threshold, long, Ambiguous},
		{"gap on threshold", long, threshold, Ambiguous},
		{"both on threshold", threshold, threshold, Ambiguous},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.high, tt.gap); got != tt.want {
			t.Errorf("%s: Classify(%v, %v) = %v, want %v", tt.name, tt.high, tt.gap, got, tt.want)
		}
	}
}

func TestPulseLengthOverride(t *testing.T) {
	p, err := protocol.Get(1)
	if err != nil {
		t.Fatal(err)
	}

	c := NewClassifier(p, 3500, 0)
	if c.PulseLength() != 3500*time.Microsecond {
		t.Errorf("pulse length: got %v, want 3.5ms", c.PulseLength())
	}
	if c.IsNoise(3 * time.Millisecond) {
		t.Error("3ms is above the 2.45ms noise floor")
	}
	if !c.IsNoise(2 * time.Millisecond) {
		t.Error("2ms is below the 2.45ms noise floor")
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{Zero: "zero", One: "one", Sync: "sync", Ambiguous: "ambiguous"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
