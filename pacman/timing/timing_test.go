package timing

import (
	"bytes"
	"log/slog"
	"testing"
	"time"
)

func TestSystemIDIsStableForSameName(t *testing.T) {
	if NewSystemID("collision") != NewSystemID("collision") {
		t.Fatalf("expected NewSystemID to be deterministic for the same name")
	}
	if NewSystemID("collision") == NewSystemID("animation") {
		t.Fatalf("expected distinct names to hash to distinct ids")
	}
}

func TestTimingAdvanceIncrements(t *testing.T) {
	var tm Timing
	if tm.CurrentTick() != 0 {
		t.Fatalf("expected a fresh Timing to start at tick 0")
	}
	tm.Advance()
	tm.Advance()
	if tm.CurrentTick() != 2 {
		t.Fatalf("expected tick 2 after two Advance calls, got %d", tm.CurrentTick())
	}
}

func TestStatsUnknownSystemIsNotOK(t *testing.T) {
	st := NewSystemTimings()
	if _, _, ok := st.Stats(NewSystemID("nope")); ok {
		t.Fatalf("expected Stats to report !ok for a system with no samples")
	}
}

func TestStatsMeanOfConstantSamples(t *testing.T) {
	st := NewSystemTimings()
	id := NewSystemID("collision")
	for i := 0; i < 5; i++ {
		st.Record(id, 10*time.Millisecond)
	}
	mean, stddev, ok := st.Stats(id)
	if !ok {
		t.Fatalf("expected stats to be available")
	}
	if mean != 10*time.Millisecond {
		t.Fatalf("expected mean 10ms for constant samples, got %v", mean)
	}
	if stddev != 0 {
		t.Fatalf("expected zero stddev for constant samples, got %v", stddev)
	}
}

func TestRingBufferCapsAt30Samples(t *testing.T) {
	st := NewSystemTimings()
	id := NewSystemID("animation")
	for i := 0; i < 40; i++ {
		st.Record(id, time.Duration(i)*time.Millisecond)
	}
	r := st.rings[id]
	if r.filled != ringCapacity {
		t.Fatalf("expected ring to cap at %d samples, got %d", ringCapacity, r.filled)
	}
}

func TestCheckSlowFrameWarnsPastThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	st := NewSystemTimings()
	collision := NewSystemID("collision")
	st.Record(collision, 5*time.Millisecond)

	st.CheckSlowFrame(log, 100, 20*time.Millisecond, 10*time.Millisecond, map[SystemID]string{collision: "collision"})
	if !bytes.Contains(buf.Bytes(), []byte("collision")) {
		t.Fatalf("expected the slow-frame warning to name the offending system, got %q", buf.String())
	}
}

func TestCheckSlowFrameSilentUnderThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	st := NewSystemTimings()
	st.CheckSlowFrame(log, 100, 10*time.Millisecond, 10*time.Millisecond, nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no warning when total is within 1.2x budget, got %q", buf.String())
	}
}
