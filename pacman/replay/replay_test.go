package replay

import (
	"path/filepath"
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/Xevion/Pac-Man-sub000/pacman/input"
	"github.com/Xevion/Pac-Man-sub000/pacman/timing"
)

func TestRecordThenPlaybackRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ldb")

	rec, err := CreateRecorder(path)
	if err != nil {
		t.Fatalf("CreateRecorder: %v", err)
	}
	frames := []Frame{
		{Tick: 1, Commands: []input.Command{input.MovePlayer(graph.Left)}, DeltaTime: timing.DeltaTime{Ticks: 1, Seconds: 1.0 / 60}},
		{Tick: 2, Commands: nil, DeltaTime: timing.DeltaTime{Ticks: 1, Seconds: 1.0 / 60}},
		{Tick: 3, Commands: []input.Command{input.TogglePause(), input.MovePlayer(graph.Up)}, DeltaTime: timing.DeltaTime{Ticks: 2, Seconds: 2.0 / 60}},
	}
	for _, f := range frames {
		if err := rec.Record(f); err != nil {
			t.Fatalf("Record(%d): %v", f.Tick, err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close recorder: %v", err)
	}

	player, err := OpenPlayer(path)
	if err != nil {
		t.Fatalf("OpenPlayer: %v", err)
	}
	defer player.Close()

	for _, want := range frames {
		got, ok, err := player.Frame(want.Tick)
		if err != nil {
			t.Fatalf("Frame(%d): %v", want.Tick, err)
		}
		if !ok {
			t.Fatalf("Frame(%d): expected a recorded frame", want.Tick)
		}
		if got.DeltaTime.Ticks != want.DeltaTime.Ticks {
			t.Fatalf("tick %d: DeltaTime.Ticks = %d, want %d", want.Tick, got.DeltaTime.Ticks, want.DeltaTime.Ticks)
		}
		if len(got.Commands) != len(want.Commands) {
			t.Fatalf("tick %d: got %d commands, want %d", want.Tick, len(got.Commands), len(want.Commands))
		}
		for i := range want.Commands {
			if got.Commands[i] != want.Commands[i] {
				t.Fatalf("tick %d: command %d = %+v, want %+v", want.Tick, i, got.Commands[i], want.Commands[i])
			}
		}
	}
}

func TestFrameReportsNotOkPastEndOfLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ldb")
	rec, err := CreateRecorder(path)
	if err != nil {
		t.Fatalf("CreateRecorder: %v", err)
	}
	if err := rec.Record(Frame{Tick: 1, DeltaTime: timing.DeltaTime{Ticks: 1}}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	player, err := OpenPlayer(path)
	if err != nil {
		t.Fatalf("OpenPlayer: %v", err)
	}
	defer player.Close()

	if _, ok, err := player.Frame(2); err != nil || ok {
		t.Fatalf("Frame(2): got ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}
