// Package replay records and replays the fixed input event stream and
// frame-delta schedule a Game consumes, per spec.md §1's determinism
// requirement: given the same recorded inputs and deltas, a fresh Game
// must reproduce the same run tick-for-tick. Grounded on the teacher's
// world storage (server/world/world.go), which persists per-chunk data in
// a github.com/df-mc/goleveldb database keyed by position; this package
// keys by tick number instead.
package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/Xevion/Pac-Man-sub000/pacman/input"
	"github.com/Xevion/Pac-Man-sub000/pacman/timing"
	"github.com/df-mc/goleveldb/leveldb"
)

// Frame is one recorded tick: the input batch delivered to a Scheduler and
// the delta time it advanced by.
type Frame struct {
	Tick      uint64
	Commands  []input.Command
	DeltaTime timing.DeltaTime
}

// Recorder appends one Frame per tick to a goleveldb database, keyed by
// big-endian tick number so an iterator naturally walks the log in tick
// order.
type Recorder struct {
	db *leveldb.DB
}

// CreateRecorder opens (creating if absent) a goleveldb database at path
// for recording.
func CreateRecorder(path string) (*Recorder, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	return &Recorder{db: db}, nil
}

// Record persists f under its tick number. Calling it twice for the same
// tick overwrites the earlier entry.
func (r *Recorder) Record(f Frame) error {
	if err := r.db.Put(tickKey(f.Tick), encodeFrame(f), nil); err != nil {
		return fmt.Errorf("replay: record tick %d: %w", f.Tick, err)
	}
	return nil
}

// Close flushes and closes the underlying database.
func (r *Recorder) Close() error { return r.db.Close() }

// Player reads back a previously recorded log.
type Player struct {
	db *leveldb.DB
}

// OpenPlayer opens an existing recorded log read-only in intent (nothing
// prevents writes, but Player never issues any).
func OpenPlayer(path string) (*Player, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	return &Player{db: db}, nil
}

// Frame returns the recorded frame for tick, or ok=false if the log ends
// before that tick (leveldb.ErrNotFound).
func (p *Player) Frame(tick uint64) (f Frame, ok bool, err error) {
	val, err := p.db.Get(tickKey(tick), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return Frame{}, false, nil
	}
	if err != nil {
		return Frame{}, false, fmt.Errorf("replay: read tick %d: %w", tick, err)
	}
	f, err = decodeFrame(tick, val)
	return f, err == nil, err
}

// Close closes the underlying database.
func (p *Player) Close() error { return p.db.Close() }

func tickKey(tick uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, tick)
	return key
}

// encodeFrame serializes a Frame's DeltaTime.Ticks and Commands as:
// 4 bytes dt_ticks, 2 bytes command count, then each command as its
// input.CommandName joined by '\n'. Commands is the only variable-length
// part of a Frame, so a simple delimited string is sufficient; nothing
// here needs a general-purpose serialization library, matching the
// teacher's own hand-rolled binary encodings elsewhere in server/world.
func encodeFrame(f Frame) []byte {
	names := make([]string, len(f.Commands))
	for i, c := range f.Commands {
		names[i] = input.CommandName(c)
	}
	joined := strings.Join(names, "\n")

	buf := make([]byte, 6+len(joined))
	binary.BigEndian.PutUint32(buf[0:4], f.DeltaTime.Ticks)
	binary.BigEndian.PutUint16(buf[4:6], uint16(len(f.Commands)))
	copy(buf[6:], joined)
	return buf
}

func decodeFrame(tick uint64, data []byte) (Frame, error) {
	if len(data) < 6 {
		return Frame{}, fmt.Errorf("replay: tick %d: short record (%d bytes)", tick, len(data))
	}
	dtTicks := binary.BigEndian.Uint32(data[0:4])
	count := binary.BigEndian.Uint16(data[4:6])

	var commands []input.Command
	if count > 0 {
		names := strings.Split(string(data[6:]), "\n")
		if len(names) != int(count) {
			return Frame{}, fmt.Errorf("replay: tick %d: expected %d commands, found %d", tick, count, len(names))
		}
		commands = make([]input.Command, count)
		for i, name := range names {
			cmd, ok := input.ParseCommandName(name)
			if !ok {
				return Frame{}, fmt.Errorf("replay: tick %d: unknown command %q", tick, name)
			}
			commands[i] = cmd
		}
	}

	return Frame{
		Tick:     tick,
		Commands: commands,
		DeltaTime: timing.DeltaTime{
			Ticks:   dtTicks,
			Seconds: float64(dtTicks) / 60,
		},
	}, nil
}
