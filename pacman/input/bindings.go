// Package input implements GameCommand, key Bindings loaded from TOML, and
// the per-tick input batching/held-key/touch-easing system described in
// spec.md §4.3.
package input

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Xevion/Pac-Man-sub000/pacman/gameerr"
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml"
)

type commandKind uint8

const (
	cmdExit commandKind = iota
	cmdMovePlayer
	cmdToggleDebug
	cmdMuteAudio
	cmdResetLevel
	cmdTogglePause
	cmdSingleTick
	cmdToggleFullscreen
	cmdSetCursor
	cmdTouchBegin
	cmdTouchMove
	cmdTouchEnd
)

// Command is the tagged sum GameCommand from spec.md §4.3. The cursor/touch
// variants carry a pointer position and/or finger id instead of a
// direction; they are never bindable from a key, so they are produced
// directly by a host's pointer/touch handlers (package schedule's
// systemCursorTouch consumes them).
type Command struct {
	k         commandKind
	direction graph.Direction
	pos       mgl64.Vec2
	fingerID  int
}

func Exit() Command {
	return Command{k: cmdExit}
}
func MovePlayer(d graph.Direction) Command {
	return Command{k: cmdMovePlayer, direction: d}
}
func ToggleDebug() Command      { return Command{k: cmdToggleDebug} }
func MuteAudio() Command        { return Command{k: cmdMuteAudio} }
func ResetLevel() Command       { return Command{k: cmdResetLevel} }
func TogglePause() Command      { return Command{k: cmdTogglePause} }
func SingleTick() Command       { return Command{k: cmdSingleTick} }
func ToggleFullscreen() Command { return Command{k: cmdToggleFullscreen} }

// SetCursor reports a new pointer position, per spec.md §4.3's cursor
// tracking.
func SetCursor(pos mgl64.Vec2) Command {
	return Command{k: cmdSetCursor, pos: pos}
}

// TouchBegin starts tracking a new finger's drag.
func TouchBegin(fingerID int, pos mgl64.Vec2) Command {
	return Command{k: cmdTouchBegin, fingerID: fingerID, pos: pos}
}

// TouchMove updates an active finger's drag position.
func TouchMove(fingerID int, pos mgl64.Vec2) Command {
	return Command{k: cmdTouchMove, fingerID: fingerID, pos: pos}
}

// TouchEnd stops tracking a finger's drag.
func TouchEnd(fingerID int) Command {
	return Command{k: cmdTouchEnd, fingerID: fingerID}
}

func (c Command) IsExit() bool               { return c.k == cmdExit }
func (c Command) IsMovePlayer() bool         { return c.k == cmdMovePlayer }
func (c Command) Direction() graph.Direction { return c.direction }
func (c Command) IsToggleDebug() bool        { return c.k == cmdToggleDebug }
func (c Command) IsMuteAudio() bool          { return c.k == cmdMuteAudio }
func (c Command) IsResetLevel() bool         { return c.k == cmdResetLevel }
func (c Command) IsTogglePause() bool        { return c.k == cmdTogglePause }
func (c Command) IsSingleTick() bool         { return c.k == cmdSingleTick }
func (c Command) IsToggleFullscreen() bool   { return c.k == cmdToggleFullscreen }
func (c Command) IsSetCursor() bool          { return c.k == cmdSetCursor }
func (c Command) IsTouchBegin() bool         { return c.k == cmdTouchBegin }
func (c Command) IsTouchMove() bool          { return c.k == cmdTouchMove }
func (c Command) IsTouchEnd() bool           { return c.k == cmdTouchEnd }
func (c Command) CursorPos() mgl64.Vec2      { return c.pos }
func (c Command) FingerID() int              { return c.fingerID }

// commandName/parseCommand round-trip a Command through the TOML-friendly
// string vocabulary a bindings file uses.
func commandName(c Command) string {
	switch c.k {
	case cmdExit:
		return "exit"
	case cmdMovePlayer:
		switch c.direction {
		case graph.Up:
			return "move_up"
		case graph.Down:
			return "move_down"
		case graph.Left:
			return "move_left"
		default:
			return "move_right"
		}
	case cmdToggleDebug:
		return "toggle_debug"
	case cmdMuteAudio:
		return "mute_audio"
	case cmdResetLevel:
		return "reset_level"
	case cmdTogglePause:
		return "toggle_pause"
	case cmdSingleTick:
		return "single_tick"
	case cmdToggleFullscreen:
		return "toggle_fullscreen"
	case cmdSetCursor:
		return fmt.Sprintf("set_cursor:%s,%s", strconv.FormatFloat(c.pos[0], 'g', -1, 64), strconv.FormatFloat(c.pos[1], 'g', -1, 64))
	case cmdTouchBegin:
		return fmt.Sprintf("touch_begin:%d:%s,%s", c.fingerID, strconv.FormatFloat(c.pos[0], 'g', -1, 64), strconv.FormatFloat(c.pos[1], 'g', -1, 64))
	case cmdTouchMove:
		return fmt.Sprintf("touch_move:%d:%s,%s", c.fingerID, strconv.FormatFloat(c.pos[0], 'g', -1, 64), strconv.FormatFloat(c.pos[1], 'g', -1, 64))
	case cmdTouchEnd:
		return fmt.Sprintf("touch_end:%d", c.fingerID)
	default:
		return ""
	}
}

// CommandName exposes commandName for callers outside this package that
// need a stable wire form for a Command, such as package replay.
func CommandName(c Command) string { return commandName(c) }

// ParseCommandName exposes parseCommand for callers outside this package
// that decode a Command from its wire form, such as package replay.
func ParseCommandName(name string) (Command, bool) { return parseCommand(name) }

func parseCommand(name string) (Command, bool) {
	switch name {
	case "exit":
		return Exit(), true
	case "move_up":
		return MovePlayer(graph.Up), true
	case "move_down":
		return MovePlayer(graph.Down), true
	case "move_left":
		return MovePlayer(graph.Left), true
	case "move_right":
		return MovePlayer(graph.Right), true
	case "toggle_debug":
		return ToggleDebug(), true
	case "mute_audio":
		return MuteAudio(), true
	case "reset_level":
		return ResetLevel(), true
	case "toggle_pause":
		return TogglePause(), true
	case "single_tick":
		return SingleTick(), true
	case "toggle_fullscreen":
		return ToggleFullscreen(), true
	default:
		switch {
		case strings.HasPrefix(name, "set_cursor:"):
			pos, ok := parseVec2(strings.TrimPrefix(name, "set_cursor:"))
			if !ok {
				return Command{}, false
			}
			return SetCursor(pos), true
		case strings.HasPrefix(name, "touch_begin:"):
			id, pos, ok := parseFingerVec2(strings.TrimPrefix(name, "touch_begin:"))
			if !ok {
				return Command{}, false
			}
			return TouchBegin(id, pos), true
		case strings.HasPrefix(name, "touch_move:"):
			id, pos, ok := parseFingerVec2(strings.TrimPrefix(name, "touch_move:"))
			if !ok {
				return Command{}, false
			}
			return TouchMove(id, pos), true
		case strings.HasPrefix(name, "touch_end:"):
			id, err := strconv.Atoi(strings.TrimPrefix(name, "touch_end:"))
			if err != nil {
				return Command{}, false
			}
			return TouchEnd(id), true
		default:
			return Command{}, false
		}
	}
}

// parseVec2 parses a "x,y" pair written by commandName's cursor/touch cases.
func parseVec2(s string) (mgl64.Vec2, bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return mgl64.Vec2{}, false
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return mgl64.Vec2{}, false
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{x, y}, true
}

// parseFingerVec2 parses a "fingerID:x,y" pair written by commandName's
// touch_begin/touch_move cases.
func parseFingerVec2(s string) (int, mgl64.Vec2, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, mgl64.Vec2{}, false
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, mgl64.Vec2{}, false
	}
	pos, ok := parseVec2(parts[1])
	if !ok {
		return 0, mgl64.Vec2{}, false
	}
	return id, pos, true
}

// Bindings maps a raw key name to a GameCommand.
type Bindings struct {
	keys map[string]Command
}

// DefaultBindings returns the compiled-in binding set used when no TOML
// bindings file is supplied, or when one is absent on disk.
func DefaultBindings() *Bindings {
	return &Bindings{keys: map[string]Command{
		"ArrowUp":    MovePlayer(graph.Up),
		"ArrowDown":  MovePlayer(graph.Down),
		"ArrowLeft":  MovePlayer(graph.Left),
		"ArrowRight": MovePlayer(graph.Right),
		"w":          MovePlayer(graph.Up),
		"s":          MovePlayer(graph.Down),
		"a":          MovePlayer(graph.Left),
		"d":          MovePlayer(graph.Right),
		"Escape":     Exit(),
		"F1":         ToggleDebug(),
		"m":          MuteAudio(),
		"r":          ResetLevel(),
		"p":          TogglePause(),
		"n":          SingleTick(),
		"F11":        ToggleFullscreen(),
	}}
}

type bindingsFile struct {
	Keys map[string]string `toml:"keys"`
}

// LoadBindings loads a TOML bindings file, the same shape the teacher
// reserves for whitelist.toml: a missing file is not fatal (the compiled-in
// default is used), but a malformed file supplied explicitly fails fast
// with gameerr.ErrParse.
func LoadBindings(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultBindings(), nil
		}
		return nil, fmt.Errorf("%w: reading bindings file: %v", gameerr.ErrParse, err)
	}

	var file bindingsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing bindings TOML: %v", gameerr.ErrParse, err)
	}

	b := DefaultBindings()
	for key, name := range file.Keys {
		cmd, ok := parseCommand(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown command %q for key %q", gameerr.ErrParse, name, key)
		}
		b.keys[key] = cmd
	}
	return b, nil
}

// Resolve maps a raw key name to its bound Command, if any.
func (b *Bindings) Resolve(key string) (Command, bool) {
	cmd, ok := b.keys[key]
	return cmd, ok
}
