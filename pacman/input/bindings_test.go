package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Xevion/Pac-Man-sub000/pacman/gameerr"
	"github.com/Xevion/Pac-Man-sub000/pacman/graph"
)

func TestDefaultBindingsResolvesArrowKeys(t *testing.T) {
	b := DefaultBindings()
	cmd, ok := b.Resolve("ArrowUp")
	if !ok || !cmd.IsMovePlayer() || cmd.Direction() != graph.Up {
		t.Fatalf("expected ArrowUp to resolve to MovePlayer(Up), got %+v ok=%v", cmd, ok)
	}
}

func TestLoadBindingsMissingFileFallsBackToDefault(t *testing.T) {
	b, err := LoadBindings(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("missing bindings file should not be fatal: %v", err)
	}
	if _, ok := b.Resolve("ArrowUp"); !ok {
		t.Fatalf("expected default bindings to be used")
	}
}

func TestLoadBindingsOverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.toml")
	if err := os.WriteFile(path, []byte("[keys]\nk = \"move_up\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := LoadBindings(path)
	if err != nil {
		t.Fatalf("LoadBindings: %v", err)
	}
	cmd, ok := b.Resolve("k")
	if !ok || !cmd.IsMovePlayer() || cmd.Direction() != graph.Up {
		t.Fatalf("expected custom binding k->move_up, got %+v ok=%v", cmd, ok)
	}
	if _, ok := b.Resolve("ArrowUp"); !ok {
		t.Fatalf("expected default bindings to survive alongside overrides")
	}
}

func TestLoadBindingsMalformedTOMLIsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.toml")
	if err := os.WriteFile(path, []byte("not valid toml [[["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := LoadBindings(path)
	if err == nil {
		t.Fatalf("expected an error for malformed TOML")
	}
	if !errors.Is(err, gameerr.ErrParse) {
		t.Fatalf("expected gameerr.ErrParse, got %v", err)
	}
}

func TestLoadBindingsUnknownCommandIsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.toml")
	if err := os.WriteFile(path, []byte("[keys]\nk = \"not_a_real_command\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := LoadBindings(path)
	if !errors.Is(err, gameerr.ErrParse) {
		t.Fatalf("expected gameerr.ErrParse for an unknown command name, got %v", err)
	}
}
