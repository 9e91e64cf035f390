// Command pacmansim is a minimal example harness for package game: it loads
// config.toml, builds a Game, and drives it from a fixed-rate ticker plus a
// go-prompt REPL that issues debug GameCommands. It carries no rendering —
// see SPEC_FULL §10 for why the debug console stands in for the real game
// window here.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	prompt "github.com/c-bata/go-prompt"
	"github.com/pelletier/go-toml"

	"github.com/Xevion/Pac-Man-sub000/pacman/game"
	"github.com/Xevion/Pac-Man-sub000/pacman/input"
	"github.com/Xevion/Pac-Man-sub000/pacman/replay"
	"github.com/Xevion/Pac-Man-sub000/pacman/rng"
)

// simConfig is config.toml's shape.
type simConfig struct {
	Seed          uint64 `toml:"seed"`
	StartingLives int    `toml:"starting_lives"`
	BindingsFile  string `toml:"bindings_file"`
	ReplayFile    string `toml:"replay_file"`
	TickRateHz    int    `toml:"tick_rate_hz"`
}

func loadSimConfig(path string) (simConfig, error) {
	cfg := simConfig{TickRateHz: 60, StartingLives: 3}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("pacmansim: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("pacmansim: parsing %s: %w", path, err)
	}
	if cfg.TickRateHz <= 0 {
		cfg.TickRateHz = 60
	}
	if cfg.StartingLives <= 0 {
		cfg.StartingLives = 3
	}
	return cfg, nil
}

func main() {
	log := slog.Default()

	cfg, err := loadSimConfig("config.toml")
	if err != nil {
		log.Error("loading config", "err", err)
		os.Exit(1)
	}

	var bindings *input.Bindings
	if cfg.BindingsFile != "" {
		bindings, err = input.LoadBindings(cfg.BindingsFile)
		if err != nil {
			log.Error("loading bindings", "err", err)
			os.Exit(1)
		}
	}

	var recorder *replay.Recorder
	if cfg.ReplayFile != "" {
		recorder, err = replay.CreateRecorder(cfg.ReplayFile)
		if err != nil {
			log.Error("opening replay log", "err", err)
			os.Exit(1)
		}
		defer recorder.Close()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}

	g, err := (game.Config{
		Log:           log,
		RNG:           rng.New(seed),
		Bindings:      bindings,
		Recorder:      recorder,
		StartingLives: cfg.StartingLives,
	}).New()
	if err != nil {
		log.Error("building game", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The console goroutine only ever writes to commands; only runTicker's
	// goroutine ever calls g.Tick, so the World is never touched by two
	// goroutines at once.
	commands := make(chan input.Command, 16)
	console := newConsole(commands, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		console.run(ctx)
	}()

	runTicker(ctx, g, log, commands, time.Second/time.Duration(cfg.TickRateHz))
	cancel()
	wg.Wait()
}

// runTicker drives Game.Tick at a fixed rate until ctx is cancelled or an
// exit command is seen, folding in whatever console commands queued up
// since the previous tick.
func runTicker(ctx context.Context, g *game.Game, log *slog.Logger, commands <-chan input.Command, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			extra := drain(commands)
			exitRequested, err := g.Tick(extra)
			if err != nil {
				log.Error("tick", "err", err)
			}
			for _, e := range g.Errors() {
				log.Warn("game error", "tick", e.Tick, "err", e.Err)
			}
			if exitRequested {
				return
			}
		}
	}
}

func drain(commands <-chan input.Command) []input.Command {
	var out []input.Command
	for {
		select {
		case c := <-commands:
			out = append(out, c)
		default:
			return out
		}
	}
}

// console is the debug REPL from SPEC_FULL §10: a go-prompt line editor
// that translates a small fixed vocabulary of words into GameCommands and
// queues them for the tick loop to apply. Grounded on the teacher's
// server/console package, which likewise hands operator input off to the
// World's own goroutine (World.Exec) rather than touching world state
// directly from the console's reader loop.
type console struct {
	out     chan<- input.Command
	log     *slog.Logger
	history []string
}

func newConsole(out chan<- input.Command, log *slog.Logger) *console {
	return &console{out: out, log: log}
}

var consoleCommands = map[string]func() input.Command{
	"pause":  input.TogglePause,
	"step":   input.SingleTick,
	"reset":  input.ResetLevel,
	"debug":  input.ToggleDebug,
	"mute":   input.MuteAudio,
	"exit":   input.Exit,
}

func (c *console) run(ctx context.Context) {
	if !isTerminal(os.Stdin) {
		c.runScanner(ctx)
		return
	}
	c.runInteractive(ctx)
}

func (c *console) runScanner(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !scanner.Scan() {
			return
		}
		c.execute(strings.TrimSpace(scanner.Text()))
	}
}

func (c *console) runInteractive(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := prompt.Input("pacmansim> ", c.complete,
			prompt.OptionTitle("pacmansim console"),
			prompt.OptionHistory(c.history),
			prompt.OptionPrefix("pacmansim> "),
		)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c.history = append(c.history, line)
		c.execute(line)
	}
}

func (c *console) execute(line string) {
	name := strings.ToLower(strings.TrimSpace(line))
	ctor, ok := consoleCommands[name]
	if !ok {
		c.log.Warn("unknown console command", "input", line)
		return
	}
	cmd := ctor()
	if cmd.IsExit() {
		c.log.Info("exit requested from console")
	}
	c.out <- cmd
}

func (c *console) complete(doc prompt.Document) []prompt.Suggest {
	word := doc.GetWordBeforeCursor()
	names := make([]string, 0, len(consoleCommands))
	for name := range consoleCommands {
		names = append(names, name)
	}
	sort.Strings(names)

	suggestions := make([]prompt.Suggest, 0, len(names))
	for _, name := range names {
		suggestions = append(suggestions, prompt.Suggest{Text: name})
	}
	return prompt.FilterHasPrefix(suggestions, word, true)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
