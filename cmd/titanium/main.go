package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/titanium/audio"
	"github.com/lixenwraith/titanium/card"
	"github.com/lixenwraith/titanium/config"
	"github.com/lixenwraith/titanium/constants"
	"github.com/lixenwraith/titanium/engine"
	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/modes"
	"github.com/lixenwraith/titanium/render"
	"github.com/lixenwraith/titanium/spectate"
	"github.com/lixenwraith/titanium/status"
)

var (
	configFlag   = flag.String("config", "asset/config.yaml", "Path to YAML config; missing file uses the preset")
	presetFlag   = flag.String("preset", "", "Preset: default, casual, hard")
	deckFlag     = flag.String("deck", "", "Card deck JSON file (overrides config)")
	modeFlag     = flag.String("mode", "", "Mode: towers, arena (overrides config)")
	logFlag      = flag.String("log", "", "Log file path; logging is discarded when empty")
	spectateFlag = flag.String("spectate", "", "Serve a read-only websocket feed on this address, e.g. :8090")
	muteFlag     = flag.Bool("mute", false, "Start with audio muted")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "titanium: %v\n", err)
		os.Exit(1)
	}

	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()

	if err := run(cfg); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "titanium: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves preset, file, environment then flags, in that order
func loadConfig() (*config.Config, error) {
	preset := *presetFlag
	if preset == "" {
		preset = config.PresetFromEnv()
	}
	base, err := config.Preset(preset)
	if err != nil {
		return nil, err
	}

	cfg := &base
	if _, statErr := os.Stat(*configFlag); statErr == nil {
		if cfg, err = config.Load(*configFlag, base); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	if *deckFlag != "" {
		cfg.Deck = *deckFlag
		cfg.DeckB = ""
	}
	if *modeFlag != "" {
		cfg.Mode = *modeFlag
	}
	if *logFlag != "" {
		cfg.LogFile = *logFlag
	}
	if *spectateFlag != "" {
		cfg.Spectate = *spectateFlag
	}
	return cfg, cfg.Validate()
}

func setupLogging(path string) func() {
	log.SetPrefix("[titanium] ")
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "titanium: log file: %v (logging disabled)\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

func run(cfg *config.Config) error {
	pathA, pathB := cfg.DeckPaths()
	deckA, err := card.LoadDeck(pathA)
	if err != nil {
		return err
	}
	deckB, err := card.LoadDeck(pathB)
	if err != nil {
		return err
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	mode, err := modes.New(cfg.Mode, cfg.BattleRules(), cfg.ArenaRules(), deckA, deckB, bindings, rng)
	if err != nil {
		return err
	}
	log.Printf("starting %s: decks %s / %s, seed %d", mode.Name(), pathA, pathB, seed)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	screen.HideCursor()
	defer screen.Fini()

	// Restore the terminal before the stack trace so it stays readable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTITANIUM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	sounds := audio.NewManager(cfg.AudioConfig())
	if cfg.Audio.Enabled {
		if err := sounds.Init(); err != nil {
			log.Printf("audio initialization failed: %v (continuing without audio)", err)
		}
	}
	sounds.SetMuted(*muteFlag)
	defer sounds.Close()

	term := render.NewTerminal(screen, constants.LogicalWidth, constants.LogicalHeight)
	opts := []engine.DriverOption{
		engine.WithRenderer(term),
		engine.WithEventSink(sounds),
	}

	if cfg.Spectate != "" {
		hub := spectate.NewHub()
		hub.Start(cfg.Spectate)
		defer hub.Close()
		opts = append(opts, engine.WithPublisher(hub))
	}

	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	in := input.NewState(constants.LogicalWidth, constants.LogicalHeight)
	driver := engine.NewDriver(mode, in, clock, bindings, status.NewRegistry(), opts...)

	events := make(chan tcell.Event, constants.EventBufferSize)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(cfg.FrameInterval())
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if term.Apply(ev, in) {
				return nil
			}
		case <-ticker.C:
			if !driver.Frame() {
				log.Printf("quit")
				return nil
			}
		}
	}
}
