// Package config loads match settings from YAML and exposes them as the
// tuning structs of the battle and mode packages.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/titanium/audio"
	"github.com/lixenwraith/titanium/battle"
	"github.com/lixenwraith/titanium/constants"
	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/modes"
)

// Config is the complete runtime configuration
type Config struct {
	Mode     string            `yaml:"mode"`
	Deck     string            `yaml:"deck"`
	DeckB    string            `yaml:"deck_b"` // player B deck; empty reuses Deck
	LogFile  string            `yaml:"log_file"`
	Spectate string            `yaml:"spectate"` // listen address, empty disables
	Seed     int64             `yaml:"seed"`     // 0 seeds from the clock
	Frame    FrameConfig       `yaml:"frame"`
	Audio    AudioConfig       `yaml:"audio"`
	Battle   BattleConfig      `yaml:"battle"`
	Arena    ArenaConfig       `yaml:"arena"`
	Keys     map[string]string `yaml:"keys"`
}

type FrameConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // master gain 0..1
}

type BattleConfig struct {
	TowerHP             int  `yaml:"tower_hp"`
	FrameMovementFactor int  `yaml:"frame_movement_factor"`
	SpawnStep           int  `yaml:"spawn_step"`
	SpawnBand           int  `yaml:"spawn_band"`
	EngagementInset     int  `yaml:"engagement_inset"`
	LaneClash           bool `yaml:"lane_clash"`
	Shuffle             bool `yaml:"shuffle"`
}

type ArenaConfig struct {
	StartingMana int  `yaml:"starting_mana"`
	ManaPerRound int  `yaml:"mana_per_round"`
	Shuffle      bool `yaml:"shuffle"`
}

// Default returns the standard configuration
func Default() Config {
	return Config{
		Mode:  modes.NameTowers,
		Deck:  "asset/cards.json",
		Frame: FrameConfig{IntervalMs: int(constants.FrameUpdateInterval / time.Millisecond)},
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
		Battle: BattleConfig{
			TowerHP:             constants.TowerStartHP,
			FrameMovementFactor: constants.FrameMovementFactor,
			SpawnStep:           constants.SpawnOffsetStep,
			SpawnBand:           constants.SpawnOffsetBand,
			EngagementInset:     constants.EngagementInset,
			Shuffle:             true,
		},
		Arena: ArenaConfig{
			StartingMana: constants.StartingMana,
			ManaPerRound: constants.ManaPerRound,
			Shuffle:      true,
		},
	}
}

// Casual returns sturdier towers and a faster mana economy
func Casual() Config {
	cfg := Default()
	cfg.Battle.TowerHP = 20
	cfg.Battle.FrameMovementFactor = 2
	cfg.Arena.StartingMana = 8
	cfg.Arena.ManaPerRound = 6
	return cfg
}

// Hard returns fragile towers, faster units and lane clashes
func Hard() Config {
	cfg := Default()
	cfg.Battle.TowerHP = 6
	cfg.Battle.FrameMovementFactor = 4
	cfg.Battle.LaneClash = true
	cfg.Arena.StartingMana = 3
	cfg.Arena.ManaPerRound = 4
	return cfg
}

// Preset returns a named configuration
func Preset(name string) (Config, error) {
	switch name {
	case "", "default":
		return Default(), nil
	case "casual":
		return Casual(), nil
	case "hard":
		return Hard(), nil
	}
	return Config{}, fmt.Errorf("config: unknown preset %q", name)
}

// Load overlays the YAML file at path onto base
// Keys absent from the file keep the base value
func Load(path string, base Config) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills zero values left by a sparse file
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.Deck == "" {
		c.Deck = d.Deck
	}
	if c.Frame.IntervalMs == 0 {
		c.Frame.IntervalMs = d.Frame.IntervalMs
	}
	if c.Battle.TowerHP == 0 {
		c.Battle.TowerHP = d.Battle.TowerHP
	}
	if c.Battle.SpawnStep == 0 {
		c.Battle.SpawnStep = d.Battle.SpawnStep
	}
	if c.Battle.SpawnBand == 0 {
		c.Battle.SpawnBand = d.Battle.SpawnBand
	}
	if c.Battle.EngagementInset == 0 {
		c.Battle.EngagementInset = d.Battle.EngagementInset
	}
}

// Validate rejects settings no match can run with
func (c *Config) Validate() error {
	switch c.Mode {
	case modes.NameTowers, modes.NameArena:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Frame.IntervalMs <= 0 {
		return fmt.Errorf("frame interval must be positive, got %dms", c.Frame.IntervalMs)
	}
	if c.Arena.StartingMana < 0 || c.Arena.ManaPerRound < 0 {
		return fmt.Errorf("arena mana must not be negative")
	}
	if err := c.BattleRules().Validate(); err != nil {
		return err
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return nil
}

// FrameInterval returns the frame period
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Frame.IntervalMs) * time.Millisecond
}

// BattleRules converts the battle section into simulation tuning
func (c *Config) BattleRules() battle.Rules {
	r := battle.DefaultRules()
	r.TowerHP = c.Battle.TowerHP
	r.FrameMovementFactor = c.Battle.FrameMovementFactor
	r.SpawnStep = c.Battle.SpawnStep
	r.SpawnBand = c.Battle.SpawnBand
	r.EngagementInset = c.Battle.EngagementInset
	r.LaneClash = c.Battle.LaneClash
	r.ShuffleOnDeal = c.Battle.Shuffle
	return r
}

// ArenaRules converts the arena section into mana tuning
func (c *Config) ArenaRules() modes.ArenaRules {
	r := modes.DefaultArenaRules()
	r.StartingMana = c.Arena.StartingMana
	r.ManaPerRound = c.Arena.ManaPerRound
	r.ShuffleOnDeal = c.Arena.Shuffle
	return r
}

// AudioConfig converts the audio section into output settings
func (c *Config) AudioConfig() audio.Config {
	a := audio.DefaultConfig().WithVolume(c.Audio.Volume)
	a.Enabled = c.Audio.Enabled
	return a
}

// Bindings returns the default key layout with the keys section applied
func (c *Config) Bindings() (*input.Bindings, error) {
	b := input.DefaultBindings()
	if err := b.Apply(c.Keys); err != nil {
		return nil, err
	}
	return b, nil
}

// DeckPaths returns the deck files of player A and player B
func (c *Config) DeckPaths() (string, string) {
	if c.DeckB == "" {
		return c.Deck, c.Deck
	}
	return c.Deck, c.DeckB
}
