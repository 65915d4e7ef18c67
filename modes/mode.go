// Package modes binds the battle rules and the drag controller to a scene.
// Towers is the real-time lane variant; Arena is the turn-based mana variant.
package modes

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/titanium/battle"
	"github.com/lixenwraith/titanium/card"
	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/scene"
)

// Mode is a rule variant driven once per frame
type Mode interface {
	// Name is the variant identifier used by config and the spectator feed
	Name() string

	// Tick consumes one frame of input at logical time now and rebuilds the scene
	Tick(now time.Duration, in *input.State) error

	// Drawables returns the scene in back-to-front order
	Drawables() []scene.Drawable

	Background() scene.Color

	// Events drains the events produced since the last call
	Events() []battle.Event

	Snapshot() Snapshot

	// Restart begins a fresh match from the original decks
	Restart() error
}

// Snapshot is the read-only view of a match published to spectators
type Snapshot struct {
	Mode   string      `json:"mode"`
	State  string      `json:"state"`
	Tick   uint64      `json:"tick"`
	Turn   int         `json:"turn,omitempty"`
	Mana   [2]int      `json:"mana"`
	Towers []TowerView `json:"towers,omitempty"`
	Units  []UnitView  `json:"units"`
}

// TowerView is a tower's health
type TowerView struct {
	Player string `json:"player"`
	Health int    `json:"health"`
	Max    int    `json:"max"`
}

// UnitView is a unit or committed card on the field
type UnitView struct {
	ID     string `json:"id"`
	Player string `json:"player"`
	Card   string `json:"card"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Health int    `json:"health"`
}

// Variant names accepted by New
const (
	NameTowers = "towers"
	NameArena  = "arena"
)

// New builds the named variant; arena ignores battle rules and towers ignores arena rules
func New(name string, rules battle.Rules, arena ArenaRules, deckA, deckB *card.Deck, bindings *input.Bindings, rng *rand.Rand) (Mode, error) {
	switch name {
	case NameTowers:
		return NewTowers(rules, deckA, deckB, bindings, rng)
	case NameArena:
		return NewArena(arena, deckA, deckB, bindings, rng)
	}
	return nil, fmt.Errorf("modes: unknown mode %q", name)
}
