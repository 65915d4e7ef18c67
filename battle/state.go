package battle

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/titanium/card"
	"github.com/lixenwraith/titanium/scene"
)

// Side is one player's tower, hand, deck and living units
type Side struct {
	Player Player
	Tower  Tower
	Hand   []card.Card
	Units  []*Unit

	deck     *card.Deck
	lastPlay time.Duration
	played   bool
}

// Deck returns the side's draw pile
func (s *Side) Deck() *card.Deck {
	return s.deck
}

// LastPlay returns the time of the most recent successful play and whether
// the side has played at all
func (s *Side) LastPlay() (time.Duration, bool) {
	return s.lastPlay, s.played
}

// SimulationState is the complete mutable state of a lane match
// It is owned by exactly one driver and mutated only through Play and Tick
type SimulationState struct {
	Rules Rules
	State GameState
	Ticks uint64

	sides    [2]*Side
	spawnSeq int
}

// New deals a hand of rules.Slots cards to each side from its own deck
// The decks are owned by the state afterwards
func New(rules Rules, deckA, deckB *card.Deck) (*SimulationState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &SimulationState{Rules: rules}
	for i, d := range []*card.Deck{deckA, deckB} {
		p := Player(i)
		if d == nil || d.Len() == 0 {
			return nil, fmt.Errorf("battle: %s deck: %w", p, card.ErrEmptyDeck)
		}
		side := &Side{Player: p, Tower: NewTower(rules.TowerHP), deck: d}
		for range rules.Slots {
			c, err := d.DrawAndCycle()
			if err != nil {
				return nil, fmt.Errorf("battle: %s hand: %w", p, err)
			}
			side.Hand = append(side.Hand, c)
		}
		s.sides[i] = side
	}
	return s, nil
}

// Side returns the state of player p
func (s *SimulationState) Side(p Player) *Side {
	return s.sides[p]
}

// Units returns every living unit, player A's first, in spawn order
func (s *SimulationState) Units() []*Unit {
	out := make([]*Unit, 0, len(s.sides[0].Units)+len(s.sides[1].Units))
	out = append(out, s.sides[0].Units...)
	return append(out, s.sides[1].Units...)
}

// Ready reports whether p may play hand slot (1-based) at now
// A side that has never played is ready; afterwards the cost of the card in
// the slot, in seconds, must have elapsed since the side's last play
func (s *SimulationState) Ready(p Player, slot int, now time.Duration) bool {
	side := s.sides[p]
	if slot < 1 || slot > len(side.Hand) {
		return false
	}
	if !side.played {
		return true
	}
	return now-side.lastPlay >= side.Hand[slot-1].Cooldown()
}

// Mana returns the whole seconds elapsed since p last played, or since the
// match started if p never has
func (s *SimulationState) Mana(p Player, now time.Duration) int {
	side := s.sides[p]
	elapsed := now
	if side.played {
		elapsed = now - side.lastPlay
	}
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Second)
}

// Play spends hand slot (1-based) of p at now, spawning a unit and
// refilling the slot from the deck
// Rejections leave the state untouched
func (s *SimulationState) Play(p Player, slot int, now time.Duration) (*Unit, error) {
	if s.State.Terminal() {
		return nil, ErrGameOver
	}
	side := s.sides[p]
	if slot < 1 || slot > len(side.Hand) {
		return nil, &scene.IndexError{Index: slot - 1, Len: len(side.Hand)}
	}
	if !s.Ready(p, slot, now) {
		return nil, ErrCooldown
	}

	next, err := side.deck.DrawAndCycle()
	if err != nil {
		return nil, fmt.Errorf("battle: refill %s slot %d: %w", p, slot, err)
	}

	c := side.Hand[slot-1]
	side.Hand[slot-1] = next
	side.lastPlay = now
	side.played = true

	r := s.Rules
	u := &Unit{
		ID:         uuid.New(),
		Owner:      p,
		Fighter:    *card.NewFighter(c),
		Rect:       SpawnRect(r.SpawnBase(p), s.spawnSeq, r.SpawnStep, r.SpawnBand),
		LastAttack: now,
	}
	s.spawnSeq++
	side.Units = append(side.Units, u)
	return u, nil
}
