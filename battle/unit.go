package battle

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/titanium/card"
	"github.com/lixenwraith/titanium/scene"
)

// Unit is a played card walking its lane
type Unit struct {
	ID      uuid.UUID
	Owner   Player
	Fighter card.Fighter
	Rect    scene.Rect

	// LastAttack is the logical time of the most recent attack; a fresh unit
	// holds its spawn time so its first strike waits one full interval
	LastAttack time.Duration
}

// Card returns the card the unit was spawned from
func (u *Unit) Card() card.Card {
	return u.Fighter.Card
}

// Alive reports remaining health
func (u *Unit) Alive() bool {
	return u.Fighter.Health > 0
}

// Played returns the unit as a card placed at its current rect
func (u *Unit) Played() card.PlayedCard {
	return u.Fighter.Card.Play(u.Rect)
}

// canAttack reports whether the unit's attack interval has elapsed at now
func (u *Unit) canAttack(now time.Duration) bool {
	return now-u.LastAttack >= u.Fighter.Card.AttackInterval()
}

// step returns the per-frame displacement magnitude
func (u *Unit) step(factor int) int {
	s := u.Fighter.Card.Speed * factor
	if s < 0 {
		return 0
	}
	return s
}
