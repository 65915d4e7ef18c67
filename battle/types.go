// Package battle is the real-time lane simulation: cooldown-gated card play,
// unit spawning, per-frame movement, timed tower attacks and win detection.
package battle

import (
	"errors"
	"fmt"
)

var (
	// ErrCooldown rejects a play before the side's cooldown has elapsed
	ErrCooldown = errors.New("battle: card still on cooldown")

	// ErrGameOver rejects a play after the match reached a terminal state
	ErrGameOver = errors.New("battle: match is over")
)

// Player identifies a side
type Player uint8

const (
	PlayerA Player = iota
	PlayerB
)

// Opponent returns the other side
func (p Player) Opponent() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// String returns the on-screen name
func (p Player) String() string {
	if p == PlayerA {
		return "Player 1"
	}
	return "Player 2"
}

// GameState is the match outcome
type GameState uint8

const (
	InProgress GameState = iota
	PlayerAWon
	PlayerBWon
)

// Terminal reports a state no transition leaves
func (g GameState) Terminal() bool {
	return g != InProgress
}

// String returns the state name
func (g GameState) String() string {
	switch g {
	case PlayerAWon:
		return "PlayerAWon"
	case PlayerBWon:
		return "PlayerBWon"
	default:
		return "InProgress"
	}
}

// Banner returns the results line for a terminal state
func (g GameState) Banner() string {
	switch g {
	case PlayerAWon:
		return fmt.Sprintf("%s has fallen. %s Wins!", PlayerB, PlayerA)
	case PlayerBWon:
		return fmt.Sprintf("%s has fallen. %s Wins!", PlayerA, PlayerB)
	default:
		return ""
	}
}

// winner returns the terminal state in which p won
func winner(p Player) GameState {
	if p == PlayerA {
		return PlayerAWon
	}
	return PlayerBWon
}

// Tower is a side's health counter, clamped to [0, Max]
type Tower struct {
	Health int
	Max    int
}

// NewTower creates a tower at full health
func NewTower(maxHP int) Tower {
	return Tower{Health: maxHP, Max: maxHP}
}

// TakeDamage subtracts dmg, clamping at zero, and returns the damage applied
func (t *Tower) TakeDamage(dmg int) int {
	if dmg <= 0 {
		return 0
	}
	if dmg >= t.Health {
		dealt := t.Health
		t.Health = 0
		return dealt
	}
	t.Health -= dmg
	return dmg
}

// Destroyed reports a tower at zero health
func (t Tower) Destroyed() bool {
	return t.Health == 0
}
