// Package card holds the immutable card records, the ordered deck they are
// drawn from and the loader for deck files.
package card

import (
	"fmt"
	"time"

	"github.com/lixenwraith/titanium/scene"
)

// Card is an immutable card record
// Cards are values: copying one never shares mutable state
type Card struct {
	Name             string `json:"name"`
	PlayCost         int    `json:"playCost"`
	Health           int    `json:"health"`
	Defense          int    `json:"defense"`
	PassiveCost      int    `json:"passiveCost"`
	SpecialCost      int    `json:"specialCost"`
	SpecialTag       string `json:"specialTag"`
	Special          string `json:"special"` // free text, inert
	Attack           int    `json:"attack"`
	AttackTag        string `json:"attackTag"`
	SpecialAttribute string `json:"specialAttribute"`
	Speed            int    `json:"speed"`
	AttackSpeed      int    `json:"attackSpeed"` // milliseconds between attacks
}

// Cooldown is the play cost interpreted as seconds
func (c Card) Cooldown() time.Duration {
	return time.Duration(c.PlayCost) * time.Second
}

// AttackInterval is the minimum time between two attacks
func (c Card) AttackInterval() time.Duration {
	return time.Duration(c.AttackSpeed) * time.Millisecond
}

// DamageAgainst returns the damage c deals to a defender, never negative
func (c Card) DamageAgainst(defense int) int {
	return Mitigate(c.Attack, defense)
}

// Mitigate subtracts defense from attack, clamping at zero
func Mitigate(attack, defense int) int {
	if attack <= defense {
		return 0
	}
	return attack - defense
}

// Description is the text printed on the card face
func (c Card) Description() string {
	stats := fmt.Sprintf("HP:%d | AC:%d | Upkeep: %d\n%s", c.Health, c.Defense, c.PassiveCost, c.SpecialAttribute)
	attack := fmt.Sprintf("ATK: %d\n%s", c.Attack, c.AttackTag)
	special := fmt.Sprintf("Special | Cost: %d\n%s", c.SpecialCost, c.SpecialTag)
	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s", c.Name, stats, attack, special)
}

// Summary is the compact face used in the real-time hand
func (c Card) Summary() string {
	return fmt.Sprintf("%s\nCost: %ds\nATK %d | HP %d\nSPD %d | %dms", c.Name, c.PlayCost, c.Attack, c.Health, c.Speed, c.AttackSpeed)
}

// Play places a copy of the card on the field at r
func (c Card) Play(r scene.Rect) PlayedCard {
	return PlayedCard{Card: c, Rect: r}
}

// PlayedCard is a card paired with its current rect on the field
type PlayedCard struct {
	Card Card
	Rect scene.Rect
}

// Drawable renders the card face as a text block
func (p PlayedCard) Drawable() scene.Drawable {
	return scene.Text(p.Rect, p.Card.Description(), scene.ColorWhite, 10)
}

// SummaryDrawable renders the compact face used by the real-time hand
func (p PlayedCard) SummaryDrawable() scene.Drawable {
	return scene.Text(p.Rect, p.Card.Summary(), scene.ColorWhite, 10)
}

// Body renders the card as a colored rect carrying snap capability
func (p PlayedCard) Body(c scene.Color, snap scene.Snap) scene.Drawable {
	return scene.FilledRect(p.Rect, c, snap)
}

// Fighter is a card with mutable remaining health, used where cards fight
// each other directly
type Fighter struct {
	Card   Card
	Health int
}

// NewFighter starts a fighter at the card's full health
func NewFighter(c Card) *Fighter {
	return &Fighter{Card: c, Health: c.Health}
}

// TakeDamage applies dmg after defense and reports whether the fighter survives
// Health clamps at zero
func (f *Fighter) TakeDamage(dmg int) bool {
	taken := Mitigate(dmg, f.Card.Defense)
	if taken >= f.Health {
		f.Health = 0
	} else {
		f.Health -= taken
	}
	return f.Health > 0
}

// Strike attacks other and reports whether it survives
func (f *Fighter) Strike(other *Fighter) bool {
	return other.TakeDamage(f.Card.Attack)
}
