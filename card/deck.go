package card

import (
	"errors"
	"math/rand"

	"github.com/lixenwraith/titanium/scene"
)

// ErrEmptyDeck is returned when drawing from a deck with no cards
var ErrEmptyDeck = errors.New("card: draw from empty deck")

// Deck is an ordered card sequence; the front is the next draw
// Duplicates are allowed
type Deck struct {
	cards []Card
}

// NewDeck creates a deck holding a copy of cards
func NewDeck(cards []Card) *Deck {
	d := &Deck{}
	d.SetCards(cards)
	return d
}

// Len returns the number of cards
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck in draw order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Clone returns an independent copy of the deck
func (d *Deck) Clone() *Deck {
	return NewDeck(d.cards)
}

// AddCard appends a card at the back
func (d *Deck) AddCard(c Card) {
	d.cards = append(d.cards, c)
}

// AddCards appends cards at the back in order
func (d *Deck) AddCards(cards []Card) {
	d.cards = append(d.cards, cards...)
}

// SetCards replaces the contents
func (d *Deck) SetCards(cards []Card) {
	d.cards = make([]Card, len(cards))
	copy(d.cards, cards)
}

// RemoveCard removes the card at index
func (d *Deck) RemoveCard(index int) error {
	if index < 0 || index >= len(d.cards) {
		return &scene.IndexError{Index: index, Len: len(d.cards)}
	}
	d.cards = append(d.cards[:index], d.cards[index+1:]...)
	return nil
}

// DrawAndRemove removes and returns the front card
func (d *Deck) DrawAndRemove() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = append(d.cards[:0], d.cards[1:]...)
	return c, nil
}

// DrawAndCycle removes the front card, appends a copy at the back and returns it
// N draws on a deck of N cards return each card once and restore the order
func (d *Deck) DrawAndCycle() (Card, error) {
	c, err := d.DrawAndRemove()
	if err != nil {
		return Card{}, err
	}
	d.cards = append(d.cards, c)
	return c, nil
}

// Shuffle permutes the deck uniformly using rng
// Each step picks a uniform card from the undealt suffix and moves it to the
// end of the dealt prefix; n-1 steps fix every position
func (d *Deck) Shuffle(rng *rand.Rand) {
	n := len(d.cards)
	for i := 0; i < n-1; i++ {
		j := i + rng.Intn(n-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}
