package card

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/lixenwraith/titanium/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedCards(names ...string) []Card {
	out := make([]Card, len(names))
	for i, n := range names {
		out[i] = Card{Name: n, PlayCost: i + 1, Health: 5, Attack: 2, Speed: 1, AttackSpeed: 500}
	}
	return out
}

func names(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func sortedNames(cards []Card) []string {
	out := names(cards)
	sort.Strings(out)
	return out
}

func TestShuffleIsPermutation(t *testing.T) {
	cards := namedCards("a", "b", "b", "c", "d", "e", "e", "e")
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		d := NewDeck(cards)
		d.Shuffle(rng)
		assert.Equal(t, sortedNames(cards), sortedNames(d.Cards()))
	}
}

func TestShuffleReachesEveryPermutation(t *testing.T) {
	cards := namedCards("a", "b", "c")
	rng := rand.New(rand.NewSource(42))
	seen := make(map[string]int)

	for i := 0; i < 6000; i++ {
		d := NewDeck(cards)
		d.Shuffle(rng)
		seen[strings.Join(names(d.Cards()), "")]++
	}

	require.Len(t, seen, 6)
	for perm, count := range seen {
		assert.InDelta(t, 1000, count, 150, "permutation %s", perm)
	}
}

func TestShuffleSmallDecks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	empty := NewDeck(nil)
	empty.Shuffle(rng)
	assert.Equal(t, 0, empty.Len())

	one := NewDeck(namedCards("solo"))
	one.Shuffle(rng)
	assert.Equal(t, []string{"solo"}, names(one.Cards()))
}

func TestDrawAndRemove(t *testing.T) {
	d := NewDeck(namedCards("a", "b"))

	c, err := d.DrawAndRemove()
	require.NoError(t, err)
	assert.Equal(t, "a", c.Name)
	assert.Equal(t, 1, d.Len())

	_, err = d.DrawAndRemove()
	require.NoError(t, err)

	_, err = d.DrawAndRemove()
	assert.True(t, errors.Is(err, ErrEmptyDeck))
}

func TestDrawAndCycleRestoresOrder(t *testing.T) {
	cards := namedCards("a", "b", "c", "d", "e")
	d := NewDeck(cards)

	var drawn []string
	for range cards {
		c, err := d.DrawAndCycle()
		require.NoError(t, err)
		drawn = append(drawn, c.Name)
	}

	assert.Equal(t, names(cards), drawn)
	assert.Equal(t, names(cards), names(d.Cards()))
}

func TestDrawAndCycleEmpty(t *testing.T) {
	_, err := NewDeck(nil).DrawAndCycle()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestBulkMutation(t *testing.T) {
	d := NewDeck(nil)
	d.AddCard(Card{Name: "a"})
	d.AddCards(namedCards("b", "c"))
	assert.Equal(t, []string{"a", "b", "c"}, names(d.Cards()))

	require.NoError(t, d.RemoveCard(1))
	assert.Equal(t, []string{"a", "c"}, names(d.Cards()))

	err := d.RemoveCard(5)
	var idxErr *scene.IndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 5, idxErr.Index)
	assert.Error(t, d.RemoveCard(-1))

	d.SetCards(namedCards("x"))
	assert.Equal(t, []string{"x"}, names(d.Cards()))
}

func TestDeckDoesNotAliasInput(t *testing.T) {
	cards := namedCards("a", "b")
	d := NewDeck(cards)
	cards[0].Name = "mutated"

	assert.Equal(t, "a", d.Cards()[0].Name)

	clone := d.Clone()
	_, err := clone.DrawAndRemove()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
}

func TestCardDerivedValues(t *testing.T) {
	c := Card{Name: "knight", PlayCost: 3, Attack: 4, Defense: 1, Health: 6, AttackSpeed: 750}

	assert.Equal(t, "3s", c.Cooldown().String())
	assert.Equal(t, "750ms", c.AttackInterval().String())
	assert.Equal(t, 3, c.DamageAgainst(1))
	assert.Equal(t, 0, c.DamageAgainst(10))
	assert.True(t, strings.HasPrefix(c.Description(), "knight\n"))
	assert.Contains(t, c.Summary(), fmt.Sprintf("Cost: %ds", c.PlayCost))

	played := c.Play(scene.NewRect(1, 2, 3, 4))
	assert.Equal(t, scene.KindText, played.Drawable().Kind)
	assert.Equal(t, scene.NewRect(1, 2, 3, 4), played.Body(scene.ColorBlue, scene.CardSnap(true, false)).Rect)
}

func TestFighterDamageClampsAtZero(t *testing.T) {
	attacker := NewFighter(Card{Name: "ogre", Attack: 10})
	defender := NewFighter(Card{Name: "squire", Health: 4, Defense: 2})

	assert.False(t, attacker.Strike(defender))
	assert.Equal(t, 0, defender.Health)

	wall := NewFighter(Card{Name: "wall", Health: 4, Defense: 20})
	assert.True(t, attacker.Strike(wall))
	assert.Equal(t, 4, wall.Health)
}
