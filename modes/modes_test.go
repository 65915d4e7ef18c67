package modes

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/titanium/battle"
	"github.com/lixenwraith/titanium/card"
	"github.com/lixenwraith/titanium/constants"
	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/scene"
)

func testDeck(cost, attack int) *card.Deck {
	cards := make([]card.Card, 12)
	for i := range cards {
		cards[i] = card.Card{Name: "pikeman", PlayCost: cost, Health: 4, Defense: 1, Attack: attack, Speed: 2, AttackSpeed: 100}
	}
	return card.NewDeck(cards)
}

func newInput() *input.State {
	return input.NewState(constants.LogicalWidth, constants.LogicalHeight)
}

func center(r scene.Rect) scene.Point {
	return scene.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func texts(items []scene.Drawable) []string {
	var out []string
	for _, d := range items {
		if d.Kind == scene.KindText {
			out = append(out, d.Text)
		}
	}
	return out
}

// -- Towers --

func TestTowersKeyPlaysSpawnUnits(t *testing.T) {
	m, err := NewTowers(battle.DefaultRules(), testDeck(1, 1), testDeck(1, 1), nil, nil)
	require.NoError(t, err)
	in := newInput()

	in.PulseKey(input.Key1)
	in.PulseKey(input.Key7)
	require.NoError(t, m.Tick(0, in))
	in.Advance()

	events := m.Events()
	require.Len(t, events, 2)
	assert.Equal(t, battle.EventSpawned, events[0].Kind)
	assert.Equal(t, battle.PlayerA, events[0].Player)
	assert.Equal(t, battle.PlayerB, events[1].Player)
	assert.Empty(t, m.Events(), "events drain")

	var blue, yellow int
	for _, d := range m.Drawables() {
		if d.Kind == scene.KindFilledRect && d.Rect.W == constants.SpawnUnitSize {
			switch d.Color {
			case scene.ColorBlue:
				blue++
			case scene.ColorYellow:
				yellow++
			}
		}
	}
	assert.Equal(t, 1, blue)
	assert.Equal(t, 1, yellow)

	// pulse released: the same key does not replay next frame
	require.NoError(t, m.Tick(10*time.Millisecond, in))
	assert.Empty(t, m.Events())
	assert.Len(t, m.Sim().Units(), 2)
}

func TestTowersSceneShowsHandsManaAndBars(t *testing.T) {
	m, err := NewTowers(battle.DefaultRules(), testDeck(1, 1), testDeck(1, 1), nil, nil)
	require.NoError(t, err)
	require.NoError(t, m.Tick(3*time.Second, newInput()))

	ts := texts(m.Drawables())
	var hands, mana int
	for _, s := range ts {
		if strings.HasPrefix(s, "pikeman") {
			hands++
		}
		if s == "Mana: 3" {
			mana++
		}
	}
	assert.Equal(t, 8, hands)
	assert.Equal(t, 2, mana)

	var green, red int
	for _, d := range m.Drawables() {
		if d.Rect.H == constants.HealthBarHeight {
			switch d.Color {
			case scene.ColorGreen:
				green++
				assert.Equal(t, constants.TowerSize, d.Rect.W)
			case scene.ColorRed:
				red++
				assert.Equal(t, 0, d.Rect.W)
			}
		}
	}
	assert.Equal(t, 2, green)
	assert.Equal(t, 2, red)
	assert.Equal(t, scene.ColorBackground, m.Background())
}

func TestTowersBannerAndRestart(t *testing.T) {
	rules := battle.DefaultRules()
	rules.EngagementInset = 900
	rules.TowerHP = 1
	m, err := NewTowers(rules, testDeck(0, 5), testDeck(0, 0), nil, nil)
	require.NoError(t, err)
	in := newInput()

	in.PulseKey(input.Key2)
	require.NoError(t, m.Tick(time.Second, in))
	in.Advance()
	for i := range 400 {
		require.NoError(t, m.Tick(time.Second+time.Duration(i+1)*100*time.Millisecond, in))
		if m.Sim().State.Terminal() {
			break
		}
	}
	require.Equal(t, battle.PlayerAWon, m.Sim().State)
	assert.Contains(t, texts(m.Drawables()), "Player 2 has fallen. Player 1 Wins!")

	snap := m.Snapshot()
	assert.Equal(t, "PlayerAWon", snap.State)
	assert.Equal(t, 0, snap.Towers[1].Health)

	require.NoError(t, m.Restart())
	assert.Equal(t, battle.InProgress, m.Sim().State)
	assert.Empty(t, m.Sim().Units())
	assert.NotContains(t, texts(m.Drawables()), "Player 2 has fallen. Player 1 Wins!")

	// match time restarts with the match
	require.Greater(t, m.epoch, time.Second)
	require.NoError(t, m.Tick(m.epoch+2*time.Second, newInput()))
	assert.Equal(t, 2, m.Snapshot().Mana[battle.PlayerA])
}

func TestTowersSnapshotJSON(t *testing.T) {
	m, err := NewTowers(battle.DefaultRules(), testDeck(1, 1), testDeck(1, 1), nil, nil)
	require.NoError(t, err)
	in := newInput()
	in.PulseKey(input.Key3)
	require.NoError(t, m.Tick(0, in))

	raw, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "towers", decoded["mode"])
	assert.Equal(t, "InProgress", decoded["state"])
	units := decoded["units"].([]any)
	require.Len(t, units, 1)
	assert.Equal(t, "Player 1", units[0].(map[string]any)["player"])
}

func orderedDeck(n int) *card.Deck {
	cards := make([]card.Card, n)
	for i := range cards {
		cards[i] = card.Card{Name: fmt.Sprintf("c%d", i+1), PlayCost: 1, Health: 4, Attack: 1, Speed: 2, AttackSpeed: 100}
	}
	return card.NewDeck(cards)
}

func handNames(hand []card.Card) []string {
	out := make([]string, len(hand))
	for i, c := range hand {
		out[i] = c.Name
	}
	return out
}

func TestTowersSeededDeal(t *testing.T) {
	deck := orderedDeck(8)
	rules := battle.DefaultRules()

	// the expected hand is the head of the deck after the same shuffle
	want := deck.Clone()
	want.Shuffle(rand.New(rand.NewSource(7)))
	expected := handNames(want.Cards()[:rules.Slots])

	m, err := NewTowers(rules, deck, deck, nil, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, expected, handNames(m.Sim().Side(battle.PlayerA).Hand))

	again, err := NewTowers(rules, deck, deck, nil, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, handNames(m.Sim().Side(battle.PlayerB).Hand), handNames(again.Sim().Side(battle.PlayerB).Hand))

	ordered := []string{"c1", "c2", "c3", "c4"}
	shuffled := false
	for seed := int64(1); seed <= 5; seed++ {
		m, err := NewTowers(rules, deck, deck, nil, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		if !assert.ObjectsAreEqual(ordered, handNames(m.Sim().Side(battle.PlayerA).Hand)) {
			shuffled = true
		}
	}
	assert.True(t, shuffled, "seeded deals vary the hand")
	assert.Equal(t, []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"}, handNames(deck.Cards()), "source deck untouched")
}

func TestTowersUnshuffledDealKeepsFileOrder(t *testing.T) {
	rules := battle.DefaultRules()
	rules.ShuffleOnDeal = false
	m, err := NewTowers(rules, orderedDeck(8), orderedDeck(8), nil, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, handNames(m.Sim().Side(battle.PlayerA).Hand))

	require.NoError(t, m.Restart())
	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, handNames(m.Sim().Side(battle.PlayerB).Hand))
}

func TestTowersRejectsTooManySlots(t *testing.T) {
	rules := battle.DefaultRules()
	rules.Slots = 6
	_, err := NewTowers(rules, testDeck(1, 1), testDeck(1, 1), nil, nil)
	assert.Error(t, err)
}

// -- Arena --

func newArena(t *testing.T, cost int) *Arena {
	t.Helper()
	rules := DefaultArenaRules()
	rules.ShuffleOnDeal = false
	a, err := NewArena(rules, testDeck(cost, 1), testDeck(cost, 1), nil, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return a
}

// dragTo presses at from, drags to to and releases there over three frames
func dragTo(t *testing.T, a *Arena, in *input.State, from, to scene.Point) {
	t.Helper()
	in.SetPointer(from)
	in.SetButton(true)
	require.NoError(t, a.Tick(0, in))
	in.Advance()

	in.SetPointer(to)
	require.NoError(t, a.Tick(0, in))
	in.Advance()

	in.SetButton(false)
	require.NoError(t, a.Tick(0, in))
	in.Advance()
}

// tap pulses k and runs the press frame and the release frame
func tap(t *testing.T, a *Arena, in *input.State, k input.Key) {
	t.Helper()
	in.PulseKey(k)
	for range 2 {
		require.NoError(t, a.Tick(0, in))
		in.Advance()
	}
}

func TestArenaTurnsAndMana(t *testing.T) {
	a := newArena(t, 1)
	in := newInput()
	assert.Equal(t, battle.PlayerA, a.Active())
	assert.Equal(t, 5, a.Mana(battle.PlayerA))

	tap(t, a, in, input.KeySpace)
	assert.Equal(t, 1, a.Turn())
	assert.Equal(t, battle.PlayerB, a.Active())
	assert.Equal(t, 5, a.Mana(battle.PlayerB))

	tap(t, a, in, input.KeySpace)
	assert.Equal(t, 10, a.Mana(battle.PlayerA))
	assert.Equal(t, 10, a.Mana(battle.PlayerB))

	for range 12 {
		tap(t, a, in, input.KeyDown)
	}
	assert.Equal(t, 0, a.Mana(battle.PlayerA), "spending clamps at zero")
	assert.Equal(t, 10, a.Mana(battle.PlayerB))
	assert.Contains(t, texts(a.Drawables()), "Player 1 has 0 mana")
	assert.Contains(t, texts(a.Drawables()), "Player 2 has 10 mana")
}

func TestArenaBackToBackPressesAllLand(t *testing.T) {
	a := newArena(t, 1)
	in := newInput()

	// three presses arrive one per frame, faster than their edges clear
	for range 3 {
		in.PulseKey(input.KeyDown)
		require.NoError(t, a.Tick(0, in))
		in.Advance()
	}
	for range 4 {
		require.NoError(t, a.Tick(0, in))
		in.Advance()
	}
	assert.Equal(t, 2, a.Mana(battle.PlayerA))
}

func TestArenaDropCommitsCard(t *testing.T) {
	a := newArena(t, 2)
	in := newInput()
	hand := a.layout.SlotRect(1)
	slot := a.layout.BattleRect(3, false)

	dragTo(t, a, in, center(hand), center(slot))

	assert.Equal(t, 3, a.Mana(battle.PlayerA))
	c := a.cards[0]
	require.Equal(t, battle.PlayerA, c.owner)
	assert.True(t, c.committed)
	assert.Equal(t, 3, c.column)

	body, err := a.sc.At(c.body)
	require.NoError(t, err)
	assert.Equal(t, slot.Origin(), body.Origin())
	assert.False(t, body.IsDraggable())
	label, err := a.sc.At(c.label)
	require.NoError(t, err)
	assert.Equal(t, body.Origin(), label.Origin(), "label follows its card")

	events := a.Events()
	require.Len(t, events, 1)
	assert.Equal(t, battle.EventSpawned, events[0].Kind)
	assert.Equal(t, 3, events[0].Slot)

	snap := a.Snapshot()
	require.Len(t, snap.Units, 1)
	assert.Equal(t, "pikeman", snap.Units[0].Card)

	// committed cards stay put
	dragTo(t, a, in, center(slot), center(hand))
	body, err = a.sc.At(c.body)
	require.NoError(t, err)
	assert.Equal(t, slot.Origin(), body.Origin())
}

func TestArenaUnaffordableDropReverts(t *testing.T) {
	a := newArena(t, 9)
	in := newInput()
	hand := a.layout.SlotRect(2)

	dragTo(t, a, in, center(hand), center(a.layout.BattleRect(1, false)))

	assert.Equal(t, 5, a.Mana(battle.PlayerA))
	c := a.cardAt(a.cards[2].body)
	require.NotNil(t, c)
	assert.False(t, c.committed)
	body, err := a.sc.At(c.body)
	require.NoError(t, err)
	assert.Equal(t, hand.Origin(), body.Origin())
	label, err := a.sc.At(c.label)
	require.NoError(t, err)
	assert.Equal(t, hand.Origin(), label.Origin())

	events := a.Events()
	require.Len(t, events, 1)
	assert.Equal(t, battle.EventRejected, events[0].Kind)
}

func TestArenaDropOnOpenTableStays(t *testing.T) {
	a := newArena(t, 1)
	in := newInput()
	hand := a.layout.SlotRect(1)
	press := center(hand)
	release := scene.Point{X: constants.LogicalWidth / 2, Y: constants.LogicalHeight / 2}

	c := a.cards[0]
	dragged, err := a.sc.At(c.body)
	require.NoError(t, err)
	_, hit := scene.HitTest(a.sc.Items(), release, func(i int, d scene.Drawable) bool {
		return i != c.body && d.AcceptsDropFrom(dragged)
	})
	require.False(t, hit, "release point must be open table")

	dragTo(t, a, in, press, release)

	dx, dy := release.Sub(press)
	want := hand.Shifted(dx, dy).Origin()
	body, err := a.sc.At(c.body)
	require.NoError(t, err)
	assert.Equal(t, want, body.Origin())
	label, err := a.sc.At(c.label)
	require.NoError(t, err)
	assert.Equal(t, want, label.Origin(), "label follows its card")

	assert.False(t, c.committed)
	assert.Equal(t, 5, a.Mana(battle.PlayerA))
	assert.Empty(t, a.Events(), "open table is neither a commit nor a rejection")

	// the card can be picked up again from where it landed
	dragTo(t, a, in, release, center(a.layout.BattleRect(2, false)))
	assert.True(t, c.committed)
	assert.Equal(t, 2, c.column)
}

func TestArenaOpponentRowAndInactiveCards(t *testing.T) {
	a := newArena(t, 1)
	in := newInput()

	// player A cannot use player B's row
	dragTo(t, a, in, center(a.layout.SlotRect(1)), center(a.layout.BattleRect(1, true)))
	assert.False(t, a.cards[0].committed)
	assert.Equal(t, 5, a.Mana(battle.PlayerA))

	// player B's cards are not draggable during player A's turn
	in.SetPointer(center(a.layout.SlotRect(6)))
	in.SetButton(true)
	require.NoError(t, a.Tick(0, in))
	in.Advance()
	assert.Equal(t, "Idle", a.ctrl.Phase().String())
	in.SetButton(false)
	require.NoError(t, a.Tick(0, in))
	in.Advance()

	in.PulseKey(input.KeySpace)
	require.NoError(t, a.Tick(0, in))
	in.Advance()

	dragTo(t, a, in, center(a.layout.SlotRect(6)), center(a.layout.BattleRect(2, true)))
	assert.True(t, a.cards[1].committed)
	assert.Equal(t, battle.PlayerB, a.cards[1].owner)
	assert.Equal(t, 4, a.Mana(battle.PlayerB))
}

func TestArenaEndTurnReportsStaleCard(t *testing.T) {
	a := newArena(t, 1)
	in := newInput()
	a.cards[1].body = a.sc.Len() + 4

	in.PulseKey(input.KeySpace)
	err := a.Tick(0, in)
	var idxErr *scene.IndexError
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, a.sc.Len()+4, idxErr.Index)
}

func TestArenaRestartDealsFreshHands(t *testing.T) {
	a := newArena(t, 1)
	in := newInput()
	dragTo(t, a, in, center(a.layout.SlotRect(1)), center(a.layout.BattleRect(1, false)))
	require.True(t, a.cards[0].committed)

	require.NoError(t, a.Restart())
	assert.Equal(t, 0, a.Turn())
	assert.Equal(t, 5, a.Mana(battle.PlayerA))
	for _, c := range a.cards {
		assert.False(t, c.committed)
	}
	assert.Len(t, a.cards, 10)
}

func TestArenaDealFailsOnShortDeck(t *testing.T) {
	short := card.NewDeck([]card.Card{{Name: "lonely"}})
	_, err := NewArena(DefaultArenaRules(), short, testDeck(1, 1), nil, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, card.ErrEmptyDeck)
}

func TestNewByName(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	m, err := New(NameTowers, battle.DefaultRules(), DefaultArenaRules(), testDeck(1, 1), testDeck(1, 1), nil, rng)
	require.NoError(t, err)
	assert.Equal(t, NameTowers, m.Name())

	m, err = New(NameArena, battle.DefaultRules(), DefaultArenaRules(), testDeck(1, 1), testDeck(1, 1), nil, rng)
	require.NoError(t, err)
	assert.Equal(t, NameArena, m.Name())

	_, err = New("chess", battle.DefaultRules(), DefaultArenaRules(), testDeck(1, 1), testDeck(1, 1), nil, rng)
	assert.Error(t, err)
}
