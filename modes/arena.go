package modes

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/titanium/battle"
	"github.com/lixenwraith/titanium/card"
	"github.com/lixenwraith/titanium/constants"
	"github.com/lixenwraith/titanium/drag"
	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/scene"
)

var colorArenaCard = scene.RGBA(40, 44, 52, 255)

// ArenaRules tunes the mana variant
type ArenaRules struct {
	Slots         int
	StartingMana  int
	ManaPerRound  int
	FieldW        int
	FieldH        int
	ShuffleOnDeal bool
}

// DefaultArenaRules returns the standard mana tuning
func DefaultArenaRules() ArenaRules {
	return ArenaRules{
		Slots:         constants.ArenaSlots,
		StartingMana:  constants.StartingMana,
		ManaPerRound:  constants.ManaPerRound,
		FieldW:        constants.LogicalWidth,
		FieldH:        constants.LogicalHeight,
		ShuffleOnDeal: true,
	}
}

// arenaCard tracks a dealt card and the scene items that draw it
type arenaCard struct {
	owner     battle.Player
	card      card.Card
	body      int // filled rect carrying the drag capability
	label     int // text kept on top of body
	committed bool
	column    int
}

// Arena is the turn-based mana variant: the active player drags hand cards
// onto their battle row, paying each card's play cost in mana
// The scene persists across frames and is edited in place
type Arena struct {
	rules    ArenaRules
	bindings *input.Bindings
	layout   scene.HandLayout
	rng      *rand.Rand

	deckA, deckB *card.Deck

	sc       *scene.Scene
	ctrl     *drag.Controller
	cards    []*arenaCard
	rows     map[int]battle.Player // battle slot scene index -> row owner
	occupied map[int]bool
	manaIdx  [2]int

	turn   int
	mana   [2]int
	ticks  uint64
	events []battle.Event
}

// NewArena deals a hand to each player; the decks are cloned and left untouched
func NewArena(rules ArenaRules, deckA, deckB *card.Deck, bindings *input.Bindings, rng *rand.Rand) (*Arena, error) {
	if bindings == nil {
		bindings = input.DefaultBindings()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	layout := scene.NewHandLayout(constants.ArenaCardWidth, constants.ArenaCardHeight,
		constants.ArenaPaddingTop, constants.ArenaPaddingBottom, rules.Slots)
	layout.FieldW, layout.FieldH = rules.FieldW, rules.FieldH

	a := &Arena{
		rules:    rules,
		bindings: bindings,
		layout:   layout,
		rng:      rng,
		deckA:    deckA.Clone(),
		deckB:    deckB.Clone(),
		ctrl:     drag.NewController(),
	}
	if err := a.Restart(); err != nil {
		return nil, err
	}
	return a, nil
}

// Name returns the variant identifier
func (a *Arena) Name() string { return NameArena }

// Restart reshuffles the original decks and deals new hands
func (a *Arena) Restart() error {
	decks := [2]*card.Deck{a.deckA.Clone(), a.deckB.Clone()}
	if a.rules.ShuffleOnDeal {
		for _, d := range decks {
			d.Shuffle(a.rng)
		}
	}

	sc := scene.New(a.layout.DeckSlots(scene.DefaultSlotStyle())...)
	slots := map[int]battle.Player{}
	first := sc.Add(a.layout.BattleSlots(scene.ColorRed)...)
	for i := range 2 * a.rules.Slots {
		owner := battle.PlayerB
		if i >= a.rules.Slots {
			owner = battle.PlayerA
		}
		slots[first+i] = owner
	}

	var cards []*arenaCard
	for col := 1; col <= a.rules.Slots; col++ {
		for i, p := range []battle.Player{battle.PlayerA, battle.PlayerB} {
			c, err := decks[p].DrawAndRemove()
			if err != nil {
				return fmt.Errorf("arena: deal %s: %w", p, err)
			}
			played := c.Play(a.layout.SlotRect(col + i*a.rules.Slots))
			ac := &arenaCard{owner: p, card: c}
			ac.body = sc.Add(played.Body(colorArenaCard, scene.CardSnap(p == battle.PlayerA, false)))
			ac.label = sc.Add(played.Drawable())
			cards = append(cards, ac)
		}
	}

	a.sc = sc
	a.rows = slots
	a.occupied = map[int]bool{}
	a.cards = cards
	a.turn = 0
	a.ticks = 0
	a.mana = [2]int{a.rules.StartingMana, a.rules.StartingMana}
	a.events = nil
	a.ctrl.Cancel()

	a.manaIdx[battle.PlayerA] = sc.Add(scene.Text(a.manaRect(battle.PlayerA), "", scene.ColorWhite, constants.TextSizeArena))
	a.manaIdx[battle.PlayerB] = sc.Add(scene.Text(a.manaRect(battle.PlayerB), "", scene.ColorWhite, constants.TextSizeArena))
	return a.refreshMana()
}

// manaRect sits one bar inward from the player's deck pile
func (a *Arena) manaRect(p battle.Player) scene.Rect {
	bar := a.layout.BarHeight()
	if p == battle.PlayerA {
		return a.layout.DeckRect(false).Shifted(0, -bar)
	}
	return a.layout.DeckRect(true).Shifted(0, bar)
}

// Active returns the player whose turn it is
func (a *Arena) Active() battle.Player {
	if a.turn%2 == 0 {
		return battle.PlayerA
	}
	return battle.PlayerB
}

// Turn returns the number of ended turns
func (a *Arena) Turn() int { return a.turn }

// Mana returns the current mana of p
func (a *Arena) Mana(p battle.Player) int { return a.mana[p] }

// Tick applies turn keys, then the drag, then rewrites the mana texts
func (a *Arena) Tick(_ time.Duration, in *input.State) error {
	a.ticks++

	if a.bindings.Triggered(in, input.IntentEndTurn) {
		if err := a.endTurn(); err != nil {
			return err
		}
	}
	if a.bindings.Triggered(in, input.IntentSpendMana) {
		if p := a.Active(); a.mana[p] > 0 {
			a.mana[p]--
		}
	}

	res, err := a.ctrl.Update(a.sc, in)
	if err != nil {
		return err
	}
	switch res.Event {
	case drag.EventMoved:
		if err := a.follow(res.Index); err != nil {
			return err
		}
	case drag.EventDropped:
		if err := a.drop(res); err != nil {
			return err
		}
	}
	return a.refreshMana()
}

// endTurn passes the turn; each completed round grants both players mana
func (a *Arena) endTurn() error {
	a.turn++
	if a.turn%2 == 0 {
		a.mana[battle.PlayerA] += a.rules.ManaPerRound
		a.mana[battle.PlayerB] += a.rules.ManaPerRound
	}
	active := a.Active()
	for _, c := range a.cards {
		if c.committed {
			continue
		}
		if err := a.sc.SetSnap(c.body, scene.CardSnap(c.owner == active, false)); err != nil {
			return fmt.Errorf("arena: end turn: %w", err)
		}
	}
	return nil
}

// drop commits a card landing on a free slot of its owner's battle row when
// the owner is active and can pay. A card refused by a battle slot returns to
// its press rect; a drop on open table stays where it was released.
func (a *Arena) drop(res drag.Result) error {
	c := a.cardAt(res.Index)
	if c == nil {
		return fmt.Errorf("arena: drop: %w", &scene.IndexError{Index: res.Index, Len: a.sc.Len()})
	}

	owner, isBattle := a.rows[res.Target]
	if !res.Snapped() || !isBattle {
		return a.follow(c.body)
	}

	ok := owner == c.owner && c.owner == a.Active() &&
		!a.occupied[res.Target] && a.mana[c.owner] >= c.card.PlayCost
	if !ok {
		if err := a.sc.MoveTo(c.body, res.PressRect.Origin()); err != nil {
			return err
		}
		a.events = append(a.events, battle.Event{Kind: battle.EventRejected, Player: c.owner})
		return a.follow(c.body)
	}

	a.mana[c.owner] -= c.card.PlayCost
	a.occupied[res.Target] = true
	c.committed = true
	c.column = a.column(res.Target)
	if err := a.sc.SetSnap(c.body, scene.CardSnap(false, false)); err != nil {
		return err
	}
	a.events = append(a.events, battle.Event{Kind: battle.EventSpawned, Player: c.owner, Slot: c.column, Health: c.card.Health})
	return a.follow(c.body)
}

// column maps a battle slot scene index to its 1-based column
func (a *Arena) column(idx int) int {
	lowest := idx
	for i := range a.rows {
		lowest = min(lowest, i)
	}
	return (idx-lowest)%a.rules.Slots + 1
}

func (a *Arena) cardAt(body int) *arenaCard {
	for _, c := range a.cards {
		if c.body == body {
			return c
		}
	}
	return nil
}

// follow moves a card's label onto its body
func (a *Arena) follow(body int) error {
	c := a.cardAt(body)
	if c == nil {
		return nil
	}
	d, err := a.sc.At(body)
	if err != nil {
		return err
	}
	return a.sc.MoveTo(c.label, d.Origin())
}

// refreshMana replaces the mana texts in place
func (a *Arena) refreshMana() error {
	for _, p := range []battle.Player{battle.PlayerA, battle.PlayerB} {
		text := fmt.Sprintf("%s has %d mana", p, a.mana[p])
		if err := a.sc.Replace(a.manaIdx[p], scene.Text(a.manaRect(p), text, scene.ColorWhite, constants.TextSizeArena)); err != nil {
			return err
		}
	}
	return nil
}

// Drawables returns the scene
func (a *Arena) Drawables() []scene.Drawable { return a.sc.Items() }

// Background returns the table color
func (a *Arena) Background() scene.Color { return scene.ColorBackground }

// Events drains pending events
func (a *Arena) Events() []battle.Event {
	out := a.events
	a.events = nil
	return out
}

// Snapshot reports turn, mana and committed cards
func (a *Arena) Snapshot() Snapshot {
	s := Snapshot{
		Mode:  NameArena,
		State: battle.InProgress.String(),
		Tick:  a.ticks,
		Turn:  a.turn,
		Mana:  a.mana,
		Units: []UnitView{},
	}
	for _, c := range a.cards {
		if !c.committed {
			continue
		}
		d, err := a.sc.At(c.body)
		if err != nil {
			continue
		}
		s.Units = append(s.Units, UnitView{
			ID:     fmt.Sprintf("%s/%d", c.owner, c.column),
			Player: c.owner.String(),
			Card:   c.card.Name,
			X:      d.Rect.X,
			Y:      d.Rect.Y,
			Health: c.card.Health,
		})
	}
	return s
}
