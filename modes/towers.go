package modes

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/titanium/battle"
	"github.com/lixenwraith/titanium/card"
	"github.com/lixenwraith/titanium/constants"
	"github.com/lixenwraith/titanium/input"
	"github.com/lixenwraith/titanium/scene"
)

var (
	colorTowerA = scene.ColorBlue
	colorTowerB = scene.ColorYellow
)

// Towers is the real-time lane variant: hand slots are played by key, units
// walk toward the opposing tower and the scene is rebuilt every frame
type Towers struct {
	rules    battle.Rules
	bindings *input.Bindings
	layout   scene.HandLayout
	rng      *rand.Rand

	deckA, deckB *card.Deck // pristine copies for restart
	sim          *battle.SimulationState

	furniture []scene.Drawable
	sc        *scene.Scene
	events    []battle.Event
	now       time.Duration // match time of the latest tick
	epoch     time.Duration // clock reading at the last restart
}

// NewTowers starts a lane match; the decks are cloned and left untouched
func NewTowers(rules battle.Rules, deckA, deckB *card.Deck, bindings *input.Bindings, rng *rand.Rand) (*Towers, error) {
	if bindings == nil {
		bindings = input.DefaultBindings()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if rules.Slots > len(input.PlayIntentsA) {
		return nil, fmt.Errorf("towers: %d slots exceed the %d play bindings", rules.Slots, len(input.PlayIntentsA))
	}
	layout := scene.NewHandLayout(constants.TowersCardWidth, constants.TowersCardHeight,
		constants.TowersPaddingTop, constants.TowersPaddingBottom, rules.Slots)
	layout.FieldW, layout.FieldH = rules.FieldWidth, rules.FieldHeight

	t := &Towers{
		rules:    rules,
		bindings: bindings,
		layout:   layout,
		rng:      rng,
		deckA:    deckA.Clone(),
		deckB:    deckB.Clone(),
		sc:       scene.New(),
	}

	style := scene.DefaultSlotStyle()
	style.AcceptDrops = false
	t.furniture = append(layout.DeckSlots(style),
		scene.FilledRect(rules.TowerRect(battle.PlayerA), colorTowerA, scene.Snap{}),
		scene.FilledRect(rules.TowerRect(battle.PlayerB), colorTowerB, scene.Snap{}),
	)

	if err := t.Restart(); err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the variant identifier
func (t *Towers) Name() string { return NameTowers }

// Restart deals fresh hands from the original decks, shuffled when the rules ask
func (t *Towers) Restart() error {
	deckA, deckB := t.deckA.Clone(), t.deckB.Clone()
	if t.rules.ShuffleOnDeal {
		deckA.Shuffle(t.rng)
		deckB.Shuffle(t.rng)
	}
	sim, err := battle.New(t.rules, deckA, deckB)
	if err != nil {
		return err
	}
	t.sim = sim
	t.events = nil
	t.epoch += t.now
	t.now = 0
	t.rebuild(0)
	return nil
}

// Sim exposes the simulation state
func (t *Towers) Sim() *battle.SimulationState { return t.sim }

// Tick translates key edges into plays, advances the simulation and rebuilds
// the scene; the scene is rebuilt even when the tick is abandoned
func (t *Towers) Tick(now time.Duration, in *input.State) error {
	var plays []battle.PlayRequest
	for slot := 1; slot <= t.rules.Slots; slot++ {
		if t.bindings.Triggered(in, input.PlayIntentsA[slot-1]) {
			plays = append(plays, battle.PlayRequest{Player: battle.PlayerA, Slot: slot})
		}
		if t.bindings.Triggered(in, input.PlayIntentsB[slot-1]) {
			plays = append(plays, battle.PlayRequest{Player: battle.PlayerB, Slot: slot})
		}
	}

	t.now = max(now-t.epoch, 0)
	events, err := battle.Tick(t.sim, battle.Input{Now: t.now, Plays: plays})
	t.events = append(t.events, events...)
	t.rebuild(t.now)
	return err
}

func (t *Towers) rebuild(now time.Duration) {
	items := make([]scene.Drawable, 0, len(t.furniture)+4*t.rules.Slots)
	items = append(items, t.furniture...)

	for i, p := range []battle.Player{battle.PlayerA, battle.PlayerB} {
		for j, c := range t.sim.Side(p).Hand {
			items = append(items, c.Play(t.layout.SlotRect(j+1+i*t.rules.Slots)).SummaryDrawable())
		}
	}

	for _, u := range t.sim.Units() {
		color := colorTowerA
		if u.Owner == battle.PlayerB {
			color = colorTowerB
		}
		items = append(items, u.Played().Body(color, scene.Snap{}))
	}

	for _, p := range []battle.Player{battle.PlayerA, battle.PlayerB} {
		tower := t.rules.TowerRect(p)
		mana := scene.NewRect(tower.X, t.rules.FieldHeight/2+170, tower.W, 80)
		items = append(items, scene.Text(mana, fmt.Sprintf("Mana: %d", t.sim.Mana(p, now)), scene.ColorWhite, constants.TextSizeMana))
	}

	for _, p := range []battle.Player{battle.PlayerA, battle.PlayerB} {
		tower := t.rules.TowerRect(p)
		bar := scene.NewRect(tower.X, t.rules.FieldHeight/2-70, tower.W, constants.HealthBarHeight)
		hp := t.sim.Side(p).Tower
		items = append(items, scene.HealthBar(hp.Health, hp.Max, bar)...)
	}

	if t.sim.State.Terminal() {
		banner := scene.NewRect(30, 30, t.rules.FieldWidth-30, 200)
		items = append(items, scene.Text(banner, t.sim.State.Banner(), scene.ColorWhite, constants.TextSizeBanner))
	}

	t.sc.Reset(items)
}

// Drawables returns the scene
func (t *Towers) Drawables() []scene.Drawable { return t.sc.Items() }

// Background returns the table color
func (t *Towers) Background() scene.Color { return scene.ColorBackground }

// Events drains pending events
func (t *Towers) Events() []battle.Event {
	out := t.events
	t.events = nil
	return out
}

// Snapshot reports towers and living units
func (t *Towers) Snapshot() Snapshot {
	s := Snapshot{
		Mode:  NameTowers,
		State: t.sim.State.String(),
		Tick:  t.sim.Ticks,
		Units: []UnitView{},
	}
	for _, p := range []battle.Player{battle.PlayerA, battle.PlayerB} {
		side := t.sim.Side(p)
		s.Towers = append(s.Towers, TowerView{Player: p.String(), Health: side.Tower.Health, Max: side.Tower.Max})
		s.Mana[p] = t.sim.Mana(p, t.now)
	}
	for _, u := range t.sim.Units() {
		s.Units = append(s.Units, UnitView{
			ID:     u.ID.String(),
			Player: u.Owner.String(),
			Card:   u.Card().Name,
			X:      u.Rect.X,
			Y:      u.Rect.Y,
			Health: u.Fighter.Health,
		})
	}
	return s
}
