package scene

import (
	"testing"

	"github.com/lixenwraith/titanium/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func towersLayout() HandLayout {
	return NewHandLayout(constants.TowersCardWidth, constants.TowersCardHeight,
		constants.TowersPaddingTop, constants.TowersPaddingBottom, constants.TowersSlots)
}

func TestSlotRectRows(t *testing.T) {
	l := towersLayout()

	bottom := l.SlotRect(1)
	top := l.SlotRect(1 + l.Slots)

	assert.Equal(t, bottom.X, top.X)
	assert.Equal(t, constants.TowersPaddingTop, top.Y)
	assert.Equal(t, constants.LogicalHeight-constants.TowersCardHeight-constants.TowersPaddingBottom, bottom.Y)

	for slot := 2; slot <= l.Slots; slot++ {
		prev := l.SlotRect(slot - 1)
		cur := l.SlotRect(slot)
		assert.Equal(t, l.CardW+l.SpacerWidth(), cur.X-prev.X, "slot %d spacing", slot)
	}
}

func TestDeckRectFitsField(t *testing.T) {
	l := towersLayout()
	deck := l.DeckRect(false)
	last := l.SlotRect(l.Slots)

	assert.Greater(t, deck.X, last.X+last.W)
	assert.LessOrEqual(t, deck.X+deck.W, constants.LogicalWidth)
}

func TestDeckSlotsOrderAndTargets(t *testing.T) {
	l := towersLayout()
	items := l.DeckSlots(DefaultSlotStyle())

	require.Len(t, items, 2+4*l.Slots+4)
	assert.Equal(t, KindFilledRect, items[0].Kind)
	assert.Equal(t, KindOutlinedRect, items[3].Kind)

	targets := 0
	for _, d := range items {
		if d.Snap.AcceptsDrop {
			targets++
			assert.Equal(t, KindOutlinedRect, d.Kind)
		}
		assert.False(t, d.IsDraggable())
	}
	assert.Equal(t, 2*l.Slots+2, targets)

	style := DefaultSlotStyle()
	style.AcceptDrops = false
	for _, d := range l.DeckSlots(style) {
		assert.False(t, d.Snap.AcceptsDrop)
	}
}

func TestBattleSlotsBetweenBars(t *testing.T) {
	l := NewHandLayout(constants.ArenaCardWidth, constants.ArenaCardHeight,
		constants.ArenaPaddingTop, constants.ArenaPaddingBottom, constants.ArenaSlots)
	slots := l.BattleSlots(ColorRed)
	require.Len(t, slots, 2*l.Slots)

	topRow := slots[0].Rect
	bottomRow := slots[l.Slots].Rect
	assert.GreaterOrEqual(t, topRow.Y, l.BarHeight())
	assert.LessOrEqual(t, bottomRow.Y+bottomRow.H, l.FieldH-l.BarHeight())
	assert.Less(t, topRow.Y+topRow.H, bottomRow.Y)
}

func TestHealthBar(t *testing.T) {
	frame := NewRect(100, 50, 200, 10)

	tests := []struct {
		name          string
		hp, maxHP     int
		wantRemaining int
	}{
		{"full", 10, 10, 200},
		{"half", 5, 10, 100},
		{"empty", 0, 10, 0},
		{"overflow clamps", 15, 10, 200},
		{"negative clamps", -3, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := HealthBar(tt.hp, tt.maxHP, frame)
			require.Len(t, bar, 2)
			assert.Equal(t, tt.wantRemaining, bar[0].Rect.W)
			assert.Equal(t, frame.W-tt.wantRemaining, bar[1].Rect.W)
			assert.Equal(t, frame.X+tt.wantRemaining, bar[1].Rect.X)
		})
	}
}
