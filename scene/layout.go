package scene

import "github.com/lixenwraith/titanium/constants"

// HandLayout places card slots along the top and bottom edges of the field.
// Slots 1..n sit on the bottom row (player A), n+1..2n on the top row (player B).
type HandLayout struct {
	CardW, CardH      int
	PadTop, PadBottom int
	Slots             int
	FieldW, FieldH    int
}

// NewHandLayout creates a layout in the default logical field
func NewHandLayout(cardW, cardH, padTop, padBottom, slots int) HandLayout {
	return HandLayout{
		CardW:     cardW,
		CardH:     cardH,
		PadTop:    padTop,
		PadBottom: padBottom,
		Slots:     slots,
		FieldW:    constants.LogicalWidth,
		FieldH:    constants.LogicalHeight,
	}
}

// SpacerWidth is the gap between slots: the free width split into n+3 gaps,
// leaving a double gap before the deck pile and one after it
func (l HandLayout) SpacerWidth() int {
	free := l.FieldW - (l.Slots+1)*l.CardW
	if free < 0 {
		return 0
	}
	return free / (l.Slots + 3)
}

// BarHeight is the height of a hand container bar
func (l HandLayout) BarHeight() int {
	return l.CardH + l.PadTop + l.PadBottom
}

func (l HandLayout) rowY(top bool) int {
	if top {
		return l.PadTop
	}
	return l.FieldH - l.CardH - l.PadBottom
}

func (l HandLayout) columnX(col int) int {
	return col*l.SpacerWidth() + (col-1)*l.CardW
}

// SlotRect returns the rect of a 1-based slot across both rows
func (l HandLayout) SlotRect(slot int) Rect {
	top := slot > l.Slots
	col := slot
	if top {
		col -= l.Slots
	}
	return Rect{X: l.columnX(col), Y: l.rowY(top), W: l.CardW, H: l.CardH}
}

// DeckRect returns the rect of the deck pile for a row
func (l HandLayout) DeckRect(top bool) Rect {
	x := (l.Slots+2)*l.SpacerWidth() + l.Slots*l.CardW
	return Rect{X: x, Y: l.rowY(top), W: l.CardW, H: l.CardH}
}

// BattleRect returns the 1-based battle slot rect on the row just inside a hand bar
func (l HandLayout) BattleRect(col int, top bool) Rect {
	y := l.BarHeight() + l.PadTop
	if !top {
		y = l.FieldH - 2*l.BarHeight() + l.PadTop
	}
	return Rect{X: l.columnX(col), Y: y, W: l.CardW, H: l.CardH}
}

// SlotStyle colors the generated hand furniture
type SlotStyle struct {
	Background     Color
	DeckBackground Color
	Frame          Color
	DeckFrame      Color
	Spacer         Color
	AcceptDrops    bool // frames act as card drop targets
}

// DefaultSlotStyle mirrors the standard table colors
func DefaultSlotStyle() SlotStyle {
	return SlotStyle{
		Background:     ColorBlack,
		DeckBackground: ColorDeckSlot,
		Frame:          ColorRed,
		DeckFrame:      ColorWhite,
		Spacer:         ColorSpacer,
		AcceptDrops:    true,
	}
}

// DeckSlots generates the hand furniture: two container bars, then per column
// the top background, top frame, bottom background and bottom frame, then the
// same four for the deck piles
func (l HandLayout) DeckSlots(style SlotStyle) []Drawable {
	frameSnap := Snap{}
	if style.AcceptDrops {
		frameSnap = CardSnap(false, true)
	}

	out := []Drawable{
		FilledRect(Rect{X: 0, Y: 0, W: l.FieldW, H: l.BarHeight()}, style.Spacer, Snap{}),
		FilledRect(Rect{X: 0, Y: l.FieldH - l.BarHeight(), W: l.FieldW, H: l.BarHeight()}, style.Spacer, Snap{}),
	}

	for col := 1; col <= l.Slots; col++ {
		top := l.SlotRect(col + l.Slots)
		bottom := l.SlotRect(col)
		out = append(out,
			FilledRect(top, style.Background, Snap{}),
			OutlinedRect(top, style.Frame, frameSnap),
			FilledRect(bottom, style.Background, Snap{}),
			OutlinedRect(bottom, style.Frame, frameSnap),
		)
	}

	topDeck := l.DeckRect(true)
	bottomDeck := l.DeckRect(false)
	out = append(out,
		FilledRect(topDeck, style.DeckBackground, Snap{}),
		OutlinedRect(topDeck, style.DeckFrame, frameSnap),
		FilledRect(bottomDeck, style.DeckBackground, Snap{}),
		OutlinedRect(bottomDeck, style.DeckFrame, frameSnap),
	)
	return out
}

// BattleSlots generates the drop-target frames of both battle rows,
// top row first
func (l HandLayout) BattleSlots(frame Color) []Drawable {
	out := make([]Drawable, 0, 2*l.Slots)
	for _, top := range []bool{true, false} {
		for col := 1; col <= l.Slots; col++ {
			out = append(out, OutlinedRect(l.BattleRect(col, top), frame, CardSnap(false, true)))
		}
	}
	return out
}

// HealthBar returns the remaining (green) and missing (red) segments of a bar
// spanning the width of frame
func HealthBar(hp, maxHP int, frame Rect) []Drawable {
	remaining := 0
	if maxHP > 0 {
		if hp > maxHP {
			hp = maxHP
		}
		if hp < 0 {
			hp = 0
		}
		remaining = int(float64(hp) / float64(maxHP) * float64(frame.W))
	}
	return []Drawable{
		FilledRect(Rect{X: frame.X, Y: frame.Y, W: remaining, H: frame.H}, ColorGreen, Snap{}),
		FilledRect(Rect{X: frame.X + remaining, Y: frame.Y, W: frame.W - remaining, H: frame.H}, ColorRed, Snap{}),
	}
}
