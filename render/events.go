package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/titanium/input"
)

// Apply translates one terminal event into in and reports a hard quit (Ctrl-C)
// Terminals never report key releases, so keys arrive as pulses
func (t *Terminal) Apply(ev tcell.Event, in *input.State) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			in.PulseKey(input.KeyFromRune(ev.Rune()))
		case tcell.KeyEscape:
			in.PulseKey(input.KeyEscape)
		case tcell.KeyEnter:
			in.PulseKey(input.KeyEnter)
		case tcell.KeyDown:
			in.PulseKey(input.KeyDown)
		case tcell.KeyUp:
			in.PulseKey(input.KeyUp)
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		t.Pointer(in, x, y)
		in.SetButton(ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}
