package status

import (
	"sync/atomic"

	"github.com/mattn/go-runewidth"
)

// MaxLabelWidth is the widest label the status line shows, in terminal cells
const MaxLabelWidth = 24

// Label is a mode or match-state name published without locks
type Label struct {
	v atomic.Pointer[string]
}

// Store sets the label, cut to MaxLabelWidth cells with a trailing ellipsis
func (l *Label) Store(s string) {
	s = runewidth.Truncate(s, MaxLabelWidth, "…")
	l.v.Store(&s)
}

// Load returns the label, "" before the first Store
func (l *Label) Load() string {
	if p := l.v.Load(); p != nil {
		return *p
	}
	return ""
}
