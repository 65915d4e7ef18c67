package render

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Cell is one printable rune and its display width
type Cell struct {
	Rune  rune
	Width int
}

// Cells splits s into printable cells, dropping zero-width runes
func Cells(s string) []Cell {
	out := make([]Cell, 0, len(s))
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		out = append(out, Cell{Rune: r, Width: w})
	}
	return out
}

// Truncate cuts s to at most width display cells
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}

// Wrap breaks text into lines of at most width display cells, honoring
// explicit newlines and breaking on spaces where possible
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for runewidth.StringWidth(w) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(w)
					head = w[:size]
				}
				out = append(out, head)
				w = w[len(head):]
			}
			switch {
			case line == "":
				line = w
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(w) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
