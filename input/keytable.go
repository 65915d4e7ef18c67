package input

import (
	"fmt"
	"sort"
)

// Intent is a game action triggered by a key edge
type Intent uint8

const (
	IntentNone Intent = iota
	IntentPlayA1
	IntentPlayA2
	IntentPlayA3
	IntentPlayA4
	IntentPlayB1
	IntentPlayB2
	IntentPlayB3
	IntentPlayB4
	IntentEndTurn
	IntentSpendMana
	IntentPause
	IntentRestart
	IntentQuit
)

// PlayIntentsA are the per-slot play triggers of player A, slot order
var PlayIntentsA = []Intent{IntentPlayA1, IntentPlayA2, IntentPlayA3, IntentPlayA4}

// PlayIntentsB are the per-slot play triggers of player B, slot order
var PlayIntentsB = []Intent{IntentPlayB1, IntentPlayB2, IntentPlayB3, IntentPlayB4}

// actionRegistry maps canonical action names to intents
// Used by the config loader to resolve binding names
var actionRegistry = map[string]Intent{
	"play_a_1":   IntentPlayA1,
	"play_a_2":   IntentPlayA2,
	"play_a_3":   IntentPlayA3,
	"play_a_4":   IntentPlayA4,
	"play_b_1":   IntentPlayB1,
	"play_b_2":   IntentPlayB2,
	"play_b_3":   IntentPlayB3,
	"play_b_4":   IntentPlayB4,
	"end_turn":   IntentEndTurn,
	"spend_mana": IntentSpendMana,
	"pause":      IntentPause,
	"restart":    IntentRestart,
	"quit":       IntentQuit,
}

// Bindings maps intents to keys
type Bindings struct {
	keys map[Intent]Key
}

// DefaultBindings returns the standard layout: 1-4 for player A slots,
// 7-0 for player B slots, space ends a turn, down spends mana
func DefaultBindings() *Bindings {
	return &Bindings{keys: map[Intent]Key{
		IntentPlayA1:    Key1,
		IntentPlayA2:    Key2,
		IntentPlayA3:    Key3,
		IntentPlayA4:    Key4,
		IntentPlayB1:    Key7,
		IntentPlayB2:    Key8,
		IntentPlayB3:    Key9,
		IntentPlayB4:    Key0,
		IntentEndTurn:   KeySpace,
		IntentSpendMana: KeyDown,
		IntentPause:     KeyP,
		IntentRestart:   KeyR,
		IntentQuit:      KeyEscape,
	}}
}

// Key returns the key bound to intent
func (b *Bindings) Key(intent Intent) Key {
	return b.keys[intent]
}

// Bind assigns a key to an intent
func (b *Bindings) Bind(intent Intent, k Key) {
	b.keys[intent] = k
}

// Triggered reports a press edge on the key bound to intent
func (b *Bindings) Triggered(s *State, intent Intent) bool {
	k := b.keys[intent]
	if k == KeyNone {
		return false
	}
	return s.JustPressed(k)
}

// Apply overlays action-name bindings (from configuration) onto b
func (b *Bindings) Apply(overrides map[string]string) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		intent, ok := actionRegistry[name]
		if !ok {
			return fmt.Errorf("input: unknown action %q", name)
		}
		if overrides[name] == "none" {
			b.keys[intent] = KeyNone
			continue
		}
		k, err := ParseKey(overrides[name])
		if err != nil {
			return fmt.Errorf("action %s: %w", name, err)
		}
		b.keys[intent] = k
	}
	return nil
}
