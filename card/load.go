package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadError reports a missing or malformed deck file
// It is fatal at startup; no recovery is attempted
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("card: load deck %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// deckFile is the on-disk deck document
type deckFile struct {
	Cards []Card `json:"cards"`
}

// LoadDeck reads a deck file
func LoadDeck(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	deck, err := ParseDeck(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return deck, nil
}

// ParseDeck decodes a deck document from r
func ParseDeck(r io.Reader) (*Deck, error) {
	var doc deckFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("decode: %w", err)}
	}

	if len(doc.Cards) == 0 {
		return nil, &LoadError{Err: errors.New("deck has no cards")}
	}
	for i, c := range doc.Cards {
		if err := validate(c); err != nil {
			return nil, &LoadError{Err: fmt.Errorf("card %d: %w", i, err)}
		}
	}
	return NewDeck(doc.Cards), nil
}

func validate(c Card) error {
	switch {
	case c.Name == "":
		return errors.New("missing name")
	case c.PlayCost < 0, c.Health < 0, c.Defense < 0, c.PassiveCost < 0, c.SpecialCost < 0,
		c.Attack < 0, c.Speed < 0, c.AttackSpeed < 0:
		return fmt.Errorf("%s: negative stat", c.Name)
	}
	return nil
}
