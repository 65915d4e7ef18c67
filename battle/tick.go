package battle

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies simulation events
type EventKind uint8

const (
	EventSpawned EventKind = iota
	EventRejected
	EventTowerHit
	EventUnitHit
	EventUnitKilled
	EventGameOver
)

// String returns the event name
func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventRejected:
		return "rejected"
	case EventTowerHit:
		return "tower_hit"
	case EventUnitHit:
		return "unit_hit"
	case EventUnitKilled:
		return "unit_killed"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event reports one observable change produced by a tick
// Player is the acting side; for TowerHit the struck tower belongs to its opponent
type Event struct {
	Kind   EventKind
	Player Player
	Slot   int
	Unit   uuid.UUID
	Damage int
	Health int
	State  GameState
}

// PlayRequest asks to play a hand slot (1-based) this tick
type PlayRequest struct {
	Player Player
	Slot   int
}

// Input is everything a tick consumes besides the state itself
type Input struct {
	Now   time.Duration
	Plays []PlayRequest
}

// Tick advances the simulation by one frame
// Plays are applied first, then movement, lane clash when enabled, tower
// attacks and a single win check. A terminal state is never advanced.
// A returned error means the tick was abandoned after the failing play
func Tick(s *SimulationState, in Input) ([]Event, error) {
	if s.State.Terminal() {
		return nil, nil
	}
	var events []Event

	for _, req := range in.Plays {
		u, err := s.Play(req.Player, req.Slot, in.Now)
		switch {
		case err == nil:
			events = append(events, Event{Kind: EventSpawned, Player: req.Player, Slot: req.Slot, Unit: u.ID, Health: u.Fighter.Health})
		case errors.Is(err, ErrCooldown):
			events = append(events, Event{Kind: EventRejected, Player: req.Player, Slot: req.Slot})
		default:
			return events, err
		}
	}

	s.Ticks++
	s.move()
	if s.Rules.LaneClash {
		events = s.clash(in.Now, events)
	}
	events = s.attackTowers(in.Now, events)

	if st := s.checkWin(); st.Terminal() {
		s.State = st
		events = append(events, Event{Kind: EventGameOver, State: st})
	}
	return events, nil
}

// move advances every unit short of its boundary, never past it
// With lane clash enabled a unit also stops on touching the nearest enemy ahead
func (s *SimulationState) move() {
	for _, side := range s.sides {
		boundary := s.Rules.Boundary(side.Player)
		for _, u := range side.Units {
			step := u.step(s.Rules.FrameMovementFactor)
			if side.Player == PlayerA {
				if u.Rect.X >= boundary {
					continue
				}
				x := min(u.Rect.X+step, boundary)
				if s.Rules.LaneClash {
					if e := s.nearestAhead(u); e != nil {
						x = min(x, max(u.Rect.X, e.Rect.X-u.Rect.W))
					}
				}
				u.Rect.X = x
			} else {
				if u.Rect.X <= boundary {
					continue
				}
				x := max(u.Rect.X-step, boundary)
				if s.Rules.LaneClash {
					if e := s.nearestAhead(u); e != nil {
						x = max(x, min(u.Rect.X, e.Rect.X+e.Rect.W))
					}
				}
				u.Rect.X = x
			}
		}
	}
}

// nearestAhead returns the closest living enemy in u's direction of travel
func (s *SimulationState) nearestAhead(u *Unit) *Unit {
	var best *Unit
	for _, e := range s.sides[u.Owner.Opponent()].Units {
		if !e.Alive() {
			continue
		}
		if u.Owner == PlayerA {
			if e.Rect.X < u.Rect.X {
				continue
			}
			if best == nil || e.Rect.X < best.Rect.X {
				best = e
			}
		} else {
			if e.Rect.X > u.Rect.X {
				continue
			}
			if best == nil || e.Rect.X > best.Rect.X {
				best = e
			}
		}
	}
	return best
}

// inContact reports horizontal overlap of two opposing units, edges inclusive
func inContact(a, b *Unit) bool {
	return a.Rect.X <= b.Rect.X+b.Rect.W && b.Rect.X <= a.Rect.X+a.Rect.W
}

// clash resolves unit-versus-unit strikes, player A's units first, then
// removes the dead
func (s *SimulationState) clash(now time.Duration, events []Event) []Event {
	for _, side := range s.sides {
		for _, u := range side.Units {
			if !u.Alive() || !u.canAttack(now) {
				continue
			}
			e := s.nearestAhead(u)
			if e == nil || !inContact(u, e) {
				continue
			}
			before := e.Fighter.Health
			u.Fighter.Strike(&e.Fighter)
			u.LastAttack = now
			events = append(events, Event{Kind: EventUnitHit, Player: side.Player, Unit: e.ID, Damage: before - e.Fighter.Health, Health: e.Fighter.Health})
		}
	}
	for _, side := range s.sides {
		alive := side.Units[:0]
		for _, u := range side.Units {
			if u.Alive() {
				alive = append(alive, u)
				continue
			}
			events = append(events, Event{Kind: EventUnitKilled, Player: side.Player, Unit: u.ID})
		}
		clear(side.Units[len(alive):])
		side.Units = alive
	}
	return events
}

// attackTowers lets every unit at or past its boundary strike the opposing
// tower once its attack interval has elapsed
func (s *SimulationState) attackTowers(now time.Duration, events []Event) []Event {
	for _, side := range s.sides {
		boundary := s.Rules.Boundary(side.Player)
		target := &s.sides[side.Player.Opponent()].Tower
		for _, u := range side.Units {
			engaged := u.Rect.X >= boundary
			if side.Player == PlayerB {
				engaged = u.Rect.X <= boundary
			}
			if !engaged || !u.canAttack(now) {
				continue
			}
			dealt := target.TakeDamage(u.Card().Attack)
			u.LastAttack = now
			events = append(events, Event{Kind: EventTowerHit, Player: side.Player, Unit: u.ID, Damage: dealt, Health: target.Health})
		}
	}
	return events
}

// checkWin inspects player A's tower before player B's, so a tick that
// destroys both towers ends PlayerBWon
func (s *SimulationState) checkWin() GameState {
	if s.sides[PlayerA].Tower.Destroyed() {
		return PlayerBWon
	}
	if s.sides[PlayerB].Tower.Destroyed() {
		return PlayerAWon
	}
	return InProgress
}
