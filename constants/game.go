package constants

import "time"

// Frame Loop Timing Constants
const (
	// FrameUpdateInterval is the frame interval (~60 FPS); one simulation tick per frame
	FrameUpdateInterval = 16 * time.Millisecond

	// EventBufferSize is the capacity of the host event channel
	EventBufferSize = 100
)

// Battle Tuning Constants (real-time lane mode)
const (
	// TowerStartHP is the fixed maximum and starting health of each tower
	TowerStartHP = 10

	// FrameMovementFactor scales a card's speed into logical pixels per frame
	FrameMovementFactor = 3

	// SpawnOffsetStep is the vertical step between consecutively spawned units
	SpawnOffsetStep = 20

	// SpawnOffsetBand bounds the vertical spread of spawned units
	SpawnOffsetBand = 200

	// EngagementInset is the distance from a screen edge to the engagement boundary
	EngagementInset = 300
)

// Mana Variant Constants (turn-based arena mode)
const (
	// StartingMana is each player's mana at the first turn
	StartingMana = 5

	// ManaPerRound is granted to both players once every full round (two turns)
	ManaPerRound = 5
)
