package constants

// Logical coordinate space. All scene geometry is expressed in these units
// and rescaled by the host into device space.
const (
	LogicalWidth  = 1920
	LogicalHeight = 1080
)

// Hand layout for the real-time lane mode
const (
	TowersCardWidth     = LogicalWidth / 10
	TowersCardHeight    = LogicalHeight / 6
	TowersPaddingTop    = 5
	TowersPaddingBottom = 5
	TowersSlots         = 4
)

// Hand layout for the arena (mana) mode
const (
	ArenaCardWidth     = LogicalWidth / 9
	ArenaCardHeight    = LogicalHeight / 6
	ArenaPaddingTop    = 15
	ArenaPaddingBottom = 15
	ArenaSlots         = 5
)

// Tower geometry
const (
	TowerSize       = 200
	TowerMargin     = 100
	HealthBarHeight = 10
	SpawnUnitSize   = 20
)

// Text sizes
const (
	TextSizeCard   = 10.0
	TextSizeMana   = 12.0
	TextSizeBanner = 20.0
	TextSizeArena  = 40.0
)
