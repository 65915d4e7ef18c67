package battle

import (
	"fmt"

	"github.com/lixenwraith/titanium/constants"
	"github.com/lixenwraith/titanium/scene"
)

// Rules holds the tuning of a match
type Rules struct {
	TowerHP             int
	FrameMovementFactor int
	SpawnStep           int
	SpawnBand           int
	Slots               int
	LaneClash           bool // opposing units in contact fight each other
	ShuffleOnDeal       bool // decks are shuffled before each deal

	FieldWidth      int
	FieldHeight     int
	EngagementInset int
	UnitSize        int
}

// DefaultRules returns the standard real-time tuning
func DefaultRules() Rules {
	return Rules{
		TowerHP:             constants.TowerStartHP,
		FrameMovementFactor: constants.FrameMovementFactor,
		SpawnStep:           constants.SpawnOffsetStep,
		SpawnBand:           constants.SpawnOffsetBand,
		Slots:               constants.TowersSlots,
		FieldWidth:          constants.LogicalWidth,
		FieldHeight:         constants.LogicalHeight,
		EngagementInset:     constants.EngagementInset,
		UnitSize:            constants.SpawnUnitSize,
		ShuffleOnDeal:       true,
	}
}

// Validate rejects tuning the simulation cannot run with
func (r Rules) Validate() error {
	switch {
	case r.TowerHP <= 0:
		return fmt.Errorf("battle: tower hp must be positive, got %d", r.TowerHP)
	case r.Slots <= 0:
		return fmt.Errorf("battle: slots must be positive, got %d", r.Slots)
	case r.SpawnBand <= 0:
		return fmt.Errorf("battle: spawn band must be positive, got %d", r.SpawnBand)
	case r.FrameMovementFactor < 0:
		return fmt.Errorf("battle: frame movement factor must not be negative, got %d", r.FrameMovementFactor)
	case r.EngagementInset <= 0 || 2*r.EngagementInset >= r.FieldWidth:
		return fmt.Errorf("battle: engagement inset %d does not fit field width %d", r.EngagementInset, r.FieldWidth)
	}
	return nil
}

// SpawnBase returns the unshifted spawn rect of a side
func (r Rules) SpawnBase(p Player) scene.Rect {
	y := r.FieldHeight/2 - 50
	if p == PlayerA {
		return scene.NewRect(r.EngagementInset, y, r.UnitSize, r.UnitSize)
	}
	return scene.NewRect(r.FieldWidth-r.EngagementInset, y, r.UnitSize, r.UnitSize)
}

// Boundary returns the engagement x-coordinate for units owned by p
// Player A advances right toward B's boundary, player B left toward A's
func (r Rules) Boundary(p Player) int {
	if p == PlayerA {
		return r.FieldWidth - r.EngagementInset
	}
	return r.EngagementInset
}

// TowerRect returns the tower body of a side
func (r Rules) TowerRect(p Player) scene.Rect {
	y := r.FieldHeight/2 - 50
	if p == PlayerA {
		return scene.NewRect(constants.TowerMargin, y, constants.TowerSize, constants.TowerSize)
	}
	return scene.NewRect(r.FieldWidth-constants.TowerMargin-constants.TowerSize, y, constants.TowerSize, constants.TowerSize)
}

// SpawnRect offsets base vertically by seq steps, wrapping within the band,
// so concurrently spawned units do not fully overlap
func SpawnRect(base scene.Rect, seq, step, band int) scene.Rect {
	r := base
	r.Y = (base.Y+seq*step)%band + base.Y
	return r
}
