package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pong/components"
)

// BallSystem integrates ball motion.
type BallSystem struct {
	filter *ecs.Filter2[components.Position, components.Velocity]
}

// NewBallSystem creates a new ball system.
func NewBallSystem(w *ecs.World) *BallSystem {
	return &BallSystem{
		filter: ecs.NewFilter2[components.Position, components.Velocity](w),
	}
}

// Update moves every moving entity by one velocity step.
func (s *BallSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		pos.X += vel.X
		pos.Y += vel.Y
	}
}
