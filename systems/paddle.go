// Package systems contains ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pong/components"
)

// Bounds represents the playfield size.
type Bounds struct {
	Width, Height float64
}

// PaddleSystem moves paddles according to their intent flags.
type PaddleSystem struct {
	filter *ecs.Filter2[components.Position, components.Paddle]
	step   float64
}

// NewPaddleSystem creates a paddle system moving step units per update.
func NewPaddleSystem(w *ecs.World, step float64) *PaddleSystem {
	return &PaddleSystem{
		filter: ecs.NewFilter2[components.Position, components.Paddle](w),
		step:   step,
	}
}

// Update runs one paddle step for every paddle.
func (s *PaddleSystem) Update(bounds Bounds) {
	query := s.filter.Query()
	for query.Next() {
		pos, pd := query.Get()
		StepPaddle(pos, pd, s.step, bounds.Height)
	}
}

// StepPaddle applies one step of intent-driven movement.
// Up and down are evaluated independently; each clause is bounded on its own.
func StepPaddle(pos *components.Position, pd *components.Paddle, step, height float64) {
	if pd.MoveUp && pos.Y > 0 {
		pos.Y -= step
		if pos.Y < 0 {
			pos.Y = 0
		}
	}
	if pd.MoveDown && pos.Y+pd.Length < height {
		pos.Y += step
		if pos.Y+pd.Length > height {
			pos.Y = height - pd.Length
		}
	}
}

// ClampPaddleY keeps a paddle of the given length inside [0, height].
func ClampPaddleY(y, length, height float64) float64 {
	return clamp(y, 0, height-length)
}
