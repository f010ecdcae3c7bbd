// Package components defines ECS components for the simulation.
package components

import "math"

// Position represents an entity's playfield position.
// For the ball it is the center; for paddles it is the top-left corner.
type Position struct {
	X, Y float64
}

// Velocity represents displacement per ball step.
type Velocity struct {
	X, Y float64
}

// Speed returns the velocity magnitude.
func (v Velocity) Speed() float64 {
	return math.Hypot(v.X, v.Y)
}
