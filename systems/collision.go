package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pong/components"
)

// PaddleRect is a paddle's hit box at the time of a ball step.
type PaddleRect struct {
	Side   components.Side
	X, Y   float64 // top-left corner
	Length float64
	Width  float64
}

// Contact reports what the ball touched during one step.
type Contact struct {
	Wall   bool
	Goal   bool
	Scorer components.Side // valid when Goal
	Paddle bool
	Hit    components.Side // valid when Paddle
	HitPos float64         // -1 top .. +1 bottom, valid when Paddle
}

// Deflection selects how the ball leaves a paddle.
type Deflection struct {
	Angled   bool
	MaxAngle float64 // radians
}

// CollisionSystem resolves the ball against walls, goal lines and paddles.
type CollisionSystem struct {
	balls   *ecs.Filter3[components.Position, components.Velocity, components.Ball]
	paddles *ecs.Filter2[components.Position, components.Paddle]
	rects   []PaddleRect
}

// NewCollisionSystem creates a new collision system.
func NewCollisionSystem(w *ecs.World) *CollisionSystem {
	return &CollisionSystem{
		balls:   ecs.NewFilter3[components.Position, components.Velocity, components.Ball](w),
		paddles: ecs.NewFilter2[components.Position, components.Paddle](w),
		rects:   make([]PaddleRect, 0, 2),
	}
}

// Update resolves the ball after integration and returns its contact.
func (s *CollisionSystem) Update(bounds Bounds, defl Deflection) Contact {
	s.rects = s.rects[:0]
	pq := s.paddles.Query()
	for pq.Next() {
		pos, pd := pq.Get()
		s.rects = append(s.rects, PaddleRect{
			Side:   pd.Side,
			X:      pos.X,
			Y:      pos.Y,
			Length: pd.Length,
			Width:  pd.Width,
		})
	}

	var contact Contact
	bq := s.balls.Query()
	for bq.Next() {
		pos, vel, ball := bq.Get()
		contact = Resolve(pos, vel, *ball, s.rects, bounds, defl)
	}
	return contact
}

// Resolve checks a ball that has just moved. Wall bounces reflect speed Y
// without repositioning, so the ball may sit outside the field for one step.
// After a goal the remaining checks are skipped; the caller re-serves.
func Resolve(pos *components.Position, vel *components.Velocity, ball components.Ball,
	paddles []PaddleRect, bounds Bounds, defl Deflection) Contact {

	var c Contact
	xMin, xMax, yMin, yMax := ball.Bounds(*pos)

	if yMin < 0 || yMax > bounds.Height {
		c.Wall = true
		vel.Y = -vel.Y
	}

	if xMax < 0 || xMin > bounds.Width {
		c.Goal = true
		c.Scorer = components.SideLeft
		if xMin < 0 {
			c.Scorer = components.SideRight
		}
		return c
	}

	for _, r := range paddles {
		if !hitsPaddle(r, *vel, xMin, xMax, yMin, yMax) {
			continue
		}
		c.Paddle = true
		c.Hit = r.Side
		c.HitPos = Deflect(vel, pos.Y, r, defl)
		break
	}

	return c
}

// hitsPaddle reports whether a ball moving toward the paddle has reached its face
// while overlapping it vertically.
func hitsPaddle(r PaddleRect, vel components.Velocity, xMin, xMax, yMin, yMax float64) bool {
	if yMax <= r.Y || yMin >= r.Y+r.Length {
		return false
	}
	if r.Side == components.SideLeft {
		return vel.X < 0 && xMin <= r.X+r.Width
	}
	return vel.X > 0 && xMax >= r.X
}

// HitPosition maps the ball's center to [-1, 1] along the paddle:
// -1 top, 0 center, +1 bottom. Corner overlaps are clamped.
func HitPosition(centerY float64, r PaddleRect) float64 {
	return clamp(2*((centerY-r.Y)/r.Length-0.5), -1, 1)
}

// Deflect sends the ball back away from the paddle and returns the hit position.
// Angled deflection keeps the speed magnitude and only rotates the direction.
func Deflect(vel *components.Velocity, centerY float64, r PaddleRect, defl Deflection) float64 {
	hitPos := HitPosition(centerY, r)
	if !defl.Angled {
		vel.X = -vel.X
		return hitPos
	}

	speed := vel.Speed()
	theta := hitPos * defl.MaxAngle
	dir := -sign(vel.X)
	vel.Y = speed * math.Sin(theta)
	vel.X = dir * speed * math.Abs(math.Cos(theta))
	return hitPos
}
