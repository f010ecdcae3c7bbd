package components

// Side identifies one half of the playfield.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// String returns the player name for the side.
func (s Side) String() string {
	if s == SideLeft {
		return "Left"
	}
	return "Right"
}

// Ball holds the ball's physical properties.
type Ball struct {
	Radius float64
}

// Bounds returns the ball's bounding box around center p.
func (b Ball) Bounds(p Position) (xMin, xMax, yMin, yMax float64) {
	return p.X - b.Radius, p.X + b.Radius, p.Y - b.Radius, p.Y + b.Radius
}

// Paddle holds paddle geometry and the movement intents written by input.
type Paddle struct {
	Side     Side
	Length   float64
	Width    float64
	MoveUp   bool
	MoveDown bool
}
