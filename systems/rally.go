package systems

// Rally tracks the step-rate escalation within one scoring exchange.
// Escalation speeds up how often ball and paddles step, never how far.
type Rally struct {
	Acceleration  float64
	MaxMultiplier float64 // 0 = uncapped

	BallRate   float64
	PaddleRate float64
	Hits       int
}

// NewRally creates a rally with both multipliers at 1.
func NewRally(acceleration, maxMultiplier float64) Rally {
	r := Rally{Acceleration: acceleration, MaxMultiplier: maxMultiplier}
	r.Reset()
	return r
}

// Escalate applies one paddle hit.
func (r *Rally) Escalate() {
	r.Hits++
	r.BallRate *= r.Acceleration
	r.PaddleRate *= r.Acceleration
	if r.MaxMultiplier > 0 {
		if r.BallRate > r.MaxMultiplier {
			r.BallRate = r.MaxMultiplier
		}
		if r.PaddleRate > r.MaxMultiplier {
			r.PaddleRate = r.MaxMultiplier
		}
	}
}

// Reset undoes all escalation.
func (r *Rally) Reset() {
	r.BallRate = 1.0
	r.PaddleRate = 1.0
	r.Hits = 0
}
