package game

import "github.com/pthm-cable/pong/components"

// PaddleView is the read-only state of one paddle.
type PaddleView struct {
	Side     components.Side
	X, Y     float64
	Length   float64
	Width    float64
	MoveUp   bool
	MoveDown bool
}

// BallView is the read-only state of the ball.
type BallView struct {
	X, Y   float64
	Radius float64
	SpeedX float64
	SpeedY float64
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Width, Height float64

	Ball    BallView
	Paddles [2]PaddleView // indexed by components.Side
	Players [2]Player

	Running      bool
	Paused       bool
	Resting      bool // ball waiting after a goal
	SoundOn      bool
	AngledReturn bool

	BallRate   float64
	PaddleRate float64
	RallyHits  int
	SimTime    float64
}

// Snapshot copies the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	pos := g.posMap.Get(g.ball)
	vel := g.velMap.Get(g.ball)
	ball := g.ballMap.Get(g.ball)

	s := Snapshot{
		Width:  g.cfg.Playfield.Width,
		Height: g.cfg.Playfield.Height,
		Ball: BallView{
			X:      pos.X,
			Y:      pos.Y,
			Radius: ball.Radius,
			SpeedX: vel.X,
			SpeedY: vel.Y,
		},
		Players:      g.players,
		Running:      g.running,
		Paused:       g.paused,
		Resting:      g.resting(),
		SoundOn:      g.soundOn,
		AngledReturn: g.angledReturn,
		BallRate:     g.rally.BallRate,
		PaddleRate:   g.rally.PaddleRate,
		RallyHits:    g.rally.Hits,
		SimTime:      g.simTime,
	}

	for _, side := range []components.Side{components.SideLeft, components.SideRight} {
		ppos := g.posMap.Get(g.paddles[side])
		pd := g.paddleOf(side)
		s.Paddles[side] = PaddleView{
			Side:     side,
			X:        ppos.X,
			Y:        ppos.Y,
			Length:   pd.Length,
			Width:    pd.Width,
			MoveUp:   pd.MoveUp,
			MoveDown: pd.MoveDown,
		}
	}
	return s
}

// Contains reports whether playfield point (x, y) lies on the paddle.
func (p PaddleView) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Length
}

// PaddleAt returns the paddle under playfield point (x, y), if any.
func (s Snapshot) PaddleAt(x, y float64) (components.Side, bool) {
	for _, p := range s.Paddles {
		if p.Contains(x, y) {
			return p.Side, true
		}
	}
	return 0, false
}
