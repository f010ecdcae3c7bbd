// Package game holds the authoritative pong simulation: match state, the
// fixed-step update loop and the goal sequence.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/systems"
)

// Player is one side's name and score.
type Player struct {
	Name  string
	Score int
}

// Game holds the complete game state.
// All methods must be called from the goroutine that calls Update;
// other goroutines go through Controller.
type Game struct {
	cfg   config.Config
	world *ecs.World
	rng   *rand.Rand

	ball    ecs.Entity
	paddles [2]ecs.Entity // indexed by components.Side

	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	ballMap   *ecs.Map[components.Ball]
	paddleMap *ecs.Map[components.Paddle]

	paddleSystem    *systems.PaddleSystem
	ballSystem      *systems.BallSystem
	collisionSystem *systems.CollisionSystem

	rally   systems.Rally
	players [2]Player

	// Match status
	running bool
	paused  bool

	// Options
	soundOn      bool
	angledReturn bool

	// Update loop
	paddleAccum float64
	ballAccum   float64
	goalDelay   float64 // seconds until the ball moves again after a goal
	simTime     float64
	ballSteps   int64

	sink       SoundSink
	recorder   Recorder
	controller *Controller
}

// New creates a game with the configured geometry and zero scores.
// Paddles start centered and the ball rests in the middle until StartGame.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:          *cfg,
		world:        world,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		posMap:       ecs.NewMap[components.Position](world),
		velMap:       ecs.NewMap[components.Velocity](world),
		ballMap:      ecs.NewMap[components.Ball](world),
		paddleMap:    ecs.NewMap[components.Paddle](world),
		players:      [2]Player{{Name: components.SideLeft.String()}, {Name: components.SideRight.String()}},
		soundOn:      cfg.Options.SoundOn,
		angledReturn: cfg.Options.AngledReturn,
		sink:         opts.Sink,
		recorder:     opts.Recorder,
		controller:   &Controller{},
	}
	g.cfg.ComputeDerived()

	g.paddleSystem = systems.NewPaddleSystem(world, g.cfg.Paddle.MoveStep)
	g.ballSystem = systems.NewBallSystem(world)
	g.collisionSystem = systems.NewCollisionSystem(world)
	g.rally = systems.NewRally(g.cfg.Rally.Acceleration, g.cfg.Rally.MaxMultiplier)

	g.spawnEntities()

	return g, nil
}

// spawnEntities creates the ball and both paddles.
func (g *Game) spawnEntities() {
	cfg := &g.cfg
	paddleMapper := ecs.NewMap2[components.Position, components.Paddle](g.world)
	centerY := cfg.Playfield.Height/2 - cfg.Paddle.Length/2

	for _, side := range []components.Side{components.SideLeft, components.SideRight} {
		pos := components.Position{X: g.paddleX(side), Y: centerY}
		pd := components.Paddle{Side: side, Length: cfg.Paddle.Length, Width: cfg.Paddle.Width}
		g.paddles[side] = paddleMapper.NewEntity(&pos, &pd)
	}

	ballMapper := ecs.NewMap3[components.Position, components.Velocity, components.Ball](g.world)
	pos := components.Position{X: cfg.Playfield.Width / 2, Y: cfg.Playfield.Height / 2}
	vel := components.Velocity{X: cfg.Ball.MoveIncrement, Y: cfg.Ball.MoveIncrement}
	ball := components.Ball{Radius: cfg.Ball.Size}
	g.ball = ballMapper.NewEntity(&pos, &vel, &ball)
}

// paddleX returns the fixed x position of a side's paddle.
func (g *Game) paddleX(side components.Side) float64 {
	if side == components.SideLeft {
		return g.cfg.Derived.LeftPaddleX
	}
	return g.cfg.Derived.RightPaddleX
}

func (g *Game) bounds() systems.Bounds {
	return systems.Bounds{Width: g.cfg.Playfield.Width, Height: g.cfg.Playfield.Height}
}

func (g *Game) deflection() systems.Deflection {
	return systems.Deflection{Angled: g.angledReturn, MaxAngle: g.cfg.Derived.MaxAngleRad}
}

// Controller returns the action queue for input running on other goroutines.
func (g *Game) Controller() *Controller {
	return g.controller
}

// Config returns the game's config, including the current playfield size.
func (g *Game) Config() *config.Config {
	return &g.cfg
}

// Running reports whether a match is in progress.
func (g *Game) Running() bool { return g.running }

// Paused reports whether the running match is paused.
func (g *Game) Paused() bool { return g.paused }

// SoundOn reports whether sound events are emitted.
func (g *Game) SoundOn() bool { return g.soundOn }

// AngledReturn reports whether paddle hits steer the ball.
func (g *Game) AngledReturn() bool { return g.angledReturn }

// Player returns the name and score for a side.
func (g *Game) Player(side components.Side) Player { return g.players[side] }

// SimTime returns elapsed simulation seconds.
func (g *Game) SimTime() float64 { return g.simTime }

// BallSteps returns the number of ball steps taken since creation.
func (g *Game) BallSteps() int64 { return g.ballSteps }

// SetSoundOn enables or disables sound events.
func (g *Game) SetSoundOn(on bool) { g.soundOn = on }

// SetAngledReturn switches between angled and constant-angle paddle bounces.
func (g *Game) SetAngledReturn(on bool) { g.angledReturn = on }

// SetPlayfieldSize resizes the playfield. The right paddle follows the right
// edge, both paddles are re-clamped and the ball is pulled back between the
// walls. A ball left past a goal line scores on its next step. On error the
// state is unchanged.
func (g *Game) SetPlayfieldSize(width, height float64) error {
	next := g.cfg
	next.Playfield.Width = width
	next.Playfield.Height = height
	if err := next.Validate(); err != nil {
		return fmt.Errorf("resizing playfield: %w", err)
	}
	next.ComputeDerived()
	g.cfg = next

	for _, side := range []components.Side{components.SideLeft, components.SideRight} {
		pos := g.posMap.Get(g.paddles[side])
		pos.X = g.paddleX(side)
		pos.Y = systems.ClampPaddleY(pos.Y, g.cfg.Paddle.Length, height)
	}

	r := g.cfg.Ball.Size
	ball := g.posMap.Get(g.ball)
	ball.Y = min(max(ball.Y, r), height-r)

	slog.Info("playfield resized", "width", width, "height", height)
	return nil
}

// play forwards a sound event while sound is on.
func (g *Game) play(s Sound) {
	if !g.soundOn || g.sink == nil {
		return
	}
	g.sink.Play(s)
}
