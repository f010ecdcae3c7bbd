package game

import (
	"log/slog"

	"github.com/pthm-cable/pong/components"
)

// StartGame resets scores and serves from a random side.
// Does nothing while a match is running.
func (g *Game) StartGame() {
	if g.running {
		return
	}

	g.players[components.SideLeft].Score = 0
	g.players[components.SideRight].Score = 0

	side := components.SideLeft
	if g.rng.Float64() >= 0.5 {
		side = components.SideRight
	}

	g.rally.Reset()
	g.serve(side)
	g.goalDelay = 0
	g.ballAccum = 0
	g.paused = false
	g.running = true

	slog.Info("match started", "serve_from", side.String())
	if g.recorder != nil {
		g.recorder.RecordMatchStart(g.simTime)
	}
}

// StopGame halts ball motion and ends the match. Scores are kept until the
// next StartGame.
func (g *Game) StopGame() {
	wasRunning := g.running
	g.running = false
	g.paused = false
	g.goalDelay = 0
	g.ballAccum = 0

	if !wasRunning {
		return
	}
	slog.Info("match stopped",
		"left", g.players[components.SideLeft].Score,
		"right", g.players[components.SideRight].Score,
	)
	if g.recorder != nil {
		g.recorder.RecordMatchEnd(g.simTime)
	}
}

// PauseGame freezes the ball. Paddles keep responding to input.
func (g *Game) PauseGame() {
	if !g.running || g.paused {
		return
	}
	g.paused = true
	slog.Debug("match paused")
}

// ResumeGame lets the ball move again with unchanged position and velocity.
func (g *Game) ResumeGame() {
	if !g.running || !g.paused {
		return
	}
	g.paused = false
	g.ballAccum = 0
	slog.Debug("match resumed")
}

// TogglePause pauses a running match or resumes a paused one.
func (g *Game) TogglePause() {
	if g.paused {
		g.ResumeGame()
	} else {
		g.PauseGame()
	}
}

// serve places the ball at the inset of side, moving toward the other side
// with a random height and vertical direction.
func (g *Game) serve(side components.Side) {
	cfg := &g.cfg
	pos := g.posMap.Get(g.ball)
	vel := g.velMap.Get(g.ball)
	r := cfg.Ball.Size

	if side == components.SideLeft {
		pos.X = r
		vel.X = cfg.Ball.MoveIncrement
	} else {
		pos.X = cfg.Playfield.Width - r
		vel.X = -cfg.Ball.MoveIncrement
	}

	pos.Y = r + g.rng.Float64()*(cfg.Playfield.Height-2*r)

	vel.Y = cfg.Ball.MoveIncrement
	if g.rng.Float64() < 0.5 {
		vel.Y = -vel.Y
	}
}

// goal runs the goal sequence: escalation is undone, the scorer gets a point
// and re-serves from their own side after the goal delay.
func (g *Game) goal(scorer components.Side) {
	g.rally.Reset()
	g.players[scorer].Score++
	g.serve(scorer)
	g.goalDelay = g.cfg.Rally.GoalDelay
	g.ballAccum = 0

	left := g.players[components.SideLeft].Score
	right := g.players[components.SideRight].Score
	slog.Info("goal", "scorer", scorer.String(), "left", left, "right", right)
	if g.recorder != nil {
		g.recorder.RecordGoal(g.simTime, scorer, left, right)
	}
}
