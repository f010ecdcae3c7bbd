package game

import (
	"log/slog"

	"github.com/pthm-cable/pong/components"
)

// Update advances the simulation by dt seconds.
// Queued controller actions are applied first. Paddles and ball then step
// at their own, possibly escalated, rates from separate accumulators.
func (g *Game) Update(dt float64) {
	g.controller.drain(g)
	if dt <= 0 {
		return
	}
	g.simTime += dt

	g.updatePaddles(dt)
	g.updateBall(dt)
}

// updatePaddles runs paddle steps regardless of match status.
func (g *Game) updatePaddles(dt float64) {
	g.paddleAccum += dt
	maxSteps := g.cfg.Timing.MaxStepsPerUpdate

	for steps := 0; ; steps++ {
		interval := 1 / (g.cfg.Timing.PaddleRate * g.rally.PaddleRate)
		if g.paddleAccum < interval {
			return
		}
		if steps == maxSteps {
			g.paddleAccum = 0
			return
		}
		g.paddleAccum -= interval
		g.paddleSystem.Update(g.bounds())
	}
}

// updateBall runs ball steps while the match is running and unpaused.
// Time spent stopped, paused or resting after a goal is not banked.
func (g *Game) updateBall(dt float64) {
	if !g.running || g.paused {
		g.ballAccum = 0
		return
	}

	if g.goalDelay > 0 {
		g.goalDelay -= dt
		if g.goalDelay > 0 {
			return
		}
		dt = -g.goalDelay
		g.goalDelay = 0
		slog.Debug("ball released")
	}

	g.ballAccum += dt
	maxSteps := g.cfg.Timing.MaxStepsPerUpdate

	for steps := 0; ; steps++ {
		interval := 1 / (g.cfg.Timing.BallRate * g.rally.BallRate)
		if g.ballAccum < interval {
			return
		}
		if steps == maxSteps {
			g.ballAccum = 0
			return
		}
		g.ballAccum -= interval
		if g.stepBall() {
			// Resting after a goal; the remainder of this frame is dropped.
			g.ballAccum = 0
			return
		}
	}
}

// stepBall moves the ball once and resolves its contacts.
// Returns true when a goal was scored.
func (g *Game) stepBall() bool {
	g.ballSteps++
	g.ballSystem.Update()
	c := g.collisionSystem.Update(g.bounds(), g.deflection())

	if c.Wall {
		g.play(SoundWall)
		if g.recorder != nil {
			g.recorder.RecordWall(g.simTime)
		}
	}

	if c.Goal {
		g.play(SoundGoal)
		g.goal(c.Scorer)
		return true
	}

	if c.Paddle {
		g.play(paddleSound(c.Hit))
		g.rally.Escalate()
		if g.recorder != nil {
			g.recorder.RecordPaddleHit(g.simTime, c.Hit, c.HitPos, g.rally.BallRate)
		}
		slog.Debug("paddle hit",
			"side", c.Hit.String(),
			"hit_pos", c.HitPos,
			"rate", g.rally.BallRate,
		)
	}
	return false
}

// resting reports whether the ball is waiting out the goal delay.
func (g *Game) resting() bool {
	return g.goalDelay > 0
}

// paddleOf returns the paddle component for a side.
func (g *Game) paddleOf(side components.Side) *components.Paddle {
	return g.paddleMap.Get(g.paddles[side])
}
