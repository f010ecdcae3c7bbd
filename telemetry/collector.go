// Package telemetry records rally statistics and writes them to CSV.
package telemetry

import (
	"math"

	"github.com/pthm-cable/pong/components"
)

// Collector accumulates rally events from the simulation.
// It satisfies game.Recorder. Completed records queue up until Flush.
type Collector struct {
	restDelay float64 // seconds the ball rests after a goal

	match      int
	point      int
	matchStart float64
	leftScore  int
	rightScore int
	rallies    []RallyRecord // completed rallies of the current match
	inMatch    bool

	// Current rally
	rallyStart   float64
	leftHits     int
	rightHits    int
	walls        int
	peakRate     float64
	sumAbsHitPos float64

	pendingRallies []RallyRecord
	pendingMatches []MatchSummary
}

// NewCollector creates a collector. restDelay is excluded from rally
// durations so a rally starts when the ball is released.
func NewCollector(restDelay float64) *Collector {
	return &Collector{restDelay: restDelay}
}

// RecordMatchStart opens a new match.
func (c *Collector) RecordMatchStart(t float64) {
	c.match++
	c.point = 0
	c.matchStart = t
	c.leftScore = 0
	c.rightScore = 0
	c.rallies = nil
	c.inMatch = true
	c.startRally(t)
}

// RecordWall counts a wall bounce.
func (c *Collector) RecordWall(t float64) {
	c.walls++
}

// RecordPaddleHit counts a paddle hit and tracks the peak rate.
func (c *Collector) RecordPaddleHit(t float64, side components.Side, hitPos, rate float64) {
	if side == components.SideLeft {
		c.leftHits++
	} else {
		c.rightHits++
	}
	c.sumAbsHitPos += math.Abs(hitPos)
	if rate > c.peakRate {
		c.peakRate = rate
	}
}

// RecordGoal closes the current rally.
func (c *Collector) RecordGoal(t float64, scorer components.Side, leftScore, rightScore int) {
	c.point++
	c.leftScore = leftScore
	c.rightScore = rightScore

	hits := c.leftHits + c.rightHits
	var meanHitPos float64
	if hits > 0 {
		meanHitPos = c.sumAbsHitPos / float64(hits)
	}

	duration := t - c.rallyStart
	if duration < 0 {
		duration = 0
	}

	r := RallyRecord{
		Match:         c.match,
		Point:         c.point,
		Scorer:        scorer.String(),
		Hits:          hits,
		LeftHits:      c.leftHits,
		RightHits:     c.rightHits,
		WallBounces:   c.walls,
		StartSec:      c.rallyStart,
		DurationSec:   duration,
		PeakRate:      c.peakRate,
		MeanAbsHitPos: meanHitPos,
		LeftScore:     leftScore,
		RightScore:    rightScore,
	}
	c.rallies = append(c.rallies, r)
	c.pendingRallies = append(c.pendingRallies, r)

	c.startRally(t + c.restDelay)
}

// RecordMatchEnd summarizes the match. An unfinished rally is discarded.
func (c *Collector) RecordMatchEnd(t float64) {
	if !c.inMatch {
		return
	}
	c.inMatch = false
	s := Summarize(c.match, c.rallies, t-c.matchStart, c.leftScore, c.rightScore)
	c.pendingMatches = append(c.pendingMatches, s)
}

// Flush returns and clears the records completed since the last Flush.
func (c *Collector) Flush() ([]RallyRecord, []MatchSummary) {
	rallies, matches := c.pendingRallies, c.pendingMatches
	c.pendingRallies = nil
	c.pendingMatches = nil
	return rallies, matches
}

// Match returns the current match number, 0 before the first match.
func (c *Collector) Match() int {
	return c.match
}

// Rallies returns the completed rallies of the current match.
func (c *Collector) Rallies() []RallyRecord {
	return c.rallies
}

func (c *Collector) startRally(t float64) {
	c.rallyStart = t
	c.leftHits = 0
	c.rightHits = 0
	c.walls = 0
	c.peakRate = 1
	c.sumAbsHitPos = 0
}
