package game

import "github.com/pthm-cable/pong/components"

// Sound identifies a sound event emitted by the simulation.
type Sound uint8

const (
	SoundWall Sound = iota
	SoundGoal
	SoundLeftPaddle
	SoundRightPaddle
)

func (s Sound) String() string {
	switch s {
	case SoundWall:
		return "wall"
	case SoundGoal:
		return "goal"
	case SoundLeftPaddle:
		return "left_paddle"
	case SoundRightPaddle:
		return "right_paddle"
	}
	return "unknown"
}

// paddleSound returns the sound for a hit on the given side.
func paddleSound(side components.Side) Sound {
	if side == components.SideLeft {
		return SoundLeftPaddle
	}
	return SoundRightPaddle
}

// SoundSink receives fire-and-forget sound events.
// Play is called from the simulation goroutine and must not block.
type SoundSink interface {
	Play(s Sound)
}

// Recorder receives rally events. Times are simulation seconds.
type Recorder interface {
	RecordMatchStart(t float64)
	RecordWall(t float64)
	RecordPaddleHit(t float64, side components.Side, hitPos, rate float64)
	RecordGoal(t float64, scorer components.Side, leftScore, rightScore int)
	RecordMatchEnd(t float64)
}
