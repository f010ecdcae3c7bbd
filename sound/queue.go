// Package sound buffers simulation sound events for playback on the host
// thread.
package sound

import (
	"sync/atomic"

	"github.com/pthm-cable/pong/game"
)

// Clip file names, one per sound event.
var clipFiles = map[game.Sound]string{
	game.SoundWall:        "wall.wav",
	game.SoundLeftPaddle:  "ping.wav",
	game.SoundRightPaddle: "pong.wav",
	game.SoundGoal:        "goal.wav",
}

// ClipFile returns the clip file name for s, or "" for an unknown sound.
func ClipFile(s game.Sound) string {
	return clipFiles[s]
}

// Sounds lists every sound with a clip.
func Sounds() []game.Sound {
	return []game.Sound{game.SoundWall, game.SoundLeftPaddle, game.SoundRightPaddle, game.SoundGoal}
}

var _ game.SoundSink = (*Queue)(nil)

// Queue is a bounded, non-blocking game.SoundSink.
// Events that arrive while the queue is full are dropped.
type Queue struct {
	events  chan game.Sound
	dropped atomic.Int64
}

// NewQueue creates a queue holding up to size pending events.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{events: make(chan game.Sound, size)}
}

// Play enqueues s without blocking.
func (q *Queue) Play(s game.Sound) {
	select {
	case q.events <- s:
	default:
		q.dropped.Add(1)
	}
}

// Drain hands every pending event to play and returns how many it handled.
func (q *Queue) Drain(play func(game.Sound)) int {
	n := 0
	for {
		select {
		case s := <-q.events:
			play(s)
			n++
		default:
			return n
		}
	}
}

// Dropped returns the number of events lost to a full queue.
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}
