package game

import (
	"github.com/pthm-cable/pong/config"
)

// ErrInvalidConfig is returned when a configuration cannot drive a match.
var ErrInvalidConfig = config.ErrInvalid

// Options configures a Game beyond the loaded config.
type Options struct {
	Seed     int64     // RNG seed for serves
	Sink     SoundSink // optional; receives sound events while sound is on
	Recorder Recorder  // optional; receives rally telemetry
}
