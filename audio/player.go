// Package audio plays queued sound events through raylib.
package audio

import (
	"log/slog"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/sound"
)

// Player owns the audio device and the loaded clips.
// All methods must be called from the main thread.
type Player struct {
	clips map[game.Sound]rl.Sound
}

// Open initializes the audio device and loads clips from dir.
// Missing or unreadable clips are logged and stay silent.
func Open(dir string) *Player {
	rl.InitAudioDevice()
	p := &Player{clips: make(map[game.Sound]rl.Sound)}
	if !rl.IsAudioDeviceReady() {
		slog.Warn("audio device unavailable, sound disabled")
		return p
	}

	for _, s := range sound.Sounds() {
		path := filepath.Join(dir, sound.ClipFile(s))
		if _, err := os.Stat(path); err != nil {
			slog.Warn("sound clip missing", "sound", s.String(), "path", path)
			continue
		}
		clip := rl.LoadSound(path)
		if !rl.IsSoundValid(clip) {
			slog.Warn("sound clip invalid", "sound", s.String(), "path", path)
			continue
		}
		p.clips[s] = clip
	}
	slog.Info("audio ready", "clips", len(p.clips), "dir", dir)
	return p
}

// Play starts the clip for s, if loaded.
func (p *Player) Play(s game.Sound) {
	if clip, ok := p.clips[s]; ok {
		rl.PlaySound(clip)
	}
}

// Flush plays everything pending in q.
func (p *Player) Flush(q *sound.Queue) {
	q.Drain(p.Play)
}

// Close unloads all clips and shuts down the audio device.
func (p *Player) Close() {
	for _, clip := range p.clips {
		rl.UnloadSound(clip)
	}
	p.clips = nil
	rl.CloseAudioDevice()
}
