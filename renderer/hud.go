package renderer

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/game"
)

const (
	statusBarHeight = 24
	controlsText    = "[SPACE] start  [ESC] stop  [P] pause  [1] sound  [2] angled  [Q/A] left  [UP/DOWN] right  [I] inspect"
)

// HUDData holds the values shown in the status bar.
type HUDData struct {
	Snapshot     game.Snapshot
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// StatusText formats the status bar line.
func StatusText(s game.Snapshot, fps int32) string {
	state := "Stopped"
	switch {
	case s.Running && s.Paused:
		state = "Paused"
	case s.Running && s.Resting:
		state = "Goal"
	case s.Running:
		state = "Running"
	}

	parts := []string{
		state,
		fmt.Sprintf("%s %d : %d %s", s.Players[0].Name, s.Players[0].Score, s.Players[1].Score, s.Players[1].Name),
		fmt.Sprintf("hits %d", s.RallyHits),
		fmt.Sprintf("speed x%.2f", s.BallRate),
		"sound " + onOff(s.SoundOn),
		"angled " + onOff(s.AngledReturn),
		fmt.Sprintf("%d fps", fps),
	}
	return strings.Join(parts, "  |  ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// DrawHUD renders the status bar along the bottom edge and the control legend above it.
func DrawHUD(data HUDData) {
	bar := rl.Rectangle{
		X:      0,
		Y:      float32(data.ScreenHeight - statusBarHeight),
		Width:  float32(data.ScreenWidth),
		Height: statusBarHeight,
	}
	gui.StatusBar(bar, StatusText(data.Snapshot, data.FPS))

	rl.DrawText(controlsText, 10, data.ScreenHeight-statusBarHeight-18, 12, rl.Gray)
}
