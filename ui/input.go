// Package ui maps keyboard and mouse input onto game actions.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/inspector"
)

// intentKey binds a held key to one paddle intent.
type intentKey struct {
	key  int32
	side components.Side
	dir  game.Direction
}

var intentKeys = []intentKey{
	{rl.KeyQ, components.SideLeft, game.DirUp},
	{rl.KeyA, components.SideLeft, game.DirDown},
	{rl.KeyUp, components.SideRight, game.DirUp},
	{rl.KeyDown, components.SideRight, game.DirDown},
}

// actionKey binds a key press to a controller action.
type actionKey struct {
	key    int32
	action func(*game.Controller)
}

var actionKeys = []actionKey{
	{rl.KeySpace, (*game.Controller).StartGame},
	{rl.KeyEscape, (*game.Controller).StopGame},
	{rl.KeyP, (*game.Controller).TogglePause},
	{rl.KeyOne, (*game.Controller).ToggleSound},
	{rl.KeyTwo, (*game.Controller).ToggleAngledReturn},
}

// Input polls raylib input once per frame and queues actions on a controller.
type Input struct {
	ctrl      *game.Controller
	cam       *camera.Camera
	inspector *inspector.Inspector

	drag     game.Drag
	dragging bool
}

// NewInput creates an input mapper. cam converts mouse positions to
// playfield coordinates; ins may be nil.
func NewInput(ctrl *game.Controller, cam *camera.Camera, ins *inspector.Inspector) *Input {
	return &Input{ctrl: ctrl, cam: cam, inspector: ins}
}

// Poll reads this frame's input. s is the most recent snapshot.
func (in *Input) Poll(s game.Snapshot) {
	for _, k := range actionKeys {
		if rl.IsKeyPressed(k.key) {
			k.action(in.ctrl)
		}
	}

	// Intents change only on key edges
	for _, k := range intentKeys {
		if rl.IsKeyPressed(k.key) {
			in.ctrl.SetPaddleIntent(k.side, k.dir, true)
		}
		if rl.IsKeyReleased(k.key) {
			in.ctrl.SetPaddleIntent(k.side, k.dir, false)
		}
	}

	if in.inspector != nil && rl.IsKeyPressed(rl.KeyI) {
		in.inspector.Toggle()
	}

	in.pollMouse(s)
}

func (in *Input) pollMouse(s game.Snapshot) {
	mouse := rl.GetMousePosition()
	wx, wy := in.cam.ScreenToWorld(mouse.X, mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		in.drag, in.dragging = game.BeginDrag(s, float64(wx), float64(wy))
	}
	if in.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		in.ctrl.DragPaddleTo(in.drag.Side, in.drag.Target(float64(wy)))
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		in.dragging = false
	}
}
