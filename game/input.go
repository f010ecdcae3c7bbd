package game

import (
	"log/slog"
	"sync"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/systems"
)

// Direction is a paddle movement intent.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
)

// SetPaddleIntent sets or clears one movement intent of a paddle.
// The flag is consumed by the next paddle step.
func (g *Game) SetPaddleIntent(side components.Side, dir Direction, on bool) {
	pd := g.paddleOf(side)
	switch dir {
	case DirUp:
		pd.MoveUp = on
	case DirDown:
		pd.MoveDown = on
	}
}

// DragPaddleTo moves a paddle's top edge to y, clamped to the playfield.
func (g *Game) DragPaddleTo(side components.Side, y float64) {
	pos := g.posMap.Get(g.paddles[side])
	pos.Y = systems.ClampPaddleY(y, g.paddleOf(side).Length, g.cfg.Playfield.Height)
}

// Controller queues actions from input sources on other goroutines.
// Queued actions run in order at the start of the next Update.
type Controller struct {
	mu    sync.Mutex
	queue []func(*Game)
	spare []func(*Game)
}

func (c *Controller) push(action func(*Game)) {
	c.mu.Lock()
	c.queue = append(c.queue, action)
	c.mu.Unlock()
}

// drain applies all queued actions to g.
func (c *Controller) drain(g *Game) {
	c.mu.Lock()
	actions := c.queue
	c.queue = c.spare[:0]
	c.mu.Unlock()

	for i, action := range actions {
		action(g)
		actions[i] = nil
	}
	c.spare = actions[:0]
}

// StartGame queues Game.StartGame.
func (c *Controller) StartGame() { c.push((*Game).StartGame) }

// StopGame queues Game.StopGame.
func (c *Controller) StopGame() { c.push((*Game).StopGame) }

// TogglePause queues Game.TogglePause.
func (c *Controller) TogglePause() { c.push((*Game).TogglePause) }

// SetSoundOn queues Game.SetSoundOn.
func (c *Controller) SetSoundOn(on bool) {
	c.push(func(g *Game) { g.SetSoundOn(on) })
}

// SetAngledReturn queues Game.SetAngledReturn.
func (c *Controller) SetAngledReturn(on bool) {
	c.push(func(g *Game) { g.SetAngledReturn(on) })
}

// ToggleSound queues flipping the sound option.
func (c *Controller) ToggleSound() {
	c.push(func(g *Game) { g.SetSoundOn(!g.soundOn) })
}

// ToggleAngledReturn queues flipping the angled-return option.
func (c *Controller) ToggleAngledReturn() {
	c.push(func(g *Game) { g.SetAngledReturn(!g.angledReturn) })
}

// SetPaddleIntent queues Game.SetPaddleIntent.
func (c *Controller) SetPaddleIntent(side components.Side, dir Direction, on bool) {
	c.push(func(g *Game) { g.SetPaddleIntent(side, dir, on) })
}

// DragPaddleTo queues Game.DragPaddleTo.
func (c *Controller) DragPaddleTo(side components.Side, y float64) {
	c.push(func(g *Game) { g.DragPaddleTo(side, y) })
}

// SetPlayfieldSize queues Game.SetPlayfieldSize. A rejected size is logged
// and leaves the playfield unchanged.
func (c *Controller) SetPlayfieldSize(width, height float64) {
	c.push(func(g *Game) {
		if err := g.SetPlayfieldSize(width, height); err != nil {
			slog.Warn("playfield resize rejected", "error", err)
		}
	})
}

// Drag moves a paddle with a pointer, keeping the offset between the
// pointer and the paddle from when the drag began.
type Drag struct {
	Side     components.Side
	paddleY  float64
	pointerY float64
}

// BeginDrag starts dragging the paddle under pointer (x, y), if any.
func BeginDrag(s Snapshot, x, y float64) (Drag, bool) {
	side, ok := s.PaddleAt(x, y)
	if !ok {
		return Drag{}, false
	}
	return Drag{Side: side, paddleY: s.Paddles[side].Y, pointerY: y}, true
}

// Target returns the paddle top for a pointer now at y, before clamping.
func (d Drag) Target(y float64) float64 {
	return d.paddleY + (y - d.pointerY)
}
