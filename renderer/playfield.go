// Package renderer draws game snapshots with raylib.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/game"
)

// Theme holds drawing colors and sizes.
type Theme struct {
	Background rl.Color
	Field      rl.Color
	Border     rl.Color
	CenterLine rl.Color
	Paddle     rl.Color
	PaddleHot  rl.Color // paddle with an active intent
	Ball       rl.Color
	BallRest   rl.Color
	Score      rl.Color
	Overlay    rl.Color

	ScoreFontSize   int32
	OverlayFontSize int32
	DashLength      float32
}

// DefaultTheme returns the default colors.
func DefaultTheme() Theme {
	return Theme{
		Background:      rl.Color{R: 12, G: 14, B: 18, A: 255},
		Field:           rl.Color{R: 20, G: 25, B: 30, A: 255},
		Border:          rl.Color{R: 60, G: 70, B: 80, A: 255},
		CenterLine:      rl.Color{R: 50, G: 60, B: 70, A: 255},
		Paddle:          rl.Color{R: 220, G: 220, B: 220, A: 255},
		PaddleHot:       rl.Color{R: 100, G: 200, B: 100, A: 255},
		Ball:            rl.White,
		BallRest:        rl.Gray,
		Score:           rl.Color{R: 150, G: 150, B: 150, A: 255},
		Overlay:         rl.Yellow,
		ScoreFontSize:   40,
		OverlayFontSize: 20,
		DashLength:      10,
	}
}

// Renderer draws the playfield, paddles, ball and scores.
type Renderer struct {
	Theme Theme
	cam   *camera.Camera
}

// New creates a renderer drawing through cam.
func New(cam *camera.Camera) *Renderer {
	return &Renderer{Theme: DefaultTheme(), cam: cam}
}

// Draw renders one frame of s. Call between rl.BeginDrawing and rl.EndDrawing.
func (r *Renderer) Draw(s game.Snapshot) {
	r.cam.SetWorld(float32(s.Width), float32(s.Height))

	rl.ClearBackground(r.Theme.Background)
	r.drawField(s)
	r.drawScores(s)
	for _, p := range s.Paddles {
		r.drawPaddle(p)
	}
	r.drawBall(s)
	r.drawOverlay(s)
}

// rect converts a playfield rectangle to screen space.
func (r *Renderer) rect(x, y, w, h float64) rl.Rectangle {
	sx, sy := r.cam.WorldToScreen(float32(x), float32(y))
	return rl.Rectangle{X: sx, Y: sy, Width: r.cam.Scale(float32(w)), Height: r.cam.Scale(float32(h))}
}

func (r *Renderer) drawField(s game.Snapshot) {
	field := r.rect(0, 0, s.Width, s.Height)
	rl.DrawRectangleRec(field, r.Theme.Field)
	rl.DrawRectangleLinesEx(field, 1, r.Theme.Border)

	// Dashed center line
	cx := field.X + field.Width/2
	dash := r.cam.Scale(r.Theme.DashLength)
	for y := field.Y; y < field.Y+field.Height; y += 2 * dash {
		end := y + dash
		if end > field.Y+field.Height {
			end = field.Y + field.Height
		}
		rl.DrawLineV(rl.Vector2{X: cx, Y: y}, rl.Vector2{X: cx, Y: end}, r.Theme.CenterLine)
	}
}

func (r *Renderer) drawScores(s game.Snapshot) {
	size := r.Theme.ScoreFontSize
	for _, side := range []components.Side{components.SideLeft, components.SideRight} {
		text := fmt.Sprintf("%d", s.Players[side].Score)
		// Quarter and three-quarter width, near the top
		qx := s.Width / 4
		if side == components.SideRight {
			qx = 3 * s.Width / 4
		}
		sx, sy := r.cam.WorldToScreen(float32(qx), float32(s.Height*0.05))
		w := rl.MeasureText(text, size)
		rl.DrawText(text, int32(sx)-w/2, int32(sy), size, r.Theme.Score)
	}
}

func (r *Renderer) drawPaddle(p game.PaddleView) {
	color := r.Theme.Paddle
	if p.MoveUp || p.MoveDown {
		color = r.Theme.PaddleHot
	}
	rl.DrawRectangleRec(r.rect(p.X, p.Y, p.Width, p.Length), color)
}

func (r *Renderer) drawBall(s game.Snapshot) {
	if !s.Running {
		return
	}
	color := r.Theme.Ball
	if s.Resting || s.Paused {
		color = r.Theme.BallRest
	}
	sx, sy := r.cam.WorldToScreen(float32(s.Ball.X), float32(s.Ball.Y))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r.cam.Scale(float32(s.Ball.Radius)), color)
}

func (r *Renderer) drawOverlay(s game.Snapshot) {
	var text string
	switch {
	case !s.Running:
		text = "Press SPACE to start"
	case s.Paused:
		text = "PAUSED"
	default:
		return
	}
	size := r.Theme.OverlayFontSize
	sx, sy := r.cam.WorldToScreen(float32(s.Width/2), float32(s.Height/2))
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(sx)-w/2, int32(sy)-size/2, size, r.Theme.Overlay)
}
