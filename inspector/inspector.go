// Package inspector draws a debug panel with the live ball, paddle and rally state.
package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/game"
)

// Panel dimensions
const (
	PanelWidth   = 280
	PanelPadding = 10
	HeaderHeight = 26
	SectionGap   = 6
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 230}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

type ballFields struct {
	X       float64 `inspect:"label,fmt:%.1f"`
	Y       float64 `inspect:"label,fmt:%.1f"`
	SpeedX  float64 `inspect:"label,fmt:%+.2f"`
	SpeedY  float64 `inspect:"label,fmt:%+.2f"`
	Heading float64 `inspect:"angle"`
}

type rallyFields struct {
	Hits       int     `inspect:"label"`
	BallRate   float64 `inspect:"bar,max:4,name:Ball rate"`
	PaddleRate float64 `inspect:"bar,max:4,name:Paddle rate"`
	Resting    bool
	Angled     bool
}

type paddleFields struct {
	Y        float64 `inspect:"label,fmt:%.1f"`
	MoveUp   bool    `inspect:"bool,name:Up"`
	MoveDown bool    `inspect:"bool,name:Down"`
}

type section struct {
	title  string
	fields []Field
}

// Inspector is a toggleable panel anchored to the top-right corner.
type Inspector struct {
	visible bool
	panelX  int32
	panelY  int32
}

// NewInspector creates a hidden inspector.
func NewInspector(screenWidth int32) *Inspector {
	ins := &Inspector{panelY: 10}
	ins.Resize(screenWidth)
	return ins
}

// Resize re-anchors the panel.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Toggle shows or hides the panel.
func (ins *Inspector) Toggle() {
	ins.visible = !ins.visible
}

// Visible reports whether the panel is shown.
func (ins *Inspector) Visible() bool {
	return ins.visible
}

func sections(s game.Snapshot) []section {
	left := s.Paddles[components.SideLeft]
	right := s.Paddles[components.SideRight]
	return []section{
		{"Ball", ExtractFields(ballFields{
			X:       s.Ball.X,
			Y:       s.Ball.Y,
			SpeedX:  s.Ball.SpeedX,
			SpeedY:  s.Ball.SpeedY,
			Heading: math.Atan2(s.Ball.SpeedY, s.Ball.SpeedX),
		})},
		{"Rally", ExtractFields(rallyFields{
			Hits:       s.RallyHits,
			BallRate:   s.BallRate,
			PaddleRate: s.PaddleRate,
			Resting:    s.Resting,
			Angled:     s.AngledReturn,
		})},
		{"Left paddle", ExtractFields(paddleFields{Y: left.Y, MoveUp: left.MoveUp, MoveDown: left.MoveDown})},
		{"Right paddle", ExtractFields(paddleFields{Y: right.Y, MoveUp: right.MoveUp, MoveDown: right.MoveDown})},
	}
}

// fieldHeight matches the heights returned by the widgets.
func fieldHeight(f Field) int32 {
	if f.Widget == WidgetAngle {
		return 44
	}
	return 18
}

// Draw renders the panel if visible.
func (ins *Inspector) Draw(s game.Snapshot) {
	if !ins.visible {
		return
	}

	secs := sections(s)
	height := int32(HeaderHeight + PanelPadding)
	for _, sec := range secs {
		height += 18 + SectionGap
		for _, f := range sec.fields {
			height += fieldHeight(f)
		}
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("Inspector", ins.panelX+PanelPadding, ins.panelY+6, 16, ColorHeaderText)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding/2
	for _, sec := range secs {
		rl.DrawText(sec.title, x, y, 14, ColorSectionText)
		y += 18
		for _, f := range sec.fields {
			y += DrawField(x+8, y, f)
		}
		y += SectionGap
	}
}
