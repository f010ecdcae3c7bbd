// Package camera maps the playfield onto the window.
package camera

// Camera fits the playfield into the viewport, preserving aspect ratio and
// centering it with a margin on the longer axis.
type Camera struct {
	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (playfield size)
	WorldW, WorldH float32

	// Screen pixels kept free around the playfield
	Margin float32

	// Derived by fit
	Zoom             float32
	OffsetX, OffsetY float32
}

// New creates a camera fitting a worldW x worldH playfield into the viewport.
func New(viewportW, viewportH, worldW, worldH, margin float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		Margin:    margin,
	}
	c.fit()
	return c
}

// fit recomputes zoom and offsets.
func (c *Camera) fit() {
	availW := c.ViewportW - 2*c.Margin
	availH := c.ViewportH - 2*c.Margin
	if availW <= 0 || availH <= 0 || c.WorldW <= 0 || c.WorldH <= 0 {
		c.Zoom = 1
		c.OffsetX, c.OffsetY = 0, 0
		return
	}

	c.Zoom = minf(availW/c.WorldW, availH/c.WorldH)
	c.OffsetX = (c.ViewportW - c.WorldW*c.Zoom) / 2
	c.OffsetY = (c.ViewportH - c.WorldH*c.Zoom) / 2
}

// WorldToScreen converts playfield coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.OffsetX + wx*c.Zoom, c.OffsetY + wy*c.Zoom
}

// ScreenToWorld converts screen coordinates to playfield coordinates.
// Points outside the playfield map outside [0, WorldW] x [0, WorldH].
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return (sx - c.OffsetX) / c.Zoom, (sy - c.OffsetY) / c.Zoom
}

// Scale converts a playfield length to screen pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// Contains reports whether a screen point lies over the playfield.
func (c *Camera) Contains(sx, sy float32) bool {
	wx, wy := c.ScreenToWorld(sx, sy)
	return wx >= 0 && wx <= c.WorldW && wy >= 0 && wy <= c.WorldH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
}

// SetWorld updates the playfield dimensions.
func (c *Camera) SetWorld(worldW, worldH float32) {
	if worldW == c.WorldW && worldH == c.WorldH {
		return
	}
	c.WorldW = worldW
	c.WorldH = worldH
	c.fit()
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
