package gamemap

import "math"

// Reference map dimensions. Pin coordinates are stored as percentages of
// this plane, so the stored data is independent of any rendered size.
const (
	ImageWidth  = 4505.0
	ImageHeight = 3340.0
)

const (
	// MaxZoom caps the scale; the fit scale is the zoom-out floor.
	MaxZoom       = 6.0
	ZoomStep      = 0.5
	ZoomWheelStep = 0.15
	// DragThreshold is the pointer travel, in pixels on either axis,
	// beyond which a press becomes a pan instead of a placement.
	DragThreshold = 4.0
)

// Point is a position in screen (container) pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the affine transform from image pixels to screen pixels:
// screen = image*Scale + Pan.
type Viewport struct {
	Scale    float64 `json:"scale"`
	PanX     float64 `json:"pan_x"`
	PanY     float64 `json:"pan_y"`
	FitScale float64 `json:"fit_scale"`
}

// FitToContainer returns the viewport that letterboxes the full image
// into a cw×ch container: uniform scale, centered on both axes. The
// resulting scale becomes the viewport's zoom-out floor.
func FitToContainer(cw, ch float64) Viewport {
	scale := math.Min(cw/ImageWidth, ch/ImageHeight)
	return Viewport{
		Scale:    scale,
		PanX:     (cw - ImageWidth*scale) / 2,
		PanY:     (ch - ImageHeight*scale) / 2,
		FitScale: scale,
	}
}

// ZoomAt changes the scale by direction*step while keeping the image
// point under anchor stationary on screen. direction is +1 to zoom in,
// -1 to zoom out; the scale clamps to [FitScale, MaxZoom]. A zoom that
// clamps to the current scale leaves the viewport untouched. Buttons
// anchor at the container center, the wheel anchors at the cursor; the
// arithmetic is identical.
func (v Viewport) ZoomAt(anchor Point, direction int, step float64) Viewport {
	newScale := v.Scale + float64(direction)*step
	newScale = math.Min(MaxZoom, math.Max(v.FitScale, newScale))
	if newScale == v.Scale {
		return v
	}

	imgX := (anchor.X - v.PanX) / v.Scale
	imgY := (anchor.Y - v.PanY) / v.Scale

	v.PanX = anchor.X - imgX*newScale
	v.PanY = anchor.Y - imgY*newScale
	v.Scale = newScale
	return v
}

// PanBy translates the viewport by the given screen-pixel delta.
func (v Viewport) PanBy(dx, dy float64) Viewport {
	v.PanX += dx
	v.PanY += dy
	return v
}

// ScreenToImagePercent inverts the transform and normalizes to the
// percentage plane pins are stored in. Points that land outside the
// image report ok=false and are never clamped onto the edge.
func (v Viewport) ScreenToImagePercent(p Point) (xPct, yPct float64, ok bool) {
	imgX := (p.X - v.PanX) / v.Scale
	imgY := (p.Y - v.PanY) / v.Scale

	xPct = imgX / ImageWidth * 100
	yPct = imgY / ImageHeight * 100

	if xPct < 0 || xPct > 100 || yPct < 0 || yPct > 100 {
		return xPct, yPct, false
	}
	return xPct, yPct, true
}

// ImagePercentToScreen projects a stored pin position back into screen
// pixels for the current viewport.
func (v Viewport) ImagePercentToScreen(xPct, yPct float64) Point {
	return Point{
		X: xPct/100*ImageWidth*v.Scale + v.PanX,
		Y: yPct/100*ImageHeight*v.Scale + v.PanY,
	}
}

// GestureTracker classifies a pointer press as either a pan or a pin
// placement. Any movement past DragThreshold on either axis makes the
// gesture a pan and permanently suppresses placement for that press.
type GestureTracker struct {
	active   bool
	start    Point
	panStart Point
	moved    bool
}

// Down starts tracking a press at p with the viewport's current pan.
func (g *GestureTracker) Down(p Point, v Viewport) {
	g.active = true
	g.start = p
	g.panStart = Point{X: v.PanX, Y: v.PanY}
	g.moved = false
}

// Move pans the viewport to follow the pointer and returns the updated
// viewport. Crossing the threshold marks the gesture as a drag.
func (g *GestureTracker) Move(p Point, v Viewport) Viewport {
	if !g.active {
		return v
	}
	dx := p.X - g.start.X
	dy := p.Y - g.start.Y
	if math.Abs(dx) > DragThreshold || math.Abs(dy) > DragThreshold {
		g.moved = true
	}
	v.PanX = g.panStart.X + dx
	v.PanY = g.panStart.Y + dy
	return v
}

// Up ends the gesture. It reports a placement point only when the press
// never crossed the drag threshold.
func (g *GestureTracker) Up(p Point) (Point, bool) {
	if !g.active {
		return Point{}, false
	}
	g.active = false
	if g.moved {
		return Point{}, false
	}
	return p, true
}

// Dragging reports whether the current press has been classified as a pan.
func (g *GestureTracker) Dragging() bool {
	return g.active && g.moved
}
