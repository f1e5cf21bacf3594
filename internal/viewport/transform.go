package viewport

import "math"

// PagingModel selects how page numbers contribute to vertical placement.
type PagingModel int

const (
	// PagingDiscrete renders a single page at a time.
	PagingDiscrete PagingModel = iota
	// PagingContinuous renders one scrolling surface split into virtual pages.
	PagingContinuous
)

func (m PagingModel) String() string {
	if m == PagingContinuous {
		return "continuous"
	}
	return "discrete"
}

// Unit tells the renderer how to read a Rect.
type Unit int

const (
	UnitPercent Unit = iota
	UnitPixel
)

func (u Unit) String() string {
	if u == UnitPixel {
		return "px"
	}
	return "%"
}

// MinScale is the smallest accepted render scale.
const MinScale = 0.1

// RectParams is a rectangle in natural page units plus the page and scale it
// applies to. PageNumber is 1-based.
type RectParams struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	PageNumber int
	Scale      float64
}

// DefaultRectParams returns the rectangle used for a freshly loaded document.
func DefaultRectParams() RectParams {
	return RectParams{X: 0, Y: 0, Width: 100, Height: 100, PageNumber: 1, Scale: 1.0}
}

// Clamped returns r with every field pulled into its valid range. NaN values
// fall back to the defaults.
func (r RectParams) Clamped() RectParams {
	def := DefaultRectParams()
	r.X = nonNegative(r.X, def.X)
	r.Y = nonNegative(r.Y, def.Y)
	r.Width = nonNegative(r.Width, def.Width)
	r.Height = nonNegative(r.Height, def.Height)
	if r.PageNumber < 1 {
		r.PageNumber = 1
	}
	switch {
	case math.IsNaN(r.Scale) || math.IsInf(r.Scale, 0) || r.Scale == 0:
		r.Scale = def.Scale
	case r.Scale < MinScale:
		r.Scale = MinScale
	}
	return r
}

func nonNegative(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if v < 0 {
		return 0
	}
	return v
}

// PageGeometry carries the sizes reported by the rendering side. Natural sizes
// are in page units; viewport sizes are the measured on-screen area.
type PageGeometry struct {
	NaturalWidth   float64
	NaturalHeight  float64
	ViewportWidth  float64
	ViewportHeight float64
}

// Rect is the overlay ready for drawing. With UnitPercent the fields are
// percentages of the natural page; with UnitPixel they are surface pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
	Unit   Unit
}

// Visible reports whether the rectangle has any area to draw.
func (r Rect) Visible() bool {
	return r.Width > 0 && r.Height > 0
}

// ToViewportRect maps rect from natural page space into the rendered
// viewport. An unknown natural size yields the zero Rect.
func ToViewportRect(rect RectParams, geom PageGeometry, model PagingModel) Rect {
	if !(geom.NaturalWidth > 0) || !(geom.NaturalHeight > 0) {
		return Rect{}
	}

	if model == PagingContinuous {
		page := rect.PageNumber
		if page < 1 {
			page = 1
		}
		return Rect{
			Left:   rect.X * rect.Scale,
			Top:    float64(page-1)*geom.ViewportHeight + rect.Y*rect.Scale,
			Width:  rect.Width * rect.Scale,
			Height: rect.Height * rect.Scale,
			Unit:   UnitPixel,
		}
	}

	return Rect{
		Left:   rect.X / geom.NaturalWidth * 100,
		Top:    rect.Y / geom.NaturalHeight * 100,
		Width:  rect.Width / geom.NaturalWidth * 100,
		Height: rect.Height / geom.NaturalHeight * 100,
		Unit:   UnitPercent,
	}
}

// ToPixels converts a percentage rectangle into pixels of an area of the
// given size. Pixel rectangles are returned unchanged.
func (r Rect) ToPixels(areaWidth, areaHeight float64) Rect {
	if r.Unit == UnitPixel {
		return r
	}
	return Rect{
		Left:   r.Left / 100 * areaWidth,
		Top:    r.Top / 100 * areaHeight,
		Width:  r.Width / 100 * areaWidth,
		Height: r.Height / 100 * areaHeight,
		Unit:   UnitPixel,
	}
}
