package editor

// Point is a position in display coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is the display area a plot is drawn in.
type Rect struct {
	Min Point
	Max Point
}

// NewRect returns the rectangle at (x, y) with the given size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		Min: Point{X: x, Y: y},
		Max: Point{X: x + width, Y: y + height},
	}
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Center() Point {
	return Point{
		X: (r.Min.X + r.Max.X) / 2,
		Y: (r.Min.Y + r.Max.Y) / 2,
	}
}

// Contains reports whether p lies within r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

const (
	// leftMarginRatio is the share of the half-width taken by the axis
	// chrome left of the plot.
	leftMarginRatio = 0.0888
	// widthRatio is the rect width divided by the plotted width.
	widthRatio = 1.1
)

// PlotArea returns where the data is drawn within rect: the x coordinate
// of progress 0 and the width spanning progress 0 to 1.
func PlotArea(rect Rect) (begin, width float64) {
	begin = rect.Min.X + (rect.Center().X-rect.Min.X)*leftMarginRatio
	width = rect.Width() / widthRatio

	return begin, width
}

// Progress maps x to the fraction of the plot left of it, clamped to
// [0, 1].
func Progress(x float64, rect Rect) float64 {
	begin, width := PlotArea(rect)
	if width <= 0 {
		return 0
	}

	return max(0, min((x-begin)/width, 1))
}
