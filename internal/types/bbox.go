package types

import "math"

// BBox is an axis-aligned bounding box. Coordinates are page-space points
// as emitted by the extractor, or fractions of the page after Normalize.
type BBox struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

func (b BBox) Width() float64  { return b.X1 - b.X0 }
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Area returns the box area, 0 for degenerate or inverted boxes.
func (b BBox) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IsZero reports whether the box is the zero value.
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// Centroid returns the center point of the box.
func (b BBox) Centroid() (float64, float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

// Normalize converts page-space coordinates into fractions of the page,
// clamped to [0,1]. A non-positive page dimension yields the zero box.
func (b BBox) Normalize(pageWidth, pageHeight float64) BBox {
	if pageWidth <= 0 || pageHeight <= 0 {
		return BBox{}
	}
	return BBox{
		X0: clamp01(b.X0 / pageWidth),
		Y0: clamp01(b.Y0 / pageHeight),
		X1: clamp01(b.X1 / pageWidth),
		Y1: clamp01(b.Y1 / pageHeight),
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// IoU returns the intersection-over-union of two boxes: 1 for identical
// boxes, 0 when they do not overlap or either has zero area.
func (b BBox) IoU(other BBox) float64 {
	ix0 := math.Max(b.X0, other.X0)
	iy0 := math.Max(b.Y0, other.Y0)
	ix1 := math.Min(b.X1, other.X1)
	iy1 := math.Min(b.Y1, other.Y1)
	if ix1 <= ix0 || iy1 <= iy0 {
		return 0
	}
	inter := (ix1 - ix0) * (iy1 - iy0)
	union := b.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// CentroidDistance returns the euclidean distance between centroids.
func (b BBox) CentroidDistance(other BBox) float64 {
	ax, ay := b.Centroid()
	bx, by := other.Centroid()
	return math.Hypot(bx-ax, by-ay)
}
