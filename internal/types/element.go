// Package types holds the shared data model: page elements as decoded
// from extraction payloads, slot templates, and the match report emitted
// by the resolution engine.
package types

// ElementKind discriminates the concrete element variants.
type ElementKind string

const (
	ElementText  ElementKind = "text"
	ElementImage ElementKind = "image"
	ElementShape ElementKind = "shape"
)

// Element is one extracted page element.
type Element interface {
	ID() string
	Kind() ElementKind
	Bounds() BBox
	Order() int
}

// ElementBase carries the fields common to every element variant.
type ElementBase struct {
	ElementID  string
	Box        BBox
	PaintOrder int
}

func (e *ElementBase) ID() string   { return e.ElementID }
func (e *ElementBase) Bounds() BBox { return e.Box }
func (e *ElementBase) Order() int   { return e.PaintOrder }

// TextStyle is the extractor's style record for a text element.
type TextStyle struct {
	FontFamily string  `json:"font_family" yaml:"font_family"`
	FontSize   float64 `json:"font_size" yaml:"font_size"`
	FontWeight string  `json:"font_weight" yaml:"font_weight"`
	FontStyle  string  `json:"font_style" yaml:"font_style"`
	Color      string  `json:"color" yaml:"color"`
}

// TextElement is a run of text with optional style attributes.
type TextElement struct {
	ElementBase
	Text  string
	Style *TextStyle
}

func (e *TextElement) Kind() ElementKind { return ElementText }

// ImageElement is a placed raster with its intrinsic pixel dimensions.
type ImageElement struct {
	ElementBase
	Src      string
	WidthPx  int
	HeightPx int
	PHash    string
}

func (e *ImageElement) Kind() ElementKind { return ElementImage }

// ShapeElement is a drawn vector shape, typically a filled rectangle.
type ShapeElement struct {
	ElementBase
	FillColor   string
	StrokeColor string
	StrokeWidth float64
}

func (e *ShapeElement) Kind() ElementKind { return ElementShape }

// Visible reports whether the shape paints anything: a fill or a stroke.
func (e *ShapeElement) Visible() bool {
	if e.FillColor != "" && e.FillColor != "none" {
		return true
	}
	return e.StrokeColor != "" && e.StrokeColor != "none"
}

// Page is one extracted page with its elements in extraction order.
type Page struct {
	Index    int
	Width    float64
	Height   float64
	Elements []Element
}
