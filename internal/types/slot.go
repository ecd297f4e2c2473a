package types

// SlotKind is the content kind a slot accepts.
type SlotKind string

const (
	SlotText  SlotKind = "text"
	SlotImage SlotKind = "image"
	SlotLink  SlotKind = "link"
)

// Accepts reports whether an element of the given kind can fill a slot of
// this kind. Link slots resolve from text elements: links carry their
// label as extracted text.
func (k SlotKind) Accepts(ek ElementKind) bool {
	switch k {
	case SlotText, SlotLink:
		return ek == ElementText
	case SlotImage:
		return ek == ElementImage
	}
	return false
}

// PatchPolicy selects the remediation mechanism applied when a slot needs
// patching.
type PatchPolicy string

const (
	// PatchSimpleReplace swaps the resolved value directly into the
	// template placeholder.
	PatchSimpleReplace PatchPolicy = "simple_replace"

	// PatchCSSAdjust replaces the value and locally adjusts the
	// placeholder's styling.
	PatchCSSAdjust PatchPolicy = "css_adjust"

	// PatchFragment rewrites the surrounding template fragment and always
	// goes through the external patch agent.
	PatchFragment PatchPolicy = "fragment_patch"

	// PatchFallbackAbsolute replaces the whole block with absolutely
	// positioned content, also via the patch agent.
	PatchFallbackAbsolute PatchPolicy = "fallback_absolute"
)

// Valid reports whether the policy is one of the known values.
func (p PatchPolicy) Valid() bool {
	switch p {
	case PatchSimpleReplace, PatchCSSAdjust, PatchFragment, PatchFallbackAbsolute:
		return true
	}
	return false
}

// StyleHints are the optional typographic expectations of a text slot.
// Nil pointers and empty strings mean "no expectation".
type StyleHints struct {
	FontSizeMin *float64 `json:"font_size_min,omitempty" yaml:"font_size_min,omitempty"`
	FontSizeMax *float64 `json:"font_size_max,omitempty" yaml:"font_size_max,omitempty"`
	FontWeight  string   `json:"font_weight,omitempty" yaml:"font_weight,omitempty"`
	ColorHint   string   `json:"color_hint,omitempty" yaml:"color_hint,omitempty"`
}

// GeoHints are optional geometric bounds on a slot's match, normalized
// page fractions except the pixel fields which apply to image intrinsics.
type GeoHints struct {
	MinXNorm      *float64 `json:"min_x_norm,omitempty" yaml:"min_x_norm,omitempty"`
	MaxXNorm      *float64 `json:"max_x_norm,omitempty" yaml:"max_x_norm,omitempty"`
	MinYNorm      *float64 `json:"min_y_norm,omitempty" yaml:"min_y_norm,omitempty"`
	MaxYNorm      *float64 `json:"max_y_norm,omitempty" yaml:"max_y_norm,omitempty"`
	MinWidthNorm  *float64 `json:"min_width_norm,omitempty" yaml:"min_width_norm,omitempty"`
	MaxWidthNorm  *float64 `json:"max_width_norm,omitempty" yaml:"max_width_norm,omitempty"`
	MinHeightNorm *float64 `json:"min_height_norm,omitempty" yaml:"min_height_norm,omitempty"`
	MaxHeightNorm *float64 `json:"max_height_norm,omitempty" yaml:"max_height_norm,omitempty"`
	MinWidthPx    *int     `json:"min_width_px,omitempty" yaml:"min_width_px,omitempty"`
	MaxWidthPx    *int     `json:"max_width_px,omitempty" yaml:"max_width_px,omitempty"`
	MinHeightPx   *int     `json:"min_height_px,omitempty" yaml:"min_height_px,omitempty"`
	MaxHeightPx   *int     `json:"max_height_px,omitempty" yaml:"max_height_px,omitempty"`
}

// Slot is one expected content placeholder in a template.
type Slot struct {
	Name        string      `json:"name" yaml:"name"`
	Kind        SlotKind    `json:"kind" yaml:"kind"`
	Zone        string      `json:"zone,omitempty" yaml:"zone,omitempty"`
	ExpectedBox BBox        `json:"expected_bbox_norm" yaml:"expected_bbox_norm"`
	Style       *StyleHints `json:"style_hints,omitempty" yaml:"style_hints,omitempty"`
	Geometry    *GeoHints   `json:"geometry_hints,omitempty" yaml:"geometry_hints,omitempty"`
	Anchors     []string    `json:"anchors,omitempty" yaml:"anchors,omitempty"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	PatchPolicy PatchPolicy `json:"patch_policy,omitempty" yaml:"patch_policy,omitempty"`
	Fallback    string      `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// ZoneBand is one named vertical band of the page, a half-open interval
// [y_start, y_end) of normalized y.
type ZoneBand struct {
	Name   string  `json:"name" yaml:"name"`
	YStart float64 `json:"y_start" yaml:"y_start"`
	YEnd   float64 `json:"y_end" yaml:"y_end"`
}

// Contains reports whether a normalized centroid y falls in the band.
func (z ZoneBand) Contains(cy float64) bool {
	return cy >= z.YStart && cy < z.YEnd
}

// Template is a named slot specification with its zone configuration.
type Template struct {
	Name  string     `json:"name" yaml:"name"`
	Zones []ZoneBand `json:"zones,omitempty" yaml:"zones,omitempty"`
	Slots []Slot     `json:"slots" yaml:"slots"`
}
