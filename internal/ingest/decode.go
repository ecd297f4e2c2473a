package ingest

import (
	"fmt"

	"github.com/pagefit/pagefit/internal/types"
)

// rawPayload mirrors the extractor's JSON output shape.
type rawPayload struct {
	DocID          string    `json:"doc_id"`
	SourceFilename string    `json:"source_filename"`
	ExtractedAt    string    `json:"extracted_at"`
	Pages          []rawPage `json:"pages"`
}

type rawPage struct {
	PageIndex int          `json:"page_index"`
	WidthPt   float64      `json:"width_pt"`
	HeightPt  float64      `json:"height_pt"`
	Rotation  int          `json:"rotation"`
	Elements  []rawElement `json:"elements"`
	RenderPNG string       `json:"render_png"`
}

// rawElement is the union of all element fields; Type selects which ones
// are meaningful.
type rawElement struct {
	ID    string     `json:"id"`
	Type  string     `json:"type"`
	BBox  types.BBox `json:"bbox"`
	Order int        `json:"order"`

	// text
	Text  string           `json:"text"`
	Style *types.TextStyle `json:"style"`

	// image
	Src      string `json:"src"`
	WidthPx  int    `json:"width_px"`
	HeightPx int    `json:"height_px"`
	PHash    string `json:"phash"`

	// shape (emitted as "rect" by the extractor)
	FillColor   string  `json:"fill_color"`
	StrokeColor string  `json:"stroke_color"`
	StrokeWidth float64 `json:"stroke_width"`
}

// decodeElement converts a raw element dict into its typed variant.
func decodeElement(re rawElement) (types.Element, error) {
	base := types.ElementBase{
		ElementID:  re.ID,
		Box:        re.BBox,
		PaintOrder: re.Order,
	}
	switch re.Type {
	case "text":
		return &types.TextElement{ElementBase: base, Text: re.Text, Style: re.Style}, nil
	case "image":
		return &types.ImageElement{
			ElementBase: base,
			Src:         re.Src,
			WidthPx:     re.WidthPx,
			HeightPx:    re.HeightPx,
			PHash:       re.PHash,
		}, nil
	case "rect", "shape":
		return &types.ShapeElement{
			ElementBase: base,
			FillColor:   re.FillColor,
			StrokeColor: re.StrokeColor,
			StrokeWidth: re.StrokeWidth,
		}, nil
	default:
		return nil, fmt.Errorf("unknown element type %q", re.Type)
	}
}
