package match

import (
	"github.com/pagefit/pagefit/internal/config"
	"github.com/pagefit/pagefit/internal/types"
)

// Test pages are 100x100, so page-space coordinates are normalized
// coordinates times 100.
const testPageSize = 100.0

func makeText(id string, box types.BBox, order int, text string) *types.TextElement {
	return &types.TextElement{
		ElementBase: types.ElementBase{ElementID: id, Box: box, PaintOrder: order},
		Text:        text,
	}
}

func makeStyledText(id string, box types.BBox, order int, text string, style *types.TextStyle) *types.TextElement {
	el := makeText(id, box, order, text)
	el.Style = style
	return el
}

func makeImage(id string, box types.BBox, order int, src string, wpx, hpx int) *types.ImageElement {
	return &types.ImageElement{
		ElementBase: types.ElementBase{ElementID: id, Box: box, PaintOrder: order},
		Src:         src,
		WidthPx:     wpx,
		HeightPx:    hpx,
	}
}

func makeShape(id string, box types.BBox, order int, fill, stroke string) *types.ShapeElement {
	return &types.ShapeElement{
		ElementBase: types.ElementBase{ElementID: id, Box: box, PaintOrder: order},
		FillColor:   fill,
		StrokeColor: stroke,
	}
}

func testPage(elements ...types.Element) types.Page {
	return types.Page{Index: 0, Width: testPageSize, Height: testPageSize, Elements: elements}
}

// box scales normalized coordinates to test page space.
func box(x0, y0, x1, y1 float64) types.BBox {
	return types.BBox{X0: x0 * testPageSize, Y0: y0 * testPageSize, X1: x1 * testPageSize, Y1: y1 * testPageSize}
}

// nbox is a normalized box literal.
func nbox(x0, y0, x1, y1 float64) types.BBox {
	return types.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func f64(v float64) *float64 { return &v }

func intp(v int) *int { return &v }

func testEngine() *Engine {
	return NewEngine(EngineConfig{Scoring: config.DefaultConfig().Scoring})
}

func headerBodyZones() []types.ZoneBand {
	return []types.ZoneBand{
		{Name: "header", YStart: 0, YEnd: 0.2},
		{Name: "body", YStart: 0.2, YEnd: 0.8},
		{Name: "footer", YStart: 0.8, YEnd: 1.0},
	}
}
