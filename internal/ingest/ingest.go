// Package ingest loads extraction payloads produced by the upstream
// extraction service, validates them against the payload schema, and
// decodes the raw element dicts into typed page elements.
package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/pagefit/pagefit/internal/schema"
	"github.com/pagefit/pagefit/internal/types"
)

// Document is a validated, decoded extraction payload ready for
// resolution.
type Document struct {
	// RunID identifies this ingest run in logs and CLI output.
	RunID string

	// DocID is the extractor-assigned document identifier.
	DocID string

	// Source is the original filename recorded by the extractor.
	Source string

	Pages []types.Page
}

// Load reads an extraction payload from disk, validates it, and decodes
// it into a Document.
func Load(path string, logger *slog.Logger) (*Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction payload: %w", err)
	}
	return Parse(data, logger)
}

// Parse validates and decodes raw extraction payload JSON.
func Parse(data []byte, logger *slog.Logger) (*Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := schema.ValidateExtraction(data); err != nil {
		return nil, err
	}

	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode extraction payload: %w", err)
	}

	doc := &Document{
		RunID:  uuid.New().String(),
		DocID:  raw.DocID,
		Source: raw.SourceFilename,
		Pages:  make([]types.Page, 0, len(raw.Pages)),
	}

	for _, rp := range raw.Pages {
		page := types.Page{
			Index:    rp.PageIndex,
			Width:    rp.WidthPt,
			Height:   rp.HeightPt,
			Elements: make([]types.Element, 0, len(rp.Elements)),
		}
		for _, re := range rp.Elements {
			el, err := decodeElement(re)
			if err != nil {
				// Unknown element kinds are skipped, not fatal; newer
				// extractor versions may emit kinds this engine predates.
				logger.Warn("skipping element", "id", re.ID, "error", err)
				continue
			}
			page.Elements = append(page.Elements, el)
		}
		doc.Pages = append(doc.Pages, page)
	}

	logger.Info("payload ingested",
		"run_id", doc.RunID,
		"doc_id", doc.DocID,
		"pages", len(doc.Pages))
	return doc, nil
}

// Page returns the page with the given index, or false when absent.
func (d *Document) Page(index int) (types.Page, bool) {
	for _, p := range d.Pages {
		if p.Index == index {
			return p, true
		}
	}
	return types.Page{}, false
}
