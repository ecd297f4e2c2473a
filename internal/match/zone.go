package match

import "github.com/pagefit/pagefit/internal/types"

// ZoneClassifier assigns elements to named vertical bands from their
// normalized centroid. Bands are scanned in declaration order and the
// first band whose [y_start, y_end) interval contains the centroid wins;
// when bands overlap, the earlier declaration shadows the later one. That
// ordering rule is deliberate and templates relying on overlap should
// declare the band they want to win first.
type ZoneClassifier struct {
	bands       []types.ZoneBand
	defaultZone string
}

// NewZoneClassifier builds a classifier over the template's bands.
// Elements matching no band fall into defaultZone.
func NewZoneClassifier(bands []types.ZoneBand, defaultZone string) *ZoneClassifier {
	return &ZoneClassifier{bands: bands, defaultZone: defaultZone}
}

// Classify returns the zone name for a normalized centroid y.
func (zc *ZoneClassifier) Classify(cy float64) string {
	for _, band := range zc.bands {
		if band.Contains(cy) {
			return band.Name
		}
	}
	return zc.defaultZone
}
