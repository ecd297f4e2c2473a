package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds pagefit configuration.
// Stored at: ./config.yaml or ~/.pagefit/config.yaml
type Config struct {
	Scoring Scoring   `mapstructure:"scoring" yaml:"scoring"`
	Engine  EngineCfg `mapstructure:"engine" yaml:"engine"`
}

// Scoring holds the component weights and decision thresholds for the
// multi-factor scorer. Any subset may be overridden; unspecified values
// fall back to defaults and weights are renormalized at load.
type Scoring struct {
	Weights    Weights    `mapstructure:"weights" yaml:"weights"`
	Thresholds Thresholds `mapstructure:"thresholds" yaml:"thresholds"`
}

// Weights are the five non-negative component weights. The engine always
// sees the normalized form, where the positive subset sums to exactly 1.
type Weights struct {
	IoU      float64 `mapstructure:"iou" yaml:"iou"`
	Distance float64 `mapstructure:"distance" yaml:"distance"`
	Style    float64 `mapstructure:"style" yaml:"style"`
	Anchor   float64 `mapstructure:"anchor" yaml:"anchor"`
	Hint     float64 `mapstructure:"hint" yaml:"hint"`
}

// Normalized returns the weights scaled so the positive subset sums to 1.
// Negative values count as zero. An all-zero set falls back to defaults.
func (w Weights) Normalized() Weights {
	n := Weights{
		IoU:      positive(w.IoU),
		Distance: positive(w.Distance),
		Style:    positive(w.Style),
		Anchor:   positive(w.Anchor),
		Hint:     positive(w.Hint),
	}
	sum := n.IoU + n.Distance + n.Style + n.Anchor + n.Hint
	if sum == 0 {
		return DefaultWeights()
	}
	n.IoU /= sum
	n.Distance /= sum
	n.Style /= sum
	n.Anchor /= sum
	n.Hint /= sum
	return n
}

func positive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Thresholds are the decision constants of the resolver.
type Thresholds struct {
	// HighMatch is the minimum adjusted score for matched_high.
	HighMatch float64 `mapstructure:"high_match" yaml:"high_match"`

	// LowMatch is the minimum adjusted score for matched_low.
	LowMatch float64 `mapstructure:"low_match" yaml:"low_match"`

	// DistanceScale converts centroid distance to a [0,1] penalty; at the
	// default 3.0 a centroid offset of a third of the page scores zero.
	DistanceScale float64 `mapstructure:"distance_scale" yaml:"distance_scale"`

	// HintTolerance is the normalized slack allowed before a geometric
	// hint counts as violated.
	HintTolerance float64 `mapstructure:"hint_tolerance" yaml:"hint_tolerance"`

	// ZoneRelaxDelta is the centroid-y slack for the relaxed_zone search tier.
	ZoneRelaxDelta float64 `mapstructure:"zone_relax_delta" yaml:"zone_relax_delta"`

	// ReusePenalty is subtracted from a candidate's score when it has
	// already been assigned to an earlier slot in the same pass.
	ReusePenalty float64 `mapstructure:"reuse_penalty" yaml:"reuse_penalty"`

	// EscalateBelow forces escalation to the patch agent when the adjusted
	// score falls under it.
	EscalateBelow float64 `mapstructure:"escalate_below" yaml:"escalate_below"`
}

// EngineCfg holds non-scoring engine settings.
type EngineCfg struct {
	// DefaultZone is assigned to elements whose centroid matches no band.
	DefaultZone string `mapstructure:"default_zone" yaml:"default_zone"`

	// MaxWorkers caps concurrent page resolution. Zero means one worker
	// per CPU.
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"`

	// TemplateDir is where slot templates are loaded from.
	TemplateDir string `mapstructure:"template_dir" yaml:"template_dir"`
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	t := c.Scoring.Thresholds
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"high_match", t.HighMatch},
		{"low_match", t.LowMatch},
		{"distance_scale", t.DistanceScale},
		{"hint_tolerance", t.HintTolerance},
		{"zone_relax_delta", t.ZoneRelaxDelta},
		{"reuse_penalty", t.ReusePenalty},
		{"escalate_below", t.EscalateBelow},
	} {
		if v.value < 0 {
			return fmt.Errorf("%w: threshold %s must be non-negative, got %v", ErrInvalidConfig, v.name, v.value)
		}
	}
	if t.HighMatch < t.LowMatch {
		return fmt.Errorf("%w: high_match (%v) must be >= low_match (%v)", ErrInvalidConfig, t.HighMatch, t.LowMatch)
	}
	if c.Engine.MaxWorkers < 0 {
		return fmt.Errorf("%w: max_workers must be non-negative, got %d", ErrInvalidConfig, c.Engine.MaxWorkers)
	}
	return nil
}
