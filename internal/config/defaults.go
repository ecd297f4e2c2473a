package config

// DefaultWeights returns the default component weights. They already sum
// to 1, so normalization leaves them unchanged.
func DefaultWeights() Weights {
	return Weights{
		IoU:      0.36,
		Distance: 0.28,
		Style:    0.16,
		Anchor:   0.10,
		Hint:     0.10,
	}
}

// DefaultThresholds returns the default decision thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighMatch:      0.80,
		LowMatch:       0.50,
		DistanceScale:  3.0,
		HintTolerance:  0.02,
		ZoneRelaxDelta: 0.05,
		ReusePenalty:   0.08,
		EscalateBelow:  0.30,
	}
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: Scoring{
			Weights:    DefaultWeights(),
			Thresholds: DefaultThresholds(),
		},
		Engine: EngineCfg{
			DefaultZone: "body",
			MaxWorkers:  0,
			TemplateDir: "templates",
		},
	}
}
