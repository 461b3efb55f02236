package align

// Config holds alignment parameters.
type Config struct {
	Clip bool
}

// Option mutates a Config.
type Option func(*Config)

// WithClip restricts both timelines to their overlapping instant range
// before merging, so no output row falls outside the span of either series.
func WithClip() Option {
	return func(cfg *Config) {
		cfg.Clip = true
	}
}

func applyOptions(opts ...Option) Config {
	var cfg Config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
