package spectrum

// Config holds spectrum computation parameters.
type Config struct {
	FFTSize     int  // 0 selects the next power of two >= input length
	Rectangular bool // disable the Hann window
}

// Option mutates a Config.
type Option func(*Config)

// WithFFTSize sets a minimum transform size; it is rounded up to the next
// power of two and never below the input length.
func WithFFTSize(size int) Option {
	return func(cfg *Config) {
		if size > 0 {
			cfg.FFTSize = size
		}
	}
}

// WithRectangular disables the Hann window and transforms the raw samples.
func WithRectangular() Option {
	return func(cfg *Config) {
		cfg.Rectangular = true
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
