package loudness

const (
	defaultBlockSeconds = 0.4
	defaultOverlap      = 0.75

	minBlockSeconds = 0.01
	maxBlockSeconds = 10.0
	maxOverlap      = 0.95
)

// Config defines the block layout of the LUFS estimate.
type Config struct {
	BlockSeconds float64
	Overlap      float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns 400 ms blocks with 75 % overlap.
func DefaultConfig() Config {
	return Config{
		BlockSeconds: defaultBlockSeconds,
		Overlap:      defaultOverlap,
	}
}

// WithBlockSeconds sets the block length. Values outside [0.01, 10] are
// ignored.
func WithBlockSeconds(seconds float64) Option {
	return func(cfg *Config) {
		if seconds >= minBlockSeconds && seconds <= maxBlockSeconds {
			cfg.BlockSeconds = seconds
		}
	}
}

// WithOverlap sets the block overlap fraction. Values outside [0, 0.95] are
// ignored.
func WithOverlap(overlap float64) Option {
	return func(cfg *Config) {
		if overlap >= 0 && overlap <= maxOverlap {
			cfg.Overlap = overlap
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
