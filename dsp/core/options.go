package core

// DefaultChunkSize is the number of work units processed between yields.
const DefaultChunkSize = 16384

// ProgressSink receives progress notifications in percent [0, 100].
// It is purely observational and never affects numeric results.
type ProgressSink func(percent float64, message string)

// ProcessorConfig defines common scheduling settings for transforms.
type ProcessorConfig struct {
	ChunkSize int
	Progress  ProgressSink
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults suitable for offline processing.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		ChunkSize: DefaultChunkSize,
	}
}

// WithChunkSize sets how many work units run between cooperative yields.
func WithChunkSize(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if n > 0 {
			cfg.ChunkSize = n
		}
	}
}

// WithProgress installs a progress sink.
func WithProgress(sink ProgressSink) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Progress = sink
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
