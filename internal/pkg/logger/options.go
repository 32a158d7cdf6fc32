package logger

// Option overrides one field of a Config, typically from a command line flag
type Option func(*Config)

// WithLevel sets the log level
func WithLevel(level string) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithFormat sets the log format (json or console)
func WithFormat(format string) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithOutput sets the log output
func WithOutput(output string) Option {
	return func(c *Config) {
		c.Output = output
	}
}

// WithFilename sets the log file and switches console-only output to file
func WithFilename(filename string) Option {
	return func(c *Config) {
		c.File.Filename = filename
		if c.Output == OutputStderr {
			c.Output = OutputFile
		}
	}
}

// Apply returns a copy of cfg with opts applied
func Apply(cfg *Config, opts ...Option) *Config {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := *cfg
	for _, opt := range opts {
		opt(&out)
	}
	return &out
}
