package config

// OtelConfig holds the tracing settings. An empty ExporterEndpoint disables
// tracing and installs a no-op provider.
type OtelConfig struct {
	// ExporterEndpoint is the OTLP/HTTP collector URL, e.g. http://localhost:4318.
	ExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	// ServiceName identifies this process in trace backends.
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"nomgrid-server"`

	// SamplingRate is the head-sampling ratio in [0,1]; 1.0 samples everything.
	SamplingRate float64 `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
}

// Enabled reports whether an OTLP endpoint is configured.
func (c OtelConfig) Enabled() bool {
	return c.ExporterEndpoint != ""
}
