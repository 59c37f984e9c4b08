package config

// SystemDefaults returns the built-in configuration.
func SystemDefaults() *Config {
	return &Config{
		Output: OutputConfig{
			Path: "report.json",
		},
		Store: StoreConfig{
			Dir:       ".pyvet/runs",
			HistoryDB: ".pyvet/history.db",
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8710",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "pyvet",
			ServiceVersion: "0.1.0",
			Protocol:       "grpc",
			SampleRate:     1.0,
		},
	}
}
