package config

const (
	defaultOutputDir    = "~/.local/share/aafcanon/output"
	defaultReportDir    = "~/.local/share/aafcanon/reports"
	defaultLogDir       = "~/.local/share/aafcanon/logs"
	defaultDatabasePath = "~/.local/share/aafcanon/canonical.db"
	defaultLogFormat    = "auto"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:    defaultOutputDir,
			ReportDir:    defaultReportDir,
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
