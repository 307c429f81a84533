package config

const (
	// DefaultProjectPath is the directory the output directory is resolved against
	DefaultProjectPath = "."
	// DefaultConfigFile is read when present; a missing default file is not an error
	DefaultConfigFile = "optest.yaml"
	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
	// DefaultOutputFile is the capture file written by the run command
	DefaultOutputFile = "output.txt"
	// DefaultOutputDir is the directory holding the capture file
	DefaultOutputDir = "build/test-results"
	// DefaultStats prints the per-group stats table after a run
	DefaultStats = true
)

// Environment variables overriding file configuration
const (
	EnvConfigFile     = "OPTEST_CONFIG"
	EnvOutputDir      = "OPTEST_OUTPUT_DIR"
	EnvOutputFile     = "OPTEST_OUTPUT_FILE"
	EnvIgnoreFailures = "OPTEST_IGNORE_FAILURES"
	EnvMetricsFile    = "OPTEST_METRICS_FILE"
	EnvStats          = "OPTEST_STATS"
	EnvProgress       = "OPTEST_PROGRESS"
)
