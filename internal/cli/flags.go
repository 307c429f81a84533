package cli

import "optest/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile     string
	OutputFile     string
	IgnoreFailures bool
	TestCases      bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:     f.ConfigFile,
		OutputFile:     f.OutputFile,
		IgnoreFailures: f.IgnoreFailures,
		TestCases:      f.TestCases,
	}
}
