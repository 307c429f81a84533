package fixture

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Options controls which cases the engine runs and how it reports them
type Options struct {
	Verbose     bool
	GroupFilter string
	NameFilter  string
	Repeat      int
}

// DefaultOptions runs every case once
func DefaultOptions() Options {
	return Options{Repeat: 1}
}

// ParseOptions interprets the engine arguments:
//
//	-v            verbose output
//	-g <pattern>  only run groups matching pattern
//	-n <pattern>  only run cases matching pattern
//	-r <count>    repeat the whole run count times
func ParseOptions(args []string) (Options, error) {
	opts := DefaultOptions()

	fs := pflag.NewFlagSet("fixture", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "print run and group headers")
	fs.StringVarP(&opts.GroupFilter, "group", "g", "", "only run groups matching this pattern")
	fs.StringVarP(&opts.NameFilter, "name", "n", "", "only run cases matching this pattern")
	fs.IntVarP(&opts.Repeat, "repeat", "r", 1, "number of times to run the suite")

	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("invalid arguments: %w", err)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("invalid arguments: unexpected %q", fs.Arg(0))
	}
	if opts.Repeat < 1 {
		return opts, fmt.Errorf("invalid arguments: repeat count must be at least 1, got %d", opts.Repeat)
	}
	return opts, nil
}

// Usage describes the engine arguments
func Usage() string {
	return "Usage: [-v] [-g GROUP] [-n NAME] [-r COUNT]\n" +
		"  -v          verbose output\n" +
		"  -g GROUP    only run groups matching GROUP (substring or wildcard)\n" +
		"  -n NAME     only run cases matching NAME (substring or wildcard)\n" +
		"  -r COUNT    repeat the whole run COUNT times\n"
}
