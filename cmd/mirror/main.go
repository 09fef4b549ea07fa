// Command mirror replaces a destination directory with a full copy of a source
// directory, optionally in the reverse direction.
//
//	mirror <source_folder> <destination_folder> [--reverse]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	arg "github.com/alexflint/go-arg"

	"github.com/Pix4D/mirror/mirror"
)

type args struct {
	Src      string `arg:"positional,required" help:"source folder"`
	Dst      string `arg:"positional,required" help:"destination folder"`
	Reverse  bool   `help:"copy destination_folder to source_folder instead"`
	Verify   bool   `help:"compare the two trees after copying"`
	LogLevel string `arg:"--log-level,env:MIRROR_LOG_LEVEL" default:"warn" help:"one of debug, info, warn, error, silent"`
}

func (args) Version() string {
	return mirror.BuildInfo()
}

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

// run returns the exit status: 0 success, 1 runtime failure, 2 usage error.
func run(out io.Writer, logOut io.Writer, argv []string) int {
	var args args
	parser, err := arg.NewParser(arg.Config{Program: "mirror"}, &args)
	if err != nil {
		fmt.Fprintf(logOut, "Error: %s\n", err)
		return 1
	}
	switch err := parser.Parse(argv); {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(out)
		return 0
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(out, args.Version())
		return 0
	case err != nil:
		parser.WriteUsage(logOut)
		fmt.Fprintf(logOut, "error: %s\n", err)
		return 2
	}

	cfg := mirror.Config{
		Src:      args.Src,
		Dst:      args.Dst,
		Reverse:  args.Reverse,
		Verify:   args.Verify,
		LogLevel: args.LogLevel,
	}
	return execute(out, logOut, cfg)
}

func execute(out io.Writer, logOut io.Writer, cfg mirror.Config) int {
	log, err := mirror.NewLogger(logOut, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(logOut, "Error: %s\n", err)
		return 1
	}
	if _, err := mirror.Run(log, out, cfg); err != nil {
		// Run already told the user on out.
		if !errors.Is(err, mirror.ErrSourceNotFound) {
			fmt.Fprintf(logOut, "Error: %s\n", err)
		}
		return 1
	}
	return 0
}
