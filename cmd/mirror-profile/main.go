// Command mirror-profile mirrors the source and destination folders of a profile
// read from an INI file.
//
//	mirror-profile [--config PATH] [--reverse] <profile>
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
	Profile  string `arg:"positional,required,env:MIRROR_PROFILE" help:"name of the profile (section of the config file)"`
	Config   string `arg:"--config,env:MIRROR_CONFIG" help:"profiles file [default: $XDG_CONFIG_HOME/mirror/profiles.ini]"`
	Reverse  bool   `help:"force reverse = true for this run"`
	Verify   bool   `help:"compare the two trees after copying"`
	LogLevel string `arg:"--log-level,env:MIRROR_LOG_LEVEL" help:"one of debug, info, warn, error, silent; overrides the profile"`
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
	parser, err := arg.NewParser(arg.Config{Program: "mirror-profile"}, &args)
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

	if args.Config == "" {
		args.Config = mirror.DefaultProfilePath()
	}
	cfg, err := mirror.LoadProfile(args.Config, args.Profile)
	if err != nil {
		fmt.Fprintf(logOut, "Error: %s\n", err)
		return 1
	}
	if args.Reverse {
		cfg.Reverse = true
	}
	if args.Verify {
		cfg.Verify = true
	}
	if args.LogLevel != "" {
		cfg.LogLevel = args.LogLevel
	}

	log, err := mirror.NewLogger(logOut, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(logOut, "Error: %s\n", err)
		return 1
	}
	if _, err := mirror.Run(log, out, cfg); err != nil {
		if !errors.Is(err, mirror.ErrSourceNotFound) {
			fmt.Fprintf(logOut, "Error: %s\n", err)
		}
		return 1
	}
	return 0
}
