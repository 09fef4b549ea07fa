package mirror

import (
	"fmt"
	"strings"
)

// Config is the configuration of one mirror invocation. It is filled from the command
// line, the environment or a profile file.
type Config struct {
	//
	// Mandatory
	//
	Src string
	Dst string
	//
	// Optional
	//
	Reverse  bool   // Copy Dst to Src instead.
	Verify   bool   // Compare the two trees after copying.
	LogLevel string // One of debug, info, warn, error, silent.
}

// DefaultLogLevel is used when Config.LogLevel is empty.
const DefaultLogLevel = "warn"

// Direction returns the effective source and destination: (Src, Dst), or (Dst, Src)
// if Reverse is set.
func (cfg Config) Direction() (src, dst string) {
	if cfg.Reverse {
		return cfg.Dst, cfg.Src
	}
	return cfg.Src, cfg.Dst
}

// Validate verifies the configuration and applies defaults.
func (cfg *Config) Validate() error {
	var mandatory []string
	if cfg.Src == "" {
		mandatory = append(mandatory, "src")
	}
	if cfg.Dst == "" {
		mandatory = append(mandatory, "dst")
	}
	if len(mandatory) > 0 {
		return fmt.Errorf("config: missing keys: %s", strings.Join(mandatory, ", "))
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// String renders Config on one line per key.
func (cfg Config) String() string {
	var bld strings.Builder

	fmt.Fprintln(&bld, "src:       ", cfg.Src)
	fmt.Fprintln(&bld, "dst:       ", cfg.Dst)
	fmt.Fprintln(&bld, "reverse:   ", cfg.Reverse)
	fmt.Fprintln(&bld, "verify:    ", cfg.Verify)
	fmt.Fprint(&bld, "log_level:  ", cfg.LogLevel)

	return bld.String()
}
