package mirror

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/adrg/xdg"
	"github.com/sasbury/mini"
)

// DefaultProfilePath returns the location of the profiles file when none is given:
// $XDG_CONFIG_HOME/mirror/profiles.ini.
func DefaultProfilePath() string {
	return filepath.Join(xdg.ConfigHome, "mirror", "profiles.ini")
}

// profileKeys are the keys of a profile, as read from the file.
type profileKeys struct {
	Src      string
	Dst      string
	Reverse  string
	LogLevel string
}

// LoadProfile returns the Config of profile name in the INI file at path.
//
// A profile is a section:
//
//	log_level = info
//
//	[stm32]
//	src = ./final_project
//	dst = ../STM32CubeIDE/workspace/final_project
//	reverse = false
//
// Keys outside any section are defaults for all the profiles.
// Relative paths are relative to the working directory, not to the file.
func LoadProfile(path, name string) (Config, error) {
	ini, err := mini.LoadConfiguration(path)
	if err != nil {
		return Config{}, fmt.Errorf("loading profiles: %w", err)
	}
	// Global keys alone never make a profile.
	if !slices.Contains(ini.SectionNames(), name) {
		return Config{}, fmt.Errorf("profile %s (%s): not found", name, path)
	}

	global := readKeys(func(key string) string { return ini.String(key, "") })
	section := readKeys(func(key string) string {
		return ini.StringFromSection(name, key, "")
	})
	// Section keys win; empty ones are filled from the global keys.
	if err := mergo.Merge(&section, global); err != nil {
		return Config{}, fmt.Errorf("profile %s: %w", name, err)
	}

	var missing []string
	if section.Src == "" {
		missing = append(missing, "src")
	}
	if section.Dst == "" {
		missing = append(missing, "dst")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("profile %s (%s): missing keys: %s",
			name, path, strings.Join(missing, ", "))
	}

	cfg := Config{
		Src:      section.Src,
		Dst:      section.Dst,
		LogLevel: section.LogLevel,
	}
	if section.Reverse != "" {
		cfg.Reverse, err = strconv.ParseBool(section.Reverse)
		if err != nil {
			return Config{}, fmt.Errorf("profile %s: invalid reverse: %q", name,
				section.Reverse)
		}
	}
	return cfg, nil
}

func readKeys(get func(key string) string) profileKeys {
	return profileKeys{
		Src:      get("src"),
		Dst:      get("dst"),
		Reverse:  get("reverse"),
		LogLevel: get("log_level"),
	}
}
