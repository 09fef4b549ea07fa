package mirror_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/Pix4D/mirror/mirror"
	"github.com/Pix4D/mirror/testhelp"
)

var baseConfig = mirror.Config{
	Src: "path1",
	Dst: "path2",
}

func TestConfigDirection(t *testing.T) {
	src, dst := baseConfig.Direction()
	qt.Assert(t, qt.Equals(src, "path1"))
	qt.Assert(t, qt.Equals(dst, "path2"))

	reversed := testhelp.MergeStructs(baseConfig, mirror.Config{Reverse: true})
	src, dst = reversed.Direction()
	qt.Assert(t, qt.Equals(src, "path2"))
	qt.Assert(t, qt.Equals(dst, "path1"))
}

func TestConfigValidateSuccess(t *testing.T) {
	type testCase struct {
		name string
		cfg  mirror.Config
		want mirror.Config
	}

	test := func(t *testing.T, tc testCase) {
		cfg := tc.cfg
		qt.Assert(t, qt.IsNil(cfg.Validate()))
		qt.Assert(t, qt.DeepEquals(cfg, tc.want))
	}

	testCases := []testCase{
		{
			name: "default log level",
			cfg:  baseConfig,
			want: testhelp.MergeStructs(baseConfig, mirror.Config{LogLevel: "warn"}),
		},
		{
			name: "explicit log level",
			cfg:  testhelp.MergeStructs(baseConfig, mirror.Config{LogLevel: "silent"}),
			want: testhelp.MergeStructs(baseConfig, mirror.Config{LogLevel: "silent"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { test(t, tc) })
	}
}

func TestConfigValidateFailure(t *testing.T) {
	type testCase struct {
		name    string
		cfg     mirror.Config
		wantErr string
	}

	test := func(t *testing.T, tc testCase) {
		qt.Assert(t, qt.ErrorMatches(tc.cfg.Validate(), tc.wantErr))
	}

	testCases := []testCase{
		{
			name:    "missing all",
			cfg:     mirror.Config{},
			wantErr: "config: missing keys: src, dst",
		},
		{
			name:    "missing dst",
			cfg:     mirror.Config{Src: "a"},
			wantErr: "config: missing keys: dst",
		},
		{
			name:    "bad log level",
			cfg:     testhelp.MergeStructs(baseConfig, mirror.Config{LogLevel: "trace"}),
			wantErr: "config: invalid log_level: trace",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { test(t, tc) })
	}
}

func TestConfigString(t *testing.T) {
	cfg := testhelp.MergeStructs(baseConfig, mirror.Config{Reverse: true, LogLevel: "info"})
	want := `src:        path1
dst:        path2
reverse:    true
verify:     false
log_level:  info`

	if diff := cmp.Diff(want, cfg.String()); diff != "" {
		t.Errorf("String(): (-want +have):\n%s", diff)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	type testCase struct {
		level string
		want  string
	}

	test := func(t *testing.T, tc testCase) {
		var out bytes.Buffer
		log, err := mirror.NewLogger(&out, tc.level)
		qt.Assert(t, qt.IsNil(err))

		log.Debug("d")
		log.Warn("w", "k", 1)

		qt.Assert(t, qt.Equals(out.String(), tc.want))
	}

	testCases := []testCase{
		{level: "debug", want: "level=DEBUG msg=d\nlevel=WARN msg=w k=1\n"},
		{level: "", want: "level=WARN msg=w k=1\n"},
		{level: "error", want: ""},
		{level: "silent", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) { test(t, tc) })
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := mirror.ParseLogLevel("info")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(level, slog.LevelInfo))

	_, err = mirror.ParseLogLevel("INFO")
	qt.Assert(t, qt.ErrorMatches(err, "invalid log_level: INFO"))
}

func writeFile(t *testing.T, path, contents string) string {
	t.Helper()
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(contents), 0o644)))
	return path
}

const profiles = `log_level = info
dst = /global/dst

[stm32]
src = ./final_project
dst = ../workspace/final_project
reverse = false

[back]
src = ./b
reverse = true
log_level = debug

[broken]
src = a
reverse = maybe

[nosrc]
reverse = true
`

func TestLoadProfileSuccess(t *testing.T) {
	type testCase struct {
		name    string
		profile string
		want    mirror.Config
	}

	path := writeFile(t, filepath.Join(t.TempDir(), "profiles.ini"), profiles)

	test := func(t *testing.T, tc testCase) {
		cfg, err := mirror.LoadProfile(path, tc.profile)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.DeepEquals(cfg, tc.want))
	}

	testCases := []testCase{
		{
			name:    "all keys in section",
			profile: "stm32",
			want: mirror.Config{
				Src:      "./final_project",
				Dst:      "../workspace/final_project",
				LogLevel: "info",
			},
		},
		{
			name:    "section overrides global",
			profile: "back",
			want: mirror.Config{
				Src:      "./b",
				Dst:      "/global/dst",
				Reverse:  true,
				LogLevel: "debug",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { test(t, tc) })
	}
}

func TestLoadProfileFailure(t *testing.T) {
	type testCase struct {
		name    string
		profile string
		wantErr string
	}

	path := writeFile(t, filepath.Join(t.TempDir(), "profiles.ini"), profiles)

	test := func(t *testing.T, tc testCase) {
		_, err := mirror.LoadProfile(path, tc.profile)
		qt.Assert(t, qt.ErrorMatches(err, tc.wantErr))
	}

	testCases := []testCase{
		{
			name:    "unknown profile",
			profile: "nope",
			wantErr: `profile nope \(.*\): not found`,
		},
		{
			name:    "section without src",
			profile: "nosrc",
			wantErr: `profile nosrc \(.*\): missing keys: src`,
		},
		{
			name:    "invalid reverse",
			profile: "broken",
			wantErr: `profile broken: invalid reverse: "maybe"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) { test(t, tc) })
	}
}

func TestLoadProfileUnknownNameIgnoresGlobalPaths(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "profiles.ini"), `src = /home/me/a
dst = /home/me/b

[stm32]
src = x
dst = y
`)

	cfg, err := mirror.LoadProfile(path, "stm23")

	qt.Assert(t, qt.ErrorMatches(err, `profile stm23 \(.*\): not found`))
	qt.Assert(t, qt.DeepEquals(cfg, mirror.Config{}))
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := mirror.LoadProfile(filepath.Join(t.TempDir(), "none.ini"), "x")

	qt.Assert(t, qt.ErrorMatches(err, "loading profiles: .*"))
}

func TestDefaultProfilePath(t *testing.T) {
	qt.Assert(t, qt.Equals(filepath.Base(mirror.DefaultProfilePath()), "profiles.ini"))
	qt.Assert(t, qt.Equals(filepath.Base(filepath.Dir(mirror.DefaultProfilePath())), "mirror"))
}
