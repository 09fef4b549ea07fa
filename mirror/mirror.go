// Package mirror replaces a destination directory tree with a full copy of a source
// directory tree.
//
// The operation has two phases, Clear and CopyTree, both exported so that they can be
// used (and tested) on their own. Mirror runs them in sequence after validating the
// source. The operation is not transactional: if the copy fails or the process is
// killed, the destination is left partially populated.
package mirror

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pix4D/mirror/tree"
)

// Stats counts what CopyTree copied. Dirs includes the root directory.
type Stats struct {
	Dirs  int
	Files int
	Bytes int64
}

// Run is the complete sequence of one invocation: validate cfg, resolve the
// direction, announce it on out, mirror and report completion on out.
func Run(log *slog.Logger, out io.Writer, cfg Config) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	src, dst := cfg.Direction()
	log.Debug("started", "config", cfg)

	fmt.Fprintf(out, "Copying %s -> %s\n", src, dst)
	stats, err := Mirror(log, src, dst)
	if errors.Is(err, ErrSourceNotFound) {
		fmt.Fprintf(out, "Source folder '%s' does not exist.\n", src)
		return stats, err
	}
	if err != nil {
		return stats, err
	}

	if cfg.Verify {
		if err := Verify(src, dst); err != nil {
			return stats, err
		}
		log.Debug("verified", "src", src, "dst", dst)
	}

	log.Info("mirrored", "src", src, "dst", dst,
		"dirs", stats.Dirs, "files", stats.Files, "bytes", stats.Bytes)
	fmt.Fprintln(out, "Done.")
	return stats, nil
}

// Mirror makes dst a copy of src: it validates src, deletes dst if it exists and
// recursively copies src to dst.
//
// If src does not exist, Mirror returns an error wrapping ErrSourceNotFound and dst is
// not touched. The same holds for ErrSourceNotDir and ErrOverlap.
func Mirror(log *slog.Logger, src, dst string) (Stats, error) {
	if err := checkSource(src); err != nil {
		return Stats{}, err
	}
	if err := checkOverlap(src, dst); err != nil {
		return Stats{}, err
	}
	if err := Clear(log, dst); err != nil {
		return Stats{}, err
	}
	return CopyTree(log, src, dst)
}

// Verify compares the trees rooted at src and dst and returns an error wrapping
// ErrVerify if their structure or file sizes differ.
func Verify(src, dst string) error {
	srcList, err := tree.List(src)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	dstList, err := tree.List(dst)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if diff := tree.Compare(srcList, dstList); !diff.Empty() {
		return fmt.Errorf("%w:\n%s", ErrVerify, diff)
	}
	return nil
}

func checkSource(src string) error {
	fi, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, src)
	}
	return nil
}

// checkOverlap fails if src and dst are the same directory or if one contains the
// other. Symlinks are resolved for src and for the existing ancestors of dst; dst
// itself is not resolved, since Clear removes a symlink and not its target.
func checkOverlap(src, dst string) error {
	realSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if realSrc, err = filepath.EvalSymlinks(realSrc); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	realDst, err := resolveParent(dst)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	if within(realSrc, realDst) || within(realDst, realSrc) {
		return fmt.Errorf("%w: %s and %s", ErrOverlap, src, dst)
	}
	return nil
}

// resolveParent returns the absolute path of path, with the symlinks of its nearest
// existing ancestor resolved.
func resolveParent(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir, rest := filepath.Dir(abs), filepath.Base(abs)
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(resolved, rest), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}

// within reports whether path is parent or is below parent. Both must be clean and
// absolute.
func within(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." ||
		(rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
