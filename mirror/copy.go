package mirror

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Clear recursively deletes dst, be it a file, a directory or a symlink. A symlink is
// removed, not followed. If dst does not exist, Clear does nothing.
// Any failure is returned as a *RemovalError.
func Clear(log *slog.Logger, dst string) error {
	if _, err := os.Lstat(dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("nothing to clear", "dst", dst)
			return nil
		}
		return &RemovalError{Path: dst, Err: err}
	}
	if err := os.RemoveAll(dst); err != nil {
		return &RemovalError{Path: dst, Err: err}
	}
	log.Debug("cleared", "dst", dst)
	return nil
}

// CopyTree recursively copies directory src to dst, which must not exist. The parent
// directories of dst are created if needed.
//
// Symlinks in src are followed: the copy contains the content they point to.
// Permission bits and modification times of files and directories are preserved;
// failing to preserve a modification time is logged and not fatal.
// Any other failure stops the copy and is returned as a *CopyError; what has been
// copied so far is left in place.
func CopyTree(log *slog.Logger, src, dst string) (Stats, error) {
	var stats Stats
	if _, err := os.Lstat(dst); err == nil {
		return stats, &CopyError{Path: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return stats, &CopyError{Path: dst, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
		return stats, &CopyError{Path: dst, Err: err}
	}

	fi, err := os.Stat(src)
	if err != nil {
		return stats, &CopyError{Path: src, Err: err}
	}
	if !fi.IsDir() {
		return stats, &CopyError{Path: src, Err: ErrSourceNotDir}
	}

	cp := copier{log: log.With("src", src, "dst", dst), stats: &stats}
	if err := cp.dir(src, dst, fi); err != nil {
		return stats, err
	}
	return stats, nil
}

type copier struct {
	log   *slog.Logger
	stats *Stats
}

// dir copies directory src, described by fi, to the new directory dst.
func (cp copier) dir(src, dst string, fi fs.FileInfo) error {
	// Owner write permission while populating; the real mode is applied at the end,
	// so that a read-only source directory is still copied.
	if err := os.Mkdir(dst, 0o700); err != nil {
		return &CopyError{Path: dst, Err: err}
	}
	cp.stats.Dirs++

	entries, err := os.ReadDir(src)
	if err != nil {
		return &CopyError{Path: src, Err: err}
	}
	for _, e := range entries {
		srcPath := filepath.Join(src, e.Name())
		dstPath := filepath.Join(dst, e.Name())
		// Stat, not Lstat: symlinks are followed.
		info, err := os.Stat(srcPath)
		if err != nil {
			return &CopyError{Path: srcPath, Err: err}
		}
		switch {
		case info.IsDir():
			if err := cp.dir(srcPath, dstPath, info); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := cp.file(srcPath, dstPath, info); err != nil {
				return err
			}
		default:
			return &CopyError{Path: srcPath,
				Err: fmt.Errorf("unsupported file type %s", info.Mode().Type())}
		}
	}

	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return &CopyError{Path: dst, Err: err}
	}
	cp.setTimes(dst, fi)
	return nil
}

// file copies regular file src, described by fi, to the new file dst.
func (cp copier) file(src, dst string, fi fs.FileInfo) error {
	n, err := copyFile(dst, src, fi.Mode().Perm())
	if err != nil {
		return &CopyError{Path: src, Err: err}
	}
	cp.stats.Files++
	cp.stats.Bytes += n
	cp.setTimes(dst, fi)
	cp.log.Debug("copied", "file", src, "bytes", n)
	return nil
}

func (cp copier) setTimes(path string, fi fs.FileInfo) {
	if err := os.Chtimes(path, fi.ModTime(), fi.ModTime()); err != nil {
		cp.log.Warn("cannot preserve modification time", "path", path, "err", err)
	}
}

// copyFile copies the contents of srcPath to the new file dstPath, created with
// permissions perm, and returns the number of bytes copied.
func copyFile(dstPath string, srcPath string, perm fs.FileMode) (int64, error) {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("opening src file: %w", err)
	}
	defer srcFile.Close()

	// We want an error if the file already exists
	dstFile, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return 0, fmt.Errorf("creating dst file: %w", err)
	}

	n, err := io.Copy(dstFile, srcFile)
	if err != nil {
		dstFile.Close()
		return n, fmt.Errorf("writing dst file: %w", err)
	}
	// Chmod on the open file, since the umask applied by OpenFile would alter perm.
	if err := dstFile.Chmod(perm); err != nil {
		dstFile.Close()
		return n, fmt.Errorf("setting permissions: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return n, fmt.Errorf("closing dst file: %w", err)
	}
	return n, nil
}
