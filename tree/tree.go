// Package tree lists the structure of a directory tree and compares two listings.
//
// A listing records, for each entry below the root, its kind and (for files) its
// size. File contents are not hashed.
package tree

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Pix4D/mirror/sets"
)

// Kind is the type of an entry of a Listing.
type Kind int

const (
	Dir Kind = iota
	File
)

func (k Kind) String() string {
	switch k {
	case Dir:
		return "dir"
	case File:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry describes one path of a Listing. Size is 0 for directories.
type Entry struct {
	Kind Kind
	Size int64
}

// Listing maps the slash-separated path of each entry, relative to the root, to its
// Entry. The root itself is not part of the listing.
type Listing map[string]Entry

// List walks the directory tree rooted at root and returns its Listing. Symlinks are
// followed, in the same way as mirror.CopyTree does.
func List(root string) (Listing, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	listing := Listing{}
	if err := listDir(listing, root, ""); err != nil {
		return nil, err
	}
	return listing, nil
}

func listDir(listing Listing, dir string, rel string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		abs := filepath.Join(dir, e.Name())
		relPath := path.Join(rel, e.Name())
		info, err := os.Stat(abs)
		if err != nil {
			return err
		}
		switch {
		case info.IsDir():
			listing[relPath] = Entry{Kind: Dir}
			if err := listDir(listing, abs, relPath); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			listing[relPath] = Entry{Kind: File, Size: info.Size()}
		default:
			return fmt.Errorf("%s: unsupported file type %s", abs, info.Mode().Type())
		}
	}
	return nil
}

// Paths returns the set of the paths of l.
func (l Listing) Paths() *sets.Set[string] {
	s := sets.New[string](len(l))
	for p := range l {
		s.Add(p)
	}
	return s
}

// Diff is the result of Compare. Each slice is ordered.
type Diff struct {
	OnlyInA []string
	OnlyInB []string
	Changed []string // Present in both, different kind or size.
}

// Compare returns the differences between listings a and b.
func Compare(a, b Listing) Diff {
	pathsA := a.Paths()
	pathsB := b.Paths()

	diff := Diff{
		OnlyInA: pathsA.Difference(pathsB).OrderedList(),
		OnlyInB: pathsB.Difference(pathsA).OrderedList(),
		Changed: []string{},
	}
	for _, p := range pathsA.Intersection(pathsB).OrderedList() {
		if a[p] != b[p] {
			diff.Changed = append(diff.Changed, p)
		}
	}
	return diff
}

// Empty reports whether the two listings compared equal.
func (d Diff) Empty() bool {
	return len(d.OnlyInA) == 0 && len(d.OnlyInB) == 0 && len(d.Changed) == 0
}

// String renders d one path per line, prefixed with "-" (only in a), "+" (only in b)
// or "~" (changed).
func (d Diff) String() string {
	var bld strings.Builder
	for _, p := range d.OnlyInA {
		fmt.Fprintln(&bld, "-", p)
	}
	for _, p := range d.OnlyInB {
		fmt.Fprintln(&bld, "+", p)
	}
	for _, p := range d.Changed {
		fmt.Fprintln(&bld, "~", p)
	}
	return strings.TrimSuffix(bld.String(), "\n")
}
