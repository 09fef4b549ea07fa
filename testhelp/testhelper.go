// Package testhelp contains helpers shared by the tests of the other packages.
package testhelp

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"dario.cat/mergo"
	"gotest.tools/v3/assert"
)

// Tree describes the contents of a directory tree: the keys are slash-separated
// paths relative to the root, the values are file contents. A key ending with "/"
// is an (empty) directory and its value is ignored.
//
// For example:
//
//	Tree{
//		"a.txt":     "hello",
//		"sub/b.txt": "world",
//		"empty/":    "",
//	}
type Tree map[string]string

// MakeTree creates the files and directories of tree below the directory root,
// creating root if needed, and returns root. Intermediate directories are
// created as needed.
// If any operation fails, MakeTree terminates the test by calling t.Fatal.
func MakeTree(t *testing.T, root string, tree Tree) string {
	t.Helper()

	assert.NilError(t, os.MkdirAll(root, 0o755))
	for name, contents := range tree {
		p := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			assert.NilError(t, os.MkdirAll(p, 0o755))
			continue
		}
		assert.NilError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		assert.NilError(t, os.WriteFile(p, []byte(contents), 0o644))
	}
	return root
}

// ReadTree returns the contents of the directory tree rooted at root, in the format
// described by Tree. Every directory (not only the empty ones) is reported with
// a trailing "/"; root itself is not reported.
// If any operation fails, ReadTree terminates the test by calling t.Fatal.
func ReadTree(t *testing.T, root string) Tree {
	t.Helper()

	tree := Tree{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		buf, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		tree[rel] = string(buf)
		return nil
	})
	assert.NilError(t, err)
	return tree
}

// WithDirs returns a copy of tree with an entry for each intermediate directory,
// so that it can be compared with the output of ReadTree.
func WithDirs(tree Tree) Tree {
	out := Tree{}
	for name, contents := range tree {
		out[name] = contents
		for dir := path.Dir(strings.TrimSuffix(name, "/")); dir != "."; dir = path.Dir(dir) {
			out[dir+"/"] = ""
		}
	}
	return out
}

// MergeStructs merges b into a and returns the merged copy.
// Said in another way, a is the default and b is the override.
// Used to express succinctly the delta in the test cases.
// Since it is a test helper, it will panic in case of error.
func MergeStructs[T any](a, b T) T {
	if err := mergo.Merge(&a, b, mergo.WithOverride); err != nil {
		panic(err)
	}
	return a
}
