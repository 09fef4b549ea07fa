package mirror

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when the source folder does not exist.
	// Nothing has been touched when it is returned.
	ErrSourceNotFound = errors.New("source folder does not exist")
	// ErrSourceNotDir is returned when the source exists but is not a directory.
	ErrSourceNotDir = errors.New("source is not a directory")
	// ErrOverlap is returned when removing the destination would also remove (or
	// modify) the source.
	ErrOverlap = errors.New("source and destination overlap")
	// ErrVerify is returned when, after a copy, the destination tree does not match
	// the source tree.
	ErrVerify = errors.New("destination differs from source")
)

// RemovalError reports a failure to delete the existing destination. The copy has
// not started; the destination may be partially deleted.
type RemovalError struct {
	Path string
	Err  error
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("removing destination %s: %s", e.Path, e.Err)
}

func (e *RemovalError) Unwrap() error {
	return e.Err
}

// CopyError reports a failure during the recursive copy. The destination is left
// partially copied.
type CopyError struct {
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s: %s", e.Path, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}
