// Package output persists rendered workflow documents.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
)

// ErrStale is returned by Verify when the file on disk does not match the
// rendered document.
var ErrStale = errors.New("workflow is out of date")

// Write replaces the file at path with doc. Parent directories are created
// as needed. The file is closed on every return path and a close failure is
// reported when the write itself succeeded.
func Write(fsys billy.Filesystem, path string, doc []byte) (err error) {
	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	n, err := f.Write(doc)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if n < len(doc) {
		return fmt.Errorf("write %s: %w", path, io.ErrShortWrite)
	}
	return nil
}

// Check reports whether the file at path holds exactly doc. A missing file
// is reported as not current rather than as an error.
func Check(fsys billy.Filesystem, path string, doc []byte) (bool, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	existing, err := io.ReadAll(f)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return bytes.Equal(existing, doc), nil
}

// Verify is Check with staleness turned into ErrStale.
func Verify(fsys billy.Filesystem, path string, doc []byte) error {
	ok, err := Check(fsys, path, doc)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrStale)
	}
	return nil
}
