// Package filex contains filesystem helpers for exporting vault files.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrBadName is returned when a file name cannot be used as a single path
// element.
var ErrBadName = errors.New("invalid file name")

// EnsureSubdDir creates dirName (relative to the working directory unless
// absolute) and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// SafeName reduces name to its last path element so stored names like
// "../../etc/passwd" cannot escape the export directory.
func SafeName(name string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + filepath.FromSlash(name)))
	if base == "" || base == "." || base == string(filepath.Separator) || base == ".." {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return base, nil
}

// WriteExport writes data to dir/name with owner-only permissions and
// returns the full path. An existing file is replaced.
func WriteExport(dir, name string, data []byte) (string, error) {
	safe, err := SafeName(name)
	if err != nil {
		return "", err
	}
	dir, err = EnsureSubdDir(dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, safe)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
