package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/macropower/csprojfix/pkg/csprojerrors"
)

// FindFiles returns every non-directory entry below root whose extension
// equals ext, ignoring case. Results are in lexical walk order.
func FindFiles(root, ext string) ([]string, error) {
	fi, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w %q: %w", csprojerrors.ErrFileNotFound, root, err)
	} else if err != nil {
		return nil, fmt.Errorf("%w %q: %w", csprojerrors.ErrAccessDenied, root, err)
	}

	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", csprojerrors.ErrInvalidArguments, root)
	}

	var found []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			found = append(found, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", root, err)
	}

	return found, nil
}

// Canonical returns a stable key for path: the absolute path with symbolic
// links resolved, or the cleaned absolute path if resolution fails.
func Canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}

	return filepath.Clean(path)
}
