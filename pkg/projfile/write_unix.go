//go:build !windows

package projfile

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// writeFile atomically replaces path with data, keeping the permissions of
// the existing file. Symbolic links are followed so the link itself is kept.
func writeFile(path string, data []byte) error {
	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	}

	pendingFile, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}

	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			slog.Debug("cleanup pending file", slog.String("path", path), slog.Any("err", err))
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	return nil
}
