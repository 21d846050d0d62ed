package transport

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/ricacasa/concierge/pkg/retry"
)

// CleanSessionDir removes the pairing session folder for the named
// session, retrying while the browser profile still holds its lock
// file. Used on reset so the next start requires a fresh scan.
func CleanSessionDir(ctx context.Context, baseDir, sessionName string) error {
	sessionPath := filepath.Join(baseDir, "session-"+sessionName)

	if _, err := os.Stat(sessionPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := cleanLockFile(ctx, sessionPath); err != nil {
		return err
	}

	err := retry.Do(ctx, retry.DefaultPolicy(), func() error {
		return os.RemoveAll(sessionPath)
	})
	if err != nil {
		return fmt.Errorf("remove session folder %s: %w", sessionPath, err)
	}

	log.Printf("[transport] session folder removed: %s", sessionPath)
	return nil
}

func cleanLockFile(ctx context.Context, sessionPath string) error {
	lockPath := filepath.Join(sessionPath, "lockfile")

	err := retry.Do(ctx, retry.DefaultPolicy(), func() error {
		err := os.Remove(lockPath)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		log.Printf("[transport] lock file busy, retrying: %v", err)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove lock file %s: %w", lockPath, err)
	}
	return nil
}
