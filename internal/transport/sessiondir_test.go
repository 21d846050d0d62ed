package transport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanSessionDirRemovesFolder(t *testing.T) {
	base := t.TempDir()
	sessionPath := filepath.Join(base, "session-test")
	if err := os.MkdirAll(sessionPath, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sessionPath, "lockfile"), []byte("pid"), 0o644); err != nil {
		t.Fatalf("write lockfile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sessionPath, "profile.db"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	if err := CleanSessionDir(context.Background(), base, "test"); err != nil {
		t.Fatalf("CleanSessionDir: %v", err)
	}

	if _, err := os.Stat(sessionPath); !os.IsNotExist(err) {
		t.Fatalf("session folder still present: %v", err)
	}
}

func TestCleanSessionDirMissingFolderIsNoop(t *testing.T) {
	if err := CleanSessionDir(context.Background(), t.TempDir(), "missing"); err != nil {
		t.Fatalf("CleanSessionDir: %v", err)
	}
}

func TestCleanSessionDirWithoutLockFile(t *testing.T) {
	base := t.TempDir()
	sessionPath := filepath.Join(base, "session-test")
	if err := os.MkdirAll(sessionPath, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := CleanSessionDir(context.Background(), base, "test"); err != nil {
		t.Fatalf("CleanSessionDir: %v", err)
	}
	if _, err := os.Stat(sessionPath); !os.IsNotExist(err) {
		t.Fatal("session folder still present")
	}
}
