package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lodevcs/lode/pkg/object"
)

const testAuthor = "Test User <test@example.com>"

func initTestRepo(t *testing.T) *Repo {
	t.Helper()
	r, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

func writeWorkFile(t *testing.T, r *Repo, rel, content string) string {
	t.Helper()
	abs := filepath.Join(r.RootDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return abs
}

func stageAndCommit(t *testing.T, r *Repo, rel, content, msg string) object.Hash {
	t.Helper()
	abs := writeWorkFile(t, r, rel, content)
	if err := r.Add([]string{abs}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	h, err := r.Commit(msg, testAuthor)
	if err != nil {
		t.Fatalf("Commit(%q): %v", msg, err)
	}
	return h
}
