package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lodevcs/lode/pkg/object"
)

func TestInitLayout(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, sub := range []string{
		"objects",
		filepath.Join("refs", "heads"),
		filepath.Join("logs", "refs", "heads"),
	} {
		p := filepath.Join(r.LodeDir, sub)
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("Expected directory %s", p)
		}
	}

	head, err := os.ReadFile(filepath.Join(r.LodeDir, "HEAD"))
	if err != nil {
		t.Fatalf("Read HEAD: %v", err)
	}
	if string(head) != "ref: refs/heads/main\n" {
		t.Errorf("HEAD content: got %q", head)
	}
}

func TestInitTwiceFails(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Init(dir); err == nil {
		t.Error("Second Init should fail")
	}
}

func TestOpenFindsRepoUpward(t *testing.T) {
	r := initTestRepo(t)
	nested := filepath.Join(r.RootDir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	opened, err := Open(nested)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rootEval, _ := filepath.EvalSymlinks(r.RootDir)
	openedEval, _ := filepath.EvalSymlinks(opened.RootDir)
	if rootEval != openedEval {
		t.Errorf("RootDir: got %s, want %s", opened.RootDir, r.RootDir)
	}
}

func TestOpenOutsideRepoFails(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Open outside any repository should fail")
	}
}

func TestResolveRefHEAD(t *testing.T) {
	r := initTestRepo(t)
	h := stageAndCommit(t, r, "f.txt", "content", "first")

	got, err := r.ResolveRef("HEAD")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if got != h {
		t.Errorf("HEAD: got %s, want %s", got, h)
	}
}

func TestResolveRefShortNames(t *testing.T) {
	r := initTestRepo(t)
	h := stageAndCommit(t, r, "f.txt", "content", "first")
	if err := r.CreateBranch("feature", h); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if err := r.CreateTag("v1", h, false); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	for _, name := range []string{"main", "feature", "v1", "refs/heads/main", "refs/tags/v1"} {
		got, err := r.ResolveRef(name)
		if err != nil {
			t.Errorf("ResolveRef(%q): %v", name, err)
			continue
		}
		if got != h {
			t.Errorf("ResolveRef(%q): got %s, want %s", name, got, h)
		}
	}
}

func TestResolveRefMissing(t *testing.T) {
	r := initTestRepo(t)
	if _, err := r.ResolveRef("no-such-branch"); err == nil {
		t.Error("ResolveRef of missing ref should fail")
	}
}

func TestUpdateRefCASMismatch(t *testing.T) {
	r := initTestRepo(t)
	h1 := stageAndCommit(t, r, "f.txt", "one", "first")

	wrong := object.Hash("1111111111111111111111111111111111111111111111111111111111111111")
	err := r.UpdateRefCAS("refs/heads/main", wrong, wrong)
	if err == nil {
		t.Fatal("CAS with stale expected hash should fail")
	}
	if !errors.Is(err, ErrRefCASMismatch) {
		t.Errorf("Expected ErrRefCASMismatch, got: %v", err)
	}

	// Ref is unchanged after a failed CAS.
	got, err := r.ResolveRef("main")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if got != h1 {
		t.Errorf("Ref changed after failed CAS: got %s, want %s", got, h1)
	}
}

func TestUpdateRefCASCreateRequiresAbsent(t *testing.T) {
	r := initTestRepo(t)
	h := stageAndCommit(t, r, "f.txt", "one", "first")

	if err := r.UpdateRefCAS("refs/heads/new", h, ""); err != nil {
		t.Fatalf("CAS create: %v", err)
	}
	if err := r.UpdateRefCAS("refs/heads/new", h, ""); !errors.Is(err, ErrRefCASMismatch) {
		t.Errorf("CAS create over existing ref: got %v, want ErrRefCASMismatch", err)
	}
}

func TestUpdateRefRemovesLockFile(t *testing.T) {
	r := initTestRepo(t)
	h := stageAndCommit(t, r, "f.txt", "one", "first")
	if err := r.UpdateRef("refs/heads/other", h); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}
	lock := filepath.Join(r.LodeDir, "refs", "heads", "other.lock")
	if _, err := os.Stat(lock); !os.IsNotExist(err) {
		t.Errorf("Lock file left behind at %s", lock)
	}
}
