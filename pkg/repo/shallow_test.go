package repo

import (
	"os"
	"strings"
	"testing"

	"github.com/lodevcs/lode/pkg/object"
)

func TestShallowEmptyByDefault(t *testing.T) {
	r := initTestRepo(t)
	set, err := r.Shallow()
	if err != nil {
		t.Fatalf("Shallow: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("Expected empty shallow set, got %d entries", len(set))
	}
}

func TestAddShallowPersists(t *testing.T) {
	r := initTestRepo(t)
	h := stageAndCommit(t, r, "f.txt", "content", "first")

	if err := r.AddShallow(h); err != nil {
		t.Fatalf("AddShallow: %v", err)
	}
	// Adding twice is a no-op.
	if err := r.AddShallow(h); err != nil {
		t.Fatalf("AddShallow repeat: %v", err)
	}

	set, err := r.Shallow()
	if err != nil {
		t.Fatalf("Shallow: %v", err)
	}
	if !set.Contains(h) {
		t.Error("Added hash missing from shallow set")
	}
	if len(set) != 1 {
		t.Errorf("Set size: got %d, want 1", len(set))
	}

	// One hash per line on disk.
	data, err := os.ReadFile(r.shallowPath())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := strings.TrimRight(string(data), "\n"); got != string(h) {
		t.Errorf("File content: got %q, want %q", got, h)
	}
}

func TestAddShallowRejectsNonCommit(t *testing.T) {
	r := initTestRepo(t)
	blob, err := r.Store.WriteBlob(&object.Blob{Data: []byte("blob")})
	if err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if err := r.AddShallow(blob); err == nil {
		t.Error("AddShallow with a blob hash should fail")
	}
	if err := r.AddShallow(object.Hash("9999999999999999999999999999999999999999999999999999999999999999")); err == nil {
		t.Error("AddShallow with a missing hash should fail")
	}
}

func TestRemoveShallowDeletesEmptyFile(t *testing.T) {
	r := initTestRepo(t)
	h := stageAndCommit(t, r, "f.txt", "content", "first")

	if err := r.AddShallow(h); err != nil {
		t.Fatalf("AddShallow: %v", err)
	}
	if err := r.RemoveShallow(h); err != nil {
		t.Fatalf("RemoveShallow: %v", err)
	}
	if _, err := os.Stat(r.shallowPath()); !os.IsNotExist(err) {
		t.Error("Empty shallow set should remove the file")
	}
	// Removing a hash that is not present is not an error.
	if err := r.RemoveShallow(h); err != nil {
		t.Errorf("RemoveShallow on empty set: %v", err)
	}
}

func TestShallowHashesSorted(t *testing.T) {
	set := ShallowSet{
		object.Hash("bb"): {},
		object.Hash("aa"): {},
		object.Hash("cc"): {},
	}
	got := set.Hashes()
	if len(got) != 3 || got[0] != "aa" || got[1] != "bb" || got[2] != "cc" {
		t.Errorf("Hashes not sorted: %v", got)
	}
}
