package repo

import (
	"testing"

	"github.com/lodevcs/lode/pkg/object"
)

func TestReflogRecordsCommits(t *testing.T) {
	r := initTestRepo(t)
	h1 := stageAndCommit(t, r, "f.txt", "one", "first")
	h2 := stageAndCommit(t, r, "f.txt", "two", "second")

	entries, err := r.ReadReflog("main", 0)
	if err != nil {
		t.Fatalf("ReadReflog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries: got %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].NewHash != h2 || entries[0].OldHash != h1 {
		t.Errorf("Newest entry: old=%s new=%s", entries[0].OldHash, entries[0].NewHash)
	}
	if entries[1].NewHash != h1 || entries[1].OldHash != object.Hash(zeroHash) {
		t.Errorf("Oldest entry: old=%s new=%s", entries[1].OldHash, entries[1].NewHash)
	}
	if entries[0].Ref != "refs/heads/main" {
		t.Errorf("Ref: got %q", entries[0].Ref)
	}
}

func TestReflogEmptyRefUsesCurrentBranch(t *testing.T) {
	r := initTestRepo(t)
	h := stageAndCommit(t, r, "f.txt", "one", "first")

	entries, err := r.ReadReflog("", 0)
	if err != nil {
		t.Fatalf("ReadReflog: %v", err)
	}
	if len(entries) != 1 || entries[0].NewHash != h {
		t.Errorf("Entries: %+v", entries)
	}
}

func TestReflogLimit(t *testing.T) {
	r := initTestRepo(t)
	stageAndCommit(t, r, "f.txt", "one", "first")
	stageAndCommit(t, r, "f.txt", "two", "second")
	h3 := stageAndCommit(t, r, "f.txt", "three", "third")

	entries, err := r.ReadReflog("main", 1)
	if err != nil {
		t.Fatalf("ReadReflog: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Entries: got %d, want 1", len(entries))
	}
	if entries[0].NewHash != h3 {
		t.Errorf("Limited entry: got %s, want %s", entries[0].NewHash, h3)
	}
}

func TestReflogMissingRef(t *testing.T) {
	r := initTestRepo(t)
	entries, err := r.ReadReflog("no-branch", 0)
	if err != nil {
		t.Fatalf("ReadReflog: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries for missing log, got %v", entries)
	}
}
