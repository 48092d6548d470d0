package repo

import (
	"strings"
	"testing"
)

func TestCommitChain(t *testing.T) {
	r := initTestRepo(t)
	h1 := stageAndCommit(t, r, "f.txt", "one", "first")
	h2 := stageAndCommit(t, r, "f.txt", "two", "second")

	c2, err := r.Store.ReadCommit(h2)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if len(c2.Parents) != 1 || c2.Parents[0] != h1 {
		t.Errorf("Parents of second commit: got %v, want [%s]", c2.Parents, h1)
	}
	if c2.Author != testAuthor || c2.Committer != testAuthor {
		t.Errorf("Identity: author=%q committer=%q", c2.Author, c2.Committer)
	}
	if c2.Message != "second" {
		t.Errorf("Message: got %q", c2.Message)
	}

	head, err := r.ResolveRef("HEAD")
	if err != nil {
		t.Fatalf("ResolveRef: %v", err)
	}
	if head != h2 {
		t.Errorf("HEAD: got %s, want %s", head, h2)
	}
}

func TestCommitNothingStaged(t *testing.T) {
	r := initTestRepo(t)
	if _, err := r.Commit("empty", testAuthor); err == nil {
		t.Error("Commit with empty staging should fail")
	}
}

func TestCommitWithSignerStoresSignature(t *testing.T) {
	r := initTestRepo(t)
	abs := writeWorkFile(t, r, "f.txt", "content")
	if err := r.Add([]string{abs}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	var signedPayload []byte
	signer := func(payload []byte) (string, error) {
		signedPayload = payload
		return "test-sig", nil
	}
	h, err := r.CommitWithSigner("signed", testAuthor, signer)
	if err != nil {
		t.Fatalf("CommitWithSigner: %v", err)
	}

	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if c.Signature != "test-sig" {
		t.Errorf("Signature: got %q", c.Signature)
	}
	if !strings.Contains(string(signedPayload), "signed") {
		t.Error("Signing payload should contain the commit message")
	}
	if strings.Contains(string(signedPayload), "test-sig") {
		t.Error("Signing payload must exclude the signature itself")
	}
}

func TestLogFirstParent(t *testing.T) {
	r := initTestRepo(t)
	stageAndCommit(t, r, "f.txt", "one", "first")
	stageAndCommit(t, r, "f.txt", "two", "second")
	h3 := stageAndCommit(t, r, "f.txt", "three", "third")

	commits, err := r.Log(h3, 10)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("Log length: got %d, want 3", len(commits))
	}
	if commits[0].Message != "third" || commits[1].Message != "second" || commits[2].Message != "first" {
		t.Errorf("Log order: %q, %q, %q", commits[0].Message, commits[1].Message, commits[2].Message)
	}
	limited, err := r.Log(h3, 2)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Limited log length: got %d, want 2", len(limited))
	}
}
