package repo

import (
	"reflect"
	"testing"
	"time"

	"github.com/lodevcs/lode/pkg/object"
)

func TestComputeAncestryMapLinearHistory(t *testing.T) {
	r := initTestRepo(t)
	h1 := stageAndCommit(t, r, "f.txt", "one", "first")
	h2 := stageAndCommit(t, r, "f.txt", "two", "second")

	m, err := r.ComputeAncestryMap([]string{"main"}, nil)
	if err != nil {
		t.Fatalf("ComputeAncestryMap: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("Map size: got %d, want 2", len(m))
	}
	if got := m[h1].Children; !reflect.DeepEqual(got, []object.Hash{h2}) {
		t.Errorf("Children of first commit: got %v, want [%s]", got, h2)
	}
	if got := m[h2].Children; len(got) != 0 {
		t.Errorf("Children of tip: got %v, want none", got)
	}
}

func TestComputeAncestryMapMergeHistory(t *testing.T) {
	r := initTestRepo(t)
	base := stageAndCommit(t, r, "f.txt", "base", "base")
	left := stageAndCommit(t, r, "f.txt", "left", "left")

	// Build the right side and the merge directly in the store; branch
	// surgery is not needed to shape the graph.
	c, err := r.Store.ReadCommit(base)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	right, err := r.Store.WriteCommit(&object.CommitObj{
		TreeHash:  c.TreeHash,
		Parents:   []object.Hash{base},
		Author:    testAuthor,
		Timestamp: time.Now().Unix(),
		Message:   "right",
	})
	if err != nil {
		t.Fatalf("WriteCommit: %v", err)
	}
	merge, err := r.Store.WriteCommit(&object.CommitObj{
		TreeHash:  c.TreeHash,
		Parents:   []object.Hash{left, right},
		Author:    testAuthor,
		Timestamp: time.Now().Unix(),
		Message:   "merge",
	})
	if err != nil {
		t.Fatalf("WriteCommit: %v", err)
	}
	if err := r.UpdateRef("refs/heads/main", merge); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}

	m, err := r.ComputeAncestryMap([]string{"main"}, nil)
	if err != nil {
		t.Fatalf("ComputeAncestryMap: %v", err)
	}
	if len(m) != 4 {
		t.Fatalf("Map size: got %d, want 4", len(m))
	}
	if got := m[base].Children; !reflect.DeepEqual(got, []object.Hash{left, right}) {
		t.Errorf("Children of base: got %v, want [%s %s]", got, left, right)
	}
	if got := m[left].Children; !reflect.DeepEqual(got, []object.Hash{merge}) {
		t.Errorf("Children of left: got %v", got)
	}
	if got := m[right].Children; !reflect.DeepEqual(got, []object.Hash{merge}) {
		t.Errorf("Children of right: got %v", got)
	}
}

func TestComputeAncestryMapAnnotatedTagStart(t *testing.T) {
	r := initTestRepo(t)
	h1 := stageAndCommit(t, r, "f.txt", "one", "first")
	h2 := stageAndCommit(t, r, "f.txt", "two", "second")

	tagHash, err := r.CreateAnnotatedTag("v1", h2, testAuthor, "release", false)
	if err != nil {
		t.Fatalf("CreateAnnotatedTag: %v", err)
	}

	m, err := r.ComputeAncestryMap([]string{"v1"}, nil)
	if err != nil {
		t.Fatalf("ComputeAncestryMap: %v", err)
	}
	if _, ok := m[tagHash]; ok {
		t.Error("Tag object hash must not appear in the ancestry map")
	}
	if _, ok := m[h2]; !ok {
		t.Error("Tagged commit missing from ancestry map")
	}
	if _, ok := m[h1]; !ok {
		t.Error("Ancestor of tagged commit missing from ancestry map")
	}
}

func TestComputeAncestryMapShallowCutoff(t *testing.T) {
	r := initTestRepo(t)
	h1 := stageAndCommit(t, r, "f.txt", "one", "first")
	h2 := stageAndCommit(t, r, "f.txt", "two", "second")
	h3 := stageAndCommit(t, r, "f.txt", "three", "third")

	if err := r.AddShallow(h2); err != nil {
		t.Fatalf("AddShallow: %v", err)
	}

	m, err := r.ComputeAncestryMap([]string{"main"}, nil)
	if err != nil {
		t.Fatalf("ComputeAncestryMap: %v", err)
	}
	if _, ok := m[h1]; ok {
		t.Error("History beyond the grafted root must not be walked")
	}
	if got := m[h2].Children; !reflect.DeepEqual(got, []object.Hash{h3}) {
		t.Errorf("Children of grafted commit: got %v, want [%s]", got, h3)
	}
}

func TestComputeAncestryMapUnresolvableStartFails(t *testing.T) {
	r := initTestRepo(t)
	stageAndCommit(t, r, "f.txt", "one", "first")
	if _, err := r.ComputeAncestryMap([]string{"no-such-ref"}, nil); err == nil {
		t.Error("Unresolvable start ref should fail the walk")
	}
}

func TestComputeAncestryMapFinishRefsBestEffort(t *testing.T) {
	r := initTestRepo(t)
	h1 := stageAndCommit(t, r, "f.txt", "one", "first")
	stageAndCommit(t, r, "f.txt", "two", "second")

	// Unresolvable finish refs are skipped, and resolvable ones do not
	// shrink the result.
	opts := &AncestryOptions{FinishRefs: []string{"gone-branch", "main"}}
	m, err := r.ComputeAncestryMap([]string{"main"}, opts)
	if err != nil {
		t.Fatalf("ComputeAncestryMap: %v", err)
	}
	if len(m) != 2 {
		t.Errorf("Map size: got %d, want 2", len(m))
	}
	if _, ok := m[h1]; !ok {
		t.Error("Ancestry missing despite advisory finish set")
	}
}

func TestListStartingRefs(t *testing.T) {
	r := initTestRepo(t)
	h := stageAndCommit(t, r, "f.txt", "one", "first")
	if err := r.CreateBranch("topic", h); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	refs, err := r.ListStartingRefs()
	if err != nil {
		t.Fatalf("ListStartingRefs: %v", err)
	}
	want := []string{"refs/heads/main", "refs/heads/topic"}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("Starting refs: got %v, want %v", refs, want)
	}
}
