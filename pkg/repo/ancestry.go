package repo

import (
	"fmt"
	"sort"

	"github.com/lodevcs/lode/pkg/object"
)

// AncestryOptions tunes ComputeAncestryMap.
type AncestryOptions struct {
	// FinishRefs names refs whose history the caller already holds (for
	// example branches known to be merged). Names that fail to resolve
	// are skipped rather than surfaced: the set is advisory, so a stale
	// or deleted ref must not fail the walk. The resolved hashes are
	// handed to the walker, which currently does not prune with them.
	FinishRefs []string
}

// ComputeAncestryMap resolves the starting ref names and walks the full
// ancestor graph they reach, returning the reverse adjacency map: each
// ancestor commit mapped to the commits that named it as a parent.
//
// Every starting name must resolve, and must dereference (through any
// chain of annotated tags) to a commit; otherwise the walk fails. Commits
// recorded in .lode/shallow are treated as parentless.
func (r *Repo) ComputeAncestryMap(startRefs []string, opts *AncestryOptions) (object.AncestryMap, error) {
	starts := make([]object.Hash, 0, len(startRefs))
	for _, name := range startRefs {
		h, err := r.ResolveRef(name)
		if err != nil {
			return nil, fmt.Errorf("compute ancestry: %w", err)
		}
		starts = append(starts, h)
	}

	// Best-effort resolution: a finish ref that does not resolve is
	// dropped, never surfaced.
	var finish map[object.Hash]struct{}
	if opts != nil && len(opts.FinishRefs) > 0 {
		finish = make(map[object.Hash]struct{}, len(opts.FinishRefs))
		for _, name := range opts.FinishRefs {
			h, err := r.ResolveRef(name)
			if err != nil {
				continue
			}
			finish[h] = struct{}{}
		}
	}

	shallow, err := r.Shallow()
	if err != nil {
		return nil, fmt.Errorf("compute ancestry: %w", err)
	}

	walker := object.NewAncestryWalker(r.Store, shallow)
	m, err := walker.Walk(starts, finish)
	if err != nil {
		return nil, fmt.Errorf("compute ancestry: %w", err)
	}
	return m, nil
}

// ListStartingRefs returns the full ref names of all local branches in
// sorted order, the default starting set for ancestry walks.
func (r *Repo) ListStartingRefs() ([]string, error) {
	branches, err := r.ListBranches()
	if err != nil {
		return nil, fmt.Errorf("list starting refs: %w", err)
	}
	refs := make([]string, 0, len(branches))
	for _, name := range branches {
		refs = append(refs, "refs/heads/"+name)
	}
	sort.Strings(refs)
	return refs, nil
}
