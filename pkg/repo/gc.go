package repo

import (
	"fmt"
	"strings"

	"github.com/lodevcs/lode/pkg/object"
)

// GC removes loose objects unreachable from any ref, HEAD, or grafted
// root, and returns a summary of kept and removed objects.
func (r *Repo) GC() (*object.PruneSummary, error) {
	refs, err := r.ListRefs("")
	if err != nil {
		return nil, fmt.Errorf("gc: %w", err)
	}

	rootSet := make(map[object.Hash]struct{}, len(refs)+2)
	for _, h := range refs {
		h = object.Hash(strings.TrimSpace(string(h)))
		if h == "" {
			continue
		}
		rootSet[h] = struct{}{}
	}
	if h, err := r.ResolveRef("HEAD"); err == nil && h != "" {
		rootSet[h] = struct{}{}
	}
	// Grafted roots stay reachable even when no ref points at them.
	shallow, err := r.Shallow()
	if err != nil {
		return nil, fmt.Errorf("gc: %w", err)
	}
	for h := range shallow {
		rootSet[h] = struct{}{}
	}

	roots := make([]object.Hash, 0, len(rootSet))
	for h := range rootSet {
		roots = append(roots, h)
	}

	keep, err := r.Store.ReachableSet(roots)
	if err != nil {
		return nil, fmt.Errorf("gc: %w", err)
	}

	// Staged blobs are not yet referenced by any commit; keep them too.
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("gc: %w", err)
	}
	for _, entry := range stg.Entries {
		if entry.BlobHash != "" {
			keep[entry.BlobHash] = struct{}{}
		}
	}

	summary, err := r.Store.Prune(keep)
	if err != nil {
		return nil, fmt.Errorf("gc: %w", err)
	}
	return summary, nil
}
