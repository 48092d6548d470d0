package object

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReachableSet returns all object hashes reachable from roots by following
// object references: tag targets, commit trees and parents, tree entries.
// Missing roots are ignored.
func (s *Store) ReachableSet(roots []Hash) (map[Hash]struct{}, error) {
	out := make(map[Hash]struct{}, len(roots))

	stack := make([]Hash, 0, len(roots))
	stack = append(stack, roots...)
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if strings.TrimSpace(string(h)) == "" {
			continue
		}
		if _, ok := out[h]; ok {
			continue
		}
		if !s.Has(h) {
			continue
		}
		out[h] = struct{}{}

		objType, data, err := s.Read(h)
		if err != nil {
			return nil, fmt.Errorf("reachable set read %s: %w", h, err)
		}
		refs, err := referencedHashes(objType, data)
		if err != nil {
			return nil, fmt.Errorf("reachable set parse %s (%s): %w", h, objType, err)
		}
		stack = append(stack, refs...)
	}

	return out, nil
}

func referencedHashes(objType ObjectType, data []byte) ([]Hash, error) {
	switch objType {
	case TypeBlob:
		return nil, nil
	case TypeTag:
		tag, err := UnmarshalTag(data)
		if err != nil {
			return nil, err
		}
		return []Hash{tag.TargetHash}, nil
	case TypeCommit:
		commit, err := UnmarshalCommit(data)
		if err != nil {
			return nil, err
		}
		refs := make([]Hash, 0, 1+len(commit.Parents))
		refs = append(refs, commit.TreeHash)
		refs = append(refs, commit.Parents...)
		return refs, nil
	case TypeTree:
		tree, err := UnmarshalTree(data)
		if err != nil {
			return nil, err
		}
		refs := make([]Hash, 0, len(tree.Entries))
		for _, e := range tree.Entries {
			if e.IsDir {
				refs = append(refs, e.SubtreeHash)
				continue
			}
			refs = append(refs, e.BlobHash)
		}
		return refs, nil
	default:
		return nil, fmt.Errorf("unsupported object type %q", objType)
	}
}

// PruneSummary reports the outcome of a Prune pass.
type PruneSummary struct {
	Kept    int
	Removed int
}

// Prune deletes every stored object whose hash is not in keep. Empty
// fan-out directories are removed afterwards.
func (s *Store) Prune(keep map[Hash]struct{}) (*PruneSummary, error) {
	objectsDir := filepath.Join(s.root, "objects")
	entries, err := os.ReadDir(objectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &PruneSummary{}, nil
		}
		return nil, fmt.Errorf("prune: %w", err)
	}

	summary := &PruneSummary{}
	for _, fan := range entries {
		if !fan.IsDir() || len(fan.Name()) != 2 {
			continue
		}
		fanDir := filepath.Join(objectsDir, fan.Name())
		files, err := os.ReadDir(fanDir)
		if err != nil {
			return nil, fmt.Errorf("prune: %w", err)
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			h := Hash(fan.Name() + f.Name())
			if _, ok := keep[h]; ok {
				summary.Kept++
				continue
			}
			if err := os.Remove(filepath.Join(fanDir, f.Name())); err != nil {
				return nil, fmt.Errorf("prune remove %s: %w", h, err)
			}
			summary.Removed++
		}
		// Ignore failure: the directory may have gained a new object.
		_ = os.Remove(fanDir)
	}
	return summary, nil
}
