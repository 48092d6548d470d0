package repo

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lodevcs/lode/pkg/object"
)

// ShallowSet holds the grafted history roots: commits whose true parents
// are intentionally not present in the local store. Traversals treat
// members as parentless regardless of their payload.
type ShallowSet map[object.Hash]struct{}

// Contains reports membership. It satisfies object.ShallowChecker.
func (s ShallowSet) Contains(h object.Hash) bool {
	_, ok := s[h]
	return ok
}

// Hashes returns the members sorted, for deterministic listing.
func (s ShallowSet) Hashes() []object.Hash {
	out := make([]object.Hash, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Repo) shallowPath() string {
	return filepath.Join(r.LodeDir, "shallow")
}

// Shallow reads .lode/shallow, one hash per line. A missing file is an
// empty set.
func (r *Repo) Shallow() (ShallowSet, error) {
	set := make(ShallowSet)

	f, err := os.Open(r.shallowPath())
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, fmt.Errorf("read shallow: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		set[object.Hash(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read shallow: %w", err)
	}
	return set, nil
}

// SetShallow atomically replaces .lode/shallow with the given set. An
// empty set removes the file.
func (r *Repo) SetShallow(set ShallowSet) error {
	if len(set) == 0 {
		if err := os.Remove(r.shallowPath()); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("write shallow: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	for _, h := range set.Hashes() {
		buf.WriteString(string(h))
		buf.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(r.LodeDir, ".shallow-tmp-*")
	if err != nil {
		return fmt.Errorf("write shallow: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write shallow: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write shallow: close: %w", err)
	}
	if err := os.Rename(tmpName, r.shallowPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write shallow: rename: %w", err)
	}
	return nil
}

// AddShallow marks a commit as a grafted root. The hash must name a commit
// present in the store.
func (r *Repo) AddShallow(h object.Hash) error {
	if _, err := r.Store.ReadCommit(h); err != nil {
		return fmt.Errorf("add shallow: %w", err)
	}

	set, err := r.Shallow()
	if err != nil {
		return fmt.Errorf("add shallow: %w", err)
	}
	if set.Contains(h) {
		return nil
	}
	set[h] = struct{}{}
	if err := r.SetShallow(set); err != nil {
		return fmt.Errorf("add shallow: %w", err)
	}
	return nil
}

// RemoveShallow unmarks a grafted root. Removing a hash that is not in the
// set is not an error.
func (r *Repo) RemoveShallow(h object.Hash) error {
	set, err := r.Shallow()
	if err != nil {
		return fmt.Errorf("remove shallow: %w", err)
	}
	if !set.Contains(h) {
		return nil
	}
	delete(set, h)
	if err := r.SetShallow(set); err != nil {
		return fmt.Errorf("remove shallow: %w", err)
	}
	return nil
}
