package object

import (
	"fmt"
	"strings"
)

// ObjectReader is the narrow store surface the ancestry walker needs.
// *Store satisfies it.
type ObjectReader interface {
	Read(h Hash) (ObjectType, []byte, error)
}

// ShallowChecker reports whether a commit is a grafted root: its locally
// stored history is truncated, so its recorded parents must be treated as
// absent even when the payload lists them.
type ShallowChecker interface {
	Contains(h Hash) bool
}

// AncestryNode records the direct descendants discovered for one ancestor
// commit. Children is ordered by discovery, not by history.
type AncestryNode struct {
	Children []Hash
}

// AncestryMap is a reverse adjacency map: every ancestor commit reached
// during a walk, mapped to the commits that named it as a parent. It is
// built fresh for each walk and returned as the result.
type AncestryMap map[Hash]*AncestryNode

func (m AncestryMap) ensure(h Hash) *AncestryNode {
	n, ok := m[h]
	if !ok {
		n = &AncestryNode{}
		m[h] = n
	}
	return n
}

// ObjectTypeError reports an object that was expected to be a commit
// (after annotated tags were dereferenced) but is of another kind.
type ObjectTypeError struct {
	Hash Hash
	Got  ObjectType
	Want ObjectType
}

func (e *ObjectTypeError) Error() string {
	return fmt.Sprintf("object %s: type mismatch: got %q, want %q", e.Hash, e.Got, e.Want)
}

// AncestryWalker computes the full ancestor graph reachable from a set of
// starting commits as an AncestryMap.
//
// The walk is depth-first over parent edges, driven by an explicit frame
// stack rather than call recursion so that arbitrarily deep histories
// cannot exhaust the goroutine stack. Each commit is expanded at most
// once; map membership doubles as the visited marker. Annotated tags are
// transparent indirections and never appear in the result. Commits in the
// shallow set are traversal leaves.
type AncestryWalker struct {
	reader  ObjectReader
	shallow ShallowChecker
}

// NewAncestryWalker creates a walker over the given reader. shallow may be
// nil when no history has been grafted.
func NewAncestryWalker(reader ObjectReader, shallow ShallowChecker) *AncestryWalker {
	return &AncestryWalker{reader: reader, shallow: shallow}
}

// Walk expands every starting hash and returns the reverse adjacency map.
// Every start must dereference, possibly through a chain of annotated
// tags, to a commit; otherwise the walk fails with an ObjectTypeError.
// Any store read or decode failure aborts the walk with no partial result.
//
// finish carries commits whose history the caller already holds. It is
// accepted so callers can record that intent, but it does not yet prune
// the walk or filter the result.
func (w *AncestryWalker) Walk(starts []Hash, finish map[Hash]struct{}) (AncestryMap, error) {
	_ = finish

	m := make(AncestryMap)
	peeled := make([]Hash, 0, len(starts))
	for _, h := range uniqueNormalizedHashes(starts) {
		c, err := w.peel(h)
		if err != nil {
			return nil, err
		}
		if _, ok := m[c]; ok {
			// Two starting refs resolved to the same commit.
			continue
		}
		// Insert before expansion so childless starts still appear.
		m.ensure(c)
		peeled = append(peeled, c)
	}

	for _, c := range peeled {
		if err := w.expand(m, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// peel dereferences annotated tags until a commit is reached and returns
// the commit's hash. Intermediate tag hashes never enter the result.
func (w *AncestryWalker) peel(h Hash) (Hash, error) {
	for {
		objType, data, err := w.reader.Read(h)
		if err != nil {
			return "", fmt.Errorf("ancestry walk: %w", err)
		}
		switch objType {
		case TypeCommit:
			return h, nil
		case TypeTag:
			tag, err := UnmarshalTag(data)
			if err != nil {
				return "", fmt.Errorf("ancestry walk: decode tag %s: %w", h, err)
			}
			h = tag.TargetHash
		default:
			return "", &ObjectTypeError{Hash: h, Got: objType, Want: TypeCommit}
		}
	}
}

// walkFrame is one suspended expansion on the explicit stack.
type walkFrame struct {
	hash Hash // object being expanded; rewritten when a tag is dereferenced

	// Parent edge to record once this frame finishes. The edge uses the
	// hash as written in the child commit, not the post-dereference hash.
	edgeTo  Hash
	child   Hash
	hasEdge bool

	parents []Hash
	loaded  bool
	next    int
}

// expand walks the ancestry of one starting commit, recording every
// discovered parent edge into m.
func (w *AncestryWalker) expand(m AncestryMap, start Hash) error {
	stack := []walkFrame{{hash: start}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if !f.loaded {
			objType, data, err := w.reader.Read(f.hash)
			if err != nil {
				return fmt.Errorf("ancestry walk: %w", err)
			}
			if objType == TypeTag {
				tag, err := UnmarshalTag(data)
				if err != nil {
					return fmt.Errorf("ancestry walk: decode tag %s: %w", f.hash, err)
				}
				f.hash = tag.TargetHash
				continue
			}
			if objType != TypeCommit {
				return &ObjectTypeError{Hash: f.hash, Got: objType, Want: TypeCommit}
			}
			if w.shallow != nil && w.shallow.Contains(f.hash) {
				// Grafted root: confirmed to be a commit, but its
				// recorded parents are intentionally absent locally.
				popFrame(m, &stack)
				continue
			}
			c, err := UnmarshalCommit(data)
			if err != nil {
				return fmt.Errorf("ancestry walk: decode commit %s: %w", f.hash, err)
			}
			f.parents = c.Parents
			f.loaded = true
		}

		if f.next < len(f.parents) {
			p := f.parents[f.next]
			f.next++
			if _, ok := m[p]; !ok {
				// Unvisited ancestor: expand its subtree first, then
				// record the edge when the pushed frame completes.
				stack = append(stack, walkFrame{hash: p, edgeTo: p, child: f.hash, hasEdge: true})
				continue
			}
			m.ensure(p).Children = append(m[p].Children, f.hash)
			continue
		}

		popFrame(m, &stack)
	}
	return nil
}

// popFrame retires the top frame, recording its pending parent edge.
func popFrame(m AncestryMap, stack *[]walkFrame) {
	f := (*stack)[len(*stack)-1]
	*stack = (*stack)[:len(*stack)-1]
	if f.hasEdge {
		m.ensure(f.edgeTo).Children = append(m[f.edgeTo].Children, f.child)
	}
}

func uniqueNormalizedHashes(in []Hash) []Hash {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[Hash]struct{}, len(in))
	out := make([]Hash, 0, len(in))
	for _, h := range in {
		h = Hash(strings.TrimSpace(string(h)))
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
