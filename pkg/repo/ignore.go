package repo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreRules holds the glob patterns from .lodeignore. Paths are matched
// repo-relative with forward slashes.
type IgnoreRules struct {
	patterns []string
}

// LoadIgnoreRules reads .lodeignore at the repo root. One doublestar
// pattern per line; blank lines and lines starting with '#' are skipped.
// A missing file yields empty rules.
func (r *Repo) LoadIgnoreRules() (*IgnoreRules, error) {
	f, err := os.Open(filepath.Join(r.RootDir, ".lodeignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return &IgnoreRules{}, nil
		}
		return nil, fmt.Errorf("load ignore rules: %w", err)
	}
	defer f.Close()

	rules := &IgnoreRules{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !doublestar.ValidatePattern(line) {
			return nil, fmt.Errorf("load ignore rules: invalid pattern %q", line)
		}
		rules.patterns = append(rules.patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load ignore rules: %w", err)
	}
	return rules, nil
}

// Ignored reports whether a repo-relative slash path is excluded. The
// repository directory itself is always excluded.
func (rules *IgnoreRules) Ignored(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if relPath == ".lode" || strings.HasPrefix(relPath, ".lode/") {
		return true
	}
	for _, pattern := range rules.patterns {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		// A pattern naming a directory excludes everything beneath it.
		if ok, _ := doublestar.Match(pattern+"/**", relPath); ok {
			return true
		}
	}
	return false
}
