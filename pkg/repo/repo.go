package repo

import (
	"github.com/lodevcs/lode/pkg/object"
)

// Repo represents an opened lode repository.
type Repo struct {
	RootDir string        // working directory root
	LodeDir string        // .lode/ directory
	Store   *object.Store // content-addressed object store
}
