// Package store persists templates and projects as whole collections over a
// key-value port. Load returns everything stored under a key, Save replaces
// it; there is no partial update.
package store

import (
	"context"
	"errors"
)

// Keys under which the collection stores write their JSON documents.
const (
	TemplatesKey = "cardforge.templates"
	ProjectsKey  = "cardforge.projects"
)

// ErrNotFound reports a missing template, project or card.
var ErrNotFound = errors.New("store: not found")

// KV is the persistence port. Load returns nil data and a nil error when the
// key has never been written.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
