package store

import (
	"context"
	"errors"

	"github.com/eduquiz/backend/internal/domain/lesson"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store persists the whole lesson collection. The authoring side loads it once
// and saves complete snapshots; there is no per-row update path.
type Store interface {
	LoadLessons(ctx context.Context) ([]*lesson.Lesson, error)
	SaveLessons(ctx context.Context, lessons []*lesson.Lesson) error
	Close() error
}
