package configsource

import (
	"context"
	"os"

	"github.com/eduquiz/backend/internal/domain/assessment"
)

// FileSource reads the config document from disk. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
type FileSource struct {
	path string
}

var _ Source = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(ctx context.Context) (assessment.AppConfig, error) {
	if err := ctx.Err(); err != nil {
		return assessment.AppConfig{}, &UnavailableError{Source: s.path, Reason: "cancelled", Wrapped: err}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return assessment.AppConfig{}, &UnavailableError{Source: s.path, Reason: "read file", Wrapped: err}
	}

	cfg, err := decode(data, formatFor(s.path))
	if err != nil {
		return assessment.AppConfig{}, &UnavailableError{Source: s.path, Reason: "decode", Wrapped: err}
	}
	return cfg, nil
}
