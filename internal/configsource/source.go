// Package configsource loads the AppConfig a test session is built from,
// either over HTTP or from a local JSON or YAML file.
package configsource

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/eduquiz/backend/internal/domain/assessment"
)

var ErrConfigUnavailable = errors.New("configuration unavailable")

type Source interface {
	Load(ctx context.Context) (assessment.AppConfig, error)
}

// UnavailableError is returned when a source cannot produce a config, so the
// caller can tell "unreachable or unreadable" apart from an invalid config.
// It matches ErrConfigUnavailable with errors.Is.
type UnavailableError struct {
	Source  string
	Reason  string
	Wrapped error
}

func (e *UnavailableError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("configuration unavailable: %s: %s: %v", e.Source, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("configuration unavailable: %s: %s", e.Source, e.Reason)
}

func (e *UnavailableError) Unwrap() error {
	return e.Wrapped
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrConfigUnavailable
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// formatFor guesses the encoding from a file name or URL path.
func formatFor(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func decode(data []byte, format Format) (assessment.AppConfig, error) {
	var cfg assessment.AppConfig
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	return cfg, err
}
