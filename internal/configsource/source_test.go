package configsource_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eduquiz/backend/internal/configsource"
	"github.com/eduquiz/backend/internal/domain/assessment"
	"github.com/eduquiz/backend/internal/domain/quiz"
)

const configJSON = `{
  "disease": {"name": "Flu", "description": "Seasonal", "causes": ["virus"], "symptoms": ["fever"], "diagnosis": [], "treatment": ["rest"]},
  "quiz": {
    "title": "Flu check",
    "questions": [
      {"id": 1, "text": "Fever?", "type": "single", "answers": [
        {"id": "a", "text": "No", "score": 0, "explanation": "Good"},
        {"id": "b", "text": "Yes", "score": 5, "explanation": ""}
      ]}
    ],
    "scoring": {"ranges": [
      {"min": 0, "max": 4, "level": "Low", "color": "green", "interpretation": "ok", "recommendations": []},
      {"min": 5, "max": 10, "level": "High", "color": "red", "interpretation": "see a doctor", "recommendations": ["call"]}
    ]}
  },
  "doctor_link": "https://example.com/appointment"
}`

const configYAML = `
disease:
  name: Flu
quiz:
  title: Flu check
  questions:
    - id: 1
      text: Fever?
      type: multiple
      answers:
        - id: a
          text: "No"
          score: 0
        - id: b
          text: "Yes"
          score: 5
  scoring:
    ranges:
      - min: 0
        max: 5
        level: Low
`

func TestHTTPSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(configJSON))
	}))
	defer srv.Close()

	cfg, err := configsource.NewHTTPSource(srv.URL+"/config.json", time.Second).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Disease.Name != "Flu" || cfg.Quiz.Title != "Flu check" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Quiz.Questions) != 1 || cfg.Quiz.Questions[0].Answers[1].Score != 5 {
		t.Errorf("unexpected questions: %+v", cfg.Quiz.Questions)
	}
	if cfg.DoctorLink != "https://example.com/appointment" {
		t.Errorf("expected doctor link, got %q", cfg.DoctorLink)
	}
}

func TestHTTPSource_YAMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte(configYAML))
	}))
	defer srv.Close()

	cfg, err := configsource.NewHTTPSource(srv.URL+"/config", time.Second).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Quiz.Questions[0].Type != quiz.Multiple {
		t.Errorf("expected multiple, got %q", cfg.Quiz.Questions[0].Type)
	}
}

func TestHTTPSource_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }},
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"quiz": `)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := configsource.NewHTTPSource(srv.URL, time.Second).Load(context.Background())
			if !errors.Is(err, configsource.ErrConfigUnavailable) {
				t.Errorf("expected ErrConfigUnavailable, got %v", err)
			}
		})
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := configsource.NewHTTPSource(url, time.Second).Load(context.Background())
	var uerr *configsource.UnavailableError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected *UnavailableError, got %v", err)
	}
	if uerr.Wrapped == nil {
		t.Error("expected the transport error to be wrapped")
	}
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "config.json")
	yamlPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(jsonPath, []byte(configJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	fromJSON, err := configsource.NewFileSource(jsonPath).Load(context.Background())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	fromYAML, err := configsource.NewFileSource(yamlPath).Load(context.Background())
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}

	if fromJSON.Quiz.Title != fromYAML.Quiz.Title {
		t.Errorf("expected both formats to load the same title, got %q and %q", fromJSON.Quiz.Title, fromYAML.Quiz.Title)
	}
	if got := fromYAML.Quiz.Scoring.Ranges[0].Level; got != "Low" {
		t.Errorf("expected Low, got %q", got)
	}
}

func TestFileSource_Missing(t *testing.T) {
	_, err := configsource.NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	if !errors.Is(err, configsource.ErrConfigUnavailable) {
		t.Errorf("expected ErrConfigUnavailable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the underlying not-exist error, got %v", err)
	}
}

type countingSource struct {
	calls atomic.Int32
	fail  bool
}

func (s *countingSource) Load(ctx context.Context) (assessment.AppConfig, error) {
	s.calls.Add(1)
	if s.fail {
		return assessment.AppConfig{}, &configsource.UnavailableError{Source: "test", Reason: "down"}
	}
	return assessment.AppConfig{Quiz: assessment.Quiz{Title: "cached"}}, nil
}

func TestCached_LoadsOnce(t *testing.T) {
	src := &countingSource{}
	cached := configsource.NewCached(src)

	for i := 0; i < 3; i++ {
		cfg, err := cached.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Quiz.Title != "cached" {
			t.Errorf("unexpected config: %+v", cfg)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("expected one underlying load, got %d", got)
	}
}

func TestCached_RetriesAfterFailure(t *testing.T) {
	src := &countingSource{fail: true}
	cached := configsource.NewCached(src)

	if _, err := cached.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	src.fail = false
	if _, err := cached.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("expected two underlying loads, got %d", got)
	}
}
