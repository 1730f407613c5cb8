package configsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eduquiz/backend/internal/domain/assessment"
)

const maxConfigSize = 4 << 20

// HTTPSource fetches the config document from a URL.
type HTTPSource struct {
	url    string
	client *http.Client // reused across calls
}

// Compile-time check: *HTTPSource satisfies the Source interface.
var _ Source = (*HTTPSource)(nil)

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSource) Load(ctx context.Context) (assessment.AppConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return assessment.AppConfig{}, &UnavailableError{Source: s.url, Reason: "build request", Wrapped: err}
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := s.client.Do(req)
	if err != nil {
		return assessment.AppConfig{}, &UnavailableError{Source: s.url, Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return assessment.AppConfig{}, &UnavailableError{
			Source: s.url,
			Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxConfigSize))
	if err != nil {
		return assessment.AppConfig{}, &UnavailableError{Source: s.url, Reason: "read body", Wrapped: err}
	}

	cfg, err := decode(body, s.format(resp.Header.Get("Content-Type")))
	if err != nil {
		return assessment.AppConfig{}, &UnavailableError{Source: s.url, Reason: "decode", Wrapped: err}
	}
	return cfg, nil
}

// format prefers the response content type and falls back to the URL path.
func (s *HTTPSource) format(contentType string) Format {
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return FormatYAML
	}
	if u, err := url.Parse(s.url); err == nil {
		return formatFor(u.Path)
	}
	return FormatJSON
}
