package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

const (
	defaultUserAgent = "movie-search-bot/1.0"
	maxPayloadBytes  = 8 * 1024 * 1024
)

// Source retrieves one catalog snapshot. Implementations must be safe for
// concurrent use.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (domain.Catalog, error)
}

// HTTPSource fetches a JSON object of title→URL pairs over HTTP GET.
type HTTPSource struct {
	client    *http.Client
	endpoint  string
	userAgent string
	name      string
}

type HTTPSourceConfig struct {
	Endpoint  string
	UserAgent string
	Client    *http.Client
}

func NewHTTPSource(cfg HTTPSourceConfig) *HTTPSource {
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	name := endpoint
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		name = parsed.Host
	}
	return &HTTPSource{
		client:    client,
		endpoint:  endpoint,
		userAgent: userAgent,
		name:      name,
	}
}

// Name identifies the source in logs and metrics; it is the endpoint host.
func (s *HTTPSource) Name() string {
	return s.name
}

func (s *HTTPSource) Fetch(ctx context.Context) (domain.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("invalid endpoint: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Catalog{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.Catalog{}, fmt.Errorf("source HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return domain.Catalog{}, err
	}
	return parseCatalog(payload)
}

// parseCatalog decodes a flat JSON object, keeping the document key order so
// downstream tie-breaks are stable. Duplicate titles keep the first value.
func parseCatalog(payload []byte) (domain.Catalog, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))

	token, err := decoder.Token()
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("malformed catalog payload: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return domain.Catalog{}, fmt.Errorf("catalog payload is not a JSON object")
	}

	var catalog domain.Catalog
	seen := make(map[string]struct{})
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("malformed catalog payload: %w", err)
		}
		title, ok := keyToken.(string)
		if !ok {
			return domain.Catalog{}, fmt.Errorf("malformed catalog key")
		}

		var value string
		if err := decoder.Decode(&value); err != nil {
			return domain.Catalog{}, fmt.Errorf("catalog value for %q is not a string: %w", title, err)
		}

		title = strings.TrimSpace(title)
		value = strings.TrimSpace(value)
		if title == "" || value == "" {
			continue
		}
		if _, exists := seen[title]; exists {
			continue
		}
		seen[title] = struct{}{}
		catalog.Entries = append(catalog.Entries, domain.Entry{Title: title, URL: value})
	}

	if _, err := decoder.Token(); err != nil {
		return domain.Catalog{}, fmt.Errorf("malformed catalog payload: %w", err)
	}
	return catalog, nil
}
