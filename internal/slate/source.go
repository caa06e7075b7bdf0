package slate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Source loads raw slate bytes from a local path or an http(s) URL
type Source struct {
	client *RateLimitedHTTPClient
	logger logrus.FieldLogger
}

// NewSource creates a slate source
func NewSource(cfg HTTPClientConfig, logger logrus.FieldLogger) *Source {
	if logger == nil {
		logger = logrus.New()
	}
	return &Source{
		client: NewRateLimitedHTTPClient(cfg, logger),
		logger: logger,
	}
}

// IsRemote reports whether the location is fetched over HTTP
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load returns the slate contents at location
func (s *Source) Load(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("slate location is required")
	}
	if !IsRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read slate file: %w", err)
		}
		return data, nil
	}

	resp, err := s.client.Get(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch slate: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read slate response: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"url": location, "bytes": len(data)}).Debug("Fetched remote slate")
	return data, nil
}

// Close releases the HTTP client
func (s *Source) Close() error {
	return s.client.Close()
}
