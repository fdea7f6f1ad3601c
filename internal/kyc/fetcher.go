package kyc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageFetcher retrieves raw image bytes from a remote URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher downloads document images with a plain HTTP GET. One attempt
// per call; retry policy belongs to the caller. The zero value is usable
// and fetches with a default 30s-timeout client.
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}}
}

var defaultFetchClient = &http.Client{Timeout: 30 * time.Second}

func (f *HTTPFetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return defaultFetchClient
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{Err: err}
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return nil, &DownloadError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadError{Err: fmt.Errorf("received non-200 status code: %d", resp.StatusCode)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DownloadError{Err: err}
	}
	return data, nil
}
