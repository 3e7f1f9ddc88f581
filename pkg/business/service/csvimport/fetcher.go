package csvimport

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Fetcher resolves a source reference into a readable stream. Legacy
// exports arrive either over HTTP or as file drops on a share.
type Fetcher interface {
	Fetch(source string) (io.ReadCloser, error)
}

type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (f *HTTPFetcher) Fetch(source string) (io.ReadCloser, error) {
	resp, err := f.Client.Get(source)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return resp.Body, nil
}

type FileFetcher struct{}

func (f *FileFetcher) Fetch(source string) (io.ReadCloser, error) {
	return os.Open(strings.TrimPrefix(source, "file://"))
}

// NewFetcher picks the fetcher matching the source scheme.
func NewFetcher(source string) Fetcher {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPFetcher()
	}
	return &FileFetcher{}
}
