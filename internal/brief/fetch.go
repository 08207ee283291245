package brief

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// Fetch reads a brief from an http(s) URL, a file:// URL, or a plain path,
// capped at maxBytes. An empty source yields an empty brief.
func Fetch(ctx context.Context, src string, maxBytes int) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	if p, ok := strings.CutPrefix(src, "file://"); ok {
		return readCapped(p, maxBytes)
	}
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return readCapped(src, maxBytes)
	}

	c := retryablehttp.NewClient()
	c.Logger = nil
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("GET %s: %d", src, resp.StatusCode)
	}
	lr := &io.LimitedReader{R: resp.Body, N: int64(maxBytes)}
	b, err := io.ReadAll(lr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readCapped(path string, maxBytes int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck
	lr := &io.LimitedReader{R: f, N: int64(maxBytes)}
	b, err := io.ReadAll(lr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
