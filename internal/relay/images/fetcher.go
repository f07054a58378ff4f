// Package images downloads referenced images into project directories.
package images

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/storyboard-studio/storyboard-relay/internal/metrics"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/domain"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/drive"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/service"
)

// FileExt is the extension given to every stored image regardless of its
// actual format.
const FileExt = ".png"

// Fetcher downloads images with a browser-like User-Agent.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates a fetcher. A non-positive timeout falls back to
// service.ImageTimeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = service.ImageTimeout
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// NewFileName returns a random 32-char hex name with FileExt.
func NewFileName() string {
	id := uuid.New()
	return hex.EncodeToString(id[:]) + FileExt
}

// Fetch downloads rawURL (after Drive link resolution) into the project
// directory and returns its public path. Any failure is logged and returned;
// callers skip the image and carry on.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, project domain.Project) (string, error) {
	logger := service.NewLogger(ctx)
	start := time.Now()

	localPath, err := f.fetch(ctx, rawURL, project)
	metrics.RecordImageDownload(time.Since(start), err)
	if err != nil {
		logger.LogErrorf("download_image", "error downloading image %s: %v", rawURL, err)
		return "", err
	}

	logger.LogInfof("download_image", "downloaded: %s -> %s", rawURL, localPath)
	return localPath, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string, project domain.Project) (string, error) {
	downloadURL := drive.Resolve(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", domain.ErrDownloadFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", domain.ErrDownloadFailed, resp.StatusCode)
	}

	filename := NewFileName()
	target := filepath.Join(project.Dir, filename)
	if err := writeFile(target, resp.Body); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}

	return project.ImageURL(filename), nil
}

// writeFile streams r into a new file at path, removing it on failure.
func writeFile(path string, r io.Reader) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
