package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"skintone-studio/logger"
)

// maxHTTPModelBytes bounds a single model download over HTTP
const maxHTTPModelBytes = 64 << 20

// ModelSourceInterface fetches model files by URL
type ModelSourceInterface interface {
	Fetch(ctx context.Context, modelURL string) ([]byte, error)
}

// ModelSource fetches models over HTTP(S), from Google Drive (drive://<id> or Drive share
// links) or from local files (file://), with an optional disk cache
type ModelSource struct {
	http  *http.Client
	drive DriveServiceInterface
	cache *ModelCache
	log   *logger.Logger
}

// NewModelSource creates a new ModelSource. drive may be nil when Drive is not configured
func NewModelSource(httpClient *http.Client, drive DriveServiceInterface, cache *ModelCache, log *logger.Logger) *ModelSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ModelSource{http: httpClient, drive: drive, cache: cache, log: log}
}

// Ensure ModelSource implements ModelSourceInterface
var _ ModelSourceInterface = (*ModelSource)(nil)

// Fetch returns the bytes of the model at modelURL
func (s *ModelSource) Fetch(ctx context.Context, modelURL string) ([]byte, error) {
	modelURL = strings.TrimSpace(modelURL)
	if modelURL == "" {
		return nil, fmt.Errorf("empty model url")
	}

	if fileID, ok := DriveFileID(modelURL); ok {
		return s.fetchDrive(ctx, modelURL, fileID)
	}
	if strings.HasPrefix(modelURL, "file://") {
		return os.ReadFile(strings.TrimPrefix(modelURL, "file://"))
	}
	return s.fetchHTTP(ctx, modelURL)
}

func (s *ModelSource) fetchDrive(ctx context.Context, modelURL, fileID string) ([]byte, error) {
	if s.drive == nil {
		return nil, fmt.Errorf("google drive is not configured for %s", modelURL)
	}
	checksum, err := s.drive.Checksum(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if data, ok := s.cache.Read(modelURL, checksum); ok {
		s.log.Debug("Model cache hit", "url", modelURL)
		return data, nil
	}
	data, err := s.drive.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}
	s.store(modelURL, checksum, data)
	return data, nil
}

func (s *ModelSource) fetchHTTP(ctx context.Context, modelURL string) ([]byte, error) {
	if data, ok := s.cache.Read(modelURL, ""); ok {
		s.log.Debug("Model cache hit", "url", modelURL)
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid model url: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch model: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxHTTPModelBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	if len(data) > maxHTTPModelBytes {
		return nil, fmt.Errorf("model exceeds %d bytes", maxHTTPModelBytes)
	}
	s.store(modelURL, "", data)
	return data, nil
}

func (s *ModelSource) store(modelURL, version string, data []byte) {
	if err := s.cache.Write(modelURL, version, data); err != nil {
		s.log.Warn("⚠️ Failed to cache model", "url", modelURL, "error", err)
		return
	}
	if s.cache.Enabled() {
		s.log.Debug("✓ Model cached", "url", modelURL, "bytes", len(data))
	}
}

// DriveFileID extracts the file id of drive://<id>, https://drive.google.com/uc?id=<id>
// and https://drive.google.com/file/d/<id>/... URLs
func DriveFileID(raw string) (string, bool) {
	if strings.HasPrefix(raw, "drive://") {
		id := strings.Trim(strings.TrimPrefix(raw, "drive://"), "/")
		return id, id != ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != "drive.google.com" {
		return "", false
	}
	if id := u.Query().Get("id"); id != "" {
		return id, true
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "file" && parts[i+1] == "d" {
			return parts[i+2], true
		}
	}
	return "", false
}
