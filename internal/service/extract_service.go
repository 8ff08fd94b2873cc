package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"streamcatalog/internal/catalog"
	"streamcatalog/internal/model"
	"streamcatalog/pkg/logger"

	"go.uber.org/zap"
)

// ErrExtractFailed marks failures where the extractor collaborator could not
// resolve the URL. Handlers map it to a client-facing bad-input response.
var ErrExtractFailed = errors.New("extraction failed")

// ExtractService fetches raw stream metadata from the extractor worker and
// turns it into a ranked catalog
type ExtractService struct {
	workerURL  string
	httpClient *http.Client
	builder    *catalog.Builder
}

// NewExtractService creates a new extract service
func NewExtractService(host string, port int, timeout int, builder *catalog.Builder) *ExtractService {
	return &ExtractService{
		workerURL: fmt.Sprintf("http://%s:%d", host, port),
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		builder: builder,
	}
}

// GetCatalog fetches metadata for a video URL and builds the download catalog
func (s *ExtractService) GetCatalog(videoURL string) (*model.Catalog, error) {
	endpoint := s.workerURL + "/api/info"

	reqBody := map[string]string{"url": videoURL}
	bodyBytes, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		logger.Logger.Error("Failed to create request", zap.Error(err))
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Logger.Error("Failed to reach extractor worker", zap.Error(err), zap.String("url", videoURL))
		return nil, fmt.Errorf("failed to reach extractor worker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := readErrorDetail(resp.Body)
		logger.Logger.Warn("Extractor rejected URL",
			zap.Int("status", resp.StatusCode),
			zap.String("url", videoURL),
			zap.String("detail", detail))
		return nil, fmt.Errorf("%w: %s", ErrExtractFailed, detail)
	}

	var metadata model.MediaMetadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		logger.Logger.Error("Failed to decode extractor response", zap.Error(err))
		return nil, err
	}

	cat := s.builder.Build(videoURL, &metadata)
	logger.Logger.Info("Catalog built",
		zap.String("title", cat.VideoInfo.Title),
		zap.String("platform", cat.VideoInfo.Platform),
		zap.Int("complete", len(cat.CompleteVideos)),
		zap.Int("video_only", len(cat.VideoOnly)),
		zap.Int("audio_only", len(cat.AudioOnly)))
	return cat, nil
}

// readErrorDetail pulls a usable message out of a worker error response
func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "extractor returned no detail"
	}

	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
