package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"streamcatalog/internal/model"
	"streamcatalog/internal/storage"
	"streamcatalog/pkg/logger"
	"streamcatalog/pkg/validator"

	"go.uber.org/zap"
)

// DownloadService pushes download jobs to the worker and stores the results
type DownloadService struct {
	workerURL      string
	httpClient     *http.Client
	storageManager *storage.Manager
}

// NewDownloadService creates a new download service
func NewDownloadService(host string, port int, timeout int, sm *storage.Manager) *DownloadService {
	return &DownloadService{
		workerURL: fmt.Sprintf("http://%s:%d", host, port),
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		storageManager: sm,
	}
}

// Download resolves a catalog identifier into a stored file. Synthesized
// identifiers (mp3_320, m4a_extract_*) do not name real streams: they
// instruct the worker to extract and transcode audio from the best matching
// stream instead.
func (s *DownloadService) Download(req *model.DownloadRequest) (*model.DownloadResponse, error) {
	reqBody := map[string]string{
		"url":       req.URL,
		"format_id": req.FormatID,
	}
	switch {
	case req.FormatID == "mp3_320":
		reqBody["extract_audio"] = "mp3"
		reqBody["audio_quality"] = "320"
	case strings.HasPrefix(req.FormatID, "m4a_extract_"):
		reqBody["extract_audio"] = "m4a"
		reqBody["audio_quality"] = "256"
	}
	bodyBytes, _ := json.Marshal(reqBody)

	httpReq, err := http.NewRequest("POST", s.workerURL+"/api/download", bytes.NewBuffer(bodyBytes))
	if err != nil {
		logger.Logger.Error("Failed to create download request", zap.Error(err))
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		logger.Logger.Error("Download failed", zap.Error(err), zap.String("url", req.URL))
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Logger.Warn("Failed download response", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	filename := validator.SanitizeFilename(filenameFromResponse(resp))
	filename = validator.TruncateFilename(filename, 180)
	fileData, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Logger.Error("Failed to read download body", zap.Error(err))
		return nil, err
	}

	if !s.storageManager.ValidateFileSize(int64(len(fileData))) {
		logger.Logger.Warn("File size exceeds limit",
			zap.String("filename", filename),
			zap.Int("size", len(fileData)))
		return nil, fmt.Errorf("file size exceeds maximum limit of %dMB", s.storageManager.MaxVideoSizeMB())
	}

	if err := s.storageManager.EnsureDownloadDir(); err != nil {
		logger.Logger.Error("Failed to create download directory", zap.Error(err))
		return nil, err
	}

	downloadPath := s.storageManager.DownloadPath(filename)
	if err := os.WriteFile(downloadPath, fileData, 0644); err != nil {
		logger.Logger.Error("Failed to write file", zap.Error(err))
		return nil, err
	}
	logger.Logger.Info("File downloaded", zap.String("path", downloadPath))

	downloadID := fmt.Sprintf("%d", time.Now().UnixNano())
	file := &model.DownloadedFile{
		Filename: filename,
		FilePath: downloadPath,
		Size:     int64(len(fileData)),
		URL:      req.URL,
	}
	if err := s.storageManager.SaveFile(downloadID, file); err != nil {
		return nil, err
	}

	return &model.DownloadResponse{
		ID:           downloadID,
		Title:        filename,
		DownloadLink: fmt.Sprintf("/api/download/%s", downloadID),
		ExpiresAt:    file.ExpiresAt.Unix(),
	}, nil
}

// filenameFromResponse extracts the filename from the worker's
// Content-Disposition header, including RFC 5987 filename* parameters
func filenameFromResponse(resp *http.Response) string {
	cd := resp.Header.Get("Content-Disposition")
	if cd == "" {
		return "video_download.mp4"
	}

	// ParseMediaType decodes RFC 5987 filename* parameters into "filename"
	if _, params, err := mime.ParseMediaType(cd); err == nil {
		if fn := params["filename"]; fn != "" {
			return filepath.Base(fn)
		}
	}

	// Legacy split for headers mime.ParseMediaType rejects
	if parts := strings.Split(cd, "filename="); len(parts) > 1 {
		return filepath.Base(strings.Trim(parts[1], "\""))
	}
	return "video_download.mp4"
}

// GetDownloadFile retrieves a downloaded file for streaming
func (s *DownloadService) GetDownloadFile(fileID string) (*model.DownloadedFile, error) {
	file := s.storageManager.GetFile(fileID)
	if file == nil {
		return nil, fmt.Errorf("file not found")
	}
	return file, nil
}

// GetFileSize returns the size of a downloaded file
func (s *DownloadService) GetFileSize(fileID string) (int64, error) {
	file := s.storageManager.GetFile(fileID)
	if file == nil {
		return 0, fmt.Errorf("file not found")
	}
	return file.Size, nil
}
