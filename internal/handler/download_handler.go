package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"streamcatalog/internal/model"
	"streamcatalog/internal/service"
	"streamcatalog/pkg/logger"
	"streamcatalog/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DownloadHandler handles download-related requests
type DownloadHandler struct {
	downloadService *service.DownloadService
	quotaService    *service.QuotaService
	cfg             *model.Config
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(ds *service.DownloadService, cfg *model.Config, qs *service.QuotaService) *DownloadHandler {
	return &DownloadHandler{
		downloadService: ds,
		quotaService:    qs,
		cfg:             cfg,
	}
}

// StartDownload handles POST /api/download
func (h *DownloadHandler) StartDownload(c *gin.Context) {
	var req model.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger.Warn("Invalid download request", zap.Error(err))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if !validator.ValidateURL(req.URL, h.cfg.Security.AllowedDomains) {
		logger.Logger.Warn("Invalid URL domain", zap.String("url", req.URL))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_domain",
			Message: "URL domain is not allowed",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Empty format_id means best available; anything else must look like a
	// catalog identifier, including the synthesized conversion ids
	if req.FormatID != "" && !validator.ValidateFormatID(req.FormatID) {
		logger.Logger.Warn("Invalid format ID", zap.String("format_id", req.FormatID))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_format",
			Message: "Invalid format ID",
			Code:    http.StatusBadRequest,
		})
		return
	}

	clientIP := c.ClientIP()
	if h.cfg.Quota.Enabled {
		allowed, remainingMB := h.quotaService.CheckQuota(clientIP, 0)
		if !allowed && remainingMB == 0 {
			logger.Logger.Warn("Quota exhausted", zap.String("ip", clientIP))
			c.JSON(http.StatusPaymentRequired, model.ErrorResponse{
				Error:   "quota_exhausted",
				Message: "Daily download quota exhausted. Please try again after quota reset.",
				Code:    http.StatusPaymentRequired,
			})
			return
		}
	}

	downloadResp, err := h.downloadService.Download(&req)
	if err != nil {
		logger.Logger.Error("Download failed", zap.Error(err), zap.String("url", req.URL))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "download_failed",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if h.cfg.Quota.Enabled {
		if fileSizeBytes, err := h.downloadService.GetFileSize(downloadResp.ID); err == nil && fileSizeBytes > 0 {
			fileSizeMB := (fileSizeBytes + 1024*1024 - 1) / (1024 * 1024)
			h.quotaService.AddUsage(clientIP, fileSizeMB)
		}
	}

	c.JSON(http.StatusOK, downloadResp)
}

// GetFile handles GET /api/download/:id
func (h *DownloadHandler) GetFile(c *gin.Context) {
	fileID := c.Param("id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_id",
			Message: "File ID is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	file, err := h.downloadService.GetDownloadFile(fileID)
	if err != nil {
		logger.Logger.Warn("File not found", zap.String("file_id", fileID))
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:   "not_found",
			Message: "File not found or has expired",
			Code:    http.StatusNotFound,
		})
		return
	}

	if _, err := os.Stat(file.FilePath); err != nil {
		logger.Logger.Warn("File does not exist", zap.String("path", file.FilePath))
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:   "not_found",
			Message: "File no longer available",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.Header("Content-Disposition", buildContentDispositionHeader(file.Filename))
	c.Header("Content-Type", "application/octet-stream")
	c.File(file.FilePath)

	logger.Logger.Info("File downloaded by user",
		zap.String("file_id", fileID),
		zap.String("filename", file.Filename))
}

// buildContentDispositionHeader builds a Content-Disposition header with
// RFC 5987 encoding for unicode and special characters
func buildContentDispositionHeader(filename string) string {
	needsEncoding := strings.ContainsAny(filename, " \t\n\r\";\\,")
	for _, r := range filename {
		if r > 127 {
			needsEncoding = true
			break
		}
	}

	if !needsEncoding {
		return fmt.Sprintf(`attachment; filename="%s"`, filename)
	}
	return fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.QueryEscape(filename))
}
