package handler

import (
	"errors"
	"net/http"

	"streamcatalog/internal/model"
	"streamcatalog/internal/service"
	"streamcatalog/pkg/logger"
	"streamcatalog/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler handles catalog retrieval requests
type CatalogHandler struct {
	extractService *service.ExtractService
	cfg            *model.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(es *service.ExtractService, cfg *model.Config) *CatalogHandler {
	return &CatalogHandler{
		extractService: es,
		cfg:            cfg,
	}
}

// GetFormats handles POST /api/formats
func (h *CatalogHandler) GetFormats(c *gin.Context) {
	var req model.FormatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger.Warn("Invalid formats request", zap.Error(err))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_request",
			Message: "Video URL is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if !validator.ValidateURL(req.URL, h.cfg.Security.AllowedDomains) {
		logger.Logger.Warn("Invalid URL domain",
			zap.String("url", req.URL),
			zap.Strings("allowed_domains", h.cfg.Security.AllowedDomains))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "invalid_domain",
			Message: "URL domain is not allowed",
			Code:    http.StatusBadRequest,
		})
		return
	}

	cat, err := h.extractService.GetCatalog(req.URL)
	if err != nil {
		if errors.Is(err, service.ErrExtractFailed) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Error:   "extract_failed",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}
		logger.Logger.Error("Failed to build catalog", zap.Error(err), zap.String("url", req.URL))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "fetch_failed",
			Message: "Failed to fetch video information",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, cat)
}

// HealthCheck handles GET /api/health
func (h *CatalogHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stream-catalog",
	})
}
