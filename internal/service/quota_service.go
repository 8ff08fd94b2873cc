package service

import (
	"sync"
	"time"

	"streamcatalog/internal/model"
	"streamcatalog/pkg/logger"

	"go.uber.org/zap"
)

// QuotaEntry tracks quota usage per IP
type QuotaEntry struct {
	IP         string
	UsedMB     int64
	ResetTime  time.Time
	LastUpdate time.Time
}

// QuotaService manages daily per-IP download quotas
type QuotaService struct {
	cfg      *model.QuotaConfig
	quotas   map[string]*QuotaEntry
	mu       sync.RWMutex
	quitChan chan bool
}

// NewQuotaService creates a new quota service
func NewQuotaService(cfg *model.QuotaConfig) *QuotaService {
	service := &QuotaService{
		cfg:      cfg,
		quotas:   make(map[string]*QuotaEntry),
		quitChan: make(chan bool),
	}
	if cfg.Enabled {
		go service.resetRoutine()
	}
	return service
}

// CheckQuota reports whether the IP may download requestedSizeMB more, and
// how much quota remains
func (qs *QuotaService) CheckQuota(ip string, requestedSizeMB int64) (bool, int64) {
	if !qs.cfg.Enabled {
		return true, qs.cfg.DailyLimitMB
	}

	qs.mu.Lock()
	defer qs.mu.Unlock()

	entry, exists := qs.quotas[ip]
	if !exists {
		entry = &QuotaEntry{
			IP:         ip,
			ResetTime:  qs.nextResetTime(),
			LastUpdate: time.Now(),
		}
		qs.quotas[ip] = entry
	}

	now := time.Now()
	if now.After(entry.ResetTime) {
		entry.UsedMB = 0
		entry.ResetTime = qs.nextResetTime()
		entry.LastUpdate = now
	}

	remaining := qs.cfg.DailyLimitMB - entry.UsedMB
	if remaining <= 0 {
		logger.Logger.Warn("Quota exhausted", zap.String("ip", ip), zap.Int64("limit_mb", qs.cfg.DailyLimitMB))
		return false, 0
	}
	if requestedSizeMB > remaining {
		logger.Logger.Warn("Quota insufficient",
			zap.String("ip", ip),
			zap.Int64("requested_mb", requestedSizeMB),
			zap.Int64("remaining_mb", remaining))
		return false, remaining
	}
	return true, remaining
}

// AddUsage adds to quota usage for an IP
func (qs *QuotaService) AddUsage(ip string, sizeMB int64) {
	if !qs.cfg.Enabled {
		return
	}

	qs.mu.Lock()
	defer qs.mu.Unlock()

	entry, exists := qs.quotas[ip]
	if !exists {
		qs.quotas[ip] = &QuotaEntry{
			IP:         ip,
			UsedMB:     sizeMB,
			ResetTime:  qs.nextResetTime(),
			LastUpdate: time.Now(),
		}
		return
	}
	entry.UsedMB += sizeMB
	entry.LastUpdate = time.Now()
}

// GetQuotaInfo returns current quota info for IP
func (qs *QuotaService) GetQuotaInfo(ip string) map[string]interface{} {
	if !qs.cfg.Enabled {
		return map[string]interface{}{"enabled": false}
	}

	qs.mu.RLock()
	defer qs.mu.RUnlock()

	used := int64(0)
	resetTime := qs.nextResetTime()
	if entry, exists := qs.quotas[ip]; exists {
		used = entry.UsedMB
		resetTime = entry.ResetTime
	}

	remaining := qs.cfg.DailyLimitMB - used
	if remaining < 0 {
		remaining = 0
	}

	return map[string]interface{}{
		"enabled":      true,
		"used_mb":      used,
		"limit_mb":     qs.cfg.DailyLimitMB,
		"remaining_mb": remaining,
		"reset_time":   resetTime,
	}
}

func (qs *QuotaService) nextResetTime() time.Time {
	now := time.Now()
	resetTime := time.Date(now.Year(), now.Month(), now.Day(), qs.cfg.ResetHour, qs.cfg.ResetMinute, 0, 0, now.Location())
	if resetTime.Before(now) {
		resetTime = resetTime.AddDate(0, 0, 1)
	}
	return resetTime
}

func (qs *QuotaService) resetRoutine() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-qs.quitChan:
			logger.Logger.Info("Quota service stopped")
			return
		case <-ticker.C:
			qs.resetExpired()
		}
	}
}

func (qs *QuotaService) resetExpired() {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	now := time.Now()
	resetCount := 0
	for _, entry := range qs.quotas {
		if now.After(entry.ResetTime) {
			entry.UsedMB = 0
			entry.ResetTime = qs.nextResetTime()
			entry.LastUpdate = now
			resetCount++
		}
	}
	if resetCount > 0 {
		logger.Logger.Info("Quota reset completed", zap.Int("entries_reset", resetCount))
	}
}

// Stop stops the quota service
func (qs *QuotaService) Stop() {
	if qs.cfg.Enabled {
		qs.quitChan <- true
	}
}
