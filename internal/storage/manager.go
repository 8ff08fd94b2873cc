package storage

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"streamcatalog/internal/model"
	"streamcatalog/pkg/logger"

	"go.uber.org/zap"
)

// Manager tracks downloaded files and removes them once their TTL passes
type Manager struct {
	cfg      *model.StorageConfig
	files    map[string]*model.DownloadedFile
	mu       sync.RWMutex
	quitChan chan bool
}

// NewManager creates a new storage manager
func NewManager(cfg *model.StorageConfig) *Manager {
	return &Manager{
		cfg:      cfg,
		files:    make(map[string]*model.DownloadedFile),
		quitChan: make(chan bool),
	}
}

// Start starts the cleanup routine
func (m *Manager) Start() {
	go m.cleanupRoutine()
}

// Stop stops the cleanup routine
func (m *Manager) Stop() {
	select {
	case m.quitChan <- true:
	default:
		if logger.Logger != nil {
			logger.Logger.Warn("Could not send stop signal to cleanup routine")
		}
	}
}

// SaveFile registers a downloaded file for tracking and expiry
func (m *Manager) SaveFile(id string, file *model.DownloadedFile) error {
	file.ID = id
	file.CreatedAt = time.Now()
	file.ExpiresAt = file.CreatedAt.Add(time.Duration(m.cfg.FileTTLSeconds) * time.Second)

	m.mu.Lock()
	m.files[id] = file
	m.mu.Unlock()

	if logger.Logger != nil {
		logger.Logger.Info("File saved", zap.String("id", id), zap.String("filename", file.Filename))
	}
	return nil
}

func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(time.Duration(m.cfg.CleanupInterval) * time.Second)
	defer ticker.Stop()

	if logger.Logger != nil {
		logger.Logger.Info("Storage cleanup routine started",
			zap.Int("cleanup_interval_seconds", m.cfg.CleanupInterval),
			zap.Int("file_ttl_seconds", m.cfg.FileTTLSeconds))
	}

	for {
		select {
		case <-m.quitChan:
			if logger.Logger != nil {
				logger.Logger.Info("Storage cleanup routine stopped")
			}
			return
		case <-ticker.C:
			m.cleanupExpiredFiles()
		}
	}
}

func (m *Manager) cleanupExpiredFiles() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var expired []string

	for id, file := range m.files {
		if !now.After(file.ExpiresAt) {
			continue
		}
		if err := os.Remove(file.FilePath); err != nil && !os.IsNotExist(err) {
			if logger.Logger != nil {
				logger.Logger.Error("Failed to remove file",
					zap.String("id", id),
					zap.String("path", file.FilePath),
					zap.Error(err))
			}
		}
		// Drop from tracking whether or not the file was still on disk
		expired = append(expired, id)
	}

	for _, id := range expired {
		delete(m.files, id)
	}

	if len(expired) > 0 && logger.Logger != nil {
		logger.Logger.Info("Storage cleanup completed",
			zap.Int("removed", len(expired)),
			zap.Int("remaining_tracked_files", len(m.files)))
	}
}

// GetFile gets file info by ID, nil when unknown or already cleaned up
func (m *Manager) GetFile(id string) *model.DownloadedFile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files[id]
}

// ValidateFileSize checks if file size is within limits
func (m *Manager) ValidateFileSize(sizeBytes int64) bool {
	return sizeBytes <= int64(m.cfg.MaxVideoSizeMB)*1024*1024
}

// MaxVideoSizeMB returns the configured size cap
func (m *Manager) MaxVideoSizeMB() int {
	return m.cfg.MaxVideoSizeMB
}

// EnsureDownloadDir ensures download directory exists
func (m *Manager) EnsureDownloadDir() error {
	return os.MkdirAll(m.cfg.DownloadDir, 0755)
}

// DownloadPath returns the path where a file should be stored
func (m *Manager) DownloadPath(filename string) string {
	return filepath.Join(m.cfg.DownloadDir, filename)
}

// TrackedFilesCount returns the number of files currently being tracked
func (m *Manager) TrackedFilesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// ManualCleanup triggers a cleanup run immediately (useful for testing)
func (m *Manager) ManualCleanup() {
	m.cleanupExpiredFiles()
}
