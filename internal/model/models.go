package model

import "time"

// MediaMetadata is the raw extraction result returned by the extractor worker.
// Formats are kept as loose maps because no field is guaranteed present or
// correctly typed across platforms.
type MediaMetadata struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title"`
	Duration     float64                  `json:"duration"`
	Thumbnail    string                   `json:"thumbnail"`
	Uploader     string                   `json:"uploader"`
	WebpageURL   string                   `json:"webpage_url"`
	ExtractorKey string                   `json:"extractor_key"`
	Formats      []map[string]interface{} `json:"formats"`
}

// VideoInfo contains presentation metadata about the source video
type VideoInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Duration   float64 `json:"duration"`
	Thumbnail  string  `json:"thumbnail"`
	Uploader   string  `json:"uploader"`
	WebpageURL string  `json:"webpage_url"`
	Platform   string  `json:"platform"`
}

// AudioOption is a downloadable audio-only catalog entry
type AudioOption struct {
	ID       string  `json:"id"`
	Ext      string  `json:"ext"`
	Codec    string  `json:"codec"`
	Bitrate  int     `json:"bitrate"`
	SizeMB   float64 `json:"size_mb"`
	Protocol string  `json:"protocol"`
	Label    string  `json:"label"`
	Convert  bool    `json:"convert,omitempty"`
	Source   string  `json:"source,omitempty"`
}

// VideoOption is a downloadable video-only catalog entry
type VideoOption struct {
	ID         string  `json:"id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FPS        int     `json:"fps,omitempty"`
	Codec      string  `json:"codec"`
	TBR        int     `json:"tbr"`
	SizeMB     float64 `json:"size_mb"`
	Protocol   string  `json:"protocol"`
	Label      string  `json:"label"`
}

// CompleteOption is a muxed audio+video catalog entry
type CompleteOption struct {
	ID         string  `json:"id"`
	Ext        string  `json:"ext"`
	Resolution string  `json:"resolution"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Codec      string  `json:"codec,omitempty"`
	TBR        int     `json:"tbr"`
	SizeMB     float64 `json:"size_mb"`
	Protocol   string  `json:"protocol"`
	Label      string  `json:"label"`
}

// Catalog is the normalized, deduplicated, ranked set of download options
// for one source video.
type Catalog struct {
	VideoInfo      VideoInfo        `json:"video_info"`
	CompleteVideos []CompleteOption `json:"complete_videos"`
	VideoOnly      []VideoOption    `json:"video_only"`
	AudioOnly      []AudioOption    `json:"audio_only"`
}

// FormatsRequest asks for the catalog of a video URL
type FormatsRequest struct {
	URL string `json:"url" binding:"required"`
}

// DownloadRequest represents a user's download request
type DownloadRequest struct {
	URL      string `json:"url" binding:"required"`
	FormatID string `json:"format_id"`
}

// DownloadResponse represents the response to a download request
type DownloadResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DownloadLink string `json:"download_link"`
	ExpiresAt    int64  `json:"expires_at"`
}

// DownloadedFile tracks downloaded files for cleanup
type DownloadedFile struct {
	ID        string
	Filename  string
	FilePath  string
	Size      int64
	CreatedAt time.Time
	ExpiresAt time.Time
	URL       string
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
