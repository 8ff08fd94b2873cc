package catalog

import (
	"strings"

	"streamcatalog/internal/model"
)

// streamKind is the classification of one descriptor
type streamKind int

const (
	kindUnknown streamKind = iota
	kindAudio
	kindVideo
	kindComplete
)

// audioKeywords in an identifier or note are the strongest audio signal
var audioKeywords = []string{"audio", "mp3", "m4a", "opus", "aac"}

var audioExtensions = map[string]bool{
	"m4a": true, "mp3": true, "aac": true, "opus": true,
	"ogg": true, "flac": true, "wav": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "webm": true, "mkv": true, "flv": true, "avi": true,
}

// streamingProtocols deliver segmented video; such descriptors are video-only
// unless a stronger signal says otherwise
var streamingProtocols = map[string]bool{
	"m3u8": true, "m3u8_native": true, "http_dash_segments": true,
}

// classifier decides what payload a descriptor carries. Signals are ordered
// from most to least reliable so a missing field degrades into the next
// stage instead of misclassifying.
type classifier struct {
	cfg model.CatalogConfig
}

func (c classifier) classify(d Descriptor) streamKind {
	vcodec := d.codecField("vcodec")
	acodec := d.codecField("acodec")

	formatID := d.lowerField("format_id")
	formatNote := d.lowerField("format_note")
	ext := d.lowerField("ext")

	height := d.intField("height")
	width := d.intField("width")

	// Stage 1: keyword hints in identifier or note
	for _, keyword := range audioKeywords {
		if strings.Contains(formatID, keyword) || strings.Contains(formatNote, keyword) {
			return kindAudio
		}
	}

	// Stage 2: codec presence
	if vcodec == "none" && acodec != "none" {
		return kindAudio
	}
	if vcodec != "none" && acodec == "none" {
		return kindVideo
	}
	if !codecMissing(vcodec) && !codecMissing(acodec) {
		return kindComplete
	}

	// Stage 3: dimensions with codec fields present but empty, as some
	// extractors emit for muxed streams. Both codecs reported "none" stays
	// unresolved here so platform fallbacks can decide.
	if (height > 0 || width > 0) && codecUnreported(vcodec) && codecUnreported(acodec) {
		return kindComplete
	}

	// Stage 4: container extension
	if audioExtensions[ext] {
		return kindAudio
	}
	if videoExtensions[ext] && (height > 0 || width > 0) {
		protocol := d.lowerField("protocol")

		if strings.Contains(formatID, "h264") || strings.Contains(formatID, "bytevc1") {
			if size := d.fileSizeBytes(); size > c.cfg.CompleteHintBytes {
				return kindComplete
			}
		}

		if streamingProtocols[protocol] {
			return kindVideo
		}

		if protocol == "https" || protocol == "http" {
			if size := d.fileSizeBytes(); size > c.cfg.CompleteHTTPBytes {
				return kindComplete
			}
			return kindVideo
		}
	}

	return kindUnknown
}

// codecMissing reports whether a normalized codec string carries no usable
// codec information
func codecMissing(codec string) bool {
	return codec == "none" || codec == "unknown" || codec == ""
}

// codecUnreported reports a codec field that is present but empty, as some
// extractors emit for muxed streams
func codecUnreported(codec string) bool {
	return codec == "unknown" || codec == ""
}
