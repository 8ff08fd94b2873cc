package catalog

import (
	"fmt"
	"math"
	"strings"
)

// defaultBitrates is the fall-back kbps estimate per container when the
// descriptor reports no usable bitrate at all
var defaultBitrates = map[string]int{
	"m4a": 128, "mp3": 192, "aac": 128,
	"opus": 96, "mp4": 500, "webm": 400,
}

const fallbackBitrate = 128

// estimateBitrate derives a kbps figure from the first usable bitrate field,
// then from the audio sample rate, then from the container default table.
func estimateBitrate(d Descriptor) int {
	for _, key := range []string{"tbr", "vbr", "abr", "bitrate"} {
		if bitrate := coerceInt(d[key], 0); bitrate != 0 {
			return bitrate
		}
	}

	if asr := coerceInt(d["asr"], 0); asr > 0 {
		return int(float64(asr) / 1000 * 0.128)
	}

	if bitrate, ok := defaultBitrates[d.lowerField("ext")]; ok {
		return bitrate
	}
	return fallbackBitrate
}

// sizeMB converts the descriptor's file size to megabytes with two-decimal
// rounding, 0 when unknown
func sizeMB(d Descriptor) float64 {
	size := d.fileSizeBytes()
	if size <= 0 {
		return 0.0
	}
	return math.Round(float64(size)/(1024*1024)*100) / 100
}

// resolutionLabel renders a height-first resolution tag like "1080p"
func resolutionLabel(height, width int) string {
	if height > 0 {
		return fmt.Sprintf("%dp", height)
	}
	if width > 0 {
		return fmt.Sprintf("%dp", width)
	}
	return "unknown"
}

// codecShortName strips the profile/level suffix from a raw codec field,
// e.g. "avc1.640028" becomes "avc1". Nil or absent yields "unknown".
func (d Descriptor) codecShortName(key string) string {
	if d[key] == nil {
		return "unknown"
	}
	name := d.stringField(key)
	if name == "" {
		return "unknown"
	}
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
