package catalog

import (
	"fmt"
	"strings"

	"streamcatalog/internal/model"
)

func isTikTokURL(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), "tiktok.com")
}

func isInstagramURL(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), "instagram.com")
}

// policyFor selects the pipeline variant for a source URL
func (b *Builder) policyFor(rawURL string) platformPolicy {
	switch {
	case isInstagramURL(rawURL):
		return b.instagramPolicy()
	case isTikTokURL(rawURL):
		return b.tiktokPolicy()
	default:
		return b.genericPolicy()
	}
}

func (b *Builder) genericPolicy() platformPolicy {
	return platformPolicy{
		skip:   skipPlaceholder,
		finish: organizeCatalog,
	}
}

// instagramPolicy rescues unknown descriptors with full dimensions: the
// Instagram extraction frequently omits codec fields even for valid muxed
// streams.
func (b *Builder) instagramPolicy() platformPolicy {
	return platformPolicy{
		platform: "Instagram",
		skip:     skipPlaceholder,
		onUnknown: func(d Descriptor) streamKind {
			if d.intField("height") > 0 && d.intField("width") > 0 {
				return kindComplete
			}
			return kindUnknown
		},
		finish: organizeCatalog,
	}
}

// tiktokPolicy classifies strictly: only h264/h265 + aac descriptors count,
// TikTok rarely exposes split streams. Deduplication is by raw identifier,
// ranking by height, and exactly one MP3 conversion option is synthesized
// from the best complete video.
func (b *Builder) tiktokPolicy() platformPolicy {
	return platformPolicy{
		platform: "TikTok",
		skip: func(d Descriptor) bool {
			return d.stringField("format_id") == "download"
		},
		classify: func(d Descriptor) streamKind {
			vcodec := d.codecField("vcodec")
			acodec := d.codecField("acodec")
			if (vcodec == "h264" || vcodec == "h265") && acodec == "aac" {
				return kindComplete
			}
			return kindUnknown
		},
		dedupeByID: true,
		complete:   tiktokCompleteOption,
		finish:     tiktokFinish,
	}
}

// skipPlaceholder drops storyboards, DRC variants, non-downloadable
// containers and the dimensionless sd/hd placeholders some extractors emit
func skipPlaceholder(d Descriptor) bool {
	ext := d.lowerField("ext")
	if ext == "mhtml" || ext == "3gp" {
		return true
	}
	id := d.lowerField("format_id")
	for _, marker := range []string{"sb-", "storyboard", "-drc"} {
		if strings.Contains(id, marker) {
			return true
		}
	}
	if (id == "sd" || id == "hd") && d.intField("height") == 0 && d.intField("width") == 0 {
		return true
	}
	return false
}

func tiktokCompleteOption(d Descriptor) model.CompleteOption {
	ext := strings.ToUpper(d.lowerField("ext"))
	height := d.intField("height")
	width := d.intField("width")
	res := resolutionLabel(height, width)
	codec := d.codecField("vcodec")
	return model.CompleteOption{
		ID:         d.stringField("format_id"),
		Ext:        ext,
		Resolution: res,
		Width:      width,
		Height:     height,
		Codec:      codec,
		TBR:        coerceInt(d["tbr"], 0),
		SizeMB:     sizeMB(d),
		Protocol:   d.protocol(),
		Label:      fmt.Sprintf("%s %s (%s)", ext, res, codec),
	}
}

// tiktokFinish ranks complete videos by height and always synthesizes the
// MP3 option, bypassing the generic audio augmentation
func tiktokFinish(cat *model.Catalog) {
	cat.CompleteVideos = rankCompleteVideos(cat.CompleteVideos, func(a, b model.CompleteOption) bool {
		return orderingKey(a.Height) > orderingKey(b.Height)
	})
	if len(cat.CompleteVideos) > 0 {
		cat.AudioOnly = append(cat.AudioOnly, convertOption(cat.CompleteVideos[0].ID))
	}
}
