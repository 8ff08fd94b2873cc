package catalog

import (
	"fmt"
	"strings"

	"streamcatalog/internal/model"
)

// platformPolicy captures the points where the platform pipelines diverge:
// pre-filtering, classification, deduplication scope and the final
// organize/augment step. Everything else is shared.
type platformPolicy struct {
	platform   string                        // catalog platform label; "" uses the extractor key
	skip       func(Descriptor) bool         // drops a descriptor before classification
	classify   func(Descriptor) streamKind   // overrides the generic cascade when set
	onUnknown  func(Descriptor) streamKind   // second chance for unknown descriptors
	dedupeByID bool                          // dedupe complete entries by raw identifier
	complete   func(Descriptor) model.CompleteOption // overrides the generic complete shape
	finish     func(*model.Catalog)
}

// Builder runs the classification pipeline. It is stateless across calls and
// safe for concurrent use; all working state lives in one Build invocation.
type Builder struct {
	cfg model.CatalogConfig
}

// NewBuilder creates a catalog builder with the given classifier tuning
func NewBuilder(cfg model.CatalogConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build classifies, deduplicates and ranks the metadata's stream descriptors
// into a catalog, using the pipeline variant matching the source URL.
func (b *Builder) Build(rawURL string, meta *model.MediaMetadata) *model.Catalog {
	return b.run(meta, b.policyFor(rawURL))
}

func (b *Builder) run(meta *model.MediaMetadata, pol platformPolicy) *model.Catalog {
	cat := &model.Catalog{
		VideoInfo:      buildVideoInfo(meta, pol.platform),
		CompleteVideos: []model.CompleteOption{},
		VideoOnly:      []model.VideoOption{},
		AudioOnly:      []model.AudioOption{},
	}

	cls := classifier{cfg: b.cfg}
	seenComplete := make(map[string]bool)
	seenVideo := make(map[string]bool)
	seenAudio := make(map[string]bool)

	for _, raw := range meta.Formats {
		d := Descriptor(raw)

		if pol.skip != nil && pol.skip(d) {
			continue
		}

		var kind streamKind
		if pol.classify != nil {
			kind = pol.classify(d)
		} else {
			kind = cls.classify(d)
		}
		if kind == kindUnknown && pol.onUnknown != nil {
			kind = pol.onUnknown(d)
		}

		switch kind {
		case kindAudio:
			opt := buildAudioOption(d)
			key := fmt.Sprintf("%s_%d_%s", d.lowerField("ext"), opt.Bitrate, opt.Codec)
			if seenAudio[key] {
				continue
			}
			seenAudio[key] = true
			cat.AudioOnly = append(cat.AudioOnly, opt)

		case kindVideo:
			opt := buildVideoOption(d)
			key := fmt.Sprintf("%s_%s_%s_%d", opt.Resolution, d.lowerField("ext"), opt.Codec, opt.TBR)
			if seenVideo[key] {
				continue
			}
			seenVideo[key] = true
			cat.VideoOnly = append(cat.VideoOnly, opt)

		case kindComplete:
			var opt model.CompleteOption
			if pol.complete != nil {
				opt = pol.complete(d)
			} else {
				opt = buildCompleteOption(d)
			}
			key := fmt.Sprintf("%s_%s_%d", opt.Resolution, d.lowerField("ext"), opt.TBR)
			if pol.dedupeByID {
				key = opt.ID
			}
			if seenComplete[key] {
				continue
			}
			seenComplete[key] = true
			cat.CompleteVideos = append(cat.CompleteVideos, opt)
		}
	}

	if pol.finish != nil {
		pol.finish(cat)
	}
	return cat
}

func buildVideoInfo(meta *model.MediaMetadata, platform string) model.VideoInfo {
	info := model.VideoInfo{
		ID:         meta.ID,
		Title:      meta.Title,
		Duration:   meta.Duration,
		Thumbnail:  meta.Thumbnail,
		Uploader:   meta.Uploader,
		WebpageURL: meta.WebpageURL,
		Platform:   platform,
	}
	if info.Title == "" {
		info.Title = "Unknown"
	}
	if info.Uploader == "" {
		info.Uploader = "Unknown"
	}
	if info.Platform == "" {
		info.Platform = meta.ExtractorKey
	}
	if info.Platform == "" {
		info.Platform = "Unknown"
	}
	return info
}

func buildAudioOption(d Descriptor) model.AudioOption {
	ext := strings.ToUpper(d.lowerField("ext"))
	bitrate := estimateBitrate(d)
	return model.AudioOption{
		ID:       d.stringField("format_id"),
		Ext:      ext,
		Codec:    d.codecShortName("acodec"),
		Bitrate:  bitrate,
		SizeMB:   sizeMB(d),
		Protocol: d.protocol(),
		Label:    fmt.Sprintf("Audio %s %dkbps", ext, bitrate),
	}
}

func buildVideoOption(d Descriptor) model.VideoOption {
	ext := strings.ToUpper(d.lowerField("ext"))
	height := d.intField("height")
	width := d.intField("width")
	res := resolutionLabel(height, width)
	return model.VideoOption{
		ID:         d.stringField("format_id"),
		Ext:        ext,
		Resolution: res,
		Width:      width,
		Height:     height,
		FPS:        d.intField("fps"),
		Codec:      d.codecShortName("vcodec"),
		TBR:        estimateBitrate(d),
		SizeMB:     sizeMB(d),
		Protocol:   d.protocol(),
		Label:      fmt.Sprintf("%s %s", ext, res),
	}
}

func buildCompleteOption(d Descriptor) model.CompleteOption {
	ext := strings.ToUpper(d.lowerField("ext"))
	height := d.intField("height")
	width := d.intField("width")
	res := resolutionLabel(height, width)
	return model.CompleteOption{
		ID:         d.stringField("format_id"),
		Ext:        ext,
		Resolution: res,
		Width:      width,
		Height:     height,
		TBR:        estimateBitrate(d),
		SizeMB:     sizeMB(d),
		Protocol:   d.protocol(),
		Label:      fmt.Sprintf("%s %s (Complete)", ext, res),
	}
}
