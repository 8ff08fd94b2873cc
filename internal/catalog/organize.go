package catalog

import (
	"fmt"
	"sort"

	"streamcatalog/internal/model"
)

// resolutionRank is the fixed quality tier per resolution label. Unknown
// labels rank 0. Built once at process start.
var resolutionRank = map[string]float64{
	"4320p": 13, "2160p": 12, "1920p": 11, "1440p": 10, "1280p": 9,
	"1080p": 8, "960p": 7, "852p": 6, "720p": 5, "640p": 4,
	"568p": 3, "480p": 2, "416p": 1.5, "360p": 1, "240p": 0.5,
}

// videoQualityScore combines resolution tier and bitrate proxy into one
// descending sort key
func videoQualityScore(resolution string, tbr int) float64 {
	return resolutionRank[resolution]*1000 + float64(orderingKey(tbr))
}

// organizeCatalog ranks every category best-first and synthesizes the MP3
// conversion option
func organizeCatalog(cat *model.Catalog) {
	cat.CompleteVideos = rankCompleteVideos(cat.CompleteVideos, func(a, b model.CompleteOption) bool {
		return videoQualityScore(a.Resolution, a.TBR) > videoQualityScore(b.Resolution, b.TBR)
	})
	cat.VideoOnly = rankVideoOnly(cat.VideoOnly)
	cat.AudioOnly = rankAudioOnly(cat.AudioOnly)
	augmentAudio(cat)
}

// augmentAudio guarantees an MP3 option: prepended when real audio streams
// exist without a true MP3, appended from the best complete video when no
// audio stream exists at all.
func augmentAudio(cat *model.Catalog) {
	if len(cat.AudioOnly) > 0 {
		for _, a := range cat.AudioOnly {
			if a.Ext == "MP3" {
				return
			}
		}
		converted := append([]model.AudioOption{convertOption(cat.AudioOnly[0].ID)}, cat.AudioOnly...)
		cat.AudioOnly = converted
		return
	}
	if len(cat.CompleteVideos) > 0 {
		cat.AudioOnly = append(cat.AudioOnly, convertOption(cat.CompleteVideos[0].ID))
	}
}

// convertOption is the synthesized MP3-320 entry the download collaborator
// resolves by transcoding the source stream
func convertOption(sourceID string) model.AudioOption {
	return model.AudioOption{
		ID:       "mp3_320",
		Ext:      "MP3",
		Codec:    "mp3",
		Bitrate:  320,
		SizeMB:   0,
		Protocol: "convert",
		Label:    "MP3 320kbps (converted)",
		Convert:  true,
		Source:   sourceID,
	}
}

// rankCompleteVideos sorts a copy best-first; on any sorting anomaly the
// original insertion order is returned, since a best-effort ranking beats a
// failed response.
func rankCompleteVideos(opts []model.CompleteOption, better func(a, b model.CompleteOption) bool) []model.CompleteOption {
	sorted := make([]model.CompleteOption, len(opts))
	copy(sorted, opts)
	err := trySort(len(sorted), func(i, j int) bool {
		return better(sorted[i], sorted[j])
	}, func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})
	if err != nil {
		return opts
	}
	return sorted
}

func rankVideoOnly(opts []model.VideoOption) []model.VideoOption {
	sorted := make([]model.VideoOption, len(opts))
	copy(sorted, opts)
	err := trySort(len(sorted), func(i, j int) bool {
		return videoQualityScore(sorted[i].Resolution, sorted[i].TBR) >
			videoQualityScore(sorted[j].Resolution, sorted[j].TBR)
	}, func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})
	if err != nil {
		return opts
	}
	return sorted
}

func rankAudioOnly(opts []model.AudioOption) []model.AudioOption {
	sorted := make([]model.AudioOption, len(opts))
	copy(sorted, opts)
	err := trySort(len(sorted), func(i, j int) bool {
		return orderingKey(sorted[i].Bitrate) > orderingKey(sorted[j].Bitrate)
	}, func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})
	if err != nil {
		return opts
	}
	return sorted
}

// trySort runs a stable sort and converts any panic into an error so the
// caller can fall back to insertion order
func trySort(n int, less func(i, j int) bool, swap func(i, j int)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sort failed: %v", r)
		}
	}()
	sort.Stable(funcSorter{n: n, less: less, swap: swap})
	return nil
}

type funcSorter struct {
	n    int
	less func(i, j int) bool
	swap func(i, j int)
}

func (s funcSorter) Len() int           { return s.n }
func (s funcSorter) Less(i, j int) bool { return s.less(i, j) }
func (s funcSorter) Swap(i, j int)      { s.swap(i, j) }
