package catalog

import (
	"testing"

	"streamcatalog/internal/model"
)

func TestURLDetection(t *testing.T) {
	if !isTikTokURL("https://www.TikTok.com/@user/video/123") {
		t.Error("tiktok URL not detected")
	}
	if !isInstagramURL("https://www.Instagram.com/reel/xyz/") {
		t.Error("instagram URL not detected")
	}
	if isTikTokURL("https://www.youtube.com/watch?v=1") || isInstagramURL("https://vimeo.com/1") {
		t.Error("generic URLs misrouted")
	}
}

func TestTikTokScenario(t *testing.T) {
	meta := &model.MediaMetadata{
		ID:    "7123",
		Title: "Dance",
		Formats: []map[string]interface{}{
			{"format_id": "101", "ext": "mp4", "vcodec": "h264", "acodec": "aac", "height": float64(720), "width": float64(576), "tbr": float64(1300)},
			{"format_id": "download", "ext": "mp4", "vcodec": "h264", "acodec": "aac", "height": float64(1080)},
		},
	}

	cat := testBuilder().Build("https://www.tiktok.com/@user/video/7123", meta)

	if cat.VideoInfo.Platform != "TikTok" {
		t.Errorf("platform = %q, want TikTok", cat.VideoInfo.Platform)
	}
	if len(cat.CompleteVideos) != 1 {
		t.Fatalf("complete_videos = %+v, want 1 entry", cat.CompleteVideos)
	}
	got := cat.CompleteVideos[0]
	if got.ID != "101" || got.Resolution != "720p" || got.Codec != "h264" {
		t.Errorf("complete entry = %+v", got)
	}
	if len(cat.AudioOnly) != 1 {
		t.Fatalf("audio_only = %+v, want exactly the synthesized entry", cat.AudioOnly)
	}
	audio := cat.AudioOnly[0]
	if audio.ID != "mp3_320" || audio.Source != "101" || audio.Bitrate != 320 || !audio.Convert {
		t.Errorf("synthesized audio = %+v", audio)
	}
	if len(cat.VideoOnly) != 0 {
		t.Errorf("tiktok pipeline must not emit video_only entries: %+v", cat.VideoOnly)
	}
}

func TestTikTokStrictClassification(t *testing.T) {
	meta := &model.MediaMetadata{
		Formats: []map[string]interface{}{
			{"format_id": "vp9", "ext": "webm", "vcodec": "vp9", "acodec": "opus", "height": float64(1080)},
			{"format_id": "novid", "ext": "m4a", "vcodec": "none", "acodec": "aac"},
		},
	}

	cat := testBuilder().Build("https://tiktok.com/@u/video/1", meta)

	if len(cat.CompleteVideos) != 0 || len(cat.VideoOnly) != 0 || len(cat.AudioOnly) != 0 {
		t.Errorf("non h264/h265+aac descriptors must be dropped entirely: %+v", cat)
	}
}

func TestTikTokRanksByHeightAndDedupesByID(t *testing.T) {
	meta := &model.MediaMetadata{
		Formats: []map[string]interface{}{
			{"format_id": "low", "ext": "mp4", "vcodec": "h264", "acodec": "aac", "height": float64(540)},
			{"format_id": "high", "ext": "mp4", "vcodec": "h265", "acodec": "aac", "height": float64(1080)},
			{"format_id": "high", "ext": "mp4", "vcodec": "h265", "acodec": "aac", "height": float64(720)},
		},
	}

	cat := testBuilder().Build("https://tiktok.com/@u/video/2", meta)

	if len(cat.CompleteVideos) != 2 {
		t.Fatalf("complete_videos = %+v, want 2 after raw-id dedupe", cat.CompleteVideos)
	}
	if cat.CompleteVideos[0].ID != "high" || cat.CompleteVideos[0].Height != 1080 {
		t.Errorf("best entry = %+v, want id=high h=1080", cat.CompleteVideos[0])
	}
	if cat.AudioOnly[0].Source != "high" {
		t.Errorf("mp3 source = %q, want high", cat.AudioOnly[0].Source)
	}
}

func TestInstagramScenario(t *testing.T) {
	meta := &model.MediaMetadata{
		Formats: []map[string]interface{}{
			{"format_id": "ig1", "ext": "mp4", "vcodec": nil, "acodec": nil, "height": float64(1080), "width": float64(1920)},
		},
	}

	cat := testBuilder().Build("https://www.instagram.com/reel/xyz/", meta)

	if cat.VideoInfo.Platform != "Instagram" {
		t.Errorf("platform = %q, want Instagram", cat.VideoInfo.Platform)
	}
	if len(cat.CompleteVideos) != 1 {
		t.Fatalf("complete_videos = %+v, want the rescued descriptor", cat.CompleteVideos)
	}
	got := cat.CompleteVideos[0]
	if got.ID != "ig1" || got.Resolution != "1080p" {
		t.Errorf("rescued entry = %+v", got)
	}
}

func TestGenericDropsWhatInstagramRescues(t *testing.T) {
	meta := &model.MediaMetadata{
		Formats: []map[string]interface{}{
			{"format_id": "ig1", "ext": "mp4", "vcodec": nil, "acodec": nil, "height": float64(1080), "width": float64(1920)},
		},
	}

	cat := testBuilder().Build(genericURL, meta)

	if len(cat.CompleteVideos) != 0 {
		t.Errorf("generic pipeline must drop unknown descriptors: %+v", cat.CompleteVideos)
	}
}

func TestInstagramNoRescueWithoutBothDimensions(t *testing.T) {
	meta := &model.MediaMetadata{
		Formats: []map[string]interface{}{
			{"format_id": "ig2", "ext": "mp4", "vcodec": nil, "acodec": nil, "height": float64(1080)},
		},
	}

	cat := testBuilder().Build("https://instagram.com/p/abc/", meta)

	if len(cat.CompleteVideos) != 0 {
		t.Errorf("rescue requires both dimensions: %+v", cat.CompleteVideos)
	}
}
