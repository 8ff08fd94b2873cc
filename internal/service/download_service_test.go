package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"streamcatalog/internal/model"
	"streamcatalog/internal/storage"
)

func testStorageManager(t *testing.T) *storage.Manager {
	t.Helper()
	return storage.NewManager(&model.StorageConfig{
		DownloadDir:     t.TempDir(),
		MaxVideoSizeMB:  10,
		CleanupInterval: 3600,
		FileTTLSeconds:  3600,
	})
}

func TestDownloadStoresFile(t *testing.T) {
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode worker request: %v", err)
		}
		if req["format_id"] != "22" {
			t.Errorf("format_id = %q, want 22", req["format_id"])
		}
		if _, ok := req["extract_audio"]; ok {
			t.Error("plain format must not request audio extraction")
		}
		w.Header().Set("Content-Disposition", `attachment; filename="clip.mp4"`)
		w.Write([]byte("video-bytes"))
	}))
	defer worker.Close()

	s := &DownloadService{
		workerURL:      worker.URL,
		httpClient:     worker.Client(),
		storageManager: testStorageManager(t),
	}

	resp, err := s.Download(&model.DownloadRequest{URL: "https://youtube.com/watch?v=1", FormatID: "22"})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if resp.Title != "clip.mp4" {
		t.Errorf("title = %q", resp.Title)
	}
	if resp.DownloadLink != "/api/download/"+resp.ID {
		t.Errorf("download link = %q", resp.DownloadLink)
	}

	size, err := s.GetFileSize(resp.ID)
	if err != nil || size != int64(len("video-bytes")) {
		t.Errorf("GetFileSize = %d, %v", size, err)
	}
}

func TestDownloadSynthesizedIDRequestsExtraction(t *testing.T) {
	var gotBody map[string]string
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Disposition", `attachment; filename="song.mp3"`)
		w.Write([]byte("audio"))
	}))
	defer worker.Close()

	s := &DownloadService{
		workerURL:      worker.URL,
		httpClient:     worker.Client(),
		storageManager: testStorageManager(t),
	}

	if _, err := s.Download(&model.DownloadRequest{URL: "https://youtube.com/watch?v=1", FormatID: "mp3_320"}); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if gotBody["extract_audio"] != "mp3" || gotBody["audio_quality"] != "320" {
		t.Errorf("worker body = %v, want mp3/320 extraction", gotBody)
	}

	if _, err := s.Download(&model.DownloadRequest{URL: "https://youtube.com/watch?v=1", FormatID: "m4a_extract_140"}); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if gotBody["extract_audio"] != "m4a" || gotBody["audio_quality"] != "256" {
		t.Errorf("worker body = %v, want m4a/256 extraction", gotBody)
	}
}

func TestDownloadRejectsOversizedFile(t *testing.T) {
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2*1024*1024))
	}))
	defer worker.Close()

	sm := storage.NewManager(&model.StorageConfig{
		DownloadDir:    t.TempDir(),
		MaxVideoSizeMB: 1,
	})
	s := &DownloadService{workerURL: worker.URL, httpClient: worker.Client(), storageManager: sm}

	if _, err := s.Download(&model.DownloadRequest{URL: "https://youtube.com/watch?v=1"}); err == nil {
		t.Fatal("oversized download accepted")
	}
}

func TestFilenameFromResponse(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{`attachment; filename="video.mp4"`, "video.mp4"},
		{`attachment; filename*=UTF-8''my%20clip.mp4`, "my clip.mp4"},
		{``, "video_download.mp4"},
		{`attachment; filename="../../etc/passwd"`, "passwd"},
	}

	for _, tc := range cases {
		resp := &http.Response{Header: http.Header{}}
		if tc.header != "" {
			resp.Header.Set("Content-Disposition", tc.header)
		}
		if got := filenameFromResponse(resp); got != tc.want {
			t.Errorf("header %q: filename = %q, want %q", tc.header, got, tc.want)
		}
	}
}
