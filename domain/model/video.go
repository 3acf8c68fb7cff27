package model

import (
	"net/url"
	"strings"
)

// VideoReference is a validated YouTube video link. RawURL keeps the user's
// input untouched; VideoID is empty until ParseVideoReference accepts it.
type VideoReference struct {
	RawURL  string `json:"raw_url"`
	VideoID string `json:"video_id"`
}

// VideoContent holds whatever the fetchers managed to collect for a video.
// Any field may be empty; partial data is normal, not exceptional.
type VideoContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Transcript  string `json:"transcript"`
}

// HasMetadata reports whether both title and description were obtained.
// Generation requires both; otherwise the caller must fall back to manual input.
func (c VideoContent) HasMetadata() bool {
	return c.Title != "" && c.Description != ""
}

// ParseVideoReference validates a YouTube video URL and extracts its video id.
// Accepted forms:
//   - https://www.youtube.com/watch?v=ID (also youtube.com; first v value wins)
//   - https://youtu.be/ID
//
// Anything else is rejected.
func ParseVideoReference(raw string) (VideoReference, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return VideoReference{RawURL: raw}, false
	}

	switch parsed.Host {
	case "www.youtube.com", "youtube.com":
		if parsed.Path != "/watch" {
			return VideoReference{RawURL: raw}, false
		}
		ids, ok := parsed.Query()["v"]
		if !ok || len(ids) == 0 || ids[0] == "" {
			return VideoReference{RawURL: raw}, false
		}
		return VideoReference{RawURL: raw, VideoID: ids[0]}, true
	case "youtu.be":
		id := strings.TrimPrefix(parsed.Path, "/")
		if id == "" {
			return VideoReference{RawURL: raw}, false
		}
		return VideoReference{RawURL: raw, VideoID: id}, true
	}
	return VideoReference{RawURL: raw}, false
}
