package models

import (
	"regexp"
	"strings"
)

var youtubeIDPattern = regexp.MustCompile(
	`(?:youtube(?:-nocookie)?\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{8,11})`,
)

// EmbedURL returns the player URL for a YouTube link, or "" for anything else.
// A YouTube link whose id cannot be extracted yields the bare embed prefix.
func EmbedURL(videoURL string) string {
	if !strings.Contains(videoURL, "youtube") && !strings.Contains(videoURL, "youtu.be") {
		return ""
	}
	var id string
	if m := youtubeIDPattern.FindStringSubmatch(videoURL); m != nil {
		id = m[1]
	}
	return "https://www.youtube.com/embed/" + id
}
