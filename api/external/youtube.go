/* youtube.go
 * Contains helpers for normalising the video reference attached to a matchup
 */

package external

import (
	"regexp"
	"strings"
)

const youtubeEmbedPrefix = "https://www.youtube.com/embed/"

var (
	shortOrWatchPattern = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/watch\?v=)([^&\s]+)`)
	queryVideoPattern   = regexp.MustCompile(`[?&]v=([^&\s]+)`)
)

// ConvertToEmbedURL converts a youtube url into its embed form.
// Handles https://www.youtube.com/watch?v=ID, https://youtu.be/ID and embed urls (returned as is).
// Urls that can't be parsed are returned unchanged and an empty url returns an empty string
func ConvertToEmbedURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.Contains(url, "youtube.com/embed/") {
		return url
	}

	var videoID string
	if m := shortOrWatchPattern.FindStringSubmatch(url); m != nil {
		videoID = m[1]
	}
	// A v= query parameter wins over the path, e.g. youtube.com/watch?feature=share&v=ID
	if m := queryVideoPattern.FindStringSubmatch(url); m != nil {
		videoID = m[1]
	}
	if videoID == "" {
		return url
	}

	videoID = strings.SplitN(videoID, "&", 2)[0]
	videoID = strings.SplitN(videoID, "?", 2)[0]
	return youtubeEmbedPrefix + videoID
}
