package bbcode

import (
	"net/url"
	"strings"
)

// mediaKind is the result of auto-detecting an embed URL's provider.
type mediaKind int

const (
	mediaUnknown mediaKind = iota
	mediaYouTube
	mediaVimeo
	mediaDirectVideo
	mediaDirectAudio
)

var directVideoExts = []string{".mp4", ".webm", ".ogg", ".ogv"}
var directAudioExts = []string{".mp3", ".ogg", ".oga", ".wav", ".flac", ".m4a"}

func hasAnySuffixFold(path string, suffixes []string) bool {
	lower := strings.ToLower(path)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// detectMedia classifies an http(s) URL by host and path, returning the
// matched kind and, for YouTube/Vimeo, the extracted video id.
func detectMedia(u *url.URL) (mediaKind, string) {
	host := strings.ToLower(u.Hostname())
	switch host {
	case "youtube.com", "www.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return mediaYouTube, id
		}
		if strings.HasPrefix(u.Path, "/embed/") {
			return mediaYouTube, strings.TrimPrefix(u.Path, "/embed/")
		}
		return mediaYouTube, strings.TrimPrefix(u.Path, "/")
	case "youtu.be":
		return mediaYouTube, strings.TrimPrefix(u.Path, "/")
	case "vimeo.com", "www.vimeo.com":
		return mediaVimeo, strings.TrimPrefix(u.Path, "/")
	case "player.vimeo.com":
		return mediaVimeo, strings.TrimPrefix(strings.TrimPrefix(u.Path, "/video/"), "/")
	}
	if hasAnySuffixFold(u.Path, directVideoExts) {
		return mediaDirectVideo, ""
	}
	if hasAnySuffixFold(u.Path, directAudioExts) {
		return mediaDirectAudio, ""
	}
	return mediaUnknown, ""
}

// isVideoURL and isAudioURL expose the direct-file checks independently
// of provider detection, for callers (e.g. the explicit [video]/[audio]
// tags) that need to validate before falling back to a link.
func isVideoURL(u *url.URL) bool { return hasAnySuffixFold(u.Path, directVideoExts) }
func isAudioURL(u *url.URL) bool { return hasAnySuffixFold(u.Path, directAudioExts) }
