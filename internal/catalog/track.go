package catalog

import (
	"fmt"
	"strings"
)

// Sentinel display values used when the remote service omits a field.
const (
	UnknownSentinel = "N/A"
	SingleSentinel  = "Single"
)

// linkTemplate is the canonical URL derived from a track's video id.
const linkTemplate = "https://music.youtube.com/watch?v=%s"

// Track is the normalized representation of one catalog entry. VideoID is the
// primary key: two tracks with the same VideoID are the same track, and the
// store keeps whichever arrived first.
type Track struct {
	VideoID    string
	Title      string
	Artist     string
	AlbumName  string
	Duration   string
	Link       string
	IsExplicit bool
}

// LinkFor derives the canonical track URL from a video id.
func LinkFor(videoID string) string {
	return fmt.Sprintf(linkTemplate, videoID)
}

// FormatDuration renders a duration in whole seconds as MM:SS. Durations of an
// hour or longer keep accumulating minutes (61:05) rather than adding an hour
// field, matching the remote service's display convention.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return UnknownSentinel
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// JoinArtists renders a contributor list as a comma-joined display string,
// falling back to the unknown sentinel for an empty set.
func JoinArtists(names []string) string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	if len(cleaned) == 0 {
		return UnknownSentinel
	}
	return strings.Join(cleaned, ", ")
}
