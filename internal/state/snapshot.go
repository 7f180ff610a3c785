package state

import "tunedex/internal/catalog"

// Source records which operation produced the visible result list.
type Source int

const (
	// SourceLibrary means results came from the local catalog in catalog
	// order (artist, album, title).
	SourceLibrary Source = iota
	// SourceSearch means results came from a remote search in relevance
	// order.
	SourceSearch
)

// Snapshot is the authoritative application state: the visible result list
// and the currently highlighted track. Snapshots are immutable; every
// transition replaces the whole value. Selected is nil whenever the result
// list has been replaced and no highlight event has re-established it.
type Snapshot struct {
	Results  []catalog.Track
	Selected *catalog.Track
	Source   Source
}

// Lookup finds a track in the result list by video id.
func (s Snapshot) Lookup(videoID string) *catalog.Track {
	if videoID == "" {
		return nil
	}
	for i := range s.Results {
		if s.Results[i].VideoID == videoID {
			track := s.Results[i]
			return &track
		}
	}
	return nil
}

// SameResults reports whether two snapshots show the same result list, so
// consumers can skip rebuilding list widgets when only the selection moved.
func (s Snapshot) SameResults(other Snapshot) bool {
	if len(s.Results) != len(other.Results) {
		return false
	}
	for i := range s.Results {
		if s.Results[i] != other.Results[i] {
			return false
		}
	}
	return true
}
