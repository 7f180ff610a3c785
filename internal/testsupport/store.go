package testsupport

import (
	"context"
	"fmt"
	"testing"

	"tunedex/internal/catalog"
	"tunedex/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Track builds a catalog track with derived link and plausible defaults. The
// suffix distinguishes identity and display fields.
func Track(suffix string) catalog.Track {
	id := "vid-" + suffix
	return catalog.Track{
		VideoID:   id,
		Title:     "Title " + suffix,
		Artist:    "Artist " + suffix,
		AlbumName: "Album " + suffix,
		Duration:  "03:30",
		Link:      catalog.LinkFor(id),
	}
}

// SeedTracks inserts n generated tracks into the store.
func SeedTracks(t testing.TB, store *catalog.Store, n int) []catalog.Track {
	t.Helper()

	tracks := make([]catalog.Track, 0, n)
	for i := 0; i < n; i++ {
		tracks = append(tracks, Track(fmt.Sprintf("%03d", i)))
	}
	if _, err := store.UpsertMany(context.Background(), tracks); err != nil {
		t.Fatalf("seed tracks: %v", err)
	}
	return tracks
}
