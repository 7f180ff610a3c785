package musicsearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tunedex/internal/catalog"
	"tunedex/internal/logging"
)

// Gateway translates remote catalog queries into normalized tracks. Results
// are deduplicated by video id and persisted to the catalog store before they
// are returned, so every successful search also grows the local library.
//
// Construct one Gateway and reuse it for the process lifetime.
type Gateway struct {
	client Client
	store  *catalog.Store
	limit  int
	logger *slog.Logger
}

// NewGateway wires a gateway to the remote client and the catalog store.
func NewGateway(client Client, store *catalog.Store, limit int, logger *slog.Logger) *Gateway {
	if limit <= 0 {
		limit = 25
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gateway{
		client: client,
		store:  store,
		limit:  limit,
		logger: logging.WithComponent(logger, "musicsearch"),
	}
}

// Search queries the remote service and returns the parsed, deduplicated
// tracks in relevance order. Remote failures come back wrapped in ErrRemote;
// persistence failures in catalog.ErrStore. An empty result set is a success.
func (g *Gateway) Search(ctx context.Context, query string) ([]catalog.Track, error) {
	items, err := g.client.Search(ctx, query, g.limit)
	if err != nil {
		g.logger.Warn("remote search failed", "query", query, logging.Error(err))
		return nil, err
	}

	tracks := parseItems(items)
	g.logger.Debug("parsed search response",
		"query", query,
		"raw_items", len(items),
		"tracks", len(tracks),
	)

	if len(tracks) > 0 {
		inserted, err := g.store.UpsertMany(ctx, tracks)
		if err != nil {
			return nil, fmt.Errorf("persist search results: %w", err)
		}
		g.logger.Info("search results cached", "query", query, "results", len(tracks), "new_rows", inserted)
	}

	return tracks, nil
}

// parseItems normalizes raw items, dropping any without a usable identifier.
// Within one response the last item seen for a video id supplies the metadata
// while the id keeps its first-seen position.
func parseItems(items []RawItem) []catalog.Track {
	order := make([]string, 0, len(items))
	byID := make(map[string]catalog.Track, len(items))
	for _, item := range items {
		track, ok := parseItem(item)
		if !ok {
			continue
		}
		if _, seen := byID[track.VideoID]; !seen {
			order = append(order, track.VideoID)
		}
		byID[track.VideoID] = track
	}

	tracks := make([]catalog.Track, 0, len(order))
	for _, id := range order {
		tracks = append(tracks, byID[id])
	}
	return tracks
}

func parseItem(item RawItem) (catalog.Track, bool) {
	id := strings.TrimSpace(item.VideoID)
	if id == "" {
		return catalog.Track{}, false
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = catalog.UnknownSentinel
	}

	names := make([]string, 0, len(item.Artists))
	for _, artist := range item.Artists {
		names = append(names, artist.Name)
	}

	album := catalog.SingleSentinel
	if item.Album != nil && strings.TrimSpace(item.Album.Name) != "" {
		album = strings.TrimSpace(item.Album.Name)
	}

	duration := catalog.UnknownSentinel
	if item.DurationSeconds != nil {
		duration = catalog.FormatDuration(*item.DurationSeconds)
	}

	return catalog.Track{
		VideoID:    id,
		Title:      title,
		Artist:     catalog.JoinArtists(names),
		AlbumName:  album,
		Duration:   duration,
		Link:       catalog.LinkFor(id),
		IsExplicit: item.IsExplicit,
	}, true
}
