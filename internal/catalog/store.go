package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"

	"tunedex/internal/config"
)

// ErrStore marks fatal storage failures so callers can tell "could not read
// the catalog" apart from "the catalog is empty". Duplicate-key conflicts are
// absorbed by the store and never surface through this sentinel.
var ErrStore = errors.New("catalog store error")

// Store manages the local track library backed by SQLite. A file lock beside
// the database enforces single-process ownership; all access goes through the
// one connection pool this process holds.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the library database, acquires the catalog
// lock, and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Catalog.Path
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("catalog %s is in use by another tunedex instance", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection and the catalog lock. Safe to call
// once at shutdown.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// UpsertMany inserts the given tracks in one transaction, ignoring any whose
// video id is already present. Existing rows are left untouched. Returns the
// number of newly inserted rows.
func (s *Store) UpsertMany(ctx context.Context, tracks []Track) (int64, error) {
	if len(tracks) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin upsert: %v", ErrStore, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO tracks
        (video_id, title, artist, album_name, duration, link, is_explicit, added_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%w: prepare upsert: %v", ErrStore, err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	var inserted int64
	for _, track := range tracks {
		if strings.TrimSpace(track.VideoID) == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx,
			track.VideoID,
			track.Title,
			track.Artist,
			track.AlbumName,
			track.Duration,
			track.Link,
			boolToInt(track.IsExplicit),
			now,
		)
		if err != nil {
			// The deferred rollback undoes earlier inserts, so never
			// report a partial count.
			return 0, fmt.Errorf("%w: insert track %s: %v", ErrStore, track.VideoID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%w: rows affected: %v", ErrStore, err)
		}
		inserted += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit upsert: %v", ErrStore, err)
	}
	return inserted, nil
}

// LoadAll returns every stored track ordered by (artist, album, title) under a
// locale-neutral collation. Calling it twice without intervening writes yields
// identical ordering. An empty library returns an empty slice, not an error.
func (s *Store) LoadAll(ctx context.Context) ([]Track, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+trackColumns+` FROM tracks ORDER BY video_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: load tracks: %v", ErrStore, err)
	}
	defer rows.Close()

	tracks := []Track{}
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan track: %v", ErrStore, err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tracks: %v", ErrStore, err)
	}

	sortTracks(tracks)
	return tracks, nil
}

// Count returns the number of stored tracks.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tracks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count tracks: %v", ErrStore, err)
	}
	return count, nil
}

// Health reports diagnostic information about the library database.
type Health struct {
	DBPath         string
	DatabaseExists bool
	TableExists    bool
	TotalTracks    int64
	IntegrityCheck bool
}

// CheckHealth inspects the database file and its contents.
func (s *Store) CheckHealth(ctx context.Context) (Health, error) {
	health := Health{DBPath: s.path}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat library database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("library database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var tableName string
	row := s.db.QueryRowContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'tracks'")
	if err := row.Scan(&tableName); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return health, fmt.Errorf("query table info: %w", err)
		}
	} else {
		health.TableExists = true
	}

	if health.TableExists {
		if err := s.db.QueryRowContext(connCtx, "SELECT COUNT(1) FROM tracks").Scan(&health.TotalTracks); err != nil {
			return health, fmt.Errorf("count tracks: %w", err)
		}
	}

	var integrity string
	if err := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrity, "ok")

	return health, nil
}

const trackColumns = "video_id, title, artist, album_name, duration, link, is_explicit"

func scanTrack(scanner interface{ Scan(dest ...any) error }) (Track, error) {
	var (
		track    Track
		album    sql.NullString
		duration sql.NullString
		explicit int
	)
	if err := scanner.Scan(
		&track.VideoID,
		&track.Title,
		&track.Artist,
		&album,
		&duration,
		&track.Link,
		&explicit,
	); err != nil {
		return Track{}, err
	}
	track.AlbumName = album.String
	track.Duration = duration.String
	track.IsExplicit = explicit != 0
	return track, nil
}

// collator provides deterministic locale-neutral string ordering for library
// views. One instance per sort: collators are not safe for concurrent use.
func sortTracks(tracks []Track) {
	c := collate.New(language.Und)
	sort.SliceStable(tracks, func(i, j int) bool {
		if cmp := c.CompareString(tracks[i].Artist, tracks[j].Artist); cmp != 0 {
			return cmp < 0
		}
		if cmp := c.CompareString(tracks[i].AlbumName, tracks[j].AlbumName); cmp != 0 {
			return cmp < 0
		}
		if cmp := c.CompareString(tracks[i].Title, tracks[j].Title); cmp != 0 {
			return cmp < 0
		}
		return tracks[i].VideoID < tracks[j].VideoID
	})
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
