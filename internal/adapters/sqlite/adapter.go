// Package sqlite provides a SQLite-backed implementation of the
// snapshot store port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/novatorem/novatorem/internal/core/domain"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// The store keeps exactly one row: the most recent snapshot. A fixed
// primary key makes every save an upsert over the same row.
const snapshotRowID = 1

// Adapter implements the snapshot store port for SQLite
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Save upserts the single snapshot row.
func (a *Adapter) Save(ctx context.Context, s domain.TrackSnapshot) error {
	query := `
		INSERT INTO snapshot (
			id, title, artist, album, artwork_url, track_url, artist_url,
			track_id, provider, played_at, saved_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			artist=excluded.artist,
			album=excluded.album,
			artwork_url=excluded.artwork_url,
			track_url=excluded.track_url,
			artist_url=excluded.artist_url,
			track_id=excluded.track_id,
			provider=excluded.provider,
			played_at=excluded.played_at,
			saved_at=excluded.saved_at;
	`

	var playedAt sql.NullInt64
	if s.PlayedAt != nil {
		playedAt = sql.NullInt64{Int64: s.PlayedAt.UnixMilli(), Valid: true}
	}

	if _, err := a.db.ExecContext(
		ctx,
		query,
		snapshotRowID,
		s.Title,
		s.Artist,
		s.Album,
		s.ArtworkURL,
		s.TrackURL,
		s.ArtistURL,
		s.TrackID,
		string(s.Provider),
		playedAt,
		time.Now().UnixMilli(),
	); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Latest loads the stored snapshot. An empty store returns
// domain.ErrNotFound. The snapshot always comes back in its
// recently-played form regardless of the playback state it was saved
// in.
func (a *Adapter) Latest(ctx context.Context) (domain.TrackSnapshot, error) {
	query := `
		SELECT title, artist, album, artwork_url, track_url, artist_url,
			track_id, provider, played_at, saved_at
		FROM snapshot
		WHERE id = ?
	`

	var (
		s        domain.TrackSnapshot
		provider string
		playedAt sql.NullInt64
		savedAt  int64
	)
	if err := a.db.QueryRowContext(ctx, query, snapshotRowID).Scan(
		&s.Title,
		&s.Artist,
		&s.Album,
		&s.ArtworkURL,
		&s.TrackURL,
		&s.ArtistURL,
		&s.TrackID,
		&provider,
		&playedAt,
		&savedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.TrackSnapshot{}, domain.ErrNotFound
		}
		return domain.TrackSnapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.Provider = domain.Provider(provider)

	when := time.UnixMilli(savedAt).UTC()
	if playedAt.Valid {
		when = time.UnixMilli(playedAt.Int64).UTC()
	}

	return s.AsRecentlyPlayed(when), nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshot (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT,
		artwork_url TEXT,
		track_url TEXT,
		artist_url TEXT,
		track_id TEXT,
		provider TEXT NOT NULL,
		played_at INTEGER,
		saved_at INTEGER NOT NULL
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}
