package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

const artistColumns = `id, name, genres, city, state, phone, website, facebook_link,
	seeking_venue, seeking_description, image_link, created_at, updated_at`

const upcomingByArtist = `(SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time >= ?)`

// ArtistRepo provides CRUD and search for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(row rowScanner) (*model.Artist, error) {
	var (
		a                model.Artist
		genres           []byte
		created, updated int64
	)
	if err := row.Scan(&a.ID, &a.Name, &genres, &a.City, &a.State, &a.Phone, &a.Website,
		&a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription, &a.ImageLink,
		&created, &updated); err != nil {
		return nil, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return nil, err
	}
	a.Genres = g
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)
	return &a, nil
}

// Create inserts a new artist.  A name clash yields ErrDuplicateName.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	const q = `INSERT INTO artists (name, genres, city, state, phone, website, facebook_link,
		seeking_venue, seeking_description, image_link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, a.Name, genres, a.City, a.State, a.Phone, a.Website,
			a.FacebookLink, a.SeekingVenue, a.SeekingDescription, a.ImageLink,
			toMillis(now), toMillis(now))
		if err != nil {
			return classifyWriteErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		a.CreatedAt, a.UpdatedAt = now, now
		return nil
	})
}

// GetByID returns the artist or ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	return a, err
}

// Update overwrites every mutable field of the artist identified by a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	const q = `UPDATE artists
	           SET name = ?, genres = ?, city = ?, state = ?, phone = ?, website = ?,
	               facebook_link = ?, seeking_venue = ?, seeking_description = ?, image_link = ?,
	               updated_at = ?
	           WHERE id = ?`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		found, err := exists(ctx, tx, `SELECT 1 FROM artists WHERE id = ?`, a.ID)
		if err != nil {
			return err
		}
		if !found {
			return ErrArtistNotFound
		}
		if _, err := tx.ExecContext(ctx, q, a.Name, genres, a.City, a.State, a.Phone, a.Website,
			a.FacebookLink, a.SeekingVenue, a.SeekingDescription, a.ImageLink,
			toMillis(now), a.ID); err != nil {
			return classifyWriteErr(err)
		}
		a.UpdatedAt = now
		return nil
	})
}

// Delete removes an artist that has no shows and returns the removed
// record.  Artists with shows yield ErrConflict.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (*model.Artist, error) {
	var removed *model.Artist
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		a, err := scanArtist(tx.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		var shows int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE artist_id = ?`, id).Scan(&shows); err != nil {
			return err
		}
		if shows > 0 {
			return fmt.Errorf("artist %d has %d shows: %w", id, shows, ErrConflict)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("artist %d is referenced: %w", id, ErrConflict)
			}
			return err
		}
		removed = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// List returns every artist as an (id, name) pair ordered by name.
func (r *ArtistRepo) List(ctx context.Context) ([]model.ArtistSummary, error) {
	const q = `SELECT a.id, a.name, 0 FROM artists a ORDER BY a.name, a.id`
	return r.summaries(ctx, q)
}

// Search returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]model.ArtistSummary, error) {
	q := `SELECT a.id, a.name, ` + upcomingByArtist + `
	      FROM artists a
	      WHERE LOWER(a.name) LIKE ? ESCAPE '!'
	      ORDER BY a.name, a.id`
	return r.summaries(ctx, q, toMillis(now), likeContains(term))
}

// ListRecent returns the most recently listed artists, newest first.
func (r *ArtistRepo) ListRecent(ctx context.Context, limit int, now time.Time) ([]model.ArtistSummary, error) {
	q := `SELECT a.id, a.name, ` + upcomingByArtist + `
	      FROM artists a
	      ORDER BY a.id DESC
	      LIMIT ?`
	return r.summaries(ctx, q, toMillis(now), limit)
}

// Count returns the number of artists.
func (r *ArtistRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&n)
	return n, err
}

func (r *ArtistRepo) summaries(ctx context.Context, q string, args ...any) ([]model.ArtistSummary, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ArtistSummary{}
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
