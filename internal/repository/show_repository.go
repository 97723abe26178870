package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// listingSelect joins a show with both of its sides.  Callers append a
// WHERE clause (or none) and an ORDER BY.
const listingSelect = `SELECT s.id, s.start_time, a.id, a.name, a.image_link, v.id, v.name, v.image_link
	FROM shows s
	JOIN artists a ON a.id = s.artist_id
	JOIN venues v ON v.id = s.venue_id`

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create books s.ArtistID at s.VenueID.  Both references are checked
// inside the transaction; a missing artist or venue yields a wrapped
// ErrReference and no row is written.  On success ID and CreatedAt are
// populated.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return r.CreateTx(ctx, tx, s)
	})
}

// CreateTx is Create using the caller's transaction.  It does not commit.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	ok, err := exists(ctx, tx, `SELECT 1 FROM artists WHERE id = ?`, s.ArtistID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("artist %d: %w", s.ArtistID, ErrReference)
	}
	ok, err = exists(ctx, tx, `SELECT 1 FROM venues WHERE id = ?`, s.VenueID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("venue %d: %w", s.VenueID, ErrReference)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	const q = `INSERT INTO shows (artist_id, venue_id, start_time, created_at) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, toMillis(s.StartTime), toMillis(now))
	if err != nil {
		return classifyWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.StartTime = fromMillis(toMillis(s.StartTime))
	s.CreatedAt = now
	return nil
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	const q = `SELECT id, artist_id, venue_id, start_time, created_at FROM shows WHERE id = ?`
	var (
		s              model.Show
		start, created int64
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.ArtistID, &s.VenueID, &start, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	s.StartTime = fromMillis(start)
	s.CreatedAt = fromMillis(created)
	return &s, nil
}

// Listing returns one show joined with its artist and venue.
func (r *ShowRepo) Listing(ctx context.Context, id uint64) (*model.ShowListing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx, listingSelect+` WHERE s.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShowNotFound
	}
	return l, err
}

// ListAll returns every show ordered by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.listings(ctx, listingSelect+` ORDER BY s.start_time, s.id`)
}

// ListByVenue returns the shows hosted by a venue ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, listingSelect+` WHERE s.venue_id = ? ORDER BY s.start_time, s.id`, venueID)
}

// ListByArtist returns the shows played by an artist ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, listingSelect+` WHERE s.artist_id = ? ORDER BY s.start_time, s.id`, artistID)
}

// Delete removes a show and returns what was removed.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) (*model.ShowListing, error) {
	var removed *model.ShowListing
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		l, err := scanListing(tx.QueryRowContext(ctx, listingSelect+` WHERE s.id = ?`, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrShowNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id); err != nil {
			return err
		}
		removed = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Count returns the number of shows.
func (r *ShowRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows`).Scan(&n)
	return n, err
}

func scanListing(row rowScanner) (*model.ShowListing, error) {
	var (
		l     model.ShowListing
		start int64
	)
	if err := row.Scan(&l.ShowID, &start, &l.ArtistID, &l.ArtistName, &l.ArtistImageLink,
		&l.VenueID, &l.VenueName, &l.VenueImageLink); err != nil {
		return nil, err
	}
	l.StartTime = fromMillis(start)
	return &l, nil
}

func (r *ShowRepo) listings(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ShowListing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
