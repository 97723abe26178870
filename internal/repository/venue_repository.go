// Package repository contains data access logic separated from HTTP handlers.
// This file defines the venue repository: CRUD, the area-grouped listing and
// the case-insensitive name search.
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

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

const venueColumns = `id, name, genres, address, city, state, phone, website, facebook_link,
	seeking_talent, seeking_description, image_link, created_at, updated_at`

// upcomingByVenue counts the shows of venue v that start at or after the
// bound "now" parameter.
const upcomingByVenue = `(SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time >= ?)`

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var (
		v                model.Venue
		genres           []byte
		created, updated int64
	)
	if err := row.Scan(&v.ID, &v.Name, &genres, &v.Address, &v.City, &v.State, &v.Phone,
		&v.Website, &v.FacebookLink, &v.SeekingTalent, &v.SeekingDescription, &v.ImageLink,
		&created, &updated); err != nil {
		return nil, err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return nil, err
	}
	v.Genres = g
	v.CreatedAt = fromMillis(created)
	v.UpdatedAt = fromMillis(updated)
	return &v, nil
}

// Create inserts a new venue in its own transaction.  On success the
// venue's ID and timestamps are populated.  A name clash yields
// ErrDuplicateName and leaves the table unchanged.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	const q = `INSERT INTO venues (name, genres, address, city, state, phone, website, facebook_link,
		seeking_talent, seeking_description, image_link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, v.Name, genres, v.Address, v.City, v.State, v.Phone,
			v.Website, v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.ImageLink,
			toMillis(now), toMillis(now))
		if err != nil {
			return classifyWriteErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		v.CreatedAt, v.UpdatedAt = now, now
		return nil
	})
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE id = ?"
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// Update overwrites every mutable field of the venue identified by v.ID.
// It returns ErrVenueNotFound when the row does not exist and
// ErrDuplicateName when the new name belongs to another venue.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	const q = `UPDATE venues
	           SET name = ?, genres = ?, address = ?, city = ?, state = ?, phone = ?, website = ?,
	               facebook_link = ?, seeking_talent = ?, seeking_description = ?, image_link = ?,
	               updated_at = ?
	           WHERE id = ?`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		found, err := exists(ctx, tx, `SELECT 1 FROM venues WHERE id = ?`, v.ID)
		if err != nil {
			return err
		}
		if !found {
			return ErrVenueNotFound
		}
		if _, err := tx.ExecContext(ctx, q, v.Name, genres, v.Address, v.City, v.State, v.Phone,
			v.Website, v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.ImageLink,
			toMillis(now), v.ID); err != nil {
			return classifyWriteErr(err)
		}
		v.UpdatedAt = now
		return nil
	})
}

// Delete removes a venue and returns the removed record.  Venues that
// still host shows are not deleted: ErrConflict is returned and nothing
// changes.  A missing venue yields ErrVenueNotFound.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (*model.Venue, error) {
	var removed *model.Venue
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		v, err := scanVenue(tx.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		var shows int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE venue_id = ?`, id).Scan(&shows); err != nil {
			return err
		}
		if shows > 0 {
			return fmt.Errorf("venue %d has %d shows: %w", id, shows, ErrConflict)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("venue %d is referenced: %w", id, ErrConflict)
			}
			return err
		}
		removed = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ListAreas groups every venue under its (city, state) pair.  Areas are
// ordered by state then city and venues by name; each venue carries the
// number of shows starting at or after now.
func (r *VenueRepo) ListAreas(ctx context.Context, now time.Time) ([]model.Area, error) {
	q := `SELECT v.id, v.name, v.city, v.state, ` + upcomingByVenue + `
	      FROM venues v
	      ORDER BY v.state, v.city, v.name, v.id`
	rows, err := r.db.QueryContext(ctx, q, toMillis(now))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := []model.Area{}
	index := map[[2]string]int{}
	for rows.Next() {
		var (
			s           model.VenueSummary
			city, state string
		)
		if err := rows.Scan(&s.ID, &s.Name, &city, &state, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		key := [2]string{city, state}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, model.Area{City: city, State: state, Venues: []model.VenueSummary{}})
		}
		areas[i].Venues = append(areas[i].Venues, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return areas, nil
}

// Search returns venues whose name contains term, ignoring case, with
// their real upcoming show counts relative to now.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	q := `SELECT v.id, v.name, ` + upcomingByVenue + `
	      FROM venues v
	      WHERE LOWER(v.name) LIKE ? ESCAPE '!'
	      ORDER BY v.name, v.id`
	return r.summaries(ctx, q, toMillis(now), likeContains(term))
}

// ListRecent returns the most recently listed venues, newest first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int, now time.Time) ([]model.VenueSummary, error) {
	q := `SELECT v.id, v.name, ` + upcomingByVenue + `
	      FROM venues v
	      ORDER BY v.id DESC
	      LIMIT ?`
	return r.summaries(ctx, q, toMillis(now), limit)
}

// Options returns every venue as an (id, name) pair ordered by name.  It
// feeds the choices of the new-show form.
func (r *VenueRepo) Options(ctx context.Context) ([]model.VenueSummary, error) {
	const q = `SELECT v.id, v.name, 0 FROM venues v ORDER BY v.name, v.id`
	return r.summaries(ctx, q)
}

// Count returns the number of venues.
func (r *VenueRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n)
	return n, err
}

func (r *VenueRepo) summaries(ctx context.Context, q string, args ...any) ([]model.VenueSummary, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.VenueSummary{}
	for rows.Next() {
		var s model.VenueSummary
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
