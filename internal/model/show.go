package model

import "time"

// Show is a booking of one artist at one venue at a start time.  It is
// the only link between artists and venues and has no lifecycle beyond
// the booking record itself.
//
// Fields:
//
//	ID        – primary key identifier.
//	ArtistID  – artist playing the show (must exist).
//	VenueID   – venue hosting the show (must exist).
//	StartTime – when the show begins (UTC).
//	CreatedAt – creation timestamp.
type Show struct {
	ID        uint64    `json:"id"`         // shows.id
	ArtistID  uint64    `json:"artist_id"`  // shows.artist_id
	VenueID   uint64    `json:"venue_id"`   // shows.venue_id
	StartTime time.Time `json:"start_time"` // shows.start_time
	CreatedAt time.Time `json:"created_at"` // shows.created_at
}

// ShowListing is a show joined with the names and images of both sides.
// Detail pages only render the counterpart of the record being viewed.
type ShowListing struct {
	ShowID          uint64
	StartTime       time.Time
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
}

// SplitShows partitions shows relative to now: a show is past when it
// starts strictly before now and upcoming otherwise.  The input order is
// preserved within each partition.
func SplitShows(now time.Time, shows []ShowListing) (past, upcoming []ShowListing) {
	past = make([]ShowListing, 0, len(shows))
	upcoming = make([]ShowListing, 0, len(shows))
	for _, s := range shows {
		if s.StartTime.Before(now) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming
}
