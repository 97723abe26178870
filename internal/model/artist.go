package model

import "time"

// Artist represents a performer.  Artist names are unique across the
// `artists` table.  An artist owns zero or more shows.
//
// Fields:
//
//	ID                 – primary key identifier.
//	Name               – unique display name.
//	Genres             – set of genre names (stored as a JSON array).
//	City, State        – home area.
//	Phone              – contact phone (may be empty).
//	Website            – website URL (may be empty).
//	FacebookLink       – facebook page URL (may be empty).
//	SeekingVenue       – whether the artist is looking for venues.
//	SeekingDescription – free text shown when SeekingVenue is set.
//	ImageLink          – image URL.
//	CreatedAt          – creation timestamp.
//	UpdatedAt          – last update timestamp.
type Artist struct {
	ID                 uint64    `json:"id"`                  // artists.id
	Name               string    `json:"name"`                // artists.name
	Genres             []string  `json:"genres"`              // artists.genres
	City               string    `json:"city"`                // artists.city
	State              string    `json:"state"`               // artists.state
	Phone              string    `json:"phone"`               // artists.phone
	Website            string    `json:"website"`             // artists.website
	FacebookLink       string    `json:"facebook_link"`       // artists.facebook_link
	SeekingVenue       bool      `json:"seeking_venue"`       // artists.seeking_venue
	SeekingDescription string    `json:"seeking_description"` // artists.seeking_description
	ImageLink          string    `json:"image_link"`          // artists.image_link
	CreatedAt          time.Time `json:"created_at"`          // artists.created_at
	UpdatedAt          time.Time `json:"updated_at"`          // artists.updated_at
}

// ArtistSummary is the short form used by listings and search results.
type ArtistSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}
