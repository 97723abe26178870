package model

import "time"

// Venue represents a location that hosts shows.  Venue names are unique
// across the `venues` table.  A venue owns zero or more shows; deleting a
// venue that still has shows is refused.
//
// Fields:
//
//	ID                 – primary key identifier.
//	Name               – unique display name.
//	Genres             – set of genre names (stored as a JSON array).
//	Address            – street address.
//	City, State        – area used to group the venue listing.
//	Phone              – contact phone (may be empty).
//	Website            – website URL (may be empty).
//	FacebookLink       – facebook page URL (may be empty).
//	SeekingTalent      – whether the venue is looking for artists.
//	SeekingDescription – free text shown when SeekingTalent is set.
//	ImageLink          – image URL.
//	CreatedAt          – creation timestamp.
//	UpdatedAt          – last update timestamp.
type Venue struct {
	ID                 uint64    `json:"id"`                  // venues.id
	Name               string    `json:"name"`                // venues.name
	Genres             []string  `json:"genres"`              // venues.genres
	Address            string    `json:"address"`             // venues.address
	City               string    `json:"city"`                // venues.city
	State              string    `json:"state"`               // venues.state
	Phone              string    `json:"phone"`               // venues.phone
	Website            string    `json:"website"`             // venues.website
	FacebookLink       string    `json:"facebook_link"`       // venues.facebook_link
	SeekingTalent      bool      `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string    `json:"seeking_description"` // venues.seeking_description
	ImageLink          string    `json:"image_link"`          // venues.image_link
	CreatedAt          time.Time `json:"created_at"`          // venues.created_at
	UpdatedAt          time.Time `json:"updated_at"`          // venues.updated_at
}

// VenueSummary is the short form used by listings and search results.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups the venues that share a (city, state) pair.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}
