// Package seed loads the demo venues, artists and shows.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// Repos are the stores the demo data is written to.
type Repos struct {
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
}

// Result counts what Load inserted.
type Result struct {
	Venues, Artists, Shows int
}

// demoShow references its artist and venue by name.
type demoShow struct {
	artist, venue string
	start         time.Time
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func venues() []*model.Venue {
	return []*model.Venue{
		{
			Name:               "The Musical Hop",
			Genres:             []string{"Jazz", "Reggae", "Classical", "Folk"},
			Address:            "1015 Folsom Street",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "123-123-1234",
			Website:            "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5",
		},
		{
			Name:         "The Dueling Pianos Bar",
			Genres:       []string{"Classical", "R&B", "Hip-Hop"},
			Address:      "335 Delancey Street",
			City:         "New York",
			State:        "NY",
			Phone:        "914-003-1132",
			Website:      "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
		},
		{
			Name:         "Park Square Live Music & Coffee",
			Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			Address:      "34 Whiskey Moore Ave",
			City:         "San Francisco",
			State:        "CA",
			Phone:        "415-000-1234",
			Website:      "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		},
	}
}

func artists() []*model.Artist {
	return []*model.Artist{
		{
			Name:               "Guns N Petals",
			Genres:             []string{"Rock n Roll"},
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Website:            "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		},
		{
			Name:         "Matt Quevedo",
			Genres:       []string{"Jazz"},
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
		},
		{
			Name:   "The Wild Sax Band",
			Genres: []string{"Jazz", "Classical"},
			City:   "San Francisco",
			State:  "CA",
			Phone:  "432-325-5432",
		},
	}
}

func shows() []demoShow {
	return []demoShow{
		{"Guns N Petals", "The Musical Hop", at(2019, time.May, 21, 21, 30)},
		{"Matt Quevedo", "Park Square Live Music & Coffee", at(2019, time.June, 15, 23, 0)},
		{"The Wild Sax Band", "Park Square Live Music & Coffee", at(2035, time.April, 1, 20, 0)},
		{"The Wild Sax Band", "Park Square Live Music & Coffee", at(2035, time.April, 8, 20, 0)},
		{"The Wild Sax Band", "Park Square Live Music & Coffee", at(2035, time.April, 15, 20, 0)},
	}
}

// Load inserts the demo data.  A database that already holds venues or
// artists is left untouched and a zero Result is returned.
func Load(ctx context.Context, r Repos) (Result, error) {
	var res Result
	nv, err := r.Venues.Count(ctx)
	if err != nil {
		return res, err
	}
	na, err := r.Artists.Count(ctx)
	if err != nil {
		return res, err
	}
	if nv > 0 || na > 0 {
		return res, nil
	}

	venueIDs := map[string]uint64{}
	for _, v := range venues() {
		if err := r.Venues.Create(ctx, v); err != nil {
			return res, fmt.Errorf("venue %q: %w", v.Name, err)
		}
		venueIDs[v.Name] = v.ID
		res.Venues++
	}
	artistIDs := map[string]uint64{}
	for _, a := range artists() {
		if err := r.Artists.Create(ctx, a); err != nil {
			return res, fmt.Errorf("artist %q: %w", a.Name, err)
		}
		artistIDs[a.Name] = a.ID
		res.Artists++
	}
	for _, s := range shows() {
		show := &model.Show{ArtistID: artistIDs[s.artist], VenueID: venueIDs[s.venue], StartTime: s.start}
		if err := r.Shows.Create(ctx, show); err != nil {
			return res, fmt.Errorf("show %s at %s: %w", s.artist, s.venue, err)
		}
		res.Shows++
	}
	return res, nil
}
