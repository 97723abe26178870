package form

import (
	"strconv"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowForm is the payload of the new-show form.
type ShowForm struct {
	ArtistID  uint64 `form:"artist_id" json:"artist_id" validate:"required"`
	VenueID   uint64 `form:"venue_id" json:"venue_id" validate:"required"`
	StartTime string `form:"start_time" json:"start_time" validate:"required,starttime"`
}

// Normalize trims the start time.
func (f *ShowForm) Normalize() {
	clean(&f.StartTime)
}

// Show converts a validated form into a show record.
func (f *ShowForm) Show() (*model.Show, error) {
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, err
	}
	return &model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}, nil
}

// ShowDefinition describes the show form.  The artist and venue selects
// list every current record; the start time defaults to now.
func ShowDefinition(artists []model.ArtistSummary, venues []model.VenueSummary, now time.Time) Definition {
	artistChoices := make([]Choice, len(artists))
	for i, a := range artists {
		artistChoices[i] = Choice{Value: strconv.FormatUint(a.ID, 10), Label: a.Name}
	}
	venueChoices := make([]Choice, len(venues))
	for i, v := range venues {
		venueChoices[i] = Choice{Value: strconv.FormatUint(v.ID, 10), Label: v.Name}
	}
	return Definition{Fields: []Field{
		{Name: "artist_id", Label: "Artist", Type: "select", Required: true, Choices: artistChoices},
		{Name: "venue_id", Label: "Venue", Type: "select", Required: true, Choices: venueChoices},
		{Name: "start_time", Label: "Start Time", Type: "datetime", Required: true,
			Default: now.UTC().Format(StartTimeLayout)},
	}}
}
