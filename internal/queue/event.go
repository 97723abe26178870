// Package queue defines the booking events exchanged over RabbitMQ and the
// consumer that records them.
package queue

import (
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowBookedQueue is the durable queue carrying ShowBookedEvent messages.
const ShowBookedQueue = "show.booked"

// ShowBookedEvent is published after a show has been committed.  It holds
// enough for consumers to log or notify without querying the database.
type ShowBookedEvent struct {
	ShowID     uint64 `json:"show_id"`
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	VenueID    uint64 `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	StartTime  string `json:"start_time"` // RFC 3339, UTC
	BookedAt   string `json:"booked_at"`  // RFC 3339, UTC
}

// NewShowBookedEvent builds the event for a stored show listing.
func NewShowBookedEvent(l model.ShowListing, bookedAt time.Time) ShowBookedEvent {
	return ShowBookedEvent{
		ShowID:     l.ShowID,
		ArtistID:   l.ArtistID,
		ArtistName: l.ArtistName,
		VenueID:    l.VenueID,
		VenueName:  l.VenueName,
		StartTime:  l.StartTime.UTC().Format(time.RFC3339),
		BookedAt:   bookedAt.UTC().Format(time.RFC3339),
	}
}

// LogLine renders the event as one line of logs/booking.log.
func (ev ShowBookedEvent) LogLine() string {
	return fmt.Sprintf("[%s] Show booked | show_id=%d | artist_id=%d | artist=%q | venue_id=%d | venue=%q | start=%s\n",
		ev.BookedAt, ev.ShowID, ev.ArtistID, ev.ArtistName, ev.VenueID, ev.VenueName, ev.StartTime)
}
