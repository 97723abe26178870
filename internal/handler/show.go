package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/service"
)

// ShowHandler serves the show listing, the booking form and mutations.
type ShowHandler struct {
	Shows     *repository.ShowRepo
	Artists   *repository.ArtistRepo
	Venues    *repository.VenueRepo
	Publisher service.EventPublisher // nil disables show.booked events
	View
}

// NewShowHandler wires a ShowHandler.
func NewShowHandler(shows *repository.ShowRepo, artists *repository.ArtistRepo, venues *repository.VenueRepo,
	pub service.EventPublisher, view View) *ShowHandler {
	return &ShowHandler{Shows: shows, Artists: artists, Venues: venues, Publisher: pub, View: view}
}

type showItem struct {
	ShowID           uint64    `json:"show_id"`
	VenueID          uint64    `json:"venue_id"`
	VenueName        string    `json:"venue_name"`
	ArtistID         uint64    `json:"artist_id"`
	ArtistName       string    `json:"artist_name"`
	ArtistImageLink  string    `json:"artist_image_link"`
	StartTime        time.Time `json:"start_time"`
	StartTimeDisplay string    `json:"start_time_display"`
}

func (h *ShowHandler) item(l model.ShowListing) showItem {
	return showItem{
		ShowID:           l.ShowID,
		VenueID:          l.VenueID,
		VenueName:        l.VenueName,
		ArtistID:         l.ArtistID,
		ArtistName:       l.ArtistName,
		ArtistImageLink:  l.ArtistImageLink,
		StartTime:        l.StartTime,
		StartTimeDisplay: h.display(l.StartTime),
	}
}

// List handles GET /shows ordered by start time.
func (h *ShowHandler) List(c echo.Context) error {
	all, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]showItem, 0, len(all))
	for _, l := range all {
		out = append(out, h.item(l))
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": out})
}

// CreateForm handles GET /shows/create: artist and venue choices plus a
// start time defaulting to now.
func (h *ShowHandler) CreateForm(c echo.Context) error {
	ctx := c.Request().Context()
	artists, err := h.Artists.List(ctx)
	if err != nil {
		return err
	}
	venues, err := h.Venues.Options(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"form": form.ShowDefinition(artists, venues, h.now())})
}

// Create handles POST /shows/create.  A missing artist or venue yields
// 422 and nothing is stored.
func (h *ShowHandler) Create(c echo.Context) error {
	const failure = "An error occurred. Show could not be listed."
	var f form.ShowForm
	if ok, err := bindAndValidate(c, &f, func() string { return failure }); !ok {
		return err
	}
	s, err := f.Show()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"fields":  echo.Map{"start_time": err.Error()},
			"message": failure,
		})
	}
	ctx := c.Request().Context()
	if err := h.Shows.Create(ctx, s); err != nil {
		return writeFailure(c, err, failure)
	}
	listing, err := h.Shows.Listing(ctx, s.ID)
	if err != nil {
		return err
	}
	h.publishBooked(ctx, *listing)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Show was successfully listed!",
		"show":    h.item(*listing),
	})
}

// Delete handles DELETE /shows/:id.
func (h *ShowHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	l, err := h.Shows.Delete(c.Request().Context(), id)
	if err != nil {
		return writeFailure(c, err, "An error occurred. Show could not be deleted.")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Show of " + l.ArtistName + " at " + l.VenueName + " was successfully deleted!",
	})
}

// publishBooked emits show.booked.  The booking is already committed, so
// failures are only logged.
func (h *ShowHandler) publishBooked(ctx context.Context, l model.ShowListing) {
	if h.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := h.Publisher.PublishShowBooked(ctx, queue.NewShowBookedEvent(l, time.Now())); err != nil {
		log.Printf("show-events: publish show %d: %v", l.ShowID, err)
	}
}
