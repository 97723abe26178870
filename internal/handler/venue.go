package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// VenueHandler serves the venue listing, search, detail and mutations.
type VenueHandler struct {
	Venues *repository.VenueRepo
	Shows  *repository.ShowRepo
	View
}

// NewVenueHandler wires a VenueHandler.
func NewVenueHandler(venues *repository.VenueRepo, shows *repository.ShowRepo, view View) *VenueHandler {
	return &VenueHandler{Venues: venues, Shows: shows, View: view}
}

type venueDetail struct {
	*model.Venue
	PastShows          []artistShow `json:"past_shows"`
	UpcomingShows      []artistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

func (h *VenueHandler) detail(c echo.Context, v *model.Venue) (venueDetail, error) {
	shows, err := h.Shows.ListByVenue(c.Request().Context(), v.ID)
	if err != nil {
		return venueDetail{}, err
	}
	past, upcoming := model.SplitShows(h.now(), shows)
	return venueDetail{
		Venue:              v,
		PastShows:          h.artistShows(past),
		UpcomingShows:      h.artistShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// List handles GET /venues: venues grouped by (city, state).
func (h *VenueHandler) List(c echo.Context) error {
	areas, err := h.Venues.ListAreas(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// Search handles POST /venues/search with a search_term form or JSON field.
func (h *VenueHandler) Search(c echo.Context) error {
	term, err := searchTerm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	found, err := h.Venues.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(found), "data": found, "search_term": term})
}

// Show handles GET /venues/:id.
func (h *VenueHandler) Show(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeReadFailure(c, err)
	}
	doc, err := h.detail(c, v)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// CreateForm handles GET /venues/create.
func (h *VenueHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": form.VenueDefinition()})
}

// Create handles POST /venues/create.
func (h *VenueHandler) Create(c echo.Context) error {
	var f form.VenueForm
	failure := func() string { return "An error occurred. Venue " + f.Name + " could not be listed." }
	if ok, err := bindAndValidate(c, &f, failure); !ok {
		return err
	}
	v := f.Venue(0)
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		return writeFailure(c, err, failure())
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Venue " + v.Name + " was successfully listed!",
		"venue":   v,
	})
}

// EditForm handles GET /venues/:id/edit: the form prefilled from the
// stored venue.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeReadFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":   form.VenueDefinition(),
		"values": form.VenueValues(v),
		"venue":  echo.Map{"id": v.ID, "name": v.Name},
	})
}

// Edit handles POST /venues/:id/edit.  Every mutable field is
// overwritten and the refreshed detail document is returned.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var f form.VenueForm
	failure := func() string { return "An error occurred. Venue " + f.Name + " could not be updated." }
	if ok, err := bindAndValidate(c, &f, failure); !ok {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Venues.Update(ctx, f.Venue(id)); err != nil {
		return writeFailure(c, err, failure())
	}
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeReadFailure(c, err)
	}
	doc, err := h.detail(c, v)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Venue " + v.Name + " was successfully updated!",
		"venue":   doc,
	})
}

// Delete handles DELETE /venues/:id.  Venues that still host shows are
// kept and 409 is returned.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	v, err := h.Venues.Delete(c.Request().Context(), id)
	if err != nil {
		return writeFailure(c, err, "An error occurred. Venue could not be deleted.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Venue " + v.Name + " was successfully deleted!"})
}
