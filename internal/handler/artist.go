package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ArtistHandler serves the artist listing, search, detail and mutations.
type ArtistHandler struct {
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
	View
}

// NewArtistHandler wires an ArtistHandler.
func NewArtistHandler(artists *repository.ArtistRepo, shows *repository.ShowRepo, view View) *ArtistHandler {
	return &ArtistHandler{Artists: artists, Shows: shows, View: view}
}

type artistDetail struct {
	*model.Artist
	PastShows          []venueShow `json:"past_shows"`
	UpcomingShows      []venueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

type artistRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (h *ArtistHandler) detail(c echo.Context, a *model.Artist) (artistDetail, error) {
	shows, err := h.Shows.ListByArtist(c.Request().Context(), a.ID)
	if err != nil {
		return artistDetail{}, err
	}
	past, upcoming := model.SplitShows(h.now(), shows)
	return artistDetail{
		Artist:             a,
		PastShows:          h.venueShows(past),
		UpcomingShows:      h.venueShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// List handles GET /artists: a flat (id, name) list.
func (h *ArtistHandler) List(c echo.Context) error {
	all, err := h.Artists.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]artistRef, 0, len(all))
	for _, a := range all {
		out = append(out, artistRef{ID: a.ID, Name: a.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": out})
}

// Search handles POST /artists/search.
func (h *ArtistHandler) Search(c echo.Context) error {
	term, err := searchTerm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	found, err := h.Artists.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(found), "data": found, "search_term": term})
}

// Show handles GET /artists/:id.
func (h *ArtistHandler) Show(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeReadFailure(c, err)
	}
	doc, err := h.detail(c, a)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// CreateForm handles GET /artists/create.
func (h *ArtistHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": form.ArtistDefinition()})
}

// Create handles POST /artists/create.
func (h *ArtistHandler) Create(c echo.Context) error {
	var f form.ArtistForm
	failure := func() string { return "An error occurred. Artist " + f.Name + " could not be listed." }
	if ok, err := bindAndValidate(c, &f, failure); !ok {
		return err
	}
	a := f.Artist(0)
	if err := h.Artists.Create(c.Request().Context(), a); err != nil {
		return writeFailure(c, err, failure())
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Artist " + a.Name + " was successfully listed!",
		"artist":  a,
	})
}

// EditForm handles GET /artists/:id/edit.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeReadFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"form":   form.ArtistDefinition(),
		"values": form.ArtistValues(a),
		"artist": artistRef{ID: a.ID, Name: a.Name},
	})
}

// Edit handles POST /artists/:id/edit.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var f form.ArtistForm
	failure := func() string { return "An error occurred. Artist " + f.Name + " could not be updated." }
	if ok, err := bindAndValidate(c, &f, failure); !ok {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Artists.Update(ctx, f.Artist(id)); err != nil {
		return writeFailure(c, err, failure())
	}
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return writeReadFailure(c, err)
	}
	doc, err := h.detail(c, a)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Artist " + a.Name + " was successfully updated!",
		"artist":  doc,
	})
}

// Delete handles DELETE /artists/:id.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	a, err := h.Artists.Delete(c.Request().Context(), id)
	if err != nil {
		return writeFailure(c, err, "An error occurred. Artist could not be deleted.")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Artist " + a.Name + " was successfully deleted!"})
}
