package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/repository"
)

// recentLimit is how many venues and artists the home document lists.
const recentLimit = 10

// HomeHandler serves GET /.
type HomeHandler struct {
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
	View
}

// NewHomeHandler wires a HomeHandler.
func NewHomeHandler(venues *repository.VenueRepo, artists *repository.ArtistRepo, view View) *HomeHandler {
	return &HomeHandler{Venues: venues, Artists: artists, View: view}
}

// Index returns the most recently listed venues and artists.
func (h *HomeHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	now := h.now()
	venues, err := h.Venues.ListRecent(ctx, recentLimit, now)
	if err != nil {
		return err
	}
	artists, err := h.Artists.ListRecent(ctx, recentLimit, now)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"recent_venues": venues, "recent_artists": artists})
}

// Health is the liveness endpoint used by load balancers.  It also pings
// the database.
func Health(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": "database unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}

// searchTerm reads search_term from a form or JSON body.
func searchTerm(c echo.Context) (string, error) {
	var body struct {
		SearchTerm string `form:"search_term" json:"search_term"`
	}
	if err := c.Bind(&body); err != nil {
		return "", err
	}
	return strings.TrimSpace(body.SearchTerm), nil
}
