// Package handler exposes the HTTP handlers of the directory: listings,
// detail documents with past/upcoming shows, search, the create/edit/delete
// mutations, their form definitions and the admin login.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// Clock supplies the instant that splits past from upcoming shows.  One
// value is taken per request.
type Clock func() time.Time

// View carries what every handler needs to render times.
type View struct {
	Now Clock          // nil means time.Now
	Loc *time.Location // display zone, nil means UTC
}

func (v View) now() time.Time {
	if v.Now == nil {
		return time.Now().UTC()
	}
	return v.Now().UTC()
}

func (v View) display(t time.Time) string {
	return model.FormatDateTime(t, "medium", v.Loc)
}

// artistShow is a show as seen from a venue page.
type artistShow struct {
	ShowID           uint64    `json:"show_id"`
	ArtistID         uint64    `json:"artist_id"`
	ArtistName       string    `json:"artist_name"`
	ArtistImageLink  string    `json:"artist_image_link"`
	StartTime        time.Time `json:"start_time"`
	StartTimeDisplay string    `json:"start_time_display"`
}

// venueShow is a show as seen from an artist page.
type venueShow struct {
	ShowID           uint64    `json:"show_id"`
	VenueID          uint64    `json:"venue_id"`
	VenueName        string    `json:"venue_name"`
	VenueImageLink   string    `json:"venue_image_link"`
	StartTime        time.Time `json:"start_time"`
	StartTimeDisplay string    `json:"start_time_display"`
}

func (v View) artistShows(ls []model.ShowListing) []artistShow {
	out := make([]artistShow, 0, len(ls))
	for _, l := range ls {
		out = append(out, artistShow{
			ShowID:           l.ShowID,
			ArtistID:         l.ArtistID,
			ArtistName:       l.ArtistName,
			ArtistImageLink:  l.ArtistImageLink,
			StartTime:        l.StartTime,
			StartTimeDisplay: v.display(l.StartTime),
		})
	}
	return out
}

func (v View) venueShows(ls []model.ShowListing) []venueShow {
	out := make([]venueShow, 0, len(ls))
	for _, l := range ls {
		out = append(out, venueShow{
			ShowID:           l.ShowID,
			VenueID:          l.VenueID,
			VenueName:        l.VenueName,
			VenueImageLink:   l.VenueImageLink,
			StartTime:        l.StartTime,
			StartTimeDisplay: v.display(l.StartTime),
		})
	}
	return out
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

// normalizer is implemented by the form payloads.
type normalizer interface {
	Normalize()
}

// bindAndValidate binds the request into f and validates it.  On failure
// the 400 response has already been written and ok is false.
func bindAndValidate(c echo.Context, f normalizer, failure func() string) (ok bool, err error) {
	if err := c.Bind(f); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "message": failure()})
	}
	f.Normalize()
	if err := c.Validate(f); err != nil {
		fields := form.FieldErrors(err)
		if fields == nil {
			return false, err
		}
		return false, c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "validation failed",
			"fields":  fields,
			"message": failure(),
		})
	}
	return true, nil
}

// writeFailure maps repository errors of a mutation onto a status code
// and the failure notice.
func writeFailure(c echo.Context, err error, notice string) error {
	status, msg := http.StatusInternalServerError, "database error"
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		status, msg = http.StatusNotFound, "venue not found"
	case errors.Is(err, repository.ErrArtistNotFound):
		status, msg = http.StatusNotFound, "artist not found"
	case errors.Is(err, repository.ErrShowNotFound):
		status, msg = http.StatusNotFound, "show not found"
	case errors.Is(err, repository.ErrDuplicateName):
		status, msg = http.StatusConflict, "name already exists"
	case errors.Is(err, repository.ErrConflict):
		status, msg = http.StatusConflict, "record still has shows"
	case errors.Is(err, repository.ErrReference):
		status, msg = http.StatusUnprocessableEntity, "artist or venue does not exist"
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{"error": msg, "message": notice})
}

// writeReadFailure is writeFailure for GET handlers, which carry no notice.
func writeReadFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	case errors.Is(err, repository.ErrArtistNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
	}
	return err
}

// HTTPErrorHandler renders unmatched routes and unhandled failures as JSON
// documents instead of Echo's defaults.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch status {
		case http.StatusNotFound:
			msg = "not found"
		case http.StatusMethodNotAllowed:
			msg = "method not allowed"
		case http.StatusInternalServerError:
		default:
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		}
	}
	if status >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, echo.Map{"error": msg})
	}
	if werr != nil {
		c.Logger().Error(werr)
	}
}
