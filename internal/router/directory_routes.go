package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// registerVenues maps the venue pages.  Static segments such as
// /venues/create win over /venues/:id in Echo's router.
func registerVenues(app *echo.Group, v *handler.VenueHandler, g guards) {
	r := app.Group("/venues")
	r.GET("", v.List)
	r.POST("/search", v.Search)
	r.GET("/create", v.CreateForm, g.cached...)
	r.POST("/create", v.Create, g.write...)
	r.GET("/:id", v.Show)
	r.GET("/:id/edit", v.EditForm, g.cached...)
	r.POST("/:id/edit", v.Edit, g.write...)
	r.DELETE("/:id", v.Delete, g.delete...)
}

// registerArtists maps the artist pages.
func registerArtists(app *echo.Group, a *handler.ArtistHandler, g guards) {
	r := app.Group("/artists")
	r.GET("", a.List, g.cached...)
	r.POST("/search", a.Search)
	r.GET("/create", a.CreateForm, g.cached...)
	r.POST("/create", a.Create, g.write...)
	r.GET("/:id", a.Show)
	r.GET("/:id/edit", a.EditForm, g.cached...)
	r.POST("/:id/edit", a.Edit, g.write...)
	r.DELETE("/:id", a.Delete, g.delete...)
}

// registerShows maps the show listing and booking pages.  The booking
// form defaults its start time to now and is not cached.
func registerShows(app *echo.Group, s *handler.ShowHandler, g guards) {
	r := app.Group("/shows")
	r.GET("", s.List, g.cached...)
	r.GET("/create", s.CreateForm)
	r.POST("/create", s.Create, g.write...)
	r.DELETE("/:id", s.Delete, g.delete...)
}
