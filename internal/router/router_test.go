package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database/dbtest"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/utils"
)

const secret = "router-test-secret"

type stores struct {
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
}

func newServer(t *testing.T, authEnabled bool) *echo.Echo {
	t.Helper()
	e, _ := newServerWith(t, handler.View{}, Options{AuthEnabled: authEnabled, JWTSecret: secret})
	return e
}

func newServerWith(t *testing.T, view handler.View, opts Options) (*echo.Echo, stores) {
	t.Helper()
	db := dbtest.Open(t)
	venues := repository.NewVenueRepo(db)
	artists := repository.NewArtistRepo(db)
	shows := repository.NewShowRepo(db)
	h := Handlers{
		Home:    handler.NewHomeHandler(venues, artists, view),
		Venues:  handler.NewVenueHandler(venues, shows, view),
		Artists: handler.NewArtistHandler(artists, shows, view),
		Shows:   handler.NewShowHandler(shows, artists, venues, service.NopPublisher{}, view),
	}
	if opts.AuthEnabled {
		hash, err := utils.HashPassword("pw", 4)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		h.Auth = handler.NewAuthHandler(secret, time.Hour, "admin@fyyur.test", hash)
	}
	e := echo.New()
	Register(e, db, h, opts)
	return e, stores{venues: venues, artists: artists, shows: shows}
}

func serve(e *echo.Echo, method, target, body, bearer string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutesWithoutAuth(t *testing.T) {
	e := newServer(t, false)
	cases := []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/venues", http.StatusOK},
		{http.MethodGet, "/venues/create", http.StatusOK},
		{http.MethodGet, "/venues/7", http.StatusNotFound},
		{http.MethodGet, "/artists", http.StatusOK},
		{http.MethodGet, "/artists/create", http.StatusOK},
		{http.MethodGet, "/shows", http.StatusOK},
		{http.MethodGet, "/shows/create", http.StatusOK},
		{http.MethodDelete, "/venues/7", http.StatusNotFound},
		{http.MethodDelete, "/shows/7", http.StatusNotFound},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodPost, "/auth/login", http.StatusNotFound},
	}
	for _, tc := range cases {
		if rec := serve(e, tc.method, tc.target, "", ""); rec.Code != tc.want {
			t.Errorf("%s %s: status=%d, want %d (%s)", tc.method, tc.target, rec.Code, tc.want, rec.Body)
		}
	}
}

func TestDeleteRequiresAdmin(t *testing.T) {
	e := newServer(t, true)

	if rec := serve(e, http.MethodDelete, "/venues/7", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status=%d, want 401", rec.Code)
	}
	if rec := serve(e, http.MethodDelete, "/venues/7", "", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status=%d, want 401", rec.Code)
	}

	other, err := utils.NewAccessToken(secret, "someone", "VIEWER", time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if rec := serve(e, http.MethodDelete, "/artists/7", "", other.Token); rec.Code != http.StatusForbidden {
		t.Fatalf("wrong role: status=%d, want 403", rec.Code)
	}

	rec := serve(e, http.MethodPost, "/auth/login", `{"email":"admin@fyyur.test","password":"pw"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status=%d body=%s", rec.Code, rec.Body)
	}
	admin, err := utils.NewAccessToken(secret, "admin@fyyur.test", middleware.RoleAdmin, time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if rec := serve(e, http.MethodDelete, "/shows/7", "", admin.Token); rec.Code != http.StatusNotFound {
		t.Fatalf("admin: status=%d, want 404 from the handler", rec.Code)
	}

	// reads and writes other than delete stay public
	if rec := serve(e, http.MethodGet, "/venues", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("list: status=%d", rec.Code)
	}
}

func TestCacheLeavesTimeDependentPagesLive(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	view := handler.View{Now: func() time.Time { return now }}
	e, st := newServerWith(t, view, Options{
		Cache: config.CacheConfig{
			Enabled:      true,
			Methods:      []string{http.MethodGet},
			TTL:          time.Minute,
			KeyStrategy:  "route_query",
			Prefix:       "fyyur:cache",
			MaxBodyBytes: 1 << 20,
		},
		Redis: rdb,
	})

	ctx := context.Background()
	v := &model.Venue{Name: "The Dueling Pianos Bar", Genres: []string{"Jazz"}, Address: "335 Delancey Street", City: "New York", State: "NY", Phone: "914-003-1132"}
	if err := st.venues.Create(ctx, v); err != nil {
		t.Fatalf("create venue: %v", err)
	}
	a := &model.Artist{Name: "Matt Quevedo", Genres: []string{"Jazz"}, City: "New York", State: "NY"}
	if err := st.artists.Create(ctx, a); err != nil {
		t.Fatalf("create artist: %v", err)
	}
	if err := st.shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID, StartTime: now.Add(time.Second)}); err != nil {
		t.Fatalf("create show: %v", err)
	}

	type counts struct {
		Past     int `json:"past_shows_count"`
		Upcoming int `json:"upcoming_shows_count"`
	}
	detail := func() (counts, *httptest.ResponseRecorder) {
		rec := serve(e, http.MethodGet, fmt.Sprintf("/venues/%d", v.ID), "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("venue detail: status=%d body=%s", rec.Code, rec.Body)
		}
		var c counts
		if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return c, rec
	}

	before, rec := detail()
	if before.Upcoming != 1 || before.Past != 0 {
		t.Fatalf("before start: %+v, want 1 upcoming", before)
	}
	if got := rec.Header().Get("X-Cache"); got != "" {
		t.Fatalf("venue detail went through the cache: X-Cache=%q", got)
	}

	now = now.Add(10 * time.Second)
	after, rec := detail()
	if after.Past != 1 || after.Upcoming != 0 {
		t.Fatalf("after start: %+v, want 1 past", after)
	}
	if got := rec.Header().Get("X-Cache"); got == "HIT" {
		t.Fatal("venue detail replayed from cache after the show started")
	}

	// the flat artist list has no time component and is cached
	if rec := serve(e, http.MethodGet, "/artists", "", ""); rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first /artists: X-Cache=%q, want MISS", rec.Header().Get("X-Cache"))
	}
	if rec := serve(e, http.MethodGet, "/artists", "", ""); rec.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second /artists: X-Cache=%q, want HIT", rec.Header().Get("X-Cache"))
	}

	body := `{"name":"The Wild Sax Band","city":"San Francisco","state":"CA","genres":["Jazz"]}`
	if rec := serve(e, http.MethodPost, "/artists/create", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("create artist: status=%d body=%s", rec.Code, rec.Body)
	}
	rec = serve(e, http.MethodGet, "/artists", "", "")
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("/artists after write: X-Cache=%q, want MISS", rec.Header().Get("X-Cache"))
	}
	if !strings.Contains(rec.Body.String(), "The Wild Sax Band") {
		t.Fatalf("/artists after write is missing the new artist: %s", rec.Body)
	}
}
