package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/fyyur/internal/database/dbtest"
	"github.com/iliyamo/fyyur/internal/model"
)

type repos struct {
	venues  *VenueRepo
	artists *ArtistRepo
	shows   *ShowRepo
}

func newRepos(t *testing.T) repos {
	t.Helper()
	db := dbtest.Open(t)
	return repos{
		venues:  NewVenueRepo(db),
		artists: NewArtistRepo(db),
		shows:   NewShowRepo(db),
	}
}

func musicalHop() *model.Venue {
	return &model.Venue{
		Name:               "The Musical Hop",
		Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
		Address:            "1015 Folsom Street",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		Website:            "https://www.themusicalhop.com",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5",
	}
}

func mustVenue(t *testing.T, r repos, name, city, state string) *model.Venue {
	t.Helper()
	v := &model.Venue{Name: name, Genres: []string{"Jazz"}, Address: "1 Main St", City: city, State: state}
	if err := r.venues.Create(context.Background(), v); err != nil {
		t.Fatalf("create venue %q: %v", name, err)
	}
	return v
}

func mustArtist(t *testing.T, r repos, name string) *model.Artist {
	t.Helper()
	a := &model.Artist{Name: name, Genres: []string{"Rock n Roll"}, City: "San Francisco", State: "CA"}
	if err := r.artists.Create(context.Background(), a); err != nil {
		t.Fatalf("create artist %q: %v", name, err)
	}
	return a
}

func mustShow(t *testing.T, r repos, artistID, venueID uint64, start time.Time) *model.Show {
	t.Helper()
	s := &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}
	if err := r.shows.Create(context.Background(), s); err != nil {
		t.Fatalf("create show: %v", err)
	}
	return s
}

func TestVenueCreateAndGet(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	want := musicalHop()
	if err := r.venues.Create(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}
	if want.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := r.venues.GetByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != want.Name || got.Address != want.Address || got.City != want.City ||
		got.State != want.State || got.Phone != want.Phone || got.Website != want.Website ||
		got.FacebookLink != want.FacebookLink || got.SeekingTalent != want.SeekingTalent ||
		got.SeekingDescription != want.SeekingDescription || got.ImageLink != want.ImageLink {
		t.Fatalf("venue round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	if len(got.Genres) != len(want.Genres) || got.Genres[0] != "Jazz" || got.Genres[4] != "Folk" {
		t.Fatalf("genres = %v, want %v", got.Genres, want.Genres)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}

	if _, err := r.venues.GetByID(ctx, want.ID+100); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("missing venue error = %v, want ErrVenueNotFound", err)
	}
}

func TestVenueDuplicateNameLeavesCountUnchanged(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	if err := r.venues.Create(ctx, musicalHop()); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := r.venues.Create(ctx, musicalHop())
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate create error = %v, want ErrDuplicateName", err)
	}
	n, err := r.venues.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("venue count = %d, want 1", n)
	}
}

func TestVenueUpdatePersists(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	v := musicalHop()
	if err := r.venues.Create(ctx, v); err != nil {
		t.Fatalf("create: %v", err)
	}

	v.Name = "The Musical Hop Annex"
	v.Genres = []string{"Blues"}
	v.City = "Oakland"
	v.SeekingTalent = false
	v.SeekingDescription = ""
	if err := r.venues.Update(ctx, v); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := r.venues.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "The Musical Hop Annex" || got.City != "Oakland" || got.SeekingTalent ||
		got.SeekingDescription != "" || len(got.Genres) != 1 || got.Genres[0] != "Blues" {
		t.Fatalf("update not persisted: %+v", got)
	}

	missing := musicalHop()
	missing.ID = v.ID + 1
	if err := r.venues.Update(ctx, missing); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("update missing error = %v, want ErrVenueNotFound", err)
	}
}

func TestVenueUpdateDuplicateName(t *testing.T) {
	r := newRepos(t)
	mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	other := mustVenue(t, r, "The Dueling Pianos Bar", "New York", "NY")

	other.Name = "The Musical Hop"
	if err := r.venues.Update(context.Background(), other); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("rename error = %v, want ErrDuplicateName", err)
	}
}

func TestVenueDeleteBlockedByShows(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	busy := mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	idle := mustVenue(t, r, "The Dueling Pianos Bar", "New York", "NY")
	artist := mustArtist(t, r, "Guns N Petals")
	show := mustShow(t, r, artist.ID, busy.ID, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC))

	if _, err := r.venues.Delete(ctx, busy.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("delete busy venue error = %v, want ErrConflict", err)
	}
	if _, err := r.venues.GetByID(ctx, busy.ID); err != nil {
		t.Fatalf("busy venue should remain: %v", err)
	}
	if _, err := r.shows.GetByID(ctx, show.ID); err != nil {
		t.Fatalf("show should remain: %v", err)
	}

	removed, err := r.venues.Delete(ctx, idle.ID)
	if err != nil {
		t.Fatalf("delete idle venue: %v", err)
	}
	if removed.Name != "The Dueling Pianos Bar" {
		t.Fatalf("removed = %q", removed.Name)
	}
	if _, err := r.venues.GetByID(ctx, idle.ID); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("deleted venue lookup error = %v, want ErrVenueNotFound", err)
	}
	if _, err := r.venues.Delete(ctx, idle.ID); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("second delete error = %v, want ErrVenueNotFound", err)
	}
}

func TestVenueSearch(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	hop := mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	mustVenue(t, r, "The Dueling Pianos Bar", "New York", "NY")
	mustVenue(t, r, "Park Square Live Music & Coffee", "San Francisco", "CA")
	artist := mustArtist(t, r, "Guns N Petals")
	mustShow(t, r, artist.ID, hop.ID, now.Add(24*time.Hour))
	mustShow(t, r, artist.ID, hop.ID, now.Add(-24*time.Hour))

	for _, term := range []string{"Hop", "hop", "HOP"} {
		got, err := r.venues.Search(ctx, term, now)
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(got) != 1 || got[0].Name != "The Musical Hop" {
			t.Fatalf("search %q = %+v", term, got)
		}
		if got[0].NumUpcomingShows != 1 {
			t.Fatalf("num_upcoming_shows = %d, want 1", got[0].NumUpcomingShows)
		}
	}

	got, err := r.venues.Search(ctx, "Music", now)
	if err != nil {
		t.Fatalf("search Music: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Park Square Live Music & Coffee" || got[1].Name != "The Musical Hop" {
		t.Fatalf("search Music = %+v", got)
	}

	got, err = r.venues.Search(ctx, "%", now)
	if err != nil {
		t.Fatalf("search %%: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("wildcard term should match literally, got %+v", got)
	}
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	mustVenue(t, r, "CAFÉ OTTO", "San Francisco", "CA")
	mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	mustArtist(t, r, "ÉLODIE Ørsted")

	for _, term := range []string{"café", "CAFÉ", "Café Otto", "otto"} {
		got, err := r.venues.Search(ctx, term, now)
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(got) != 1 || got[0].Name != "CAFÉ OTTO" {
			t.Fatalf("venue search %q = %+v", term, got)
		}
	}
	for _, term := range []string{"élodie", "ØRSTED"} {
		got, err := r.artists.Search(ctx, term, now)
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(got) != 1 || got[0].Name != "ÉLODIE Ørsted" {
			t.Fatalf("artist search %q = %+v", term, got)
		}
	}
}

func TestVenueListAreas(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	hop := mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	mustVenue(t, r, "The Dueling Pianos Bar", "New York", "NY")
	mustVenue(t, r, "Park Square Live Music & Coffee", "San Francisco", "CA")
	artist := mustArtist(t, r, "The Wild Sax Band")
	mustShow(t, r, artist.ID, hop.ID, now.Add(time.Hour))

	areas, err := r.venues.ListAreas(ctx, now)
	if err != nil {
		t.Fatalf("list areas: %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("areas = %d, want 2", len(areas))
	}
	if areas[0].State != "CA" || areas[0].City != "San Francisco" || len(areas[0].Venues) != 2 {
		t.Fatalf("first area = %+v", areas[0])
	}
	if areas[0].Venues[0].Name != "Park Square Live Music & Coffee" || areas[0].Venues[1].NumUpcomingShows != 1 {
		t.Fatalf("san francisco venues = %+v", areas[0].Venues)
	}
	if areas[1].State != "NY" || len(areas[1].Venues) != 1 {
		t.Fatalf("second area = %+v", areas[1])
	}
}

func TestArtistCRUD(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	a := &model.Artist{
		Name:               "Guns N Petals",
		Genres:             []string{"Rock n Roll"},
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Website:            "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f",
	}
	if err := r.artists.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.artists.Create(ctx, &model.Artist{Name: "Guns N Petals", Genres: []string{"Pop"}, City: "X", State: "CA"}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate error = %v, want ErrDuplicateName", err)
	}

	a.City = "Oakland"
	a.Phone = "555-000-1111"
	a.SeekingVenue = false
	a.Genres = []string{"Rock n Roll", "Punk"}
	if err := r.artists.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := r.artists.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.City != "Oakland" || got.Phone != "555-000-1111" || got.SeekingVenue || len(got.Genres) != 2 {
		t.Fatalf("update not persisted: %+v", got)
	}

	list, err := r.artists.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("list = %+v", list)
	}

	if _, err := r.artists.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.artists.GetByID(ctx, a.ID); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("deleted artist lookup error = %v", err)
	}
}

func TestArtistDeleteBlockedByShows(t *testing.T) {
	r := newRepos(t)
	v := mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	a := mustArtist(t, r, "Matt Quevedo")
	mustShow(t, r, a.ID, v.ID, time.Now().Add(time.Hour))

	if _, err := r.artists.Delete(context.Background(), a.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("delete error = %v, want ErrConflict", err)
	}
}

func TestArtistSearch(t *testing.T) {
	r := newRepos(t)
	mustArtist(t, r, "Guns N Petals")
	mustArtist(t, r, "Matt Quevedo")
	mustArtist(t, r, "The Wild Sax Band")

	got, err := r.artists.Search(context.Background(), "A", time.Now())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("search A = %+v, want 3 artists", got)
	}
	got, err = r.artists.Search(context.Background(), "band", time.Now())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "The Wild Sax Band" {
		t.Fatalf("search band = %+v", got)
	}
}

func TestShowCreateRejectsMissingReferences(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	v := mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	a := mustArtist(t, r, "Guns N Petals")
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		artistID uint64
		venueID  uint64
	}{
		{"missing artist", a.ID + 50, v.ID},
		{"missing venue", a.ID, v.ID + 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.shows.Create(ctx, &model.Show{ArtistID: tc.artistID, VenueID: tc.venueID, StartTime: start})
			if !errors.Is(err, ErrReference) {
				t.Fatalf("error = %v, want ErrReference", err)
			}
		})
	}
	n, err := r.shows.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("show count = %d, want 0", n)
	}
}

func TestShowListingsSplitAroundNow(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	v := mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	a := mustArtist(t, r, "Guns N Petals")
	future := mustShow(t, r, a.ID, v.ID, now.Add(24*time.Hour))
	past := mustShow(t, r, a.ID, v.ID, now.Add(-24*time.Hour))

	byVenue, err := r.shows.ListByVenue(ctx, v.ID)
	if err != nil {
		t.Fatalf("list by venue: %v", err)
	}
	if len(byVenue) != 2 || byVenue[0].ShowID != past.ID {
		t.Fatalf("shows not ordered by start time: %+v", byVenue)
	}
	gotPast, gotUpcoming := model.SplitShows(now, byVenue)
	if len(gotPast) != 1 || gotPast[0].ShowID != past.ID {
		t.Fatalf("past = %+v", gotPast)
	}
	if len(gotUpcoming) != 1 || gotUpcoming[0].ShowID != future.ID {
		t.Fatalf("upcoming = %+v", gotUpcoming)
	}
	if gotUpcoming[0].ArtistName != "Guns N Petals" || gotUpcoming[0].VenueName != "The Musical Hop" {
		t.Fatalf("listing names = %+v", gotUpcoming[0])
	}
	if !gotUpcoming[0].StartTime.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("start time = %v", gotUpcoming[0].StartTime)
	}

	byArtist, err := r.shows.ListByArtist(ctx, a.ID)
	if err != nil {
		t.Fatalf("list by artist: %v", err)
	}
	if len(byArtist) != 2 {
		t.Fatalf("by artist = %d, want 2", len(byArtist))
	}
}

func TestShowDelete(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	v := mustVenue(t, r, "The Musical Hop", "San Francisco", "CA")
	a := mustArtist(t, r, "Guns N Petals")
	s := mustShow(t, r, a.ID, v.ID, time.Now())

	removed, err := r.shows.Delete(ctx, s.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.ArtistName != "Guns N Petals" {
		t.Fatalf("removed = %+v", removed)
	}
	if _, err := r.shows.Delete(ctx, s.ID); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("second delete error = %v, want ErrShowNotFound", err)
	}
	if _, err := r.venues.Delete(ctx, v.ID); err != nil {
		t.Fatalf("venue without shows should delete: %v", err)
	}
}

func TestLikeContainsEscapesWildcards(t *testing.T) {
	if got := likeContains("50%_Off!"); got != "%50!%!_off!!%" {
		t.Fatalf("likeContains = %q", got)
	}
}
