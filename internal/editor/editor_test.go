package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basstatic/internal/models"
)

type stubLoader struct {
	store *models.EventStore
	err   error
}

func (s stubLoader) LoadDocument(context.Context) (*models.EventStore, error) {
	return s.store, s.err
}

func threeEvents() *models.EventStore {
	store := &models.EventStore{Events: []models.Event{
		{ID: 4, Type: models.EventTypeFull, Status: models.StatusPast, Title: "Four"},
		{ID: 2, Type: models.EventTypeFull, Status: models.StatusPast, Title: "Two"},
		{ID: 7, Type: models.EventTypeFull, Status: models.StatusPublished, Title: "Seven"},
	}}
	store.SetActiveID(7)
	return store
}

func TestCreate_AssignsNextID(t *testing.T) {
	today := time.Date(2025, time.May, 3, 15, 0, 0, 0, time.Local)

	ed := New(nil)
	ev := ed.Create(today)
	assert.Equal(t, int64(1), ev.ID)
	assert.Equal(t, "2025-05-03", ev.Date.String())
	assert.Equal(t, models.StatusDraft, ev.Status)
	assert.Equal(t, "media/events/1/hero.mp4", *ev.HeroVideo)
	assert.Equal(t, "media/events/1/poster.jpeg", *ev.PosterImage)
	assert.Equal(t, "media/events/1/bg-music.mp3", *ev.BgMusic)
	assert.Nil(t, ev.TicketLink)

	id, ok := ed.Editing()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	ed = New(threeEvents())
	assert.Equal(t, int64(8), ed.Create(today).ID)
}

func TestSelect_MissingIsNoop(t *testing.T) {
	ed := New(threeEvents())
	_, ok := ed.Select(2)
	require.True(t, ok)

	_, ok = ed.Select(99)
	assert.False(t, ok)
	id, _ := ed.Editing()
	assert.Equal(t, int64(2), id)
}

func TestDelete_ReassignsActiveToFirstRemaining(t *testing.T) {
	ed := New(threeEvents())
	require.True(t, ed.Delete(7))

	active, ok := ed.Store().ActiveID()
	require.True(t, ok)
	assert.Equal(t, int64(4), active)
	assert.Len(t, ed.Store().Events, 2)
}

func TestDelete_InactiveKeepsActive(t *testing.T) {
	ed := New(threeEvents())
	ed.Select(4)
	require.True(t, ed.Delete(4))

	active, _ := ed.Store().ActiveID()
	assert.Equal(t, int64(7), active)
	_, editing := ed.Editing()
	assert.False(t, editing)
	assert.False(t, ed.Delete(4))
}

func TestDelete_LastEventClearsActive(t *testing.T) {
	store := &models.EventStore{Events: []models.Event{{ID: 1, Title: "Only"}}}
	store.SetActiveID(1)

	ed := New(store)
	require.True(t, ed.Delete(1))
	assert.Empty(t, ed.Store().Events)
	_, ok := ed.Store().ActiveID()
	assert.False(t, ok)
}

func TestSetActive_NoExistenceCheck(t *testing.T) {
	ed := New(threeEvents())
	ed.SetActive(42)
	active, _ := ed.Store().ActiveID()
	assert.Equal(t, int64(42), active)
}

func TestCommitForm_RoundTrip(t *testing.T) {
	ticket := "https://tickets.example.com"
	video := "media/events/3/hero.mp4"
	date, err := models.ParseDate("2024-07-12")
	require.NoError(t, err)

	store := &models.EventStore{Events: []models.Event{{
		ID: 3, Type: models.EventTypeFull, Status: models.StatusPublished, Title: "Vol. 3",
		Date: date, Venue: "Nuanu", Location: "Bali",
		Artists:          []models.Artist{models.NameOnly("DJ Lowend"), {Name: "Mara", Bio: "Sub-bass purist", Profiled: true}},
		MC:               []models.Artist{models.NameOnly("Kofi")},
		Genres:           []string{"dubstep", "dnb"},
		TicketLink:       &ticket,
		GuestlistEnabled: true,
		Prices:           &models.Prices{EarlyBird: "150k", General: "200k"},
		HeroVideo:        &video,
	}}}

	ed := New(store)
	form, ok := ed.Select(3)
	require.True(t, ok)
	assert.Equal(t, "DJ Lowend, Mara", form.Artists)
	assert.Equal(t, "hero.mp4", form.Video)
	assert.Equal(t, "true", form.Guestlist)

	require.NoError(t, ed.CommitForm(form))
	again, _ := ed.Select(3)
	assert.Equal(t, form, again)

	ev, _ := ed.Store().Find(3)
	require.Len(t, ev.Artists, 2)
	assert.True(t, ev.Artists[1].Profiled)
	assert.Equal(t, "Sub-bass purist", ev.Artists[1].Bio)
	assert.Nil(t, ev.BgMusic)
}

func TestCommitForm_Normalizes(t *testing.T) {
	ed := New(threeEvents())
	form, _ := ed.Select(2)

	form.Artists = " A , ,B,  "
	form.Genres = ""
	form.Video = " clip.mp4 "
	form.Music = "  "
	form.TicketLink = "  "
	form.Stream = " https://stream.example.com/rec "
	require.NoError(t, ed.CommitForm(form))

	ev, _ := ed.Store().Find(2)
	assert.Equal(t, []string{"A", "B"}, models.ArtistNames(ev.Artists))
	assert.Equal(t, []string{}, ev.Genres)
	assert.Equal(t, "media/events/2/clip.mp4", *ev.HeroVideo)
	assert.Nil(t, ev.BgMusic)
	assert.Nil(t, ev.TicketLink)
	assert.Equal(t, "https://stream.example.com/rec", *ev.StreamRecording)
}

func TestCommitForm_RejectsInvalid(t *testing.T) {
	ed := New(threeEvents())
	assert.ErrorIs(t, ed.CommitForm(Form{}), ErrNoSelection)

	form, _ := ed.Select(2)
	form.Title = "  "
	assert.Error(t, ed.CommitForm(form))

	form, _ = ed.Select(2)
	form.Date = "tomorrow"
	assert.Error(t, ed.CommitForm(form))

	ev, _ := ed.Store().Find(2)
	assert.Equal(t, "Two", ev.Title)
}

func TestLoad(t *testing.T) {
	ed := New(threeEvents())
	ed.Select(2)

	require.NoError(t, ed.Load(context.Background(), stubLoader{store: &models.EventStore{}}))
	assert.Empty(t, ed.Store().Events)
	_, ok := ed.Editing()
	assert.False(t, ok)

	err := ed.Load(context.Background(), stubLoader{err: errors.New("boom")})
	assert.ErrorContains(t, err, "failed to load data")
}

func TestPosterUploadPath(t *testing.T) {
	assert.Equal(t, "media/events/5/poster.png", PosterUploadPath(5, "Flyer.PNG"))
	assert.Equal(t, "media/events/5/poster.jpeg", PosterUploadPath(5, "flyer"))

	ed := New(threeEvents())
	assert.ErrorIs(t, ed.SetPoster("x"), ErrNoSelection)
	ed.Select(7)
	require.NoError(t, ed.SetPoster(PosterUploadPath(7, "a.webp")))
	ev, _ := ed.Store().Find(7)
	assert.Equal(t, "media/events/7/poster.webp", *ev.PosterImage)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, SplitList("a, b c ,,"))
	assert.Equal(t, []string{}, SplitList(""))
}
