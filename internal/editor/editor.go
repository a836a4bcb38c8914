package editor

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"basstatic/internal/models"
	"basstatic/internal/validation"
)

// ErrNoSelection is returned by operations that need an event selected for editing
var ErrNoSelection = errors.New("no event selected")

// Loader fetches the current events document
type Loader interface {
	LoadDocument(ctx context.Context) (*models.EventStore, error)
}

// Form is the flat, string-valued representation of one event as the admin
// edits it. List fields are comma separated and media fields hold bare file
// names inside the event's media directory.
type Form struct {
	Type        string
	Status      string
	Title       string
	Subtitle    string
	Date        string
	DoorsTime   string
	Venue       string
	Location    string
	Artists     string
	MC          string
	Genres      string
	TicketLink  string
	Guestlist   string
	EarlyBird   string
	General     string
	Video       string
	Music       string
	Stream      string
	PosterImage string
}

// Editor holds the one editable copy of the document and the editing selection
type Editor struct {
	store   *models.EventStore
	editing *int64
}

// New wraps an already loaded document
func New(store *models.EventStore) *Editor {
	if store == nil {
		store = &models.EventStore{}
	}
	return &Editor{store: store}
}

// Load replaces the in-memory copy with a freshly fetched document
func (e *Editor) Load(ctx context.Context, loader Loader) error {
	store, err := loader.LoadDocument(ctx)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	e.store = store
	e.editing = nil
	return nil
}

// Store returns the document being edited
func (e *Editor) Store() *models.EventStore {
	return e.store
}

// Editing returns the id of the selected event
func (e *Editor) Editing() (int64, bool) {
	if e.editing == nil {
		return 0, false
	}
	return *e.editing, true
}

// Create appends a draft event with conventional media paths and selects it
func (e *Editor) Create(today time.Time) *models.Event {
	id := e.store.NextID()
	e.store.Events = append(e.store.Events, models.Event{
		ID:          id,
		Type:        models.EventTypeFull,
		Status:      models.StatusDraft,
		Title:       "New Event",
		Date:        models.DateOf(today),
		Artists:     []models.Artist{},
		MC:          []models.Artist{},
		Genres:      []string{},
		HeroVideo:   models.StringPtr(models.MediaPath(id, "hero.mp4")),
		PosterImage: models.StringPtr(models.MediaPath(id, "poster.jpeg")),
		BgMusic:     models.StringPtr(models.MediaPath(id, "bg-music.mp3")),
	})
	e.editing = &id

	ev, _ := e.store.Find(id)
	return ev
}

// Select makes id the editing selection and returns its form. A missing id
// leaves the selection unchanged.
func (e *Editor) Select(id int64) (Form, bool) {
	ev, ok := e.store.Find(id)
	if !ok {
		return Form{}, false
	}
	e.editing = &id
	return formOf(ev), true
}

// CommitForm writes the form back into the selected event. The event is left
// untouched when the form does not describe a valid event.
func (e *Editor) CommitForm(f Form) error {
	id, ok := e.Editing()
	if !ok {
		return ErrNoSelection
	}
	ev, ok := e.store.Find(id)
	if !ok {
		return ErrNoSelection
	}

	date, err := models.ParseDate(strings.TrimSpace(f.Date))
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	guestlist, err := models.ParseFlexibleBool(strings.TrimSpace(f.Guestlist))
	if err != nil {
		return fmt.Errorf("guestlist: %w", err)
	}

	updated := *ev
	updated.Type = models.EventType(strings.TrimSpace(f.Type))
	updated.Status = models.EventStatus(strings.TrimSpace(f.Status))
	updated.Title = strings.TrimSpace(f.Title)
	updated.Subtitle = strings.TrimSpace(f.Subtitle)
	updated.Date = date
	updated.DoorsTime = strings.TrimSpace(f.DoorsTime)
	updated.Venue = strings.TrimSpace(f.Venue)
	updated.Location = strings.TrimSpace(f.Location)
	updated.Artists = mergeArtists(ev.Artists, SplitList(f.Artists))
	updated.MC = mergeArtists(ev.MC, SplitList(f.MC))
	updated.Genres = SplitList(f.Genres)
	updated.TicketLink = models.StringPtr(strings.TrimSpace(f.TicketLink))
	updated.GuestlistEnabled = guestlist.Bool()
	updated.Prices = prices(f.EarlyBird, f.General)
	updated.HeroVideo = mediaField(id, f.Video)
	updated.BgMusic = mediaField(id, f.Music)
	updated.StreamRecording = models.StringPtr(strings.TrimSpace(f.Stream))

	if err := validation.ValidateEvent(&updated); err != nil {
		return err
	}
	*ev = updated
	return nil
}

// Delete removes the event. When it was the active event the first remaining
// event becomes active; deleting the last event leaves no active event.
func (e *Editor) Delete(id int64) bool {
	idx := -1
	for i := range e.store.Events {
		if e.store.Events[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	e.store.Events = append(e.store.Events[:idx], e.store.Events[idx+1:]...)

	if active, ok := e.store.ActiveID(); ok && active == id {
		if len(e.store.Events) > 0 {
			e.store.SetActiveID(e.store.Events[0].ID)
		} else {
			e.store.ClearActive()
		}
	}
	if cur, ok := e.Editing(); ok && cur == id {
		e.editing = nil
	}
	return true
}

// SetActive points the document at id without checking that it exists
func (e *Editor) SetActive(id int64) {
	e.store.SetActiveID(id)
}

// SetPoster records an uploaded poster on the selected event
func (e *Editor) SetPoster(uploadPath string) error {
	id, ok := e.Editing()
	if !ok {
		return ErrNoSelection
	}
	ev, ok := e.store.Find(id)
	if !ok {
		return ErrNoSelection
	}
	ev.PosterImage = models.StringPtr(uploadPath)
	return nil
}

// PosterUploadPath is media/events/{id}/poster.{ext} with the lower-cased
// extension of the chosen file
func PosterUploadPath(id int64, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		ext = "jpeg"
	}
	return models.MediaPath(id, "poster."+ext)
}

// SplitList parses a comma separated field: entries are trimmed and empty
// entries dropped
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formOf(ev *models.Event) Form {
	f := Form{
		Type:        string(ev.Type),
		Status:      string(ev.Status),
		Title:       ev.Title,
		Subtitle:    ev.Subtitle,
		Date:        ev.Date.String(),
		DoorsTime:   ev.DoorsTime,
		Venue:       ev.Venue,
		Location:    ev.Location,
		Artists:     strings.Join(models.ArtistNames(ev.Artists), ", "),
		MC:          strings.Join(models.ArtistNames(ev.MC), ", "),
		Genres:      strings.Join(ev.Genres, ", "),
		TicketLink:  models.StringValue(ev.TicketLink),
		Guestlist:   "false",
		Video:       baseName(ev.HeroVideo),
		Music:       baseName(ev.BgMusic),
		Stream:      models.StringValue(ev.StreamRecording),
		PosterImage: models.StringValue(ev.PosterImage),
	}
	if ev.GuestlistEnabled {
		f.Guestlist = "true"
	}
	if ev.Prices != nil {
		f.EarlyBird = ev.Prices.EarlyBird
		f.General = ev.Prices.General
	}
	return f
}

// mergeArtists keeps the profile of every artist whose name survives the edit
func mergeArtists(prev []models.Artist, names []string) []models.Artist {
	profiles := make(map[string]models.Artist, len(prev))
	for _, a := range prev {
		if a.Profiled {
			profiles[strings.TrimSpace(a.Name)] = a
		}
	}

	out := make([]models.Artist, 0, len(names))
	for _, name := range names {
		if a, ok := profiles[name]; ok {
			a.Name = name
			out = append(out, a)
			continue
		}
		out = append(out, models.NameOnly(name))
	}
	return out
}

func mediaField(id int64, file string) *string {
	file = strings.TrimSpace(file)
	if file == "" {
		return nil
	}
	return models.StringPtr(models.MediaPath(id, file))
}

func baseName(p *string) string {
	v := models.StringValue(p)
	if v == "" {
		return ""
	}
	return path.Base(v)
}

func prices(earlyBird, general string) *models.Prices {
	earlyBird, general = strings.TrimSpace(earlyBird), strings.TrimSpace(general)
	if earlyBird == "" && general == "" {
		return nil
	}
	return &models.Prices{EarlyBird: earlyBird, General: general}
}
