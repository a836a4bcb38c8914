package render

import (
	"strconv"
	"strings"

	"basstatic/internal/models"
)

// Page is the view model handed to a page template
type Page struct {
	Manifest Manifest
	// Event is nil when there is nothing to show; templates keep their static content then
	Event  *EventView
	Past   []Card
	Lineup []LineupCard
}

// EventView holds the projections of one event
type EventView struct {
	ID              int64
	Title           string
	Subtitle        string
	DoorsTime       string
	Badge           string
	Media           *Media
	Music           string
	ArtistLine      string
	MCLine          string
	GenreLine       string
	CTA             *Link
	Card            *Card
	CardButton      *Link
	Prices          *models.Prices
	StreamRecording string
}

// Media is the hero media; either Video (with Poster) or Image is set
type Media struct {
	Video  string
	Poster string
	Image  string
}

// Link is an external link rewrite; nil means keep the default markup
type Link struct {
	Href   string
	Target string
	Rel    string
	Label  string
}

// Card is one event card
type Card struct {
	EventID int64
	Day     int
	Month   string
	Title   string
	Detail  string
	Href    string
}

// LineupCard is one lineup slider entry. Placeholder is shown first and
// swapped for Full once the full image has loaded.
type LineupCard struct {
	Name        string
	Role        string
	Bio         string
	Placeholder string
	Full        string
}

// Render projects the active event and the past events onto the page
func Render(store *models.EventStore, m Manifest) Page {
	page := Page{Manifest: m}
	if store == nil {
		return page
	}

	if ev, ok := store.Active(); ok {
		page.Event = projectEvent(ev, m)
		if m.Lineup {
			page.Lineup = BuildLineup(ev)
		}
	}
	if m.PastEvents {
		page.Past = PastEvents(store)
	}
	return page
}

// RenderEvent projects the event with the given id. The second result is false
// when the document has no such event.
func RenderEvent(store *models.EventStore, id int64, m Manifest) (Page, bool) {
	page := Page{Manifest: m}
	if store == nil {
		return page, false
	}
	ev, ok := store.Find(id)
	if !ok {
		return page, false
	}

	page.Event = projectEvent(ev, m)
	if m.Lineup {
		page.Lineup = BuildLineup(ev)
	}
	if m.PastEvents {
		page.Past = PastEvents(store)
	}
	return page, true
}

// PastEvents lists events with status past, excluding the active one, in document order
func PastEvents(store *models.EventStore) []Card {
	activeID, hasActive := store.ActiveID()

	var cards []Card
	for i := range store.Events {
		ev := &store.Events[i]
		if ev.Status != models.StatusPast {
			continue
		}
		if hasActive && ev.ID == activeID {
			continue
		}
		cards = append(cards, eventCard(ev))
	}
	return cards
}

// BuildLineup returns artists then MCs that carry a bio, deduplicated by name
// and in document order
func BuildLineup(ev *models.Event) []LineupCard {
	seen := make(map[string]bool)
	var lineup []LineupCard

	for _, group := range [][]models.Artist{ev.Artists, ev.MC} {
		for _, a := range group {
			key := strings.ToLower(strings.TrimSpace(a.Name))
			if key == "" || seen[key] || !a.HasBio() {
				continue
			}
			seen[key] = true

			full := MediaURL(models.StringPtr(a.Photo))
			placeholder := MediaURL(models.StringPtr(a.Thumb))
			if placeholder == "" {
				placeholder = full
			}
			lineup = append(lineup, LineupCard{
				Name:        a.Name,
				Role:        a.Role,
				Bio:         a.Bio,
				Placeholder: placeholder,
				Full:        full,
			})
		}
	}
	return lineup
}

func projectEvent(ev *models.Event, m Manifest) *EventView {
	view := &EventView{
		ID:              ev.ID,
		Title:           ev.Title,
		Subtitle:        ev.Subtitle,
		DoorsTime:       ev.DoorsTime,
		Prices:          ev.Prices,
		StreamRecording: models.StringValue(ev.StreamRecording),
	}

	if m.HeroBadge {
		if date := BadgeDate(ev.Date); date != "" {
			view.Badge = date + " in " + ev.Venue
		}
	}

	view.Media = heroMedia(ev, m)

	if m.BackgroundMusic {
		view.Music = MediaURL(ev.BgMusic)
	}
	if m.HeroArtists {
		view.ArtistLine = strings.Join(models.ArtistNames(ev.Artists), Separator)
	}
	if m.HeroMC {
		view.MCLine = strings.Join(models.ArtistNames(ev.MC), Separator)
	}
	if m.HeroGenres {
		view.GenreLine = strings.Join(ev.Genres, Separator)
	}
	if m.HeroCTA {
		view.CTA = heroCTA(ev, m.CTAHref)
	}
	if m.EventCard {
		card := eventCard(ev)
		view.Card = &card
	}
	if m.EventCardButton {
		view.CardButton = cardButton(ev)
	}
	return view
}

func heroMedia(ev *models.Event, m Manifest) *Media {
	poster := MediaURL(ev.PosterImage)
	if m.HeroVideo && ev.HeroVideo != nil && *ev.HeroVideo != "" {
		return &Media{Video: MediaURL(ev.HeroVideo), Poster: poster}
	}
	if (m.HeroImage || m.HeroVideo) && poster != "" {
		return &Media{Image: poster}
	}
	return nil
}

// heroCTA keeps the guestlist anchor for guestlist events and otherwise
// points the button at the ticket shop in a new tab
func heroCTA(ev *models.Event, currentHref string) *Link {
	if ev.GuestlistEnabled && currentHref == GuestlistAnchor {
		return nil
	}
	ticket := models.StringValue(ev.TicketLink)
	if ticket == "" {
		return nil
	}
	return &Link{Href: ticket, Target: "_blank", Rel: "noopener"}
}

func cardButton(ev *models.Event) *Link {
	ticket := models.StringValue(ev.TicketLink)
	if ticket == "" || ev.GuestlistEnabled {
		return nil
	}
	return &Link{Href: ticket, Target: "_blank", Rel: "noopener", Label: "Get Tickets"}
}

func eventCard(ev *models.Event) Card {
	return Card{
		EventID: ev.ID,
		Day:     CardDay(ev.Date),
		Month:   CardMonth(ev.Date),
		Title:   ev.Title,
		Detail:  joinNonEmpty(Separator, ev.Venue, ev.Location),
		Href:    "/events/" + strconv.FormatInt(ev.ID, 10),
	}
}
