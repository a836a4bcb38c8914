package render

// GuestlistAnchor is the in-page target of the default hero call-to-action
const GuestlistAnchor = "#guestlist"

// Manifest lists the projections a page template supports. The renderer only
// fills the parts of the view a page declares.
type Manifest struct {
	HeroBadge       bool
	HeroVideo       bool
	HeroImage       bool
	BackgroundMusic bool
	HeroArtists     bool
	HeroMC          bool
	HeroGenres      bool
	HeroCTA         bool
	// CTAHref is the href the hero call-to-action carries in the static markup
	CTAHref         string
	EventCard       bool
	EventCardButton bool
	PastEvents      bool
	Lineup          bool
}

// HomePage is the landing page: the active event plus the past-events grid
var HomePage = Manifest{
	HeroBadge:       true,
	HeroVideo:       true,
	HeroImage:       true,
	BackgroundMusic: true,
	HeroArtists:     true,
	HeroMC:          true,
	HeroGenres:      true,
	HeroCTA:         true,
	CTAHref:         GuestlistAnchor,
	EventCard:       true,
	EventCardButton: true,
	PastEvents:      true,
	Lineup:          true,
}

// EventPage shows one event without the past-events grid or music
var EventPage = Manifest{
	HeroBadge:       true,
	HeroImage:       true,
	HeroArtists:     true,
	HeroMC:          true,
	HeroGenres:      true,
	HeroCTA:         true,
	CTAHref:         "/" + GuestlistAnchor,
	EventCard:       true,
	EventCardButton: true,
	Lineup:          true,
}
