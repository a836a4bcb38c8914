package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"basstatic/internal/config"
	"basstatic/internal/logger"
	"basstatic/internal/models"
	"basstatic/internal/validation"

	"github.com/joho/godotenv"
)

var (
	count  = flag.Int("count", 6, "Number of past events to generate")
	output = flag.String("out", "", "Output file (default SITE_DIR/DOCUMENT_PATH)")
	force  = flag.Bool("force", false, "Overwrite an existing document")
	dryRun = flag.Bool("dry-run", false, "Print the document instead of writing it")
	seed   = flag.Int64("seed", 0, "Random seed (0 = current time)")
)

var (
	artistPool = []string{"DJ Lowend", "Mara", "Subtrakt", "Kofi", "Nyx", "Halftone", "Rootsman K", "Void Sister"}
	mcPool     = []string{"MC Static", "MC Rumble", "Daddy Ra"}
	genrePool  = []string{"dubstep", "dnb", "jungle", "bass house", "halftime", "uk garage"}
	venuePool  = []string{"Nuanu", "Savaya", "Potato Head", "La Brisa"}
)

// DocumentGenerator builds a sample events document for local development
type DocumentGenerator struct {
	rnd *rand.Rand
	now time.Time
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	g := &DocumentGenerator{rnd: rand.New(rand.NewSource(*seed)), now: time.Now()}

	store := g.Generate(*count)
	if err := validation.ValidateStore(store); err != nil {
		logger.Fatal("Generated document is invalid", "error", err)
	}

	data, err := store.MarshalDocument()
	if err != nil {
		logger.Fatal("Failed to encode document", "error", err)
	}

	if *dryRun {
		os.Stdout.Write(data)
		return
	}

	path := *output
	if path == "" {
		path = filepath.Join(cfg.SiteDir, filepath.FromSlash(cfg.DocumentPath))
	}
	if _, err := os.Stat(path); err == nil && !*force {
		logger.Fatal("Document already exists, use -force to overwrite", "path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Fatal("Failed to create directory", "error", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Fatal("Failed to write document", "error", err)
	}

	slog.Info("Sample document generated", "path", path, "events", len(store.Events), "seed", *seed)
}

// Generate returns past events one month apart followed by one upcoming
// published event, which is active
func (g *DocumentGenerator) Generate(past int) *models.EventStore {
	store := &models.EventStore{Events: []models.Event{}}

	for i := 0; i < past; i++ {
		date := g.now.AddDate(0, -(past - i), 0)
		store.Events = append(store.Events, g.event(int64(i+1), models.StatusPast, date))
	}

	next := g.event(int64(past+1), models.StatusPublished, g.now.AddDate(0, 0, 14))
	next.TicketLink = models.StringPtr("https://tickets.example.com/basstatic")
	next.Prices = &models.Prices{EarlyBird: "150k IDR", General: "250k IDR"}
	store.Events = append(store.Events, next)
	store.SetActiveID(next.ID)

	return store
}

func (g *DocumentGenerator) event(id int64, status models.EventStatus, date time.Time) models.Event {
	ev := models.Event{
		ID:          id,
		Type:        models.EventTypeFull,
		Status:      status,
		Title:       fmt.Sprintf("Bass Static Vol. %d", id),
		Date:        models.DateOf(date),
		DoorsTime:   "21:00",
		Venue:       g.pick(venuePool),
		Location:    "Bali",
		Artists:     g.artists(artistPool, 2+g.rnd.Intn(3)),
		MC:          g.artists(mcPool, g.rnd.Intn(2)),
		Genres:      g.sample(genrePool, 1+g.rnd.Intn(3)),
		PosterImage: models.StringPtr(models.MediaPath(id, "poster.jpeg")),
	}
	if g.rnd.Intn(3) == 0 {
		ev.GuestlistEnabled = true
	}
	if status == models.StatusPast && g.rnd.Intn(2) == 0 {
		ev.StreamRecording = models.StringPtr(fmt.Sprintf("https://soundcloud.com/basstatic/vol-%d", id))
	}
	return ev
}

func (g *DocumentGenerator) artists(pool []string, n int) []models.Artist {
	names := g.sample(pool, n)
	artists := make([]models.Artist, 0, len(names))
	for _, name := range names {
		artists = append(artists, models.NameOnly(name))
	}
	return artists
}

func (g *DocumentGenerator) sample(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range g.rnd.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

func (g *DocumentGenerator) pick(pool []string) string {
	return pool[g.rnd.Intn(len(pool))]
}
