package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"basstatic/internal/adminclient"
	"basstatic/internal/editor"
	"basstatic/internal/logger"

	"github.com/joho/godotenv"
)

const usage = `usage: eventadmin [-server URL] [-credentials FILE] <command> [args]

commands:
  login <secret>            store the admin secret
  logout                    forget the admin secret
  list                      list events
  show <id>                 print the edit form of an event
  create [edit flags]       add a draft event and save
  edit <id> [edit flags]    change fields of an event and save
  delete <id>               delete an event and save
  activate <id>             make an event the active one and save
  poster <id> <file>        upload a poster and save
  upload <path> <file>      upload a media file (-thumb for a placeholder)
  commits                   show the server commit log (-kind, -limit)
`

type app struct {
	client      *adminclient.Client
	credentials adminclient.CredentialStore
	editor      *editor.Editor
}

func main() {
	_ = godotenv.Load()
	logger.Init(getEnv("LOG_LEVEL", "warn"), "text")

	defaultCreds, err := adminclient.DefaultCredentialPath()
	if err != nil {
		defaultCreds = filepath.Join(".", ".basstatic-credential")
	}

	server := flag.String("server", getEnv("EVENTADMIN_SERVER", "http://localhost:8080"), "site base URL")
	credsPath := flag.String("credentials", getEnv("EVENTADMIN_CREDENTIALS", defaultCreds), "credential file")
	timeout := flag.Duration("timeout", 60*time.Second, "request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	creds := &adminclient.FileCredentialStore{Path: *credsPath}
	a := &app{
		client:      adminclient.NewClient(*server, creds, *timeout),
		credentials: creds,
		editor:      editor.New(nil),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*(*timeout))
	defer cancel()

	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		if errors.Is(err, adminclient.ErrUnauthorized) || errors.Is(err, adminclient.ErrNoCredential) {
			fmt.Fprintln(os.Stderr, "error:", err, "(run: eventadmin login <secret>)")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		if len(args) != 1 {
			return errors.New("usage: login <secret>")
		}
		if err := a.credentials.Save(args[0]); err != nil {
			return err
		}
		fmt.Println("Logged in")
		return nil
	case "logout":
		if err := a.credentials.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	case "list":
		return a.list(ctx)
	case "show":
		return a.show(ctx, args)
	case "create":
		return a.create(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "activate":
		return a.activate(ctx, args)
	case "poster":
		return a.poster(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "commits":
		return a.commits(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) load(ctx context.Context) error {
	return a.editor.Load(ctx, a.client)
}

func (a *app) save(ctx context.Context) error {
	revision, err := a.client.Save(ctx, a.editor.Store())
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	fmt.Printf("Saved (revision %s)\n", revision)
	return nil
}

func (a *app) list(ctx context.Context) error {
	if err := a.load(ctx); err != nil {
		return err
	}
	store := a.editor.Store()
	activeID, hasActive := store.ActiveID()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tDATE\tTITLE\t")
	for _, ev := range store.Events {
		marker := ""
		if hasActive && ev.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%d%s\t%s\t%s\t%s\t\n", ev.ID, marker, ev.Status, ev.Date, ev.Title)
	}
	return tw.Flush()
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := eventID(args)
	if err != nil {
		return err
	}
	if err := a.load(ctx); err != nil {
		return err
	}
	form, ok := a.editor.Select(id)
	if !ok {
		return fmt.Errorf("event %d not found", id)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, f := range formFields(&form) {
		fmt.Fprintf(tw, "%s\t%s\n", f.name, *f.value)
	}
	// the poster is only changed through the poster command
	fmt.Fprintf(tw, "poster\t%s\n", form.PosterImage)
	return tw.Flush()
}

func (a *app) create(ctx context.Context, args []string) error {
	if err := a.load(ctx); err != nil {
		return err
	}
	ev := a.editor.Create(time.Now())
	form, _ := a.editor.Select(ev.ID)

	if err := parseForm("create", &form, args); err != nil {
		return err
	}
	if err := a.editor.CommitForm(form); err != nil {
		return err
	}
	fmt.Printf("Created event %d\n", ev.ID)
	return a.save(ctx)
}

func (a *app) edit(ctx context.Context, args []string) error {
	id, err := eventID(args)
	if err != nil {
		return err
	}
	if err := a.load(ctx); err != nil {
		return err
	}
	form, ok := a.editor.Select(id)
	if !ok {
		return fmt.Errorf("event %d not found", id)
	}

	if err := parseForm("edit", &form, args[1:]); err != nil {
		return err
	}
	if err := a.editor.CommitForm(form); err != nil {
		return err
	}
	return a.save(ctx)
}

func (a *app) delete(ctx context.Context, args []string) error {
	id, err := eventID(args)
	if err != nil {
		return err
	}
	if err := a.load(ctx); err != nil {
		return err
	}
	if !a.editor.Delete(id) {
		return fmt.Errorf("event %d not found", id)
	}
	return a.save(ctx)
}

func (a *app) activate(ctx context.Context, args []string) error {
	id, err := eventID(args)
	if err != nil {
		return err
	}
	if err := a.load(ctx); err != nil {
		return err
	}
	a.editor.SetActive(id)
	return a.save(ctx)
}

func (a *app) poster(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: poster <id> <file>")
	}
	id, err := eventID(args)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	if err := a.load(ctx); err != nil {
		return err
	}
	if _, ok := a.editor.Select(id); !ok {
		return fmt.Errorf("event %d not found", id)
	}

	dest := editor.PosterUploadPath(id, args[1])
	resp, err := a.client.Upload(ctx, dest, filepath.Base(args[1]), data, false)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	fmt.Printf("Uploaded %s (revision %s)\n", resp.Path, resp.Revision)

	if err := a.editor.SetPoster(resp.Path); err != nil {
		return err
	}
	return a.save(ctx)
}

func (a *app) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	thumb := fs.Bool("thumb", false, "also commit a low-res placeholder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: upload [-thumb] <path> <file>")
	}

	data, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}
	resp, err := a.client.Upload(ctx, fs.Arg(0), filepath.Base(fs.Arg(1)), data, *thumb)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	fmt.Printf("Uploaded %s (revision %s)\n", resp.Path, resp.Revision)
	if resp.Thumb != "" {
		fmt.Printf("Placeholder %s\n", resp.Thumb)
	}
	return nil
}

func (a *app) commits(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("commits", flag.ContinueOnError)
	kind := fs.String("kind", "", "document or media")
	limit := fs.Int("limit", 20, "number of records")
	if err := fs.Parse(args); err != nil {
		return err
	}

	records, err := a.client.Commits(ctx, *kind, *limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tKIND\tPATH\tREVISION\t")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", r.CreatedAt.Format(time.RFC3339), r.Kind, r.Path, r.Revision)
	}
	return tw.Flush()
}

type formField struct {
	name  string
	value *string
	usage string
}

func formFields(f *editor.Form) []formField {
	return []formField{
		{"type", &f.Type, "full or teaser"},
		{"status", &f.Status, "draft, published or past"},
		{"title", &f.Title, "title"},
		{"subtitle", &f.Subtitle, "subtitle"},
		{"date", &f.Date, "YYYY-MM-DD"},
		{"doors", &f.DoorsTime, "doors time"},
		{"venue", &f.Venue, "venue"},
		{"location", &f.Location, "location"},
		{"artists", &f.Artists, "comma separated artists"},
		{"mc", &f.MC, "comma separated MCs"},
		{"genres", &f.Genres, "comma separated genres"},
		{"tickets", &f.TicketLink, "ticket shop URL"},
		{"guestlist", &f.Guestlist, "true or false"},
		{"early-bird", &f.EarlyBird, "early bird price"},
		{"general", &f.General, "general admission price"},
		{"video", &f.Video, "hero video file name"},
		{"music", &f.Music, "background music file name"},
		{"stream", &f.Stream, "stream recording URL"},
	}
}

// parseForm overrides form fields with the flags given on the command line
func parseForm(name string, form *editor.Form, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	for _, f := range formFields(form) {
		fs.StringVar(f.value, f.name, *f.value, f.usage)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return nil
}

func eventID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("event id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event id %q", args[0])
	}
	return id, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
