package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/notes-keeper/internal/adapter"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// App runs single commands against the notes REST API.
type App struct {
	api      adapter.NotesAPI
	out      io.Writer
	logger   *logger.Logger
	commands map[string]command
}

// NewApp builds an App printing its results to out.
func NewApp(api adapter.NotesAPI, out io.Writer, logger *logger.Logger) *App {
	a := &App{api: api, out: out, logger: logger}
	a.commands = map[string]command{
		"signup":    {usage: "signup -u USERNAME -p PASSWORD [-email EMAIL]", run: a.signup},
		"login":     {usage: "login -u USERNAME -p PASSWORD", run: a.login},
		"verify":    {usage: "verify", run: a.verify},
		"dashboard": {usage: "dashboard", run: a.dashboard},
		"list":      {usage: "list", run: a.list},
		"create":    {usage: "create -title T -content C [-duration D] [-image FILE]... [-audio FILE]", run: a.create},
		"update":    {usage: "update -id ID [-title T] [-content C] [-duration D]", run: a.update},
		"favourite": {usage: "favourite ID true|false", run: a.favourite},
		"delete":    {usage: "delete ID", run: a.deleteNote},
		"rm-image":  {usage: "rm-image NOTE_ID IMAGE_ID", run: a.removeImage},
		"upload":    {usage: "upload image|audio FILE", run: a.upload},
		"download":  {usage: "download ID FILE", run: a.download},
		"version":   {usage: "version", run: a.version},
	}
	return a
}

// Run executes the command args[0] with the remaining arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w\n%s", ErrNoCommand, a.Usage())
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q\n%s", ErrUnknownCommand, args[0], a.Usage())
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	if err := cmd.run(ctx, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

// Usage lists the commands of the client.
func (a *App) Usage() string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("commands:\n")
	for _, name := range names {
		b.WriteString("  " + a.commands[name].usage + "\n")
	}
	return b.String()
}

func (a *App) signup(ctx context.Context, args []string) error {
	fs := newFlagSet("signup")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	email := fs.String("email", "", "email")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	token, err := a.api.Signup(ctx, models.User{Username: *username, Password: *password, Email: *email})
	if err != nil {
		return err
	}
	return a.print(models.AuthResponse{Token: token})
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	token, err := a.api.Login(ctx, models.User{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	return a.print(models.AuthResponse{Token: token})
}

func (a *App) verify(ctx context.Context, _ []string) error {
	resp, err := a.api.Verify(ctx)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func (a *App) dashboard(ctx context.Context, _ []string) error {
	user, err := a.api.Dashboard(ctx)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) list(ctx context.Context, _ []string) error {
	notes, err := a.api.ListNotes(ctx)
	if err != nil {
		return err
	}
	return a.print(notes)
}

func (a *App) create(ctx context.Context, args []string) error {
	var images stringList

	fs := newFlagSet("create")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note content")
	duration := fs.Float64("duration", 0, "audio duration in seconds")
	audio := fs.String("audio", "", "audio file to attach")
	fs.Var(&images, "image", "image file to attach, may be repeated")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	req := models.CreateNoteRequest{Title: *title, Content: *content, Duration: *duration}

	var opened []io.Closer
	defer func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}()

	for _, path := range images {
		upload, f, err := openUpload(path, models.BucketImages)
		if err != nil {
			return err
		}
		opened = append(opened, f)
		req.InlineImages = append(req.InlineImages, upload)
	}
	if *audio != "" {
		upload, f, err := openUpload(*audio, models.BucketAudios)
		if err != nil {
			return err
		}
		opened = append(opened, f)
		req.InlineAudio = &upload
	}

	note, err := a.api.CreateNote(ctx, req)
	if err != nil {
		return err
	}
	return a.print(note)
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := newFlagSet("update")
	id := fs.String("id", "", "note id")
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new content")
	duration := fs.Float64("duration", -1, "new audio duration in seconds")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if *id == "" {
		return fmt.Errorf("%w: -id is required", ErrUsage)
	}

	var update models.NoteUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			update.Title = title
		case "content":
			update.Content = content
		case "duration":
			update.Duration = duration
		}
	})

	note, err := a.api.UpdateNote(ctx, *id, update)
	if err != nil {
		return err
	}
	return a.print(note)
}

func (a *App) favourite(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: expected note id and true|false", ErrUsage)
	}
	isFavourite, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	note, err := a.api.SetFavourite(ctx, args[0], isFavourite)
	if err != nil {
		return err
	}
	return a.print(note)
}

func (a *App) deleteNote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected note id", ErrUsage)
	}
	if err := a.api.DeleteNote(ctx, args[0]); err != nil {
		return err
	}
	return a.print(models.MessageResponse{Message: "Note deleted successfully"})
}

func (a *App) removeImage(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: expected note id and image id", ErrUsage)
	}
	note, err := a.api.RemoveImage(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return a.print(note)
}

func (a *App) upload(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: expected kind and file", ErrUsage)
	}

	f, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	name := filepath.Base(args[1])
	resp, err := a.api.UploadAttachment(ctx, args[0], name, contentTypeOf(name), f)
	if err != nil {
		return err
	}
	return a.print(resp)
}

func (a *App) download(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: expected file id and destination", ErrUsage)
	}

	content, err := a.api.DownloadAttachment(ctx, args[0])
	if err != nil {
		return err
	}
	defer content.Data.Close()

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	written, err := io.Copy(f, content.Data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", args[1], err)
	}

	content.Attachment.ByteLength = written
	return a.print(content.Attachment)
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.api.ServerVersion(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, v)
	return err
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func openUpload(path string, bucket models.Bucket) (models.AttachmentUpload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.AttachmentUpload{}, nil, err
	}

	name := filepath.Base(path)
	return models.AttachmentUpload{
		Bucket:      bucket,
		Filename:    name,
		ContentType: contentTypeOf(name),
		Data:        f,
	}, f, nil
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}
