// Command chronicler-term runs the post wizard in the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/debemdeboas/chronicler/internal/archive"
	"github.com/debemdeboas/chronicler/internal/clipboard"
	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/logger"
	"github.com/debemdeboas/chronicler/internal/model"
	"github.com/debemdeboas/chronicler/internal/util"
	"github.com/debemdeboas/chronicler/internal/wizard"
)

// contentEnd ends multi-line content input.
const contentEnd = "."

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var errQuit = errors.New("quit")

type session struct {
	in  *bufio.Scanner
	out io.Writer

	machine   *wizard.Machine
	picker    archive.Picker
	clipboard clipboard.Clipboard

	defaultLocation string
}

func (s *session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

// ask prints prompt and reads one line. errQuit is returned at end of input.
func (s *session) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, promptStyle.Render(prompt))
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// askLines reads lines until one equals contentEnd.
func (s *session) askLines(prompt string) (string, error) {
	s.println(promptStyle.Render(prompt) + mutedStyle.Render(fmt.Sprintf(" (end with a line containing only %q)", contentEnd)))

	var lines []string
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == contentEnd {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
	if err := s.in.Err(); err != nil {
		return "", err
	}
	return "", errQuit
}

func (s *session) notify(n *wizard.Notice) {
	if n == nil {
		return
	}
	switch n.Kind {
	case wizard.NoticeError:
		s.println(errorStyle.Render(n.Message))
	case wizard.NoticeWarning:
		s.println(warningStyle.Render(n.Message))
	default:
		s.println(mutedStyle.Render(n.Message))
	}
}

// report prints the user-facing message for a wizard error. Unknown errors are returned.
func (s *session) report(err error) error {
	var vErr *wizard.ValidationError
	var aErr *wizard.ArchiveError
	switch {
	case errors.As(err, &vErr):
		s.println(errorStyle.Render(vErr.Message))
	case errors.As(err, &aErr):
		s.println(errorStyle.Render(aErr.Message))
	default:
		return err
	}
	return nil
}

func (s *session) run(ctx context.Context) error {
	for {
		var err error
		switch state := s.machine.State().(type) {
		case wizard.Welcome:
			err = s.welcome(ctx)
		case wizard.Form:
			err = s.form(ctx)
		case wizard.Links:
			err = s.links(ctx, state)
		case wizard.Success:
			err = s.success(state)
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *session) welcome(ctx context.Context) error {
	s.println(titleStyle.Render(config.AppConfig.Site.Name))
	s.println(mutedStyle.Render(config.AppConfig.Site.Tagline))

	prompt := "Archive folder (blank to skip): "
	if s.defaultLocation != "" {
		prompt = fmt.Sprintf("Archive folder [%s] (\"-\" to skip): ", s.defaultLocation)
	}

	location, err := s.ask(prompt)
	if err != nil {
		return err
	}
	if location == "" {
		location = s.defaultLocation
	}
	if location == "" || location == "-" {
		return s.machine.Skip()
	}

	notice, err := s.machine.SelectFolder(ctx, s.picker, location)
	if err != nil {
		return err
	}
	s.notify(notice)
	if dir, ok := s.machine.Target().Directory(); ok {
		s.println(mutedStyle.Render("Archiving to " + dir.Name()))
	}
	return nil
}

func (s *session) form(ctx context.Context) error {
	s.println(titleStyle.Render("Create Post"))

	var data model.PostFormData
	var err error

	if data.Title, err = s.ask("Title: "); err != nil {
		return err
	}
	s.println(mutedStyle.Render("Slug: " + util.Slugify(data.Title)))

	if data.Content, err = s.askLines("Content"); err != nil {
		return err
	}

	categories, err := s.ask("Categories (comma-separated): ")
	if err != nil {
		return err
	}
	data.Categories = model.ParseCategories(categories)

	if data.Platforms, err = s.askPlatforms(); err != nil {
		return err
	}
	if data.Attachments, err = s.askAttachments(); err != nil {
		return err
	}

	for {
		action, err := s.ask("[p]ublish, copy [c]ontent, copy [a]ttachments, [e]dit: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(action) {
		case "p", "publish":
			if err := s.machine.Publish(data); err != nil {
				return s.report(err)
			}
			return nil
		case "c":
			s.copied(clipboard.CopyContent(ctx, s.clipboard, data.Content), config.MsgCopyContentFailed)
		case "a":
			s.copied(clipboard.CopyAttachments(ctx, s.clipboard, data.Attachments), config.MsgCopyAttachmentsFailed)
		case "e":
			return nil
		}
	}
}

func (s *session) copied(err error, failure string) {
	if err != nil {
		s.println(errorStyle.Render(failure))
		return
	}
	s.println(successStyle.Render("Copied!"))
}

func (s *session) askPlatforms() ([]model.Platform, error) {
	all := model.Platforms()
	options := make([]string, len(all))
	for i, p := range all {
		options[i] = fmt.Sprintf("%d %s", i+1, p.Label())
	}

	answer, err := s.ask(fmt.Sprintf("Platforms (%s), e.g. 1,3: ", strings.Join(options, ", ")))
	if err != nil {
		return nil, err
	}
	return parsePlatforms(answer), nil
}

// parsePlatforms toggles each listed platform number. Unknown numbers are ignored.
func parsePlatforms(answer string) []model.Platform {
	all := model.Platforms()
	var platforms []model.Platform
	for _, field := range strings.Split(answer, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 || n > len(all) {
			continue
		}
		platforms = model.TogglePlatform(platforms, all[n-1])
	}
	return platforms
}

func (s *session) askAttachments() ([]model.Attachment, error) {
	answer, err := s.ask("Attachments (comma-separated paths, blank for none): ")
	if err != nil {
		return nil, err
	}

	attachments, err := readAttachments(answer)
	if err != nil {
		s.println(errorStyle.Render(err.Error()))
		return s.askAttachments()
	}
	return attachments, nil
}

func readAttachments(answer string) ([]model.Attachment, error) {
	var attachments []model.Attachment
	for _, field := range strings.Split(answer, ",") {
		path := strings.TrimSpace(field)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading attachment: %w", err)
		}
		attachments = append(attachments, model.NewAttachment(filepath.Base(path), "", data))
	}
	return attachments, nil
}

func (s *session) links(ctx context.Context, state wizard.Links) error {
	s.println(titleStyle.Render("Provide Platform Links"))
	s.println(mutedStyle.Render(fmt.Sprintf("Post: %s (%s)", state.Data.Title, util.Slugify(state.Data.Title))))

	links := make(map[model.Platform]string, len(state.Data.Platforms))
	for _, p := range state.Data.Platforms {
		link, err := s.ask(fmt.Sprintf("%s link: ", p.Label()))
		if err != nil {
			return err
		}
		links[p] = link
	}

	notice, err := s.machine.SubmitLinks(ctx, links)
	if err != nil {
		return s.report(err)
	}
	s.notify(notice)
	return nil
}

func (s *session) success(state wizard.Success) error {
	s.println(successStyle.Render("Post Archived Successfully!"))
	s.println(mutedStyle.Render("Saved to: " + state.Folder + "/" + config.PostFileName))

	answer, err := s.ask("Create another post? [y/N]: ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return errQuit
	}
	return s.machine.CreateAnother()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML or TOML config file")
	flag.Parse()

	godotenv.Load()

	if *configPath == "" {
		*configPath = os.Getenv(config.EnvConfigPath)
	}
	if *configPath == "" {
		*configPath = config.DefaultConfigPath
	}

	if err := config.LoadConfig(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	log := logger.New(config.AppConfig.Logging.Level)
	archive.SetLogger(logger.Component(log, "archive"))
	wizard.SetLogger(logger.Component(log, "wizard"))
	clipboard.SetLogger(logger.Component(log, "clipboard"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cb clipboard.Clipboard
	if term, err := clipboard.NewTerminal(os.Stdout); err != nil {
		cb = clipboard.Unavailable{Err: err}
	} else {
		cb = term
	}

	picker := archive.SchemePicker{Local: archive.LocalPicker{}}
	if client, err := archive.NewS3Client(ctx, config.AppConfig.S3); err == nil {
		picker.S3 = archive.S3Picker{Client: client}
	}

	s := &session{
		in:              bufio.NewScanner(os.Stdin),
		out:             os.Stdout,
		machine:         wizard.NewMachine(archive.NewWriter()),
		picker:          picker,
		clipboard:       cb,
		defaultLocation: config.AppConfig.Archive.DefaultLocation,
	}

	if err := s.run(ctx); err != nil {
		log.Error().Err(err).Msg("Wizard failed")
		os.Exit(1)
	}
}
