package wizard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/chronicler/internal/archive"
	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/model"
)

var wizardLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	wizardLogger = l
}

// Archiver writes a finalized post into a directory and returns the folder name.
type Archiver interface {
	Archive(ctx context.Context, post *model.Post, dir archive.Directory) (string, error)
}

// Machine is the wizard for a single user. It is safe for concurrent use;
// only one transition runs at a time.
type Machine struct {
	mu      sync.Mutex
	state   State
	target  archive.Target
	pending bool

	archiver Archiver
}

func NewMachine(archiver Archiver) *Machine {
	return &Machine{
		state:    Welcome{},
		target:   archive.Unset(),
		archiver: archiver,
	}
}

// State returns the current state. Links data is a copy the caller may keep.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if links, ok := m.state.(Links); ok {
		return Links{Data: links.Data.Clone()}
	}
	return m.state
}

func (m *Machine) Target() archive.Target {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

func (m *Machine) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// guard must be called with mu held.
func (m *Machine) guard(want Step) error {
	if m.pending {
		return ErrBusy
	}
	if m.state.Step() != want {
		return ErrInvalidTransition
	}
	return nil
}

// Continue leaves the welcome step with the chosen target. An unset target
// counts as declined.
func (m *Machine) Continue(target archive.Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(StepWelcome); err != nil {
		return err
	}
	m.continueWith(target)
	return nil
}

func (m *Machine) continueWith(target archive.Target) {
	if target.IsUnset() {
		target = archive.Declined()
	}
	m.target = target
	m.state = Form{}

	wizardLogger.Debug().Str("target", target.String()).Msg("Archive target chosen")
}

func (m *Machine) Skip() error {
	return m.Continue(archive.Declined())
}

// SelectFolder asks picker for the location and continues with the result.
// When the picker fails the wizard continues without a target and a warning
// notice is returned.
func (m *Machine) SelectFolder(ctx context.Context, picker archive.Picker, location string) (*Notice, error) {
	m.mu.Lock()
	if err := m.guard(StepWelcome); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.pending = true
	m.mu.Unlock()

	dir, err := picker.Pick(ctx, location)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = false

	if err != nil {
		wizardLogger.Warn().Err(err).Str("location", location).Msg("Folder selection failed")
		m.continueWith(archive.Declined())
		return warning(config.MsgFolderSelectFail), nil
	}

	m.continueWith(archive.HandleOf(dir))
	return nil, nil
}

// Publish validates the form and moves to the links step.
func (m *Machine) Publish(data model.PostFormData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(StepForm); err != nil {
		return err
	}
	if err := validateForm(data); err != nil {
		return err
	}

	m.state = Links{Data: data.Clone()}
	return nil
}

// SubmitLinks finalizes the post. With a directory target it archives the post
// and moves to success; on failure it stays on the links step. Without a
// target nothing is written, the data is discarded and the wizard returns to
// the form with a warning notice.
func (m *Machine) SubmitLinks(ctx context.Context, links map[model.Platform]string) (*Notice, error) {
	m.mu.Lock()
	if err := m.guard(StepLinks); err != nil {
		m.mu.Unlock()
		return nil, err
	}

	data := m.state.(Links).Data
	if err := validateLinks(data.Platforms, links); err != nil {
		m.mu.Unlock()
		return nil, err
	}

	post := model.NewPost(data, links)

	dir, ok := m.target.Directory()
	if !ok {
		m.state = Form{}
		m.mu.Unlock()
		wizardLogger.Info().Str("slug", post.Slug).Msg("Post finalized without an archive target")
		return warning(config.MsgArchiveNotSaved), nil
	}

	m.pending = true
	m.mu.Unlock()

	folder, err := m.archiver.Archive(ctx, post, dir)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = false

	if err != nil {
		wizardLogger.Error().Err(err).Str("slug", post.Slug).Msg("Failed to archive post")
		return nil, &ArchiveError{Message: config.MsgArchiveFailed, Err: err}
	}

	m.state = Success{Folder: folder}
	return nil, nil
}

// CreateAnother starts a new post with the same target.
func (m *Machine) CreateAnother() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(StepSuccess); err != nil {
		return err
	}
	m.state = Form{}
	return nil
}
