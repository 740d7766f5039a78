package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
)

var ErrNoTerminal = errors.New("output is not a terminal")

// OSC52 sets the clipboard of the terminal the process writes to through the
// OSC 52 escape sequence. It carries text only.
type OSC52 struct {
	mu   sync.Mutex
	out  io.Writer
	mode func(osc52.Sequence) osc52.Sequence
}

func NewOSC52(out io.Writer, term string, inTmux bool) *OSC52 {
	mode := func(s osc52.Sequence) osc52.Sequence { return s }
	switch {
	case inTmux:
		mode = osc52.Sequence.Tmux
	case strings.HasPrefix(term, "screen"):
		mode = osc52.Sequence.Screen
	}
	return &OSC52{out: out, mode: mode}
}

// NewTerminal targets f, which must be a terminal.
func NewTerminal(f *os.File) (*OSC52, error) {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil, ErrNoTerminal
	}
	return NewOSC52(f, os.Getenv("TERM"), os.Getenv("TMUX") != ""), nil
}

func (c *OSC52) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.mode(osc52.New(text)).WriteTo(c.out); err != nil {
		return fmt.Errorf("error writing clipboard sequence: %w", err)
	}
	return nil
}

// Write accepts text items only; they are joined with newlines.
func (c *OSC52) Write(ctx context.Context, items []Item) error {
	var buf bytes.Buffer
	for i, item := range items {
		if !strings.HasPrefix(item.MediaType, "text/") {
			return fmt.Errorf("%w: %s", ErrUnsupportedItem, item.MediaType)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(item.Data)
	}
	return c.WriteText(ctx, buf.String())
}

// Unavailable is used when there is no terminal to write to.
type Unavailable struct {
	Err error
}

func (u Unavailable) WriteText(context.Context, string) error { return u.Err }
func (u Unavailable) Write(context.Context, []Item) error     { return u.Err }
