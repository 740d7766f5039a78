package clipboard_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/debemdeboas/chronicler/internal/clipboard"
	"github.com/debemdeboas/chronicler/internal/clipboard/clipboardtest"
	"github.com/debemdeboas/chronicler/internal/model"
)

func TestCopyContent(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes the content", func(t *testing.T) {
		cb := &clipboardtest.Memory{}
		if err := clipboard.CopyContent(ctx, cb, "Hello *world*"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cb.Text() != "Hello *world*" {
			t.Errorf("Expected content on clipboard, got %q", cb.Text())
		}
	})

	t.Run("Failure wraps ErrCopyFailed", func(t *testing.T) {
		cb := &clipboardtest.Memory{Err: errors.New("denied")}
		err := clipboard.CopyContent(ctx, cb, "x")
		if !errors.Is(err, clipboard.ErrCopyFailed) {
			t.Errorf("Expected ErrCopyFailed, got %v", err)
		}
	})
}

func TestCopyAttachments(t *testing.T) {
	ctx := context.Background()
	cat := model.Attachment{Name: "cat.png", MediaType: "image/png", Data: []byte("png")}
	dog := model.Attachment{Name: "dog.jpg", MediaType: "image/jpeg", Data: []byte("jpg")}
	notes := model.Attachment{Name: "notes.txt", MediaType: "text/plain", Data: []byte("n")}
	report := model.Attachment{Name: "report.pdf", MediaType: "application/pdf", Data: []byte("p")}

	t.Run("Images become items", func(t *testing.T) {
		cb := &clipboardtest.Memory{}
		if err := clipboard.CopyAttachments(ctx, cb, []model.Attachment{cat, notes, dog}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		items := cb.Items()
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if items[0].MediaType != "image/png" || items[1].MediaType != "image/jpeg" {
			t.Errorf("Expected image items in order, got %s and %s", items[0].MediaType, items[1].MediaType)
		}
	})

	t.Run("Names without images", func(t *testing.T) {
		cb := &clipboardtest.Memory{}
		if err := clipboard.CopyAttachments(ctx, cb, []model.Attachment{notes, report}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cb.Text() != "notes.txt\nreport.pdf" {
			t.Errorf("Expected names joined by newline, got %q", cb.Text())
		}
	})

	t.Run("No attachments is a no-op", func(t *testing.T) {
		cb := &clipboardtest.Memory{}
		if err := clipboard.CopyAttachments(ctx, cb, nil); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cb.Calls() != 0 {
			t.Errorf("Expected no clipboard calls, got %d", cb.Calls())
		}
	})

	t.Run("Failure wraps ErrCopyFailed", func(t *testing.T) {
		cb := &clipboardtest.Memory{Err: errors.New("denied")}
		err := clipboard.CopyAttachments(ctx, cb, []model.Attachment{cat})
		if !errors.Is(err, clipboard.ErrCopyFailed) {
			t.Errorf("Expected ErrCopyFailed, got %v", err)
		}
	})
}

func TestDeferred(t *testing.T) {
	ctx := context.Background()
	cat := model.Attachment{Name: "cat.png", MediaType: "image/png", Data: []byte("png")}
	notes := model.Attachment{Name: "notes.txt", MediaType: "text/plain", Data: []byte("n")}

	t.Run("Images are held for the client", func(t *testing.T) {
		text := &clipboardtest.Memory{}
		cb := clipboard.NewDeferred(text)
		if err := clipboard.CopyAttachments(ctx, cb, []model.Attachment{cat, notes}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if types := cb.MediaTypes(); len(types) != 1 || types[0] != "image/png" {
			t.Errorf("Expected [image/png], got %v", types)
		}
		if !bytes.Equal(cb.Items()[0].Data, []byte("png")) {
			t.Errorf("Expected image bytes to be kept, got %q", cb.Items()[0].Data)
		}
		if text.Calls() != 0 {
			t.Errorf("Expected no text clipboard calls, got %d", text.Calls())
		}
	})

	t.Run("Text goes through", func(t *testing.T) {
		text := &clipboardtest.Memory{}
		cb := clipboard.NewDeferred(text)
		if err := clipboard.CopyAttachments(ctx, cb, []model.Attachment{notes}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if text.Text() != "notes.txt" {
			t.Errorf("Expected names on the text clipboard, got %q", text.Text())
		}
		if len(cb.Items()) != 0 {
			t.Errorf("Expected no pending items, got %d", len(cb.Items()))
		}
	})

	t.Run("Text failures surface", func(t *testing.T) {
		cb := clipboard.NewDeferred(&clipboardtest.Memory{Err: errors.New("denied")})
		if err := clipboard.CopyContent(ctx, cb, "x"); !errors.Is(err, clipboard.ErrCopyFailed) {
			t.Errorf("Expected ErrCopyFailed, got %v", err)
		}
	})
}

func TestOSC52(t *testing.T) {
	ctx := context.Background()
	encoded := base64.StdEncoding.EncodeToString([]byte("hello"))

	testCases := []struct {
		name   string
		term   string
		tmux   bool
		prefix string
	}{
		{"Plain terminal", "xterm-256color", false, "\x1b]52;c;"},
		{"Tmux", "tmux-256color", true, "\x1bPtmux;"},
		{"Screen", "screen", false, "\x1bP"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			cb := clipboard.NewOSC52(&buf, tc.term, tc.tmux)
			if err := cb.WriteText(ctx, "hello"); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			out := buf.String()
			if !strings.HasPrefix(out, tc.prefix) {
				t.Errorf("Expected prefix %q, got %q", tc.prefix, out)
			}
			if !strings.Contains(out, encoded) {
				t.Errorf("Expected encoded payload %q in %q", encoded, out)
			}
		})
	}

	t.Run("Images are unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		cb := clipboard.NewOSC52(&buf, "xterm", false)
		err := cb.Write(ctx, []clipboard.Item{{MediaType: "image/png", Data: []byte("png")}})
		if !errors.Is(err, clipboard.ErrUnsupportedItem) {
			t.Errorf("Expected ErrUnsupportedItem, got %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("Expected nothing written, got %q", buf.String())
		}
	})

	t.Run("Text items are joined", func(t *testing.T) {
		var buf bytes.Buffer
		cb := clipboard.NewOSC52(&buf, "xterm", false)
		err := cb.Write(ctx, []clipboard.Item{
			{MediaType: "text/plain", Data: []byte("a")},
			{MediaType: "text/plain", Data: []byte("b")},
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), base64.StdEncoding.EncodeToString([]byte("a\nb"))) {
			t.Errorf("Expected joined payload, got %q", buf.String())
		}
	})
}

func TestUnavailable(t *testing.T) {
	cb := clipboard.Unavailable{Err: clipboard.ErrNoTerminal}
	if err := clipboard.CopyContent(context.Background(), cb, "x"); !errors.Is(err, clipboard.ErrNoTerminal) {
		t.Errorf("Expected ErrNoTerminal in chain, got %v", err)
	}
}
