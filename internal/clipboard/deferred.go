package clipboard

import (
	"context"
	"sync"
)

// Deferred hands text to Text and records binary items for a client that
// performs the copy itself, such as the browser.
type Deferred struct {
	Text Clipboard

	mu    sync.Mutex
	items []Item
}

func NewDeferred(text Clipboard) *Deferred {
	return &Deferred{Text: text}
}

func (d *Deferred) WriteText(ctx context.Context, text string) error {
	return d.Text.WriteText(ctx, text)
}

func (d *Deferred) Write(_ context.Context, items []Item) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items[:0], items...)
	return nil
}

// Items returns what the client still has to copy.
func (d *Deferred) Items() []Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.items
}

// MediaTypes lists the media types of the pending items, in order.
func (d *Deferred) MediaTypes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]string, len(d.items))
	for i, item := range d.items {
		types[i] = item.MediaType
	}
	return types
}
