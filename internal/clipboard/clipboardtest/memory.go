// Package clipboardtest provides a recording clipboard for tests.
package clipboardtest

import (
	"context"
	"sync"

	"github.com/debemdeboas/chronicler/internal/clipboard"
)

type Memory struct {
	mu    sync.Mutex
	text  string
	items []clipboard.Item
	calls int

	// Err, when set, is returned by every write.
	Err error
}

func (m *Memory) WriteText(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return m.Err
	}
	m.text, m.items = text, nil
	return nil
}

func (m *Memory) Write(_ context.Context, items []clipboard.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return m.Err
	}
	m.text, m.items = "", items
	return nil
}

func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *Memory) Items() []clipboard.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items
}

func (m *Memory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
