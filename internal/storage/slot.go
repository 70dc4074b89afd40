package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrEmptySlot is returned by Get when nothing is stored under the key.
var ErrEmptySlot = errors.New("storage slot is empty")

// Slot is a single named value in an external key-value store.
type Slot interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, value string) error
	Delete(ctx context.Context) error
}

// MemorySlot keeps the value in process. It is used when no external store
// is configured.
type MemorySlot struct {
	mu    sync.Mutex
	value string
	set   bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Get(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrEmptySlot
	}
	return m.value, nil
}

func (m *MemorySlot) Set(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value, m.set = value, true
	return nil
}

func (m *MemorySlot) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value, m.set = "", false
	return nil
}
