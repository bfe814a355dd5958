package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// Board is the narrow clipboard contract the session depends on.
type Board interface {
	Set(text string) error
}

// System returns the Board backed by the operating system clipboard.
func System() Board {
	return systemBoard{}
}

type systemBoard struct{}

func (systemBoard) Set(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process Board for tests. It records every value set.
type Memory struct {
	mu     sync.Mutex
	values []string
}

func (m *Memory) Set(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = append(m.values, text)
	return nil
}

// Last returns the most recently set value, or empty.
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.values) == 0 {
		return ""
	}
	return m.values[len(m.values)-1]
}

// All returns every value set, oldest first.
func (m *Memory) All() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.values...)
}
