package services

import (
	"context"
	"fmt"
	"sync"
)

type mockApprover struct {
	approved bool
	err      error

	calls   int
	path    string
	removed int
}

func (m *mockApprover) RequestApproval(_ context.Context, path string, removed int) (bool, error) {
	m.calls++
	m.path = path
	m.removed = removed
	return m.approved, m.err
}

type mockLogger struct {
	mu      sync.Mutex
	verbose []string
	info    []string
	errors  []string
}

func (m *mockLogger) Verbose(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verbose = append(m.verbose, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Info(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = append(m.info, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}
