package testutil

import (
	"context"
	"sync"

	"github.com/pixijs/extension-scripts/internal/core/domain/tool"
	"github.com/pixijs/extension-scripts/internal/core/ports"
)

// MockToolRunner is a mock implementation of ports.ToolRunner.
// Every invocation is recorded in order. Without RunFunc or StartFunc the
// tool succeeds immediately.
type MockToolRunner struct {
	RunFunc   func(ctx context.Context, inv tool.Invocation) error
	StartFunc func(ctx context.Context, inv tool.Invocation) (ports.RunningTool, error)

	mu          sync.Mutex
	invocations []tool.Invocation
}

// Run records inv and calls the mock RunFunc.
func (m *MockToolRunner) Run(ctx context.Context, inv tool.Invocation) error {
	m.record(inv)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, inv)
	}
	return nil
}

// Start records inv and calls the mock StartFunc.
func (m *MockToolRunner) Start(ctx context.Context, inv tool.Invocation) (ports.RunningTool, error) {
	m.record(inv)
	if m.StartFunc != nil {
		return m.StartFunc(ctx, inv)
	}
	return &MockRunningTool{}, nil
}

// Invocations returns a copy of everything launched so far.
func (m *MockToolRunner) Invocations() []tool.Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tool.Invocation, len(m.invocations))
	copy(out, m.invocations)
	return out
}

// CommandLines returns the recorded invocations rendered with Invocation.String.
func (m *MockToolRunner) CommandLines() []string {
	invs := m.Invocations()
	out := make([]string, len(invs))
	for i, inv := range invs {
		out[i] = inv.String()
	}
	return out
}

func (m *MockToolRunner) record(inv tool.Invocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invocations = append(m.invocations, inv)
}

// MockRunningTool is a mock implementation of ports.RunningTool.
type MockRunningTool struct {
	WaitFunc func() error
}

// Wait calls the mock WaitFunc.
func (m *MockRunningTool) Wait() error {
	if m.WaitFunc != nil {
		return m.WaitFunc()
	}
	return nil
}
