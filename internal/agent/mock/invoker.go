// Package mock provides test-double agent invokers.
package mock

import (
	"context"

	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// MockInvoker satisfies models.AgentInvoker for testing.
type MockInvoker struct {
	Name_      string
	InvokeFunc func(ctx context.Context, note string, req models.InvokeRequest) (string, error)

	// Calls counts Invoke invocations, letting tests assert that no network
	// call was attempted on early validation failures.
	Calls int
}

func (m *MockInvoker) Name() string { return m.Name_ }

func (m *MockInvoker) Invoke(ctx context.Context, note string, req models.InvokeRequest) (string, error) {
	m.Calls++
	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, note, req)
	}
	return "", nil
}

// NewMockInvoker returns a MockInvoker replying with one plausible suggestion
// wrapped in a markdown fence, the way hosted agents usually answer.
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{
		Name_: "mock",
		InvokeFunc: func(_ context.Context, _ string, _ models.InvokeRequest) (string, error) {
			return "```json\n[{\"extract\":\"fever 3 days\",\"code\":\"R50.9\",\"description\":\"Fever, unspecified\",\"url\":\"https://icd.who.int/browse10/2019/en#/R50.9\"}]\n```", nil
		},
	}
}

// NewFailingInvoker returns a MockInvoker that always returns the given error.
func NewFailingInvoker(err error) *MockInvoker {
	return &MockInvoker{
		Name_: "mock-failing",
		InvokeFunc: func(_ context.Context, _ string, _ models.InvokeRequest) (string, error) {
			return "", err
		},
	}
}

// NewTimeoutInvoker returns a MockInvoker that blocks until its context is
// cancelled, simulating an agent that never answers within the bound.
func NewTimeoutInvoker() *MockInvoker {
	return &MockInvoker{
		Name_: "mock-timeout",
		InvokeFunc: func(ctx context.Context, _ string, _ models.InvokeRequest) (string, error) {
			<-ctx.Done()
			return "", models.ErrTimeout
		},
	}
}

// Compile-time check that MockInvoker implements AgentInvoker.
var _ models.AgentInvoker = (*MockInvoker)(nil)
