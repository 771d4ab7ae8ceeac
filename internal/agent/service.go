package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// Service is the dispatcher: it validates the provider selector, sequences
// invoker → extractor → decoder, and surfaces the failure taxonomy upward.
// Decoding is all-or-nothing per call; a single failed attempt is terminal.
type Service struct {
	invokers map[string]models.AgentInvoker
	timeout  time.Duration
}

// NewService creates a dispatcher over the configured invoker set.
// The timeout bounds each outbound agent call (not the whole request).
func NewService(invokers map[string]models.AgentInvoker, timeout time.Duration) *Service {
	return &Service{invokers: invokers, timeout: timeout}
}

// Providers returns the configured provider names, sorted.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.invokers))
	for name := range s.invokers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSuggestions runs one analysis: a single agent call followed by JSON
// extraction and decoding. No retry is performed at any stage.
func (s *Service) GetSuggestions(ctx context.Context, note, provider string, req models.InvokeRequest) (models.AnalysisResult, error) {
	inv, ok := s.invokers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q (configured: %s)",
			ErrInvalidProvider, provider, strings.Join(s.Providers(), ", "))
	}

	req.Instruction = SystemPrompt(req.Website, req.Language)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := inv.Invoke(callCtx, note, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTimeout) {
			return nil, fmt.Errorf("%w: no reply within %s", ErrTimeout, s.timeout)
		}
		return nil, err
	}

	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w (provider %s)", ErrEmptyResponse, provider)
	}

	js, ok := ExtractJSON(raw)
	if !ok {
		slog.Warn("no JSON in agent response", "provider", provider, "raw", raw)
		return nil, ErrNoJSONFound
	}

	result, err := Decode(js)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListAgents returns the agents discoverable for a provider, or
// ErrInvalidProvider when the provider is unknown or has no discovery API.
func (s *Service) ListAgents(ctx context.Context, provider string) ([]models.Agent, error) {
	inv, ok := s.invokers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProvider, provider)
	}
	lister, ok := inv.(models.AgentLister)
	if !ok {
		return nil, fmt.Errorf("%w: provider %q does not support agent discovery", ErrInvalidProvider, provider)
	}
	return lister.ListAgents(ctx)
}
