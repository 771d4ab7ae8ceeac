// Package analysis orchestrates agent dispatch and keeps the latest result
// per tenant so a later validation can refer back to it.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mullergauthier/HarmattanAI/internal/agent"
	"github.com/mullergauthier/HarmattanAI/internal/cache"
	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// Params holds validated parameters for one analysis.
type Params struct {
	TenantID uuid.UUID
	Notes    string
	Provider string
	Request  models.InvokeRequest
}

// Result is the output of one analysis.
type Result struct {
	AnalysisID  uuid.UUID
	Provider    string
	Suggestions models.AnalysisResult
}

// Service runs analyses through the agent dispatcher and records the latest
// result per tenant in the cache. Last write wins: a new analysis replaces the
// previous one wholesale.
type Service struct {
	agents *agent.Service
	cache  cache.Cache
	ttl    time.Duration
}

// NewService creates an analysis orchestrator. ttl bounds how long a result
// stays referable for validation.
func NewService(agents *agent.Service, ca cache.Cache, ttl time.Duration) *Service {
	return &Service{agents: agents, cache: ca, ttl: ttl}
}

// Analyze dispatches the note to the selected provider and stores the decoded
// suggestions as the tenant's latest analysis. A cache write failure does not
// fail the analysis; the result is still returned to the caller.
func (s *Service) Analyze(ctx context.Context, params Params) (*Result, error) {
	suggestions, err := s.agents.GetSuggestions(ctx, params.Notes, params.Provider, params.Request)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AnalysisID:  uuid.New(),
		Provider:    params.Provider,
		Suggestions: suggestions,
	}

	entry := &cache.Analysis{
		ID:          result.AnalysisID,
		Provider:    params.Provider,
		Suggestions: suggestions,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.cache.SetLatestAnalysis(ctx, params.TenantID, entry, s.ttl); err != nil {
		slog.Warn("failed to cache analysis result",
			"tenant_id", params.TenantID, "analysis_id", result.AnalysisID, "error", err)
	}

	return result, nil
}

// Latest returns the tenant's most recent analysis, if one is still cached.
func (s *Service) Latest(ctx context.Context, tenantID uuid.UUID) (*cache.Analysis, bool, error) {
	return s.cache.GetLatestAnalysis(ctx, tenantID)
}
