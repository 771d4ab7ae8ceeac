// Package handler contains the HTTP handlers behind the API router.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mullergauthier/HarmattanAI/internal/agent"
	"github.com/mullergauthier/HarmattanAI/internal/analysis"
	mw "github.com/mullergauthier/HarmattanAI/internal/api/middleware"
	"github.com/mullergauthier/HarmattanAI/internal/api/response"
	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// Analyzer defines the interface the handler depends on.
type Analyzer interface {
	Analyze(ctx context.Context, params analysis.Params) (*analysis.Result, error)
}

// AnalyzeDefaults are the fallbacks applied when the request leaves a field empty.
type AnalyzeDefaults struct {
	Provider string
	Website  string
	Language string
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /api/v1/analyze.
// The call is synchronous: the client blocks until the dispatcher returns or fails.
func NewAnalyzeHandler(svc Analyzer, defaults AnalyzeDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		var req struct {
			Notes    string `json:"notes"`
			Provider string `json:"provider"`
			Website  string `json:"website"`
			Language string `json:"language"`
			AgentID  string `json:"agent_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Notes == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "notes is required", nil)
			return
		}

		provider := req.Provider
		if provider == "" {
			provider = defaults.Provider
		}
		website := req.Website
		if website == "" {
			website = defaults.Website
		}
		language := req.Language
		if language == "" {
			language = defaults.Language
		}

		result, err := svc.Analyze(r.Context(), analysis.Params{
			TenantID: tenantID,
			Notes:    req.Notes,
			Provider: provider,
			Request: models.InvokeRequest{
				Website:  website,
				Language: language,
				AgentID:  req.AgentID,
			},
		})
		if err != nil {
			writeAgentError(w, err)
			return
		}

		response.JSON(w, analyzeResponse{
			AnalysisID:  result.AnalysisID.String(),
			Provider:    result.Provider,
			Count:       len(result.Suggestions),
			Suggestions: result.Suggestions,
			AnalyzedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// writeAgentError maps the dispatcher's failure taxonomy onto HTTP responses.
// Each failure is terminal for the request; the message carries the detail the
// dispatcher attached.
func writeAgentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, agent.ErrInvalidProvider):
		response.Error(w, http.StatusBadRequest, "INVALID_PROVIDER", err.Error(), nil)
	case errors.Is(err, agent.ErrTimeout):
		response.Error(w, http.StatusGatewayTimeout, "AGENT_TIMEOUT", err.Error(), nil)
	case errors.Is(err, agent.ErrRunFailed):
		response.Error(w, http.StatusBadGateway, "AGENT_RUN_FAILED", err.Error(), nil)
	case errors.Is(err, agent.ErrAgentCommunication):
		response.Error(w, http.StatusBadGateway, "AGENT_UNREACHABLE", err.Error(), nil)
	case errors.Is(err, agent.ErrEmptyResponse):
		response.Error(w, http.StatusBadGateway, "EMPTY_RESPONSE", err.Error(), nil)
	case errors.Is(err, agent.ErrNoJSONFound):
		response.Error(w, http.StatusBadGateway, "NO_JSON_FOUND", err.Error(), nil)
	case errors.Is(err, agent.ErrMalformedResponse):
		response.Error(w, http.StatusBadGateway, "MALFORMED_RESPONSE", err.Error(), nil)
	case errors.Is(err, agent.ErrUnexpectedShape):
		response.Error(w, http.StatusBadGateway, "UNEXPECTED_RESPONSE_SHAPE", err.Error(), nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An unexpected error occurred", nil)
	}
}

type analyzeResponse struct {
	AnalysisID  string                `json:"analysis_id"`
	Provider    string                `json:"provider"`
	Count       int                   `json:"count"`
	Suggestions models.AnalysisResult `json:"suggestions"`
	AnalyzedAt  string                `json:"analyzed_at"`
}
