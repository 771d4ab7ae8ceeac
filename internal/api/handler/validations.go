package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	mw "github.com/mullergauthier/HarmattanAI/internal/api/middleware"
	"github.com/mullergauthier/HarmattanAI/internal/api/response"
	"github.com/mullergauthier/HarmattanAI/internal/cache"
	"github.com/mullergauthier/HarmattanAI/internal/store"
	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// LatestAnalysisLookup resolves a tenant's most recent analysis.
type LatestAnalysisLookup interface {
	Latest(ctx context.Context, tenantID uuid.UUID) (*cache.Analysis, bool, error)
}

// SubmissionStore is the persistence surface validations need.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, sub *models.Submission) error
	ListSubmissions(ctx context.Context, filter store.SubmissionFilter) ([]*models.Submission, int, error)
}

// NewCreateValidationHandler returns an http.HandlerFunc for POST /api/v1/validations.
// It resolves the selected indices against the tenant's latest analysis and
// persists the approved codes for the named target system. targetSystems is
// the closed list of hospital systems codes may be sent to.
func NewCreateValidationHandler(lookup LatestAnalysisLookup, st SubmissionStore, targetSystems []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		var req struct {
			AnalysisID   string `json:"analysis_id"`
			TargetSystem string `json:"target_system"`
			Selected     []int  `json:"selected"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.AnalysisID == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "analysis_id is required", nil)
			return
		}
		analysisID, err := uuid.Parse(req.AnalysisID)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "analysis_id must be a valid UUID", nil)
			return
		}

		if req.TargetSystem == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "target_system is required", nil)
			return
		}
		if !containsString(targetSystems, req.TargetSystem) {
			response.Error(w, http.StatusBadRequest, "INVALID_TARGET_SYSTEM",
				"Unknown target system", map[string]any{"allowed": targetSystems})
			return
		}

		if len(req.Selected) == 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "selected must not be empty", nil)
			return
		}

		latest, found, err := lookup.Latest(r.Context(), tenantID)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to load analysis", nil)
			return
		}
		if !found {
			response.Error(w, http.StatusNotFound, "ANALYSIS_NOT_FOUND",
				"No analysis available; it may have expired", nil)
			return
		}
		if latest.ID != analysisID {
			// A newer analysis replaced the one the client validated against.
			response.Error(w, http.StatusConflict, "STALE_ANALYSIS",
				"The referenced analysis has been superseded", map[string]any{
					"latest_analysis_id": latest.ID.String(),
				})
			return
		}

		codes, err := selectSuggestions(latest.Suggestions, req.Selected)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_SELECTION", err.Error(), nil)
			return
		}

		sub := &models.Submission{
			ID:           uuid.New(),
			TenantID:     tenantID,
			AnalysisID:   analysisID,
			TargetSystem: req.TargetSystem,
			Provider:     latest.Provider,
			Codes:        codes,
			CreatedAt:    time.Now().UTC(),
		}
		if err := st.CreateSubmission(r.Context(), sub); err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to save validation", nil)
			return
		}

		response.Created(w, sub)
	}
}

// NewListValidationsHandler returns an http.HandlerFunc for GET /api/v1/validations.
func NewListValidationsHandler(st SubmissionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		page := queryInt(r, "page", 1)
		if page < 1 {
			page = 1
		}
		limit := queryInt(r, "limit", 20)
		if limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}

		subs, total, err := st.ListSubmissions(r.Context(), store.SubmissionFilter{
			TenantID:     tenantID,
			TargetSystem: r.URL.Query().Get("target_system"),
			Page:         page,
			Limit:        limit,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to list validations", nil)
			return
		}

		response.Collection(w, subs, response.PaginationMeta{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasNext: page*limit < total,
		})
	}
}

// selectSuggestions picks the suggestions at the given indices, deduplicating
// while preserving order. Any out-of-range index fails the whole selection.
func selectSuggestions(all models.AnalysisResult, indices []int) ([]models.CodeSuggestion, error) {
	seen := make(map[int]bool, len(indices))
	codes := make([]models.CodeSuggestion, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(all) {
			return nil, fmt.Errorf("selected index %d out of range (analysis has %d suggestions)", idx, len(all))
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		codes = append(codes, all[idx])
	}
	return codes, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
