package handler

import (
	"context"
	"net/http"

	"github.com/mullergauthier/HarmattanAI/internal/api/response"
	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// AgentDirectory defines the discovery interface the handler depends on.
type AgentDirectory interface {
	Providers() []string
	ListAgents(ctx context.Context, provider string) ([]models.Agent, error)
}

// NewListAgentsHandler returns an http.HandlerFunc for GET /api/v1/agents.
// The provider query parameter defaults to the configured default provider.
func NewListAgentsHandler(dir AgentDirectory, defaultProvider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := r.URL.Query().Get("provider")
		if provider == "" {
			provider = defaultProvider
		}

		agents, err := dir.ListAgents(r.Context(), provider)
		if err != nil {
			writeAgentError(w, err)
			return
		}

		response.JSON(w, agentsResponse{
			Provider: provider,
			Agents:   agents,
		})
	}
}

type agentsResponse struct {
	Provider string         `json:"provider"`
	Agents   []models.Agent `json:"agents"`
}
