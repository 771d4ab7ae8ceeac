package agent

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/mullergauthier/HarmattanAI/internal/agent/azure"
	"github.com/mullergauthier/HarmattanAI/internal/agent/openai"
	"github.com/mullergauthier/HarmattanAI/internal/config"
	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

// NewInvokers constructs the configured invoker set based on config.
// Called once at server startup; clients are built here and injected, never
// lazily initialized behind package globals.
func NewInvokers(cfg config.AgentConfig) (map[string]models.AgentInvoker, error) {
	invokers := make(map[string]models.AgentInvoker, len(cfg.Providers))
	for _, provider := range cfg.Providers {
		switch provider {
		case "azure":
			cred, err := azidentity.NewClientSecretCredential(
				cfg.Azure.TenantID, cfg.Azure.ClientID, cfg.Azure.ClientSecret, nil)
			if err != nil {
				return nil, fmt.Errorf("azure credential: %w", err)
			}
			invokers["azure"] = azure.NewInvoker(cfg.Azure.ProjectEndpoint, cfg.Azure.AgentID, cred)
		case "openai":
			invokers["openai"] = openai.NewInvoker(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		default:
			return nil, fmt.Errorf("unknown agent provider %q: must be one of azure, openai", provider)
		}
	}
	return invokers, nil
}
