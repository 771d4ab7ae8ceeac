package agent

import "github.com/mullergauthier/HarmattanAI/pkg/models"

// The failure taxonomy is defined in pkg/models next to the AgentInvoker
// contract. These aliases are the same error values, so errors.Is matches
// under either name.
var (
	ErrInvalidProvider    = models.ErrInvalidProvider
	ErrAgentCommunication = models.ErrAgentCommunication
	ErrTimeout            = models.ErrTimeout
	ErrRunFailed          = models.ErrRunFailed
	ErrEmptyResponse      = models.ErrEmptyResponse
	ErrNoJSONFound        = models.ErrNoJSONFound
	ErrMalformedResponse  = models.ErrMalformedResponse
	ErrUnexpectedShape    = models.ErrUnexpectedShape
)
