// Package openai invokes the OpenAI chat completion API as a hosted agent.
package openai

import (
	"context"
	"errors"
	"fmt"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

const defaultModel = "gpt-4o"

// Invoker implements models.AgentInvoker with a single stateless chat
// completion per call. No server-side conversation state is created.
type Invoker struct {
	client *gopenai.Client
	model  string
}

// NewInvoker creates an OpenAI invoker. An empty model falls back to the default.
func NewInvoker(apiKey, model string) *Invoker {
	if model == "" {
		model = defaultModel
	}
	return &Invoker{client: gopenai.NewClient(apiKey), model: model}
}

func (i *Invoker) Name() string { return "openai" }

// Invoke sends the classification instruction and the note in one completion
// request, asking for a JSON-typed response so the extractor's regex fallback
// is rarely needed.
func (i *Invoker) Invoke(ctx context.Context, note string, req models.InvokeRequest) (string, error) {
	resp, err := i.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model: i.model,
		ResponseFormat: &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: req.Instruction},
			{Role: gopenai.ChatMessageRoleUser, Content: note},
		},
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classify wraps SDK errors into the dispatcher's taxonomy, keeping only the
// concrete cause's type name so go-openai error types never leak upward.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", models.ErrTimeout, err)
	}
	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %T (status %d)", models.ErrAgentCommunication, apiErr, apiErr.HTTPStatusCode)
	}
	return fmt.Errorf("%w: %T", models.ErrAgentCommunication, err)
}

var _ models.AgentInvoker = (*Invoker)(nil)
