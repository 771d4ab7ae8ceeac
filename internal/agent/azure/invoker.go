// Package azure invokes a hosted agent on the Azure AI Foundry agent service.
//
// There is no official Go SDK for the Foundry agents API, so this is a thin
// client over its REST surface, authenticated with an azidentity credential.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/mullergauthier/HarmattanAI/pkg/models"
)

const (
	// tokenScope is the OAuth scope for the Foundry agent service.
	tokenScope = "https://ai.azure.com/.default"
	// defaultAPIVersion is the GA agents API version.
	defaultAPIVersion = "v1"
	// noReplySentinel is returned when a run completes but no assistant
	// message carries text. Matches the upstream contract: not an error.
	noReplySentinel = "No reply from agent."

	runPollInterval = 1 * time.Second
)

// Invoker implements models.AgentInvoker against the Foundry agents REST API.
// One isolated conversation thread is created per call and abandoned afterwards,
// so no context leaks across requests. Threads created by calls that time out
// are likewise abandoned, not deleted.
type Invoker struct {
	endpoint   string
	agentID    string
	apiVersion string
	credential azcore.TokenCredential
	client     *http.Client
	poll       time.Duration
}

// NewInvoker creates an Azure invoker bound to a project endpoint.
// agentID is the default agent; a per-call AgentID overrides it.
func NewInvoker(endpoint, agentID string, cred azcore.TokenCredential) *Invoker {
	return &Invoker{
		endpoint:   endpoint,
		agentID:    agentID,
		apiVersion: defaultAPIVersion,
		credential: cred,
		client:     &http.Client{},
		poll:       runPollInterval,
	}
}

func (i *Invoker) Name() string { return "azure" }

// Invoke creates a fresh thread, posts the system instruction and the note,
// runs the agent to completion, and returns the newest assistant text.
func (i *Invoker) Invoke(ctx context.Context, note string, req models.InvokeRequest) (string, error) {
	agentID := req.AgentID
	if agentID == "" {
		agentID = i.agentID
	}
	if agentID == "" {
		return "", fmt.Errorf("%w: no agent ID configured", models.ErrAgentCommunication)
	}

	var thread struct {
		ID string `json:"id"`
	}
	if err := i.do(ctx, http.MethodPost, "/threads", map[string]any{}, &thread); err != nil {
		return "", err
	}
	slog.Debug("created agent thread", "thread_id", thread.ID)

	// System instruction first, then the note as a separate message.
	messagesPath := "/threads/" + thread.ID + "/messages"
	if err := i.do(ctx, http.MethodPost, messagesPath,
		map[string]any{"role": "assistant", "content": req.Instruction}, nil); err != nil {
		return "", err
	}
	if err := i.do(ctx, http.MethodPost, messagesPath,
		map[string]any{"role": "user", "content": note}, nil); err != nil {
		return "", err
	}

	run, err := i.runToCompletion(ctx, thread.ID, agentID)
	if err != nil {
		return "", err
	}
	if run.Status == "failed" {
		return "", fmt.Errorf("%w: %s", models.ErrRunFailed, run.LastError.detail())
	}
	slog.Debug("agent run completed", "thread_id", thread.ID, "status", run.Status)

	return i.newestAssistantText(ctx, thread.ID)
}

// ListAgents returns the agents available in the project.
func (i *Invoker) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var resp struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := i.do(ctx, http.MethodGet, "/assistants?limit=100", nil, &resp); err != nil {
		return nil, err
	}
	agents := make([]models.Agent, 0, len(resp.Data))
	for _, a := range resp.Data {
		agents = append(agents, models.Agent{ID: a.ID, Name: a.Name})
	}
	return agents, nil
}

// --- run handling ---

type runState struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	LastError runError `json:"last_error"`
}

type runError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e runError) detail() string {
	if e.Code == "" && e.Message == "" {
		return "unknown error"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func isTerminal(status string) bool {
	switch status {
	case "completed", "failed", "cancelled", "expired":
		return true
	}
	return false
}

// runToCompletion creates a run and polls it until it reaches a terminal state
// or the context deadline aborts the wait.
func (i *Invoker) runToCompletion(ctx context.Context, threadID, agentID string) (*runState, error) {
	var run runState
	runsPath := "/threads/" + threadID + "/runs"
	if err := i.do(ctx, http.MethodPost, runsPath, map[string]any{"assistant_id": agentID}, &run); err != nil {
		return nil, err
	}

	for !isTerminal(run.Status) {
		select {
		case <-ctx.Done():
			return nil, classify(ctx.Err())
		case <-time.After(i.poll):
		}
		if err := i.do(ctx, http.MethodGet, runsPath+"/"+run.ID, nil, &run); err != nil {
			return nil, err
		}
	}
	return &run, nil
}

// --- message retrieval ---

type threadMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type messageContentPart struct {
	Type string `json:"type"`
	Text struct {
		Value string `json:"value"`
	} `json:"text"`
}

// newestAssistantText scans thread messages newest-first and returns the first
// assistant-authored text, trying typed content parts before a plain string.
// A completed run with no assistant text yields the no-reply sentinel.
func (i *Invoker) newestAssistantText(ctx context.Context, threadID string) (string, error) {
	var resp struct {
		Data []threadMessage `json:"data"`
	}
	if err := i.do(ctx, http.MethodGet, "/threads/"+threadID+"/messages?order=desc", nil, &resp); err != nil {
		return "", err
	}

	for _, msg := range resp.Data {
		if msg.Role != "assistant" || len(msg.Content) == 0 {
			continue
		}
		var parts []messageContentPart
		if err := json.Unmarshal(msg.Content, &parts); err == nil {
			for _, part := range parts {
				if part.Type == "text" && part.Text.Value != "" {
					return part.Text.Value, nil
				}
			}
			continue
		}
		var plain string
		if err := json.Unmarshal(msg.Content, &plain); err == nil && plain != "" {
			return plain, nil
		}
	}

	slog.Warn("no assistant text in thread", "thread_id", threadID)
	return noReplySentinel, nil
}

// --- transport ---

// do performs one authenticated request against the project endpoint and
// decodes the JSON response into out (when non-nil).
func (i *Invoker) do(ctx context.Context, method, path string, body any, out any) error {
	token, err := i.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{tokenScope},
	})
	if err != nil {
		return classify(err)
	}

	u := i.endpoint + path
	if parsed, perr := url.Parse(u); perr == nil && parsed.Query().Get("api-version") == "" {
		sep := "?"
		if parsed.RawQuery != "" {
			sep = "&"
		}
		u += sep + "api-version=" + i.apiVersion
	}

	var reqBody *bytes.Reader
	if body != nil {
		b, merr := json.Marshal(body)
		if merr != nil {
			return fmt.Errorf("encoding request body: %w", merr)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token.Token)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := i.client.Do(httpReq)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s returned status %d",
			models.ErrAgentCommunication, method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %T", models.ErrAgentCommunication, err)
	}
	return nil
}

// classify maps transport- and credential-level errors onto the dispatcher's
// taxonomy, carrying the concrete cause's type name instead of the cause itself
// so provider error types never leak upward.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", models.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: call cancelled", models.ErrAgentCommunication)
	}
	return fmt.Errorf("%w: %T", models.ErrAgentCommunication, err)
}

var _ models.AgentInvoker = (*Invoker)(nil)
var _ models.AgentLister = (*Invoker)(nil)
