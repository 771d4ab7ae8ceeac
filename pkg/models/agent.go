// Package models contains shared data models used across the HarmattanAI codebase.
package models

import "context"

// AgentInvoker is the core interface every hosted-agent integration must implement.
// Never call a specific provider directly — always inject this interface.
type AgentInvoker interface {
	// Invoke sends one note to the hosted agent and returns its raw text reply.
	// One network round trip, no retries; the caller owns the deadline.
	Invoke(ctx context.Context, note string, req InvokeRequest) (string, error)
	// Name returns the provider identifier (e.g., "azure", "openai").
	Name() string
}

// AgentLister is implemented by invokers whose provider supports agent discovery.
type AgentLister interface {
	ListAgents(ctx context.Context) ([]Agent, error)
}

// InvokeRequest carries the per-call parameters of an agent invocation.
type InvokeRequest struct {
	// Website is the ICD-10 classification site the agent must cite.
	Website string
	// Language is the language for code descriptions ("en", "fr", ...).
	Language string
	// AgentID overrides the configured default agent, when the provider has one.
	AgentID string
	// Instruction is the system instruction for the call. The dispatcher builds
	// it from Website and Language; invokers send it verbatim.
	Instruction string
}

// Agent identifies a hosted agent available in the provider's project.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
