package models

import "errors"

// Failure taxonomy of an agent invocation. The sentinels live next to the
// AgentInvoker contract so invoker implementations can wrap them without
// depending on the dispatcher package. Every stage fails fast; no stage
// attempts local recovery or partial-result salvage.
var (
	// ErrInvalidProvider means the requested provider is not configured; no
	// network call was attempted.
	ErrInvalidProvider = errors.New("invalid agent provider")
	// ErrAgentCommunication wraps transport, authentication, and TLS failures.
	// Provider SDK error types never escape past this sentinel.
	ErrAgentCommunication = errors.New("agent communication error")
	// ErrTimeout means the invocation exceeded its bound and was cancelled.
	ErrTimeout = errors.New("agent call timed out")
	// ErrRunFailed means the agent service itself reported a failed run.
	ErrRunFailed = errors.New("agent run failed")
	// ErrEmptyResponse means the invocation succeeded but returned no text.
	ErrEmptyResponse = errors.New("agent returned no response")
	// ErrNoJSONFound means text came back but no JSON-shaped substring was located.
	ErrNoJSONFound = errors.New("no JSON found in agent response")
	// ErrMalformedResponse means a JSON-shaped substring was located but failed to parse.
	ErrMalformedResponse = errors.New("malformed JSON in agent response")
	// ErrUnexpectedShape means the parsed JSON is neither an array nor an object.
	ErrUnexpectedShape = errors.New("unexpected agent response shape")
)
