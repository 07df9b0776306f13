// Package llm abstracts the generative providers used for coaching
// prose. Callers build a Request, the configured provider turns it
// into wire calls, and decorators add retry and event logging around
// the Provider interface.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates text or schema-constrained JSON from a prompt.
type Provider interface {
	// Generate runs one completion. When the request carries a Schema
	// the returned Content is JSON validated against it; otherwise
	// Content holds the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID identifies the configured model, for event logging.
	ModelID() string
}

// Request is a single completion request. Coaching calls are
// single-turn: one system prompt plus one user message carrying the
// profile summary.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation so far, oldest first.
	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode and the response is validated against it.
	Schema *Schema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature in [0, 1]. Zero means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and describes the JSON shape a structured completion
// must produce. Name doubles as the tool or format name on the wire,
// kebab-case, e.g. "coaching-message".
type Schema struct {
	Name        string
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is the provider's answer.
type Response struct {
	// Content is validated JSON when the request had a Schema, raw
	// text otherwise.
	Content json.RawMessage

	// Usage reports token counts for the event log.
	Usage Usage

	// Model is the model that actually served the request, which may
	// differ from the configured alias.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// TextRequest builds the single-turn request shape every coaching
// call uses.
func TextRequest(system, user string, maxTokens int, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}
