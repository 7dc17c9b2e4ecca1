package brain

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider abstracts the chat API (Claude or Gemini).
type Provider interface {
	Send(ctx context.Context, systemPrompt string, history []Message) (*Response, error)
}

// Conversation roles. Gemini calls the assistant "model".
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a provider-agnostic conversation turn.
type Message struct {
	Role        string
	Text        string       // may be empty if the turn only carries tool traffic
	ToolCalls   []ToolCall   // assistant asks for care actions
	ToolResults []ToolResult // user turn answering them
}

// ToolCall is a request from the model to invoke a tool.
type ToolCall struct {
	ID    string // provider-assigned; Gemini may leave it empty
	Name  string
	Input json.RawMessage
}

// ToolResult is the outcome of a tool call sent back to the model.
type ToolResult struct {
	ID      string // matches ToolCall.ID
	Name    string // matches ToolCall.Name
	Content string
	IsError bool
}

// Response is one Send round trip.
type Response struct {
	Text      string
	ToolCalls []ToolCall
	Done      bool // no tool calls left to run
}

// toolNames lists the tools a response asked for, for logging.
func (r *Response) toolNames() string {
	names := make([]string, len(r.ToolCalls))
	for i, tc := range r.ToolCalls {
		names[i] = tc.Name
	}
	return strings.Join(names, ",")
}
