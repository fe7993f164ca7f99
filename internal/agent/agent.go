// ABOUTME: Contracts binding the supervisor, sub-agents, and external clients
// ABOUTME: Sub-agents require string input; normalization is the supervisor's job alone
package agent

import (
	"context"

	"github.com/harper/voicerelay/internal/llm"
	"github.com/harper/voicerelay/internal/models"
)

// ModelClient is the slice of the model provider the agents rely on.
type ModelClient interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResult, error)
	GenerateStream(ctx context.Context, req llm.GenerateRequest) (llm.Stream, error)
	CreateConversation(ctx context.Context) (string, error)
	DiscardConversation(id string)
}

// Transcriber converts a raw audio buffer into text.
type Transcriber interface {
	Transcribe(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Params are per-request options threaded from the caller to the agents.
type Params struct {
	VectorStoreIDs []string
}

// Agent is one dispatch destination. Input is typed as any because agents
// must reject anything that is not a string with a typed error rather than
// accept normalization responsibility.
type Agent interface {
	Name() string
	Run(ctx context.Context, conversationID string, input any, params Params) (*models.AgentResult, error)
	RunStream(ctx context.Context, conversationID string, input any, params Params) (llm.Stream, error)
}

// textOf enforces the string-only sub-agent contract.
func textOf(input any) (string, error) {
	text, ok := input.(string)
	if !ok {
		return "", newError(CodeInvalidInputType, "sub-agents accept text only", nil)
	}
	return text, nil
}
