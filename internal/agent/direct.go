// ABOUTME: Direct sub-agent: plain generation with no tool configuration
// ABOUTME: One model call per invocation, on the caller-visible conversation
package agent

import (
	"context"

	"github.com/harper/voicerelay/internal/llm"
	"github.com/harper/voicerelay/internal/models"
)

// DirectAgent answers queries with a single untooled model call.
type DirectAgent struct {
	model ModelClient
}

// NewDirectAgent creates the direct sub-agent.
func NewDirectAgent(model ModelClient) *DirectAgent {
	return &DirectAgent{model: model}
}

// Name returns the route tag for this agent.
func (a *DirectAgent) Name() string { return string(models.RouteDirect) }

// Run performs one complete generation call.
func (a *DirectAgent) Run(ctx context.Context, conversationID string, input any, _ Params) (*models.AgentResult, error) {
	text, err := textOf(input)
	if err != nil {
		return nil, err
	}

	res, err := a.model.Generate(ctx, llm.GenerateRequest{
		Prompt:         text,
		ConversationID: conversationID,
	})
	if err != nil {
		return nil, newError(CodeUpstream, "generation failed", err)
	}

	return &models.AgentResult{
		ConversationID: conversationID,
		Agent:          a.Name(),
		Text:           res.Text,
		Raw:            res.Raw,
	}, nil
}

// RunStream opens a streaming generation call.
func (a *DirectAgent) RunStream(ctx context.Context, conversationID string, input any, _ Params) (llm.Stream, error) {
	text, err := textOf(input)
	if err != nil {
		return nil, err
	}

	stream, err := a.model.GenerateStream(ctx, llm.GenerateRequest{
		Prompt:         text,
		ConversationID: conversationID,
	})
	if err != nil {
		return nil, newError(CodeUpstream, "generation failed", err)
	}
	return stream, nil
}
