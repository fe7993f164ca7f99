// ABOUTME: Retrieval-augmented sub-agent scoped to a set of vector stores
// ABOUTME: Rejects calls without store ids before any model traffic
package agent

import (
	"context"

	"github.com/harper/voicerelay/internal/llm"
	"github.com/harper/voicerelay/internal/models"
)

// RetrievalAgent answers queries with generation augmented by vector store
// search over the stores named in the request params.
type RetrievalAgent struct {
	model ModelClient
	topK  int
}

// NewRetrievalAgent creates the retrieval-augmented sub-agent. topK bounds
// how many context snippets each call retrieves.
func NewRetrievalAgent(model ModelClient, topK int) *RetrievalAgent {
	if topK <= 0 {
		topK = 5
	}
	return &RetrievalAgent{model: model, topK: topK}
}

// Name returns the route tag for this agent.
func (a *RetrievalAgent) Name() string { return string(models.RouteRAG) }

func (a *RetrievalAgent) request(conversationID, text string, params Params) llm.GenerateRequest {
	return llm.GenerateRequest{
		Prompt:         text,
		ConversationID: conversationID,
		Retrieval: &llm.RetrievalConfig{
			VectorStoreIDs: params.VectorStoreIDs,
			MaxResults:     a.topK,
		},
	}
}

// Run performs one retrieval-augmented generation call.
func (a *RetrievalAgent) Run(ctx context.Context, conversationID string, input any, params Params) (*models.AgentResult, error) {
	text, err := textOf(input)
	if err != nil {
		return nil, err
	}
	if len(params.VectorStoreIDs) == 0 {
		return nil, newError(CodeMissingVectorStores, "retrieval agent requires vector store ids", nil)
	}

	res, err := a.model.Generate(ctx, a.request(conversationID, text, params))
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

// RunStream opens a streaming retrieval-augmented generation call.
func (a *RetrievalAgent) RunStream(ctx context.Context, conversationID string, input any, params Params) (llm.Stream, error) {
	text, err := textOf(input)
	if err != nil {
		return nil, err
	}
	if len(params.VectorStoreIDs) == 0 {
		return nil, newError(CodeMissingVectorStores, "retrieval agent requires vector store ids", nil)
	}

	stream, err := a.model.GenerateStream(ctx, a.request(conversationID, text, params))
	if err != nil {
		return nil, newError(CodeUpstream, "generation failed", err)
	}
	return stream, nil
}
