// ABOUTME: Supervisor: normalizes any input shape to text, classifies the route,
// ABOUTME: dispatches to one sub-agent, and stamps provenance metadata on the result
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/harper/voicerelay/internal/llm"
	"github.com/harper/voicerelay/internal/models"
)

// Normalized is the supervisor-internal outcome of input normalization: plain
// text plus descriptive audio provenance.
type Normalized struct {
	Text  string
	Audio models.AudioTranscriptionMetadata
}

// Supervisor is the single entry point for agent requests. It owns
// normalization and routing; sub-agents only ever see text.
type Supervisor struct {
	model        ModelClient
	transcriber  Transcriber
	batch        *BatchProcessor
	agents       map[models.Route]Agent
	routingModel string
}

// NewSupervisor wires the supervisor over its collaborators.
func NewSupervisor(model ModelClient, transcriber Transcriber, direct, retrieval Agent) *Supervisor {
	return &Supervisor{
		model:       model,
		transcriber: transcriber,
		batch:       NewBatchProcessor(transcriber),
		agents: map[models.Route]Agent{
			models.RouteDirect: direct,
			models.RouteRAG:    retrieval,
		},
	}
}

// SetRoutingModel overrides the model used for routing classification calls.
// Empty means the client's default chat model.
func (s *Supervisor) SetRoutingModel(model string) {
	s.routingModel = model
}

// ResolveConversation returns the given conversation id when it is well
// formed, otherwise creates a fresh conversation.
func (s *Supervisor) ResolveConversation(ctx context.Context, id string) (string, error) {
	if llm.IsConversationID(id) {
		return id, nil
	}
	created, err := s.model.CreateConversation(ctx)
	if err != nil {
		return "", newError(CodeUpstream, "create conversation", err)
	}
	return created, nil
}

// Run handles one complete (non-streaming) request: resolve the conversation,
// normalize the input, classify the route, dispatch, and attach provenance.
func (s *Supervisor) Run(ctx context.Context, conversationID string, input models.Input, params Params) (*models.AgentResult, error) {
	convID, err := s.ResolveConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	norm, err := s.Normalize(ctx, input)
	if err != nil {
		return nil, err
	}

	decision := s.Classify(ctx, norm.Text, params.VectorStoreIDs)

	target, ok := s.agents[decision.Route]
	if !ok {
		return nil, newError(CodeUnsupportedInput, fmt.Sprintf("no agent for route %q", decision.Route), nil)
	}

	result, err := target.Run(ctx, convID, decision.Query, params)
	if err != nil {
		return nil, err
	}

	result.SupervisorMetadata = &models.SupervisorMetadata{
		RoutingDecision:    decision,
		AudioTranscription: norm.Audio,
		OriginalInputType:  input.Type(),
	}
	return result, nil
}

// RunStream handles one streaming request. The caller receives the resolved
// conversation id and transcript up front, then the sub-agent's stream.
func (s *Supervisor) RunStream(ctx context.Context, conversationID string, input models.Input, params Params) (string, *Normalized, models.RoutingDecision, llm.Stream, error) {
	convID, err := s.ResolveConversation(ctx, conversationID)
	if err != nil {
		return "", nil, models.RoutingDecision{}, nil, err
	}

	norm, err := s.Normalize(ctx, input)
	if err != nil {
		return "", nil, models.RoutingDecision{}, nil, err
	}

	decision := s.Classify(ctx, norm.Text, params.VectorStoreIDs)

	target, ok := s.agents[decision.Route]
	if !ok {
		return "", nil, models.RoutingDecision{}, nil, newError(CodeUnsupportedInput, fmt.Sprintf("no agent for route %q", decision.Route), nil)
	}

	stream, err := target.RunStream(ctx, convID, decision.Query, params)
	if err != nil {
		return "", nil, models.RoutingDecision{}, nil, err
	}
	return convID, norm, decision, stream, nil
}

// Normalize reduces any input shape to text. Text passes through untouched;
// audio is transcribed before routing ever sees it.
func (s *Supervisor) Normalize(ctx context.Context, input models.Input) (*Normalized, error) {
	switch in := input.(type) {
	case models.TextInput:
		return &Normalized{
			Text:  in.Text,
			Audio: models.AudioTranscriptionMetadata{AudioProcessed: false},
		}, nil

	case models.SingleAudioInput:
		text, err := s.transcriber.Transcribe(ctx, in.Data, in.MIMEType)
		if err != nil {
			return nil, newError(CodeTranscriptionFailed, "single audio transcription failed", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, newError(CodeEmptyTranscript, "audio transcribed to empty text", nil)
		}
		return &Normalized{
			Text: text,
			Audio: models.AudioTranscriptionMetadata{
				AudioProcessed: true,
				AudioType:      models.AudioTypeSingle,
				MIMEType:       in.MIMEType,
				TotalDuration:  in.Metadata.Duration,
			},
		}, nil

	case models.BatchAudioInput:
		mode := models.ParseProcessingMode(string(in.Metadata.ProcessingMode))
		text, err := s.batch.Process(ctx, in.Chunks, mode)
		if err != nil {
			return nil, err
		}
		return &Normalized{
			Text: text,
			Audio: models.AudioTranscriptionMetadata{
				AudioProcessed: true,
				AudioType:      models.AudioTypeBatch,
				ChunksCount:    len(in.Chunks),
				ProcessingMode: mode,
				TotalDuration:  in.Metadata.TotalDuration,
			},
		}, nil

	default:
		return nil, newError(CodeUnsupportedInput, fmt.Sprintf("unsupported input %T", input), nil)
	}
}

// Classify runs the routing model call on a disposable conversation and
// parses its decision. Any failure in the call or the parse degrades to the
// deterministic fallback; classification never fails a request.
func (s *Supervisor) Classify(ctx context.Context, text string, vectorStoreIDs []string) models.RoutingDecision {
	decision, err := s.classify(ctx, text, vectorStoreIDs)
	if err != nil {
		log.Printf("[supervisor] routing classification failed, using fallback: %v", err)
		decision = fallbackDecision(text, vectorStoreIDs)
	}

	// A rag verdict with no stores to search is undeliverable.
	if decision.Route == models.RouteRAG && len(vectorStoreIDs) == 0 {
		decision.Route = models.RouteDirect
	}
	if strings.TrimSpace(decision.Query) == "" {
		decision.Query = text
	}
	return decision
}

func (s *Supervisor) classify(ctx context.Context, text string, vectorStoreIDs []string) (models.RoutingDecision, error) {
	// The classification exchange must not leak into the caller's history.
	convID, err := s.model.CreateConversation(ctx)
	if err != nil {
		return models.RoutingDecision{}, fmt.Errorf("create routing conversation: %w", err)
	}
	defer s.model.DiscardConversation(convID)

	res, err := s.model.Generate(ctx, llm.GenerateRequest{
		Prompt:         buildRoutingPrompt(text, vectorStoreIDs),
		ConversationID: convID,
		Model:          s.routingModel,
		Temperature:    0.1,
		JSONOnly:       true,
	})
	if err != nil {
		return models.RoutingDecision{}, fmt.Errorf("routing call: %w", err)
	}
	return ParseRoutingDecision(res.Text)
}
