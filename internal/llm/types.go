// ABOUTME: Request, result, and stream contracts for the model client
// ABOUTME: Streams are finite, non-restartable sequences of tagged events ending in io.EOF
package llm

import "context"

// RetrievalConfig scopes a generation call to search a set of vector stores.
type RetrievalConfig struct {
	VectorStoreIDs []string
	MaxResults     int
}

// GenerateRequest describes one generation call.
type GenerateRequest struct {
	// Prompt is the user-visible text sent to the model.
	Prompt string

	// ConversationID, when set, continues an existing conversation. Ids are
	// minted by CreateConversation and validated by prefix.
	ConversationID string

	// Retrieval, when non-nil, augments the call with context retrieved
	// from the referenced vector stores.
	Retrieval *RetrievalConfig

	// Model overrides the client's default chat model when non-empty.
	Model string

	// Temperature overrides the model default when > 0.
	Temperature float32

	// JSONOnly constrains the response to a single JSON object.
	JSONOnly bool
}

// GenerateResult is a complete (non-streamed) generation outcome. Raw holds
// the opaque provider response.
type GenerateResult struct {
	Text string
	Raw  any
}

// StreamEventType tags one unit of a streamed generation.
type StreamEventType string

const (
	// StreamTextDelta carries one incremental text fragment.
	StreamTextDelta StreamEventType = "text_delta"

	// StreamFinal carries the full accumulated text and ends the stream.
	StreamFinal StreamEventType = "final"
)

// StreamEvent is one unit of a streamed generation result.
type StreamEvent struct {
	Type StreamEventType
	Text string
}

// Stream is a finite sequence of generation events. Recv returns io.EOF
// after the final event; Close releases the underlying transport and may be
// called early to abandon the stream.
type Stream interface {
	Recv() (StreamEvent, error)
	Close() error
}

// Retriever searches vector stores for context snippets. Implemented by the
// store layer; the client uses it when a request carries a RetrievalConfig.
type Retriever interface {
	Retrieve(ctx context.Context, storeIDs []string, query string, maxResults int) ([]string, error)
}
