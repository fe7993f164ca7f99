// ABOUTME: Agent result and supervisor provenance metadata types
// ABOUTME: Results are built fresh per request and never mutated after construction
package models

// AudioTranscriptionMetadata describes what the audio path did for a request.
// It is purely descriptive and never consulted for control flow downstream.
type AudioTranscriptionMetadata struct {
	AudioProcessed bool           `json:"audioProcessed"`
	AudioType      string         `json:"audioType,omitempty"` // "single" or "batch"
	MIMEType       string         `json:"mimeType,omitempty"`
	ChunksCount    int            `json:"chunksCount,omitempty"`
	ProcessingMode ProcessingMode `json:"processingMode,omitempty"`
	TotalDuration  float64        `json:"totalDuration,omitempty"`
}

// Audio type tags used in AudioTranscriptionMetadata.
const (
	AudioTypeSingle = "single"
	AudioTypeBatch  = "batch"
)

// SupervisorMetadata carries provenance attached by the supervisor: how the
// request was routed, what the audio path produced, and the original input
// shape. Sub-agents never populate it.
type SupervisorMetadata struct {
	RoutingDecision    RoutingDecision            `json:"routingDecision"`
	AudioTranscription AudioTranscriptionMetadata `json:"audioTranscription"`
	OriginalInputType  InputType                  `json:"originalInputType"`
}

// AgentResult is the outcome of one agent invocation. Raw holds the opaque
// provider response for callers that want the full payload.
type AgentResult struct {
	ConversationID     string              `json:"conversationId"`
	Agent              string              `json:"agent"`
	Text               string              `json:"text"`
	Raw                any                 `json:"raw,omitempty"`
	SupervisorMetadata *SupervisorMetadata `json:"supervisorMetadata,omitempty"`
}
