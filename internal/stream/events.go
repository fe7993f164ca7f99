// ABOUTME: Wire-level event types for streaming agent responses
// ABOUTME: Event order is fixed: conversation, transcript?, deltas, final, done
package stream

import "github.com/harper/voicerelay/internal/models"

// EventType tags one streaming event.
type EventType string

const (
	// EventConversation is always first and carries the resolved conversation id.
	EventConversation EventType = "conversation"
	// EventTranscript follows only for audio input, before any delta.
	EventTranscript EventType = "transcript"
	// EventTextDelta carries one incremental text fragment.
	EventTextDelta EventType = "text_delta"
	// EventFinal carries the assembled result after the last delta.
	EventFinal EventType = "final"
	// EventError is terminal; nothing follows it, not even done.
	EventError EventType = "error"
	// EventDone closes a successful stream.
	EventDone EventType = "done"
)

// Event is one element of a response stream.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// ConversationPayload accompanies EventConversation.
type ConversationPayload struct {
	ConversationID string `json:"conversationId"`
}

// TranscriptPayload accompanies EventTranscript for audio input.
type TranscriptPayload struct {
	Text          string                            `json:"text"`
	Transcription models.AudioTranscriptionMetadata `json:"transcription"`
}

// DeltaPayload accompanies EventTextDelta.
type DeltaPayload struct {
	Text string `json:"text"`
}

// FinalPayload accompanies EventFinal with the complete result.
type FinalPayload struct {
	Result *models.AgentResult `json:"result"`
}

// ErrorPayload accompanies EventError.
type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Sink receives ordered events. A Send error means the consumer is gone; the
// coordinator stops emitting but still drains the upstream.
type Sink interface {
	Send(Event) error
}
