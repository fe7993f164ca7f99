// ABOUTME: Wire request decoding: JSON bodies with base64 audio into typed inputs
// ABOUTME: Input shape is chosen by the declared type tag, never by probing fields
package httpserver

import (
	"encoding/base64"
	"fmt"

	"github.com/harper/voicerelay/internal/models"
)

// agentRequest is the JSON body of an agent invocation.
type agentRequest struct {
	ConversationID string       `json:"conversationId,omitempty"`
	VectorStoreIDs []string     `json:"vectorStoreIds,omitempty"`
	Input          agentInput   `json:"input"`
	Metadata       *batchFields `json:"metadata,omitempty"`
}

// agentInput is the wire form of the input union; Type selects the variant.
type agentInput struct {
	Type     models.InputType `json:"type"`
	Text     string           `json:"text,omitempty"`
	Audio    string           `json:"audio,omitempty"` // base64
	MIMEType string           `json:"mimeType,omitempty"`
	Duration float64          `json:"duration,omitempty"`
	Chunks   []agentChunk     `json:"chunks,omitempty"`
}

// agentChunk is one wire batch chunk.
type agentChunk struct {
	Audio     string  `json:"audio"` // base64
	MIMEType  string  `json:"mimeType,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`
}

// batchFields carries batch-level wire metadata.
type batchFields struct {
	ProcessingMode string  `json:"processingMode,omitempty"`
	TotalDuration  float64 `json:"totalDuration,omitempty"`
}

// toInput converts the wire request into the typed input union.
func (r *agentRequest) toInput() (models.Input, error) {
	switch r.Input.Type {
	case models.InputTypeText, "":
		if r.Input.Text == "" {
			return nil, fmt.Errorf("text input requires a text field")
		}
		return models.TextInput{Text: r.Input.Text}, nil

	case models.InputTypeAudio:
		data, err := base64.StdEncoding.DecodeString(r.Input.Audio)
		if err != nil {
			return nil, fmt.Errorf("decode audio: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("audio input requires a non-empty audio field")
		}
		return models.SingleAudioInput{
			Data:     data,
			MIMEType: defaultMIME(r.Input.MIMEType),
			Metadata: models.AudioMetadata{Duration: r.Input.Duration},
		}, nil

	case models.InputTypeAudioBatch:
		if len(r.Input.Chunks) == 0 {
			return nil, fmt.Errorf("audio_batch input requires chunks")
		}
		chunks := make([]models.AudioChunk, 0, len(r.Input.Chunks))
		for i, c := range r.Input.Chunks {
			data, err := base64.StdEncoding.DecodeString(c.Audio)
			if err != nil {
				return nil, fmt.Errorf("decode chunk %d: %w", i, err)
			}
			chunks = append(chunks, models.AudioChunk{
				Data:      data,
				MIMEType:  defaultMIME(c.MIMEType),
				Timestamp: c.Timestamp,
			})
		}
		meta := models.BatchMetadata{}
		if r.Metadata != nil {
			meta.ProcessingMode = models.ParseProcessingMode(r.Metadata.ProcessingMode)
			meta.TotalDuration = r.Metadata.TotalDuration
		}
		return models.BatchAudioInput{Chunks: chunks, Metadata: meta}, nil

	default:
		return nil, fmt.Errorf("unsupported input type %q", r.Input.Type)
	}
}

func defaultMIME(mime string) string {
	if mime == "" {
		return "audio/mpeg"
	}
	return mime
}
