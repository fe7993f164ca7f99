// ABOUTME: Input tagged union for text, single-audio, and batch-audio requests
// ABOUTME: Dispatch is by exhaustive type switch, never by structural probing
package models

// InputType identifies the shape of a caller-supplied input.
type InputType string

const (
	InputTypeText       InputType = "text"
	InputTypeAudio      InputType = "audio"
	InputTypeAudioBatch InputType = "audio_batch"
)

// Input is the sealed union of request input shapes. The three variants are
// TextInput, SingleAudioInput, and BatchAudioInput; nothing else implements it.
type Input interface {
	// Type returns the input type tag for metadata and wire encoding.
	Type() InputType
}

// TextInput is a plain text request.
type TextInput struct {
	Text string
}

// Type returns InputTypeText.
func (TextInput) Type() InputType { return InputTypeText }

// AudioMetadata carries optional descriptive properties of an audio buffer.
// It is informational only and never drives control flow.
type AudioMetadata struct {
	Duration   float64 `json:"duration,omitempty"` // seconds
	SampleRate int     `json:"sampleRate,omitempty"`
	Channels   int     `json:"channels,omitempty"`
}

// SingleAudioInput is one audio buffer to transcribe and route.
type SingleAudioInput struct {
	Data     []byte
	MIMEType string
	Metadata AudioMetadata
}

// Type returns InputTypeAudio.
func (SingleAudioInput) Type() InputType { return InputTypeAudio }

// AudioChunk is one element of a batch-audio request. Chunk order in the
// batch is insertion order and is authoritative; Timestamp is informational
// and never used to resort chunks.
type AudioChunk struct {
	Data      []byte
	MIMEType  string
	Timestamp float64 // seconds from batch start, optional
	Metadata  *AudioMetadata
}

// BatchMetadata describes a batch-audio request as a whole.
type BatchMetadata struct {
	TotalDuration  float64        `json:"totalDuration,omitempty"`
	ProcessingMode ProcessingMode `json:"processingMode,omitempty"`
}

// BatchAudioInput is an ordered sequence of audio chunks combined into a
// single transcript under a processing mode.
type BatchAudioInput struct {
	Chunks   []AudioChunk
	Metadata BatchMetadata
}

// Type returns InputTypeAudioBatch.
func (BatchAudioInput) Type() InputType { return InputTypeAudioBatch }
