// ABOUTME: Tests for wire request decoding into the typed input union
package httpserver

import (
	"encoding/base64"
	"testing"

	"github.com/harper/voicerelay/internal/models"
)

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestToInputText(t *testing.T) {
	req := agentRequest{Input: agentInput{Type: models.InputTypeText, Text: "hello"}}
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput failed: %v", err)
	}
	text, ok := input.(models.TextInput)
	if !ok || text.Text != "hello" {
		t.Errorf("input = %#v", input)
	}
}

func TestToInputDefaultsToText(t *testing.T) {
	req := agentRequest{Input: agentInput{Text: "hello"}}
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput failed: %v", err)
	}
	if input.Type() != models.InputTypeText {
		t.Errorf("type = %q, want text", input.Type())
	}
}

func TestToInputSingleAudio(t *testing.T) {
	req := agentRequest{Input: agentInput{
		Type:     models.InputTypeAudio,
		Audio:    b64("rawbytes"),
		MIMEType: "audio/wav",
		Duration: 3.5,
	}}
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput failed: %v", err)
	}
	audio, ok := input.(models.SingleAudioInput)
	if !ok {
		t.Fatalf("input = %#v", input)
	}
	if string(audio.Data) != "rawbytes" || audio.MIMEType != "audio/wav" || audio.Metadata.Duration != 3.5 {
		t.Errorf("audio = %#v", audio)
	}
}

func TestToInputAudioDefaultsMIME(t *testing.T) {
	req := agentRequest{Input: agentInput{Type: models.InputTypeAudio, Audio: b64("x")}}
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput failed: %v", err)
	}
	if input.(models.SingleAudioInput).MIMEType != "audio/mpeg" {
		t.Error("missing mime type did not default to audio/mpeg")
	}
}

func TestToInputBatch(t *testing.T) {
	req := agentRequest{
		Input: agentInput{
			Type: models.InputTypeAudioBatch,
			Chunks: []agentChunk{
				{Audio: b64("one"), Timestamp: 0},
				{Audio: b64("two"), MIMEType: "audio/wav", Timestamp: 4.2},
			},
		},
		Metadata: &batchFields{ProcessingMode: "parallel", TotalDuration: 8},
	}
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput failed: %v", err)
	}
	batch, ok := input.(models.BatchAudioInput)
	if !ok {
		t.Fatalf("input = %#v", input)
	}
	if len(batch.Chunks) != 2 || string(batch.Chunks[0].Data) != "one" {
		t.Errorf("chunks = %#v", batch.Chunks)
	}
	if batch.Chunks[1].MIMEType != "audio/wav" || batch.Chunks[1].Timestamp != 4.2 {
		t.Errorf("chunk 1 = %#v", batch.Chunks[1])
	}
	if batch.Metadata.ProcessingMode != models.ProcessingParallel || batch.Metadata.TotalDuration != 8 {
		t.Errorf("metadata = %#v", batch.Metadata)
	}
}

func TestToInputErrors(t *testing.T) {
	tests := []struct {
		name string
		req  agentRequest
	}{
		{"empty text", agentRequest{Input: agentInput{Type: models.InputTypeText}}},
		{"bad base64", agentRequest{Input: agentInput{Type: models.InputTypeAudio, Audio: "!!!"}}},
		{"empty audio", agentRequest{Input: agentInput{Type: models.InputTypeAudio, Audio: ""}}},
		{"batch without chunks", agentRequest{Input: agentInput{Type: models.InputTypeAudioBatch}}},
		{"bad chunk base64", agentRequest{Input: agentInput{Type: models.InputTypeAudioBatch, Chunks: []agentChunk{{Audio: "!!!"}}}}},
		{"unknown type", agentRequest{Input: agentInput{Type: "video"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.req.toInput(); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}

func TestToInputBatchUnknownModeDefaults(t *testing.T) {
	req := agentRequest{
		Input:    agentInput{Type: models.InputTypeAudioBatch, Chunks: []agentChunk{{Audio: b64("x")}}},
		Metadata: &batchFields{ProcessingMode: "turbo"},
	}
	input, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput failed: %v", err)
	}
	if input.(models.BatchAudioInput).Metadata.ProcessingMode != models.ProcessingSequential {
		t.Error("unknown processing mode did not default to sequential")
	}
}
