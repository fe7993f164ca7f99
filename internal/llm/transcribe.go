// ABOUTME: Speech-to-text over the OpenAI audio transcription endpoint
// ABOUTME: Transport errors fail loudly; empty text is a valid result for callers to judge
package llm

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/harper/voicerelay/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// Transcribe converts a raw audio buffer into text. The MIME type selects the
// synthetic filename extension the provider uses for format detection. A
// transport or provider error is returned as an error; silent or non-speech
// audio may legitimately yield empty text.
func (c *Client) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty audio buffer")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateTranscription(callCtx, openai.AudioRequest{
			Model:    c.audioModel,
			Reader:   bytes.NewReader(data),
			FilePath: "audio" + extensionForMIME(mimeType),
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		return resp.Text, nil
	}

	return "", fmt.Errorf("transcription failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// extensionForMIME maps an audio MIME type to a filename extension the
// provider recognizes. Unknown types default to .mp3.
func extensionForMIME(mimeType string) string {
	switch mimeType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/ogg", "application/ogg":
		return ".ogg"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	}
	return ".mp3"
}
