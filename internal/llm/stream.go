// ABOUTME: Adapter from the provider's SSE completion stream to tagged events
// ABOUTME: Accumulates deltas so the final event carries the full text
package llm

import (
	"errors"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// chatStream adapts an openai.ChatCompletionStream to the Stream contract.
type chatStream struct {
	inner  *openai.ChatCompletionStream
	client *Client
	convID string
	prompt string

	sb       strings.Builder
	finished bool
	done     bool
}

func (s *chatStream) Recv() (StreamEvent, error) {
	if s.done {
		return StreamEvent{}, io.EOF
	}
	if s.finished {
		s.done = true
		return StreamEvent{}, io.EOF
	}

	for {
		resp, err := s.inner.Recv()
		if errors.Is(err, io.EOF) {
			s.finished = true
			text := s.sb.String()
			s.client.record(s.convID, s.prompt, text)
			return StreamEvent{Type: StreamFinal, Text: text}, nil
		}
		if err != nil {
			s.done = true
			return StreamEvent{}, err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		s.sb.WriteString(delta)
		return StreamEvent{Type: StreamTextDelta, Text: delta}, nil
	}
}

func (s *chatStream) Close() error {
	s.done = true
	return s.inner.Close()
}
