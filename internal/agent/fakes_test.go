// ABOUTME: Shared in-memory fakes for the agent package tests
// ABOUTME: Fakes count calls so tests can assert what was and was not invoked
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/harper/voicerelay/internal/llm"
)

// fakeModel is a scriptable ModelClient. Responses are served in order; once
// exhausted, the last response repeats.
type fakeModel struct {
	mu        sync.Mutex
	responses []string
	genErr    error
	calls     []llm.GenerateRequest

	created   int
	discarded []string
}

func (m *fakeModel) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.genErr != nil {
		return nil, m.genErr
	}
	if len(m.responses) == 0 {
		return &llm.GenerateResult{Text: "ok"}, nil
	}
	text := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return &llm.GenerateResult{Text: text}, nil
}

func (m *fakeModel) GenerateStream(_ context.Context, req llm.GenerateRequest) (llm.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.genErr != nil {
		return nil, m.genErr
	}
	return &fakeStream{deltas: []string{"hello ", "world"}}, nil
}

func (m *fakeModel) CreateConversation(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
	return fmt.Sprintf("conv_fake%d", m.created), nil
}

func (m *fakeModel) DiscardConversation(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discarded = append(m.discarded, id)
}

// fakeStream replays fixed deltas followed by a final event.
type fakeStream struct {
	deltas []string
	pos    int
	final  bool
}

func (s *fakeStream) Recv() (llm.StreamEvent, error) {
	if s.pos < len(s.deltas) {
		ev := llm.StreamEvent{Type: llm.StreamTextDelta, Text: s.deltas[s.pos]}
		s.pos++
		return ev, nil
	}
	if !s.final {
		s.final = true
		return llm.StreamEvent{Type: llm.StreamFinal, Text: strings.Join(s.deltas, "")}, nil
	}
	return llm.StreamEvent{}, io.EOF
}

func (s *fakeStream) Close() error { return nil }

// fakeTranscriber maps buffers to transcripts by their string form. A buffer
// with no mapping fails with errTranscribe; a buffer mapped to "" transcribes
// to empty text.
type fakeTranscriber struct {
	mu         sync.Mutex
	transcript map[string]string
	calls      int
}

var errTranscribe = errors.New("transcription backend unavailable")

func (t *fakeTranscriber) Transcribe(_ context.Context, data []byte, _ string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	text, ok := t.transcript[string(data)]
	if !ok {
		return "", errTranscribe
	}
	return text, nil
}

func (t *fakeTranscriber) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
