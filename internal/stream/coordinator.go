// ABOUTME: Streaming coordinator translating one agent run into ordered wire events
// ABOUTME: Exactly one terminal event per stream: done on success, error otherwise
package stream

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/harper/voicerelay/internal/agent"
	"github.com/harper/voicerelay/internal/llm"
	"github.com/harper/voicerelay/internal/models"
)

// Request is one streaming agent invocation.
type Request struct {
	ConversationID string
	Input          models.Input
	Params         agent.Params
}

// Coordinator drives a supervisor run and emits its progress as events.
type Coordinator struct {
	supervisor *agent.Supervisor
}

// NewCoordinator creates a coordinator over the given supervisor.
func NewCoordinator(sup *agent.Supervisor) *Coordinator {
	return &Coordinator{supervisor: sup}
}

// Run executes the request and writes events to the sink in protocol order.
// The returned error reflects the run outcome; sink disconnects are absorbed.
func (c *Coordinator) Run(ctx context.Context, req Request, sink Sink) error {
	em := &emitter{sink: sink}

	convID, norm, decision, upstream, err := c.supervisor.RunStream(ctx, req.ConversationID, req.Input, req.Params)
	if err != nil {
		em.fail(err)
		return err
	}
	defer upstream.Close()

	em.send(Event{Type: EventConversation, Data: ConversationPayload{ConversationID: convID}})
	if norm.Audio.AudioProcessed {
		em.send(Event{Type: EventTranscript, Data: TranscriptPayload{Text: norm.Text, Transcription: norm.Audio}})
	}

	finalText, err := c.pump(upstream, em)
	if err != nil {
		em.fail(err)
		return err
	}

	result := &models.AgentResult{
		ConversationID: convID,
		Agent:          string(decision.Route),
		Text:           finalText,
		SupervisorMetadata: &models.SupervisorMetadata{
			RoutingDecision:    decision,
			AudioTranscription: norm.Audio,
			OriginalInputType:  req.Input.Type(),
		},
	}
	em.send(Event{Type: EventFinal, Data: FinalPayload{Result: result}})
	em.send(Event{Type: EventDone})
	return nil
}

// pump forwards upstream deltas until the stream finishes, returning the
// assembled final text.
func (c *Coordinator) pump(upstream llm.Stream, em *emitter) (string, error) {
	var finalText string
	for {
		ev, err := upstream.Recv()
		if errors.Is(err, io.EOF) {
			return finalText, nil
		}
		if err != nil {
			return "", err
		}
		switch ev.Type {
		case llm.StreamTextDelta:
			em.send(Event{Type: EventTextDelta, Data: DeltaPayload{Text: ev.Text}})
		case llm.StreamFinal:
			finalText = ev.Text
		}
	}
}

// emitter writes events until the first Send failure, then swallows the rest.
// A consumer that hung up must not turn a successful run into an error.
type emitter struct {
	sink Sink
	dead bool
}

func (e *emitter) send(ev Event) {
	if e.dead {
		return
	}
	if err := e.sink.Send(ev); err != nil {
		log.Printf("[stream] sink closed, dropping remaining events: %v", err)
		e.dead = true
	}
}

// fail emits the single terminal error event. No done follows.
func (e *emitter) fail(err error) {
	payload := ErrorPayload{Message: err.Error()}
	if code := agent.CodeOf(err); code != "" {
		payload.Code = string(code)
	}
	e.send(Event{Type: EventError, Data: payload})
}
