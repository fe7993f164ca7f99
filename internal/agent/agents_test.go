// ABOUTME: Tests for the direct and retrieval sub-agents
// ABOUTME: Input-type and vector-store preconditions fire before any model call
package agent

import (
	"context"
	"testing"

	"github.com/harper/voicerelay/internal/models"
)

func TestSubAgentsRejectNonTextInput(t *testing.T) {
	model := &fakeModel{}
	agents := []Agent{NewDirectAgent(model), NewRetrievalAgent(model, 3)}

	for _, a := range agents {
		_, err := a.Run(context.Background(), "conv_x", 42, Params{VectorStoreIDs: []string{"vs_a"}})
		if CodeOf(err) != CodeInvalidInputType {
			t.Errorf("%s: code = %q, want %q", a.Name(), CodeOf(err), CodeInvalidInputType)
		}
	}
	if len(model.calls) != 0 {
		t.Errorf("model received %d calls for invalid input, want 0", len(model.calls))
	}
}

func TestRetrievalAgentRequiresStores(t *testing.T) {
	model := &fakeModel{}
	a := NewRetrievalAgent(model, 3)

	_, err := a.Run(context.Background(), "conv_x", "query", Params{})
	if CodeOf(err) != CodeMissingVectorStores {
		t.Errorf("code = %q, want %q", CodeOf(err), CodeMissingVectorStores)
	}
	_, err = a.RunStream(context.Background(), "conv_x", "query", Params{})
	if CodeOf(err) != CodeMissingVectorStores {
		t.Errorf("stream code = %q, want %q", CodeOf(err), CodeMissingVectorStores)
	}
	if len(model.calls) != 0 {
		t.Errorf("model received %d calls without stores, want 0", len(model.calls))
	}
}

func TestRetrievalAgentPassesStoreConfig(t *testing.T) {
	model := &fakeModel{responses: []string{"answer"}}
	a := NewRetrievalAgent(model, 7)

	res, err := a.Run(context.Background(), "conv_x", "query", Params{VectorStoreIDs: []string{"vs_a", "vs_b"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Agent != "rag" {
		t.Errorf("agent = %q, want rag", res.Agent)
	}

	req := model.calls[0]
	if req.Retrieval == nil {
		t.Fatal("request has no retrieval config")
	}
	if len(req.Retrieval.VectorStoreIDs) != 2 || req.Retrieval.MaxResults != 7 {
		t.Errorf("retrieval config = %+v", req.Retrieval)
	}
}

func TestDirectAgentResult(t *testing.T) {
	model := &fakeModel{responses: []string{"the answer"}}
	a := NewDirectAgent(model)

	res, err := a.Run(context.Background(), "conv_x", "question", Params{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Agent != string(models.RouteDirect) || res.Text != "the answer" || res.ConversationID != "conv_x" {
		t.Errorf("result = %+v", res)
	}
	if model.calls[0].Retrieval != nil {
		t.Error("direct agent attached a retrieval config")
	}
}
