// ABOUTME: Routing-decision prompt construction and strict JSON parsing
// ABOUTME: Malformed model output is a recoverable, explicitly tested code path
package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/harper/voicerelay/internal/models"
)

const routingSystemPrompt = `You are a routing classifier for an agent gateway.
Decide whether the user's message should be answered directly ("direct") or
with document retrieval over the available vector stores ("rag").

Choose "rag" only when the message asks about content that would live in the
listed document stores. Otherwise choose "direct".

Respond with ONLY a JSON object of the form:
{"route": "direct" | "rag", "query": "<the user's question, optionally rephrased for search>"}`

// buildRoutingPrompt embeds the normalized text and, when present, the
// candidate vector stores into one classification prompt.
func buildRoutingPrompt(text string, vectorStoreIDs []string) string {
	var sb strings.Builder
	sb.WriteString(routingSystemPrompt)
	sb.WriteString("\n\n")
	if len(vectorStoreIDs) > 0 {
		fmt.Fprintf(&sb, "Available vector stores: %s\n\n", strings.Join(vectorStoreIDs, ", "))
	} else {
		sb.WriteString("Available vector stores: none\n\n")
	}
	fmt.Fprintf(&sb, "User message:\n%s", text)
	return sb.String()
}

// ParseRoutingDecision parses the model's classification output as strict
// JSON, repairing common syntax damage before giving up. Schema violations
// (unknown route, empty query) are parse failures; the caller falls back to
// the deterministic heuristic.
func ParseRoutingDecision(raw string) (models.RoutingDecision, error) {
	var decision models.RoutingDecision
	if err := unmarshalRepaired(raw, &decision); err != nil {
		return models.RoutingDecision{}, fmt.Errorf("parse routing decision: %w", err)
	}
	if !decision.Route.IsValid() {
		return models.RoutingDecision{}, fmt.Errorf("invalid route %q", decision.Route)
	}
	decision.Query = strings.TrimSpace(decision.Query)
	if decision.Query == "" {
		return models.RoutingDecision{}, fmt.Errorf("routing decision has empty query")
	}
	return decision, nil
}

// unmarshalRepaired unmarshals JSON, attempting a repair pass when the raw
// text is syntactically damaged (markdown fences, trailing prose).
func unmarshalRepaired(raw string, v any) error {
	err := json.Unmarshal([]byte(raw), v)
	if err == nil {
		return nil
	}
	fixed, rerr := jsonrepair.JSONRepair(raw)
	if rerr != nil {
		return err
	}
	return json.Unmarshal([]byte(fixed), v)
}

// fallbackDecision is the deterministic heuristic used when classification
// output is unusable: retrieval when stores are available, direct otherwise,
// with the normalized text forwarded unchanged.
func fallbackDecision(text string, vectorStoreIDs []string) models.RoutingDecision {
	route := models.RouteDirect
	if len(vectorStoreIDs) > 0 {
		route = models.RouteRAG
	}
	return models.RoutingDecision{Route: route, Query: text}
}
