// ABOUTME: Routing decision types for the supervisor's agent dispatch
// ABOUTME: Defines the two destinations: direct generation and retrieval-augmented
package models

// Route identifies which sub-agent handles a normalized query.
type Route string

const (
	// RouteDirect sends the query straight to the model with no tools.
	RouteDirect Route = "direct"

	// RouteRAG sends the query to the retrieval-augmented agent, scoped to
	// a set of vector stores.
	RouteRAG Route = "rag"
)

// IsValid reports whether the route is a defined destination.
func (r Route) IsValid() bool {
	return r == RouteDirect || r == RouteRAG
}

// RoutingDecision is produced once per supervisor invocation. Query is the
// (possibly model-rephrased) text forwarded to the chosen sub-agent; it need
// not equal the normalized input text.
type RoutingDecision struct {
	Route Route  `json:"route"`
	Query string `json:"query"`
}
