// ABOUTME: MCP tool definitions and registration for the voicerelay server
// ABOUTME: Defines JSON schemas for the agent and vector store tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/voicerelay/internal/agent"
	"github.com/harper/voicerelay/internal/store"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, supervisor *agent.Supervisor, stores *store.Manager) *Handlers {
	handlers := &Handlers{
		supervisor: supervisor,
		stores:     stores,
	}

	// 1. ask_agent - Route a question through the supervisor
	server.AddTool(mcp.Tool{
		Name:        "ask_agent",
		Description: "Ask the agent a question. The supervisor classifies the request and routes it to a direct or retrieval-augmented sub-agent.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "Question or instruction for the agent",
				},
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional conversation id to continue; a new conversation is created when omitted",
				},
				"vector_store_ids": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Vector store ids available for retrieval-augmented answers",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.AskAgent)

	// 2. search_stores - Similarity search without generation
	server.AddTool(mcp.Tool{
		Name:        "search_stores",
		Description: "Search vector stores by similarity and return the matching text snippets without running the agent.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"vector_store_ids": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Vector store ids to search",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query", "vector_store_ids"},
		},
	}, handlers.SearchStores)

	// 3. list_stores - Enumerate vector stores
	server.AddTool(mcp.Tool{
		Name:        "list_stores",
		Description: "List all vector stores with their ids and names.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListStores)

	// 4. create_store - Mint a new vector store
	server.AddTool(mcp.Tool{
		Name:        "create_store",
		Description: "Create a new vector store for document retrieval.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Human-readable store name",
				},
			},
			Required: []string{"name"},
		},
	}, handlers.CreateStore)

	// 5. add_document - Ingest a document into a store
	server.AddTool(mcp.Tool{
		Name:        "add_document",
		Description: "Chunk, embed, and persist a document into a vector store.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"store_id": map[string]interface{}{
					"type":        "string",
					"description": "Target vector store id",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Document name",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Document text to ingest",
				},
			},
			Required: []string{"store_id", "text"},
		},
	}, handlers.AddDocument)

	return handlers
}
