// ABOUTME: MCP tool handler implementations for the voicerelay server
// ABOUTME: Handlers report failures as tool errors, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/voicerelay/internal/agent"
	"github.com/harper/voicerelay/internal/models"
	"github.com/harper/voicerelay/internal/store"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	supervisor *agent.Supervisor
	stores     *store.Manager
}

// AskAgent handles the ask_agent tool
func (h *Handlers) AskAgent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	conversationID := request.GetString("conversation_id", "")
	storeIDs := stringArrayArg(request, "vector_store_ids")

	result, err := h.supervisor.Run(ctx, conversationID, models.TextInput{Text: message},
		agent.Params{VectorStoreIDs: storeIDs})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("agent run failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchStores handles the search_stores tool
func (h *Handlers) SearchStores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	storeIDs := stringArrayArg(request, "vector_store_ids")
	if len(storeIDs) == 0 {
		return mcp.NewToolResultError("vector_store_ids argument is required and must be a string array"), nil
	}
	maxResults := request.GetInt("max_results", 5)

	results, err := h.stores.Search(ctx, storeIDs, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"results": results,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListStores handles the list_stores tool
func (h *Handlers) ListStores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stores, err := h.stores.ListStores(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list stores: %v", err)), nil
	}

	response := map[string]interface{}{
		"stores": stores,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// CreateStore handles the create_store tool
func (h *Handlers) CreateStore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}

	info, err := h.stores.CreateStore(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create store: %v", err)), nil
	}

	responseJSON, err := json.Marshal(info)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// AddDocument handles the add_document tool
func (h *Handlers) AddDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := request.RequireString("store_id")
	if err != nil {
		return mcp.NewToolResultError("store_id argument is required and must be a string"), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	name := request.GetString("name", "untitled")

	doc, err := h.stores.AddDocument(ctx, storeID, name, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add document: %v", err)), nil
	}

	responseJSON, err := json.Marshal(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// stringArrayArg extracts an optional string array argument from the request.
func stringArrayArg(request mcp.CallToolRequest, key string) []string {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, exists := args[key]
	if !exists {
		return nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}
