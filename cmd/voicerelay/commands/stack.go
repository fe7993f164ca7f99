// ABOUTME: Shared component wiring for commands that need the full gateway stack
// ABOUTME: Consolidates config loading and construction of client, stores, and agents
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/voicerelay/internal/agent"
	"github.com/harper/voicerelay/internal/config"
	"github.com/harper/voicerelay/internal/llm"
	"github.com/harper/voicerelay/internal/store"
	"github.com/harper/voicerelay/internal/stream"
)

// stack is the fully wired gateway: model client, vector stores, supervisor,
// and streaming coordinator.
type stack struct {
	cfg         *config.Config
	client      *llm.Client
	stores      *store.Manager
	supervisor  *agent.Supervisor
	coordinator *stream.Coordinator
}

// buildStack loads configuration and wires every component.
func buildStack() (*stack, error) {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.LoadWithFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	clientCfg := llm.DefaultConfig(cfg.OpenAIKey)
	clientCfg.BaseURL = cfg.OpenAIBaseURL
	clientCfg.ChatModel = cfg.ChatModel
	clientCfg.AudioModel = cfg.AudioModel
	clientCfg.EmbedModel = openai.EmbeddingModel(cfg.EmbedModel)
	clientCfg.Timeout = cfg.Timeout
	clientCfg.MaxRetries = cfg.MaxRetries
	clientCfg.RetryDelay = cfg.RetryDelay

	client, err := llm.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize model client: %w", err)
	}

	stores, err := store.NewManager(cfg.DataDir, client)
	if err != nil {
		return nil, fmt.Errorf("initialize vector stores: %w", err)
	}
	client.SetRetriever(stores)

	supervisor := agent.NewSupervisor(client, client,
		agent.NewDirectAgent(client),
		agent.NewRetrievalAgent(client, cfg.RetrievalTopK))
	supervisor.SetRoutingModel(cfg.RoutingModel)

	return &stack{
		cfg:         cfg,
		client:      client,
		stores:      stores,
		supervisor:  supervisor,
		coordinator: stream.NewCoordinator(supervisor),
	}, nil
}

// Close releases the stack's resources.
func (s *stack) Close() {
	if err := s.stores.Close(); err != nil {
		log.Printf("Warning: Error closing vector stores: %v", err)
	}
}
