// ABOUTME: OpenAI-backed model client for generation, streaming, and conversations
// ABOUTME: Owns conversation context behind the client contract; callers see only opaque ids
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/voicerelay/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions.
	DefaultChatModel = "gpt-4o-mini"
	// DefaultAudioModel is the default speech-to-text model.
	DefaultAudioModel = openai.Whisper1
	// DefaultEmbedModel is the default embedding model.
	DefaultEmbedModel = openai.SmallEmbedding3

	// ConversationIDPrefix marks ids minted by CreateConversation. Ids
	// failing the prefix check are treated as absent by callers.
	ConversationIDPrefix = "conv_"
)

// IsConversationID reports whether id carries the conversation prefix.
func IsConversationID(id string) bool {
	return strings.HasPrefix(id, ConversationIDPrefix)
}

// ClientConfig holds configuration for the model client.
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	AudioModel string
	EmbedModel openai.EmbeddingModel
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		ChatModel:  DefaultChatModel,
		AudioModel: DefaultAudioModel,
		EmbedModel: DefaultEmbedModel,
		Timeout:    60 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// Client wraps the OpenAI API with retry logic and conversation tracking.
// The generation, transcription, and embedding calls are stateless and safe
// for concurrent use; conversation history is guarded by a mutex.
type Client struct {
	client     *openai.Client
	chatModel  string
	audioModel string
	embedModel openai.EmbeddingModel
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration

	retriever Retriever

	mu            sync.Mutex
	conversations map[string][]openai.ChatCompletionMessage
}

// NewClient creates a model client from the given configuration.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	var oc *openai.Client
	if cfg.BaseURL != "" {
		occfg := openai.DefaultConfig(cfg.APIKey)
		occfg.BaseURL = cfg.BaseURL
		oc = openai.NewClientWithConfig(occfg)
	} else {
		oc = openai.NewClient(cfg.APIKey)
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	audioModel := cfg.AudioModel
	if audioModel == "" {
		audioModel = DefaultAudioModel
	}
	embedModel := cfg.EmbedModel
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		client:        oc,
		chatModel:     chatModel,
		audioModel:    audioModel,
		embedModel:    embedModel,
		timeout:       timeout,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    cfg.RetryDelay,
		conversations: make(map[string][]openai.ChatCompletionMessage),
	}, nil
}

// SetRetriever wires the vector-store search used for retrieval-augmented
// generation. Without one, requests carrying a RetrievalConfig fail.
func (c *Client) SetRetriever(r Retriever) {
	c.retriever = r
}

// CreateConversation mints a fresh conversation id. Creation is a pure
// allocation: nothing is cached or reused across calls.
func (c *Client) CreateConversation(ctx context.Context) (string, error) {
	id := ConversationIDPrefix + uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.conversations[id] = nil
	return id, nil
}

// DiscardConversation drops a conversation and its context. Discarding an
// unknown id is a no-op.
func (c *Client) DiscardConversation(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.conversations, id)
}

// Generate performs one complete chat completion call, retrying transient
// failures with exponential backoff.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	params, err := c.buildParams(ctx, req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, params)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		text := resp.Choices[0].Message.Content
		c.record(req.ConversationID, req.Prompt, text)
		return &GenerateResult{Text: text, Raw: resp}, nil
	}

	return nil, fmt.Errorf("generation failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// GenerateStream opens a streaming chat completion. The returned stream
// yields text_delta events followed by one final event, then io.EOF.
// Conversation context is recorded when the stream completes normally.
func (c *Client) GenerateStream(ctx context.Context, req GenerateRequest) (Stream, error) {
	params, err := c.buildParams(ctx, req)
	if err != nil {
		return nil, err
	}

	inner, err := c.client.CreateChatCompletionStream(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("open completion stream: %w", err)
	}

	return &chatStream{
		inner:  inner,
		client: c,
		convID: req.ConversationID,
		prompt: req.Prompt,
	}, nil
}

// buildParams assembles the chat completion request: retrieved context first,
// then conversation history, then the user prompt.
func (c *Client) buildParams(ctx context.Context, req GenerateRequest) (openai.ChatCompletionRequest, error) {
	model := req.Model
	if model == "" {
		model = c.chatModel
	}

	var messages []openai.ChatCompletionMessage

	if req.Retrieval != nil {
		if c.retriever == nil {
			return openai.ChatCompletionRequest{}, fmt.Errorf("retrieval requested but no retriever configured")
		}
		snippets, err := c.retriever.Retrieve(ctx, req.Retrieval.VectorStoreIDs, req.Prompt, req.Retrieval.MaxResults)
		if err != nil {
			return openai.ChatCompletionRequest{}, fmt.Errorf("retrieve context: %w", err)
		}
		if len(snippets) > 0 {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: retrievalContextMessage(snippets),
			})
		}
	}

	messages = append(messages, c.history(req.ConversationID)...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	params := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.JSONOnly {
		params.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return params, nil
}

func retrievalContextMessage(snippets []string) string {
	var sb strings.Builder
	sb.WriteString("Use the following retrieved context to answer the user's question. ")
	sb.WriteString("If the context is not relevant, answer from general knowledge.\n")
	for i, s := range snippets {
		fmt.Fprintf(&sb, "\n[%d] %s\n", i+1, s)
	}
	return sb.String()
}

// history returns a copy of the conversation's messages, or nil for ids the
// client has never seen.
func (c *Client) history(convID string) []openai.ChatCompletionMessage {
	if convID == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.conversations[convID]
	out := make([]openai.ChatCompletionMessage, len(msgs))
	copy(out, msgs)
	return out
}

// record appends a completed exchange to the conversation context. Retrieved
// context blocks are deliberately not recorded; they are per-call.
func (c *Client) record(convID, prompt, reply string) {
	if convID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.conversations[convID]; !ok {
		return
	}
	c.conversations[convID] = append(c.conversations[convID],
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
	)
}
