// Package llm relays assembled conversation turns to the Gemini completion
// service, either blocking for the full result or streaming increments.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rajathpai/avatar-backend/internal/chat"
)

// chatTemperature matches the sampling temperature used for every completion.
const chatTemperature = 0.7

// Client is an abstraction over the completion service.
type Client interface {
	// Complete sends the turn sequence and waits for the full generated text.
	Complete(ctx context.Context, turns []chat.Turn) (string, error)
	// CompleteStream sends the turn sequence and forwards each increment to
	// onFrame as it arrives, ending with a terminal frame. See Frame.
	CompleteStream(ctx context.Context, turns []chat.Turn, onFrame func(Frame) error) error
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Complete sends the turns and blocks for the full generated text.
func (c *GeminiClient) Complete(ctx context.Context, turns []chat.Turn) (string, error) {
	session, message, err := c.session(turns)
	if err != nil {
		return "", err
	}

	resp, err := session.SendMessage(ctx, message)
	if err != nil {
		return "", &UpstreamError{Message: "completion request failed", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &UpstreamError{Message: "empty completion response", Cause: err}
	}
	return text, nil
}

// CompleteStream sends the turns and forwards increments in arrival order.
// Upstream failure mid-stream is folded into the terminal frame, never
// returned; a non-nil error from onFrame (consumer gone) aborts the relay.
func (c *GeminiClient) CompleteStream(ctx context.Context, turns []chat.Turn, onFrame func(Frame) error) error {
	session, message, err := c.session(turns)
	if err != nil {
		return err
	}

	iter := session.SendMessageStream(ctx, message)
	return relay(func() (string, error) {
		resp, err := iter.Next()
		if err != nil {
			return "", err
		}
		text, err := extractTextFromResponse(resp)
		if err != nil {
			// A response with no text parts is not a failure mid-stream;
			// skip it and keep consuming.
			return "", nil
		}
		return text, nil
	}, onFrame)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// session prepares a chat session from the turn sequence: an optional leading
// system turn becomes the system instruction, intermediate turns become
// history, and the final user turn is the outbound message.
func (c *GeminiClient) session(turns []chat.Turn) (*genai.ChatSession, genai.Part, error) {
	systemPrompt, history, message, err := splitTurns(turns)
	if err != nil {
		return nil, nil, err
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(chatTemperature)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	session := model.StartChat()
	for _, t := range history {
		role := "user"
		if t.Role == chat.RoleAssistant {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}

	return session, genai.Text(message), nil
}

// splitTurns decomposes a turn sequence into system prompt, history and the
// final user message. The last turn must be a user turn.
func splitTurns(turns []chat.Turn) (systemPrompt string, history []chat.Turn, message string, err error) {
	if len(turns) == 0 {
		return "", nil, "", fmt.Errorf("no turns to send")
	}

	last := turns[len(turns)-1]
	if last.Role != chat.RoleUser {
		return "", nil, "", fmt.Errorf("last turn must be a user message, got role %q", last.Role)
	}

	rest := turns[:len(turns)-1]
	if len(rest) > 0 && rest[0].Role == chat.RoleSystem {
		systemPrompt = rest[0].Content
		rest = rest[1:]
	}

	return systemPrompt, rest, last.Content, nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
