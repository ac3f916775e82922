package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAIProvider speaks the OpenAI-compatible chat/completions protocol. The
// anthropic provider uses the same wire format through Anthropic's
// compatibility endpoint; only endpoint, model, and key differ.
type OpenAIProvider struct {
	config  ProviderConfig
	client  *http.Client
	prompts PromptBuilder
	logger  *Logger
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewOpenAIProvider(config ProviderConfig, logger *Logger) *OpenAIProvider {
	return &OpenAIProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

func (p *OpenAIProvider) Name() string {
	return p.config.Provider
}

// GetMove asks the model for a move, retrying transient failures with a short
// backoff. A reply that parses but names an illegal cell counts as a failure.
func (p *OpenAIProvider) GetMove(ctx context.Context, state *GameState, rules Rules, player PlayerColor, history []ChatMessage, suggested Move, instruction string) (AIMove, error) {
	messages := []ChatMessage{{Role: "system", Content: p.prompts.SystemPrompt(rules, player)}}
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: p.prompts.MovePrompt(state, player, suggested, instruction)})

	var lastErr error
	for attempt := 0; attempt <= p.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return AIMove{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		raw, err := p.complete(ctx, messages)
		if err != nil {
			lastErr = err
			p.logger.Warnf("provider %s attempt %d/%d failed: %v", p.config.Provider, attempt+1, p.config.MaxRetries+1, err)
			continue
		}
		move, talk, err := ParseMoveResponse(raw, state)
		if err != nil {
			lastErr = err
			p.logger.Warnf("provider %s returned unusable reply: %v", p.config.Provider, err)
			continue
		}
		return AIMove{Move: move, Comment: talk}, nil
	}
	return AIMove{}, fmt.Errorf("provider %s exhausted %d attempts: %w", p.config.Provider, p.config.MaxRetries+1, lastErr)
}

// Chat sends a single free-form message; no retries, chat is best effort.
func (p *OpenAIProvider) Chat(ctx context.Context, message string, history []ChatMessage, state *GameState, player PlayerColor) (ChatResponse, error) {
	messages := []ChatMessage{{Role: "system", Content: "You are a friendly gomoku opponent. Keep replies to one or two sentences."}}
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: p.prompts.ChatPrompt(state, player, message)})
	raw, err := p.complete(ctx, messages)
	if err != nil {
		return ChatResponse{}, err
	}
	return ChatResponse{Content: raw}, nil
}

// ValidateConnection sends a one-token probe so a bad key or endpoint is
// reported at startup instead of mid-game.
func (p *OpenAIProvider) ValidateConnection(ctx context.Context) (bool, string) {
	_, err := p.complete(ctx, []ChatMessage{{Role: "user", Content: "Reply with the single word: ok"}})
	if err != nil {
		return false, err.Error()
	}
	return true, fmt.Sprintf("%s (%s) reachable", p.config.Provider, p.config.Model)
}

func (p *OpenAIProvider) complete(ctx context.Context, messages []ChatMessage) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       p.config.Model,
		Messages:    messages,
		Temperature: 0.2,
		MaxTokens:   200,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned %s: %s", resp.Status, truncateForLog(string(payload)))
	}
	var parsed chatCompletionResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("decoding provider response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("provider error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("provider response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
