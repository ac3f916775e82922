package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0)}
}

func completionServer(t *testing.T, handler func(req chatCompletionRequest) (int, any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
}

func completionReply(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
}

func testProviderConfig(endpoint string) ProviderConfig {
	return ProviderConfig{
		Provider:   "openai",
		APIKey:     "test-key",
		Model:      "gpt-4o-mini",
		Endpoint:   endpoint,
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}
}

func TestOpenAIProviderGetMove(t *testing.T) {
	server := completionServer(t, func(req chatCompletionRequest) (int, any) {
		require.NotEmpty(t, req.Messages)
		assert.Equal(t, "system", req.Messages[0].Role)
		return http.StatusOK, completionReply("MOVE: H8\nYour center is mine now.")
	})
	defer server.Close()

	state, rules := providerTestState(t)
	provider := NewOpenAIProvider(testProviderConfig(server.URL), testLogger())
	aiMove, err := provider.GetMove(context.Background(), state, rules, PlayerWhite, nil, Move{X: -1, Y: -1}, "")
	require.NoError(t, err)
	assert.Equal(t, Move{X: 7, Y: 7}, aiMove.Move)
	assert.Equal(t, "Your center is mine now.", aiMove.Comment)
}

func TestOpenAIProviderRetriesThenSucceeds(t *testing.T) {
	calls := 0
	server := completionServer(t, func(req chatCompletionRequest) (int, any) {
		calls++
		if calls == 1 {
			return http.StatusTooManyRequests, map[string]string{"error": "slow down"}
		}
		return http.StatusOK, completionReply("MOVE: C3")
	})
	defer server.Close()

	state, rules := providerTestState(t)
	provider := NewOpenAIProvider(testProviderConfig(server.URL), testLogger())
	aiMove, err := provider.GetMove(context.Background(), state, rules, PlayerWhite, nil, Move{X: -1, Y: -1}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, Move{X: 2, Y: 2}, aiMove.Move)
}

func TestOpenAIProviderExhaustsRetries(t *testing.T) {
	server := completionServer(t, func(req chatCompletionRequest) (int, any) {
		return http.StatusInternalServerError, map[string]string{"error": "boom"}
	})
	defer server.Close()

	state, rules := providerTestState(t)
	provider := NewOpenAIProvider(testProviderConfig(server.URL), testLogger())
	_, err := provider.GetMove(context.Background(), state, rules, PlayerWhite, nil, Move{X: -1, Y: -1}, "")
	require.Error(t, err)
}

func TestOpenAIProviderRetriesUnparsableReply(t *testing.T) {
	calls := 0
	server := completionServer(t, func(req chatCompletionRequest) (int, any) {
		calls++
		if calls == 1 {
			return http.StatusOK, completionReply("I will crush you!")
		}
		return http.StatusOK, completionReply("MOVE: B2")
	})
	defer server.Close()

	state, rules := providerTestState(t)
	provider := NewOpenAIProvider(testProviderConfig(server.URL), testLogger())
	aiMove, err := provider.GetMove(context.Background(), state, rules, PlayerWhite, nil, Move{X: -1, Y: -1}, "")
	require.NoError(t, err)
	assert.Equal(t, Move{X: 1, Y: 1}, aiMove.Move)
}

func TestAIServiceFallsBackToLocalEngine(t *testing.T) {
	server := completionServer(t, func(req chatCompletionRequest) (int, any) {
		return http.StatusBadGateway, map[string]string{"error": "down"}
	})
	defer server.Close()

	settings := DefaultGameSettings()
	settings.BoardSize = 15
	state, rules := runningState(t, settings, []HistoryEntry{
		{Move: Move{X: 5, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 6, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 7, Y: 7}, Player: PlayerBlack},
		{Move: Move{X: 8, Y: 7}, Player: PlayerBlack},
	})

	cfg := testProviderConfig(server.URL)
	cfg.MaxRetries = 0
	service := NewAIService(cfg, DifficultyMedium, DefaultConfig(), NewChatManager(), testLogger())
	aiMove, err := service.NextMove(context.Background(), &state, rules, PlayerWhite)
	require.NoError(t, err, "provider failure must not surface to the game loop")
	assert.Equal(t, 7, aiMove.Move.Y)
	assert.Contains(t, []int{4, 9}, aiMove.Move.X, "the fallback engine must still block the open four")
}

func TestAIServiceWithoutProviderUsesLocalEngine(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	state, rules := runningState(t, settings, []HistoryEntry{
		{Move: Move{X: 4, Y: 4}, Player: PlayerBlack},
	})

	service := NewAIService(ProviderConfig{}, DifficultyMedium, DefaultConfig(), nil, testLogger())
	assert.Equal(t, "traditional", service.ProviderName())
	aiMove, err := service.NextMove(context.Background(), &state, rules, PlayerWhite)
	require.NoError(t, err)
	assert.True(t, aiMove.Move.IsValid(9))
}

func TestAIServiceChatRecordsBothSides(t *testing.T) {
	server := completionServer(t, func(req chatCompletionRequest) (int, any) {
		return http.StatusOK, completionReply("You wish.")
	})
	defer server.Close()

	state, _ := providerTestState(t)
	chat := NewChatManager()
	service := NewAIService(testProviderConfig(server.URL), DifficultyMedium, DefaultConfig(), chat, testLogger())

	reply, err := service.SendChat(context.Background(), state, PlayerWhite, "I'm going to win this one")
	require.NoError(t, err)
	assert.Equal(t, "You wish.", reply)
	require.Equal(t, 2, chat.Size())
	assert.Equal(t, "I'm going to win this one", chat.LastUserMessage())
}

func TestValidateConnection(t *testing.T) {
	server := completionServer(t, func(req chatCompletionRequest) (int, any) {
		return http.StatusOK, completionReply("ok")
	})
	defer server.Close()

	provider := NewOpenAIProvider(testProviderConfig(server.URL), testLogger())
	ok, detail := provider.ValidateConnection(context.Background())
	assert.True(t, ok)
	assert.Contains(t, detail, "openai")
}
