package main

import (
	"context"
	"errors"
	"fmt"
)

// AIService decides the AI's moves: an external provider when one is
// configured, the local engine otherwise, and the local engine again whenever
// the provider fails. The game never stalls on the network.
type AIService struct {
	provider   AIProvider
	difficulty Difficulty
	config     Config
	chat       *ChatManager
	logger     *Logger
}

func NewAIService(providerCfg ProviderConfig, difficulty Difficulty, config Config, chat *ChatManager, logger *Logger) *AIService {
	svc := &AIService{
		difficulty: difficulty,
		config:     config,
		chat:       chat,
		logger:     logger,
	}
	if providerCfg.Provider != "" {
		svc.provider = NewOpenAIProvider(providerCfg, logger)
	}
	return svc
}

func (s *AIService) ProviderName() string {
	if s.provider == nil {
		return "traditional"
	}
	return s.provider.Name()
}

func (s *AIService) Difficulty() Difficulty {
	return s.difficulty
}

// NextMove produces the AI's move for the current position. Provider errors
// are logged and answered by the configured local difficulty so play
// continues; only ErrNoLegalMove (full board) escapes to the caller.
func (s *AIService) NextMove(ctx context.Context, state *GameState, rules Rules, player PlayerColor) (AIMove, error) {
	if s.provider == nil {
		move, err := ChooseMove(state, rules, player, s.difficulty, s.config)
		if err != nil {
			return AIMove{}, err
		}
		return AIMove{Move: move}, nil
	}

	suggested, err := ChooseMove(state, rules, player, DifficultyMedium, s.config)
	if err != nil {
		return AIMove{}, err
	}
	instruction := ""
	if s.chat != nil {
		instruction = s.chat.LastUserMessage()
	}
	aiMove, err := s.provider.GetMove(ctx, state, rules, player, s.chatHistory(), suggested, instruction)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return AIMove{}, err
		}
		s.logger.Errorf("provider %s failed, falling back to the %s engine: %v", s.provider.Name(), s.difficulty, err)
		if s.difficulty == DifficultyMedium {
			return AIMove{Move: suggested}, nil
		}
		move, err := ChooseMove(state, rules, player, s.difficulty, s.config)
		if err != nil {
			return AIMove{}, err
		}
		return AIMove{Move: move}, nil
	}
	return aiMove, nil
}

// SendChat forwards a chat line to the provider and records both sides of the
// exchange. Without a provider the opponent stays silent.
func (s *AIService) SendChat(ctx context.Context, state *GameState, player PlayerColor, message string) (string, error) {
	if s.chat != nil {
		s.chat.Add("user", message)
	}
	if s.provider == nil {
		return "", fmt.Errorf("chat needs a configured provider: %w", ErrInvalidProvider)
	}
	resp, err := s.provider.Chat(ctx, message, s.chatHistory(), state, player)
	if err != nil {
		s.logger.Warnf("chat request failed: %v", err)
		return "", err
	}
	if s.chat != nil {
		s.chat.Add("assistant", resp.Content)
	}
	return resp.Content, nil
}

func (s *AIService) RecordTableTalk(comment string) {
	if comment != "" && s.chat != nil {
		s.chat.Add("assistant", comment)
	}
}

func (s *AIService) ValidateConnection(ctx context.Context) (bool, string) {
	if s.provider == nil {
		return true, "local engine"
	}
	return s.provider.ValidateConnection(ctx)
}

func (s *AIService) chatHistory() []ChatMessage {
	if s.chat == nil {
		return nil
	}
	return s.chat.Messages()
}
