package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func main() {
	var (
		difficultyFlag = flag.String("d", "medium", "difficulty: easy, medium, hard")
		sizeFlag       = flag.Int("size", 15, "board size (5-25)")
		depthFlag      = flag.Int("depth", 0, "search depth for hard difficulty (2-4, 0 = default)")
		providerFlag   = flag.String("provider", "", "ai provider: openai, anthropic, traditional")
		apiKeyFlag     = flag.String("api-key", "", "ai provider api key")
		modelFlag      = flag.String("model", "", "ai provider model")
		endpointFlag   = flag.String("endpoint", "", "ai provider endpoint url")
		listenFlag     = flag.String("listen", "", "spectator endpoint address (e.g. :8080), empty = off")
		showConfig     = flag.Bool("show-config", false, "print the effective provider config and exit")
		resetConfig    = flag.Bool("reset-config", false, "delete ~/.gomoku/config.json and exit")
		saveConfig     = flag.Bool("save-config", false, "persist the resolved provider config to ~/.gomoku/config.json")
		checkProvider  = flag.Bool("check", false, "validate the provider connection and exit")
	)
	flag.Parse()

	if *resetConfig {
		if err := ResetProviderConfig(); err != nil {
			fatalf("resetting config: %v", err)
		}
		fmt.Println("provider config reset")
		return
	}

	difficulty, err := ParseDifficulty(*difficultyFlag)
	if err != nil {
		fatalf("%v", err)
	}
	if *sizeFlag < 5 || *sizeFlag > len(colLabels) {
		fatalf("board size %d out of range (5-%d)", *sizeFlag, len(colLabels))
	}

	providerCfg, err := ResolveProviderConfig(providerOverrides{
		Provider: *providerFlag,
		APIKey:   *apiKeyFlag,
		Model:    *modelFlag,
		Endpoint: *endpointFlag,
	})
	if err != nil {
		fatalf("%v", err)
	}

	if *showConfig {
		fmt.Println(DescribeProviderConfig(providerCfg))
		return
	}
	if *saveConfig {
		if err := SaveProviderConfig(providerCfg); err != nil {
			fatalf("saving config: %v", err)
		}
		fmt.Println("provider config saved")
	}

	logger := NewLogger()
	defer logger.Close()

	config := GetConfig()
	if *depthFlag != 0 {
		if *depthFlag < searchDepthMin || *depthFlag > searchDepthMax {
			fatalf("depth %d out of range (%d-%d)", *depthFlag, searchDepthMin, searchDepthMax)
		}
		config.AiDepth = *depthFlag
		configStore.Update(config)
	}

	settings := DefaultGameSettings()
	settings.BoardSize = *sizeFlag
	settings.Difficulty = difficulty

	chat := NewChatManager()
	ai := NewAIService(providerCfg, difficulty, config, chat, logger)

	if *checkProvider {
		ok, detail := ai.ValidateConnection(context.Background())
		fmt.Println(detail)
		if !ok {
			os.Exit(1)
		}
		return
	}

	var hub *Hub
	var spectator *SpectatorServer
	done := make(chan struct{})
	game := NewGame(settings, ai, chat, logger, nil)
	if *listenFlag != "" {
		hub = NewHub()
		game.hub = hub
		spectator = NewSpectatorServer(*listenFlag, hub, logger)
		spectator.Start(done)
	}

	err = game.Run(context.Background())
	close(done)
	if spectator != nil {
		spectator.Shutdown()
	}
	if err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "gomoku: "+format+"\n", args...)
	os.Exit(1)
}
