package main

import "sync"

type Config struct {
	AiDepth            int             `json:"ai_depth"`
	AiEnableEvalCache  bool            `json:"ai_enable_eval_cache"`
	AiEvalCacheSize    int             `json:"ai_eval_cache_size"`
	AiEvalCacheBuckets int             `json:"ai_eval_cache_buckets"`
	CandidateRadius    int             `json:"candidate_radius"`
	EasyRadius         int             `json:"easy_radius"`
	Heuristics         HeuristicConfig `json:"heuristics"`
}

type HeuristicConfig struct {
	Win5         float64 `json:"win_5"`
	BlockWin5    float64 `json:"block_win_5"`
	Open4        float64 `json:"open_4"`
	Closed4      float64 `json:"closed_4"`
	Broken4      float64 `json:"broken_4"`
	Open3        float64 `json:"open_3"`
	Broken3      float64 `json:"broken_3"`
	Closed3      float64 `json:"closed_3"`
	Open2        float64 `json:"open_2"`
	Broken2      float64 `json:"broken_2"`
	Closed2      float64 `json:"closed_2"`
	ForkOpen3    float64 `json:"fork_open_3"`
	ForkFourPlus float64 `json:"fork_four_plus"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		// 2-4 plies is the playable range for the synchronous loop; 3 keeps
		// Hard responsive on a 15x15 board without a time budget.
		AiDepth: 3,

		AiEnableEvalCache:  true,
		AiEvalCacheSize:    1 << 16,
		AiEvalCacheBuckets: 2,

		// Chebyshev distance from existing stones inside which the AI
		// considers candidate cells.
		CandidateRadius: 2,
		EasyRadius:      1,

		Heuristics: HeuristicConfig{
			Win5:         100000000.0,
			BlockWin5:    50000000.0,
			Open4:        100000.0,
			Closed4:      15000.0,
			Broken4:      12000.0,
			Open3:        2500.0,
			Broken3:      1200.0,
			Closed3:      400.0,
			Open2:        200.0,
			Broken2:      120.0,
			Closed2:      30.0,
			ForkOpen3:    6000.0,
			ForkFourPlus: 20000.0,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
