// Copyright 2026 Voxkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the assistant configuration: provider selection,
// chat loop limits, search keys, and ambient settings. Values come from
// an optional YAML file layered over environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voxkit/voxkit/pkg/observability"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

// Config is the root configuration.
type Config struct {
	LLM       LLMConfig                  `yaml:"llm"`
	Chat      ChatConfig                 `yaml:"chat"`
	Search    SearchConfig               `yaml:"search"`
	Knowledge KnowledgeConfig            `yaml:"knowledge"`
	Logging   LoggingConfig              `yaml:"logging"`
	Tracing   observability.TracerConfig `yaml:"tracing"`
}

// LLMConfig selects and tunes the model provider.
type LLMConfig struct {
	Provider   string `yaml:"provider"` // anthropic, openai, ollama; "" = auto-detect
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Host       string `yaml:"host"` // ollama only
	MaxTokens  int    `yaml:"max_tokens"`
	Timeout    int    `yaml:"timeout"` // seconds
	MaxRetries int    `yaml:"max_retries"`
}

// ChatConfig tunes the orchestrator loop.
type ChatConfig struct {
	SystemPrompt    string            `yaml:"system_prompt"` // "" = built-in prompt
	MaxIterations   int               `yaml:"max_iterations"`
	MaxHistory      int               `yaml:"max_history"`
	EnableSafetyNet *bool             `yaml:"enable_safety_net"`
	HedgingPhrases  []string          `yaml:"hedging_phrases"` // nil = built-in list
	ToolAliases     map[string]string `yaml:"tool_aliases"`    // nil = built-in table
	DisabledTools   []string          `yaml:"disabled_tools"`
}

// SearchConfig holds keys for the web search fallback chain. A provider
// with no key is skipped; DuckDuckGo needs none.
type SearchConfig struct {
	SerperAPIKey string `yaml:"serper_api_key"`
	TavilyAPIKey string `yaml:"tavily_api_key"`
	BraveAPIKey  string `yaml:"brave_api_key"`
	Timeout      int    `yaml:"timeout"` // seconds
	MaxResults   int    `yaml:"max_results"`
}

// KnowledgeConfig points at the external knowledge-base service.
type KnowledgeConfig struct {
	URL         string `yaml:"url"`
	Timeout     int    `yaml:"timeout"` // seconds
	TopK        int    `yaml:"top_k"`
	GitHubOwner string `yaml:"github_owner"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DetectProvider picks a provider from the environment when none is
// configured: Anthropic wins over OpenAI, Ollama is the fallback.
func DetectProvider() string {
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return ProviderAnthropic
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return ProviderOpenAI
	}
	return ProviderOllama
}

func (c *LLMConfig) SetDefaults() {
	if c.Provider == "" {
		c.Provider = os.Getenv("LLM_PROVIDER")
	}
	if c.Provider == "" {
		c.Provider = DetectProvider()
	}
	switch c.Provider {
	case ProviderAnthropic:
		if c.APIKey == "" {
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if c.Model == "" {
			c.Model = "claude-haiku-4-5-20251001"
		}
	case ProviderOpenAI:
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if c.Model == "" {
			c.Model = envOr("OPENAI_MODEL", "gpt-4o-mini")
		}
	case ProviderOllama:
		if c.Host == "" {
			c.Host = envOr("OLLAMA_URL", "http://localhost:11434")
		}
		if c.Model == "" {
			c.Model = envOr("OLLAMA_MODEL", "qwen2.5:14b")
		}
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 300
	}
	if c.Timeout == 0 {
		c.Timeout = 60
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

func (c *LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("llm: %s requires an api_key", c.Provider)
		}
	case ProviderOllama:
		if c.Host == "" {
			return fmt.Errorf("llm: ollama requires a host")
		}
	default:
		return fmt.Errorf("llm: unknown provider %q", c.Provider)
	}
	return nil
}

func (c *ChatConfig) SetDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = 5
	}
	if c.MaxHistory == 0 {
		c.MaxHistory = 20
	}
	if c.EnableSafetyNet == nil {
		enabled := true
		c.EnableSafetyNet = &enabled
	}
}

func (c *ChatConfig) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("chat: max_iterations must be at least 1")
	}
	if c.MaxHistory < 2 {
		return fmt.Errorf("chat: max_history must be at least 2")
	}
	return nil
}

func (c *SearchConfig) SetDefaults() {
	if c.SerperAPIKey == "" {
		c.SerperAPIKey = os.Getenv("SERPER_API_KEY")
	}
	if c.TavilyAPIKey == "" {
		c.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")
	}
	if c.BraveAPIKey == "" {
		c.BraveAPIKey = os.Getenv("BRAVE_API_KEY")
	}
	if c.Timeout == 0 {
		c.Timeout = 10
	}
	if c.MaxResults == 0 {
		c.MaxResults = 8
	}
}

func (c *KnowledgeConfig) SetDefaults() {
	if c.URL == "" {
		c.URL = envOr("RAG_URL", "http://localhost:8100")
	}
	if c.Timeout == 0 {
		c.Timeout = 2
	}
	if c.TopK == 0 {
		c.TopK = 5
	}
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "simple"
	}
}

func (c *Config) SetDefaults() {
	c.LLM.SetDefaults()
	c.Chat.SetDefaults()
	c.Search.SetDefaults()
	c.Knowledge.SetDefaults()
	c.Logging.SetDefaults()
	c.Tracing.SetDefaults()
}

func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	return c.Chat.Validate()
}

// Load reads the YAML config at path, applies defaults, and validates.
// An empty path yields a pure env/default config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
