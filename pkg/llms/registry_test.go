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

package llms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxkit/voxkit/pkg/config"
)

func TestNewOllama(t *testing.T) {
	llm, err := New(config.LLMConfig{Provider: config.ProviderOllama, Host: "http://localhost:11434", Model: "qwen2.5:14b"})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOllama, llm.GetProvider())
	assert.Equal(t, "qwen2.5:14b", llm.GetModel())
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := New(config.LLMConfig{Provider: config.ProviderAnthropic})
	assert.Error(t, err)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(config.LLMConfig{Provider: "groq"})
	assert.Error(t, err)
}

func TestNewAutoDetect(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	llm, err := New(config.LLMConfig{})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderAnthropic, llm.GetProvider())
	assert.Equal(t, "claude-haiku-4-5-20251001", llm.GetModel())
}
