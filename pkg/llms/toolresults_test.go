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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/protocol"
)

func sampleGroup() protocol.ToolGroup {
	return protocol.ToolGroup{
		Assistant: protocol.Message{
			Role:    protocol.RoleAssistant,
			Content: "Checking now.",
			ToolCalls: []protocol.ToolCall{
				{ID: "c1", Name: "web_search", Arguments: map[string]interface{}{"query": "nvidia market cap 2026"}},
				{ID: "c2", Name: "get_current_datetime", Arguments: map[string]interface{}{}},
			},
		},
		Results: []protocol.Message{
			{Role: protocol.RoleTool, ToolCallID: "c1", Content: "NVDA: $4.1T"},
			{Role: protocol.RoleTool, ToolCallID: "c2", Content: "2026-08-24"},
		},
	}
}

func TestBuildToolResultMessagesDeterministic(t *testing.T) {
	group := sampleGroup()

	for _, provider := range []string{config.ProviderAnthropic, config.ProviderOpenAI, config.ProviderOllama} {
		first, err := BuildToolResultMessages(provider, group)
		require.NoError(t, err)
		second, err := BuildToolResultMessages(provider, group)
		require.NoError(t, err)

		a, _ := json.Marshal(first)
		b, _ := json.Marshal(second)
		assert.JSONEq(t, string(a), string(b), "provider %s", provider)
	}
}

func TestBuildToolResultMessagesUnknownProvider(t *testing.T) {
	_, err := BuildToolResultMessages("groq", sampleGroup())
	assert.Error(t, err)
}

func TestAnthropicProjection(t *testing.T) {
	msgs := anthropicToolResultMessages(sampleGroup())
	require.Len(t, msgs, 2)

	assistant := msgs[0]
	assert.Equal(t, "assistant", assistant.Role)
	blocks := assistant.Content.([]anthropicContent)
	require.Len(t, blocks, 3) // text + two tool_use
	assert.Equal(t, "text", blocks[0].Type)
	assert.Equal(t, "Checking now.", blocks[0].Text)
	assert.Equal(t, "tool_use", blocks[1].Type)
	assert.Equal(t, "c1", blocks[1].ID)

	user := msgs[1]
	assert.Equal(t, "user", user.Role)
	results := user.Content.([]anthropicContent)
	require.Len(t, results, 2)
	assert.Equal(t, "tool_result", results[0].Type)
	assert.Equal(t, "c1", results[0].ToolUseID)
	assert.Equal(t, "NVDA: $4.1T", results[0].Content)
}

func TestAnthropicProjectionNoText(t *testing.T) {
	group := sampleGroup()
	group.Assistant.Content = ""

	msgs := anthropicToolResultMessages(group)
	blocks := msgs[0].Content.([]anthropicContent)
	require.Len(t, blocks, 2)
	assert.Equal(t, "tool_use", blocks[0].Type)
}

func TestOpenAIProjectionArgumentsRoundTrip(t *testing.T) {
	msgs := openAIToolResultMessages(sampleGroup())
	require.Len(t, msgs, 3)

	assistant := msgs[0]
	require.Len(t, assistant.ToolCalls, 2)
	assert.Equal(t, "function", assistant.ToolCalls[0].Type)

	// Arguments are a JSON string that decodes back to the original map.
	var args map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(assistant.ToolCalls[0].Function.Arguments), &args))
	assert.Equal(t, "nvidia market cap 2026", args["query"])

	assert.Equal(t, "tool", msgs[1].Role)
	assert.Equal(t, "c1", msgs[1].ToolCallID)
	assert.Equal(t, "c2", msgs[2].ToolCallID)
}

func TestOllamaProjectionOrderMatched(t *testing.T) {
	msgs := ollamaToolResultMessages(sampleGroup())
	require.Len(t, msgs, 3)

	assistant := msgs[0]
	require.Len(t, assistant.ToolCalls, 2)
	assert.Equal(t, "web_search", assistant.ToolCalls[0].Function.Name)
	assert.Equal(t, "nvidia market cap 2026", assistant.ToolCalls[0].Function.Arguments["query"])

	// Results carry no ids; order is the contract.
	assert.Equal(t, "NVDA: $4.1T", msgs[1].Content)
	assert.Equal(t, "2026-08-24", msgs[2].Content)
}

func TestCallIDFallback(t *testing.T) {
	group := protocol.ToolGroup{
		Assistant: protocol.Message{
			Role:      protocol.RoleAssistant,
			ToolCalls: []protocol.ToolCall{{Name: "web_search", Arguments: map[string]interface{}{}}},
		},
		Results: []protocol.Message{{Role: protocol.RoleTool, Content: "x"}},
	}

	msgs := openAIToolResultMessages(group)
	assert.Equal(t, "call_0", msgs[0].ToolCalls[0].ID)
	assert.Equal(t, "call_0", msgs[1].ToolCallID)
}
