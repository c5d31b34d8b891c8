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
	"fmt"

	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/protocol"
)

// The projections below turn a completed tool group (assistant tool
// calls plus their results) into the follow-up messages each vendor
// expects. They are pure: the same group always yields the same
// payload, and the group itself is never mutated.

func callID(tc protocol.ToolCall, index int) string {
	if tc.ID != "" {
		return tc.ID
	}
	return fmt.Sprintf("call_%d", index)
}

// anthropicToolResultMessages builds an assistant turn of tool_use
// blocks (preceded by a text block if the model spoke) and a user turn
// of tool_result blocks keyed by call id.
func anthropicToolResultMessages(group protocol.ToolGroup) []anthropicMessage {
	var assistantContent []anthropicContent
	if group.Assistant.Content != "" {
		assistantContent = append(assistantContent, anthropicContent{
			Type: "text",
			Text: group.Assistant.Content,
		})
	}
	for i, tc := range group.Assistant.ToolCalls {
		assistantContent = append(assistantContent, anthropicContent{
			Type:  "tool_use",
			ID:    callID(tc, i),
			Name:  tc.Name,
			Input: tc.Arguments,
		})
	}

	var userContent []anthropicContent
	for i, result := range group.Results {
		id := result.ToolCallID
		if id == "" && i < len(group.Assistant.ToolCalls) {
			id = callID(group.Assistant.ToolCalls[i], i)
		}
		userContent = append(userContent, anthropicContent{
			Type:      "tool_result",
			ToolUseID: id,
			Content:   result.Content,
		})
	}

	return []anthropicMessage{
		{Role: "assistant", Content: assistantContent},
		{Role: "user", Content: userContent},
	}
}

// openAIToolResultMessages builds an assistant turn with a tool_calls
// array (arguments JSON-encoded) and one tool-role message per result.
func openAIToolResultMessages(group protocol.ToolGroup) []openAIMessage {
	assistant := openAIMessage{Role: "assistant"}
	if group.Assistant.Content != "" {
		assistant.Content = group.Assistant.Content
	}
	for i, tc := range group.Assistant.ToolCalls {
		args, _ := json.Marshal(tc.Arguments)
		call := openAIToolCall{ID: callID(tc, i), Type: "function"}
		call.Function.Name = tc.Name
		call.Function.Arguments = string(args)
		assistant.ToolCalls = append(assistant.ToolCalls, call)
	}

	messages := []openAIMessage{assistant}
	for i, result := range group.Results {
		id := result.ToolCallID
		if id == "" && i < len(group.Assistant.ToolCalls) {
			id = callID(group.Assistant.ToolCalls[i], i)
		}
		messages = append(messages, openAIMessage{
			Role:       "tool",
			Content:    result.Content,
			ToolCallID: id,
		})
	}
	return messages
}

// ollamaToolResultMessages builds an assistant turn with native-object
// tool calls and bare tool-role result messages; Ollama matches results
// to calls by order.
func ollamaToolResultMessages(group protocol.ToolGroup) []ollamaMessage {
	assistant := ollamaMessage{
		Role:    "assistant",
		Content: group.Assistant.Content,
	}
	for _, tc := range group.Assistant.ToolCalls {
		var call ollamaToolCall
		call.Function.Name = tc.Name
		call.Function.Arguments = tc.Arguments
		assistant.ToolCalls = append(assistant.ToolCalls, call)
	}

	messages := []ollamaMessage{assistant}
	for _, result := range group.Results {
		messages = append(messages, ollamaMessage{
			Role:    "tool",
			Content: result.Content,
		})
	}
	return messages
}

// BuildToolResultMessages returns the vendor-typed follow-up messages
// for a completed tool group. The concrete element type depends on the
// provider; callers that need wire bytes should json.Marshal the result.
func BuildToolResultMessages(provider string, group protocol.ToolGroup) (interface{}, error) {
	switch provider {
	case config.ProviderAnthropic:
		return anthropicToolResultMessages(group), nil
	case config.ProviderOpenAI:
		return openAIToolResultMessages(group), nil
	case config.ProviderOllama:
		return ollamaToolResultMessages(group), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
