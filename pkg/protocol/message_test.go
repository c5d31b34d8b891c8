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

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripThinkTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no tags", "hello there", "hello there"},
		{"single block", "<think>reasoning</think>the answer", "the answer"},
		{"multiline block", "<think>line one\nline two</think>\nanswer", "answer"},
		{"multiple blocks", "<think>a</think>x<think>b</think>y", "xy"},
		{"only block", "<think>nothing else</think>", ""},
		{"unclosed tag left alone", "<think>dangling", "<think>dangling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripThinkTags(tt.input))
		})
	}
}

func TestCollectGroup(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "what's the weather?"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{
			{ID: "c1", Name: "web_search", Arguments: map[string]interface{}{"query": "weather"}},
			{ID: "c2", Name: "get_current_datetime", Arguments: map[string]interface{}{}},
		}},
		{Role: RoleTool, ToolCallID: "c1", ToolName: "web_search", Content: "sunny"},
		{Role: RoleTool, ToolCallID: "c2", ToolName: "get_current_datetime", Content: "noon"},
		{Role: RoleAssistant, Content: "It's sunny at noon."},
	}

	group, next := CollectGroup(messages, 1)
	assert.Equal(t, 4, next)
	assert.Len(t, group.Results, 2)
	assert.Equal(t, "web_search", group.Assistant.ToolCalls[0].Name)
	assert.Equal(t, "sunny", group.Results[0].Content)
}

func TestCollectGroupNoResults(t *testing.T) {
	messages := []Message{
		{Role: RoleAssistant, ToolCalls: []ToolCall{{Name: "web_search"}}},
		{Role: RoleUser, Content: "never mind"},
	}

	group, next := CollectGroup(messages, 0)
	assert.Equal(t, 1, next)
	assert.Empty(t, group.Results)
}
