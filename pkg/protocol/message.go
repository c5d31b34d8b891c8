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

// Package protocol defines the vendor-neutral conversation types shared
// by the orchestrator and the provider adapters. History is stored in
// this form and converted to each vendor's wire format at request time.
package protocol

import (
	"regexp"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a single tool invocation requested by the model.
// ID is vendor-assigned when the vendor provides one; adapters
// synthesize stable ids otherwise.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]interface{}
}

// Message is one turn of conversation. An assistant message may carry
// ToolCalls; a tool message carries the result for the call identified
// by ToolCallID.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	ToolName   string
}

// HasToolCalls reports whether this is an assistant turn requesting
// tool execution.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// ToolGroup is an assistant message with tool calls plus the tool
// results that answer it. Groups move through history as a unit.
type ToolGroup struct {
	Assistant Message
	Results   []Message
}

// CollectGroup gathers the tool group starting at index i, which must
// point at an assistant message with tool calls. Returns the group and
// the index of the first message past it.
func CollectGroup(messages []Message, i int) (ToolGroup, int) {
	group := ToolGroup{Assistant: messages[i]}
	j := i + 1
	for j < len(messages) && messages[j].Role == RoleTool {
		group.Results = append(group.Results, messages[j])
		j++
	}
	return group, j
}

var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThinkTags removes <think>...</think> blocks that some local
// models emit before their answer, and trims surrounding whitespace.
func StripThinkTags(text string) string {
	return strings.TrimSpace(thinkRe.ReplaceAllString(text, ""))
}
