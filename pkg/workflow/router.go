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

package workflow

import (
	"log/slog"
	"strings"
)

// RouteByKeywords matches input against the trigger patterns in fixed
// precedence order and returns the workflow ID, or "" for direct chat.
// Short queries skip routing entirely: "compare them" isn't worth a
// multi-step research run.
func RouteByKeywords(templates map[string]*Def, input string) string {
	wordCount := len(strings.Fields(input))

	for _, id := range templateOrder {
		def, ok := templates[id]
		if !ok {
			continue
		}
		if wordCount < def.MinQueryWords {
			continue
		}
		if def.Matches(input) {
			slog.Info("workflow routed", "workflow", id, "input", clip(input, 60))
			return id
		}
	}
	return ""
}

// ClientView serializes a definition for the frontend debugger.
func ClientView(def *Def) map[string]interface{} {
	states := make([]map[string]interface{}, len(def.Steps))
	for i, s := range def.Steps {
		states[i] = map[string]interface{}{
			"id":              s.ID,
			"name":            s.Name,
			"type":            string(s.Type),
			"has_tool":        s.ToolName != "",
			"tool_name":       s.ToolName,
			"prompt_template": clip(s.PromptTemplate, 200),
			"next_step":       s.NextStep,
			"narration":       s.Narration,
		}
	}
	return map[string]interface{}{
		"workflow_id": def.ID,
		"name":        def.Name,
		"description": def.Description,
		"states":      states,
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
