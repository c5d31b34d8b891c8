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

package agent

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/voxkit/voxkit/pkg/protocol"
)

// Some models narrate tool calls as text instead of using the native
// protocol: `web_search({"query": "..."})` or similar. The pattern
// accepts an optional quote or backtick before the name, optional
// parens, and a single-level JSON object as arguments.
var textCallRe = regexp.MustCompile("(?s)(?:^|['\"`\\s])(\\w+)\\s*\\(?\\s*(\\{[^}]*\\})\\s*\\)?")

// ParseTextToolCalls recovers tool calls embedded in reply text.
// resolve maps a candidate name to its canonical tool name; candidates
// it rejects are skipped, as are unparseable argument objects.
func ParseTextToolCalls(text string, resolve func(name string) (string, bool)) []protocol.ToolCall {
	var calls []protocol.ToolCall
	for _, m := range textCallRe.FindAllStringSubmatch(text, -1) {
		name, ok := resolve(strings.ToLower(m[1]))
		if !ok {
			continue
		}
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(m[2]), &args); err != nil {
			slog.Debug("skipping text tool call with bad arguments", "name", name, "error", err)
			continue
		}
		calls = append(calls, protocol.ToolCall{Name: name, Arguments: args})
	}
	return calls
}
