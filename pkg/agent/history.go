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

import "github.com/voxkit/voxkit/pkg/protocol"

// TrimHistory drops the oldest messages past limit without splitting a
// tool exchange. A cut landing inside an exchange slides forward past
// the tool results, dropping the whole exchange, so the result never
// starts with an orphaned tool message and stays within limit. The
// rewind fires only when the message before the cut is an assistant
// whose results are missing, which well-formed history never produces.
func TrimHistory(messages []protocol.Message, limit int) []protocol.Message {
	if limit <= 0 || len(messages) <= limit {
		return messages
	}

	cut := len(messages) - limit
	for cut < len(messages) && messages[cut].Role == protocol.RoleTool {
		cut++
	}
	if cut > 0 && messages[cut-1].HasToolCalls() {
		cut--
		for cut > 0 && messages[cut-1].Role == protocol.RoleTool {
			cut--
		}
	}
	return messages[cut:]
}
