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

package assistant

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/voxkit/voxkit/pkg/tools"
)

// Time and date questions have deterministic answers; intercepting
// them here turns a multi-second LLM round trip into an instant reply.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^what(?:'s| is) the (?:current )?time(?:\s+(?:right now|now|currently))?(?:\s+in\s+(.+?))?[?.!]?\s*$`),
	regexp.MustCompile(`(?i)^what time is it(?:\s+(?:right now|now|currently))?(?:\s+in\s+(.+?))?[?.!]?\s*$`),
	regexp.MustCompile(`(?i)^what time is it\s+in\s+(.+?)(?:\s+(?:right now|now|currently))?[?.!]?\s*$`),
	regexp.MustCompile(`(?i)^(?:tell me|give me|get me) the (?:current )?time(?:\s+in\s+(.+?))?[?.!]?\s*$`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^what(?:'s| is) (?:today(?:'s date)?|the date)[?.!]?\s*$`),
	regexp.MustCompile(`(?i)^what day is it(?: today)?[?.!]?\s*$`),
	regexp.MustCompile(`(?i)^what(?:'s| is) today(?:'s date)?[?.!]?\s*$`),
}

var trailingFillerRe = regexp.MustCompile(`(?i)\s+(?:right now|now|currently)\s*$`)

func cleanLocation(loc string) string {
	loc = strings.TrimRight(strings.TrimSpace(loc), "?.!")
	loc = trailingFillerRe.ReplaceAllString(loc, "")
	return strings.TrimSpace(loc)
}

func formatTimeResponse(now time.Time, location string) string {
	timeStr := now.Format("3:04 PM")
	dayStr := now.Format("Monday, January 2, 2006")
	tzStr := now.Format("MST")

	if location != "" {
		return fmt.Sprintf("It's %s %s in %s — %s.", timeStr, tzStr, location, dayStr)
	}
	return fmt.Sprintf("It's %s %s — %s.", timeStr, tzStr, dayStr)
}

func formatDateResponse(now time.Time) string {
	return fmt.Sprintf("Today is %s.", now.Format("Monday, January 2, 2006"))
}

// localize applies the client's reported IANA timezone when it parses,
// otherwise leaves the time as-is.
func localize(now time.Time, clientTZ string) time.Time {
	if clientTZ == "" {
		return now
	}
	loc, err := time.LoadLocation(clientTZ)
	if err != nil {
		return now
	}
	return now.In(loc)
}

// TryFastPath answers a time or date query without touching the LLM.
// Returns ok=false to fall through, including when the query names a
// location we can't resolve: wrong answers are worse than slow ones.
func TryFastPath(text, clientTZ string, now time.Time) (string, bool) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return "", false
	}

	for _, pattern := range timePatterns {
		m := pattern.FindStringSubmatch(clean)
		if m == nil {
			continue
		}
		location := ""
		if len(m) > 1 {
			location = cleanLocation(m[1])
		}

		if location != "" {
			loc, _, ok := tools.ResolveLocation(location)
			if !ok {
				slog.Debug("fast path: unknown location", "location", location)
				return "", false
			}
			resp := formatTimeResponse(now.In(loc), location)
			slog.Info("fast path answered", "kind", "time", "location", location)
			return resp, true
		}

		resp := formatTimeResponse(localize(now, clientTZ), "")
		slog.Info("fast path answered", "kind", "time")
		return resp, true
	}

	for _, pattern := range datePatterns {
		if pattern.MatchString(clean) {
			resp := formatDateResponse(localize(now, clientTZ))
			slog.Info("fast path answered", "kind", "date")
			return resp, true
		}
	}

	return "", false
}
