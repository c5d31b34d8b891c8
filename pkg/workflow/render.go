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
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	snippetLineMax  = 150
	truncateTotal   = 2500
	shortQueryChars = 50
)

// truncateSearchResults shortens search output for decompose prompts.
// Numbered title lines stay intact since entity names live there;
// indented snippet lines get cut, and the whole thing is capped.
func truncateSearchResults(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "   ") && len(line) > snippetLineMax {
			out = append(out, line[:snippetLineMax]+"...")
		} else {
			out = append(out, line)
		}
	}
	result := strings.Join(out, "\n")
	if len(result) > truncateTotal {
		result = result[:truncateTotal] + "\n[...truncated]"
	}
	return result
}

// renderTemplate does simple {{key}} replacement from execution state.
func renderTemplate(template string, st *execState, now time.Time) string {
	shortQuery := st.userQuery
	if len(shortQuery) > shortQueryChars {
		shortQuery = shortQuery[:shortQueryChars] + "..."
	}

	bullets := make([]string, len(st.searchQueries))
	for i, q := range st.searchQueries {
		bullets[i] = "- " + q
	}

	replacements := map[string]string{
		"user_query":       st.userQuery,
		"user_query_short": shortQuery,
		"current_date":     now.Format("January 02, 2006"),
		"current_year":     fmt.Sprintf("%d", now.Year()),
		"search_queries":   strings.Join(bullets, "\n"),
		"search_results":   strings.Join(st.searchResults, "\n\n"),
		"decompose_result": st.stepResults["decompose"],
		"claims":           st.stepResults["extract_claim"],
		"evidence":         st.stepResults["search_evidence"],
		"counter_evidence": st.stepResults["search_counter"],
		"initial_search":   st.stepResults["initial_search"],
		"initial_lookup":   truncateSearchResults(st.stepResults["initial_lookup"]),
		"gap_analysis":     st.stepResults["evaluate_gaps"],
		"targeted_results": st.stepResults["targeted_search"],
	}

	result := template
	for key, value := range replacements {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// stripCodeFences removes a ```json ... ``` wrapper if present. Models
// routinely fence JSON they were told to return bare.
func stripCodeFences(text string) string {
	stripped := strings.TrimSpace(text)
	if !strings.HasPrefix(stripped, "```") {
		return stripped
	}
	lines := strings.Split(stripped, "\n")
	if len(lines) >= 3 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
	}
	return stripped
}

// parseJSONArray extracts a string array from LLM output.
func parseJSONArray(text string) ([]string, bool) {
	var raw []interface{}
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &raw); err != nil {
		return nil, false
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out, true
}

// parseJSONObject extracts a flat string map from LLM output.
func parseJSONObject(text string) (map[string]string, bool) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &raw); err != nil {
		return nil, false
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out, true
}
