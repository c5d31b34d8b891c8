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
	"regexp"
	"strings"
)

// templateOrder fixes the routing precedence between templates.
var templateOrder = []string{"research_compare", "deep_research", "fact_check"}

// Templates returns the shipped workflow definitions with compiled
// trigger patterns.
func Templates() map[string]*Def {
	templates := map[string]*Def{
		"research_compare": {
			ID:          "research_compare",
			Name:        "Research & Compare",
			Description: "Establish ranking, decompose into per-entity lookups, synthesize",
			TriggerKeywords: []string{
				"compare", "comparison", "versus", "vs",
				`top \d+`,
				"top (three|four|five|six|seven|eight|nine|ten)",
				"each", "both",
				"market cap", "difference between",
				"which is better", "pros and cons",
				"biggest", "largest", "highest",
			},
			MinQueryWords: 6,
			Steps: []Step{
				{
					ID:   "initial_lookup",
					Name: "Establishing ranking",
					Type: StepLLM,
					PromptTemplate: "Today is {{current_date}}.\n" +
						"The user asked: {{user_query}}\n\n" +
						"Generate a web search query to find the CURRENT, AUTHORITATIVE " +
						"ranking with company/entity names listed. The query MUST include " +
						"the year {{current_year}} so results are fresh.\n\n" +
						"Good: 'top 5 S&P 500 companies by market cap list {{current_year}}'\n" +
						"Bad:  'S&P 500 stocks'\n\n" +
						"Return ONLY the search query string, nothing else.",
					ToolName:  "web_search",
					NextStep:  "decompose",
					Narration: "Searching for current ranking...",
				},
				{
					ID:   "decompose",
					Name: "Decomposing query",
					Type: StepLLM,
					PromptTemplate: "Today is {{current_date}}.\n" +
						"The user asked: {{user_query}}\n\n" +
						"Here are current search results:\n" +
						"---BEGIN SEARCH RESULTS---\n{{initial_lookup}}\n---END SEARCH RESULTS---\n\n" +
						"TASK: Identify the entities the user is asking about and create " +
						"one search query per entity to look up current data.\n\n" +
						"RULES:\n" +
						"- FIRST check the search results for entity names\n" +
						"- If the search results don't list specific entity names, use your " +
						"knowledge to identify the most likely current entities and we will " +
						"verify with search\n" +
						"- If the user asked for 'top N', return EXACTLY N entities\n" +
						"- Include ticker symbols when known\n" +
						"- Include '{{current_year}}' in each query\n\n" +
						"Return ONLY a JSON array of search queries. Example format:\n" +
						"[\"Apple AAPL market cap {{current_year}}\", " +
						"\"NVIDIA NVDA market cap {{current_year}}\", " +
						"\"Microsoft MSFT market cap {{current_year}}\"]\n\n" +
						"JSON array:",
					NextStep:  "search_each",
					Narration: "Decomposing into individual lookups...",
				},
				{
					ID:        "search_each",
					Name:      "Searching each entity",
					Type:      StepLoop,
					ToolName:  "web_search",
					NextStep:  "synthesize",
					Narration: "Looking up each entity...",
				},
				{
					ID:   "synthesize",
					Name: "Synthesizing",
					Type: StepLLM,
					PromptTemplate: "Today is {{current_date}}.\n" +
						"The user asked: {{user_query}}\n\n" +
						"Here are per-entity search results:\n{{search_results}}\n\n" +
						"RULES:\n" +
						"- Present the entities in RANKED ORDER (largest to smallest, " +
						"best to worst, etc. — matching the user's question)\n" +
						"- ONLY cite numbers that appear in the search results above\n" +
						"- If your training knowledge contradicts the search results, " +
						"TRUST THE SEARCH RESULTS — they are more recent\n" +
						"- Include specific numbers/facts from the results\n" +
						"- Keep it conversational — this will be spoken aloud by a voice " +
						"assistant (2-4 sentences)",
					Narration: "Putting it all together...",
				},
			},
		},
		"deep_research": {
			ID:          "deep_research",
			Name:        "Deep Research",
			Description: "Initial search, evaluate gaps, targeted follow-up, synthesize",
			TriggerKeywords: []string{
				"tell me about", "research", "explain in detail",
				"what's happening with", "deep dive",
				"comprehensive", "thorough",
			},
			MinQueryWords: 5,
			Steps: []Step{
				{
					ID:   "initial_search",
					Name: "Initial search",
					Type: StepLLM,
					PromptTemplate: "Today is {{current_date}}.\n" +
						"The user asked: {{user_query}}\n\n" +
						"Generate a focused web search query to find the most relevant, " +
						"current information. Include '{{current_year}}' in the query.\n\n" +
						"Return ONLY the search query string, nothing else.",
					ToolName:  "web_search",
					NextStep:  "evaluate_gaps",
					Narration: "Searching for {{user_query_short}}...",
				},
				{
					ID:   "evaluate_gaps",
					Name: "Evaluating gaps",
					Type: StepLLM,
					PromptTemplate: "Today is {{current_date}}.\n" +
						"The user asked: {{user_query}}\n\n" +
						"Initial search results:\n{{initial_search}}\n\n" +
						"What key information is still missing to fully answer this " +
						"question? Generate 1-2 follow-up search queries as a JSON " +
						"array to fill the gaps. Include '{{current_year}}' in queries.\n\n" +
						"Return ONLY the JSON array of search query strings.",
					NextStep:  "targeted_search",
					Narration: "Evaluating what else we need...",
				},
				{
					ID:        "targeted_search",
					Name:      "Targeted search",
					Type:      StepLoop,
					ToolName:  "web_search",
					NextStep:  "synthesize",
					Narration: "Running follow-up searches...",
				},
				{
					ID:   "synthesize",
					Name: "Synthesizing",
					Type: StepLLM,
					PromptTemplate: "Today is {{current_date}}.\n" +
						"The user asked: {{user_query}}\n\n" +
						"Initial findings:\n{{initial_search}}\n\n" +
						"Follow-up findings:\n{{search_results}}\n\n" +
						"RULES:\n" +
						"- ONLY cite facts/numbers from the search results above\n" +
						"- If your training knowledge contradicts the search results, " +
						"TRUST THE SEARCH RESULTS\n" +
						"- Include specific facts, dates, and numbers\n" +
						"- Keep it conversational for a voice assistant (3-5 sentences)",
					Narration: "Putting it all together...",
				},
			},
		},
		"fact_check": {
			ID:          "fact_check",
			Name:        "Fact Check",
			Description: "Extract claim, search evidence, search counter-evidence, verdict",
			TriggerKeywords: []string{
				"is it true", "fact check", "verify",
				"debunk", "is that correct", "true that",
				"really true", "actually true",
			},
			MinQueryWords: 6,
			Steps: []Step{
				{
					ID:   "extract_claim",
					Name: "Extracting claim",
					Type: StepLLM,
					PromptTemplate: "Today is {{current_date}}.\n" +
						"The user asked: {{user_query}}\n\n" +
						"Extract the core factual claim being questioned. " +
						"Then generate TWO search queries:\n" +
						"1. A query to find evidence SUPPORTING the claim (include '{{current_year}}')\n" +
						"2. A query to find evidence AGAINST the claim (include '{{current_year}}')\n\n" +
						"Return JSON: {\"claim\": \"...\", \"support_query\": \"...\", " +
						"\"counter_query\": \"...\"}",
					NextStep:  "search_evidence",
					Narration: "Extracting the claim to check...",
				},
				{
					ID:        "search_evidence",
					Name:      "Searching for evidence",
					Type:      StepDirect,
					ToolName:  "web_search",
					NextStep:  "search_counter",
					Narration: "Searching for supporting evidence...",
				},
				{
					ID:        "search_counter",
					Name:      "Searching counter-evidence",
					Type:      StepDirect,
					ToolName:  "web_search",
					NextStep:  "verdict",
					Narration: "Searching for counter-evidence...",
				},
				{
					ID:   "verdict",
					Name: "Rendering verdict",
					Type: StepLLM,
					PromptTemplate: "Today is {{current_date}}.\n" +
						"The user asked: {{user_query}}\n\n" +
						"Claim: {{claims}}\n\n" +
						"Supporting evidence:\n{{evidence}}\n\n" +
						"Counter-evidence:\n{{counter_evidence}}\n\n" +
						"RULES:\n" +
						"- Base your verdict ONLY on the evidence above\n" +
						"- Do NOT rely on training knowledge for factual claims\n" +
						"- Render a fair verdict: true, false, partly true, or unverified\n" +
						"- Cite specific evidence from the search results\n" +
						"- Keep it conversational for a voice assistant (2-4 sentences)",
					Narration: "Rendering verdict...",
				},
			},
		},
	}

	for _, def := range templates {
		def.pattern = compileTriggers(def.TriggerKeywords)
	}
	return templates
}

// compileTriggers joins keywords into one case-insensitive pattern.
// Plain keywords get word boundaries; keywords that are already regex
// fragments are used as-is.
func compileTriggers(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return nil
	}
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		if strings.ContainsAny(kw, `\+*?[]()`) {
			parts[i] = kw
		} else {
			parts[i] = `\b` + kw + `\b`
		}
	}
	return regexp.MustCompile("(?i)" + strings.Join(parts, "|"))
}
