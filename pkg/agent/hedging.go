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

import "strings"

// DefaultHedgingPhrases are substrings that mark a reply as the model
// claiming it can't reach live data. Matched case-insensitively; any
// hit triggers the search safety net or the post-search retry.
func DefaultHedgingPhrases() []string {
	return []string{
		"don't have access",
		"don't have real-time",
		"don't have current",
		"don't have the ability",
		"don't have live",
		"do not have access",
		"do not have real-time",
		"do not have current",
		"do not have the ability",
		"can't browse",
		"can't access the internet",
		"can't access the web",
		"can't search",
		"cannot browse",
		"cannot access the internet",
		"cannot access the web",
		"cannot search",
		"not able to browse",
		"not able to access",
		"not able to search",
		"unable to browse",
		"unable to access real",
		"unable to search",
		"my knowledge cutoff",
		"my training data",
		"information is outdated",
		"data is outdated",
		"may be outdated",
		"might be outdated",
		"as an ai",
		"as a language model",
		"as a large language model",
		"lack access",
		"beyond my capabilities",
		"outside my capabilities",
		"not available to me",
		"can't actually browse",
		"can't actually access",
		"can't actually search",
		"cannot actually browse",
		"cannot actually access",
		"cannot actually search",
		"don't actually have access",
		"still under development",
		"not accessible in real-time",
		"not accessible in real time",
		"isn't accessible",
		"is not accessible",
		"can't provide real-time",
		"cannot provide real-time",
		"can't provide you with real-time",
		"i can't answer that",
		"check yahoo finance",
		"check a financial",
		"visit a financial",
		"recommend checking",
	}
}

// IsHedging reports whether reply contains any of the phrases.
func IsHedging(reply string, phrases []string) bool {
	lower := strings.ToLower(reply)
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
