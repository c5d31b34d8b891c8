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

// Package workflow is a hybrid FSM + LLM engine layered over the chat
// loop. Complex queries that match a template are driven step by step
// through an FSM, with a focused one-shot LLM call per reasoning step;
// everything else falls through to the orchestrator unchanged.
package workflow

import "regexp"

type StepType string

const (
	// StepLLM renders a prompt and runs one focused completion.
	StepLLM StepType = "llm"
	// StepLoop dispatches the tool once per pending search query.
	StepLoop StepType = "loop"
	// StepDirect dispatches the tool once, no LLM involved.
	StepDirect StepType = "direct"
)

// Step is a single state in the workflow FSM.
type Step struct {
	ID             string
	Name           string
	Type           StepType
	PromptTemplate string
	ToolName       string
	NextStep       string
	Narration      string
}

// Def is a complete workflow definition.
type Def struct {
	ID              string
	Name            string
	Description     string
	TriggerKeywords []string
	Steps           []Step
	// Queries shorter than this many words skip routing entirely.
	MinQueryWords int

	pattern *regexp.Regexp
}

// Matches reports whether the input trips this workflow's triggers.
func (d *Def) Matches(input string) bool {
	return d.pattern != nil && d.pattern.MatchString(input)
}

// execState is the mutable state carried through one execution.
type execState struct {
	workflowID    string
	userQuery     string
	stepResults   map[string]string
	searchQueries []string
	searchResults []string
	finalAnswer   string
}

func newExecState(workflowID, userQuery string) *execState {
	return &execState{
		workflowID:  workflowID,
		userQuery:   userQuery,
		stepResults: make(map[string]string),
	}
}
