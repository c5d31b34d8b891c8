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

// Package agent implements the chat orchestration loop: history
// management, tool dispatch, hedging detection with a search safety
// net, and progress events for the voice frontend.
package agent

import "log/slog"

type EventKind string

const (
	// EventStatus signals a phase change ("thinking", "searching").
	EventStatus EventKind = "status"
	// EventToolCall fires before each tool execution.
	EventToolCall EventKind = "tool_call"
	// EventNarration carries text meant to be spoken while work is in
	// flight.
	EventNarration EventKind = "narration"
	// EventActivity carries a short description of the current step for
	// a status display.
	EventActivity EventKind = "activity"

	EventWorkflowStart EventKind = "workflow_start"
	EventWorkflowState EventKind = "workflow_state"
	EventWorkflowExit  EventKind = "workflow_exit"
	EventWorkflowDebug EventKind = "workflow_debug"
	// EventLoopUpdate reports progress through a multi-query loop step.
	EventLoopUpdate EventKind = "loop_update"
)

// Event is one progress notification. Only the fields relevant to the
// Kind are set.
type Event struct {
	Kind   EventKind
	Status string
	Tool   string
	Text   string

	// TimeoutSeconds is the upper bound on the activity described by
	// Text, so a UI can show a meaningful progress hint.
	TimeoutSeconds float64

	WorkflowID   string
	WorkflowName string
	Step         int
	TotalSteps   int
	StepName     string
	StepState    string

	// Loop progress: the queries being worked through and which one is
	// active (-1 before the first).
	Children    []string
	ActiveIndex int

	Fields map[string]interface{}
}

// Sink is a bounded event channel. Emit never blocks: when the consumer
// falls behind, events are dropped rather than stalling the chat loop.
type Sink struct {
	ch chan Event
}

func NewSink(size int) *Sink {
	return &Sink{ch: make(chan Event, size)}
}

func (s *Sink) Emit(e Event) {
	if s == nil {
		return
	}
	select {
	case s.ch <- e:
	default:
		slog.Debug("event dropped", "kind", e.Kind)
	}
}

func (s *Sink) Events() <-chan Event { return s.ch }

func (s *Sink) Close() { close(s.ch) }
