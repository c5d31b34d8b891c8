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
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/voxkit/voxkit/pkg/agent"
	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/llms"
	"github.com/voxkit/voxkit/pkg/observability"
	"github.com/voxkit/voxkit/pkg/protocol"
)

const (
	researchSystemPrompt = "You are a research assistant. Follow instructions precisely."

	// Pause between loop searches so the provider doesn't 429 us.
	defaultLoopDelay = 1500 * time.Millisecond

	maxDecomposeQueries = 5
	maxGapQueries       = 3

	// Per-call upper bounds, reported with activity events so the UI
	// can scale its progress hint.
	llmTimeoutSecs    = 120.0
	searchTimeoutSecs = 5.0
)

var bulletRe = regexp.MustCompile(`^[\d.\-*]+\s*`)

// Runner is the FSM engine wrapped around the orchestrator. It shares
// the orchestrator's public surface so callers can swap one for the
// other.
type Runner struct {
	orch      *agent.Orchestrator
	templates map[string]*Def
	loopDelay time.Duration
	tracer    trace.Tracer
	now       func() time.Time
}

func NewRunner(orch *agent.Orchestrator) *Runner {
	return &Runner{
		orch:      orch,
		templates: Templates(),
		loopDelay: defaultLoopDelay,
		tracer:    observability.GetTracer("voxkit.workflow"),
		now:       time.Now,
	}
}

// Chat routes the input to a workflow when one matches, otherwise
// falls through to the plain chat loop.
func (r *Runner) Chat(ctx context.Context, userInput string) (string, error) {
	if id := RouteByKeywords(r.templates, userInput); id != "" {
		return r.Execute(ctx, id, userInput), nil
	}
	return r.orch.Chat(ctx, userInput)
}

func (r *Runner) ClearHistory() { r.orch.ClearHistory() }

func (r *Runner) UpdateConfig(cfg config.ChatConfig) { r.orch.UpdateConfig(cfg) }

func (r *Runner) History() []protocol.Message { return r.orch.History() }

// Execute runs a complete workflow FSM. It never returns an error:
// failures become a spoken apology, and only the final user/assistant
// pair lands in conversation history so intermediate reasoning doesn't
// pollute later turns.
func (r *Runner) Execute(ctx context.Context, workflowID, userInput string) string {
	def := r.templates[workflowID]
	if def == nil {
		slog.Error("unknown workflow", "workflow", workflowID)
		return fallthroughReply(ctx, r.orch, userInput)
	}

	ctx, span := r.tracer.Start(ctx, observability.SpanWorkflow,
		trace.WithAttributes(attribute.String(observability.AttrWorkflowID, workflowID)))
	defer span.End()

	st := newExecState(workflowID, userInput)
	events := r.orch.Events()

	slog.Info("starting workflow", "workflow", def.Name, "input", clip(userInput, 60))
	events.Emit(agent.Event{
		Kind:         agent.EventWorkflowStart,
		WorkflowID:   def.ID,
		WorkflowName: def.Name,
		Fields:       ClientView(def),
	})

	var reply string
	err := func() error {
		for i, step := range def.Steps {
			span.SetAttributes(attribute.String(observability.AttrWorkflowStep, step.ID))
			events.Emit(agent.Event{
				Kind:       agent.EventWorkflowState,
				WorkflowID: def.ID,
				StepName:   step.ID,
				StepState:  "active",
				Step:       i + 1,
				TotalSteps: len(def.Steps),
				Text:       step.Name,
			})

			if err := r.executeStep(ctx, step, st); err != nil {
				return err
			}

			events.Emit(agent.Event{
				Kind:       agent.EventWorkflowState,
				WorkflowID: def.ID,
				StepName:   step.ID,
				StepState:  "visited",
			})
		}
		return nil
	}()

	if err != nil {
		slog.Error("workflow failed", "workflow", workflowID, "error", err)
		reply = fmt.Sprintf("I ran into an issue during research: %v", err)
	} else if st.finalAnswer != "" {
		reply = st.finalAnswer
	} else {
		reply = "I completed the research but couldn't form a response."
	}

	events.Emit(agent.Event{Kind: agent.EventWorkflowExit, WorkflowID: def.ID})

	r.orch.AppendExchange(userInput, reply)
	return reply
}

func fallthroughReply(ctx context.Context, orch *agent.Orchestrator, userInput string) string {
	reply, err := orch.Chat(ctx, userInput)
	if err != nil {
		return fmt.Sprintf("I ran into an issue during research: %v", err)
	}
	return reply
}

func (r *Runner) executeStep(ctx context.Context, step Step, st *execState) error {
	events := r.orch.Events()
	if step.Narration != "" {
		events.Emit(agent.Event{
			Kind: agent.EventNarration,
			Text: renderTemplate(step.Narration, st, r.now()),
		})
	}

	switch step.Type {
	case StepLLM:
		return r.executeLLMStep(ctx, step, st)
	case StepLoop:
		return r.executeLoopStep(ctx, step, st)
	case StepDirect:
		return r.executeDirectStep(ctx, step, st)
	default:
		return fmt.Errorf("unknown step type %q", step.Type)
	}
}

// executeLLMStep runs one focused completion. Thinking is disabled:
// these are narrow prompts (query generation, JSON extraction,
// synthesis) where extended reasoning wastes tokens and latency.
func (r *Runner) executeLLMStep(ctx context.Context, step Step, st *execState) error {
	events := r.orch.Events()
	llm := r.orch.LLM()
	prompt := renderTemplate(step.PromptTemplate, st, r.now())

	slog.Info("llm step", "step", step.ID, "prompt_chars", len(prompt))
	events.Emit(agent.Event{Kind: agent.EventActivity, Text: "Querying " + llm.GetModel() + "...", TimeoutSeconds: llmTimeoutSecs})

	resp, err := llm.Generate(ctx, llms.Request{
		System:          researchSystemPrompt,
		Messages:        []protocol.Message{{Role: protocol.RoleUser, Content: prompt}},
		DisableThinking: true,
	})
	if err != nil {
		return err
	}

	text := protocol.StripThinkTags(resp.Text)
	st.stepResults[step.ID] = text

	events.Emit(agent.Event{
		Kind: agent.EventWorkflowDebug,
		Fields: map[string]interface{}{
			"step":          step.ID,
			"prompt_chars":  len(prompt),
			"provider":      llm.GetProvider(),
			"model":         llm.GetModel(),
			"input_tokens":  resp.Usage.InputTokens,
			"output_tokens": resp.Usage.OutputTokens,
		},
	})

	switch step.ID {
	case "decompose":
		st.searchQueries = queriesFromReply(text, maxDecomposeQueries)
		slog.Info("decomposed query", "count", len(st.searchQueries))

	case "evaluate_gaps":
		st.searchQueries = queriesFromReply(text, maxGapQueries)

	case "extract_claim":
		if obj, ok := parseJSONObject(text); ok {
			if claim, present := obj["claim"]; present {
				st.stepResults["extract_claim"] = claim
			}
			st.searchQueries = st.searchQueries[:0]
			for _, key := range []string{"support_query", "counter_query"} {
				if q := obj[key]; q != "" {
					st.searchQueries = append(st.searchQueries, q)
				}
			}
		} else {
			st.searchQueries = []string{st.userQuery}
		}

	case "initial_search", "initial_lookup":
		// The reply is a search query; run it right away.
		query := strings.Trim(strings.TrimSpace(text), `"'`)
		slog.Info("initial search", "query", clip(query, 60))
		events.Emit(agent.Event{Kind: agent.EventActivity, Text: "Searching: " + clip(query, 60), TimeoutSeconds: searchTimeoutSecs})
		if step.ToolName != "" {
			st.stepResults[step.ID] = r.orch.Tools().Dispatch(ctx, step.ToolName,
				map[string]interface{}{"query": query})
		} else {
			st.stepResults[step.ID] = "(search not available)"
		}

	case "synthesize", "verdict":
		st.finalAnswer = text
	}
	return nil
}

// queriesFromReply takes a JSON array when the model cooperated, or
// splits lines and strips bullets when it didn't.
func queriesFromReply(text string, max int) []string {
	if queries, ok := parseJSONArray(text); ok {
		return queries
	}
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == max {
			break
		}
	}
	return out
}

// executeLoopStep dispatches the tool once per pending query, pausing
// between calls.
func (r *Runner) executeLoopStep(ctx context.Context, step Step, st *execState) error {
	events := r.orch.Events()
	queries := st.searchQueries
	if len(queries) == 0 {
		slog.Warn("loop step has no queries", "step", step.ID)
		return nil
	}

	events.Emit(agent.Event{
		Kind:        agent.EventLoopUpdate,
		StepName:    step.ID,
		Children:    queries,
		ActiveIndex: -1,
	})

	results := make([]string, 0, len(queries))
	for i, query := range queries {
		if i > 0 {
			select {
			case <-time.After(r.loopDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		detail := fmt.Sprintf("Searching %d/%d: %s", i+1, len(queries), clip(query, 50))
		events.Emit(agent.Event{
			Kind:       agent.EventWorkflowState,
			StepName:   step.ID,
			StepState:  "active",
			Text:       detail,
			Step:       i + 1,
			TotalSteps: len(queries),
		})
		events.Emit(agent.Event{
			Kind:        agent.EventLoopUpdate,
			StepName:    step.ID,
			Children:    queries,
			ActiveIndex: i,
		})
		events.Emit(agent.Event{Kind: agent.EventActivity, Text: detail, TimeoutSeconds: searchTimeoutSecs})

		result := r.orch.Tools().Dispatch(ctx, step.ToolName, map[string]interface{}{"query": query})
		results = append(results, fmt.Sprintf("[Query: %s]\n%s", query, result))
	}

	st.searchResults = results
	return nil
}

// executeDirectStep dispatches the tool once. Fact-check steps pick
// their query from the pair extract_claim produced.
func (r *Runner) executeDirectStep(ctx context.Context, step Step, st *execState) error {
	if step.ToolName == "" {
		st.stepResults[step.ID] = "(tool not available)"
		return nil
	}

	query := st.userQuery
	switch {
	case step.ID == "search_evidence" && len(st.searchQueries) > 0:
		query = st.searchQueries[0]
	case step.ID == "search_counter" && len(st.searchQueries) > 1:
		query = st.searchQueries[1]
	}

	r.orch.Events().Emit(agent.Event{Kind: agent.EventActivity, Text: "Executing " + step.ToolName + "...", TimeoutSeconds: searchTimeoutSecs})
	st.stepResults[step.ID] = r.orch.Tools().Dispatch(ctx, step.ToolName, map[string]interface{}{"query": query})
	return nil
}
