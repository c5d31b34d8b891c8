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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/llms"
	"github.com/voxkit/voxkit/pkg/observability"
	"github.com/voxkit/voxkit/pkg/protocol"
)

const (
	fallbackReply = "I wasn't able to complete that request."

	// Sent as a user turn when the model hedges right after a search
	// succeeded, then removed from history once it has done its job.
	postSearchDirective = "You already searched the web and received results above. " +
		"Use those results to answer my question directly. " +
		"Do not say you cannot access real-time data — you just did."

	searchClassifierPrompt = "Extract a clean web search query from this user message. " +
		"Strip conversational filler and keep only the factual question.\n\n" +
		"Reply with ONLY the search query, nothing else.\n\n" +
		"Examples:\n" +
		"User: 'What is the weather today in Austin?' → weather in Austin today\n" +
		"User: 'Yes, look that up, what's the S&P 500?' → S&P 500 current price\n" +
		"User: 'Can you tell me who won the Super Bowl?' → who won the Super Bowl"
)

// DefaultSystemPrompt returns the voice-tuned system prompt with the
// current date baked in.
func DefaultSystemPrompt(now time.Time) string {
	return fmt.Sprintf("You are a helpful voice assistant. Today is %s. "+
		"Keep responses concise — one to three sentences. "+
		"Speak naturally as in a conversation. "+
		"When searching the web, always include the current year in queries to get fresh results.",
		now.Format("January 2, 2006"))
}

// Dispatcher is the tool surface the loop needs: schema export for
// requests, alias knowledge for text-call recovery, and execution.
// *tools.Registry satisfies it.
type Dispatcher interface {
	Definitions() []llms.ToolDefinition
	Aliases() map[string]string
	Dispatch(ctx context.Context, name string, args map[string]interface{}) string
}

// Orchestrator drives the multi-turn tool-calling loop over one
// conversation. Safe for concurrent use; turns serialize on the
// history lock.
type Orchestrator struct {
	mu       sync.Mutex
	llm      llms.LLM
	registry Dispatcher
	cfg      config.ChatConfig
	hedging  []string
	history  []protocol.Message
	events   *Sink
	tracer   trace.Tracer
	now      func() time.Time
}

func NewOrchestrator(llm llms.LLM, registry Dispatcher, cfg config.ChatConfig, events *Sink) *Orchestrator {
	cfg.SetDefaults()
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		cfg:      cfg,
		hedging:  append(DefaultHedgingPhrases(), cfg.HedgingPhrases...),
		events:   events,
		tracer:   observability.GetTracer("voxkit.agent"),
		now:      time.Now,
	}
}

// LLM exposes the underlying provider for callers that run their own
// prompts, like the workflow runner.
func (o *Orchestrator) LLM() llms.LLM { return o.llm }

// Tools exposes the dispatcher for the same callers.
func (o *Orchestrator) Tools() Dispatcher { return o.registry }

func (o *Orchestrator) Events() *Sink { return o.events }

// ClearHistory forgets the conversation.
func (o *Orchestrator) ClearHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
}

// History returns a copy of the conversation.
func (o *Orchestrator) History() []protocol.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]protocol.Message, len(o.history))
	copy(out, o.history)
	return out
}

// AppendExchange records a user/assistant pair without running the
// loop. Workflows use this so the conversation remembers their final
// answer but not the intermediate steps.
func (o *Orchestrator) AppendExchange(userInput, reply string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = append(o.history,
		protocol.Message{Role: protocol.RoleUser, Content: userInput},
		protocol.Message{Role: protocol.RoleAssistant, Content: reply},
	)
	o.history = TrimHistory(o.history, o.cfg.MaxHistory)
}

// UpdateConfig applies new chat settings mid-session. History is kept.
func (o *Orchestrator) UpdateConfig(cfg config.ChatConfig) {
	cfg.SetDefaults()
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cfg = cfg
	o.hedging = append(DefaultHedgingPhrases(), cfg.HedgingPhrases...)
	o.history = TrimHistory(o.history, o.cfg.MaxHistory)
}

func (o *Orchestrator) systemPrompt() string {
	if o.cfg.SystemPrompt != "" {
		return o.cfg.SystemPrompt
	}
	return DefaultSystemPrompt(o.now())
}

func (o *Orchestrator) safetyNetEnabled() bool {
	return o.cfg.EnableSafetyNet == nil || *o.cfg.EnableSafetyNet
}

// resolveAlias maps a candidate tool name from reply text to its
// canonical name, rejecting names the registry doesn't know.
func (o *Orchestrator) resolveAlias(name string) (string, bool) {
	canonical, ok := o.registry.Aliases()[name]
	return canonical, ok
}

// Chat runs one user turn through the loop: generate, execute tool
// calls, feed results back, repeat until the model answers in plain
// text or iterations run out. The final iteration withholds tools to
// force an answer.
func (o *Orchestrator) Chat(ctx context.Context, userInput string) (string, error) {
	ctx, span := o.tracer.Start(ctx, "assistant.chat")
	defer span.End()

	o.mu.Lock()
	defer o.mu.Unlock()

	o.history = append(o.history, protocol.Message{Role: protocol.RoleUser, Content: userInput})
	o.history = TrimHistory(o.history, o.cfg.MaxHistory)

	system := o.systemPrompt()
	defs := o.registry.Definitions()

	var reply, lastText string
	searchRan := false

	for i := 0; i < o.cfg.MaxIterations; i++ {
		tools := defs
		if i == o.cfg.MaxIterations-1 {
			tools = nil
		}

		o.events.Emit(Event{Kind: EventStatus, Status: "thinking"})
		resp, err := o.llm.Generate(ctx, llms.Request{
			System:   system,
			Messages: o.history,
			Tools:    tools,
		})
		if err != nil {
			return "", err
		}

		text := protocol.StripThinkTags(resp.Text)
		calls := resp.ToolCalls
		if len(calls) == 0 {
			calls = ParseTextToolCalls(text, o.resolveAlias)
			if len(calls) > 0 {
				slog.Debug("recovered tool calls from reply text", "count", len(calls))
				text = ""
			}
		}

		if text != "" {
			lastText = text
		}

		if len(calls) == 0 {
			reply = text
			break
		}

		o.history = append(o.history, protocol.Message{
			Role:      protocol.RoleAssistant,
			Content:   text,
			ToolCalls: calls,
		})
		for _, call := range calls {
			if canonical, ok := o.resolveAlias(strings.ToLower(call.Name)); ok && canonical == "web_search" {
				searchRan = true
				o.events.Emit(Event{Kind: EventStatus, Status: "searching"})
			}
			o.events.Emit(Event{Kind: EventToolCall, Tool: call.Name})

			result := o.registry.Dispatch(ctx, call.Name, call.Arguments)
			o.history = append(o.history, protocol.Message{
				Role:       protocol.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}

	// Iterations exhausted: the last text the model produced alongside
	// its tool calls is still a better answer than a canned apology.
	if reply == "" {
		reply = lastText
	}
	if reply == "" {
		reply = fallbackReply
	}

	if searchRan && IsHedging(reply, o.hedging) {
		reply = o.retryAfterSearch(ctx, system, reply)
	} else if !searchRan && IsHedging(reply, o.hedging) && o.safetyNetEnabled() && len(defs) > 0 {
		reply = o.safetyNetSearch(ctx, system, userInput, reply)
	}

	o.history = append(o.history, protocol.Message{Role: protocol.RoleAssistant, Content: reply})
	return reply, nil
}

// retryAfterSearch handles the model hedging about live data right
// after a search returned results. One firm nudge, then take whatever
// comes back.
func (o *Orchestrator) retryAfterSearch(ctx context.Context, system, reply string) string {
	slog.Info("reply hedged after successful search, retrying")

	o.history = append(o.history, protocol.Message{Role: protocol.RoleUser, Content: postSearchDirective})
	resp, err := o.llm.Generate(ctx, llms.Request{System: system, Messages: o.history})
	o.history = o.history[:len(o.history)-1]

	if err != nil || resp.Text == "" {
		return reply
	}
	return protocol.StripThinkTags(resp.Text)
}

// safetyNetSearch handles the model hedging without ever trying the
// search tool: run the search on its behalf and regenerate with the
// results in context. The injected message exists only for the
// regeneration call; it never persists in history.
func (o *Orchestrator) safetyNetSearch(ctx context.Context, system, userInput, reply string) string {
	slog.Info("reply hedged without searching, engaging safety net")
	o.events.Emit(Event{Kind: EventStatus, Status: "searching"})

	query := o.extractSearchQuery(ctx, userInput)
	results := o.registry.Dispatch(ctx, "web_search", map[string]interface{}{"query": query})

	o.history = append(o.history, protocol.Message{
		Role:    protocol.RoleAssistant,
		Content: "I searched the web and found:\n\n" + results + "\nI'll use these results to answer.",
	})
	resp, err := o.llm.Generate(ctx, llms.Request{System: system, Messages: o.history})
	o.history = o.history[:len(o.history)-1]

	if err != nil || resp.Text == "" {
		return reply
	}
	return protocol.StripThinkTags(resp.Text)
}

// extractSearchQuery asks the model to distill the user's words into a
// search query. Falls back to the raw input when the answer is too
// short to be one.
func (o *Orchestrator) extractSearchQuery(ctx context.Context, userInput string) string {
	resp, err := o.llm.Generate(ctx, llms.Request{
		System:          searchClassifierPrompt,
		Messages:        []protocol.Message{{Role: protocol.RoleUser, Content: userInput}},
		DisableThinking: true,
	})
	if err != nil {
		return userInput
	}
	query := strings.TrimSpace(protocol.StripThinkTags(resp.Text))
	if len(query) > 5 {
		return query
	}
	return userInput
}
