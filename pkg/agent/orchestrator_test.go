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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/llms"
	"github.com/voxkit/voxkit/pkg/protocol"
)

// scriptedLLM returns canned responses in order and records every
// request it saw.
type scriptedLLM struct {
	responses []*llms.Response
	requests  []llms.Request
}

func (s *scriptedLLM) Generate(ctx context.Context, req llms.Request) (*llms.Response, error) {
	// Snapshot the messages: the orchestrator reuses its history slice's
	// backing array after the call, which would mutate the recorded request.
	msgs := make([]protocol.Message, len(req.Messages))
	copy(msgs, req.Messages)
	req.Messages = msgs
	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		return &llms.Response{Text: "out of script"}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedLLM) GetProvider() string { return "scripted" }
func (s *scriptedLLM) GetModel() string    { return "scripted" }

func textResp(text string) *llms.Response { return &llms.Response{Text: text} }

func callResp(name string, args map[string]interface{}) *llms.Response {
	return &llms.Response{ToolCalls: []protocol.ToolCall{{ID: "c1", Name: name, Arguments: args}}}
}

// recordingTools is a Dispatcher that answers every call with a fixed
// string.
type recordingTools struct {
	calls  []string
	result string
	defs   []llms.ToolDefinition
}

func newRecordingTools() *recordingTools {
	return &recordingTools{
		result: "Web search results for 'x':\n1. Hit (https://example.com)",
		defs:   []llms.ToolDefinition{{Name: "web_search"}, {Name: "get_current_datetime"}},
	}
}

func (r *recordingTools) Definitions() []llms.ToolDefinition { return r.defs }

func (r *recordingTools) Aliases() map[string]string {
	return map[string]string{"web_search": "web_search", "gc_search": "web_search", "search": "web_search"}
}

func (r *recordingTools) Dispatch(ctx context.Context, name string, args map[string]interface{}) string {
	r.calls = append(r.calls, name)
	return r.result
}

func newTestOrchestrator(llm *scriptedLLM, reg Dispatcher) *Orchestrator {
	return NewOrchestrator(llm, reg, config.ChatConfig{MaxIterations: 5, MaxHistory: 20}, nil)
}

func TestChatPlainAnswer(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{textResp("It's sunny.")}}
	reg := newRecordingTools()
	o := newTestOrchestrator(llm, reg)

	reply, err := o.Chat(context.Background(), "how's the weather?")
	require.NoError(t, err)
	assert.Equal(t, "It's sunny.", reply)
	assert.Empty(t, reg.calls)

	history := o.History()
	require.Len(t, history, 2)
	assert.Equal(t, protocol.RoleUser, history[0].Role)
	assert.Equal(t, "It's sunny.", history[1].Content)
}

func TestChatToolRoundTrip(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{
		callResp("web_search", map[string]interface{}{"query": "nvidia price 2026"}),
		textResp("NVIDIA trades at $190."),
	}}
	reg := newRecordingTools()
	o := newTestOrchestrator(llm, reg)

	reply, err := o.Chat(context.Background(), "nvidia stock price?")
	require.NoError(t, err)
	assert.Equal(t, "NVIDIA trades at $190.", reply)
	assert.Equal(t, []string{"web_search"}, reg.calls)

	// user, assistant+calls, tool result, final assistant
	history := o.History()
	require.Len(t, history, 4)
	assert.True(t, history[1].HasToolCalls())
	assert.Equal(t, protocol.RoleTool, history[2].Role)
	assert.Equal(t, "c1", history[2].ToolCallID)
}

func TestChatTextEmbeddedToolCall(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{
		textResp(`I'll look that up. gc_search({"query": "spacex launch"})`),
		textResp("The launch is Tuesday."),
	}}
	reg := newRecordingTools()
	o := newTestOrchestrator(llm, reg)

	reply, err := o.Chat(context.Background(), "when is the spacex launch?")
	require.NoError(t, err)
	assert.Equal(t, "The launch is Tuesday.", reply)
	assert.Equal(t, []string{"web_search"}, reg.calls)
}

func TestChatStripsThinkTags(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{
		textResp("<think>reasoning goes here</think>The answer is 42."),
	}}
	o := newTestOrchestrator(llm, newRecordingTools())

	reply, err := o.Chat(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "The answer is 42.", reply)
}

func TestChatLastIterationWithholdsTools(t *testing.T) {
	call := callResp("web_search", map[string]interface{}{"query": "loop"})
	llm := &scriptedLLM{responses: []*llms.Response{
		call, call, call, call, textResp("Final answer."),
	}}
	reg := newRecordingTools()
	o := newTestOrchestrator(llm, reg)

	reply, err := o.Chat(context.Background(), "keep searching")
	require.NoError(t, err)
	assert.Equal(t, "Final answer.", reply)

	require.Len(t, llm.requests, 5)
	for _, req := range llm.requests[:4] {
		assert.NotEmpty(t, req.Tools)
	}
	assert.Empty(t, llm.requests[4].Tools)
}

func TestChatExhaustionFallback(t *testing.T) {
	// Tool calls arrive even on the toolless final iteration.
	call := callResp("web_search", map[string]interface{}{"query": "loop"})
	llm := &scriptedLLM{responses: []*llms.Response{call, call, call, call, call}}
	o := newTestOrchestrator(llm, newRecordingTools())

	reply, err := o.Chat(context.Background(), "keep going")
	require.NoError(t, err)
	assert.Equal(t, "I wasn't able to complete that request.", reply)
}

func TestChatExhaustionKeepsPartialText(t *testing.T) {
	// Every iteration produced text alongside its tool calls; the last
	// of it beats the canned fallback when iterations run out.
	partial := &llms.Response{
		Text:      "Partial findings so far.",
		ToolCalls: []protocol.ToolCall{{ID: "c1", Name: "web_search", Arguments: map[string]interface{}{"query": "loop"}}},
	}
	llm := &scriptedLLM{responses: []*llms.Response{partial, partial, partial, partial, partial}}
	o := newTestOrchestrator(llm, newRecordingTools())

	reply, err := o.Chat(context.Background(), "keep going")
	require.NoError(t, err)
	assert.Equal(t, "Partial findings so far.", reply)
}

func TestSafetyNetSearch(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{
		textResp("I don't have access to real-time data."),
		textResp("weather in Austin today"), // query extraction
		textResp("It's 95F in Austin right now."),
	}}
	reg := newRecordingTools()
	o := newTestOrchestrator(llm, reg)

	reply, err := o.Chat(context.Background(), "Can you tell me the weather in Austin?")
	require.NoError(t, err)
	assert.Equal(t, "It's 95F in Austin right now.", reply)
	assert.Equal(t, []string{"web_search"}, reg.calls)

	// The injected context was visible to the regeneration call only;
	// history keeps just the user turn and the final reply.
	require.Len(t, llm.requests, 3)
	regenMsgs := llm.requests[2].Messages
	assert.Contains(t, regenMsgs[len(regenMsgs)-1].Content, "I searched the web and found:")

	history := o.History()
	require.Len(t, history, 2)
	assert.Equal(t, protocol.RoleUser, history[0].Role)
	assert.Equal(t, "It's 95F in Austin right now.", history[1].Content)
	for _, msg := range history {
		assert.NotContains(t, msg.Content, "I searched the web and found:")
	}
}

func TestSafetyNetShortQueryFallsBackToInput(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{
		textResp("As an AI, I cannot search."),
		textResp("ok"), // too short to be a query
		textResp("Here's what I found."),
	}}
	reg := newRecordingTools()
	o := newTestOrchestrator(llm, reg)

	_, err := o.Chat(context.Background(), "what's the S&P 500 at?")
	require.NoError(t, err)

	// The classifier reply was unusable, so the raw input is searched.
	require.Len(t, llm.requests, 3)
	assert.Equal(t, []string{"web_search"}, reg.calls)
}

func TestSafetyNetDisabled(t *testing.T) {
	off := false
	llm := &scriptedLLM{responses: []*llms.Response{
		textResp("I don't have access to real-time data."),
	}}
	reg := newRecordingTools()
	o := NewOrchestrator(llm, reg, config.ChatConfig{MaxIterations: 5, MaxHistory: 20, EnableSafetyNet: &off}, nil)

	reply, err := o.Chat(context.Background(), "weather?")
	require.NoError(t, err)
	assert.Equal(t, "I don't have access to real-time data.", reply)
	assert.Empty(t, reg.calls)
}

func TestRetryAfterSearchHedge(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{
		callResp("web_search", map[string]interface{}{"query": "bitcoin price"}),
		textResp("I don't have access to real-time data."),
		textResp("Bitcoin is at $120k."),
	}}
	reg := newRecordingTools()
	o := newTestOrchestrator(llm, reg)

	reply, err := o.Chat(context.Background(), "bitcoin price?")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin is at $120k.", reply)

	// The nudge was sent on the retry request but removed afterwards.
	require.Len(t, llm.requests, 3)
	retryMsgs := llm.requests[2].Messages
	assert.Contains(t, retryMsgs[len(retryMsgs)-1].Content, "You already searched the web")
	for _, msg := range o.History() {
		assert.NotContains(t, msg.Content, "You already searched the web")
	}
}

func TestClearHistory(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{textResp("hi"), textResp("hello again")}}
	o := newTestOrchestrator(llm, newRecordingTools())

	_, err := o.Chat(context.Background(), "hey")
	require.NoError(t, err)
	o.ClearHistory()
	assert.Empty(t, o.History())
}

func TestAppendExchange(t *testing.T) {
	o := newTestOrchestrator(&scriptedLLM{}, newRecordingTools())
	o.AppendExchange("compare nvidia and amd", "NVIDIA is bigger.")

	history := o.History()
	require.Len(t, history, 2)
	assert.Equal(t, protocol.RoleUser, history[0].Role)
	assert.Equal(t, "NVIDIA is bigger.", history[1].Content)
}

func TestUpdateConfigTrimsHistory(t *testing.T) {
	llm := &scriptedLLM{responses: []*llms.Response{
		textResp("1"), textResp("2"), textResp("3"),
	}}
	o := newTestOrchestrator(llm, newRecordingTools())
	for _, q := range []string{"a", "b", "c"} {
		_, err := o.Chat(context.Background(), q)
		require.NoError(t, err)
	}
	require.Len(t, o.History(), 6)

	o.UpdateConfig(config.ChatConfig{MaxIterations: 5, MaxHistory: 2})
	assert.Len(t, o.History(), 2)
}
