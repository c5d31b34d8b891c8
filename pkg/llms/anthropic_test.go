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

package llms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/httpclient"
	"github.com/voxkit/voxkit/pkg/observability"
	"github.com/voxkit/voxkit/pkg/protocol"
)

func newTestAnthropic(baseURL string) *AnthropicProvider {
	return &AnthropicProvider{
		cfg: config.LLMConfig{
			Provider:  config.ProviderAnthropic,
			Model:     "claude-haiku-4-5-20251001",
			APIKey:    "sk-ant-test",
			MaxTokens: 300,
		},
		baseURL: baseURL,
		httpClient: httpclient.New(
			httpclient.WithMaxRetries(0),
			httpclient.WithBaseDelay(time.Millisecond),
		),
		tracer: observability.GetTracer("test"),
	}
}

func TestAnthropicGenerateText(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]interface{}{
			"content":     []map[string]interface{}{{"type": "text", "text": "It's sunny."}},
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 12, "output_tokens": 5},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := newTestAnthropic(server.URL)
	resp, err := p.Generate(context.Background(), Request{
		System:   "You are a helpful voice assistant.",
		Messages: []protocol.Message{{Role: protocol.RoleUser, Content: "weather?"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "It's sunny.", resp.Text)
	assert.Empty(t, resp.ToolCalls)
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, "You are a helpful voice assistant.", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestAnthropicGenerateToolUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": "Let me check."},
				{"type": "tool_use", "id": "toolu_01", "name": "web_search",
					"input": map[string]interface{}{"query": "weather austin"}},
			},
			"stop_reason": "tool_use",
			"usage":       map[string]int{"input_tokens": 20, "output_tokens": 15},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := newTestAnthropic(server.URL)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []protocol.Message{{Role: protocol.RoleUser, Content: "weather?"}},
		Tools: []ToolDefinition{{
			Name:        "web_search",
			Description: "Search the web",
			Parameters:  map[string]interface{}{"type": "object"},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Let me check.", resp.Text)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "toolu_01", resp.ToolCalls[0].ID)
	assert.Equal(t, "web_search", resp.ToolCalls[0].Name)
	assert.Equal(t, "weather austin", resp.ToolCalls[0].Arguments["query"])
}

func TestAnthropicToolGroupConversion(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		resp := map[string]interface{}{
			"content":     []map[string]interface{}{{"type": "text", "text": "done"}},
			"stop_reason": "end_turn",
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := newTestAnthropic(server.URL)
	_, err := p.Generate(context.Background(), Request{
		Messages: []protocol.Message{
			{Role: protocol.RoleUser, Content: "weather?"},
			{Role: protocol.RoleAssistant, ToolCalls: []protocol.ToolCall{
				{ID: "toolu_01", Name: "web_search", Arguments: map[string]interface{}{"query": "weather"}},
			}},
			{Role: protocol.RoleTool, ToolCallID: "toolu_01", Content: "sunny, 75F"},
		},
	})
	require.NoError(t, err)

	// user, assistant tool_use turn, user tool_result turn
	require.Len(t, gotReq.Messages, 3)
	assert.Equal(t, "assistant", gotReq.Messages[1].Role)
	assert.Equal(t, "user", gotReq.Messages[2].Role)

	blocks, ok := gotReq.Messages[2].Content.([]interface{})
	require.True(t, ok)
	require.Len(t, blocks, 1)
	block := blocks[0].(map[string]interface{})
	assert.Equal(t, "tool_result", block["type"])
	assert.Equal(t, "toolu_01", block["tool_use_id"])
	assert.Equal(t, "sunny, 75F", block["content"])
}

func TestAnthropicAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid key"}}`))
	}))
	defer server.Close()

	p := newTestAnthropic(server.URL)
	_, err := p.Generate(context.Background(), Request{
		Messages: []protocol.Message{{Role: protocol.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrAuth, perr.Kind)
	assert.Equal(t, config.ProviderAnthropic, perr.Provider)
}

func TestAnthropicRateLimitError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := newTestAnthropic(server.URL)
	_, err := p.Generate(context.Background(), Request{
		Messages: []protocol.Message{{Role: protocol.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrRateLimited, perr.Kind)
}

func TestAnthropicMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	p := newTestAnthropic(server.URL)
	_, err := p.Generate(context.Background(), Request{
		Messages: []protocol.Message{{Role: protocol.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrMalformedResponse, perr.Kind)
}
