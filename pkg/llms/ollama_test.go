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

func newTestOllama(host string) *OllamaProvider {
	return &OllamaProvider{
		cfg: config.LLMConfig{
			Provider: config.ProviderOllama,
			Model:    "qwen2.5:14b",
			Host:     host,
		},
		httpClient: httpclient.New(
			httpclient.WithMaxRetries(0),
			httpclient.WithBaseDelay(time.Millisecond),
		),
		tracer: observability.GetTracer("test"),
	}
}

func TestOllamaGenerateText(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]interface{}{
			"message":           map[string]interface{}{"content": "hello"},
			"done_reason":       "stop",
			"prompt_eval_count": 10,
			"eval_count":        3,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := newTestOllama(server.URL)
	resp, err := p.Generate(context.Background(), Request{
		System:   "be brief",
		Messages: []protocol.Message{{Role: protocol.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.False(t, gotReq.Stream)
	assert.Nil(t, gotReq.Think)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestOllamaDisableThinking(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]interface{}{"content": "ok"},
		})
	}))
	defer server.Close()

	p := newTestOllama(server.URL)
	_, err := p.Generate(context.Background(), Request{
		Messages:        []protocol.Message{{Role: protocol.RoleUser, Content: "hi"}},
		DisableThinking: true,
	})
	require.NoError(t, err)

	require.NotNil(t, gotReq.Think)
	assert.False(t, *gotReq.Think)
}

func TestOllamaSynthesizesToolCallIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"message": map[string]interface{}{
				"content": "",
				"tool_calls": []map[string]interface{}{
					{"function": map[string]interface{}{
						"name":      "web_search",
						"arguments": map[string]interface{}{"query": "news"},
					}},
					{"function": map[string]interface{}{
						"name":      "check_calendar",
						"arguments": map[string]interface{}{},
					}},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := newTestOllama(server.URL)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []protocol.Message{{Role: protocol.RoleUser, Content: "news and calendar"}},
	})
	require.NoError(t, err)

	require.Len(t, resp.ToolCalls, 2)
	assert.NotEmpty(t, resp.ToolCalls[0].ID)
	assert.NotEmpty(t, resp.ToolCalls[1].ID)
	assert.NotEqual(t, resp.ToolCalls[0].ID, resp.ToolCalls[1].ID)
	assert.Equal(t, "web_search", resp.ToolCalls[0].Name)
}

func TestOllamaToolGroupConversion(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]interface{}{"content": "done"},
		})
	}))
	defer server.Close()

	p := newTestOllama(server.URL)
	_, err := p.Generate(context.Background(), Request{
		Messages: []protocol.Message{
			{Role: protocol.RoleUser, Content: "weather?"},
			{Role: protocol.RoleAssistant, ToolCalls: []protocol.ToolCall{
				{ID: "call_x", Name: "web_search", Arguments: map[string]interface{}{"query": "weather"}},
			}},
			{Role: protocol.RoleTool, ToolCallID: "call_x", Content: "sunny"},
		},
	})
	require.NoError(t, err)

	require.Len(t, gotReq.Messages, 3)
	assistant := gotReq.Messages[1]
	require.Len(t, assistant.ToolCalls, 1)
	assert.Equal(t, "web_search", assistant.ToolCalls[0].Function.Name)
	assert.Equal(t, "weather", assistant.ToolCalls[0].Function.Arguments["query"])

	toolMsg := gotReq.Messages[2]
	assert.Equal(t, "tool", toolMsg.Role)
	assert.Equal(t, "sunny", toolMsg.Content)
}

func TestOllamaServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer server.Close()

	p := newTestOllama(server.URL)
	_, err := p.Generate(context.Background(), Request{
		Messages: []protocol.Message{{Role: protocol.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)
}
