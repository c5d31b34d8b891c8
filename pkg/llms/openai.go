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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/httpclient"
	"github.com/voxkit/voxkit/pkg/observability"
	"github.com/voxkit/voxkit/pkg/protocol"
)

const openAIBaseURL = "https://api.openai.com"

// OpenAIProvider implements LLM for the OpenAI Chat Completions API and
// compatible servers.
type OpenAIProvider struct {
	cfg        config.LLMConfig
	baseURL    string
	httpClient HTTPClient
	tracer     trace.Tracer
}

func NewOpenAIProvider(cfg config.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires an API key")
	}
	return &OpenAIProvider{
		cfg:     cfg,
		baseURL: openAIBaseURL,
		httpClient: httpclient.New(
			httpclient.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
			httpclient.WithMaxRetries(cfg.MaxRetries),
			httpclient.WithHeaderParser(httpclient.ParseOpenAIHeaders),
		),
		tracer: observability.GetTracer("voxkit.llms"),
	}, nil
}

func (p *OpenAIProvider) GetProvider() string { return config.ProviderOpenAI }
func (p *OpenAIProvider) GetModel() string    { return p.cfg.Model }

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	Messages  []openAIMessage `json:"messages"`
	Tools     []openAITool    `json:"tools,omitempty"`
}

type openAIMessage struct {
	Role       string           `json:"role"`
	Content    interface{}      `json:"content"` // string or null alongside tool calls
	ToolCalls  []openAIToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

// openAIToolCall carries arguments as a JSON-encoded string, per the
// Chat Completions wire format.
type openAIToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type openAITool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		Parameters  map[string]interface{} `json:"parameters"`
	} `json:"function"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content   string           `json:"content"`
			ToolCalls []openAIToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := p.tracer.Start(ctx, observability.SpanLLMRequest,
		trace.WithAttributes(
			attribute.String(observability.AttrProvider, p.GetProvider()),
			attribute.String(observability.AttrLLMModel, p.cfg.Model),
		))
	defer span.End()

	body, err := json.Marshal(p.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openai request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create openai request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil && resp == nil {
		perr := transportError(p.GetProvider(), ctx, err)
		span.SetStatus(codes.Error, perr.Error())
		return nil, perr
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		perr := classifyStatus(p.GetProvider(), resp.StatusCode, string(raw))
		perr.Err = err
		span.SetStatus(codes.Error, perr.Error())
		return nil, perr
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, &ProviderError{
			Provider: p.GetProvider(),
			Kind:     ErrMalformedResponse,
			Message:  fmt.Sprintf("failed to decode response: %v", err),
			Err:      err,
		}
	}
	if apiResp.Error != nil {
		return nil, &ProviderError{
			Provider: p.GetProvider(),
			Kind:     ErrMalformedResponse,
			Message:  fmt.Sprintf("%s: %s", apiResp.Error.Type, apiResp.Error.Message),
		}
	}
	if len(apiResp.Choices) == 0 {
		return nil, &ProviderError{
			Provider: p.GetProvider(),
			Kind:     ErrMalformedResponse,
			Message:  "response has no choices",
		}
	}

	choice := apiResp.Choices[0]
	result := &Response{
		Text:       choice.Message.Content,
		StopReason: choice.FinishReason,
		Usage: Usage{
			InputTokens:  apiResp.Usage.PromptTokens,
			OutputTokens: apiResp.Usage.CompletionTokens,
		},
	}

	for _, tc := range choice.Message.ToolCalls {
		var args map[string]interface{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, &ProviderError{
					Provider: p.GetProvider(),
					Kind:     ErrMalformedResponse,
					Message:  fmt.Sprintf("tool call %s has malformed arguments: %v", tc.Function.Name, err),
					Err:      err,
				}
			}
		}
		result.ToolCalls = append(result.ToolCalls, protocol.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	span.SetAttributes(
		attribute.Int(observability.AttrLLMTokensInput, result.Usage.InputTokens),
		attribute.Int(observability.AttrLLMTokensOutput, result.Usage.OutputTokens),
	)
	slog.Debug("openai response",
		"model", p.cfg.Model,
		"chars", len(result.Text),
		"tool_calls", len(result.ToolCalls),
		"finish", result.StopReason)

	return result, nil
}

func (p *OpenAIProvider) buildRequest(req Request) openAIRequest {
	out := openAIRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
	}

	if req.System != "" {
		out.Messages = append(out.Messages, openAIMessage{
			Role:    "system",
			Content: req.System,
		})
	}

	for i := 0; i < len(req.Messages); {
		msg := req.Messages[i]
		if msg.HasToolCalls() {
			group, next := protocol.CollectGroup(req.Messages, i)
			out.Messages = append(out.Messages, openAIToolResultMessages(group)...)
			i = next
			continue
		}
		out.Messages = append(out.Messages, openAIMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
		i++
	}

	for _, tool := range req.Tools {
		t := openAITool{Type: "function"}
		t.Function.Name = tool.Name
		t.Function.Description = tool.Description
		t.Function.Parameters = tool.Parameters
		out.Tools = append(out.Tools, t)
	}

	return out
}
