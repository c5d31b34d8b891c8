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

const (
	anthropicBaseURL    = "https://api.anthropic.com"
	anthropicAPIVersion = "2023-06-01"
)

// AnthropicProvider implements LLM for the Anthropic Messages API.
type AnthropicProvider struct {
	cfg        config.LLMConfig
	baseURL    string
	httpClient HTTPClient
	tracer     trace.Tracer
}

func NewAnthropicProvider(cfg config.LLMConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic provider requires an API key")
	}
	return &AnthropicProvider{
		cfg:     cfg,
		baseURL: anthropicBaseURL,
		httpClient: httpclient.New(
			httpclient.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
			httpclient.WithMaxRetries(cfg.MaxRetries),
			httpclient.WithHeaderParser(httpclient.ParseAnthropicHeaders),
		),
		tracer: observability.GetTracer("voxkit.llms"),
	}, nil
}

func (p *AnthropicProvider) GetProvider() string { return config.ProviderAnthropic }
func (p *AnthropicProvider) GetModel() string    { return p.cfg.Model }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
}

type anthropicMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string or []anthropicContent
}

type anthropicContent struct {
	Type      string                 `json:"type"`
	Text      string                 `json:"text,omitempty"`
	ID        string                 `json:"id,omitempty"`
	Name      string                 `json:"name,omitempty"`
	Input     map[string]interface{} `json:"input,omitempty"`
	ToolUseID string                 `json:"tool_use_id,omitempty"`
	Content   string                 `json:"content,omitempty"`
}

type anthropicTool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

type anthropicResponse struct {
	Content    []anthropicContent `json:"content"`
	StopReason string             `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := p.tracer.Start(ctx, observability.SpanLLMRequest,
		trace.WithAttributes(
			attribute.String(observability.AttrProvider, p.GetProvider()),
			attribute.String(observability.AttrLLMModel, p.cfg.Model),
		))
	defer span.End()

	body, err := json.Marshal(p.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal anthropic request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

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

	var apiResp anthropicResponse
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

	result := &Response{
		StopReason: apiResp.StopReason,
		Usage: Usage{
			InputTokens:  apiResp.Usage.InputTokens,
			OutputTokens: apiResp.Usage.OutputTokens,
		},
	}
	for _, block := range apiResp.Content {
		switch block.Type {
		case "text":
			result.Text += block.Text
		case "tool_use":
			result.ToolCalls = append(result.ToolCalls, protocol.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: block.Input,
			})
		}
	}

	span.SetAttributes(
		attribute.Int(observability.AttrLLMTokensInput, result.Usage.InputTokens),
		attribute.Int(observability.AttrLLMTokensOutput, result.Usage.OutputTokens),
	)
	slog.Debug("anthropic response",
		"model", p.cfg.Model,
		"chars", len(result.Text),
		"tool_calls", len(result.ToolCalls),
		"stop", result.StopReason)

	return result, nil
}

func (p *AnthropicProvider) buildRequest(req Request) anthropicRequest {
	out := anthropicRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		System:    req.System,
	}

	for i := 0; i < len(req.Messages); {
		msg := req.Messages[i]
		if msg.HasToolCalls() {
			group, next := protocol.CollectGroup(req.Messages, i)
			out.Messages = append(out.Messages, anthropicToolResultMessages(group)...)
			i = next
			continue
		}
		out.Messages = append(out.Messages, anthropicMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
		i++
	}

	for _, tool := range req.Tools {
		out.Tools = append(out.Tools, anthropicTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Parameters,
		})
	}

	return out
}
