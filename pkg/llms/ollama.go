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

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/httpclient"
	"github.com/voxkit/voxkit/pkg/observability"
	"github.com/voxkit/voxkit/pkg/protocol"
)

// OllamaProvider implements LLM for a local Ollama server.
type OllamaProvider struct {
	cfg        config.LLMConfig
	httpClient HTTPClient
	tracer     trace.Tracer
}

func NewOllamaProvider(cfg config.LLMConfig) (*OllamaProvider, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("ollama provider requires a host")
	}
	return &OllamaProvider{
		cfg: cfg,
		httpClient: httpclient.New(
			httpclient.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
			httpclient.WithMaxRetries(cfg.MaxRetries),
		),
		tracer: observability.GetTracer("voxkit.llms"),
	}, nil
}

func (p *OllamaProvider) GetProvider() string { return config.ProviderOllama }
func (p *OllamaProvider) GetModel() string    { return p.cfg.Model }

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Tools    []openAITool    `json:"tools,omitempty"`
	Think    *bool           `json:"think,omitempty"`
}

type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
}

// ollamaToolCall carries arguments as a native JSON object, unlike the
// OpenAI string encoding.
type ollamaToolCall struct {
	Function struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	} `json:"function"`
}

type ollamaResponse struct {
	Message struct {
		Content   string           `json:"content"`
		ToolCalls []ollamaToolCall `json:"tool_calls"`
	} `json:"message"`
	DoneReason      string `json:"done_reason"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	Error           string `json:"error,omitempty"`
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := p.tracer.Start(ctx, observability.SpanLLMRequest,
		trace.WithAttributes(
			attribute.String(observability.AttrProvider, p.GetProvider()),
			attribute.String(observability.AttrLLMModel, p.cfg.Model),
		))
	defer span.End()

	body, err := json.Marshal(p.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.Host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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

	var apiResp ollamaResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, &ProviderError{
			Provider: p.GetProvider(),
			Kind:     ErrMalformedResponse,
			Message:  fmt.Sprintf("failed to decode response: %v", err),
			Err:      err,
		}
	}
	if apiResp.Error != "" {
		return nil, &ProviderError{
			Provider: p.GetProvider(),
			Kind:     ErrMalformedResponse,
			Message:  apiResp.Error,
		}
	}

	result := &Response{
		Text:       apiResp.Message.Content,
		StopReason: apiResp.DoneReason,
		Usage: Usage{
			InputTokens:  apiResp.PromptEvalCount,
			OutputTokens: apiResp.EvalCount,
		},
	}
	for _, tc := range apiResp.Message.ToolCalls {
		// Ollama assigns no call ids; synthesize stable ones so tool
		// results can be matched back in history.
		result.ToolCalls = append(result.ToolCalls, protocol.ToolCall{
			ID:        "call_" + uuid.NewString(),
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	span.SetAttributes(
		attribute.Int(observability.AttrLLMTokensInput, result.Usage.InputTokens),
		attribute.Int(observability.AttrLLMTokensOutput, result.Usage.OutputTokens),
	)
	slog.Debug("ollama response",
		"model", p.cfg.Model,
		"chars", len(result.Text),
		"tool_calls", len(result.ToolCalls))

	return result, nil
}

func (p *OllamaProvider) buildRequest(req Request) ollamaRequest {
	out := ollamaRequest{
		Model:  p.cfg.Model,
		Stream: false,
	}
	if req.DisableThinking {
		think := false
		out.Think = &think
	}

	if req.System != "" {
		out.Messages = append(out.Messages, ollamaMessage{
			Role:    "system",
			Content: req.System,
		})
	}

	for i := 0; i < len(req.Messages); {
		msg := req.Messages[i]
		if msg.HasToolCalls() {
			group, next := protocol.CollectGroup(req.Messages, i)
			out.Messages = append(out.Messages, ollamaToolResultMessages(group)...)
			i = next
			continue
		}
		out.Messages = append(out.Messages, ollamaMessage{
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
