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

// Package llms adapts the three supported model vendors (Anthropic,
// OpenAI-compatible, and Ollama) behind one interface. Each adapter
// converts the neutral protocol history into its vendor's wire format,
// including the tool-use handshake.
package llms

import (
	"context"
	"fmt"
	"net/http"

	"github.com/voxkit/voxkit/pkg/protocol"
)

// ToolDefinition describes a callable tool in the neutral (OpenAI-style)
// schema form. Adapters convert it to the vendor's tool format.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is a single model turn: text, zero or more tool calls, or both.
type Response struct {
	Text       string
	ToolCalls  []protocol.ToolCall
	StopReason string
	Usage      Usage
}

// Request is one generation call. DisableThinking asks reasoning models
// to skip their extended thinking phase (Ollama only; others ignore it).
type Request struct {
	System          string
	Messages        []protocol.Message
	Tools           []ToolDefinition
	DisableThinking bool
}

// LLM is the provider-neutral generation interface.
type LLM interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	GetProvider() string
	GetModel() string
}

// HTTPClient is satisfied by *httpclient.Client and by stubs in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type ErrorKind string

const (
	ErrAuth              ErrorKind = "auth"
	ErrRateLimited       ErrorKind = "rate_limited"
	ErrTransport         ErrorKind = "transport"
	ErrMalformedResponse ErrorKind = "malformed_response"
	ErrTimeout           ErrorKind = "timeout"
)

// ProviderError classifies a failed generation so callers can decide
// between retrying, failing over, and reporting.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func classifyStatus(provider string, statusCode int, body string) *ProviderError {
	kind := ErrTransport
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		kind = ErrAuth
	case statusCode == http.StatusTooManyRequests:
		kind = ErrRateLimited
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout:
		kind = ErrTimeout
	}
	return &ProviderError{
		Provider: provider,
		Kind:     kind,
		Message:  fmt.Sprintf("HTTP %d: %s", statusCode, body),
	}
}

func transportError(provider string, ctx context.Context, err error) *ProviderError {
	kind := ErrTransport
	if ctx.Err() == context.DeadlineExceeded {
		kind = ErrTimeout
	}
	return &ProviderError{Provider: provider, Kind: kind, Message: err.Error(), Err: err}
}
