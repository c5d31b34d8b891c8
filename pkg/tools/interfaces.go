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

// Package tools implements the assistant's tool surface: the registry
// that resolves and dispatches calls, and the built-in tools (web
// search, date/time, calendar, knowledge base).
package tools

import (
	"context"
	"time"
)

// ToolInfo describes a tool for registration and schema export.
// Parameters is a JSON-schema object in the neutral form.
type ToolInfo struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolResult is the outcome of one execution. Error is a human-readable
// string fed back to the model, not a Go error.
type ToolResult struct {
	Success       bool
	Content       string
	Error         string
	ToolName      string
	ExecutionTime time.Duration
}

type Tool interface {
	GetInfo() ToolInfo
	GetName() string
	GetDescription() string
	Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error)
}
