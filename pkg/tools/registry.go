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

package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/voxkit/voxkit/pkg/llms"
	"github.com/voxkit/voxkit/pkg/observability"
)

// DefaultAliases maps the names models actually emit to canonical tool
// names. Models trained on other toolkits call the search tool
// "gc_search" or just "search"; aliasing beats retraining.
func DefaultAliases() map[string]string {
	return map[string]string{
		"gc_search":      "web_search",
		"search":         "web_search",
		"web_search":     "web_search",
		"check_calendar": "check_calendar",
		"calendar":       "check_calendar",
		"get_calendar":   "check_calendar",
		"search_notes":   "search_notes",
		"notes":          "search_notes",
		"get_notes":      "search_notes",
	}
}

// Registry holds the registered tools, the alias table, and the
// disabled set. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]Tool
	aliases  map[string]string
	disabled map[string]bool
	tracer   trace.Tracer
}

func NewRegistry() *Registry {
	return &Registry{
		tools:    make(map[string]Tool),
		aliases:  DefaultAliases(),
		disabled: make(map[string]bool),
		tracer:   observability.GetTracer("voxkit.tools"),
	}
}

func (r *Registry) Register(tool Tool) error {
	name := tool.GetName()
	if name == "" {
		return fmt.Errorf("tool has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = tool
	// A tool answers to its own canonical name even without an alias entry.
	if _, ok := r.aliases[name]; !ok {
		r.aliases[name] = name
	}
	return nil
}

// AddAliases merges entries into the alias table, overriding existing
// ones.
func (r *Registry) AddAliases(aliases map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for alias, canonical := range aliases {
		r.aliases[alias] = canonical
	}
}

// SetDisabled replaces the disabled set. Disabled tools are hidden from
// schema export and refuse dispatch.
func (r *Registry) SetDisabled(names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled = make(map[string]bool, len(names))
	for _, name := range names {
		r.disabled[name] = true
	}
}

// Resolve maps a requested name (possibly an alias, any case) to its
// registered tool.
func (r *Registry) Resolve(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.aliases[strings.ToLower(name)]
	if !ok {
		canonical = name
	}
	if r.disabled[canonical] {
		return nil, fmt.Errorf("tool %q is disabled", canonical)
	}
	tool, ok := r.tools[canonical]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	return tool, nil
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// Definitions exports the schemas of all enabled tools, sorted by name
// so request payloads stay stable.
func (r *Registry) Definitions() []llms.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		if !r.disabled[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	defs := make([]llms.ToolDefinition, 0, len(names))
	for _, name := range names {
		info := r.tools[name].GetInfo()
		defs = append(defs, llms.ToolDefinition{
			Name:        info.Name,
			Description: info.Description,
			Parameters:  info.Parameters,
		})
	}
	return defs
}

// Dispatch resolves and executes a tool call, always returning text for
// the model: failures come back as readable error strings, never Go
// errors, so one bad call doesn't abort the chat loop.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]interface{}) string {
	ctx, span := r.tracer.Start(ctx, observability.SpanToolExecution,
		trace.WithAttributes(attribute.String(observability.AttrToolName, name)))
	defer span.End()

	tool, err := r.Resolve(name)
	if err != nil {
		slog.Warn("tool dispatch failed", "tool", name, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	start := time.Now()
	result, err := tool.Execute(ctx, args)
	elapsed := time.Since(start)

	if err != nil {
		slog.Warn("tool execution error", "tool", name, "error", err, "duration", elapsed)
		return fmt.Sprintf("Error executing '%s': %v", name, err)
	}
	if !result.Success {
		slog.Warn("tool reported failure", "tool", name, "error", result.Error)
		if result.Error != "" {
			return result.Error
		}
		return fmt.Sprintf("Error executing '%s'", name)
	}

	slog.Debug("tool executed", "tool", tool.GetName(), "duration", elapsed)
	return result.Content
}
