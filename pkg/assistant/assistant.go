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

package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/voxkit/voxkit/pkg/agent"
	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/llms"
	"github.com/voxkit/voxkit/pkg/tools"
	"github.com/voxkit/voxkit/pkg/workflow"
)

const defaultEventBuffer = 128

// Assistant wires the whole pipeline together: input filter, fast
// path, workflow routing, chat loop, tools.
type Assistant struct {
	cfg      *config.Config
	orch     *agent.Orchestrator
	runner   *workflow.Runner
	search   *tools.SearchTool
	events   *agent.Sink
	clientTZ string
	now      func() time.Time
}

// New assembles an assistant from config: provider, tool registry,
// orchestrator, workflow runner.
func New(cfg *config.Config) (*Assistant, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	llm, err := llms.New(cfg.LLM)
	if err != nil {
		return nil, err
	}

	registry := tools.NewRegistry()
	search := tools.NewSearchTool(cfg.Search)
	for _, tool := range []tools.Tool{
		search,
		tools.NewDateTimeTool(),
		tools.NewCalendarTool(),
		tools.NewKnowledgeTool(cfg.Knowledge),
	} {
		if err := registry.Register(tool); err != nil {
			return nil, fmt.Errorf("registering %s: %w", tool.GetName(), err)
		}
	}
	registry.AddAliases(cfg.Chat.ToolAliases)
	registry.SetDisabled(cfg.Chat.DisabledTools)

	events := agent.NewSink(defaultEventBuffer)
	orch := agent.NewOrchestrator(llm, registry, cfg.Chat, events)

	slog.Info("assistant ready",
		"provider", llm.GetProvider(),
		"model", llm.GetModel(),
	)

	return &Assistant{
		cfg:    cfg,
		orch:   orch,
		runner: workflow.NewRunner(orch),
		search: search,
		events: events,
		now:    time.Now,
	}, nil
}

// Events is the progress stream for a frontend.
func (a *Assistant) Events() *agent.Sink { return a.events }

// SetClientTimezone records the client's IANA timezone from its hello
// message; fast-path answers use it for local time.
func (a *Assistant) SetClientTimezone(tz string) { a.clientTZ = tz }

// SearchQuota reports remaining search-provider budget.
func (a *Assistant) SearchQuota(ctx context.Context) []tools.ProviderQuota {
	return a.search.QuotaStatus(ctx)
}

func (a *Assistant) ClearHistory() { a.orch.ClearHistory() }

// UpdateConfig applies changed chat settings at runtime, e.g. after a
// config file edit.
func (a *Assistant) UpdateConfig(cfg *config.Config) {
	cfg.SetDefaults()
	a.cfg = cfg
	a.orch.UpdateConfig(cfg.Chat)
}

// Respond runs one utterance through the pipeline. ok=false means the
// input was classified as noise and dropped; the frontend should stay
// silent rather than answer static.
func (a *Assistant) Respond(ctx context.Context, text string, sig Signals) (string, bool, error) {
	if quality := Classify(text, sig); quality != QualityValid {
		slog.Debug("input dropped", "quality", quality, "text", text)
		return "", false, nil
	}

	if reply, ok := TryFastPath(text, a.clientTZ, a.now()); ok {
		return reply, true, nil
	}

	reply, err := a.runner.Chat(ctx, text)
	if err != nil {
		return "", false, err
	}
	return reply, true, nil
}
