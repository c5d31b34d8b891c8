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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/voxkit/voxkit/pkg/config"
)

const knowledgeTextMaxLen = 500

// KnowledgeTool queries an external RAG service over HTTP. The service
// indexes the user's repositories; results carry a filename whose first
// path segment is the repo name.
type KnowledgeTool struct {
	cfg    config.KnowledgeConfig
	client httpDoer
}

func NewKnowledgeTool(cfg config.KnowledgeConfig) *KnowledgeTool {
	return &KnowledgeTool{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}
}

func (t *KnowledgeTool) GetName() string { return "search_knowledge_base" }

func (t *KnowledgeTool) GetDescription() string {
	return "Search the user's personal knowledge base of code and notes. " +
		"Use for questions about the user's own projects."
}

func (t *KnowledgeTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What to look for",
				},
			},
			"required": []string{"query"},
		},
	}
}

type knowledgeArgs struct {
	Query string `mapstructure:"query"`
}

type knowledgeResult struct {
	Filename string  `json:"filename"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
}

func (t *KnowledgeTool) Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error) {
	start := time.Now()

	var params knowledgeArgs
	if err := mapstructure.Decode(args, &params); err != nil || params.Query == "" {
		return ToolResult{Success: false, Error: "Error: no query provided.", ToolName: t.GetName()}, nil
	}

	body, _ := json.Marshal(map[string]interface{}{
		"query": params.Query,
		"top_k": t.cfg.TopK,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.URL+"/query", bytes.NewReader(body))
	if err != nil {
		return ToolResult{Success: false, Error: "Error: " + err.Error(), ToolName: t.GetName()}, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		slog.Warn("knowledge base unreachable", "error", err)
		msg := "Knowledge base is currently unavailable (service not running)."
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			msg = "Knowledge base query timed out."
		}
		return ToolResult{Success: true, Content: msg, ToolName: t.GetName(), ExecutionTime: time.Since(start)}, nil
	}
	defer resp.Body.Close()

	var data struct {
		Results []knowledgeResult `json:"results"`
	}
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&data) != nil {
		return ToolResult{
			Success:       true,
			Content:       "Knowledge base is currently unavailable (service not running).",
			ToolName:      t.GetName(),
			ExecutionTime: time.Since(start),
		}, nil
	}

	if len(data.Results) == 0 {
		return ToolResult{
			Success:       true,
			Content:       fmt.Sprintf("No results found in knowledge base for '%s'.", params.Query),
			ToolName:      t.GetName(),
			ExecutionTime: time.Since(start),
		}, nil
	}

	// One hit per repo keeps the context diverse.
	seen := make(map[string]bool)
	var lines []string
	n := 0
	for _, r := range data.Results {
		repo := r.Filename
		if idx := strings.Index(repo, "/"); idx >= 0 {
			repo = repo[:idx]
		}
		if seen[repo] {
			continue
		}
		seen[repo] = true
		n++

		text := strings.TrimSpace(r.Text)
		if len(text) > knowledgeTextMaxLen {
			text = text[:knowledgeTextMaxLen] + "..."
		}
		lines = append(lines, fmt.Sprintf("%d. %s (score: %.2f)", n, r.Filename, r.Score))
		if t.cfg.GitHubOwner != "" {
			lines = append(lines, fmt.Sprintf("   GitHub: https://github.com/%s/%s", t.cfg.GitHubOwner, repo))
		}
		lines = append(lines, "   "+text)
	}

	return ToolResult{
		Success:       true,
		Content:       strings.Join(lines, "\n"),
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
	}, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout() || errors.Is(err, os.ErrDeadlineExceeded)
}
