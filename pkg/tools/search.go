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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/httpclient"
	"github.com/voxkit/voxkit/pkg/observability"
)

const (
	serperEndpoint      = "https://google.serper.dev/search"
	tavilyEndpoint      = "https://api.tavily.com/search"
	tavilyUsageEndpoint = "https://api.tavily.com/usage"
	braveEndpoint       = "https://api.search.brave.com/res/v1/web/search"
	ddgEndpoint         = "https://html.duckduckgo.com/html/"

	snippetMaxLen   = 500
	quotaCacheTTL   = 5 * time.Minute
	quotaUnknown    = -1
	braveFactsLimit = 8
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	htmlEntityRe = regexp.MustCompile(`&#x[0-9a-fA-F]+;|&[a-z]+;`)

	ddgResultRe  = regexp.MustCompile(`(?s)<a[^>]+class="result__a"[^>]*href="([^"]+)"[^>]*>(.*?)</a>`)
	ddgSnippetRe = regexp.MustCompile(`(?s)class="result__snippet"[^>]*>(.*?)</a>`)
)

func cleanHTML(text string) string {
	text = htmlTagRe.ReplaceAllString(text, "")
	text = htmlEntityRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProviderQuota reports remaining budget for one search provider.
// Remaining and Limit are -1 when the provider doesn't say.
type ProviderQuota struct {
	Name      string
	Remaining int
	Limit     int
	Unlimited bool
}

// SearchTool searches the web through a fallback chain:
// Serper, then Tavily, then Brave, then DuckDuckGo. Providers without
// a configured key are skipped; DuckDuckGo needs none.
type SearchTool struct {
	cfg    config.SearchConfig
	client httpDoer
	tracer trace.Tracer

	serperURL      string
	tavilyURL      string
	tavilyUsageURL string
	braveURL       string
	ddgURL         string

	mu             sync.Mutex
	braveRemaining int
	tavilyQuota    ProviderQuota
	tavilyFetched  time.Time
}

func NewSearchTool(cfg config.SearchConfig) *SearchTool {
	return &SearchTool{
		cfg: cfg,
		client: httpclient.New(
			httpclient.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
			httpclient.WithMaxRetries(0),
		),
		tracer:         observability.GetTracer("voxkit.tools"),
		serperURL:      serperEndpoint,
		tavilyURL:      tavilyEndpoint,
		tavilyUsageURL: tavilyUsageEndpoint,
		braveURL:       braveEndpoint,
		ddgURL:         ddgEndpoint,
		braveRemaining: quotaUnknown,
	}
}

func (t *SearchTool) GetName() string { return "web_search" }

func (t *SearchTool) GetDescription() string {
	return "Search the web for current information. Use for weather, news, " +
		"prices, recent events, or anything requiring up-to-date data."
}

func (t *SearchTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search query",
				},
			},
			"required": []string{"query"},
		},
	}
}

// IsConfigured reports whether any provider can serve a search.
// DuckDuckGo needs no key, so this is always true.
func (t *SearchTool) IsConfigured() bool { return true }

type searchArgs struct {
	Query string `mapstructure:"query"`
}

func (t *SearchTool) Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error) {
	start := time.Now()

	var params searchArgs
	if err := mapstructure.Decode(args, &params); err != nil || params.Query == "" {
		return ToolResult{
			Success:  false,
			Error:    "Error: no search query provided.",
			ToolName: t.GetName(),
		}, nil
	}

	content := t.Search(ctx, params.Query)
	return ToolResult{
		Success:       true,
		Content:       content,
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
	}, nil
}

// Search runs the fallback chain and returns formatted results ready
// for model context. Never errors: total failure comes back as a
// readable message.
func (t *SearchTool) Search(ctx context.Context, query string) string {
	ctx, span := t.tracer.Start(ctx, observability.SpanSearch)
	defer span.End()

	type provider struct {
		name string
		run  func(context.Context, string) (string, error)
		key  string
	}
	chain := []provider{
		{"serper", t.searchSerper, t.cfg.SerperAPIKey},
		{"tavily", t.searchTavily, t.cfg.TavilyAPIKey},
		{"brave", t.searchBrave, t.cfg.BraveAPIKey},
		{"duckduckgo", t.searchDuckDuckGo, "unkeyed"},
	}

	for _, p := range chain {
		if p.key == "" {
			continue
		}
		result, err := p.run(ctx, query)
		if err != nil {
			slog.Warn("search provider failed", "provider", p.name, "error", err)
			continue
		}
		if result != "" {
			span.SetAttributes(attribute.String(observability.AttrSearchProvider, p.name))
			return result
		}
	}

	return fmt.Sprintf("Web search failed for '%s'. All search providers returned no results.", query)
}

func (t *SearchTool) postJSON(ctx context.Context, endpoint string, payload interface{}, headers map[string]string, out interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp, json.NewDecoder(resp.Body).Decode(out)
}

// searchSerper queries Serper.dev, which exposes Google's answer box
// and knowledge graph alongside organic results.
func (t *SearchTool) searchSerper(ctx context.Context, query string) (string, error) {
	var data struct {
		AnswerBox struct {
			Title   string        `json:"title"`
			Answer  string        `json:"answer"`
			Snippet string        `json:"snippet"`
			List    []interface{} `json:"list"`
		} `json:"answerBox"`
		KnowledgeGraph struct {
			Title       string            `json:"title"`
			Type        string            `json:"type"`
			Description string            `json:"description"`
			Attributes  map[string]string `json:"attributes"`
		} `json:"knowledgeGraph"`
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}

	_, err := t.postJSON(ctx, t.serperURL,
		map[string]interface{}{"q": query, "num": t.cfg.MaxResults},
		map[string]string{"X-API-KEY": t.cfg.SerperAPIKey},
		&data)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("Web search results for '%s':", query)}

	ab := data.AnswerBox
	hasAnswerBox := ab.Title != "" || ab.Answer != "" || ab.Snippet != "" || len(ab.List) > 0
	if hasAnswerBox {
		if ab.Title != "" {
			lines = append(lines, "Featured: "+ab.Title)
		}
		if ab.Answer != "" {
			lines = append(lines, "  "+ab.Answer)
		}
		if snippet := cleanHTML(ab.Snippet); snippet != "" {
			lines = append(lines, "  "+truncate(snippet, snippetMaxLen))
		}
		for i, item := range ab.List {
			if i >= 10 {
				break
			}
			lines = append(lines, "  - "+cleanHTML(fmt.Sprintf("%v", item)))
		}
	}

	kg := data.KnowledgeGraph
	hasKG := kg.Title != ""
	if hasKG {
		header := "Knowledge Graph: " + kg.Title
		if kg.Type != "" {
			header += " (" + kg.Type + ")"
		}
		lines = append(lines, header)
		if desc := cleanHTML(kg.Description); desc != "" {
			lines = append(lines, "  "+truncate(desc, snippetMaxLen))
		}
		for key, val := range kg.Attributes {
			lines = append(lines, "  "+key+": "+val)
		}
	}

	results := data.Organic
	if len(results) > t.cfg.MaxResults {
		results = results[:t.cfg.MaxResults]
	}
	if len(results) == 0 && !hasAnswerBox && !hasKG {
		return "", nil
	}

	for i, r := range results {
		title := cleanHTML(r.Title)
		if title == "" {
			title = "No title"
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, title, r.Link))
		if snippet := truncate(cleanHTML(r.Snippet), snippetMaxLen); snippet != "" {
			lines = append(lines, "   "+snippet)
		}
	}

	slog.Info("serper search", "results", len(results), "query", truncate(query, 60))
	return strings.Join(lines, "\n"), nil
}

// searchTavily queries Tavily, which can return a direct answer for
// factual queries.
func (t *SearchTool) searchTavily(ctx context.Context, query string) (string, error) {
	var data struct {
		Answer  string `json:"answer"`
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}

	_, err := t.postJSON(ctx, t.tavilyURL,
		map[string]interface{}{
			"query":          query,
			"max_results":    t.cfg.MaxResults,
			"include_answer": true,
		},
		map[string]string{"X-API-Key": t.cfg.TavilyAPIKey},
		&data)
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("Web search results for '%s':", query)}
	if data.Answer != "" {
		lines = append(lines, "Direct answer: "+data.Answer, "")
	}

	results := data.Results
	if len(results) > t.cfg.MaxResults {
		results = results[:t.cfg.MaxResults]
	}
	if len(results) == 0 && data.Answer == "" {
		return "", nil
	}

	for i, r := range results {
		title := cleanHTML(r.Title)
		if title == "" {
			title = "No title"
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, title, r.URL))
		if snippet := truncate(cleanHTML(r.Content), snippetMaxLen); snippet != "" {
			lines = append(lines, "   "+snippet)
		}
	}

	slog.Info("tavily search", "results", len(results), "query", truncate(query, 60))
	return strings.Join(lines, "\n"), nil
}

// searchBrave queries the Brave Search API and captures the remaining
// request budget from response headers for QuotaStatus.
func (t *SearchTool) searchBrave(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf("%s?q=%s&count=%d", t.braveURL, url.QueryEscape(query), t.cfg.MaxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Subscription-Token", t.cfg.BraveAPIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if remaining := resp.Header.Get("x-ratelimit-remaining"); remaining != "" {
		if n, err := strconv.Atoi(remaining); err == nil {
			t.mu.Lock()
			t.braveRemaining = n
			t.mu.Unlock()
		}
	}

	var data struct {
		Infobox struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Facts       []struct {
				Label string `json:"label"`
				Value string `json:"value"`
			} `json:"facts"`
		} `json:"infobox"`
		Web struct {
			Results []struct {
				Title         string   `json:"title"`
				URL           string   `json:"url"`
				Description   string   `json:"description"`
				ExtraSnippets []string `json:"extra_snippets"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("Web search results for '%s':", query)}

	hasInfobox := data.Infobox.Title != ""
	if hasInfobox {
		lines = append(lines, "Infobox: "+data.Infobox.Title)
		if desc := cleanHTML(data.Infobox.Description); desc != "" {
			lines = append(lines, "  "+truncate(desc, snippetMaxLen))
		}
		for i, fact := range data.Infobox.Facts {
			if i >= braveFactsLimit {
				break
			}
			lines = append(lines, "  "+fact.Label+": "+cleanHTML(fact.Value))
		}
	}

	results := data.Web.Results
	if len(results) > t.cfg.MaxResults {
		results = results[:t.cfg.MaxResults]
	}
	if len(results) == 0 && !hasInfobox {
		return "", nil
	}

	for i, r := range results {
		title := cleanHTML(r.Title)
		if title == "" {
			title = "No title"
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, title, r.URL))
		if desc := truncate(cleanHTML(r.Description), snippetMaxLen); desc != "" {
			lines = append(lines, "   "+desc)
		}
		for j, extra := range r.ExtraSnippets {
			if j >= 2 {
				break
			}
			lines = append(lines, "   "+truncate(cleanHTML(extra), snippetMaxLen))
		}
	}

	slog.Info("brave search", "results", len(results), "query", truncate(query, 60))
	return strings.Join(lines, "\n"), nil
}

// searchDuckDuckGo scrapes the HTML endpoint. Last resort: no key, no
// quota, but also no structured data.
func (t *SearchTool) searchDuckDuckGo(ctx context.Context, query string) (string, error) {
	endpoint := t.ddgURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; voxkit)")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	links := ddgResultRe.FindAllStringSubmatch(string(page), t.cfg.MaxResults)
	snippets := ddgSnippetRe.FindAllStringSubmatch(string(page), t.cfg.MaxResults)
	if len(links) == 0 {
		return "", nil
	}

	lines := []string{fmt.Sprintf("Web search results for '%s':", query)}
	for i, link := range links {
		title := cleanHTML(link[2])
		if title == "" {
			title = "No title"
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, title, link[1]))
		if i < len(snippets) {
			if snippet := truncate(cleanHTML(snippets[i][1]), snippetMaxLen); snippet != "" {
				lines = append(lines, "   "+snippet)
			}
		}
	}

	slog.Info("duckduckgo search", "results", len(links), "query", truncate(query, 60))
	return strings.Join(lines, "\n"), nil
}

// QuotaStatus probes remaining budget for every provider in the chain
// concurrently. Tavily exposes a usage endpoint (cached for 5 minutes),
// Brave only reports through response headers on real searches, and
// DuckDuckGo is unlimited.
func (t *SearchTool) QuotaStatus(ctx context.Context) []ProviderQuota {
	var (
		mu     sync.Mutex
		quotas []ProviderQuota
	)
	g, ctx := errgroup.WithContext(ctx)

	if t.cfg.TavilyAPIKey != "" {
		g.Go(func() error {
			quota := t.tavilyQuotaStatus(ctx)
			mu.Lock()
			quotas = append(quotas, quota)
			mu.Unlock()
			return nil
		})
	}
	if t.cfg.BraveAPIKey != "" {
		g.Go(func() error {
			t.mu.Lock()
			remaining := t.braveRemaining
			t.mu.Unlock()
			mu.Lock()
			quotas = append(quotas, ProviderQuota{Name: "brave", Remaining: remaining, Limit: quotaUnknown})
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		mu.Lock()
		quotas = append(quotas, ProviderQuota{Name: "duckduckgo", Unlimited: true})
		mu.Unlock()
		return nil
	})

	_ = g.Wait()
	return quotas
}

func (t *SearchTool) tavilyQuotaStatus(ctx context.Context) ProviderQuota {
	t.mu.Lock()
	if time.Since(t.tavilyFetched) < quotaCacheTTL && !t.tavilyFetched.IsZero() {
		cached := t.tavilyQuota
		t.mu.Unlock()
		return cached
	}
	t.mu.Unlock()

	quota := ProviderQuota{Name: "tavily", Remaining: quotaUnknown, Limit: quotaUnknown}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.tavilyUsageURL, nil)
	if err != nil {
		return quota
	}
	req.Header.Set("X-API-Key", t.cfg.TavilyAPIKey)

	resp, err := t.client.Do(req)
	if err != nil {
		slog.Warn("tavily quota check failed", "error", err)
		return quota
	}
	defer resp.Body.Close()

	var data struct {
		TotalSearches int `json:"total_searches"`
		MonthlyLimit  int `json:"monthly_limit"`
	}
	if resp.StatusCode == http.StatusOK && json.NewDecoder(resp.Body).Decode(&data) == nil {
		if data.MonthlyLimit == 0 {
			data.MonthlyLimit = 1000
		}
		quota.Limit = data.MonthlyLimit
		quota.Remaining = data.MonthlyLimit - data.TotalSearches
	}

	t.mu.Lock()
	t.tavilyQuota = quota
	t.tavilyFetched = time.Now()
	t.mu.Unlock()
	return quota
}
