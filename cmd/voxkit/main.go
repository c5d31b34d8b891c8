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

// Command voxkit runs the conversational core of the voice assistant
// as a terminal REPL.
//
// Usage:
//
//	voxkit chat
//	voxkit chat --provider ollama --model qwen2.5:14b
//	voxkit chat --config voxkit.yaml --watch
//	voxkit quota
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"

	"github.com/voxkit/voxkit/pkg/agent"
	"github.com/voxkit/voxkit/pkg/assistant"
	"github.com/voxkit/voxkit/pkg/config"
	"github.com/voxkit/voxkit/pkg/logger"
	"github.com/voxkit/voxkit/pkg/observability"
	"github.com/voxkit/voxkit/pkg/tools"
)

// CLI defines the command-line interface.
type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	Chat    ChatCmd    `cmd:"" default:"withargs" help:"Start an interactive chat session."`
	Quota   QuotaCmd   `cmd:"" help:"Show remaining search provider quota."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFormat string `help:"Log format (simple or verbose)." default:"simple"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("voxkit version %s\n", version)
	return nil
}

// ChatCmd starts the interactive REPL.
type ChatCmd struct {
	Provider string `help:"LLM provider (anthropic, openai, ollama). Overrides config."`
	Model    string `help:"Model name. Overrides config."`
	Watch    bool   `help:"Watch the config file for changes and apply them live."`
	Timezone string `help:"IANA timezone for instant time/date answers."`
}

func (c *ChatCmd) Run(cli *CLI) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println()
		cancel()
	}()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.Provider != "" {
		cfg.LLM.Provider = c.Provider
		cfg.LLM.Model = c.Model
		cfg.LLM.SetDefaults()
	} else if c.Model != "" {
		cfg.LLM.Model = c.Model
	}

	tp, err := observability.InitGlobalTracer(ctx, cfg.Tracing)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else if shutdown, ok := tp.(interface{ Shutdown(context.Context) error }); ok {
		defer shutdown.Shutdown(context.Background())
	}

	a, err := assistant.New(cfg)
	if err != nil {
		return err
	}
	if c.Timezone != "" {
		a.SetClientTimezone(c.Timezone)
	}

	if c.Watch && cli.Config != "" {
		go watchConfig(ctx, cli.Config, a)
	}

	go renderEvents(a.Events())

	fmt.Printf("voxkit ready (%s). Type 'clear' to reset, 'quit' to exit.\n", cfg.LLM.Provider)
	return repl(ctx, a)
}

func repl(ctx context.Context, a *assistant.Assistant) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "clear":
			a.ClearHistory()
			fmt.Println("History cleared.")
			continue
		}

		reply, ok, err := a.Respond(ctx, input, assistant.Signals{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if !ok {
			continue
		}
		fmt.Println(reply)
	}
}

// renderEvents prints progress notifications dimmed above the prompt.
func renderEvents(sink *agent.Sink) {
	const dim, reset = "\033[2m", "\033[0m"
	for e := range sink.Events() {
		switch e.Kind {
		case agent.EventNarration:
			fmt.Printf("%s… %s%s\n", dim, e.Text, reset)
		case agent.EventWorkflowStart:
			fmt.Printf("%s[workflow: %s]%s\n", dim, e.WorkflowName, reset)
		case agent.EventWorkflowState:
			if e.StepState == "active" && e.TotalSteps > 0 {
				fmt.Printf("%s  step %d/%d: %s%s\n", dim, e.Step, e.TotalSteps, e.Text, reset)
			}
		case agent.EventToolCall:
			fmt.Printf("%s  [%s]%s\n", dim, e.Tool, reset)
		}
	}
}

// watchConfig reapplies chat settings when the config file changes.
func watchConfig(ctx context.Context, path string, a *assistant.Assistant) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("config watch unavailable", "error", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		slog.Warn("config watch unavailable", "path", path, "error", err)
		return
	}
	slog.Info("watching config", "path", path)

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Editors fire bursts of events per save.
			if time.Since(last) < 500*time.Millisecond {
				continue
			}
			last = time.Now()

			cfg, err := config.Load(path)
			if err != nil {
				slog.Warn("config reload failed", "error", err)
				continue
			}
			a.UpdateConfig(cfg)
			slog.Info("config reloaded", "path", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watch error", "error", err)
		}
	}
}

// QuotaCmd reports remaining search budget per provider.
type QuotaCmd struct{}

func (c *QuotaCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	search := tools.NewSearchTool(cfg.Search)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, q := range search.QuotaStatus(ctx) {
		switch {
		case q.Unlimited:
			fmt.Printf("%-12s unlimited\n", q.Name)
		case q.Remaining < 0:
			fmt.Printf("%-12s unknown (no searches made yet)\n", q.Name)
		case q.Limit > 0:
			fmt.Printf("%-12s %d of %d remaining\n", q.Name, q.Remaining, q.Limit)
		default:
			fmt.Printf("%-12s %d remaining\n", q.Name, q.Remaining)
		}
	}
	return nil
}

func main() {
	_ = godotenv.Load()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("voxkit"),
		kong.Description("voxkit - conversational core for a voice assistant"),
		kong.UsageOnError(),
	)

	level, _ := logger.ParseLevel(cli.LogLevel)
	logger.Init(level, os.Stderr, cli.LogFormat)

	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
