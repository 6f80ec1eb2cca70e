// Copyright 2026 Auditkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	evidenced "github.com/auditkit/evidenced"
	"github.com/auditkit/evidenced/ai"
)

func main() {
	app := &cli.App{
		Name:  "evidenced",
		Usage: "Evidence aggregation and relevance scoring for audit queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Process a natural language evidence query",
				ArgsUsage: "<query text>",
				Action:    queryCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "id",
						Usage: "Query ID (generated if omitted)",
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Force a query type (github, jira, document, mixed)",
					},
					&cli.StringSliceFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Explicit filter as key=value (repeatable)",
					},
				),
			},
			{
				Name:      "get",
				Usage:     "Print a stored query result as JSON",
				ArgsUsage: "<query_id>",
				Action:    getCommand,
				Flags:     serviceFlags(),
			},
			{
				Name:      "export",
				Usage:     "Export the evidence of a stored result to a file",
				ArgsUsage: "<query_id>",
				Action:    exportCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (json, csv, xlsx)",
						Value: "json",
					},
				),
			},
			{
				Name:      "report",
				Usage:     "Render an audit report for a stored result",
				ArgsUsage: "<query_id>",
				Action:    reportCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Report format (txt, json)",
						Value: "txt",
					},
				),
			},
			{
				Name:   "reports",
				Usage:  "List all stored results as report summaries",
				Action: reportsCommand,
				Flags:  serviceFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Data directory for results, documents, and exports",
			Value:   "data",
		},
		&cli.StringFlag{
			Name:  "documents",
			Usage: "Directory scanned for document evidence (default <data>/documents)",
		},
		&cli.StringFlag{
			Name:    "github-owner",
			Usage:   "GitHub repository owner",
			EnvVars: []string{"GITHUB_OWNER"},
		},
		&cli.StringFlag{
			Name:    "github-repo",
			Usage:   "GitHub repository name",
			EnvVars: []string{"GITHUB_REPO"},
		},
		&cli.StringFlag{
			Name:    "github-token",
			Usage:   "GitHub API token",
			EnvVars: []string{"GITHUB_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "jira-url",
			Usage:   "JIRA base URL",
			EnvVars: []string{"JIRA_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "jira-user",
			Usage:   "JIRA username",
			EnvVars: []string{"JIRA_USERNAME"},
		},
		&cli.StringFlag{
			Name:    "jira-token",
			Usage:   "JIRA API token",
			EnvVars: []string{"JIRA_API_TOKEN"},
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "Language model service host URL",
		},
		&cli.StringFlag{
			Name:  "ai-model",
			Usage: "Language model name",
		},
		&cli.StringFlag{
			Name:  "ai-fallback-model",
			Usage: "Fallback language model name",
		},
		&cli.StringFlag{
			Name:    "ai-token",
			Usage:   "Language model API token",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.IntFlag{
			Name:  "pool-size",
			Usage: "Worker pool size for concurrent source fan-out (0 = sequential)",
		},
	}
}

func buildService(c *cli.Context) (*evidenced.Service, error) {
	var aiOpts []ai.ConfigOption
	if host := c.String("ai-host"); host != "" {
		aiOpts = append(aiOpts, ai.WithHost(host))
	}
	if model := c.String("ai-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithModel(model))
	}
	if model := c.String("ai-fallback-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithFallbackModel(model))
	}
	if token := c.String("ai-token"); token != "" {
		aiOpts = append(aiOpts, ai.WithToken(token))
	}

	opts := []evidenced.ServiceOption{
		evidenced.WithAIConfig(ai.NewConfig(aiOpts...)),
	}
	if owner := c.String("github-owner"); owner != "" {
		opts = append(opts, evidenced.WithGitHub(owner, c.String("github-repo"), c.String("github-token")))
	}
	if baseURL := c.String("jira-url"); baseURL != "" {
		opts = append(opts, evidenced.WithJira(baseURL, c.String("jira-user"), c.String("jira-token")))
	}
	if dir := c.String("documents"); dir != "" {
		opts = append(opts, evidenced.WithDocumentsDir(dir))
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, evidenced.WithPoolSize(size))
	}

	return evidenced.NewService(c.String("data"), opts...)
}

func queryCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	filters, err := parseFilters(c.StringSlice("filter"))
	if err != nil {
		return err
	}

	service, err := buildService(c)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer service.Close()

	result, err := service.ProcessQuery(c.Context, c.String("id"), query, c.String("type"), filters)
	if err != nil {
		return err
	}

	fmt.Printf("Query ID: %s\n", result.QueryID)
	fmt.Printf("Evidence items: %d\n\n", result.EvidenceCount)
	fmt.Println(result.Summary)
	return nil
}

func getCommand(c *cli.Context) error {
	queryID := c.Args().First()
	if queryID == "" {
		return fmt.Errorf("query_id is required")
	}

	service, err := buildService(c)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer service.Close()

	result, err := service.Result(c.Context, queryID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func exportCommand(c *cli.Context) error {
	queryID := c.Args().First()
	if queryID == "" {
		return fmt.Errorf("query_id is required")
	}

	service, err := buildService(c)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer service.Close()

	path, err := service.Export(c.Context, queryID, c.String("format"))
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

func reportCommand(c *cli.Context) error {
	queryID := c.Args().First()
	if queryID == "" {
		return fmt.Errorf("query_id is required")
	}

	service, err := buildService(c)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer service.Close()

	content, err := service.Report(c.Context, queryID, c.String("format"))
	if err != nil {
		return err
	}

	fmt.Println(string(content))
	return nil
}

func reportsCommand(c *cli.Context) error {
	service, err := buildService(c)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer service.Close()

	summaries, err := service.Reports(c.Context)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No stored results.")
		return nil
	}

	for _, s := range summaries {
		fmt.Printf("%s  %s\n", s.ID, s.Title)
		fmt.Printf("    created: %s  evidence: %d  sources: %s\n",
			s.CreatedAt.Format("2006-01-02 15:04:05"), s.EvidenceCount, strings.Join(s.Sources, ", "))
	}
	return nil
}

// parseFilters converts key=value pairs into a filter map.
func parseFilters(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filters := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", pair)
		}
		filters[key] = value
	}
	return filters, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
