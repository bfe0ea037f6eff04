// Copyright 2026 Harborview Analytics
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


package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/harborview/signals"
	"github.com/harborview/signals/api"
	"github.com/harborview/signals/capability"
	"github.com/harborview/signals/jobs"
	"github.com/harborview/signals/knowledge"
	"github.com/harborview/signals/pipeline"
)

// capabilityFlags are the external service flags shared by every
// command that builds a System.
func capabilityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "crawler-key",
			Usage:   "Crawler service API key",
			EnvVars: []string{"SIGNALS_CRAWLER_KEY"},
		},
		&cli.StringFlag{
			Name:    "parser-key",
			Usage:   "Document parsing service API key",
			EnvVars: []string{"SIGNALS_PARSER_KEY"},
		},
		&cli.StringFlag{
			Name:    "llm-host",
			Usage:   "LLM service host URL",
			EnvVars: []string{"SIGNALS_LLM_HOST"},
		},
		&cli.StringFlag{
			Name:    "llm-key",
			Usage:   "LLM service API key",
			EnvVars: []string{"SIGNALS_LLM_KEY"},
		},
		&cli.StringFlag{
			Name:    "llm-model",
			Usage:   "LLM model name",
			EnvVars: []string{"SIGNALS_LLM_MODEL"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			EnvVars: []string{"SIGNALS_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"SIGNALS_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "mail-key",
			Usage:   "Mail service API key",
			EnvVars: []string{"SIGNALS_MAIL_KEY"},
		},
		&cli.StringFlag{
			Name:    "mail-from",
			Usage:   "Alert sender address",
			EnvVars: []string{"SIGNALS_MAIL_FROM"},
		},
	}
}

// buildConfig folds the CLI flags over the default capability config.
func buildConfig(c *cli.Context) *capability.Config {
	config := capability.DefaultConfig()
	if v := c.String("crawler-key"); v != "" {
		config.CrawlerKey = v
	}
	if v := c.String("parser-key"); v != "" {
		config.ParserKey = v
	}
	if v := c.String("llm-host"); v != "" {
		config.LLMHost = v
	}
	if v := c.String("llm-key"); v != "" {
		config.LLMKey = v
	}
	if v := c.String("llm-model"); v != "" {
		config.LLMModel = v
	}
	if v := c.String("embedding-host"); v != "" {
		config.EmbeddingHost = v
	}
	if v := c.String("embedding-model"); v != "" {
		config.EmbeddingModel = v
	}
	if v := c.String("mail-key"); v != "" {
		config.MailKey = v
	}
	if v := c.String("mail-from"); v != "" {
		config.MailFrom = v
	}
	config.Normalize()
	return config
}

func openSystem(c *cli.Context, extra ...signals.SystemOption) (*signals.System, error) {
	opts := append([]signals.SystemOption{
		signals.WithCapabilityConfig(buildConfig(c)),
	}, extra...)
	return signals.NewSystem(c.String("db"), opts...)
}

func serveCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	var pipelineOpts []pipeline.Option
	if path := c.String("missions"); path != "" {
		missions, err := pipeline.LoadMissions(path)
		if err != nil {
			return err
		}
		pipelineOpts = append(pipelineOpts, pipeline.WithMissions(missions))
	}

	orchestrator, err := sys.NewOrchestrator(pipelineOpts...)
	if err != nil {
		return err
	}

	jobRunner, jobStore, err := sys.NewJobRunner(jobs.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer jobRunner.Release()

	searcher, err := sys.NewSearcher()
	if err != nil {
		return err
	}

	server, err := api.NewServer(
		sys.ProfileRepository(),
		sys.SnapshotRepository(),
		sys.MetricRepository(),
		orchestrator,
		jobRunner,
		jobStore,
		searcher,
		api.WithDiscussions(sys.Discussions()),
		api.WithAlerts(sys.Alerts()),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, c.String("addr"))
}

func analyzeCommand(c *cli.Context) error {
	name := c.Args().First()
	url := c.String("url")
	docPath := c.String("doc")
	if name == "" && url == "" && docPath == "" {
		return fmt.Errorf("a company name, --url or --doc is required")
	}

	var extra []signals.SystemOption
	if c.Bool("local-pdf") {
		extra = append(extra, signals.WithLocalPDFParser())
	}
	sys, err := openSystem(c, extra...)
	if err != nil {
		return err
	}
	defer sys.Close()

	orchestrator, err := sys.NewOrchestrator()
	if err != nil {
		return err
	}

	req := &pipeline.Request{Name: name, URL: url}
	if docPath != "" {
		data, err := os.ReadFile(docPath)
		if err != nil {
			return err
		}
		req.Document = data
		req.DocumentName = filepath.Base(docPath)
	}

	result, err := orchestrator.Run(c.Context, req)
	if err != nil {
		return err
	}
	printProfile(result)
	return nil
}

func refreshCommand(c *cli.Context) error {
	slug := c.Args().First()
	if slug == "" {
		return fmt.Errorf("a company slug is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	orchestrator, err := sys.NewOrchestrator()
	if err != nil {
		return err
	}

	result, err := orchestrator.Refresh(c.Context, slug)
	if err != nil {
		return err
	}
	printProfile(result)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	searcher, err := sys.NewSearcher()
	if err != nil {
		return err
	}

	matches, err := searcher.Search(c.Context, c.String("company"), query, c.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(matches))
	for i, match := range matches {
		fmt.Printf("%d: [%s/%s %.3f] %s\n", i, match.Chunk.Slug, match.Chunk.Source, match.Score, match.Chunk.Text)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	profiles, err := sys.ProfileRepository().ListProfiles(c.Context, c.Bool("watchlist"))
	if err != nil {
		return err
	}

	for _, profile := range profiles {
		marker := " "
		if profile.Watchlist {
			marker = "*"
		}
		fmt.Printf("%s %-24s %-24s %s (%s %d/100)\n",
			marker, profile.Slug, profile.Name, profile.Website,
			profile.Analysis.Metrics.Sentiment, profile.Analysis.Metrics.SignalStrength)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	reembedder, err := sys.NewReembedder(&knowledge.ReembedConfig{
		MaxRetries: c.Int("max-retries"),
		RetryDelay: c.Duration("retry-delay"),
	})
	if err != nil {
		return err
	}

	report, err := reembedder.Run(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("Reembedded %d chunks in %d sets across %d companies (%s)\n",
		report.Chunks, report.ChunkSets, report.Companies, report.Elapsed.Round(time.Millisecond))
	return nil
}

func watchlistCommand(c *cli.Context) error {
	slug := c.Args().First()
	if slug == "" {
		return fmt.Errorf("a company slug is required")
	}

	sys, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	enabled := !c.Bool("remove")
	if err := sys.ProfileRepository().SetWatchlist(c.Context, slug, enabled); err != nil {
		return err
	}
	if enabled {
		fmt.Printf("%s added to watchlist\n", slug)
	} else {
		fmt.Printf("%s removed from watchlist\n", slug)
	}
	return nil
}

func missionsCommand(c *cli.Context) error {
	roster := pipeline.DefaultMissions()
	if path := c.String("file"); path != "" {
		loaded, err := pipeline.LoadMissions(path)
		if err != nil {
			return err
		}
		roster = loaded
	}

	for _, mission := range roster {
		fmt.Printf("%s (%s)\n", mission.Topic, mission.Name)
		fmt.Printf("  query:  %s\n", mission.SearchQuery)
		fmt.Printf("  prompt: %s\n", mission.Prompt)
	}
	return nil
}

func printProfile(result *pipeline.RunResult) {
	profile := result.Profile
	fmt.Printf("Slug:      %s\n", profile.Slug)
	fmt.Printf("Name:      %s\n", profile.Name)
	fmt.Printf("Website:   %s\n", profile.Website)
	fmt.Printf("Sentiment: %s\n", profile.Analysis.Metrics.Sentiment)
	fmt.Printf("Signal:    %d/100  PMF: %d/10\n",
		profile.Analysis.Metrics.SignalStrength, profile.Analysis.Metrics.PMFScore)
	fmt.Printf("Summary:   %s\n", profile.Analysis.Summary)
	if len(result.AgentsCompleted) > 0 {
		fmt.Printf("Agents:    %v\n", result.AgentsCompleted)
	}
	if profile.Analysis.Error != "" {
		fmt.Printf("Error:     %s\n", profile.Analysis.Error)
	}
	fmt.Printf("Elapsed:   %s\n", result.Elapsed.Round(10*time.Millisecond))
}
