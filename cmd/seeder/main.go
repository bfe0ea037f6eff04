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


// Seeder loads a set of fictional companies with snapshot and metric
// history into a local database, so the API and CLI can be explored
// without any external service keys.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/harborview/signals/core"
	"github.com/harborview/signals/storage/badger"
)

type sampleCompany struct {
	name      string
	website   string
	summary   string
	sentiment core.Sentiment
	signal    int
	pmf       int
	hiring    string
	openRoles int
	freeTier  bool
	watchlist bool
}

var companies = []sampleCompany{
	{
		name:      "Lumenbase",
		website:   "https://lumenbase.example",
		summary:   "Serverless analytics warehouse targeting mid-market data teams.",
		sentiment: core.SentimentBullish,
		signal:    82, pmf: 8,
		hiring: "Aggressive", openRoles: 41, freeTier: true,
		watchlist: true,
	},
	{
		name:      "Ferrovia Systems",
		website:   "https://ferrovia.example",
		summary:   "Rail logistics optimization platform with slowing enterprise traction.",
		sentiment: core.SentimentNeutral,
		signal:    48, pmf: 5,
		hiring: "Slow", openRoles: 6, freeTier: false,
	},
	{
		name:      "Quietwire",
		website:   "https://quietwire.example",
		summary:   "Encrypted messaging for regulated industries, losing ground to incumbents.",
		sentiment: core.SentimentBearish,
		signal:    23, pmf: 3,
		hiring: "Freeze", openRoles: 0, freeTier: false,
	},
	{
		name:      "Petalstack",
		website:   "https://petalstack.example",
		summary:   "Headless commerce APIs with strong developer adoption and a free tier.",
		sentiment: core.SentimentBullish,
		signal:    74, pmf: 7,
		hiring: "Active", openRoles: 18, freeTier: true,
		watchlist: true,
	},
}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	dbPath := flag.String("db", "./signals_db", "Path to BadgerDB database directory")
	history := flag.Int("history", 7, "Days of snapshot and metric history per company")
	flag.Parse()

	repos, backend, err := openRepositories(*dbPath)
	if err != nil {
		slog.Error("error opening database", "err", err)
		os.Exit(1)
	}
	defer backend.Close()
	defer repos.metrics.Close()
	defer repos.snapshots.Close()

	ctx := context.Background()
	for _, company := range companies {
		if err := seed(ctx, repos, company, *history); err != nil {
			slog.Error("error seeding company", "name", company.name, "err", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seeded %d companies with %d days of history into %s\n", len(companies), *history, *dbPath)
}

type repositories struct {
	profiles  *badger.ProfileRepository
	snapshots *badger.SnapshotRepository
	metrics   *badger.MetricRepository
}

func openRepositories(path string) (*repositories, *badger.Backend, error) {
	backend, err := badger.OpenBackend(path, false)
	if err != nil {
		return nil, nil, err
	}

	snapshots, err := badger.NewSnapshotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	metrics, err := badger.NewMetricRepository(backend)
	if err != nil {
		snapshots.Close()
		backend.Close()
		return nil, nil, err
	}

	return &repositories{
		profiles:  badger.NewProfileRepository(backend),
		snapshots: snapshots,
		metrics:   metrics,
	}, backend, nil
}

func seed(ctx context.Context, repos *repositories, company sampleCompany, historyDays int) error {
	slug := core.Slugify(company.name)
	analysis := core.Analysis{
		Name:    company.name,
		Summary: company.summary,
		Website: company.website,
		Metrics: core.AnalysisMetrics{
			Sentiment:      company.sentiment,
			SignalStrength: company.signal,
			PMFScore:       company.pmf,
		},
	}

	now := time.Now().UTC()
	if _, err := repos.profiles.UpsertProfile(ctx, &core.CompanyProfile{
		Slug:        slug,
		Name:        company.name,
		Website:     company.website,
		Description: company.summary,
		Analysis:    analysis,
		Monitoring:  core.DefaultMonitoring(now),
		CrawledAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return err
	}

	if company.watchlist {
		if err := repos.profiles.SetWatchlist(ctx, slug, true); err != nil {
			return err
		}
	}

	// one snapshot and sample per day, oldest first, with a small
	// drift so the time series is not flat
	for day := historyDays - 1; day >= 0; day-- {
		ts := now.AddDate(0, 0, -day)
		drift := (historyDays - 1 - day) - (historyDays-1)/2

		daily := analysis
		daily.Metrics.SignalStrength = clamp(company.signal+drift*2, 0, 100)

		if err := repos.snapshots.AddSnapshot(ctx, &core.Snapshot{
			Slug:      slug,
			Analysis:  daily,
			Timestamp: ts,
		}); err != nil {
			return err
		}

		if err := repos.metrics.AddSample(ctx, &core.MetricSample{
			Slug:           slug,
			Timestamp:      ts,
			Sentiment:      company.sentiment,
			SignalStrength: daily.Metrics.SignalStrength,
			PMFScore:       company.pmf,
			HiringStatus:   company.hiring,
			OpenRoles:      company.openRoles,
			HasFreeTier:    company.freeTier,
		}); err != nil {
			return err
		}
	}

	slog.Info("seeded company", "slug", slug, "watchlist", company.watchlist)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
