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


package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Mission describes one specialist deep-dive agent. Each mission hunts
// for a specific intelligence signal; the swarm runs them in parallel
// with the main crawl.
type Mission struct {
	// Name identifies the specialist, e.g. "talent_scout".
	Name string `toml:"name"`

	// Topic keys the mission's findings in a profile's AgentMetrics.
	Topic string `toml:"topic"`

	// SearchQuery seeds the agent's navigation; "{name}" is replaced
	// with the company name.
	SearchQuery string `toml:"search_query"`

	// Prompt is the mission instruction appended to the search query.
	Prompt string `toml:"prompt"`

	// Schema constrains the agent's JSON output.
	Schema map[string]any `toml:"schema"`
}

// FullPrompt renders the complete agent instruction for one company.
func (m *Mission) FullPrompt(companyName string) string {
	return strings.ReplaceAll(m.SearchQuery, "{name}", companyName) + ". " + m.Prompt
}

// DefaultMissions returns the built-in specialist roster.
func DefaultMissions() []Mission {
	return []Mission{
		{
			Name:        "talent_scout",
			Topic:       "hiring_velocity",
			SearchQuery: "{name} careers jobs open positions",
			Prompt: "Navigate to the careers or jobs page. " +
				"Count the total number of open positions. " +
				"Identify the top 3 departments that are hiring the most. " +
				"Determine if hiring is aggressive, active, slow, or frozen.",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"open_roles_count": map[string]any{
						"type":        "integer",
						"description": "Total number of open job positions",
					},
					"top_departments": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Top 3 departments with most openings",
					},
					"hiring_status": map[string]any{
						"type":        "string",
						"enum":        []string{"Aggressive", "Active", "Slow", "Freeze"},
						"description": "Overall hiring velocity assessment",
					},
				},
				"required": []string{"hiring_status"},
			},
		},
		{
			Name:        "tech_auditor",
			Topic:       "dev_velocity",
			SearchQuery: "{name} changelog api documentation updates",
			Prompt: "Find the developer changelog, release notes, or API documentation. " +
				"Extract the date of the most recent update or release. " +
				"Determine how frequently they ship updates (daily, weekly, monthly, or stale).",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"last_update_date": map[string]any{
						"type":        "string",
						"description": "Date of most recent update (YYYY-MM-DD or descriptive)",
					},
					"update_frequency": map[string]any{
						"type":        "string",
						"enum":        []string{"Daily", "Weekly", "Monthly", "Stale (>3mo)"},
						"description": "How often they release updates",
					},
					"latest_feature": map[string]any{
						"type":        "string",
						"description": "Name or description of the latest feature/update",
					},
				},
				"required": []string{"update_frequency"},
			},
		},
		{
			Name:        "pricing_analyst",
			Topic:       "pricing_model",
			SearchQuery: "{name} pricing plans cost",
			Prompt: "Navigate to the pricing page. " +
				"Check if there is a free tier or free trial. " +
				"Check if the Enterprise tier requires 'Contact Sales'. " +
				"Find the lowest paid plan price if visible. " +
				"Determine if they follow PLG (product-led growth), Enterprise-only, or Hybrid model.",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"has_free_tier": map[string]any{
						"type":        "boolean",
						"description": "Whether a free tier or free trial exists",
					},
					"is_enterprise_opaque": map[string]any{
						"type":        "boolean",
						"description": "Whether Enterprise pricing requires contacting sales",
					},
					"lowest_paid_price": map[string]any{
						"type":        "number",
						"description": "Lowest visible paid plan price per month in USD",
					},
					"pricing_strategy": map[string]any{
						"type":        "string",
						"enum":        []string{"PLG", "Hybrid", "Enterprise-Only"},
						"description": "Overall go-to-market pricing strategy",
					},
				},
				"required": []string{"has_free_tier"},
			},
		},
	}
}

// missionFile is the on-disk roster format.
type missionFile struct {
	Missions []Mission `toml:"mission"`
}

// LoadMissions reads a specialist roster from a TOML file. Every
// mission needs a topic and a prompt; the file replaces the default
// roster wholesale.
func LoadMissions(path string) ([]Mission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file missionFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing mission roster %s: %w", path, err)
	}
	if len(file.Missions) == 0 {
		return nil, fmt.Errorf("mission roster %s defines no missions", path)
	}
	for i, m := range file.Missions {
		if m.Topic == "" || m.Prompt == "" {
			return nil, fmt.Errorf("mission roster %s: mission %d needs topic and prompt", path, i)
		}
	}
	return file.Missions, nil
}
