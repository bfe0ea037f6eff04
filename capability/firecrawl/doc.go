// Package firecrawl implements the Crawler and DeepDiver capabilities
// against a Firecrawl-style HTTP API: v1 search/scrape for standard
// crawling and v2 async agent jobs for deep-dive missions.
package firecrawl
