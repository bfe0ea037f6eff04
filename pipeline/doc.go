// Package pipeline coordinates the full intelligence run for one
// company: a parallel ingestion stage (web crawl, document parse and
// a swarm of specialist research agents), a merge step that folds
// agent findings into the crawl corpus, and a parallel processing
// stage that synthesizes the analysis while indexing the corpus for
// retrieval. Results are persisted exactly once at the end of a run.
//
// Ingestion and processing sub-tasks degrade on failure instead of
// aborting: a run with zero usable source material still produces a
// profile carrying a fallback analysis.
package pipeline
