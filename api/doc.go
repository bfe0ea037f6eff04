// Package api exposes the intelligence system over HTTP: asynchronous
// analyze and refresh jobs, company profiles with their snapshot and
// metric history, watchlist management, knowledge search and community
// discussion lookups. Long-running pipeline work is queued through the
// jobs package; clients poll the returned job ID for completion.
package api
