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


// Package capability defines the contracts for external collaborators
// used by the intelligence pipeline.
//
// The pipeline never talks to a provider API directly. It depends on the
// interfaces in this package, so providers can be swapped and tests can
// substitute deterministic stubs.
//
// # Contracts
//
//   - Crawler: web search, URL resolution and page crawling
//   - DeepDiver: agentic research missions returning schema-bound JSON
//   - DocumentParser: plain-text extraction from uploaded documents
//   - Completer: LLM completion in JSON and streaming modes
//   - Embedder: text-to-vector embedding
//   - DiscussionSearcher: public forum discussion search
//   - AlertSender: notification email delivery
//
// # Implementation Packages
//
//   - capability/firecrawl: Crawler and DeepDiver against a Firecrawl-style API
//   - capability/reducto: DocumentParser against a hosted parse API
//   - capability/docparse: local DocumentParser for PDF files
//   - capability/openrouter: Completer via OpenAI-compatible chat APIs
//   - capability/embed: Embedder via OpenAI-compatible embedding APIs
//   - capability/hn: DiscussionSearcher against the HN Algolia API
//   - capability/alert: AlertSender against a Resend-style mail API
//   - capability/mock: deterministic test doubles
//
// Public constructors in the implementation packages return the interface
// types above to keep callers decoupled from concrete providers. Mock
// constructors return concrete types so tests can inject behavior and
// assert on call counts.
package capability
