package capability

import "time"

// CrawlResult holds the web intelligence gathered for one company.
// Empty sections mean that sub-fetch failed or returned nothing.
type CrawlResult struct {
	// ResolvedURL is the URL the crawl actually ran against.
	ResolvedURL string

	// Homepage is the extracted text of the company's main page.
	Homepage string

	// News is recent press and announcement text.
	News string

	// Market is competitive and market-context text.
	Market string
}

// Corpus concatenates the non-empty sections into one text body
// for downstream chunking and synthesis.
func (r *CrawlResult) Corpus() string {
	var out string
	for _, section := range []string{r.Homepage, r.News, r.Market} {
		if section == "" {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += section
	}
	return out
}

// ParsedDocument is the extracted content of one uploaded document.
type ParsedDocument struct {
	Filename string
	Text     string
	Pages    int
}

// Discussion is one public forum thread about a company.
type Discussion struct {
	ID           string
	Title        string
	URL          string
	Points       int
	CommentCount int
	CreatedAt    time.Time
}
