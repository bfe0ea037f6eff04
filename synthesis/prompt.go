package synthesis

import (
	"fmt"
	"strings"
)

const (
	// Context budgets keep the prompt inside small-model windows. Web
	// text crowds out the document if both run long, so each gets its
	// own cap.
	webBudget = 12000
	docBudget = 4000
)

// buildAnalysisPrompt assembles the single-shot analysis prompt from
// whatever material the pipeline gathered.
func buildAnalysisPrompt(in *Input) string {
	var sections []string
	if in.WebCorpus != "" {
		sections = append(sections, "=== WEB DATA ===\n"+truncate(in.WebCorpus, webBudget))
	}
	if in.DocumentText != "" {
		sections = append(sections, "=== DOCUMENT ===\n"+truncate(in.DocumentText, docBudget))
	}

	contextBlock := "No data available."
	if len(sections) > 0 {
		contextBlock = strings.Join(sections, "\n\n")
	}

	return fmt.Sprintf(`Analyze the following data for %s.

DATA:
%s

TASK:
Return a JSON object with the following structure:
{
    "name": "Company Name",
    "summary": "2-3 sentence company description and value proposition",
    "metrics": {
        "sentiment": "Bullish" | "Bearish" | "Neutral",
        "signal_strength": 0-100 (integer representing confidence/strength of signals),
        "pmf_score": 1-10 (product-market fit score)
    },
    "competitors": ["Competitor1", "Competitor2"],
    "strengths": ["Key strength 1", "Key strength 2"],
    "red_flags": ["Potential concern 1"],
    "funding": "Unknown" or "$X raised",
    "website": "company website URL"
}

Output valid JSON only, no markdown formatting.
`, in.Identifier(), contextBlock)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
