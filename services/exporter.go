package services

import (
	"fmt"
	"html"
	"strings"

	"intervuehub/models"
	"intervuehub/rubric"
)

const reportStyles = `<style>
    body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
    h1, h2, h3 { color: #333; }
    .header { background: #f0f0f0; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
    .score-card { background: #fff; border: 1px solid #ddd; padding: 15px; margin: 10px 0; border-radius: 8px; }
    .score-badge { display: inline-block; padding: 5px 10px; border-radius: 4px; font-weight: bold; }
    .exemplary { background: #4CAF50; color: white; }
    .proficient { background: #2196F3; color: white; }
    .developing { background: #FF9800; color: white; }
    .needs-improvement { background: #f44336; color: white; }
    .category { margin: 20px 0; padding: 15px; border-left: 4px solid #2196F3; background: #f9f9f9; }
    .evidence { color: #4CAF50; }
    .suggestion { color: #FF9800; }
    .quote { background: #f5f5f5; padding: 10px; margin: 10px 0; border-left: 3px solid #666; font-style: italic; }
    .positive-quote { border-left-color: #4CAF50; }
    .negative-quote { border-left-color: #f44336; }
    ul { padding-left: 20px; }
    .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; }
    @media (max-width: 600px) { .grid { grid-template-columns: 1fr; } }
</style>`

func badgeClass(level models.PerformanceLevel) string {
	return strings.ReplaceAll(strings.ToLower(string(level)), " ", "-")
}

func categoryTitle(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// orderedScoreIDs yields the report's category ids in rubric display
// order, then any unknown ids in sorted order.
func orderedScoreIDs(scores map[string]models.CategoryScore) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, cat := range rubric.DefaultRubric() {
		if _, ok := scores[cat.ID]; ok {
			ids = append(ids, cat.ID)
			seen[cat.ID] = true
		}
	}
	for _, id := range sortedCategoryIDs(scores) {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// RenderHTMLReport serializes a feedback report as a standalone HTML page.
func RenderHTMLReport(report models.FeedbackReport) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("<title>Interview Feedback Report</title>\n")
	b.WriteString(reportStyles)
	b.WriteString("\n</head>\n<body>\n")

	fmt.Fprintf(&b, `<div class="header">
<h1>Interview Feedback Report</h1>
<p><strong>Generated:</strong> %s</p>
<p><strong>Interview Duration:</strong> %d exchanges</p>
<h2>Overall Performance: <span class="score-badge %s">%s</span></h2>
<p><strong>Overall Score:</strong> %.1f / 4.0</p>
</div>
`, report.GeneratedAt.Format("January 2, 2006 at 3:04 PM"), report.TotalTurns,
		badgeClass(report.OverallLevel), html.EscapeString(string(report.OverallLevel)), report.OverallScore)

	fmt.Fprintf(&b, "<div class=\"score-card\">\n<h2>Summary</h2>\n<p>%s</p>\n</div>\n", html.EscapeString(report.OverallSummary))

	b.WriteString("<div class=\"grid\">\n<div class=\"score-card\">\n<h2>Key Strengths</h2>\n<ul>\n")
	for _, s := range report.Strengths {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(s))
	}
	b.WriteString("</ul>\n</div>\n<div class=\"score-card\">\n<h2>Areas for Growth</h2>\n<ul>\n")
	for _, s := range report.Improvements {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(s))
	}
	b.WriteString("</ul>\n</div>\n</div>\n")

	if len(report.QuoteHighlights) > 0 {
		b.WriteString("<h2>Notable Moments</h2>\n")
		for _, q := range report.QuoteHighlights {
			quoteClass := "negative-quote"
			if q.IsPositive {
				quoteClass = "positive-quote"
			}
			fmt.Fprintf(&b, "<div class=\"quote %s\">\n<p>&quot;%s&quot;</p>\n<p><small><strong>Turn %d</strong> - %s</small></p>\n</div>\n",
				quoteClass, html.EscapeString(q.Quote), q.TurnNumber, html.EscapeString(q.Explanation))
		}
	}

	b.WriteString("<h2>Detailed Scores</h2>\n")
	for _, id := range orderedScoreIDs(report.Scores) {
		score := report.Scores[id]
		fmt.Fprintf(&b, "<div class=\"category\">\n<h3>%s - <span class=\"score-badge %s\">%s</span></h3>\n",
			html.EscapeString(categoryTitle(id)), badgeClass(score.Level), html.EscapeString(string(score.Level)))
		fmt.Fprintf(&b, "<p><strong>Score:</strong> %d/4 (Weight: %d%%)</p>\n<p>%s</p>\n",
			score.Score, score.Weight, html.EscapeString(score.Description))
		if len(score.Evidence) > 0 {
			b.WriteString("<p class='evidence'><strong>What you did well:</strong></p><ul>\n")
			for _, e := range score.Evidence {
				fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(e))
			}
			b.WriteString("</ul>\n")
		}
		if len(score.Suggestions) > 0 {
			b.WriteString("<p class='suggestion'><strong>Areas for improvement:</strong></p><ul>\n")
			for _, s := range score.Suggestions {
				fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(s))
			}
			b.WriteString("</ul>\n")
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("<details>\n<summary><h2 style=\"display: inline;\">Scoring Rubric Reference</h2></summary>\n<div style=\"margin-top: 10px;\">\n")
	for _, cat := range rubric.DefaultRubric() {
		levels, ok := report.Rubric[cat.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "<h3>%s</h3><ul>\n", html.EscapeString(categoryTitle(cat.ID)))
		for _, desc := range levels {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(desc))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div>\n</details>\n")

	fmt.Fprintf(&b, "<footer style=\"margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; text-align: center; color: #666;\">\n<p>Generated by Interview Feedback System | Confidence Score: %.0f%%</p>\n</footer>\n</body>\n</html>\n",
		report.ConfidenceScore*100)

	return b.String()
}

// RenderMarkdownReport serializes a feedback report as Markdown.
func RenderMarkdownReport(report models.FeedbackReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Interview Feedback Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", report.GeneratedAt.Format("January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(&b, "**Interview Duration:** %d exchanges  \n", report.TotalTurns)
	fmt.Fprintf(&b, "**Overall Performance:** %s  \n", report.OverallLevel)
	fmt.Fprintf(&b, "**Overall Score:** %.1f / 4.0\n\n", report.OverallScore)

	fmt.Fprintf(&b, "## Summary\n\n%s\n\n## Key Strengths\n\n", report.OverallSummary)
	for _, s := range report.Strengths {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n## Areas for Growth\n\n")
	for _, s := range report.Improvements {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	b.WriteString("\n## Detailed Scores\n\n")
	for _, id := range orderedScoreIDs(report.Scores) {
		score := report.Scores[id]
		fmt.Fprintf(&b, "### %s\n\n", categoryTitle(id))
		fmt.Fprintf(&b, "**Score:** %d/4 (%s) - Weight: %d%%\n\n", score.Score, score.Level, score.Weight)
		fmt.Fprintf(&b, "%s\n\n", score.Description)
		if len(score.Evidence) > 0 {
			b.WriteString("**What you did well:**\n")
			for _, e := range score.Evidence {
				fmt.Fprintf(&b, "- %s\n", e)
			}
			b.WriteString("\n")
		}
		if len(score.Suggestions) > 0 {
			b.WriteString("**Areas for improvement:**\n")
			for _, s := range score.Suggestions {
				fmt.Fprintf(&b, "- %s\n", s)
			}
			b.WriteString("\n")
		}
	}

	if len(report.QuoteHighlights) > 0 {
		b.WriteString("## Notable Moments\n\n")
		for _, q := range report.QuoteHighlights {
			sentiment := "✗"
			if q.IsPositive {
				sentiment = "✓"
			}
			fmt.Fprintf(&b, "%s **Turn %d:** \"%s\"\n", sentiment, q.TurnNumber, q.Quote)
			fmt.Fprintf(&b, "   - %s\n\n", q.Explanation)
		}
	}

	fmt.Fprintf(&b, "\n---\n\n*Confidence Score: %.0f%%*\n", report.ConfidenceScore*100)
	return b.String()
}
