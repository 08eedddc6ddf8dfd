package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Entity extraction is a fixed set of independent sub-extractors. Each one is
// deterministic for identical input and returns nil on no match, so the
// entities map always carries the product, budget, and timeline keys.

var productKeywords = []string{
	"website", "web site", "webshop", "online store", "e-commerce", "ecommerce",
	"mobile app", "app", "landing page", "chatbot", "crm", "integration", "api",
}

var (
	budgetPattern = regexp.MustCompile(`(?i)\$\s*(\d[\d,]*(?:\.\d+)?)\s*(k\b)?|(\d[\d,]*(?:\.\d+)?)\s*(k\s+)?(?:dollars|usd|bucks)`)

	timelinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b\d+\s*(?:days?|weeks?|months?)\b`),
		regexp.MustCompile(`(?i)\bby\s+(?:the\s+)?end\s+of\s+(?:the\s+)?(?:week|month|quarter|year)\b`),
		regexp.MustCompile(`(?i)\bnext\s+(?:week|month|quarter|year)\b`),
		regexp.MustCompile(`(?i)\basap\b|\bas\s+soon\s+as\s+possible\b|\burgent(?:ly)?\b`),
	}
)

// ExtractEntities pulls structured facts out of free text.
func ExtractEntities(text string) map[string]any {
	return map[string]any{
		"product":  extractProduct(text),
		"budget":   extractBudget(text),
		"timeline": extractTimeline(text),
	}
}

// extractProduct returns the first product keyword found, honoring the fixed
// keyword order so longer phrases win over their substrings.
func extractProduct(text string) any {
	lowered := strings.ToLower(text)
	for _, keyword := range productKeywords {
		if strings.Contains(lowered, keyword) {
			return keyword
		}
	}
	return nil
}

// extractBudget returns the first money figure as a float64.
func extractBudget(text string) any {
	match := budgetPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	raw := match[1]
	thousands := match[2] != ""
	if raw == "" {
		raw = match[3]
		thousands = match[4] != ""
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil
	}
	if thousands {
		value *= 1000
	}
	return value
}

func extractTimeline(text string) any {
	for _, pattern := range timelinePatterns {
		if match := pattern.FindString(text); match != "" {
			return strings.ToLower(match)
		}
	}
	return nil
}
