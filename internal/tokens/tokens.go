// Package tokens approximates provider token counts for budget accounting.
package tokens

import "unicode/utf8"

// charsPerToken is the average number of characters per token for English
// text and source code across the supported providers.
const charsPerToken = 4

// Estimate returns an approximate token count for text. It never returns a
// negative value and returns 0 only for empty text.
func Estimate(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + charsPerToken - 1) / charsPerToken
}

// EstimateAll sums Estimate over several texts.
func EstimateAll(texts ...string) int {
	total := 0
	for _, t := range texts {
		total += Estimate(t)
	}
	return total
}
