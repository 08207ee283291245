// Package content has small measurements over generated drafts.
package content

import "strings"

const defaultWordsPerMinute = 200

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadMinutes estimates reading time for a word count, rounding up.
// Non-positive wordsPerMinute falls back to the default.
func ReadMinutes(words, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = defaultWordsPerMinute
	}
	if words <= 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
