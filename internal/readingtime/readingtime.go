// Package readingtime estimates how long a text takes to read.
package readingtime

import (
	"math"
	"strconv"
	"strings"
)

// DefaultWordsPerMinute is used when no positive rate is given.
const DefaultWordsPerMinute = 200

// Estimate is the result of CalculateReadingTime.
type Estimate struct {
	Minutes   int `json:"minutes"`
	WordCount int `json:"word_count"`
}

// CalculateReadingTime counts whitespace-separated words in text and
// returns ceil(words / wordsPerMinute). Empty text yields the zero Estimate.
func CalculateReadingTime(text string, wordsPerMinute int) Estimate {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := len(strings.Fields(text))
	if words == 0 {
		return Estimate{}
	}
	return Estimate{
		Minutes:   int(math.Ceil(float64(words) / float64(wordsPerMinute))),
		WordCount: words,
	}
}

// FormatReadingTime renders minutes as "N min read", or "< 1 min read"
// for non-positive values.
func FormatReadingTime(minutes int) string {
	if minutes <= 0 {
		return "< 1 min read"
	}
	return strconv.Itoa(minutes) + " min read"
}
