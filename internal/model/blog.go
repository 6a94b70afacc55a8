package model

import "time"

// BlogPost is a markdown post from the content directory.
type BlogPost struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Excerpt string    `json:"excerpt"`
	Tags    []string  `json:"tags,omitempty"`
	Content string    `json:"content,omitempty"`

	// Derived when the post is loaded.
	WordCount      int    `json:"word_count"`
	ReadingMinutes int    `json:"reading_minutes"`
	ReadingTime    string `json:"reading_time"`
}
