package domain

// Snippet is a retrieved knowledge document projected for the caller:
// the text chunk, its metadata attributes, and the index's relevance score.
// Snippets keep the order the index returned them in; nothing re-sorts or
// trims them by score.
type Snippet struct {
	Text     string
	Metadata map[string]any
	Score    float64
}
