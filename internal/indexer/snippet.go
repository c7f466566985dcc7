package indexer

import (
	"fmt"
	"strings"
)

const (
	// Snippets longer than chunkThreshold are split before embedding.
	chunkThreshold = 1000
	// maxChunkChars bounds each accumulated chunk of sentences.
	maxChunkChars = 800
)

// BuildSnippets renders a job into the text snippets that get embedded.
// Short jobs produce a single snippet; long ones are split at sentence
// boundaries and each chunk is re-wrapped with the title and location so
// every stored snippet stands on its own.
func BuildSnippets(job Job) []string {
	reqs := strings.Join(job.Requirements, ", ")
	full := fmt.Sprintf("%s — %s Requirements: %s. Location: %s.",
		job.Title, job.Description, reqs, job.Location)

	if len(full) <= chunkThreshold {
		return []string{full}
	}

	combined := fmt.Sprintf("%s Requirements: %s", job.Description, reqs)
	chunks := chunkText(combined, maxChunkChars)

	snippets := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		snippets = append(snippets,
			fmt.Sprintf("%s — %s Location: %s.", job.Title, chunk, job.Location))
	}
	return snippets
}

// chunkText splits text into chunks of at most maxChars, accumulating
// whole sentences. A single sentence longer than maxChars becomes its own
// oversized chunk rather than being cut mid-sentence.
func chunkText(text string, maxChars int) []string {
	sentences := strings.Split(strings.ReplaceAll(text, "\n", " "), ". ")

	var chunks []string
	current := ""
	for _, sent := range sentences {
		// +2 restores the ". " the split removed.
		if len(current)+len(sent)+2 < maxChars {
			current += sent + ". "
		} else {
			if c := strings.TrimSpace(current); c != "" {
				chunks = append(chunks, c)
			}
			current = sent + ". "
		}
	}
	if c := strings.TrimSpace(current); c != "" {
		chunks = append(chunks, c)
	}
	return chunks
}
