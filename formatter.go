package casebot

import "strings"

// FormatContext joins retrieved document texts for use as LLM context.
// Documents are separated by blank lines.
func FormatContext(docs []RetrievedDoc) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.Text)
	}

	return strings.Join(parts, "\n\n")
}

// FormatSources lists the source of each document, one per line.
// Uses title if available, falls back to the URL.
func FormatSources(docs []RetrievedDoc) string {
	if len(docs) == 0 {
		return ""
	}

	lines := make([]string, 0, len(docs))
	for _, doc := range docs {
		line := "- " + doc.Metadata.URL
		if doc.Metadata.Title != "" {
			line = "- " + doc.Metadata.Title + " (" + doc.Metadata.URL + ")"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
