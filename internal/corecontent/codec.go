// Package corecontent encodes the accumulated study material of a sub
// topic into a single text column and back. Entries are newest-first,
// separated by a delimiter line and tagged with their source type.
package corecontent

import (
	"fmt"
	"strings"
)

// Delimiter separates entries in the encoded blob. The blank-line
// padding keeps entries readable when inspected directly in the store.
const Delimiter = "\n\n-----\n\n"

const sourceHeaderPrefix = "[source:"

// Entry is one appended piece of core content.
type Entry struct {
	Text       string `json:"content"`
	SourceType string `json:"source_type"`
}

// Encode serializes entries into a single blob. Every entry is tagged
// with a source header; Encode(Decode(x)) == x for well-formed x.
func Encode(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		sourceType := entry.SourceType
		if sourceType == "" {
			sourceType = "text"
		}
		parts = append(parts, fmt.Sprintf("%s%s]\n%s", sourceHeaderPrefix, sourceType, entry.Text))
	}
	return strings.Join(parts, Delimiter)
}

// Decode parses a blob into its entries. Untagged segments are legacy
// content written before source headers existed; they decode with
// defaultSource (falling back to "text").
func Decode(blob, defaultSource string) []Entry {
	if strings.TrimSpace(blob) == "" {
		return nil
	}
	if defaultSource == "" {
		defaultSource = "text"
	}

	segments := strings.Split(blob, Delimiter)
	entries := make([]Entry, 0, len(segments))
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		entries = append(entries, decodeSegment(segment, defaultSource))
	}
	return entries
}

func decodeSegment(segment, defaultSource string) Entry {
	if strings.HasPrefix(segment, sourceHeaderPrefix) {
		if end := strings.Index(segment, "]"); end > len(sourceHeaderPrefix) {
			sourceType := segment[len(sourceHeaderPrefix):end]
			text := strings.TrimPrefix(segment[end+1:], "\n")
			return Entry{Text: text, SourceType: sourceType}
		}
	}
	return Entry{Text: segment, SourceType: defaultSource}
}

// Prepend adds a new entry in front of the existing blob, so the newest
// content reads first.
func Prepend(blob, text, sourceType string) string {
	entries := append([]Entry{{Text: text, SourceType: sourceType}}, Decode(blob, "")...)
	return Encode(entries)
}
