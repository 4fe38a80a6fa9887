// Package render turns answered documents into Markdown and converts the
// Markdown to paginated PDF files.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"examgen/internal/model"
)

// Markdown renders one document's answered questions as a Markdown string.
// Sections are numbered N.M where N is the 1-based record index and M the
// 1-based question index within the record; items supplies the answers in
// the same order the answer stage produced them. Output is deterministic:
// the same inputs always yield byte-identical Markdown.
func Markdown(doc *model.DocumentRecord, items []model.AnsweredItem) string {
	base := strings.TrimSuffix(filepath.Base(doc.Filename), filepath.Ext(doc.Filename))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", base)
	fmt.Fprintf(&b, "*Extracted from: %s*\n\n", filepath.Base(doc.Filename))

	idx := 0
	for n, rec := range doc.Questions {
		for m, question := range rec.Questions {
			fmt.Fprintf(&b, "### Question %d.%d\n\n", n+1, m+1)

			if rec.Context != "" {
				fmt.Fprintf(&b, "**Context:** %s\n\n", rec.Context)
			}
			fmt.Fprintf(&b, "**Question:** %s\n\n", question)
			if rec.Marks != "" {
				fmt.Fprintf(&b, "**Marks:** %s\n\n", rec.Marks)
			}

			answer := ""
			if idx < len(items) {
				answer = items[idx].Answer
			}
			fmt.Fprintf(&b, "**Answer:** %s\n\n", answer)

			idx++
		}
	}

	return b.String()
}
