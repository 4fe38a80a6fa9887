package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examgen/internal/model"
)

func sampleDoc() *model.DocumentRecord {
	return &model.DocumentRecord{
		Filename: "paper.pdf",
		Questions: []model.QuestionRecord{
			{Questions: []string{"What is X?", "What is Y?"}, Context: "C", Marks: "5"},
		},
	}
}

func sampleItems() []model.AnsweredItem {
	return []model.AnsweredItem{
		{Question: "What is X?", Context: "C", Marks: "5", Answer: "X is the first."},
		{Question: "What is Y?", Context: "C", Marks: "5", Answer: "Y is the second."},
	}
}

func TestMarkdownNumbering(t *testing.T) {
	md := Markdown(sampleDoc(), sampleItems())

	require.Contains(t, md, "### Question 1.1")
	require.Contains(t, md, "### Question 1.2")
	assert.NotContains(t, md, "Question 2.1")

	// Both sections carry the shared context and marks.
	assert.Equal(t, 2, strings.Count(md, "**Context:** C"))
	assert.Equal(t, 2, strings.Count(md, "**Marks:** 5"))
	assert.Contains(t, md, "**Question:** What is X?")
	assert.Contains(t, md, "**Question:** What is Y?")
	assert.Contains(t, md, "**Answer:** X is the first.")
	assert.Contains(t, md, "**Answer:** Y is the second.")
}

func TestMarkdownIsIdempotent(t *testing.T) {
	first := Markdown(sampleDoc(), sampleItems())
	second := Markdown(sampleDoc(), sampleItems())
	if first != second {
		t.Error("rendering the same record twice must produce byte-identical markdown")
	}
}

func TestMarkdownOmitsEmptyOptionalLines(t *testing.T) {
	doc := &model.DocumentRecord{
		Filename: "bare.pdf",
		Questions: []model.QuestionRecord{
			{Questions: []string{"Standalone?"}},
		},
	}
	items := []model.AnsweredItem{{Question: "Standalone?", Answer: "Yes."}}

	md := Markdown(doc, items)
	assert.NotContains(t, md, "**Context:**")
	assert.NotContains(t, md, "**Marks:**")
	assert.Contains(t, md, "### Question 1.1")
	assert.Contains(t, md, "**Answer:** Yes.")
}

func TestMarkdownSecondRecordNumbering(t *testing.T) {
	doc := &model.DocumentRecord{
		Filename: "two.pdf",
		Questions: []model.QuestionRecord{
			{Questions: []string{"A?"}, Context: "first"},
			{Questions: []string{"B?", "C?"}, Context: "second"},
		},
	}
	items := []model.AnsweredItem{
		{Question: "A?", Answer: "a"},
		{Question: "B?", Answer: "b"},
		{Question: "C?", Answer: "c"},
	}

	md := Markdown(doc, items)
	for _, heading := range []string{"### Question 1.1", "### Question 2.1", "### Question 2.2"} {
		assert.Contains(t, md, heading)
	}
}
