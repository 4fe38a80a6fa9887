// Package model holds the records passed between pipeline stages.
package model

// QuestionRecord groups one or more questions with the paragraph or case
// text that provides their context. Several questions may share one context;
// marks is an opaque score annotation and may be empty.
type QuestionRecord struct {
	Questions []string `json:"questions"`
	Context   string   `json:"context,omitempty"`
	Marks     string   `json:"marks,omitempty"`
}

// DocumentRecord is the per-source-file result of the extraction stage.
// It is written to disk once and read once by the answer stage.
type DocumentRecord struct {
	Filename  string           `json:"filename"`
	Questions []QuestionRecord `json:"questions"`
}

// QuestionCount returns the total number of individual questions across all
// records in the document.
func (d DocumentRecord) QuestionCount() int {
	n := 0
	for _, rec := range d.Questions {
		n += len(rec.Questions)
	}
	return n
}

// AnsweredItem pairs a single question with its generated answer, carrying
// the context and marks of the record it came from.
type AnsweredItem struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
	Marks    string `json:"marks,omitempty"`
	Answer   string `json:"answer"`
}
