// Package extract implements the topic extraction stage: it prompts the
// model to identify topic-relevant questions in a document's text and parses
// the response into a DocumentRecord.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"examgen/internal/model"
)

// Sentinel is the literal response the model is instructed to return when a
// document contains nothing relevant to the topic.
const Sentinel = "no relevant content found"

// ErrNoRelevantContent is returned when the model reports the sentinel. The
// caller skips the document without treating it as a failure.
var ErrNoRelevantContent = errors.New("no relevant content found")

// Generator is the text-generation collaborator, satisfied by the Gemini
// client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Extractor runs the topic extraction stage.
type Extractor struct {
	generator Generator
	logger    *logrus.Logger
}

// New creates an Extractor using the given generator.
func New(generator Generator, logger *logrus.Logger) *Extractor {
	return &Extractor{generator: generator, logger: logger}
}

// Extract sends the document text and topic to the model and parses the
// response. It returns ErrNoRelevantContent when the model reports the
// sentinel, and a parsing error when the response carries no parseable
// structure; both leave the batch free to continue with the next document.
func (e *Extractor) Extract(ctx context.Context, filename, text, topic string) (*model.DocumentRecord, error) {
	prompt := BuildPrompt(topic, text)

	e.logger.WithFields(logrus.Fields{
		"file":  filename,
		"topic": topic,
	}).Info("analysing document")

	response, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	records, err := ParseRecords(response)
	if err != nil {
		return nil, err
	}

	return &model.DocumentRecord{Filename: filename, Questions: records}, nil
}

// BuildPrompt assembles the extraction prompt for one document.
func BuildPrompt(topic, text string) string {
	var b strings.Builder
	b.WriteString("You are an expert document analyser. Carefully read the provided text, which contains questions.\n")
	fmt.Fprintf(&b, "Identify and extract ONLY those questions that are directly or indirectly related to the topic of %s.\n", topic)
	b.WriteString("For each question also extract the paragraph or case study text that provides its immediate context, and the marks allocation if one is stated.\n")
	b.WriteString("Questions that share the same context must be grouped into a single entry.\n\n")
	b.WriteString("Respond with a JSON array only. Each element must have this shape:\n")
	b.WriteString(`{"questions": ["..."], "context": "...", "marks": "..."}` + "\n")
	b.WriteString("Use an empty string for a missing context or marks. Do not include any other text, explanations, or introductory remarks.\n")
	fmt.Fprintf(&b, "If no questions related to the topic are found, respond with exactly: %s\n\n", Sentinel)
	b.WriteString("Here is the text to analyse:\n\n")
	b.WriteString(text)
	return b.String()
}

// ParseRecords parses a model response into question records. It tolerates a
// fenced code block wrapper and a single-object response; a fenced and an
// unfenced equivalent response parse to identical records.
func ParseRecords(response string) ([]model.QuestionRecord, error) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return nil, fmt.Errorf("empty response")
	}

	if strings.EqualFold(strings.Trim(trimmed, " .\"'"), Sentinel) {
		return nil, ErrNoRelevantContent
	}

	jsonStr := StripFence(trimmed)

	// The model may emit a single object instead of a one-element array.
	var records []model.QuestionRecord
	if err := json.Unmarshal([]byte(jsonStr), &records); err != nil {
		var single model.QuestionRecord
		if err2 := json.Unmarshal([]byte(jsonStr), &single); err2 != nil {
			return nil, fmt.Errorf("no parseable structure in response: %w", err)
		}
		records = []model.QuestionRecord{single}
	}

	records = normalise(records)
	if len(records) == 0 {
		return nil, ErrNoRelevantContent
	}

	return records, nil
}

// StripFence removes a surrounding Markdown code fence (``` or ```json) if
// present, otherwise it cuts the response down to the outermost JSON
// bracketing so leading or trailing chatter does not break parsing.
func StripFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Language tag on the opening fence, e.g. ```json
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			first := strings.TrimSpace(s[:idx])
			if first == "" || !strings.ContainsAny(first, "[{") {
				s = s[idx+1:]
			}
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		return strings.TrimSpace(s)
	}

	// Unfenced: trim to the outermost array or object.
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}
	var end int
	if s[start] == '[' {
		end = strings.LastIndex(s, "]")
	} else {
		end = strings.LastIndex(s, "}")
	}
	if end > start {
		return s[start : end+1]
	}
	return s
}

// normalise trims whitespace on every field and drops records that carry no
// questions.
func normalise(records []model.QuestionRecord) []model.QuestionRecord {
	out := make([]model.QuestionRecord, 0, len(records))
	for _, rec := range records {
		questions := make([]string, 0, len(rec.Questions))
		for _, q := range rec.Questions {
			if q = strings.TrimSpace(q); q != "" {
				questions = append(questions, q)
			}
		}
		if len(questions) == 0 {
			continue
		}
		out = append(out, model.QuestionRecord{
			Questions: questions,
			Context:   strings.TrimSpace(rec.Context),
			Marks:     strings.TrimSpace(rec.Marks),
		})
	}
	return out
}
