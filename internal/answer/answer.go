// Package answer implements the answer generation stage: each individual
// question is sent to the model with its context and marks, and remote
// failures are substituted with a placeholder answer so the batch continues.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"examgen/internal/model"
)

// Placeholder answers recorded when a call fails. These are values, not
// errors: a failed question must not halt the remaining questions.
const (
	PlaceholderCallFailed   = "Could not generate an answer: the API call failed."
	PlaceholderEmptyContent = "Could not generate an answer due to an unexpected API response."
)

// DefaultMinWords is the verbosity hint attached to each answer prompt.
const DefaultMinWords = 300

// Generator is the text-generation collaborator, satisfied by the Gemini
// client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Writer generates long-form answers for extracted questions.
type Writer struct {
	generator Generator
	logger    *logrus.Logger
	minWords  int
}

// New creates a Writer. minWords <= 0 selects DefaultMinWords.
func New(generator Generator, logger *logrus.Logger, minWords int) *Writer {
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return &Writer{generator: generator, logger: logger, minWords: minWords}
}

// GenerateAll produces one AnsweredItem per individual question in the
// document, in record order. The returned slice always has exactly
// doc.QuestionCount() elements; failures appear as placeholder answers.
func (w *Writer) GenerateAll(ctx context.Context, doc *model.DocumentRecord) []model.AnsweredItem {
	items := make([]model.AnsweredItem, 0, doc.QuestionCount())

	for _, rec := range doc.Questions {
		for _, question := range rec.Questions {
			item := model.AnsweredItem{
				Question: question,
				Context:  rec.Context,
				Marks:    rec.Marks,
			}

			prompt := w.buildPrompt(question, rec.Context, rec.Marks)
			text, err := w.generator.Generate(ctx, prompt)
			switch {
			case err != nil:
				w.logger.WithError(err).WithField("question", truncate(question, 70)).Warn("answer generation failed")
				item.Answer = PlaceholderCallFailed
			case strings.TrimSpace(text) == "":
				item.Answer = PlaceholderEmptyContent
			default:
				item.Answer = strings.TrimSpace(text)
			}

			items = append(items, item)
		}
	}

	return items
}

// buildPrompt assembles the answer prompt for one question.
func (w *Writer) buildPrompt(question, context, marks string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please provide a detailed and comprehensive answer, at least %d words long, ", w.minWords)
	b.WriteString("directly answering the question below while elaborating on all relevant details from the context.\n\n")
	if context != "" {
		fmt.Fprintf(&b, "Context: %s\n\n", context)
	}
	fmt.Fprintf(&b, "Question: %s\n", question)
	if marks != "" {
		fmt.Fprintf(&b, "Marks: %s\n", marks)
	}
	b.WriteString("\nAnswer:")
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
