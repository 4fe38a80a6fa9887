// Package pipeline orchestrates the per-document flow: PDF text extraction,
// topic extraction, answer generation, Markdown rendering and PDF output.
// Documents are processed strictly one at a time; a failure on one document
// never aborts the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"examgen/internal/answer"
	"examgen/internal/config"
	"examgen/internal/extract"
	"examgen/internal/gemini"
	"examgen/internal/pdfx"
	"examgen/internal/render"
	"examgen/internal/store"
)

// Reporter receives human-facing progress lines. The interactive prompter
// satisfies it; tests use a silent implementation.
type Reporter interface {
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Pipeline runs the whole document batch.
type Pipeline struct {
	cfg       *config.Config
	logger    *logrus.Logger
	reporter  Reporter
	extractor *extract.Extractor
	writer    *answer.Writer
	store     *store.Store

	// Collaborators replaceable in tests.
	extractText func(path string, logger *logrus.Logger) (string, error)
	convertPDF  func(mdPath, pdfPath string) error
}

// New wires a Pipeline from configuration.
func New(cfg *config.Config, logger *logrus.Logger, reporter Reporter) (*Pipeline, error) {
	client, err := gemini.NewClient(gemini.Config{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		Model:             cfg.Model,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	if err != nil {
		return nil, err
	}

	st, err := store.New(cfg.JSONDir)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:         cfg,
		logger:      logger,
		reporter:    reporter,
		extractor:   extract.New(client, logger),
		writer:      answer.New(client, logger, cfg.MinAnswerWords),
		store:       st,
		extractText: pdfx.ExtractText,
		convertPDF:  render.ConvertFile,
	}, nil
}

// Run executes both phases: extraction over the source folder, then answer
// generation and rendering over every stored record.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.store.Lock(); err != nil {
		return err
	}
	defer func() { _ = p.store.Unlock() }()

	if err := p.ExtractAll(ctx); err != nil {
		return err
	}
	return p.AnswerAll(ctx)
}

// ExtractAll processes every PDF in the source folder sequentially and
// stores one JSON record per document that yielded relevant questions.
func (p *Pipeline) ExtractAll(ctx context.Context) error {
	pdfs, err := listPDFs(p.cfg.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to list source folder: %w", err)
	}
	if len(pdfs) == 0 {
		p.reporter.Warnf("No PDF files found in %s", p.cfg.SourceDir)
		return nil
	}

	p.reporter.Infof("Found %d PDF file(s) in %s", len(pdfs), p.cfg.SourceDir)

	for i, path := range pdfs {
		name := filepath.Base(path)
		p.reporter.Infof("Processing %s (%d/%d)", name, i+1, len(pdfs))

		text, err := p.extractText(path, p.logger)
		if err != nil || strings.TrimSpace(text) == "" {
			p.logger.WithError(err).WithField("file", name).Error("could not extract text, skipping")
			p.reporter.Warnf("  could not read %s, skipped", name)
			continue
		}

		doc, err := p.extractor.Extract(ctx, name, text, p.cfg.Topic)
		if err != nil {
			if errors.Is(err, extract.ErrNoRelevantContent) {
				p.reporter.Infof("  no relevant questions in %s", name)
			} else {
				p.logger.WithError(err).WithField("file", name).Error("extraction failed, skipping document")
				p.reporter.Warnf("  extraction failed for %s, skipped", name)
			}
			continue
		}

		recordPath, err := p.store.Save(doc)
		if err != nil {
			p.logger.WithError(err).WithField("file", name).Error("failed to store record")
			continue
		}

		p.reporter.Successf("  %d question(s) extracted -> %s", doc.QuestionCount(), recordPath)
	}

	return nil
}

// AnswerAll generates answers for every stored record and renders the
// Markdown and PDF outputs.
func (p *Pipeline) AnswerAll(ctx context.Context) error {
	paths, err := p.store.List()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		p.reporter.Warnf("No extracted records to answer")
		return nil
	}

	if err := os.MkdirAll(p.cfg.MarkdownDir, 0755); err != nil {
		return fmt.Errorf("failed to create markdown folder: %w", err)
	}
	if err := os.MkdirAll(p.cfg.PDFDir, 0755); err != nil {
		return fmt.Errorf("failed to create PDF folder: %w", err)
	}

	for _, path := range paths {
		doc, err := store.Load(path)
		if err != nil {
			p.logger.WithError(err).WithField("record", path).Error("failed to load record, skipping")
			continue
		}

		p.reporter.Infof("Answering %d question(s) from %s", doc.QuestionCount(), doc.Filename)
		items := p.writer.GenerateAll(ctx, doc)

		base := strings.TrimSuffix(filepath.Base(path), ".json")
		mdPath := filepath.Join(p.cfg.MarkdownDir, base+".md")
		if err := os.WriteFile(mdPath, []byte(render.Markdown(doc, items)), 0644); err != nil {
			p.logger.WithError(err).WithField("file", mdPath).Error("failed to write markdown, skipping document")
			continue
		}

		pdfPath := filepath.Join(p.cfg.PDFDir, base+".pdf")
		if err := p.convertPDF(mdPath, pdfPath); err != nil {
			p.logger.WithError(err).WithField("file", pdfPath).Error("failed to render PDF")
			continue
		}

		p.reporter.Successf("  wrote %s and %s", mdPath, pdfPath)
	}

	return nil
}

// listPDFs returns the sorted paths of all PDF files directly inside dir.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
