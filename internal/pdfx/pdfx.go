// Package pdfx extracts plain text from PDF documents using pdfcpu.
//
// pdfcpu exposes the raw page content streams rather than assembled text, so
// extraction decodes the text-show operators (Tj, TJ, ', ") out of each
// page's content and scrubs the result into readable prose.
package pdfx

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// ExtractText returns the concatenated text of every page in the PDF at
// path. A page whose content cannot be extracted is logged and skipped; the
// function only fails when the document itself is unreadable.
func ExtractText(path string, logger *logrus.Logger) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("failed to stat PDF file: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to get page count: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"file":       filepath.Base(path),
		"page_count": pageCount,
	}).Debug("extracting PDF text")

	var out strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		pageText, err := extractPageText(path, pageNum, conf)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"file": filepath.Base(path),
				"page": pageNum,
			}).Warn("failed to extract page, skipping")
			continue
		}
		if pageText != "" {
			out.WriteString(pageText)
			out.WriteString("\n")
		}
	}

	return out.String(), nil
}

// extractPageText extracts decoded text for a single page.
func extractPageText(path string, pageNum int, conf *model.Configuration) (string, error) {
	tempDir, err := os.MkdirTemp("", "pdfcpu_text_*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	pageSelection := []string{strconv.Itoa(pageNum)}
	if err := api.ExtractContentFile(path, tempDir, pageSelection, conf); err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	contentFile := filepath.Join(tempDir, fmt.Sprintf("%s_Content_page_%d.txt", baseName, pageNum))

	contentBytes, err := os.ReadFile(contentFile)
	if err != nil {
		return "", fmt.Errorf("failed to read content file: %w", err)
	}

	return DecodeContent(string(contentBytes)), nil
}

// DecodeContent turns a raw PDF content stream into readable text by
// collecting the strings shown by text operators and cleaning them up.
func DecodeContent(content string) string {
	if content == "" {
		return ""
	}

	var texts []string
	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Text show operations: Tj, TJ, ', "
		if strings.Contains(line, " Tj") || strings.Contains(line, " TJ") ||
			strings.Contains(line, "' ") || strings.Contains(line, "\" ") {
			texts = append(texts, ExtractTextFromOperation(line)...)
		}
	}

	if len(texts) == 0 {
		return ""
	}

	return CleanupText(strings.Join(texts, " "))
}

// ExtractTextFromOperation extracts all parenthesised strings from a PDF
// operation line, resolving the standard escape sequences.
func ExtractTextFromOperation(operation string) []string {
	var texts []string
	inText := false
	start := -1

	for i, char := range operation {
		if char == '(' && (i == 0 || operation[i-1] != '\\') {
			inText = true
			start = i + 1
		} else if char == ')' && inText && (i == 0 || operation[i-1] != '\\') {
			if start != -1 && start < i {
				text := operation[start:i]
				text = strings.ReplaceAll(text, "\\(", "(")
				text = strings.ReplaceAll(text, "\\)", ")")
				text = strings.ReplaceAll(text, "\\\\", "\\")
				text = strings.ReplaceAll(text, "\\n", "\n")
				text = strings.ReplaceAll(text, "\\r", "\r")
				text = strings.ReplaceAll(text, "\\t", "\t")

				if strings.TrimSpace(text) != "" {
					texts = append(texts, text)
				}
			}
			inText = false
			start = -1
		}
	}

	return texts
}

// CleanupText removes escape artefacts and control characters so the text
// joined from individual show operations reads as prose.
func CleanupText(text string) string {
	text = strings.TrimSpace(text)
	text = processOctalEscapes(text)
	text = removeBinaryCharacters(text)

	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}

	text = strings.ReplaceAll(text, " .", ".")
	text = strings.ReplaceAll(text, " ,", ",")
	text = strings.ReplaceAll(text, " !", "!")
	text = strings.ReplaceAll(text, " ?", "?")

	return text
}

// processOctalEscapes converts the octal escape sequences commonly found in
// PDF strings to their characters, dropping the ones with no mapping.
func processOctalEscapes(text string) string {
	replacements := map[string]string{
		"\\037": "", // unit separator
		"\\260": "°",
		"\\256": "®",
		"\\251": "©",
		"\\231": "'",
		"\\221": "'",
		"\\223": "\"",
		"\\224": "\"",
		"\\226": "–",
		"\\227": "—",
		"\\240": " ",
		"\\012": "\n",
		"\\015": "\r",
		"\\011": "\t",
	}

	for octal, replacement := range replacements {
		text = strings.ReplaceAll(text, octal, replacement)
	}

	// Drop any remaining 3-digit octal sequences.
	result := strings.Builder{}
	i := 0
	for i < len(text) {
		if i < len(text)-3 && text[i] == '\\' &&
			text[i+1] >= '0' && text[i+1] <= '7' &&
			text[i+2] >= '0' && text[i+2] <= '7' &&
			text[i+3] >= '0' && text[i+3] <= '7' {
			i += 4
		} else {
			result.WriteByte(text[i])
			i++
		}
	}

	return result.String()
}

// removeBinaryCharacters strips control and binary characters while keeping
// printable text and common punctuation.
func removeBinaryCharacters(text string) string {
	result := strings.Builder{}

	for _, char := range text {
		if (char >= 32 && char <= 126) ||
			char == '\n' || char == '\r' || char == '\t' ||
			(char >= 160 && char <= 255) ||
			(char >= 0x2000 && char <= 0x206F) {
			result.WriteRune(char)
		} else if char < 32 {
			result.WriteRune(' ')
		}
	}

	return result.String()
}
