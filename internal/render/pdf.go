package render

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

var (
	answerRe = regexp.MustCompile(`(?i)\banswer`)
	marksRe  = regexp.MustCompile(`\bMarks`)
)

// MarkdownToHTML converts Markdown to HTML.
func MarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return buf.String(), nil
}

// InsertLineBreaks inserts a <br/> before every case-insensitive occurrence
// of the word "answer" and every case-sensitive occurrence of "Marks", so
// both start on their own line in the rendered PDF.
func InsertLineBreaks(htmlContent string) string {
	htmlContent = answerRe.ReplaceAllString(htmlContent, "<br/>$0")
	htmlContent = marksRe.ReplaceAllString(htmlContent, "<br/>$0")
	return htmlContent
}

// ConvertFile reads a Markdown file and writes its paginated PDF rendering
// to pdfPath.
func ConvertFile(mdPath, pdfPath string) error {
	content, err := os.ReadFile(mdPath)
	if err != nil {
		return fmt.Errorf("failed to read markdown file: %w", err)
	}

	htmlContent, err := MarkdownToHTML(string(content))
	if err != nil {
		return err
	}
	htmlContent = InsertLineBreaks(htmlContent)

	return writePDF(htmlContent, pdfPath)
}

// heading font sizes, h1 through h6.
var headingSizes = [6]float64{20, 17, 15, 13, 12, 11}

// writePDF renders the limited HTML subset the Markdown stage emits
// (headings, paragraphs, emphasis, line breaks, rules, list items) into a
// paginated A4 PDF.
func writePDF(htmlContent, pdfPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	var (
		style     string // combination of "B" and "I"
		textBuf   strings.Builder
		inHeading int // 0 = body text, 1..6 = heading level
	)

	flush := func() {
		text := collapseSpace(textBuf.String())
		textBuf.Reset()
		if text == "" {
			return
		}
		if inHeading > 0 {
			pdf.SetFont("Helvetica", "B", headingSizes[inHeading-1])
			pdf.MultiCell(0, headingSizes[inHeading-1]*0.55, tr(text), "", "L", false)
			pdf.Ln(2)
			pdf.SetFont("Helvetica", style, 11)
			return
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.MultiCell(0, 5.5, tr(text), "", "L", false)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}

		switch tt {
		case html.TextToken:
			textBuf.WriteString(string(tokenizer.Text()))

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				flush()
				inHeading = int(name[1] - '0')
			case "p":
				flush()
			case "br":
				flush()
			case "hr":
				flush()
				pdf.Ln(2)
				x, y := pdf.GetXY()
				w, _ := pdf.GetPageSize()
				pdf.Line(x, y, w-15, y)
				pdf.Ln(3)
			case "li":
				flush()
				textBuf.WriteString("- ")
			case "strong", "b":
				flush()
				style = addStyle(style, "B")
			case "em", "i":
				flush()
				style = addStyle(style, "I")
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				flush()
				inHeading = 0
			case "p", "li":
				flush()
				pdf.Ln(2)
			case "strong", "b":
				flush()
				style = removeStyle(style, "B")
			case "em", "i":
				flush()
				style = removeStyle(style, "I")
			}
		}
	}
	flush()

	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func addStyle(style, flag string) string {
	if strings.Contains(style, flag) {
		return style
	}
	return style + flag
}

func removeStyle(style, flag string) string {
	return strings.ReplaceAll(style, flag, "")
}
