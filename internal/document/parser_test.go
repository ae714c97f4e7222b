package document

import (
	"os"
	"strings"
	"testing"

	"github.com/fyerfyer/resume-match-system/internal/docx/docxtest"
	"github.com/jung-kurt/gofpdf"
)

func createTempFile(t *testing.T, content []byte, ext string) string {
	tmpFile, err := os.CreateTemp("", "resume-test-*"+ext)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.Write(content); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func createTempPDF(t *testing.T, text string) string {
	tmpFile, err := os.CreateTemp("", "resume-test-*.pdf")
	if err != nil {
		t.Fatalf("Failed to create temp PDF file: %v", err)
	}
	defer tmpFile.Close()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, text, "", "", false)
	if err := pdf.Output(tmpFile); err != nil {
		t.Fatalf("Failed to write PDF: %v", err)
	}
	return tmpFile.Name()
}

func createTempDocx(t *testing.T) string {
	data := docxtest.NewBuilder().
		Paragraph("Jane Doe").
		Paragraph("Skills").
		Paragraph("Python, SQL").
		Table([]string{"Project", "Stack"}, []string{"Billing", "Go"}).
		Bytes()
	return createTempFile(t, data, ".docx")
}

func TestPlainTextParser(t *testing.T) {
	content := "Hello, this is a plain text resume.\nSecond line."
	file := createTempFile(t, []byte(content), ".txt")
	defer os.Remove(file)

	parser := NewPlainTextParser()
	text, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("PlainTextParser.Parse failed: %v", err)
	}
	if !strings.Contains(text, "plain text resume") {
		t.Errorf("Expected content not found in parsed text: %s", text)
	}
}

func TestMarkdownParser(t *testing.T) {
	content := "# Jane Doe\n\nThis is a **markdown** resume.\n\n- Python\n- SQL"
	file := createTempFile(t, []byte(content), ".md")
	defer os.Remove(file)

	parser := NewMarkdownParser()
	text, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("MarkdownParser.Parse failed: %v", err)
	}
	if !strings.Contains(text, "markdown resume") {
		t.Errorf("Expected content not found in parsed text: %s", text)
	}
	if !strings.Contains(text, "Python") {
		t.Errorf("Expected list item not found in parsed text: %s", text)
	}
}

func TestPDFParser(t *testing.T) {
	content := "This is a PDF resume.\nSecond line."
	file := createTempPDF(t, content)
	defer os.Remove(file)

	parser := NewPDFParser()
	text, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("PDFParser.Parse failed: %v", err)
	}
	if !strings.Contains(text, "PDF resume") {
		t.Errorf("Expected content not found in parsed PDF text: %s", text)
	}
}

func TestDocxParser(t *testing.T) {
	file := createTempDocx(t)
	defer os.Remove(file)

	parser := NewDocxParser()
	text, err := parser.Parse(file)
	if err != nil {
		t.Fatalf("DocxParser.Parse failed: %v", err)
	}
	if !strings.Contains(text, "Python, SQL") {
		t.Errorf("Expected paragraph text not found: %s", text)
	}
	if !strings.Contains(text, "Billing | Go") {
		t.Errorf("Expected table row not found: %s", text)
	}
}

func TestParserFactory(t *testing.T) {
	txtFile := createTempFile(t, []byte("plain text"), ".txt")
	defer os.Remove(txtFile)
	mdFile := createTempFile(t, []byte("# Markdown"), ".md")
	defer os.Remove(mdFile)
	pdfFile := createTempPDF(t, "PDF content")
	defer os.Remove(pdfFile)
	docxFile := createTempDocx(t)
	defer os.Remove(docxFile)

	tests := []struct {
		file     string
		expected string
	}{
		{txtFile, "plain text"},
		{mdFile, "Markdown"},
		{pdfFile, "PDF content"},
		{docxFile, "Python, SQL"},
	}

	for _, tt := range tests {
		parser, err := ParserFactory(tt.file)
		if err != nil {
			t.Fatalf("ParserFactory failed for %s: %v", tt.file, err)
		}
		text, err := parser.Parse(tt.file)
		if err != nil {
			t.Fatalf("Parser.Parse failed for %s: %v", tt.file, err)
		}
		if !strings.Contains(text, tt.expected) {
			t.Errorf("Expected '%s' in parsed text, got: %s", tt.expected, text)
		}
	}
}

func TestParserFactoryUnsupported(t *testing.T) {
	if _, err := ParserFactory("resume.doc"); err == nil {
		t.Error("Expected error for legacy .doc file")
	}
	if _, err := ParserFactory("resume.xlsx"); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}
