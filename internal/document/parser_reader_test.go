package document

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fyerfyer/resume-match-system/internal/docx/docxtest"
	"github.com/stretchr/testify/assert"
)

func TestParserReaderImplementations(t *testing.T) {
	// 测试纯文本解析器
	t.Run("PlainText", func(t *testing.T) {
		content := "Hello, this is plain text."
		reader := strings.NewReader(content)

		parser := NewPlainTextParser()
		result, err := parser.ParseReader(reader, "test.txt")

		assert.NoError(t, err)
		assert.Equal(t, content, result)
	})

	// 测试Markdown解析器
	t.Run("Markdown", func(t *testing.T) {
		content := "# Heading\n\nThis is **markdown** text."
		reader := strings.NewReader(content)

		parser := NewMarkdownParser()
		result, err := parser.ParseReader(reader, "test.md")

		assert.NoError(t, err)
		assert.Contains(t, result, "Heading")
		assert.Contains(t, result, "markdown")
	})

	// 测试Word文档解析器
	t.Run("Docx", func(t *testing.T) {
		data := docxtest.NewBuilder().
			Paragraph("Skills").
			Paragraph("Go, Python").
			Bytes()

		parser := NewDocxParser()
		result, err := parser.ParseReader(bytes.NewReader(data), "resume.docx")

		assert.NoError(t, err)
		assert.Contains(t, result, "Go, Python")
	})
}

func TestExtractText(t *testing.T) {
	data := docxtest.NewBuilder().
		Paragraph("Jane Doe").
		Paragraph("Experience").
		Bytes()

	text, err := ExtractText(data, "resume.docx")
	assert.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")

	_, err = ExtractText([]byte("x"), "resume.xyz")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractTextCorruptDocx(t *testing.T) {
	_, err := ExtractText([]byte("not a zip archive"), "resume.docx")
	assert.Error(t, err)
}
