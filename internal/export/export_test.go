package export

import (
	"bytes"
	"testing"

	"github.com/fyerfyer/resume-match-system/internal/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTxt(t *testing.T) {
	file, err := Render("Dear hiring manager,\n\nI am writing...", FormatTxt)
	require.NoError(t, err)
	assert.Equal(t, MimeTxt, file.MimeType)
	assert.Equal(t, "txt", file.Ext)
	assert.Equal(t, "Dear hiring manager,\n\nI am writing...", string(file.Content))
}

func TestRenderDocx(t *testing.T) {
	file, err := Render("Alex Chen\nSoftware Engineer\n\nGo & Redis <specialist>", FormatDocx)
	require.NoError(t, err)
	assert.Equal(t, MimeDocx, file.MimeType)

	// 产出的文档可以被自己的解析器读回
	doc, err := docx.Open(file.Content)
	require.NoError(t, err)

	var texts []string
	for _, p := range doc.Paragraphs() {
		texts = append(texts, p.Text())
	}
	assert.Contains(t, texts, "Alex Chen")
	assert.Contains(t, texts, "Go & Redis <specialist>")
}

func TestRenderPDF(t *testing.T) {
	file, err := Render("First paragraph.\n\nSecond paragraph with\na wrapped line.", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, MimePDF, file.MimeType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")))
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render("content", Format("rtf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
