package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Format 导出文件格式
type Format string

const (
	FormatTxt  Format = "txt"  // 纯文本
	FormatDocx Format = "docx" // Word文档
	FormatPDF  Format = "pdf"  // PDF文档
)

// MIME类型常量
const (
	MimeTxt  = "text/plain"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePDF  = "application/pdf"
)

// File 导出结果
type File struct {
	Content  []byte // 文件内容
	MimeType string // MIME类型
	Ext      string // 文件扩展名（不含点）
}

// Render 把纯文本内容渲染为指定格式的文件
// 用于求职信和改写后简历的下载
func Render(content string, format Format) (*File, error) {
	switch format {
	case FormatTxt:
		return &File{
			Content:  []byte(content),
			MimeType: MimeTxt,
			Ext:      "txt",
		}, nil
	case FormatDocx:
		data, err := renderDocx(content)
		if err != nil {
			return nil, err
		}
		return &File{Content: data, MimeType: MimeDocx, Ext: "docx"}, nil
	case FormatPDF:
		data, err := renderPDF(content)
		if err != nil {
			return nil, err
		}
		return &File{Content: data, MimeType: MimePDF, Ext: "pdf"}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// renderPDF 把文本渲染为A4 PDF，按空行分段并自动换行
func renderPDF(content string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	for _, para := range strings.Split(content, "\n\n") {
		clean := strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if clean == "" {
			continue
		}
		pdf.MultiCell(0, 6, clean, "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// renderDocx 把文本渲染为最小的Word文档，每行一个段落
func renderDocx(content string) ([]byte, error) {
	var body strings.Builder
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			body.WriteString(`<w:p/>`)
			continue
		}
		body.WriteString(`<w:p><w:r><w:rPr><w:sz w:val="22"/></w:rPr><w:t xml:space="preserve">`)
		body.WriteString(escapeXML(line))
		body.WriteString(`</w:t></w:r></w:p>`)
	}

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() +
		`<w:sectPr><w:pgMar w:left="1440" w:right="1440" w:top="1440" w:bottom="1440"/></w:sectPr>` +
		`</w:body></w:document>`

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", document},
	}
	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx: %w", err)
	}
	return buf.Bytes(), nil
}

// escapeXML 转义XML文本内容中的特殊字符
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
