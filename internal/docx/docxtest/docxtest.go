// Package docxtest 提供测试用的最小DOCX文档构建器
// 生成的包只包含主文档部件和必需的关系部件，足以覆盖
// 段落、Run格式和表格的解析与回写路径
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// Run 测试文档中的一个带格式文本片段
type Run struct {
	Text string  // 文本内容
	Font string  // 字体名称，空则不写rFonts
	Size float64 // 字号（磅），0则不写sz
	Bold bool    // 是否加粗
}

// Builder 测试文档构建器
type Builder struct {
	body strings.Builder
}

// NewBuilder 创建一个空的测试文档构建器
func NewBuilder() *Builder {
	return &Builder{}
}

// Paragraph 追加一个只含单个无格式Run的段落
func (b *Builder) Paragraph(text string) *Builder {
	return b.StyledParagraph(Run{Text: text})
}

// EmptyParagraph 追加一个空段落（自闭合形式）
func (b *Builder) EmptyParagraph() *Builder {
	b.body.WriteString(`<w:p/>`)
	return b
}

// StyledParagraph 追加一个由多个Run组成的段落
func (b *Builder) StyledParagraph(runs ...Run) *Builder {
	b.body.WriteString(`<w:p>`)
	for _, r := range runs {
		b.body.WriteString(`<w:r>`)
		b.writeRunProps(r)
		b.body.WriteString(`<w:t xml:space="preserve">`)
		b.body.WriteString(escape(r.Text))
		b.body.WriteString(`</w:t></w:r>`)
	}
	b.body.WriteString(`</w:p>`)
	return b
}

// Table 追加一个表格，每个参数是一行的单元格文本
func (b *Builder) Table(rows ...[]string) *Builder {
	b.body.WriteString(`<w:tbl>`)
	for _, row := range rows {
		b.body.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.body.WriteString(`<w:tc><w:p><w:r><w:t xml:space="preserve">`)
			b.body.WriteString(escape(cell))
			b.body.WriteString(`</w:t></w:r></w:p></w:tc>`)
		}
		b.body.WriteString(`</w:tr>`)
	}
	b.body.WriteString(`</w:tbl>`)
	return b
}

// writeRunProps 写入Run的rPr属性
func (b *Builder) writeRunProps(r Run) {
	if r.Font == "" && r.Size == 0 && !r.Bold {
		return
	}
	b.body.WriteString(`<w:rPr>`)
	if r.Font != "" {
		b.body.WriteString(`<w:rFonts w:ascii="` + escape(r.Font) + `"/>`)
	}
	if r.Bold {
		b.body.WriteString(`<w:b/>`)
	}
	if r.Size != 0 {
		b.body.WriteString(fmt.Sprintf(`<w:sz w:val="%g"/>`, r.Size*2))
	}
	b.body.WriteString(`</w:rPr>`)
}

// Bytes 将构建的文档打包为DOCX字节流
func (b *Builder) Bytes() []byte {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		b.body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range []struct{ name, content string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML},
	} {
		w, err := zw.Create(part.name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// escape XML文本转义
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
