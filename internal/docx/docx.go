package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// 文档包内主文档部件的路径
const documentPart = "word/document.xml"

// ErrCorruptDocument 输入字节流不是合法的DOCX文档包
var ErrCorruptDocument = errors.New("corrupt docx document")

// Document 内存中的DOCX文档模型
// 持有原始包的全部条目，只有被增强器显式修改过的段落会被重新渲染，
// 其余内容在序列化时原样写回
type Document struct {
	entries []packageEntry // 包条目，保持原始顺序
	docIdx  int            // word/document.xml在entries中的位置

	prefix   string         // document.xml中body首个子元素之前的内容
	suffix   string         // document.xml中body最后一个子元素之后的内容
	elements []*bodyElement // body子元素，保持文档顺序

	paragraphs []*Paragraph // 顶层段落，按文档顺序
	tables     []*Table     // 顶层表格（只读）
}

// packageEntry ZIP包中的一个条目
type packageEntry struct {
	name   string
	method uint16
	data   []byte
}

// bodyElement body的一个直接子元素
// 段落持有可变引用，其余元素只保留原始XML
type bodyElement struct {
	raw  string
	para *Paragraph
}

// Open 解析DOCX文档包并构建内存模型
// 字节流不是合法的ZIP包、缺少主文档部件或主文档XML无法解析时
// 返回ErrCorruptDocument
func Open(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	doc := &Document{docIdx: -1}

	// 读取所有条目，保持顺序
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", ErrCorruptDocument, f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptDocument, f.Name, err)
		}

		if f.Name == documentPart {
			doc.docIdx = len(doc.entries)
		}
		doc.entries = append(doc.entries, packageEntry{
			name:   f.Name,
			method: f.Method,
			data:   content,
		})
	}

	if doc.docIdx < 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrCorruptDocument, documentPart)
	}

	// 解析主文档部件
	if err := doc.parseBody(doc.entries[doc.docIdx].data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	return doc, nil
}

// Bytes 将文档序列化为DOCX包字节流
// 未被修改的条目和元素原样写回，不会重排或丢弃任何内容
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, e := range d.entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.name,
			Method: e.method,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create package entry %s: %w", e.name, err)
		}

		content := e.data
		if i == d.docIdx {
			content = d.renderDocumentXML()
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write package entry %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize package: %w", err)
	}
	return buf.Bytes(), nil
}

// renderDocumentXML 重新组装document.xml
func (d *Document) renderDocumentXML() []byte {
	var b bytes.Buffer
	b.WriteString(d.prefix)
	for _, el := range d.elements {
		if el.para != nil {
			b.WriteString(el.para.raw)
		} else {
			b.WriteString(el.raw)
		}
	}
	b.WriteString(d.suffix)
	return b.Bytes()
}

// Paragraphs 返回文档的顶层段落，按文档顺序
func (d *Document) Paragraphs() []*Paragraph {
	return d.paragraphs
}

// Tables 返回文档的顶层表格
// 表格在本系统中只读，永远不会被修改
func (d *Document) Tables() []*Table {
	return d.tables
}
