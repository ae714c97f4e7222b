package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fyerfyer/resume-match-system/internal/docx"
)

// DocxParser Word文档解析器
// 基于内部的docx包模型，依次抽取段落文本和表格单元格文本
type DocxParser struct{}

// NewDocxParser 创建一个新的Word文档解析器
func NewDocxParser() Parser {
	return &DocxParser{}
}

// Parse 解析DOCX文件并提取其文本内容
func (p *DocxParser) Parse(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open docx file: %v", err)
	}
	defer file.Close()

	return p.ParseReader(file, filePath)
}

// ParseReader 从Reader解析DOCX内容
func (p *DocxParser) ParseReader(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read docx content: %v", err)
	}

	doc, err := docx.Open(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %v", err)
	}

	var parts []string

	// 段落文本
	for _, para := range doc.Paragraphs() {
		if text := strings.TrimSpace(para.Text()); text != "" {
			parts = append(parts, para.Text())
		}
	}

	// 表格单元格文本，每行的单元格用 | 连接
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			var cells []string
			for _, cell := range row {
				if trimmed := strings.TrimSpace(cell); trimmed != "" {
					cells = append(cells, trimmed)
				}
			}
			if len(cells) > 0 {
				parts = append(parts, strings.Join(cells, " | "))
			}
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
