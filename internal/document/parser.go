package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser 文档解析器接口
// 负责将不同格式的上传文件解析为纯文本，供后续的AI分析使用
type Parser interface {
	// Parse 解析文档文件，返回文本内容
	Parse(filePath string) (string, error)

	// ParseReader 从Reader解析文档，返回文本内容
	// filename用于确定文档类型
	ParseReader(r io.Reader, filename string) (string, error)
}

// ContentType 表示文档的内容类型
type ContentType string

const (
	// PDF 文档类型
	PDF ContentType = "pdf"
	// Docx Word文档类型
	Docx ContentType = "docx"
	// Markdown 文档类型
	Markdown ContentType = "markdown"
	// PlainText 纯文本类型
	PlainText ContentType = "plaintext"
	// Unknown 未知类型
	Unknown ContentType = "unknown"
)

// ErrUnsupportedFormat 不支持或无法读取的文件格式
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ParserFactory 解析器工厂函数，根据文件类型创建对应的解析器
func ParserFactory(filePath string) (Parser, error) {
	switch detectContentType(filePath) {
	case PDF:
		return NewPDFParser(), nil
	case Docx:
		return NewDocxParser(), nil
	case Markdown:
		return NewMarkdownParser(), nil
	case PlainText:
		return NewPlainTextParser(), nil
	default:
		if strings.EqualFold(filepath.Ext(filePath), ".doc") {
			return nil, fmt.Errorf("%w: legacy .doc files are not supported, save as .docx", ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filePath))
	}
}

// detectContentType 根据文件扩展名检测内容类型
func detectContentType(filePath string) ContentType {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return PDF
	case ".docx":
		return Docx
	case ".md", ".markdown":
		return Markdown
	case ".txt":
		return PlainText
	default:
		return Unknown
	}
}

// ExtractText 从上传的文件字节流中提取纯文本
// 根据文件名选择解析器，格式不支持时返回ErrUnsupportedFormat
func ExtractText(data []byte, filename string) (string, error) {
	parser, err := ParserFactory(filename)
	if err != nil {
		return "", err
	}
	return parser.ParseReader(bytes.NewReader(data), filename)
}
