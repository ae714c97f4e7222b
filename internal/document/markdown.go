package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownParser Markdown简历解析器
// 直接遍历语法树抽取文本，标题和列表项各占一行
type MarkdownParser struct{}

// NewMarkdownParser 创建新的Markdown解析器
func NewMarkdownParser() Parser {
	return &MarkdownParser{}
}

// Parse 解析Markdown文件并提取文本内容
func (p *MarkdownParser) Parse(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open markdown file: %v", err)
	}
	defer file.Close()

	return p.ParseReader(file, filePath)
}

// ParseReader 从Reader解析Markdown内容
func (p *MarkdownParser) ParseReader(r io.Reader, filename string) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown content: %v", err)
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	doc := parser.NewWithExtensions(extensions).Parse(content)

	var sb strings.Builder
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		switch n := node.(type) {
		case *ast.Text:
			sb.Write(n.Literal)
		case *ast.Code:
			sb.Write(n.Literal)
		case *ast.CodeBlock:
			sb.Write(n.Literal)
			sb.WriteString("\n")
		case *ast.Heading:
			sb.WriteString("\n\n")
		case *ast.Paragraph:
			// 列表项里的段落不另起新段，保持"- "前缀在同一行
			if _, inList := n.GetParent().(*ast.ListItem); !inList {
				sb.WriteString("\n\n")
			}
		case *ast.ListItem:
			sb.WriteString("\n- ")
		case *ast.Hardbreak, *ast.Softbreak:
			sb.WriteString(" ")
		case *ast.TableCell:
			sb.WriteString(" ")
		}
		return ast.GoToNext
	})

	return normalizeMarkdownText(sb.String()), nil
}

// normalizeMarkdownText 去掉行内多余空白，并把连续空行压缩到一个
func normalizeMarkdownText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.Join(strings.Fields(line), " "))
	}

	joined := strings.Join(lines, "\n")
	for strings.Contains(joined, "\n\n\n") {
		joined = strings.ReplaceAll(joined, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(joined)
}
