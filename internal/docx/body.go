package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// parseBody 将document.xml切分为body的子元素片段
// 每个片段保存其原始字节，片段顺序拼接后与原始输入完全一致，
// 这是无损序列化的基础
func (d *Document) parseBody(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))

	raw := string(data)
	depth := 0
	inBody := false
	bodyDepth := 0
	bodyStart := int64(-1)
	lastEnd := int64(-1)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("malformed document xml: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if !inBody && t.Name.Local == "body" {
				inBody = true
				bodyDepth = depth
				// body开始标签之后即为第一个子元素片段的起点
				bodyStart = dec.InputOffset()
				lastEnd = bodyStart
				continue
			}
			if inBody && depth == bodyDepth+1 {
				// body的直接子元素，消费至匹配的结束标签
				end, err := skipElement(dec)
				if err != nil {
					return err
				}
				depth--
				d.appendElement(raw[lastEnd:end])
				lastEnd = end
			}
		case xml.EndElement:
			depth--
			if inBody && depth == bodyDepth-1 {
				inBody = false
			}
		}
	}

	if bodyStart < 0 {
		return fmt.Errorf("document xml has no body element")
	}

	d.prefix = raw[:bodyStart]
	d.suffix = raw[lastEnd:]
	return nil
}

// skipElement 消费当前已打开元素的全部内容，返回结束标签之后的偏移
func skipElement(dec *xml.Decoder) (int64, error) {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return 0, fmt.Errorf("malformed document xml: %v", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return dec.InputOffset(), nil
}

// appendElement 登记一个body子元素
// 段落和表格额外解析出结构模型，其余元素（sectPr、书签等）仅保留原始XML
func (d *Document) appendElement(raw string) {
	name := elementName(raw)
	if k := strings.IndexByte(name, ':'); k >= 0 {
		name = name[k+1:]
	}
	switch name {
	case "p":
		p := parseParagraph(raw)
		d.paragraphs = append(d.paragraphs, p)
		d.elements = append(d.elements, &bodyElement{para: p})
	case "tbl":
		t := parseTable(raw)
		d.tables = append(d.tables, t)
		d.elements = append(d.elements, &bodyElement{raw: raw})
	default:
		d.elements = append(d.elements, &bodyElement{raw: raw})
	}
}

// elementName 从原始片段中提取首个开始标签的完整名字（可能带前缀）
// 片段可能以空白或注释开头
func elementName(raw string) string {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '<' {
			continue
		}
		j := i + 1
		for j < len(raw) && raw[j] != '>' && raw[j] != ' ' && raw[j] != '/' && raw[j] != '\t' && raw[j] != '\n' && raw[j] != '\r' {
			j++
		}
		name := raw[i+1 : j]
		if name == "" || name[0] == '!' || name[0] == '?' {
			// 注释或处理指令，继续向后找
			continue
		}
		return name
	}
	return ""
}
