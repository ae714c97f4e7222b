package docx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

// Paragraph 文档中的一个段落
// 文本只作为派生值用于读侧启发式判断，所有写操作都通过
// AppendRun和TrimLastRunSuffix进行
type Paragraph struct {
	raw  string // 原始XML片段
	name string // 开始标签名，通常为w:p
	runs []*Run // 直接子Run，按文档顺序
	text string // 各Run文本的拼接
}

// Run 段落中共享同一格式描述符的最小文本片段
type Run struct {
	text   string
	format RunFormat
}

// Text 返回Run的文本内容
func (r *Run) Text() string {
	return r.text
}

// Format 返回Run的格式描述符
func (r *Run) Format() RunFormat {
	return r.format
}

// RunFormat 不可变的Run格式描述符
// 追加Run时从段落现有的最后一个Run复制而来，保证插入文本
// 与段落原有样式一致；不持有任何指向其他Run的活引用
type RunFormat struct {
	FontName *string  // 字体名称
	FontSize *float64 // 字号（磅）
	Bold     *bool    // 是否加粗

	rawProps string // 原始rPr内部XML，序列化时原样复用
}

// xmlParagraph 段落XML反序列化结构
type xmlParagraph struct {
	Runs []xmlRun `xml:"r"`
}

// xmlRun Run的XML反序列化结构
type xmlRun struct {
	Props *xmlRunProps `xml:"rPr"`
	Texts []xmlText    `xml:"t"`
}

// xmlRunProps Run属性（w:rPr）
// Inner保留原始内部XML，其余字段解析出常用格式项
type xmlRunProps struct {
	Inner string    `xml:",innerxml"`
	Fonts *xmlFonts `xml:"rFonts"`
	Size  *xmlVal   `xml:"sz"`
	Bold  *xmlOnOff `xml:"b"`
}

type xmlText struct {
	Value string `xml:",chardata"`
}

type xmlFonts struct {
	ASCII string `xml:"ascii,attr"`
}

type xmlVal struct {
	Val string `xml:"val,attr"`
}

type xmlOnOff struct {
	Val string `xml:"val,attr"`
}

// parseParagraph 从原始XML片段解析段落模型
// 解析失败时返回不含Run的空段落，序列化仍然无损
func parseParagraph(raw string) *Paragraph {
	p := &Paragraph{raw: raw, name: elementName(raw)}

	var xp xmlParagraph
	if err := xml.Unmarshal([]byte(raw), &xp); err != nil {
		return p
	}

	var text strings.Builder
	for _, xr := range xp.Runs {
		var rt strings.Builder
		for _, t := range xr.Texts {
			rt.WriteString(t.Value)
		}
		run := &Run{
			text:   rt.String(),
			format: parseRunFormat(xr.Props),
		}
		p.runs = append(p.runs, run)
		text.WriteString(run.text)
	}
	p.text = text.String()
	return p
}

// parseRunFormat 从rPr解析格式描述符
func parseRunFormat(props *xmlRunProps) RunFormat {
	if props == nil {
		return RunFormat{}
	}

	f := RunFormat{rawProps: props.Inner}
	if props.Fonts != nil && props.Fonts.ASCII != "" {
		name := props.Fonts.ASCII
		f.FontName = &name
	}
	if props.Size != nil {
		// w:sz的单位是半磅
		if half, err := strconv.ParseFloat(props.Size.Val, 64); err == nil {
			size := half / 2
			f.FontSize = &size
		}
	}
	if props.Bold != nil {
		bold := props.Bold.Val != "false" && props.Bold.Val != "0"
		f.Bold = &bold
	}
	return f
}

// Text 返回段落的派生文本，即各Run文本的拼接
func (p *Paragraph) Text() string {
	return p.text
}

// Runs 返回段落的Run列表
func (p *Paragraph) Runs() []*Run {
	return p.runs
}

// LastRunFormat 返回段落最后一个Run的格式描述符副本
// 段落没有Run时返回零值描述符，追加的文本沿用文档默认样式
func (p *Paragraph) LastRunFormat() RunFormat {
	if len(p.runs) == 0 {
		return RunFormat{}
	}

	src := p.runs[len(p.runs)-1].format
	f := RunFormat{rawProps: src.rawProps}
	if src.FontName != nil {
		name := *src.FontName
		f.FontName = &name
	}
	if src.FontSize != nil {
		size := *src.FontSize
		f.FontSize = &size
	}
	if src.Bold != nil {
		bold := *src.Bold
		f.Bold = &bold
	}
	return f
}

// AppendRun 向段落末尾追加一个新Run
// 新Run携带给定的格式描述符，原有内容不受影响
func (p *Paragraph) AppendRun(text string, format RunFormat) {
	pre := p.nsPrefix()

	var b strings.Builder
	b.WriteString("<" + pre + "r>")
	if format.rawProps != "" {
		b.WriteString("<" + pre + "rPr>" + format.rawProps + "</" + pre + "rPr>")
	}
	b.WriteString("<" + pre + `t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString("</" + pre + "t>")
	b.WriteString("</" + pre + "r>")
	runXML := b.String()

	closing := "</" + p.name + ">"
	if i := strings.LastIndex(p.raw, closing); i >= 0 {
		p.raw = p.raw[:i] + runXML + p.raw[i:]
	} else if strings.HasSuffix(p.raw, "/>") {
		// 自闭合的空段落，先展开再插入
		p.raw = p.raw[:len(p.raw)-2] + ">" + runXML + closing
	} else {
		return
	}

	p.runs = append(p.runs, &Run{text: text, format: format})
	p.text += text
}

// TrimLastRunSuffix 从段落最后一个Run的文本末尾去掉给定后缀
// 仅当模型文本和原始XML都以该后缀结尾时才修改，返回是否发生修改
func (p *Paragraph) TrimLastRunSuffix(suffix string) bool {
	if len(p.runs) == 0 || suffix == "" {
		return false
	}
	last := p.runs[len(p.runs)-1]
	if !strings.HasSuffix(last.text, suffix) {
		return false
	}

	closeT := "</" + p.nsPrefix() + "t>"
	i := strings.LastIndex(p.raw, closeT)
	if i < 0 {
		return false
	}
	esc := escapeXML(suffix)
	if !strings.HasSuffix(p.raw[:i], esc) {
		return false
	}

	p.raw = p.raw[:i-len(esc)] + p.raw[i:]
	last.text = strings.TrimSuffix(last.text, suffix)
	p.text = strings.TrimSuffix(p.text, suffix)
	return true
}

// nsPrefix 返回段落标签使用的命名空间前缀（含冒号），无前缀时为空串
func (p *Paragraph) nsPrefix() string {
	if k := strings.IndexByte(p.name, ':'); k >= 0 {
		return p.name[:k+1]
	}
	return ""
}

// escapeXML 对文本内容做XML转义
func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
