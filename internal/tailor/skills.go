package tailor

import (
	"strings"
	"unicode/utf8"

	"github.com/fyerfyer/resume-match-system/internal/docx"
)

// augmentSkills 在技能章节的内容段落后追加缺失的关键词
// 返回实际追加的关键词，保持输入顺序
// 每次调用最多修改一个内容段落，避免同一轮里对多行技能叠加编辑；
// 没有技能章节、没有内容段落、关键词都已存在时均为正常的空结果
func augmentSkills(paras []*docx.Paragraph, keywords []string) []string {
	span, ok := firstSkillsSpan(paras)
	if !ok {
		return nil
	}

	content := findSkillsContent(paras, span)
	if content == nil {
		return nil
	}

	// 过滤掉已经出现在内容段落里的关键词（大小写不敏感）
	textLower := strings.ToLower(content.Text())
	var missing []string
	for _, kw := range keywords {
		if !strings.Contains(textLower, strings.ToLower(kw)) {
			missing = append(missing, kw)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	// 一次最多追加5个，保持技能行可读
	if len(missing) > maxSkillsPerPass {
		missing = missing[:maxSkillsPerPass]
	}

	content.AppendRun(", "+strings.Join(missing, ", "), content.LastRunFormat())
	return missing
}

// firstSkillsSpan 返回文档中第一个技能族章节区间
func firstSkillsSpan(paras []*docx.Paragraph) (SectionSpan, bool) {
	for _, span := range Classify(paras) {
		if span.Family == FamilySkills {
			return span, true
		}
	}
	return SectionSpan{}, false
}

// findSkillsContent 在技能章节内定位技能内容段落
// 跳过修剪后长度不足5的空白分隔段落，遇到的第一个非标题内容段落
// 即为目标；先碰到另一个标题或区间结束则没有内容段落
func findSkillsContent(paras []*docx.Paragraph, span SectionSpan) *docx.Paragraph {
	for i := span.Start; i < span.End && i < len(paras); i++ {
		trimmed := strings.TrimSpace(paras[i].Text())
		if utf8.RuneCountInString(trimmed) < 5 {
			continue
		}
		if isHeaderCandidate(paras[i].Text()) {
			return nil
		}
		return paras[i]
	}
	return nil
}
