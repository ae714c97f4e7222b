package tailor

import (
	"strings"
	"unicode/utf8"

	"github.com/fyerfyer/resume-match-system/internal/docx"
)

// SectionFamily 章节分类族
// 章节身份按族划分，而不是按具体命中的标题词
type SectionFamily string

const (
	// FamilySkills 技能族章节
	FamilySkills SectionFamily = "skills"
	// FamilyExperience 经历族章节
	FamilyExperience SectionFamily = "experience"
	// FamilyOther 其他章节
	FamilyOther SectionFamily = "other"
)

// SectionSpan 一个已分类章节覆盖的段落区间
// 每次增强调用都重新计算，不跨调用缓存
type SectionSpan struct {
	Family SectionFamily // 章节族
	Header int           // 标题段落下标
	Start  int           // 首个内容段落下标（Header+1）
	End    int           // 区间结束下标（不含）
}

// isHeaderCandidate 判断段落文本是否为章节标题候选
// 这是一个词法启发式：修剪后长度低于阈值且小写文本包含任一标题词。
// 恰好包含标题词的正文可能被误判，这是已接受的局限
func isHeaderCandidate(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) >= headerMaxLen {
		return false
	}
	lower := strings.ToLower(trimmed)
	return containsAny(lower, skillsHeaders) ||
		containsAny(lower, experienceHeaders) ||
		containsAny(lower, otherHeaders)
}

// headerFamily 返回标题候选所属的章节族
// 技能族优先于经历族，命中任一标题词即可
func headerFamily(text string) SectionFamily {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case containsAny(lower, skillsHeaders):
		return FamilySkills
	case containsAny(lower, experienceHeaders):
		return FamilyExperience
	default:
		return FamilyOther
	}
}

// containsAny 判断文本是否包含词表中的任一词
func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Classify 将段落序列划分为章节区间
// 每个区间从标题段落之后开始，到下一个标题候选或文档末尾结束
func Classify(paras []*docx.Paragraph) []SectionSpan {
	var spans []SectionSpan

	for i, p := range paras {
		if !isHeaderCandidate(p.Text()) {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].End == 0 {
			spans[n-1].End = i
		}
		spans = append(spans, SectionSpan{
			Family: headerFamily(p.Text()),
			Header: i,
			Start:  i + 1,
		})
	}

	if n := len(spans); n > 0 && spans[n-1].End == 0 {
		spans[n-1].End = len(paras)
	}
	return spans
}
