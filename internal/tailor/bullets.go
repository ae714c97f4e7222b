package tailor

import (
	"strings"

	"github.com/fyerfyer/resume-match-system/internal/docx"
)

// bulletPrefixes 要点段落的可见前缀
var bulletPrefixes = []string{"•", "-", "*"}

// augmentBullets 在经历章节内为相关的要点段落追加关键词
// 每个要点最多追加一个关键词，修改的要点数达到maxEdits后整个
// 遍历立即停止；返回被修改的要点数量，零是正常结果
func augmentBullets(paras []*docx.Paragraph, keywords []string, relevance RelevanceTable, maxEdits int) int {
	inExperience := false
	modified := 0

	for _, p := range paras {
		text := strings.TrimSpace(p.Text())

		if isHeaderCandidate(text) {
			// 进入经历族章节，遇到其他任何标题则离开
			inExperience = headerFamily(text) == FamilyExperience
			continue
		}
		if !inExperience || !isBullet(text) {
			continue
		}
		if modified >= maxEdits {
			break
		}

		textLower := strings.ToLower(text)
		for _, kw := range keywords {
			kwLower := strings.ToLower(kw)
			if strings.Contains(textLower, kwLower) {
				continue
			}
			if !relevance.relevant(kwLower, textLower) {
				continue
			}

			addition := " utilizing " + kw
			if strings.HasSuffix(text, ".") {
				// 把句号挪到追加文本之后，保持句子完整
				p.TrimLastRunSuffix(".")
				addition += "."
			}
			p.AppendRun(addition, p.LastRunFormat())
			modified++
			break
		}
	}

	return modified
}

// isBullet 判断修剪后的文本是否以要点符号开头
func isBullet(trimmed string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// relevant 判断关键词与要点文本是否相关
// 词表中的某个主题词是关键词的子串，且其任一触发词出现在
// 要点文本中时即为相关
func (t RelevanceTable) relevant(kwLower, bulletLower string) bool {
	for topic, triggers := range t {
		if !strings.Contains(kwLower, topic) {
			continue
		}
		for _, trigger := range triggers {
			if strings.Contains(bulletLower, trigger) {
				return true
			}
		}
	}
	return false
}
