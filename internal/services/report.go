package services

import (
	"encoding/json"
	"fmt"

	"github.com/fyerfyer/resume-match-system/internal/llm"
)

// asMap 把JSON解析为通用map，失败时返回空map
func asMap(raw json.RawMessage) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}

// getString 从map中读取字符串字段
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getFloat 从map中读取数值字段
func getFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

// getMap 从map中读取嵌套对象
func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return map[string]interface{}{}
}

// getList 从map中读取列表字段
func getList(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key].([]interface{}); ok {
		return v
	}
	return nil
}

// stringItems 把列表元素转换为字符串，最多取max个
// 列表元素可以是字符串，也可以是带指定字段的对象
func stringItems(items []interface{}, field string, max int) []string {
	var result []string
	for _, item := range items {
		if max > 0 && len(result) >= max {
			break
		}
		switch v := item.(type) {
		case string:
			result = append(result, v)
		case map[string]interface{}:
			if s := getString(v, field); s != "" {
				result = append(result, s)
			}
		}
	}
	return result
}

// buildCoverLetterInput 从解析结果中抽取求职信生成所需的字段
func buildCoverLetterInput(jobData, resumeData, matchData json.RawMessage) llm.CoverLetterInput {
	job := asMap(jobData)
	resume := asMap(resumeData)
	match := asMap(matchData)

	input := llm.CoverLetterInput{
		JobTitle:         getString(job, "job_title"),
		Company:          getString(job, "company"),
		RequiredSkills:   stringItems(getList(job, "required_skills"), "skill", 5),
		Responsibilities: stringItems(getList(job, "responsibilities"), "description", 3),
		CandidateName:    getString(resume, "name"),
	}

	if years := getFloat(resume, "total_experience_years"); years > 0 {
		input.ExperienceYears = fmt.Sprintf("%g", years)
	}

	// 最近一段工作经历
	if experience := getList(resume, "experience"); len(experience) > 0 {
		if recent, ok := experience[0].(map[string]interface{}); ok {
			input.CurrentTitle = getString(recent, "title")
			input.CurrentCompany = getString(recent, "company")

			// 优先取量化成就，其次取职责描述
			achievements := stringItems(getList(recent, "achievements"), "description", 1)
			if len(achievements) == 0 {
				achievements = stringItems(getList(recent, "responsibilities"), "description", 1)
			}
			if len(achievements) > 0 {
				input.KeyAchievement = achievements[0]
			}
		}
	}

	// 匹配到的技能，没有时回退到候选人自己的技能
	input.RelevantSkills = stringItems(getList(match, "matching_skills"), "skill", 4)
	if len(input.RelevantSkills) == 0 {
		input.RelevantSkills = stringItems(getList(resume, "skills"), "skill", 5)
	}

	input.MissingKeywords = criticalMissingKeywords(match, 4)

	return input
}

// buildInterviewInput 从解析结果中抽取面试问题生成所需的字段
func buildInterviewInput(jobData, resumeData json.RawMessage) llm.InterviewInput {
	job := asMap(jobData)
	resume := asMap(resumeData)

	input := llm.InterviewInput{
		JobTitle:        getString(job, "job_title"),
		Company:         getString(job, "company"),
		RequiredSkills:  stringItems(getList(job, "required_skills"), "skill", 6),
		ExperienceYears: getFloat(resume, "total_experience_years"),
		CandidateSkills: stringItems(getList(resume, "skills"), "skill", 6),
	}

	if experience := getList(resume, "experience"); len(experience) > 0 {
		if recent, ok := experience[0].(map[string]interface{}); ok {
			input.CurrentTitle = getString(recent, "title")
		}
	}

	return input
}

// criticalMissingKeywords 从匹配报告中提取需要补充的关键词
// 优先取ATS优化部分的关键缺失词，其次取关键词分析的缺失列表
func criticalMissingKeywords(match map[string]interface{}, max int) []string {
	keywords := stringItems(getList(getMap(match, "ats_optimization"), "critical_missing_keywords"), "", max)
	if len(keywords) == 0 {
		keywords = stringItems(getList(getMap(match, "keyword_analysis"), "missing_keywords"), "", max)
	}
	return keywords
}

// MissingKeywordsFromMatch 从匹配报告JSON中提取需要补充的关键词
// 供文档增强流程在没有显式关键词时派生使用
func MissingKeywordsFromMatch(matchData json.RawMessage, max int) []string {
	return criticalMissingKeywords(asMap(matchData), max)
}
