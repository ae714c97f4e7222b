package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCleanJSONResponse 测试markdown代码块清理
func TestCleanJSONResponse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanJSONResponse(tc.input))
		})
	}
}

// TestBuildJobParsePrompt 测试职位解析提示词
func TestBuildJobParsePrompt(t *testing.T) {
	prompt := BuildJobParsePrompt("Senior Engineer wanted")
	assert.Contains(t, prompt, "Senior Engineer wanted")
	assert.Contains(t, prompt, "Return only valid JSON")
}

// TestBuildMatchPrompt 测试匹配分析提示词
func TestBuildMatchPrompt(t *testing.T) {
	prompt := BuildMatchPrompt(`{"job_title":"Engineer"}`, `{"name":"Alex"}`)
	assert.Contains(t, prompt, `{"job_title":"Engineer"}`)
	assert.Contains(t, prompt, `{"name":"Alex"}`)
	// 职位在前，简历在后
	assert.Less(t,
		strings.Index(prompt, "JOB POSTING"),
		strings.Index(prompt, "CANDIDATE RESUME"))
}

// TestSystemCoverLetterTone 测试求职信语气切换
func TestSystemCoverLetterTone(t *testing.T) {
	professional := SystemCoverLetter("professional")
	assert.Contains(t, professional, "Confident and direct")

	enthusiastic := SystemCoverLetter("enthusiastic")
	assert.Contains(t, enthusiastic, "Energetic but focused")

	// 未知语气回退为professional
	unknown := SystemCoverLetter("sarcastic")
	assert.Contains(t, unknown, "Confident and direct")
}

// TestBuildCoverLetterPromptDefaults 测试求职信提示词的默认值填充
func TestBuildCoverLetterPromptDefaults(t *testing.T) {
	prompt := BuildCoverLetterPrompt(CoverLetterInput{})
	assert.Contains(t, prompt, "Position: Position")
	assert.Contains(t, prompt, "Company: the company")
	assert.Contains(t, prompt, "Sincerely,\nCandidate")
	assert.Contains(t, prompt, "Use job posting terminology")
}

// TestBuildCoverLetterPromptFields 测试求职信提示词的字段填充
func TestBuildCoverLetterPromptFields(t *testing.T) {
	prompt := BuildCoverLetterPrompt(CoverLetterInput{
		JobTitle:         "Backend Engineer",
		Company:          "Acme Corp",
		RequiredSkills:   []string{"Go", "PostgreSQL"},
		Responsibilities: []string{"Design APIs"},
		CandidateName:    "Alex Chen",
		CurrentTitle:     "Software Engineer",
		CurrentCompany:   "Widgets Inc",
		ExperienceYears:  "6",
		KeyAchievement:   "Cut latency by 40%",
		RelevantSkills:   []string{"Go", "Redis"},
		MissingKeywords:  []string{"Kubernetes"},
	})

	assert.Contains(t, prompt, "Position: Backend Engineer")
	assert.Contains(t, prompt, "Company: Acme Corp")
	assert.Contains(t, prompt, "- Go")
	assert.Contains(t, prompt, "- Design APIs")
	assert.Contains(t, prompt, "Software Engineer at Widgets Inc")
	assert.Contains(t, prompt, "Cut latency by 40%")
	assert.Contains(t, prompt, "Kubernetes")
	assert.Contains(t, prompt, "Sincerely,\nAlex Chen")
}

// TestBuildInterviewPrompt 测试面试问题提示词
func TestBuildInterviewPrompt(t *testing.T) {
	prompt := BuildInterviewPrompt(InterviewInput{
		JobTitle:        "Data Engineer",
		Company:         "Acme Corp",
		RequiredSkills:  []string{"SQL", "Python"},
		CurrentTitle:    "Analyst",
		ExperienceYears: 4,
		CandidateSkills: []string{"SQL", "Excel"},
	})

	assert.Contains(t, prompt, "Data Engineer at Acme Corp")
	assert.Contains(t, prompt, "SQL, Python")
	assert.Contains(t, prompt, "Years Experience: 4")
}

// TestBuildResumeRewritePrompt 测试简历改写提示词
func TestBuildResumeRewritePrompt(t *testing.T) {
	prompt := BuildResumeRewritePrompt(
		"resume body",
		"job body",
		[]string{"quantify achievements"},
		[]string{"Go", "Docker"},
	)
	assert.Contains(t, prompt, "resume body")
	assert.Contains(t, prompt, "job body")
	assert.Contains(t, prompt, "- quantify achievements")
	assert.Contains(t, prompt, "Go, Docker")

	// 空列表时使用占位文本
	empty := BuildResumeRewritePrompt("r", "j", nil, nil)
	assert.Contains(t, empty, "None selected")
}
