package api

import (
	"net/http"
	"testing"

	"github.com/fyerfyer/resume-match-system/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postJSON(t, "/api/v1/parse-job", model.JobParseRequest{
		JobText: "We need a backend engineer with Go experience",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, 0, resp.Code)

	data := dataAsMap(t, resp)
	assert.Equal(t, "Backend Engineer", data["job_title"])
}

func TestParseJobEndpointValidation(t *testing.T) {
	env := setupTestEnv(t)

	// 缺少job_text
	w := env.postJSON(t, "/api/v1/parse-job", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := parseResponse(t, w)
	assert.NotEqual(t, 0, resp.Code)
}

func TestParseResumeEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postJSON(t, "/api/v1/parse-resume", model.ResumeParseRequest{
		ResumeText: "Alex Chen, software engineer with 6 years of Go",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataAsMap(t, parseResponse(t, w))
	assert.Equal(t, "Alex Chen", data["name"])
}

func TestMatchEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postJSON(t, "/api/v1/match", model.MatchRequest{
		JobText:    "We need a backend engineer",
		ResumeText: "Alex Chen, software engineer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataAsMap(t, parseResponse(t, w))
	assert.Equal(t, float64(72), data["overall_match_score"])
}

func TestMatchEndpointWithResumeID(t *testing.T) {
	env := setupTestEnv(t)

	// 先上传简历
	w := env.postMultipart(t, "/api/v1/upload-resume", "resume.txt",
		[]byte("Alex Chen\nSoftware engineer with Go and Redis"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	uploadData := dataAsMap(t, parseResponse(t, w))
	resumeID := uploadData["resume_id"].(string)
	require.NotEmpty(t, resumeID)

	// 使用简历ID做匹配分析
	w = env.postJSON(t, "/api/v1/match", model.MatchRequest{
		JobText:  "We need a backend engineer",
		ResumeID: resumeID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataAsMap(t, parseResponse(t, w))
	assert.Equal(t, float64(72), data["overall_match_score"])
}

func TestMatchEndpointMissingResume(t *testing.T) {
	env := setupTestEnv(t)

	// 既没有简历文本也没有简历ID
	w := env.postJSON(t, "/api/v1/match", model.MatchRequest{
		JobText: "We need a backend engineer",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 不存在的简历ID
	w = env.postJSON(t, "/api/v1/match", model.MatchRequest{
		JobText:  "We need a backend engineer",
		ResumeID: "no-such-resume",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCoverLetterEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postJSON(t, "/api/v1/cover-letter", model.CoverLetterRequest{
		JobText:    "We need a backend engineer",
		ResumeText: "Alex Chen, software engineer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataAsMap(t, parseResponse(t, w))
	assert.Contains(t, data["cover_letter"], "Sincerely")
	assert.Equal(t, "professional", data["tone"])
}

func TestInterviewQuestionsEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postJSON(t, "/api/v1/interview-questions", model.InterviewRequest{
		JobText:    "We need a backend engineer",
		ResumeText: "Alex Chen, software engineer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	questions, ok := resp.Data.([]interface{})
	require.True(t, ok, "Expected a question list")
	require.Len(t, questions, 1)
}

func TestAnalyzeEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postJSON(t, "/api/v1/analyze", model.AnalyzeRequest{
		JobText:    "We need a backend engineer",
		ResumeText: "Alex Chen, software engineer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataAsMap(t, parseResponse(t, w))
	assert.NotNil(t, data["job"])
	assert.NotNil(t, data["resume"])
	assert.NotNil(t, data["match"])
}

func TestGenerateResumeEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postJSON(t, "/api/v1/generate-resume", model.GenerateResumeRequest{
		JobText:      "We need a backend engineer",
		ResumeText:   "Alex Chen, software engineer",
		Improvements: []string{"Quantify achievements"},
		Keywords:     []string{"Kubernetes"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataAsMap(t, parseResponse(t, w))
	assert.Contains(t, data["tailored_resume"], "ALEX CHEN")
}

func TestHistoryEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	// 产生两条历史记录
	w := env.postJSON(t, "/api/v1/parse-job", model.JobParseRequest{JobText: "job one"})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.postJSON(t, "/api/v1/parse-resume", model.ResumeParseRequest{ResumeText: "resume one"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.get(t, "/api/v1/history?page=1&page_size=10")
	require.Equal(t, http.StatusOK, w.Code)

	data := dataAsMap(t, parseResponse(t, w))
	assert.Equal(t, float64(2), data["total"])

	// 按类型过滤
	w = env.get(t, "/api/v1/history?kind=job_parse")
	require.Equal(t, http.StatusOK, w.Code)

	data = dataAsMap(t, parseResponse(t, w))
	assert.Equal(t, float64(1), data["total"])
}
