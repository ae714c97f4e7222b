package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/fyerfyer/resume-match-system/api/model"
	"github.com/fyerfyer/resume-match-system/internal/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailorResumeEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postMultipart(t, "/api/v1/tailor-resume", "resume.docx",
		testResumeDocx(), map[string]string{
			"keywords": "Kubernetes, Terraform",
		})
	require.Equal(t, http.StatusOK, w.Code)

	// 返回DOCX附件
	assert.Contains(t, w.Header().Get("Content-Type"),
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	assert.Contains(t, w.Header().Get("Content-Disposition"), `tailored-resume.docx`)

	// 响应头里的增强摘要
	var summary model.TailorSummary
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("X-Tailor-Summary")), &summary))
	assert.True(t, summary.Enhanced)
	assert.Contains(t, summary.KeywordsAdded, "Kubernetes")

	// 返回的文档仍能被解析，且技能段落带上了新关键词
	doc, err := docx.Open(w.Body.Bytes())
	require.NoError(t, err)

	var found bool
	for _, p := range doc.Paragraphs() {
		text := p.Text()
		if strings.Contains(text, "Go") && strings.Contains(text, "Kubernetes") {
			found = true
		}
	}
	assert.True(t, found, "Skills paragraph should carry the new keyword")
}

func TestTailorResumeEndpointDerivedKeywords(t *testing.T) {
	env := setupTestEnv(t)

	// 没有显式关键词但提供了职位描述，从匹配报告派生
	w := env.postMultipart(t, "/api/v1/tailor-resume", "resume.docx",
		testResumeDocx(), map[string]string{
			"job_text": "We need a backend engineer with Kubernetes",
		})
	require.Equal(t, http.StatusOK, w.Code)

	var summary model.TailorSummary
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("X-Tailor-Summary")), &summary))
	assert.Contains(t, summary.KeywordsAdded, "Kubernetes")
	assert.Contains(t, summary.KeywordsAdded, "Terraform")
}

func TestTailorResumeEndpointNoKeywords(t *testing.T) {
	env := setupTestEnv(t)
	original := testResumeDocx()

	// 既没有关键词也没有职位描述，原样返回
	w := env.postMultipart(t, "/api/v1/tailor-resume", "resume.docx", original, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, original, w.Body.Bytes())
	assert.Empty(t, w.Header().Get("X-Tailor-Summary"))
}

func TestTailorResumeEndpointRejectsNonDocx(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postMultipart(t, "/api/v1/tailor-resume", "resume.pdf",
		[]byte("%PDF-1.4"), map[string]string{"keywords": "Go"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ".docx")
}

func TestTailorResumeEndpointCorruptDocx(t *testing.T) {
	env := setupTestEnv(t)

	// 损坏的文档拒绝增强
	w := env.postMultipart(t, "/api/v1/tailor-resume", "resume.docx",
		[]byte("not a zip archive"), map[string]string{"keywords": "Go"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	// 纯文本导出
	w := env.postJSON(t, "/api/v1/download", model.DownloadRequest{
		Content:  "Dear hiring manager,\n\nSincerely",
		Filename: "cover-letter",
		Format:   "txt",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `cover-letter.txt`)
	assert.Equal(t, "Dear hiring manager,\n\nSincerely", w.Body.String())

	// PDF导出
	w = env.postJSON(t, "/api/v1/download", model.DownloadRequest{
		Content:  "Resume content",
		Filename: "resume",
		Format:   "pdf",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/pdf")
	assert.True(t, len(w.Body.Bytes()) > 0)

	// DOCX导出的文档可以被解析器读回
	w = env.postJSON(t, "/api/v1/download", model.DownloadRequest{
		Content:  "Alex Chen\nSoftware Engineer",
		Filename: "resume",
		Format:   "docx",
	})
	require.Equal(t, http.StatusOK, w.Code)
	_, err := docx.Open(w.Body.Bytes())
	require.NoError(t, err)
}

func TestDownloadEndpointUnsupportedFormat(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postJSON(t, "/api/v1/download", model.DownloadRequest{
		Content:  "content",
		Filename: "file",
		Format:   "rtf",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
