package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadResumeEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.postMultipart(t, "/api/v1/upload-resume", "resume.docx",
		testResumeDocx(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataAsMap(t, parseResponse(t, w))
	assert.NotEmpty(t, data["resume_id"])
	assert.Equal(t, "resume.docx", data["filename"])
	assert.Equal(t, "docx", data["file_type"])
	assert.Equal(t, true, data["has_text"])
	assert.Contains(t, data["text"], "Alex Chen")
}

func TestUploadResumeEndpointRejectsFormat(t *testing.T) {
	env := setupTestEnv(t)

	// 不支持的格式
	w := env.postMultipart(t, "/api/v1/upload-resume", "resume.exe",
		[]byte("binary"), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 老版本doc格式给出明确提示
	w = env.postMultipart(t, "/api/v1/upload-resume", "resume.doc",
		[]byte("old word file"), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ".docx")

	// 缺少文件字段
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload-resume", nil)
	resp := httptest.NewRecorder()
	env.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestResumeLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	// 上传两份简历
	w := env.postMultipart(t, "/api/v1/upload-resume", "first.txt",
		[]byte("First resume content"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	firstID := dataAsMap(t, parseResponse(t, w))["resume_id"].(string)

	w = env.postMultipart(t, "/api/v1/upload-resume", "second.txt",
		[]byte("Second resume content"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 列表
	w = env.get(t, "/api/v1/resumes")
	require.Equal(t, http.StatusOK, w.Code)
	data := dataAsMap(t, parseResponse(t, w))
	assert.Equal(t, float64(2), data["total"])

	// 单条查询
	w = env.get(t, "/api/v1/resumes/"+firstID)
	require.Equal(t, http.StatusOK, w.Code)
	data = dataAsMap(t, parseResponse(t, w))
	assert.Equal(t, "first.txt", data["filename"])

	// 删除
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/"+firstID, nil)
	resp := httptest.NewRecorder()
	env.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	// 删除后查询返回404
	w = env.get(t, "/api/v1/resumes/"+firstID)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetResumeNotFound(t *testing.T) {
	env := setupTestEnv(t)

	w := env.get(t, fmt.Sprintf("/api/v1/resumes/%s", "missing-id"))
	require.Equal(t, http.StatusNotFound, w.Code)
}
