package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fyerfyer/resume-match-system/internal/models"
	"github.com/fyerfyer/resume-match-system/internal/repository"
	"github.com/fyerfyer/resume-match-system/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestResumeService 创建使用临时目录存储和内存数据库的简历服务
func newTestResumeService(t *testing.T) *ResumeService {
	t.Helper()

	store, err := storage.NewLocalStorage(storage.LocalConfig{Path: t.TempDir()})
	require.NoError(t, err)

	dbName := fmt.Sprintf("file:resume_test_%d?mode=memory", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ResumeFile{}))

	return NewResumeService(store, repository.NewResumeRepositoryWithDB(db))
}

func TestResumeServiceUploadText(t *testing.T) {
	service := newTestResumeService(t)
	ctx := context.Background()

	content := "Alex Chen\n\nSkills: Go, Redis\n\nBuilt the payment service"
	resume, err := service.Upload(ctx, bytes.NewReader([]byte(content)), "resume.txt")
	require.NoError(t, err)
	require.NotNil(t, resume)

	assert.NotEmpty(t, resume.ID)
	assert.Equal(t, "resume.txt", resume.FileName)
	assert.Equal(t, "txt", resume.FileType)
	assert.Equal(t, int64(len(content)), resume.FileSize)
	assert.Contains(t, resume.Text, "payment service")

	// 原始内容可回读
	data, err := service.GetContent(ctx, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	// 提取文本可查询
	text, err := service.GetText(ctx, resume.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Go, Redis")
}

func TestResumeServiceUploadDocx(t *testing.T) {
	service := newTestResumeService(t)

	resume, err := service.Upload(context.Background(),
		bytes.NewReader(buildResumeDocx()), "resume.docx")
	require.NoError(t, err)

	assert.Equal(t, "docx", resume.FileType)
	assert.Contains(t, resume.Text, "Alex Chen")
}

func TestResumeServiceUploadValidation(t *testing.T) {
	service := newTestResumeService(t)
	ctx := context.Background()

	_, err := service.Upload(ctx, bytes.NewReader([]byte("data")), "")
	assert.Error(t, err)

	_, err = service.Upload(ctx, bytes.NewReader([]byte("data")), "resume.exe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")

	_, err = service.Upload(ctx, bytes.NewReader([]byte("data")), "resume.doc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save as .docx")

	_, err = service.Upload(ctx, bytes.NewReader(nil), "resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestResumeServiceUploadCorruptDocx(t *testing.T) {
	service := newTestResumeService(t)

	// 损坏的DOCX也能上传成功，只是没有提取文本
	resume, err := service.Upload(context.Background(),
		bytes.NewReader([]byte("not a zip archive")), "broken.docx")
	require.NoError(t, err)
	assert.Empty(t, resume.Text)

	_, err = service.GetText(context.Background(), resume.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text extracted")
}

func TestResumeServiceListAndDelete(t *testing.T) {
	service := newTestResumeService(t)
	ctx := context.Background()

	first, err := service.Upload(ctx, bytes.NewReader([]byte("first resume")), "first.txt")
	require.NoError(t, err)
	_, err = service.Upload(ctx, bytes.NewReader([]byte("second resume")), "second.txt")
	require.NoError(t, err)

	resumes, total, err := service.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, resumes, 2)

	require.NoError(t, service.Delete(ctx, first.ID))

	_, err = service.Get(ctx, first.ID)
	assert.ErrorIs(t, err, models.ErrResumeNotFound)

	_, total, err = service.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
