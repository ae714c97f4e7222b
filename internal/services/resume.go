package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fyerfyer/resume-match-system/internal/document"
	"github.com/fyerfyer/resume-match-system/internal/models"
	"github.com/fyerfyer/resume-match-system/internal/repository"
	"github.com/fyerfyer/resume-match-system/pkg/storage"
	"github.com/sirupsen/logrus"
)

// ResumeService 简历文件服务
// 负责简历文件的上传、文本提取和元数据管理
type ResumeService struct {
	storage storage.Storage             // 文件存储服务
	repo    repository.ResumeRepository // 简历元数据仓储
	logger  *logrus.Logger              // 日志记录器
}

// ResumeOption 简历服务配置选项
type ResumeOption func(*ResumeService)

// NewResumeService 创建简历文件服务实例
func NewResumeService(store storage.Storage, repo repository.ResumeRepository, opts ...ResumeOption) *ResumeService {
	service := &ResumeService{
		storage: store,
		repo:    repo,
		logger:  logrus.New(),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// WithResumeLogger 设置日志记录器
func WithResumeLogger(logger *logrus.Logger) ResumeOption {
	return func(s *ResumeService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Upload 保存上传的简历文件并提取文本
// 文件内容先落盘，文本提取失败不影响上传结果
func (s *ResumeService) Upload(ctx context.Context, reader io.Reader, filename string) (*models.ResumeFile, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}

	// 校验文件格式
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx", ".pdf", ".md", ".markdown", ".txt":
	case ".doc":
		return nil, fmt.Errorf("legacy .doc files are not supported, save as .docx")
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}

	// 读取内容，既用于存储也用于文本提取
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("uploaded file is empty")
	}

	// 保存到文件存储
	info, err := s.storage.Save(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	resume := &models.ResumeFile{
		ID:       info.ID,
		FileName: filename,
		FileType: strings.TrimPrefix(ext, "."),
		FilePath: info.Path,
		FileSize: info.Size,
	}

	// 提取文本，失败只记录日志
	if text, err := document.ExtractText(data, filename); err != nil {
		s.logger.WithFields(logrus.Fields{
			"resume_id": info.ID,
			"filename":  filename,
		}).WithError(err).Warn("Failed to extract resume text")
	} else {
		resume.Text = text
	}

	if err := s.repo.Create(resume); err != nil {
		// 元数据落库失败时回滚已保存的文件
		if delErr := s.storage.Delete(info.ID); delErr != nil {
			s.logger.WithError(delErr).Warn("Failed to clean up stored file")
		}
		return nil, fmt.Errorf("failed to record resume metadata: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"resume_id": resume.ID,
		"filename":  filename,
		"size":      resume.FileSize,
	}).Info("Resume uploaded successfully")

	return resume, nil
}

// Get 获取简历元数据
func (s *ResumeService) Get(ctx context.Context, id string) (*models.ResumeFile, error) {
	return s.repo.GetByID(id)
}

// GetContent 获取简历文件的原始内容
func (s *ResumeService) GetContent(ctx context.Context, id string) ([]byte, error) {
	reader, err := s.storage.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// GetText 获取简历的提取文本
func (s *ResumeService) GetText(ctx context.Context, id string) (string, error) {
	resume, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	if resume.Text == "" {
		return "", fmt.Errorf("no text extracted for resume %s", id)
	}
	return resume.Text, nil
}

// List 分页列出上传的简历
func (s *ResumeService) List(ctx context.Context, offset, limit int) ([]*models.ResumeFile, int64, error) {
	return s.repo.List(offset, limit)
}

// Delete 删除简历文件及其元数据
func (s *ResumeService) Delete(ctx context.Context, id string) error {
	if err := s.storage.Delete(id); err != nil {
		// 文件可能已经不存在，继续删除元数据
		s.logger.WithField("resume_id", id).WithError(err).Warn("Failed to delete stored file")
	}

	return s.repo.Delete(id)
}
