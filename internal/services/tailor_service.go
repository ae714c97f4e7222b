package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fyerfyer/resume-match-system/internal/document"
	"github.com/fyerfyer/resume-match-system/internal/tailor"
	"github.com/sirupsen/logrus"
)

// 派生关键词的默认数量上限
const defaultDerivedKeywords = 8

// TailorService 简历文档增强服务
// 负责文本提取、关键词派生和DOCX文档的非破坏性增强
type TailorService struct {
	analyzer *AnalyzerService // 分析服务，用于派生关键词，可选
	tailor   *tailor.Tailor   // 文档增强器
	logger   *logrus.Logger   // 日志记录器
}

// TailorServiceOption 增强服务配置选项
type TailorServiceOption func(*TailorService)

// NewTailorService 创建简历文档增强服务实例
func NewTailorService(opts ...TailorServiceOption) *TailorService {
	service := &TailorService{
		logger: logrus.New(),
	}

	for _, opt := range opts {
		opt(service)
	}

	if service.tailor == nil {
		service.tailor = tailor.New(tailor.WithLogger(service.logger))
	}

	return service
}

// WithAnalyzer 设置用于派生关键词的分析服务
func WithAnalyzer(analyzer *AnalyzerService) TailorServiceOption {
	return func(s *TailorService) {
		s.analyzer = analyzer
	}
}

// WithTailor 设置文档增强器
func WithTailor(t *tailor.Tailor) TailorServiceOption {
	return func(s *TailorService) {
		s.tailor = t
	}
}

// WithTailorLogger 设置日志记录器
func WithTailorLogger(logger *logrus.Logger) TailorServiceOption {
	return func(s *TailorService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// ExtractText 从上传的简历文件中提取纯文本
func (s *TailorService) ExtractText(data []byte, filename string) (string, error) {
	text, err := document.ExtractText(data, filename)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}
	return text, nil
}

// ParseKeywords 解析逗号分隔的关键词串
func ParseKeywords(raw string) []string {
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// DeriveKeywords 从职位描述和简历文本派生需要补充的关键词
// 依赖分析服务的匹配报告
func (s *TailorService) DeriveKeywords(ctx context.Context, jobText, resumeText string) ([]string, error) {
	if s.analyzer == nil {
		return nil, fmt.Errorf("analyzer not configured for keyword derivation")
	}

	matchData, err := s.analyzer.Match(ctx, jobText, resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keywords: %w", err)
	}

	return MissingKeywordsFromMatch(matchData, defaultDerivedKeywords), nil
}

// EnhanceResume 对DOCX简历做非破坏性关键词增强
// 文件必须是.docx格式；任何增强失败都会退回原始文件内容
func (s *TailorService) EnhanceResume(original []byte, filename string, keywords []string) (*tailor.Result, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".docx" {
		return nil, fmt.Errorf("only .docx files can be enhanced, got %s", ext)
	}

	result, err := s.tailor.Enhance(original, keywords)
	if err != nil {
		return result, err
	}

	s.logger.WithFields(logrus.Fields{
		"filename":         filename,
		"keywords_added":   len(result.AddedKeywords),
		"bullets_modified": result.BulletsModified,
		"enhanced":         result.Enhanced,
	}).Info("Resume enhancement finished")

	return result, nil
}
