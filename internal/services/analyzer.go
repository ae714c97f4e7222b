package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fyerfyer/resume-match-system/internal/cache"
	"github.com/fyerfyer/resume-match-system/internal/llm"
	"github.com/fyerfyer/resume-match-system/internal/models"
	"github.com/fyerfyer/resume-match-system/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// 各类分析的生成token上限，依据提示词的输出规模
const (
	maxTokensJobParse    = 2500
	maxTokensResumeParse = 3000
	maxTokensMatch       = 5000
	maxTokensCoverLetter = 1200
	maxTokensInterview   = 2500
)

// AnalyzerService 分析服务
// 负责协调LLM调用、结果缓存和分析历史记录
type AnalyzerService struct {
	llm      llm.Client                    // 大模型客户端
	cache    cache.Cache                   // 缓存
	history  repository.AnalysisRepository // 分析历史仓储，可选
	logger   *logrus.Logger                // 日志记录器
	cacheTTL time.Duration                 // 缓存有效期
}

// AnalyzerOption 分析服务配置选项
type AnalyzerOption func(*AnalyzerService)

// NewAnalyzerService 创建分析服务实例
func NewAnalyzerService(llmClient llm.Client, c cache.Cache, opts ...AnalyzerOption) *AnalyzerService {
	service := &AnalyzerService{
		llm:      llmClient,
		cache:    c,
		logger:   logrus.New(),
		cacheTTL: 24 * time.Hour, // 默认缓存24小时
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// WithCacheTTL 设置缓存时间
func WithCacheTTL(ttl time.Duration) AnalyzerOption {
	return func(s *AnalyzerService) {
		s.cacheTTL = ttl
	}
}

// WithAnalysisHistory 设置分析历史仓储
func WithAnalysisHistory(repo repository.AnalysisRepository) AnalyzerOption {
	return func(s *AnalyzerService) {
		s.history = repo
	}
}

// WithAnalyzerLogger 设置日志记录器
func WithAnalyzerLogger(logger *logrus.Logger) AnalyzerOption {
	return func(s *AnalyzerService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// ParseJob 解析职位描述，返回结构化的职位信息
func (s *AnalyzerService) ParseJob(ctx context.Context, jobText string) (json.RawMessage, error) {
	if jobText == "" {
		return nil, fmt.Errorf("job text cannot be empty")
	}

	return s.analyzeJSON(ctx, models.KindJobParse,
		llm.SystemJobParse, llm.BuildJobParsePrompt(jobText),
		maxTokensJobParse, jobText)
}

// ParseResume 解析简历文本，返回结构化的候选人信息
func (s *AnalyzerService) ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error) {
	if resumeText == "" {
		return nil, fmt.Errorf("resume text cannot be empty")
	}

	return s.analyzeJSON(ctx, models.KindResumeParse,
		llm.SystemResumeParse, llm.BuildResumeParsePrompt(resumeText),
		maxTokensResumeParse, resumeText)
}

// Match 对比简历和职位描述，返回匹配分析报告
// 内部先分别解析两者（各自可命中缓存），再做匹配分析
func (s *AnalyzerService) Match(ctx context.Context, jobText, resumeText string) (json.RawMessage, error) {
	if jobText == "" || resumeText == "" {
		return nil, fmt.Errorf("job text and resume text cannot be empty")
	}

	jobData, err := s.ParseJob(ctx, jobText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job description: %w", err)
	}

	resumeData, err := s.ParseResume(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	return s.analyzeJSON(ctx, models.KindMatch,
		llm.SystemMatch, llm.BuildMatchPrompt(string(jobData), string(resumeData)),
		maxTokensMatch, jobText, resumeText)
}

// CoverLetter 生成求职信
// tone可选professional、enthusiastic、conversational
func (s *AnalyzerService) CoverLetter(ctx context.Context, jobText, resumeText, tone string) (string, error) {
	if jobText == "" || resumeText == "" {
		return "", fmt.Errorf("job text and resume text cannot be empty")
	}
	if tone == "" {
		tone = "professional"
	}

	// 尝试从缓存获取
	cacheKey := cache.AnalysisKey(string(models.KindCoverLetter), jobText, resumeText, tone)
	if cached, found, err := s.cache.Get(cacheKey); err == nil && found {
		return cached, nil
	}

	jobData, err := s.ParseJob(ctx, jobText)
	if err != nil {
		return "", fmt.Errorf("failed to parse job description: %w", err)
	}

	resumeData, err := s.ParseResume(ctx, resumeText)
	if err != nil {
		return "", fmt.Errorf("failed to parse resume: %w", err)
	}

	matchData, err := s.Match(ctx, jobText, resumeText)
	if err != nil {
		return "", fmt.Errorf("failed to analyze match: %w", err)
	}

	input := buildCoverLetterInput(jobData, resumeData, matchData)

	resp, err := s.llm.Generate(ctx, llm.BuildCoverLetterPrompt(input),
		llm.WithSystemPrompt(llm.SystemCoverLetter(tone)),
		llm.WithGenerateMaxTokens(maxTokensCoverLetter))
	if err != nil {
		s.recordFailure(models.KindCoverLetter, cache.HashContent(jobText, resumeText, tone), err)
		return "", fmt.Errorf("failed to generate cover letter: %w", err)
	}

	letter := resp.Text
	s.cache.Set(cacheKey, letter, s.cacheTTL)
	s.recordSuccess(models.KindCoverLetter,
		cache.HashContent(jobText, resumeText, tone),
		datatypes.JSON(mustMarshal(map[string]string{"cover_letter": letter})),
		resp.TokenCount)

	return letter, nil
}

// InterviewQuestions 预测面试问题，返回问题列表的JSON数组
func (s *AnalyzerService) InterviewQuestions(ctx context.Context, jobText, resumeText string) (json.RawMessage, error) {
	if jobText == "" || resumeText == "" {
		return nil, fmt.Errorf("job text and resume text cannot be empty")
	}

	jobData, err := s.ParseJob(ctx, jobText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job description: %w", err)
	}

	resumeData, err := s.ParseResume(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	input := buildInterviewInput(jobData, resumeData)

	return s.analyzeJSON(ctx, models.KindInterviewQuestions,
		llm.SystemInterviewQuestions, llm.BuildInterviewPrompt(input),
		maxTokensInterview, jobText, resumeText)
}

// AnalyzeReport 综合分析报告
type AnalyzeReport struct {
	Job    json.RawMessage `json:"job"`    // 职位解析结果
	Resume json.RawMessage `json:"resume"` // 简历解析结果
	Match  json.RawMessage `json:"match"`  // 匹配分析结果
}

// Analyze 执行完整的职位+简历+匹配分析
func (s *AnalyzerService) Analyze(ctx context.Context, jobText, resumeText string) (*AnalyzeReport, error) {
	match, err := s.Match(ctx, jobText, resumeText)
	if err != nil {
		return nil, err
	}

	// Match内部已经解析过两者，这里直接命中缓存
	jobData, err := s.ParseJob(ctx, jobText)
	if err != nil {
		return nil, err
	}
	resumeData, err := s.ParseResume(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	return &AnalyzeReport{
		Job:    jobData,
		Resume: resumeData,
		Match:  match,
	}, nil
}

// RewriteResume 根据改进建议和关键词改写简历文本
func (s *AnalyzerService) RewriteResume(ctx context.Context, resumeText, jobText string, improvements, keywords []string) (string, error) {
	if resumeText == "" || jobText == "" {
		return "", fmt.Errorf("job text and resume text cannot be empty")
	}

	resp, err := s.llm.Generate(ctx,
		llm.BuildResumeRewritePrompt(resumeText, jobText, improvements, keywords),
		llm.WithSystemPrompt(llm.SystemResumeRewrite),
		llm.WithGenerateMaxTokens(4000))
	if err != nil {
		return "", fmt.Errorf("failed to rewrite resume: %w", err)
	}

	return resp.Text, nil
}

// History 查询分析历史记录
func (s *AnalyzerService) History(offset, limit int, kind models.AnalysisKind) ([]*models.Analysis, int64, error) {
	if s.history == nil {
		return nil, 0, fmt.Errorf("analysis history not configured")
	}

	filters := map[string]interface{}{}
	if kind != "" {
		filters["kind"] = kind
	}
	return s.history.List(offset, limit, filters)
}

// analyzeJSON 执行一次返回JSON的LLM分析
// 缓存命中直接返回，否则调用LLM、校验JSON、写缓存并记录历史
func (s *AnalyzerService) analyzeJSON(ctx context.Context, kind models.AnalysisKind,
	system, user string, maxTokens int, hashParts ...string) (json.RawMessage, error) {

	cacheKey := cache.AnalysisKey(string(kind), hashParts...)
	hash := cache.HashContent(hashParts...)

	// 1. 尝试从缓存获取
	if cached, found, err := s.cache.Get(cacheKey); err == nil && found {
		return json.RawMessage(cached), nil
	}

	// 2. 调用LLM
	resp, err := s.llm.Generate(ctx, user,
		llm.WithSystemPrompt(system),
		llm.WithGenerateMaxTokens(maxTokens))
	if err != nil {
		s.recordFailure(kind, hash, err)
		return nil, fmt.Errorf("llm analysis failed: %w", err)
	}

	// 3. 清理并校验JSON
	cleaned := llm.CleanJSONResponse(resp.Text)
	if !json.Valid([]byte(cleaned)) {
		err := fmt.Errorf("llm returned invalid JSON for %s analysis", kind)
		s.recordFailure(kind, hash, err)
		return nil, err
	}

	// 4. 缓存结果并记录历史
	s.cache.Set(cacheKey, cleaned, s.cacheTTL)
	s.recordSuccess(kind, hash, datatypes.JSON([]byte(cleaned)), resp.TokenCount)

	return json.RawMessage(cleaned), nil
}

// recordSuccess 记录一次成功的分析
func (s *AnalyzerService) recordSuccess(kind models.AnalysisKind, hash string, result datatypes.JSON, tokens int) {
	if s.history == nil {
		return
	}

	now := time.Now()
	analysis := &models.Analysis{
		ID:          uuid.New().String(),
		Kind:        kind,
		RequestHash: hash,
		Model:       s.llm.Name(),
		Status:      models.AnalysisCompleted,
		CompletedAt: &now,
		Result:      result,
		TokenCount:  tokens,
	}
	if err := s.history.Create(analysis); err != nil {
		// 历史记录失败不影响主流程
		s.logger.WithError(err).Warn("Failed to record analysis history")
	}
}

// recordFailure 记录一次失败的分析
func (s *AnalyzerService) recordFailure(kind models.AnalysisKind, hash string, cause error) {
	if s.history == nil {
		return
	}

	analysis := &models.Analysis{
		ID:          uuid.New().String(),
		Kind:        kind,
		RequestHash: hash,
		Model:       s.llm.Name(),
		Status:      models.AnalysisFailed,
		Error:       cause.Error(),
	}
	if err := s.history.Create(analysis); err != nil {
		s.logger.WithError(err).Warn("Failed to record analysis history")
	}
}

// mustMarshal 序列化为JSON，失败时返回空对象
func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
