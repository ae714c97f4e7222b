package handler

import (
	"net/http"

	"github.com/fyerfyer/resume-match-system/api/middleware"
	"github.com/fyerfyer/resume-match-system/api/model"
	"github.com/fyerfyer/resume-match-system/internal/models"
	"github.com/fyerfyer/resume-match-system/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AnalyzeHandler 处理职位与简历分析相关的API请求
type AnalyzeHandler struct {
	analyzer *services.AnalyzerService // 分析服务
	resumes  *services.ResumeService   // 简历文件服务，用于按ID取简历文本
	logger   *logrus.Logger            // 日志记录器
}

// NewAnalyzeHandler 创建新的分析处理器
func NewAnalyzeHandler(analyzer *services.AnalyzerService, resumes *services.ResumeService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		resumes:  resumes,
		logger:   middleware.GetLogger(),
	}
}

// resolveResumeText 解析请求中的简历文本
// 优先使用直接传入的文本，其次按ID查已上传的简历
func (h *AnalyzeHandler) resolveResumeText(c *gin.Context, resumeText, resumeID string) (string, bool) {
	if resumeText != "" {
		return resumeText, true
	}

	if resumeID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"简历文本和简历ID不能同时为空",
		))
		return "", false
	}

	if h.resumes == nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"简历文件服务未启用",
		))
		return "", false
	}

	text, err := h.resumes.GetText(c.Request.Context(), resumeID)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"resume_id": resumeID,
			"error":     err.Error(),
		}).Warn("Failed to load resume text")

		c.JSON(http.StatusNotFound, model.NewErrorResponse(
			http.StatusNotFound,
			"找不到简历文本: "+err.Error(),
		))
		return "", false
	}

	return text, true
}

// ParseJob 解析职位描述
// POST /api/v1/parse-job
func (h *AnalyzeHandler) ParseJob(c *gin.Context) {
	var req model.JobParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的请求参数",
		))
		return
	}

	result, err := h.analyzer.ParseJob(c.Request.Context(), req.JobText)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse job description")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"解析职位描述失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(result))
}

// ParseResume 解析简历文本
// POST /api/v1/parse-resume
func (h *AnalyzeHandler) ParseResume(c *gin.Context) {
	var req model.ResumeParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的请求参数",
		))
		return
	}

	result, err := h.analyzer.ParseResume(c.Request.Context(), req.ResumeText)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse resume")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"解析简历失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(result))
}

// Match 匹配分析
// POST /api/v1/match
func (h *AnalyzeHandler) Match(c *gin.Context) {
	var req model.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的请求参数",
		))
		return
	}

	resumeText, ok := h.resolveResumeText(c, req.ResumeText, req.ResumeID)
	if !ok {
		return
	}

	result, err := h.analyzer.Match(c.Request.Context(), req.JobText, resumeText)
	if err != nil {
		h.logger.WithError(err).Error("Failed to analyze match")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"匹配分析失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(result))
}

// CoverLetter 生成求职信
// POST /api/v1/cover-letter
func (h *AnalyzeHandler) CoverLetter(c *gin.Context) {
	var req model.CoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的请求参数",
		))
		return
	}

	resumeText, ok := h.resolveResumeText(c, req.ResumeText, req.ResumeID)
	if !ok {
		return
	}

	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	letter, err := h.analyzer.CoverLetter(c.Request.Context(), req.JobText, resumeText, tone)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate cover letter")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"生成求职信失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.CoverLetterResponse{
		CoverLetter: letter,
		Tone:        tone,
	}))
}

// InterviewQuestions 预测面试问题
// POST /api/v1/interview-questions
func (h *AnalyzeHandler) InterviewQuestions(c *gin.Context) {
	var req model.InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的请求参数",
		))
		return
	}

	resumeText, ok := h.resolveResumeText(c, req.ResumeText, req.ResumeID)
	if !ok {
		return
	}

	result, err := h.analyzer.InterviewQuestions(c.Request.Context(), req.JobText, resumeText)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate interview questions")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"生成面试问题失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(result))
}

// Analyze 综合分析
// POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的请求参数",
		))
		return
	}

	resumeText, ok := h.resolveResumeText(c, req.ResumeText, req.ResumeID)
	if !ok {
		return
	}

	report, err := h.analyzer.Analyze(c.Request.Context(), req.JobText, resumeText)
	if err != nil {
		h.logger.WithError(err).Error("Failed to run combined analysis")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"综合分析失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.AnalyzeResponse{
		Job:    report.Job,
		Resume: report.Resume,
		Match:  report.Match,
	}))
}

// GenerateResume 根据改进建议和关键词重写简历文本
// POST /api/v1/generate-resume
func (h *AnalyzeHandler) GenerateResume(c *gin.Context) {
	var req model.GenerateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的请求参数",
		))
		return
	}

	resumeText, ok := h.resolveResumeText(c, req.ResumeText, req.ResumeID)
	if !ok {
		return
	}

	rewritten, err := h.analyzer.RewriteResume(c.Request.Context(),
		resumeText, req.JobText, req.Improvements, req.Keywords)
	if err != nil {
		h.logger.WithError(err).Error("Failed to rewrite resume")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"重写简历失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(gin.H{
		"tailored_resume": rewritten,
	}))
}

// History 查询分析历史
// GET /api/v1/history
func (h *AnalyzeHandler) History(c *gin.Context) {
	var req model.HistoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的查询参数",
		))
		return
	}

	page := req.GetPage()
	pageSize := req.GetPageSize()
	offset := (page - 1) * pageSize

	records, total, err := h.analyzer.History(offset, pageSize, models.AnalysisKind(req.Kind))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list analysis history")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"查询分析历史失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.HistoryListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Analyses: model.ConvertToAnalysisInfo(records),
	}))
}
