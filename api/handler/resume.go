package handler

import (
	"errors"
	"net/http"

	"github.com/fyerfyer/resume-match-system/api/middleware"
	"github.com/fyerfyer/resume-match-system/api/model"
	"github.com/fyerfyer/resume-match-system/internal/models"
	"github.com/fyerfyer/resume-match-system/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ResumeHandler 处理简历文件相关的API请求
type ResumeHandler struct {
	resumes *services.ResumeService // 简历文件服务
	logger  *logrus.Logger          // 日志记录器
}

// NewResumeHandler 创建新的简历文件处理器
func NewResumeHandler(resumes *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		resumes: resumes,
		logger:  middleware.GetLogger(),
	}
}

// Upload 上传简历文件
// POST /api/v1/upload-resume
func (h *ResumeHandler) Upload(c *gin.Context) {
	var req model.ResumeUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"请选择要上传的简历文件",
		))
		return
	}

	file, err := req.File.Open()
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"读取上传文件失败",
		))
		return
	}
	defer file.Close()

	resume, err := h.resumes.Upload(c.Request.Context(), file, req.File.Filename)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"filename": req.File.Filename,
			"error":    err.Error(),
		}).Warn("Resume upload rejected")

		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"上传简历失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.ResumeUploadResponse{
		ResumeID:  resume.ID,
		FileName:  resume.FileName,
		FileType:  resume.FileType,
		FileSize:  resume.FileSize,
		HasText:   resume.Text != "",
		Text:      resume.Text,
		CreatedAt: resume.UploadedAt.Format("2006-01-02 15:04:05"),
	}))
}

// Get 查询简历信息
// GET /api/v1/resumes/:id
func (h *ResumeHandler) Get(c *gin.Context) {
	var req model.ResumeIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的简历ID",
		))
		return
	}

	resume, err := h.resumes.Get(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, models.ErrResumeNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse(
				http.StatusNotFound,
				"简历不存在",
			))
			return
		}

		h.logger.WithError(err).Error("Failed to get resume")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"查询简历失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.ResumeInfo{
		ResumeID:   resume.ID,
		FileName:   resume.FileName,
		FileType:   resume.FileType,
		FileSize:   resume.FileSize,
		HasText:    resume.Text != "",
		UploadedAt: resume.UploadedAt,
	}))
}

// List 分页查询简历列表
// GET /api/v1/resumes
func (h *ResumeHandler) List(c *gin.Context) {
	var req model.PaginationRequest
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

	resumes, total, err := h.resumes.List(c.Request.Context(), offset, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list resumes")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"查询简历列表失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.ResumeListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Resumes:  model.ConvertToResumeInfo(resumes),
	}))
}

// Delete 删除简历
// DELETE /api/v1/resumes/:id
func (h *ResumeHandler) Delete(c *gin.Context) {
	var req model.ResumeIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的简历ID",
		))
		return
	}

	if err := h.resumes.Delete(c.Request.Context(), req.ID); err != nil {
		h.logger.WithError(err).Error("Failed to delete resume")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"删除简历失败: "+err.Error(),
		))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(gin.H{
		"resume_id": req.ID,
		"deleted":   true,
	}))
}
