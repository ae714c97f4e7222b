package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/fyerfyer/resume-match-system/api/middleware"
	"github.com/fyerfyer/resume-match-system/api/model"
	"github.com/fyerfyer/resume-match-system/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// docx文件的MIME类型
const docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// TailorHandler 处理简历文档增强的API请求
type TailorHandler struct {
	tailor *services.TailorService // 文档增强服务
	logger *logrus.Logger          // 日志记录器
}

// NewTailorHandler 创建新的简历增强处理器
func NewTailorHandler(tailor *services.TailorService) *TailorHandler {
	return &TailorHandler{
		tailor: tailor,
		logger: middleware.GetLogger(),
	}
}

// TailorResume 对上传的DOCX简历做非破坏性关键词增强
// POST /api/v1/tailor-resume
// 增强后的文档以附件形式返回，摘要信息放在响应头中
func (h *TailorHandler) TailorResume(c *gin.Context) {
	var req model.TailorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"请选择要增强的DOCX简历文件",
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

	original, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"读取上传文件失败",
		))
		return
	}

	// 关键词优先取表单参数，没有时从职位描述派生
	keywords := services.ParseKeywords(req.Keywords)
	if len(keywords) == 0 && req.JobText != "" {
		resumeText, err := h.tailor.ExtractText(original, req.File.Filename)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(
				http.StatusBadRequest,
				"无法解析简历内容: "+err.Error(),
			))
			return
		}

		keywords, err = h.tailor.DeriveKeywords(c.Request.Context(), req.JobText, resumeText)
		if err != nil {
			h.logger.WithError(err).Error("Failed to derive keywords")

			c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
				http.StatusInternalServerError,
				"派生关键词失败: "+err.Error(),
			))
			return
		}
	}

	attachment := fmt.Sprintf(`attachment; filename="tailored-%s"`, req.File.Filename)

	// 没有关键词时原样返回
	if len(keywords) == 0 {
		c.Header("Content-Disposition", attachment)
		c.Data(http.StatusOK, docxMimeType, original)
		return
	}

	result, err := h.tailor.EnhanceResume(original, req.File.Filename, keywords)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"filename": req.File.Filename,
			"error":    err.Error(),
		}).Warn("Resume enhancement rejected")

		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"简历增强失败: "+err.Error(),
		))
		return
	}

	summary, _ := json.Marshal(model.TailorSummary{
		KeywordsAdded:   result.AddedKeywords,
		BulletsModified: result.BulletsModified,
		Enhanced:        result.Enhanced,
	})

	c.Header("Content-Disposition", attachment)
	c.Header("X-Tailor-Summary", string(summary))
	c.Header("X-Keywords-Added", strconv.Itoa(len(result.AddedKeywords)))
	c.Data(http.StatusOK, docxMimeType, result.Bytes)
}
