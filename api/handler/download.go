package handler

import (
	"fmt"
	"net/http"

	"github.com/fyerfyer/resume-match-system/api/middleware"
	"github.com/fyerfyer/resume-match-system/api/model"
	"github.com/fyerfyer/resume-match-system/internal/export"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DownloadHandler 处理内容导出下载的API请求
type DownloadHandler struct {
	logger *logrus.Logger // 日志记录器
}

// NewDownloadHandler 创建新的下载处理器
func NewDownloadHandler() *DownloadHandler {
	return &DownloadHandler{
		logger: middleware.GetLogger(),
	}
}

// Download 把文本内容导出为txt、docx或pdf文件
// POST /api/v1/download
func (h *DownloadHandler) Download(c *gin.Context) {
	var req model.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"无效的请求参数",
		))
		return
	}

	file, err := export.Render(req.Content, export.Format(req.Format))
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"format": req.Format,
			"error":  err.Error(),
		}).Warn("Download request rejected")

		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"导出文件失败: "+err.Error(),
		))
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.%s"`, req.Filename, file.Ext))
	c.Data(http.StatusOK, file.MimeType, file.Content)
}
