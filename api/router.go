package api

import (
	"github.com/fyerfyer/resume-match-system/api/handler"
	"github.com/fyerfyer/resume-match-system/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter 设置API路由
// 配置所有的API端点并应用中间件
func SetupRouter(
	analyzeHandler *handler.AnalyzeHandler,
	resumeHandler *handler.ResumeHandler,
	tailorHandler *handler.TailorHandler,
	downloadHandler *handler.DownloadHandler,
) *gin.Engine {
	// 创建默认的Gin路由引擎
	router := gin.Default()

	// 应用全局中间件
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorMiddleware())
	router.Use(middleware.SetTraceID())

	// 在调试模式下记录请求体和响应体
	if gin.Mode() == gin.DebugMode {
		router.Use(middleware.RequestBodyLog())
		router.Use(middleware.ResponseLogger())
	}

	// 健康检查API
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// 创建API分组
	v1 := router.Group("/api/v1")
	{
		// 分析API
		v1.POST("/parse-job", analyzeHandler.ParseJob)
		v1.POST("/parse-resume", analyzeHandler.ParseResume)
		v1.POST("/match", analyzeHandler.Match)
		v1.POST("/cover-letter", analyzeHandler.CoverLetter)
		v1.POST("/interview-questions", analyzeHandler.InterviewQuestions)
		v1.POST("/analyze", analyzeHandler.Analyze)
		v1.POST("/generate-resume", analyzeHandler.GenerateResume)
		v1.GET("/history", analyzeHandler.History)

		// 简历文件API
		v1.POST("/upload-resume", resumeHandler.Upload)
		v1.GET("/resumes", resumeHandler.List)
		v1.GET("/resumes/:id", resumeHandler.Get)
		v1.DELETE("/resumes/:id", resumeHandler.Delete)

		// 简历增强API
		v1.POST("/tailor-resume", tailorHandler.TailorResume)

		// 内容导出API
		v1.POST("/download", downloadHandler.Download)
	}

	return router
}

// Cors 跨域资源共享中间件
// 如果需要支持跨域请求，可以启用此中间件
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Trace-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
