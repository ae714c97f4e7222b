package model

import (
	"mime/multipart"
)

// 分页请求参数
type PaginationRequest struct {
	Page     int `form:"page" json:"page" binding:"omitempty,min=1"`           // 当前页码，从1开始
	PageSize int `form:"page_size" json:"page_size" binding:"omitempty,min=1"` // 每页记录数
}

// GetPage 获取页码，默认为1
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页记录数，默认为10，最大为100
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 10
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}

// JobParseRequest 职位描述解析请求
type JobParseRequest struct {
	JobText string `json:"job_text" binding:"required"` // 职位描述原文
}

// ResumeParseRequest 简历解析请求
type ResumeParseRequest struct {
	ResumeText string `json:"resume_text" binding:"required"` // 简历原文
}

// MatchRequest 简历与职位匹配分析请求
// 简历内容可以直接传文本，也可以传已上传文件的ID
type MatchRequest struct {
	JobText    string `json:"job_text" binding:"required"`     // 职位描述原文
	ResumeText string `json:"resume_text" binding:"omitempty"` // 简历原文
	ResumeID   string `json:"resume_id" binding:"omitempty"`   // 已上传简历的ID
}

// CoverLetterRequest 求职信生成请求
type CoverLetterRequest struct {
	JobText    string `json:"job_text" binding:"required"`     // 职位描述原文
	ResumeText string `json:"resume_text" binding:"omitempty"` // 简历原文
	ResumeID   string `json:"resume_id" binding:"omitempty"`   // 已上传简历的ID
	Tone       string `json:"tone" binding:"omitempty"`        // 语气：professional、enthusiastic、conversational
}

// InterviewRequest 面试问题预测请求
type InterviewRequest struct {
	JobText    string `json:"job_text" binding:"required"`     // 职位描述原文
	ResumeText string `json:"resume_text" binding:"omitempty"` // 简历原文
	ResumeID   string `json:"resume_id" binding:"omitempty"`   // 已上传简历的ID
}

// AnalyzeRequest 综合分析请求
type AnalyzeRequest struct {
	JobText    string `json:"job_text" binding:"required"`     // 职位描述原文
	ResumeText string `json:"resume_text" binding:"omitempty"` // 简历原文
	ResumeID   string `json:"resume_id" binding:"omitempty"`   // 已上传简历的ID
}

// GenerateResumeRequest 简历改写请求
// 根据选中的改进建议和关键词重写简历文本
type GenerateResumeRequest struct {
	JobText      string   `json:"job_text" binding:"required"`      // 职位描述原文
	ResumeText   string   `json:"resume_text" binding:"omitempty"`  // 简历原文
	ResumeID     string   `json:"resume_id" binding:"omitempty"`    // 已上传简历的ID
	Improvements []string `json:"improvements" binding:"omitempty"` // 选中的改进建议
	Keywords     []string `json:"keywords" binding:"omitempty"`     // 要补充的关键词
}

// ResumeUploadRequest 简历文件上传请求
type ResumeUploadRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"` // 简历文件
}

// ResumeIDRequest 按ID操作简历的请求
type ResumeIDRequest struct {
	ID string `uri:"id" binding:"required"` // 简历ID
}

// TailorRequest 简历增强请求（multipart表单）
// keywords为空且提供了job_text时，从匹配报告派生关键词
type TailorRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`      // DOCX简历文件
	JobText  string                `form:"job_text" binding:"omitempty"` // 职位描述原文
	Keywords string                `form:"keywords" binding:"omitempty"` // 逗号分隔的关键词
}

// HistoryListRequest 分析历史查询请求
type HistoryListRequest struct {
	PaginationRequest
	Kind string `form:"kind" json:"kind" binding:"omitempty"` // 分析类型过滤
}

// DownloadRequest 内容下载请求
type DownloadRequest struct {
	Content  string `json:"content" binding:"required"`  // 要导出的文本内容
	Filename string `json:"filename" binding:"required"` // 不含扩展名的文件名
	Format   string `json:"format" binding:"required"`   // 导出格式：txt、docx、pdf
}
