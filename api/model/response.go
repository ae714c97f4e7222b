package model

import (
	"encoding/json"
	"time"

	"github.com/fyerfyer/resume-match-system/internal/models"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`               // 响应状态码，0表示成功
	Message string      `json:"message"`            // 响应消息
	Data    interface{} `json:"data,omitempty"`     // 响应数据，可能为空
	TraceID string      `json:"trace_id,omitempty"` // 调用链追踪ID
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string) *Response {
	return &Response{
		Code:    code,
		Message: message,
	}
}

// CoverLetterResponse 求职信生成响应
type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"` // 生成的求职信文本
	Tone        string `json:"tone"`         // 使用的语气
}

// AnalyzeResponse 综合分析响应
type AnalyzeResponse struct {
	Job    json.RawMessage `json:"job"`    // 职位解析结果
	Resume json.RawMessage `json:"resume"` // 简历解析结果
	Match  json.RawMessage `json:"match"`  // 匹配分析报告
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	ResumeID  string `json:"resume_id"`      // 简历ID
	FileName  string `json:"filename"`       // 文件名
	FileType  string `json:"file_type"`      // 文件类型
	FileSize  int64  `json:"file_size"`      // 文件大小（字节）
	HasText   bool   `json:"has_text"`       // 是否成功提取了文本
	Text      string `json:"text,omitempty"` // 提取的文本内容
	CreatedAt string `json:"created_at"`     // 上传时间
}

// ResumeInfo 简历文件信息
type ResumeInfo struct {
	ResumeID   string    `json:"resume_id"`   // 简历ID
	FileName   string    `json:"filename"`    // 文件名
	FileType   string    `json:"file_type"`   // 文件类型
	FileSize   int64     `json:"file_size"`   // 文件大小（字节）
	HasText    bool      `json:"has_text"`    // 是否成功提取了文本
	UploadedAt time.Time `json:"uploaded_at"` // 上传时间
}

// ResumeListResponse 简历列表响应
type ResumeListResponse struct {
	Total    int64        `json:"total"`     // 总数量
	Page     int          `json:"page"`      // 当前页码
	PageSize int          `json:"page_size"` // 每页大小
	Resumes  []ResumeInfo `json:"resumes"`   // 简历列表
}

// ConvertToResumeInfo 将简历模型转换为响应信息
func ConvertToResumeInfo(files []*models.ResumeFile) []ResumeInfo {
	if len(files) == 0 {
		return []ResumeInfo{}
	}

	infos := make([]ResumeInfo, len(files))
	for i, f := range files {
		infos[i] = ResumeInfo{
			ResumeID:   f.ID,
			FileName:   f.FileName,
			FileType:   f.FileType,
			FileSize:   f.FileSize,
			HasText:    f.Text != "",
			UploadedAt: f.UploadedAt,
		}
	}
	return infos
}

// AnalysisInfo 分析历史记录信息
type AnalysisInfo struct {
	ID         string          `json:"id"`               // 记录ID
	Kind       string          `json:"kind"`             // 分析类型
	Status     string          `json:"status"`           // 状态
	Model      string          `json:"model"`            // 使用的模型
	TokenCount int             `json:"token_count"`      // 消耗的token数
	Result     json.RawMessage `json:"result,omitempty"` // 分析结果
	Error      string          `json:"error,omitempty"`  // 错误信息
	CreatedAt  time.Time       `json:"created_at"`       // 创建时间
}

// HistoryListResponse 分析历史列表响应
type HistoryListResponse struct {
	Total    int64          `json:"total"`     // 总记录数
	Page     int            `json:"page"`      // 当前页码
	PageSize int            `json:"page_size"` // 每页大小
	Analyses []AnalysisInfo `json:"analyses"`  // 历史记录列表
}

// ConvertToAnalysisInfo 将分析记录模型转换为响应信息
func ConvertToAnalysisInfo(records []*models.Analysis) []AnalysisInfo {
	if len(records) == 0 {
		return []AnalysisInfo{}
	}

	infos := make([]AnalysisInfo, len(records))
	for i, r := range records {
		infos[i] = AnalysisInfo{
			ID:         r.ID,
			Kind:       string(r.Kind),
			Status:     string(r.Status),
			Model:      r.Model,
			TokenCount: r.TokenCount,
			Result:     json.RawMessage(r.Result),
			Error:      r.Error,
			CreatedAt:  r.CreatedAt,
		}
	}
	return infos
}

// TailorSummary 简历增强的响应头摘要
// 增强结果以DOCX附件返回，摘要放在响应头中
type TailorSummary struct {
	KeywordsAdded   []string `json:"keywords_added"`   // 实际添加的关键词
	BulletsModified int      `json:"bullets_modified"` // 修改的条目数
	Enhanced        bool     `json:"enhanced"`         // 是否发生了修改
}
