package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalysisKind 分析类型
type AnalysisKind string

const (
	// KindJobParse 职位描述解析
	KindJobParse AnalysisKind = "job_parse"
	// KindResumeParse 简历解析
	KindResumeParse AnalysisKind = "resume_parse"
	// KindMatch 简历与职位匹配分析
	KindMatch AnalysisKind = "match"
	// KindCoverLetter 求职信生成
	KindCoverLetter AnalysisKind = "cover_letter"
	// KindInterviewQuestions 面试问题生成
	KindInterviewQuestions AnalysisKind = "interview_questions"
	// KindTailor 简历文档增强
	KindTailor AnalysisKind = "tailor"
)

// AnalysisStatus 分析状态
type AnalysisStatus string

const (
	// AnalysisCompleted 分析完成
	AnalysisCompleted AnalysisStatus = "completed"
	// AnalysisFailed 分析失败
	AnalysisFailed AnalysisStatus = "failed"
)

// Analysis 分析记录数据模型
// 用于存储每次分析请求的结果历史
type Analysis struct {
	ID          string         `gorm:"primaryKey"`                // 记录ID，主键
	Kind        AnalysisKind   `gorm:"not null;index;size:30"`    // 分析类型
	RequestHash string         `gorm:"not null;index;size:64"`    // 请求内容哈希
	Model       string         `gorm:"size:100"`                  // 使用的LLM模型
	Status      AnalysisStatus `gorm:"not null;index;size:20"`    // 分析状态
	CreatedAt   time.Time      `gorm:"not null;index"`            // 创建时间
	UpdatedAt   time.Time      `gorm:"not null"`                  // 更新时间
	CompletedAt *time.Time     `gorm:"index"`                     // 完成时间
	Error       string         `gorm:"type:text"`                 // 错误信息
	Result      datatypes.JSON `gorm:"type:json"`                 // 分析结果，JSON格式
	TokenCount  int            `gorm:"not null;default:0"`        // 消耗的token数
}

// BeforeCreate GORM的钩子函数，创建记录前自动设置时间
func (a *Analysis) BeforeCreate(tx *gorm.DB) (err error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate GORM的钩子函数，更新记录前自动设置更新时间
func (a *Analysis) BeforeUpdate(tx *gorm.DB) (err error) {
	a.UpdatedAt = time.Now()
	return nil
}

// TableName 明确指定表名
func (Analysis) TableName() string {
	return "analyses"
}
