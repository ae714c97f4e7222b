package repository

import "github.com/fyerfyer/resume-match-system/internal/models"

// AnalysisRepository 分析记录仓储接口
// 负责分析历史的存储和检索
type AnalysisRepository interface {
	// Create 创建分析记录
	Create(analysis *models.Analysis) error

	// Update 更新分析记录
	Update(analysis *models.Analysis) error

	// GetByID 根据ID获取分析记录
	GetByID(id string) (*models.Analysis, error)

	// GetByRequestHash 根据类型和请求哈希获取最近的成功记录
	GetByRequestHash(kind models.AnalysisKind, hash string) (*models.Analysis, error)

	// List 列出分析记录，支持分页和筛选
	List(offset, limit int, filters map[string]interface{}) ([]*models.Analysis, int64, error)

	// Delete 删除分析记录
	Delete(id string) error
}

// ResumeRepository 简历文件仓储接口
// 负责上传简历元数据的存储和检索
type ResumeRepository interface {
	// Create 创建简历文件记录
	Create(resume *models.ResumeFile) error

	// Update 更新简历文件记录
	Update(resume *models.ResumeFile) error

	// GetByID 根据ID获取简历文件记录
	GetByID(id string) (*models.ResumeFile, error)

	// List 列出简历文件，按上传时间倒序分页
	List(offset, limit int) ([]*models.ResumeFile, int64, error)

	// Delete 删除简历文件记录
	Delete(id string) error
}
