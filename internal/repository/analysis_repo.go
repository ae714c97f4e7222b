package repository

import (
	"errors"
	"fmt"

	"github.com/fyerfyer/resume-match-system/internal/database"
	"github.com/fyerfyer/resume-match-system/internal/models"
	"gorm.io/gorm"
)

// analysisRepository 分析记录仓储实现
type analysisRepository struct {
	db *gorm.DB // 数据库连接
}

// NewAnalysisRepository 创建分析记录仓储实例
func NewAnalysisRepository() AnalysisRepository {
	return &analysisRepository{
		db: database.MustDB(),
	}
}

// NewAnalysisRepositoryWithDB 使用指定的数据库连接创建分析记录仓储实例
func NewAnalysisRepositoryWithDB(db *gorm.DB) AnalysisRepository {
	if db == nil {
		db = database.MustDB()
	}
	return &analysisRepository{
		db: db,
	}
}

// Create 创建分析记录
func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if analysis.ID == "" {
		return errors.New("analysis ID cannot be empty")
	}

	return r.db.Create(analysis).Error
}

// Update 更新分析记录
func (r *analysisRepository) Update(analysis *models.Analysis) error {
	if analysis.ID == "" {
		return errors.New("analysis ID cannot be empty")
	}

	return r.db.Save(analysis).Error
}

// GetByID 根据ID获取分析记录
func (r *analysisRepository) GetByID(id string) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.Where("id = ?", id).First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrAnalysisNotFound, id)
		}
		return nil, err
	}
	return &analysis, nil
}

// GetByRequestHash 根据类型和请求哈希获取最近的成功记录
func (r *analysisRepository) GetByRequestHash(kind models.AnalysisKind, hash string) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.Where("kind = ? AND request_hash = ? AND status = ?",
		kind, hash, models.AnalysisCompleted).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAnalysisNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

// List 列出分析记录，支持分页和筛选
func (r *analysisRepository) List(offset, limit int, filters map[string]interface{}) ([]*models.Analysis, int64, error) {
	var analyses []*models.Analysis
	var total int64

	query := r.db.Model(&models.Analysis{})

	// 应用筛选条件
	if filters != nil {
		// 类型过滤
		if kind, ok := filters["kind"]; ok {
			switch k := kind.(type) {
			case models.AnalysisKind:
				query = query.Where("kind = ?", string(k))
			case string:
				if k != "" {
					query = query.Where("kind = ?", k)
				}
			}
		}

		// 状态过滤
		if status, ok := filters["status"]; ok {
			switch s := status.(type) {
			case models.AnalysisStatus:
				query = query.Where("status = ?", string(s))
			case string:
				if s != "" {
					query = query.Where("status = ?", s)
				}
			}
		}

		// 时间范围过滤
		if startTime, ok := filters["start_time"].(string); ok && startTime != "" {
			query = query.Where("created_at >= ?", startTime)
		}

		if endTime, ok := filters["end_time"].(string); ok && endTime != "" {
			query = query.Where("created_at <= ?", endTime)
		}
	}

	// 获取总数
	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// 应用排序、分页并执行查询
	err = query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, 0, err
	}

	return analyses, total, nil
}

// Delete 删除分析记录
func (r *analysisRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Analysis{}).Error
}
