package repository

import (
	"errors"
	"fmt"

	"github.com/fyerfyer/resume-match-system/internal/database"
	"github.com/fyerfyer/resume-match-system/internal/models"
	"gorm.io/gorm"
)

// resumeRepository 简历文件仓储实现
type resumeRepository struct {
	db *gorm.DB // 数据库连接
}

// NewResumeRepository 创建简历文件仓储实例
func NewResumeRepository() ResumeRepository {
	return &resumeRepository{
		db: database.MustDB(),
	}
}

// NewResumeRepositoryWithDB 使用指定的数据库连接创建简历文件仓储实例
func NewResumeRepositoryWithDB(db *gorm.DB) ResumeRepository {
	if db == nil {
		db = database.MustDB()
	}
	return &resumeRepository{
		db: db,
	}
}

// Create 创建简历文件记录
func (r *resumeRepository) Create(resume *models.ResumeFile) error {
	if resume.ID == "" {
		return errors.New("resume ID cannot be empty")
	}

	return r.db.Create(resume).Error
}

// Update 更新简历文件记录
func (r *resumeRepository) Update(resume *models.ResumeFile) error {
	if resume.ID == "" {
		return errors.New("resume ID cannot be empty")
	}

	return r.db.Save(resume).Error
}

// GetByID 根据ID获取简历文件记录
func (r *resumeRepository) GetByID(id string) (*models.ResumeFile, error) {
	var resume models.ResumeFile
	err := r.db.Where("id = ?", id).First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrResumeNotFound, id)
		}
		return nil, err
	}
	return &resume, nil
}

// List 列出简历文件，按上传时间倒序分页
func (r *resumeRepository) List(offset, limit int) ([]*models.ResumeFile, int64, error) {
	var resumes []*models.ResumeFile
	var total int64

	query := r.db.Model(&models.ResumeFile{})

	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = query.Order("uploaded_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&resumes).Error

	if err != nil {
		return nil, 0, err
	}

	return resumes, total, nil
}

// Delete 删除简历文件记录
func (r *resumeRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.ResumeFile{}).Error
}
