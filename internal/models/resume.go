package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResumeFile 上传的简历文件数据模型
// 用于存储上传简历的元数据信息
type ResumeFile struct {
	ID         string         `gorm:"primaryKey"`        // 文件ID，主键
	FileName   string         `gorm:"not null"`          // 文件名
	FileType   string         `gorm:"not null;size:20"`  // 文件类型
	FilePath   string         `gorm:"not null"`          // 存储路径
	FileSize   int64          `gorm:"not null"`          // 文件大小（字节）
	UploadedAt time.Time      `gorm:"not null;index"`    // 上传时间
	UpdatedAt  time.Time      `gorm:"not null"`          // 更新时间
	Text       string         `gorm:"type:text"`         // 提取的文本内容
	Metadata   datatypes.JSON `gorm:"type:json"`         // 元数据，JSON格式
}

// BeforeCreate GORM的钩子函数，创建记录前自动设置时间
func (r *ResumeFile) BeforeCreate(tx *gorm.DB) (err error) {
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now()
	}
	r.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate GORM的钩子函数，更新记录前自动设置更新时间
func (r *ResumeFile) BeforeUpdate(tx *gorm.DB) (err error) {
	r.UpdatedAt = time.Now()
	return nil
}

// TableName 明确指定表名
func (ResumeFile) TableName() string {
	return "resume_files"
}
