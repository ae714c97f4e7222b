package models

import "errors"

var (
	// ErrAnalysisNotFound 分析记录不存在错误
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrResumeNotFound 简历文件不存在错误
	ErrResumeNotFound = errors.New("resume file not found")

	// ErrInvalidAnalysisKind 无效的分析类型错误
	ErrInvalidAnalysisKind = errors.New("invalid analysis kind")
)
