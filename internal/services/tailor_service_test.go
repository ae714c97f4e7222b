package services

import (
	"context"
	"testing"

	"github.com/fyerfyer/resume-match-system/internal/docx/docxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildResumeDocx() []byte {
	return docxtest.NewBuilder().
		Paragraph("Alex Chen").
		Paragraph("Skills").
		Paragraph("Go, Redis, PostgreSQL").
		Paragraph("Experience").
		Paragraph("Built the payment service for online checkout").
		Bytes()
}

func TestParseKeywords(t *testing.T) {
	assert.Equal(t, []string{"Go", "Kubernetes", "Terraform"},
		ParseKeywords("Go, Kubernetes ,Terraform"))
	assert.Equal(t, []string{"Docker"}, ParseKeywords("Docker"))
	assert.Nil(t, ParseKeywords(""))
	assert.Nil(t, ParseKeywords(" , ,"))
}

func TestTailorServiceExtractText(t *testing.T) {
	service := NewTailorService()

	text, err := service.ExtractText(buildResumeDocx(), "resume.docx")
	require.NoError(t, err)
	assert.Contains(t, text, "Alex Chen")
	assert.Contains(t, text, "payment service")

	_, err = service.ExtractText([]byte("garbage"), "resume.docx")
	assert.Error(t, err)
}

func TestTailorServiceEnhanceResume(t *testing.T) {
	service := NewTailorService()
	original := buildResumeDocx()

	result, err := service.EnhanceResume(original, "resume.docx", []string{"Kubernetes"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Enhanced)
	assert.Contains(t, result.AddedKeywords, "Kubernetes")
	assert.NotEqual(t, original, result.Bytes)
}

func TestTailorServiceEnhanceRejectsNonDocx(t *testing.T) {
	service := NewTailorService()

	_, err := service.EnhanceResume([]byte("%PDF-1.4"), "resume.pdf", []string{"Go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".docx")
}

func TestTailorServiceDeriveKeywords(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, routedStub())
	service := NewTailorService(WithAnalyzer(analyzer))

	keywords, err := service.DeriveKeywords(context.Background(), "job text", "resume text")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, keywords)
}

func TestTailorServiceDeriveKeywordsWithoutAnalyzer(t *testing.T) {
	service := NewTailorService()

	_, err := service.DeriveKeywords(context.Background(), "job", "resume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analyzer not configured")
}
