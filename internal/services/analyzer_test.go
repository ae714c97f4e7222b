package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fyerfyer/resume-match-system/internal/cache"
	"github.com/fyerfyer/resume-match-system/internal/llm"
	"github.com/fyerfyer/resume-match-system/internal/models"
	"github.com/fyerfyer/resume-match-system/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubLLM 测试用的大模型客户端桩实现
// 根据系统提示词决定返回内容
type stubLLM struct {
	calls   int
	respond func(system, user string) (string, error)
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.GenerateOption) (*llm.Response, error) {
	s.calls++

	opts := &llm.GenerateOptions{}
	for _, opt := range options {
		opt(opts)
	}

	text, err := s.respond(opts.System, prompt)
	if err != nil {
		return nil, err
	}

	return &llm.Response{
		Text:       text,
		TokenCount: 42,
		ModelName:  "stub-model",
		FinishTime: time.Now(),
	}, nil
}

func (s *stubLLM) Chat(ctx context.Context, messages []llm.Message, options ...llm.ChatOption) (*llm.Response, error) {
	return nil, fmt.Errorf("chat not supported by stub")
}

func (s *stubLLM) Name() string {
	return "stub-model"
}

// 固定的解析结果样例
const (
	stubJobJSON = `{"job_title":"Backend Engineer","company":"Acme Corp",` +
		`"required_skills":[{"skill":"Go","importance":"must_have"},{"skill":"PostgreSQL","importance":"preferred"}],` +
		`"responsibilities":["Design APIs","Operate services"],` +
		`"keywords":["Go","PostgreSQL","Kubernetes"]}`

	stubResumeJSON = `{"name":"Alex Chen","total_experience_years":6,` +
		`"skills":[{"skill":"Go"},{"skill":"Redis"}],` +
		`"experience":[{"company":"Widgets Inc","title":"Software Engineer",` +
		`"achievements":["Cut latency by 40%"],"responsibilities":["Built APIs"]}]}`

	stubMatchJSON = `{"overall_match_score":72,` +
		`"ats_optimization":{"critical_missing_keywords":["Kubernetes","Terraform"]},` +
		`"keyword_analysis":{"missing_keywords":["Kubernetes","Terraform","Docker"]},` +
		`"matching_skills":[{"skill":"Go"}]}`
)

// routedStub 按系统提示词路由到对应的样例结果
func routedStub() *stubLLM {
	return &stubLLM{
		respond: func(system, user string) (string, error) {
			switch {
			case strings.Contains(system, "job description analyzer"):
				return stubJobJSON, nil
			case strings.Contains(system, "resume analyzer"):
				return stubResumeJSON, nil
			case strings.Contains(system, "ATS (Applicant Tracking System) analyst"):
				return stubMatchJSON, nil
			case strings.Contains(system, "cover letter writer"):
				return "As Acme Corp scales...\n\nSincerely,\nAlex Chen", nil
			case strings.Contains(system, "expert resume writer"):
				return "ALEX CHEN\nBackend Engineer\n\nRewritten experience", nil
			case strings.Contains(system, "hiring manager"):
				return `[{"question":"Tell me about yourself","type":"background"}]`, nil
			default:
				return "", fmt.Errorf("unexpected system prompt")
			}
		},
	}
}

// newTestAnalyzer 创建带内存缓存和内存数据库历史的分析服务
func newTestAnalyzer(t *testing.T, client llm.Client) (*AnalyzerService, repository.AnalysisRepository) {
	t.Helper()

	memCache, err := cache.NewMemoryCache(cache.DefaultConfig())
	require.NoError(t, err)

	dbName := fmt.Sprintf("file:analyzer_test_%d?mode=memory", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Analysis{}))

	repo := repository.NewAnalysisRepositoryWithDB(db)
	analyzer := NewAnalyzerService(client, memCache, WithAnalysisHistory(repo))

	return analyzer, repo
}

func TestAnalyzerParseJob(t *testing.T) {
	stub := routedStub()
	analyzer, repo := newTestAnalyzer(t, stub)
	ctx := context.Background()

	result, err := analyzer.ParseJob(ctx, "We need a backend engineer...")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(result, &parsed))
	assert.Equal(t, "Backend Engineer", parsed["job_title"])

	// 第二次调用命中缓存，不再请求LLM
	_, err = analyzer.ParseJob(ctx, "We need a backend engineer...")
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls, "Second call should hit cache")

	// 历史记录了成功的分析
	records, total, err := repo.List(0, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.KindJobParse, records[0].Kind)
	assert.Equal(t, models.AnalysisCompleted, records[0].Status)
	assert.Equal(t, "stub-model", records[0].Model)
}

func TestAnalyzerParseJobStripsCodeFence(t *testing.T) {
	stub := &stubLLM{
		respond: func(system, user string) (string, error) {
			return "```json\n" + stubJobJSON + "\n```", nil
		},
	}
	analyzer, _ := newTestAnalyzer(t, stub)

	result, err := analyzer.ParseJob(context.Background(), "job text")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(result, &parsed))
	assert.Equal(t, "Acme Corp", parsed["company"])
}

func TestAnalyzerInvalidJSON(t *testing.T) {
	stub := &stubLLM{
		respond: func(system, user string) (string, error) {
			return "I'm sorry, I can't produce JSON today", nil
		},
	}
	analyzer, repo := newTestAnalyzer(t, stub)

	_, err := analyzer.ParseResume(context.Background(), "resume text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	// 失败也记录历史
	records, total, err := repo.List(0, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.AnalysisFailed, records[0].Status)
	assert.NotEmpty(t, records[0].Error)
}

func TestAnalyzerLLMError(t *testing.T) {
	stub := &stubLLM{
		respond: func(system, user string) (string, error) {
			return "", llm.NewLLMError(llm.ErrCodeRateLimited, llm.ErrMsgRateLimited)
		},
	}
	analyzer, _ := newTestAnalyzer(t, stub)

	_, err := analyzer.ParseJob(context.Background(), "job text")
	require.Error(t, err)

	var llmErr llm.LLMError
	assert.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llm.ErrCodeRateLimited, llmErr.Code)
}

func TestAnalyzerEmptyInput(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, routedStub())
	ctx := context.Background()

	_, err := analyzer.ParseJob(ctx, "")
	assert.Error(t, err)

	_, err = analyzer.ParseResume(ctx, "")
	assert.Error(t, err)

	_, err = analyzer.Match(ctx, "job", "")
	assert.Error(t, err)

	_, err = analyzer.InterviewQuestions(ctx, "", "resume")
	assert.Error(t, err)
}

func TestAnalyzerMatch(t *testing.T) {
	stub := routedStub()
	analyzer, _ := newTestAnalyzer(t, stub)

	result, err := analyzer.Match(context.Background(), "job text", "resume text")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(result, &parsed))
	assert.Equal(t, float64(72), parsed["overall_match_score"])

	// 一次match需要job解析、resume解析、匹配三次调用
	assert.Equal(t, 3, stub.calls)

	// 再次调用全部命中缓存
	_, err = analyzer.Match(context.Background(), "job text", "resume text")
	require.NoError(t, err)
	assert.Equal(t, 3, stub.calls)
}

func TestAnalyzerCoverLetter(t *testing.T) {
	stub := routedStub()
	analyzer, _ := newTestAnalyzer(t, stub)

	letter, err := analyzer.CoverLetter(context.Background(), "job text", "resume text", "professional")
	require.NoError(t, err)
	assert.Contains(t, letter, "Sincerely")

	// 缓存命中
	calls := stub.calls
	again, err := analyzer.CoverLetter(context.Background(), "job text", "resume text", "professional")
	require.NoError(t, err)
	assert.Equal(t, letter, again)
	assert.Equal(t, calls, stub.calls)

	// 不同语气是独立的缓存条目
	_, err = analyzer.CoverLetter(context.Background(), "job text", "resume text", "enthusiastic")
	require.NoError(t, err)
	assert.Greater(t, stub.calls, calls)
}

func TestAnalyzerInterviewQuestions(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, routedStub())

	result, err := analyzer.InterviewQuestions(context.Background(), "job text", "resume text")
	require.NoError(t, err)

	var questions []map[string]interface{}
	require.NoError(t, json.Unmarshal(result, &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, "Tell me about yourself", questions[0]["question"])
}

func TestAnalyzerAnalyze(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, routedStub())

	report, err := analyzer.Analyze(context.Background(), "job text", "resume text")
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.True(t, json.Valid(report.Job))
	assert.True(t, json.Valid(report.Resume))
	assert.True(t, json.Valid(report.Match))
}

func TestAnalyzerRewriteResume(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, routedStub())

	rewritten, err := analyzer.RewriteResume(context.Background(),
		"Alex Chen, software engineer", "We need a backend engineer",
		[]string{"Quantify achievements"}, []string{"Kubernetes"})
	require.NoError(t, err)
	assert.Contains(t, rewritten, "ALEX CHEN")

	_, err = analyzer.RewriteResume(context.Background(), "", "job", nil, nil)
	assert.Error(t, err)
}

func TestAnalyzerHistoryQuery(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, routedStub())
	ctx := context.Background()

	_, err := analyzer.ParseJob(ctx, "job one")
	require.NoError(t, err)
	_, err = analyzer.ParseJob(ctx, "job two")
	require.NoError(t, err)
	_, err = analyzer.ParseResume(ctx, "resume one")
	require.NoError(t, err)

	all, total, err := analyzer.History(0, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	jobOnly, total, err := analyzer.History(0, 10, models.KindJobParse)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, jobOnly, 2)
}
