package tailor

import (
	"github.com/fyerfyer/resume-match-system/internal/docx"
	"github.com/sirupsen/logrus"
)

// Tailor 简历增强器
// 在一份DOCX简历上依次执行技能增强和要点增强，返回修改后的字节流。
// 可靠性契约：除了输入本身不是合法文档的情况，任何内部故障都回退为
// 原样返回输入字节，调用方永远不会拿到半修改的文件
type Tailor struct {
	relevance RelevanceTable // 关键词相关性词表
	maxEdits  int            // 要点增强的修改上限
	logger    *logrus.Logger // 日志记录器
}

// Result 一次增强调用的结果
type Result struct {
	Bytes           []byte   // 输出文档字节流（增强后的或原始的）
	AddedKeywords   []string // 追加到技能章节的关键词
	BulletsModified int      // 被修改的要点数量
	Enhanced        bool     // 文档是否发生了修改
}

// Option 增强器配置选项
type Option func(*Tailor)

// WithRelevanceTable 设置关键词相关性词表
func WithRelevanceTable(table RelevanceTable) Option {
	return func(t *Tailor) {
		t.relevance = table
	}
}

// WithMaxBulletEdits 设置要点增强的修改上限
func WithMaxBulletEdits(max int) Option {
	return func(t *Tailor) {
		t.maxEdits = max
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *logrus.Logger) Option {
	return func(t *Tailor) {
		t.logger = logger
	}
}

// New 创建一个简历增强器
func New(opts ...Option) *Tailor {
	t := &Tailor{
		relevance: DefaultRelevanceTable(),
		maxEdits:  DefaultMaxBulletEdits,
		logger:    logrus.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Enhance 对原始DOCX字节流执行一次完整的增强
// 关键词列表为空时直接返回原始字节；输入不是合法文档时返回原始字节
// 并带上docx.ErrCorruptDocument；增强过程中的任何故障（包括panic）
// 都被就地恢复为返回原始字节，不向调用方传播。
// 两个增强环节各自使用关键词列表的独立副本，写入技能章节的关键词
// 仍然可以参与要点增强
func (t *Tailor) Enhance(original []byte, keywords []string) (res *Result, err error) {
	res = &Result{Bytes: original}
	if len(keywords) == 0 {
		return res, nil
	}

	doc, openErr := docx.Open(original)
	if openErr != nil {
		t.logger.WithField("error", openErr.Error()).Warn("Failed to open resume document")
		return res, openErr
	}

	defer func() {
		if r := recover(); r != nil {
			t.logger.WithField("panic", r).Error("Augmentation fault recovered, returning original document")
			res = &Result{Bytes: original}
			err = nil
		}
	}()

	paras := doc.Paragraphs()
	added := skillsPass(paras, copyKeywords(keywords))
	modified := bulletsPass(paras, copyKeywords(keywords), t.relevance, t.maxEdits)

	if len(added) == 0 && modified == 0 {
		t.logger.Debug("No augmentation applied, returning original document")
		return res, nil
	}

	out, serErr := doc.Bytes()
	if serErr != nil {
		t.logger.WithField("error", serErr.Error()).Error("Failed to serialize document, returning original")
		return res, nil
	}

	t.logger.WithFields(logrus.Fields{
		"keywords_added":   added,
		"bullets_modified": modified,
	}).Info("Resume document enhanced")

	return &Result{
		Bytes:           out,
		AddedKeywords:   added,
		BulletsModified: modified,
		Enhanced:        true,
	}, nil
}

// 两个增强环节通过包级变量调用，测试可以注入故障
var (
	skillsPass  = augmentSkills
	bulletsPass = augmentBullets
)

// copyKeywords 复制关键词列表
// 两个增强环节之间不共享可变的关键词池
func copyKeywords(keywords []string) []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}
