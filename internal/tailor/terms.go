package tailor

// 章节识别和关键词相关性判断使用的词表
// 作为可编辑的数据放在这里，便于调整行为而不触碰算法本身

// headerMaxLen 章节标题候选的最大可见长度（字符数）
const headerMaxLen = 50

// maxSkillsPerPass 单次技能增强最多追加的关键词数量
const maxSkillsPerPass = 5

// DefaultMaxBulletEdits 单次要点增强默认最多修改的要点数量
// 刻意压低这个上限，避免简历读起来像被过度优化
const DefaultMaxBulletEdits = 2

// skillsHeaders 技能族章节标题词
var skillsHeaders = []string{
	"skills",
	"technical skills",
	"technical expertise",
	"core competencies",
	"expertise",
}

// experienceHeaders 经历族章节标题词
var experienceHeaders = []string{
	"experience",
	"work experience",
	"professional experience",
	"employment",
	"work history",
}

// otherHeaders 其余章节标题词
// 用于判定章节边界，本身不触发任何增强
var otherHeaders = []string{
	"education",
	"projects",
	"certifications",
	"publications",
	"awards",
	"references",
	"summary",
	"objective",
	"qualifications",
	"achievements",
}

// RelevanceTable 关键词相关性词表
// 主题词是关键词（小写）的子串，触发词出现在要点文本中时
// 认为该关键词与要点相关
type RelevanceTable map[string][]string

// DefaultRelevanceTable 返回默认的相关性词表
func DefaultRelevanceTable() RelevanceTable {
	return RelevanceTable{
		"design":       {"designed", "developed", "created", "built"},
		"analog":       {"circuit", "amplifier", "comparator", "bandgap"},
		"verification": {"verified", "tested", "validated", "simulated"},
		"power":        {"voltage", "current", "supply", "pump"},
	}
}
