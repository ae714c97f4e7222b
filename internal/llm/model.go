package llm

import "time"

// MessageRole 消息角色类型
type MessageRole string

const (
	// RoleSystem 系统角色
	RoleSystem MessageRole = "system"
	// RoleUser 用户角色
	RoleUser MessageRole = "user"
	// RoleAssistant 助手角色
	RoleAssistant MessageRole = "assistant"
)

// Message 对话消息结构
type Message struct {
	Role    MessageRole `json:"role"`    // 角色
	Content string      `json:"content"` // 内容
}

// ClaudeRequest Anthropic消息API请求结构
type ClaudeRequest struct {
	Model       string    `json:"model"`                 // 模型名称
	MaxTokens   int       `json:"max_tokens"`            // 最大生成Token数
	System      string    `json:"system,omitempty"`      // 系统提示词
	Messages    []Message `json:"messages"`              // 消息列表
	Temperature *float32  `json:"temperature,omitempty"` // 采样温度
	TopP        *float32  `json:"top_p,omitempty"`       // 核采样概率阈值
	TopK        *int      `json:"top_k,omitempty"`       // 生成候选集大小
}

// ClaudeResponse Anthropic消息API响应结构
type ClaudeResponse struct {
	ID         string          `json:"id"`          // 响应ID
	Type       string          `json:"type"`        // 响应类型，出错时为error
	Role       string          `json:"role"`        // 角色
	Content    []ClaudeContent `json:"content"`     // 内容块列表
	StopReason string          `json:"stop_reason"` // 结束原因
	Usage      ClaudeUsage     `json:"usage"`       // 资源使用情况
	Error      *ClaudeError    `json:"error"`       // 错误信息(如果有)
}

// ClaudeContent 响应内容块
type ClaudeContent struct {
	Type string `json:"type"` // 内容类型，文本为text
	Text string `json:"text"` // 文本内容
}

// ClaudeUsage 资源使用情况
type ClaudeUsage struct {
	InputTokens  int `json:"input_tokens"`  // 输入token数
	OutputTokens int `json:"output_tokens"` // 输出token数
}

// ClaudeError API错误信息
type ClaudeError struct {
	Type    string `json:"type"`    // 错误类型
	Message string `json:"message"` // 错误消息
}

// Response 统一的响应结构
type Response struct {
	Text       string    // 生成的文本
	Messages   []Message // 消息列表（如果是对话）
	TokenCount int       // 使用的token数
	ModelName  string    // 使用的模型名称
	FinishTime time.Time // 完成时间
}

// Model 常用模型名称
const (
	ModelClaudeSonnet = "claude-sonnet-4-20250514"    // Claude Sonnet（平衡速度和能力）
	ModelClaudeHaiku  = "claude-3-5-haiku-20241022"   // Claude Haiku（较快，基础能力）
	ModelClaudeOpus   = "claude-3-opus-20240229"      // Claude Opus（高级能力，速度较慢）
)
