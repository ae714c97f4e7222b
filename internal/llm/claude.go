package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// Anthropic消息API端点
	defaultClaudeEndpoint = "https://api.anthropic.com/v1/messages"
	// API版本请求头的取值
	anthropicVersion = "2023-06-01"
)

// ClaudeClient Claude大模型客户端实现
type ClaudeClient struct {
	apiKey      string       // API密钥
	baseURL     string       // API端点
	model       string       // 模型名称
	httpClient  *http.Client // HTTP客户端
	maxRetries  int          // 最大重试次数
	maxTokens   int          // 最大生成Token数
	temperature float32      // 温度参数
	topP        float32      // topP参数
}

// NewClaudeClient 创建新的Claude大模型客户端
func NewClaudeClient(opts ...Option) (Client, error) {
	cfg := NewConfig(opts...)

	// 验证API密钥
	if cfg.APIKey == "" {
		return nil, NewLLMError(ErrCodeInvalidAPIKey, ErrMsgInvalidAPIKey)
	}

	// 确定API端点
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultClaudeEndpoint
	}

	client := &ClaudeClient{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		model:       cfg.Model,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		maxRetries:  cfg.MaxRetries,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}

	return client, nil
}

// Name 返回模型名称
func (c *ClaudeClient) Name() string {
	return c.model
}

// Generate 根据提示词生成回答
// 系统提示词通过WithSystemPrompt选项传入
func (c *ClaudeClient) Generate(ctx context.Context, prompt string, options ...GenerateOption) (*Response, error) {
	if prompt == "" {
		return nil, NewLLMError(ErrCodeEmptyPrompt, ErrMsgEmptyPrompt)
	}

	opts := &GenerateOptions{}
	for _, opt := range options {
		opt(opts)
	}

	// 转换为消息格式，系统提示词单独携带
	messages := []Message{
		{Role: RoleUser, Content: prompt},
	}
	if opts.System != "" {
		messages = append([]Message{{Role: RoleSystem, Content: opts.System}}, messages...)
	}

	var chatOpts []ChatOption
	if opts.MaxTokens != nil {
		chatOpts = append(chatOpts, WithChatMaxTokens(*opts.MaxTokens))
	}
	if opts.Temperature != nil {
		chatOpts = append(chatOpts, WithChatTemperature(*opts.Temperature))
	}
	if opts.TopP != nil {
		chatOpts = append(chatOpts, WithChatTopP(*opts.TopP))
	}

	return c.Chat(ctx, messages, chatOpts...)
}

// Chat 进行多轮对话
// 消息列表里的系统消息会被提取到请求的system字段
func (c *ClaudeClient) Chat(ctx context.Context, messages []Message, options ...ChatOption) (*Response, error) {
	if len(messages) == 0 {
		return nil, NewLLMError(ErrCodeInvalidRequest, "messages cannot be empty")
	}

	opts := &ChatOptions{}
	for _, opt := range options {
		opt(opts)
	}

	// Anthropic API要求system独立于messages
	var system string
	var chat []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = m.Content
			continue
		}
		chat = append(chat, m)
	}
	if len(chat) == 0 {
		return nil, NewLLMError(ErrCodeInvalidRequest, "messages cannot contain only a system prompt")
	}

	req := &ClaudeRequest{
		Model:     c.model,
		System:    system,
		Messages:  chat,
		MaxTokens: c.maxTokens,
	}
	if opts.MaxTokens != nil {
		req.MaxTokens = *opts.MaxTokens
	}
	if opts.Temperature != nil {
		req.Temperature = opts.Temperature
	} else if c.temperature > 0 {
		temp := c.temperature
		req.Temperature = &temp
	}
	if opts.TopP != nil {
		req.TopP = opts.TopP
	} else if c.topP > 0 {
		topP := c.topP
		req.TopP = &topP
	}

	resp, err := c.sendRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	return c.processResponse(resp)
}

// sendRequest 发送API请求并解析响应
func (c *ClaudeClient) sendRequest(ctx context.Context, req *ClaudeRequest) (*ClaudeResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, NewLLMError(ErrCodeInvalidRequest, fmt.Sprintf("failed to marshal request: %v", err))
	}

	// 使用重试机制发送请求，每次重试都重建请求体
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// 指数退避重试
			select {
			case <-ctx.Done():
				return nil, NewLLMError(ErrCodeTimeout, ctx.Err().Error())
			case <-time.After(time.Duration(1<<attempt) * 100 * time.Millisecond):
			}
		}

		httpReq, reqErr := http.NewRequestWithContext(
			ctx,
			http.MethodPost,
			c.baseURL,
			bytes.NewReader(jsonData),
		)
		if reqErr != nil {
			return nil, NewLLMError(ErrCodeInvalidRequest, fmt.Sprintf("failed to create request: %v", reqErr))
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-api-key", c.apiKey)
		httpReq.Header.Set("anthropic-version", anthropicVersion)
		httpReq.Header.Set("Accept", "application/json")

		resp, lastErr = c.httpClient.Do(httpReq)
		if lastErr == nil && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			// 成功或客户端错误，不需要重试
			break
		}
		if lastErr == nil && attempt < c.maxRetries {
			resp.Body.Close() // 关闭响应体，避免资源泄露
		}
	}

	if lastErr != nil {
		return nil, NewLLMError(ErrCodeNetworkError, fmt.Sprintf("request failed: %v", lastErr))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewLLMError(ErrCodeServerError, fmt.Sprintf("failed to read response: %v", err))
	}

	// 解析JSON响应
	var claudeResp ClaudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return nil, NewLLMError(ErrCodeServerError, fmt.Sprintf("failed to parse response: %v", err))
	}

	// 检查API返回的错误
	if claudeResp.Error != nil {
		code := ErrCodeServerError
		switch claudeResp.Error.Type {
		case "authentication_error":
			code = ErrCodeInvalidAPIKey
		case "rate_limit_error":
			code = ErrCodeRateLimited
		case "invalid_request_error":
			code = ErrCodeInvalidRequest
		case "overloaded_error":
			code = ErrCodeModelOverload
		}
		return nil, NewLLMError(code,
			fmt.Sprintf("API error: %s (%s)", claudeResp.Error.Message, claudeResp.Error.Type))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewLLMError(ErrCodeServerError,
			fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(body)))
	}

	return &claudeResp, nil
}

// processResponse 处理Claude的响应
func (c *ClaudeClient) processResponse(resp *ClaudeResponse) (*Response, error) {
	result := &Response{
		ModelName:  c.model,
		TokenCount: resp.Usage.InputTokens + resp.Usage.OutputTokens,
		FinishTime: time.Now(),
	}

	// 拼接所有文本内容块
	for _, block := range resp.Content {
		if block.Type == "text" {
			result.Text += block.Text
		}
	}
	if result.Text == "" {
		return nil, NewLLMError(ErrCodeServerError, "empty response from API")
	}

	result.Messages = append(result.Messages, Message{
		Role:    RoleAssistant,
		Content: result.Text,
	})

	return result, nil
}

// 在包初始化时注册Claude客户端
func init() {
	RegisterClient("claude", NewClaudeClient)
}
