package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// 对话角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn 一轮对话
type Turn struct {
	Role    string
	Content string
}

// Options 单次生成的参数，零值表示使用模型默认值
type Options struct {
	Model        string
	Temperature  *float32
	TopP         *float32
	MaxTokens    int32
	SystemPrompt string
}

// Model 大模型接口
type Model interface {
	Generate(ctx context.Context, turns []Turn, opts Options) (string, error)
}

// GeminiModel 基于 Google Gemini API 的模型实现
type GeminiModel struct {
	client       *genai.Client
	defaultModel string
}

// NewGeminiModel 创建 Gemini 客户端
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiModel{client: client, defaultModel: model}, nil
}

// Generate 将对话历史转换为 Gemini 的内容格式并生成回复
func (m *GeminiModel) Generate(ctx context.Context, turns []Turn, opts Options) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     opts.Temperature,
		TopP:            opts.TopP,
		MaxOutputTokens: opts.MaxTokens,
	}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}

	model := opts.Model
	if model == "" {
		model = m.defaultModel
	}

	resp, err := m.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}
