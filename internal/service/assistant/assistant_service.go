// Package assistant 提供学习助手对话
// 请求中的历史记录和参数原样转交给外部大模型，服务端不保存对话
package assistant

import (
	"context"
	"time"

	"github.com/weiwangfds/studyhub/config"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/validation"
)

// Reply 助手回复
type Reply struct {
	Response string `json:"response"`
}

// AssistantService 学习助手服务接口
type AssistantService interface {
	// Chat 根据历史记录和新消息生成回复
	Chat(ctx context.Context, userID string, req *validation.AIChat) (*Reply, error)
}

type assistantService struct {
	model   Model
	cfg     config.AIConfig
	timeout time.Duration
}

// NewAssistantService 创建学习助手服务实例
// model 为 nil 时服务可以创建，但每次调用都返回不可用
func NewAssistantService(model Model, cfg config.AIConfig) AssistantService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if model == nil {
		logger.Warn("Assistant model is not configured, /api/ai-chat will be unavailable")
	} else {
		logger.WithField("model", cfg.Model).Info("Initializing assistant service")
	}
	return &assistantService{model: model, cfg: cfg, timeout: timeout}
}

func (s *assistantService) Chat(ctx context.Context, userID string, req *validation.AIChat) (*Reply, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}
	if s.model == nil {
		return nil, apperrors.ErrAssistantUnavailableError
	}

	turns := make([]Turn, 0, len(req.History)+1)
	for _, h := range req.History {
		turns = append(turns, Turn{Role: h.Role, Content: h.Content})
	}
	turns = append(turns, Turn{Role: RoleUser, Content: req.UserMessage})

	opts := Options{
		Model:        s.cfg.Model,
		SystemPrompt: s.cfg.SystemPrompt,
	}
	set := req.Settings
	if set.Model != "" {
		opts.Model = set.Model
	}
	if set.SystemPrompt != "" {
		opts.SystemPrompt = set.SystemPrompt
	}
	opts.Temperature = set.Temperature
	opts.TopP = set.TopP
	opts.MaxTokens = set.MaxTokens

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.model.Generate(ctx, turns, opts)
	if err != nil {
		logger.WithError(err).WithField("user_id", userID).Error("Assistant request failed")
		return nil, apperrors.Wrap(apperrors.ErrAssistantFailed, apperrors.GetErrorMessage(apperrors.ErrAssistantFailed), err)
	}

	logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"turns":    len(turns),
		"model":    opts.Model,
		"duration": time.Since(start).String(),
	}).Info("Assistant replied")
	return &Reply{Response: text}, nil
}
