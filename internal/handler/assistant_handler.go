package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/internal/response"
	"github.com/weiwangfds/studyhub/internal/service/assistant"
	"github.com/weiwangfds/studyhub/internal/validation"
)

// AssistantHandler 学习助手处理器
type AssistantHandler struct {
	assistant assistant.AssistantService
}

// NewAssistantHandler 创建学习助手处理器实例
func NewAssistantHandler(svc assistant.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: svc}
}

// Chat 与学习助手对话
// @Summary 学习助手
// @Tags 助手
// @Accept json
// @Produce json
// @Param body body validation.AIChat true "userMessage、history、settings"
// @Success 200 {object} assistant.Reply
// @Failure 500 {object} response.ErrorBody
// @Router /api/ai-chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req validation.AIChat
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.assistant.Chat(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, reply)
}
