package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/internal/response"
	"github.com/weiwangfds/studyhub/internal/service/chat"
	"github.com/weiwangfds/studyhub/internal/validation"
)

// ChatHandler 群聊处理器
type ChatHandler struct {
	chat chat.ChatService
}

// NewChatHandler 创建群聊处理器实例
func NewChatHandler(chat chat.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// CreateGroup 创建群组
// @Summary 创建群组
// @Tags 群聊
// @Router /api/groups [post]
func (h *ChatHandler) CreateGroup(c *gin.Context) {
	var req validation.CreateGroup
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.chat.CreateGroup(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, g)
}

// ListGroups 我加入的群组
// @Summary 我加入的群组
// @Tags 群聊
// @Router /api/groups [get]
func (h *ChatHandler) ListGroups(c *gin.Context) {
	groups, err := h.chat.ListMyGroups(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, groups)
}

// GetGroup 群组详情
// @Summary 群组详情
// @Tags 群聊
// @Router /api/groups/{groupId} [get]
func (h *ChatHandler) GetGroup(c *gin.Context) {
	g, err := h.chat.GetGroup(c.Request.Context(), currentUser(c), c.Param("groupId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, g)
}

// Join 通过邀请码加入群组
// @Summary 加入群组
// @Tags 群聊
// @Router /api/groups/join/{inviteCode} [post]
func (h *ChatHandler) Join(c *gin.Context) {
	g, err := h.chat.JoinByInvite(c.Request.Context(), currentUser(c), c.Param("inviteCode"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, g)
}

// Leave 退出群组
// @Summary 退出群组
// @Tags 群聊
// @Router /api/groups/{groupId}/leave [post]
func (h *ChatHandler) Leave(c *gin.Context) {
	if err := h.chat.Leave(c.Request.Context(), currentUser(c), c.Param("groupId")); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// RegenerateInvite 重新生成邀请码
// @Summary 重新生成邀请码
// @Tags 群聊
// @Router /api/groups/{groupId}/invite [post]
func (h *ChatHandler) RegenerateInvite(c *gin.Context) {
	g, err := h.chat.RegenerateInvite(c.Request.Context(), currentUser(c), c.Param("groupId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, g)
}

// UpdateMemberRole 修改成员角色
// @Summary 修改成员角色
// @Tags 群聊
// @Router /api/groups/{groupId}/members/{userId} [patch]
func (h *ChatHandler) UpdateMemberRole(c *gin.Context) {
	var req validation.UpdateMemberRole
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.chat.UpdateMemberRole(c.Request.Context(), currentUser(c), c.Param("groupId"), c.Param("userId"), req.Role)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, m)
}

// RemoveMember 移除成员
// @Summary 移除成员
// @Tags 群聊
// @Router /api/groups/{groupId}/members/{userId} [delete]
func (h *ChatHandler) RemoveMember(c *gin.Context) {
	if err := h.chat.RemoveMember(c.Request.Context(), currentUser(c), c.Param("groupId"), c.Param("userId")); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// ListMessages 消息列表，按时间倒序，通过 cursor 翻页
// @Summary 消息列表
// @Tags 群聊
// @Param cursor query string false "上一页最后一条消息ID"
// @Param limit query int false "条数，默认10"
// @Router /api/groups/{groupId}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	page, err := h.chat.ListMessages(c.Request.Context(), currentUser(c), c.Param("groupId"), c.Query("cursor"), queryInt(c, "limit", 0))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, page)
}

// SendMessage 发送消息
// @Summary 发送消息
// @Tags 群聊
// @Router /api/groups/{groupId}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req validation.SendMessage
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.chat.SendMessage(c.Request.Context(), currentUser(c), c.Param("groupId"), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, m)
}

// EditMessage 编辑消息
// @Summary 编辑消息
// @Tags 群聊
// @Router /api/groups/{groupId}/messages/{messageId} [patch]
func (h *ChatHandler) EditMessage(c *gin.Context) {
	var req validation.EditMessage
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.chat.EditMessage(c.Request.Context(), currentUser(c), c.Param("groupId"), c.Param("messageId"), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, m)
}

// DeleteMessage 删除消息，返回软删除后的消息
// @Summary 删除消息
// @Tags 群聊
// @Router /api/groups/{groupId}/messages/{messageId} [delete]
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	m, err := h.chat.DeleteMessage(c.Request.Context(), currentUser(c), c.Param("groupId"), c.Param("messageId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, m)
}
