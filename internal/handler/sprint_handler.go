package handler

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/response"
	"github.com/weiwangfds/studyhub/internal/service/sprint"
	"github.com/weiwangfds/studyhub/internal/validation"
)

// SprintHandler 看板、列和卡片处理器
// 所有操作都限定在当前用户选择的组织内
type SprintHandler struct {
	sprints sprint.SprintService
}

// NewSprintHandler 创建看板处理器实例
func NewSprintHandler(sprints sprint.SprintService) *SprintHandler {
	return &SprintHandler{sprints: sprints}
}

// SprintOrg 返回看板所属组织，看板不在当前组织时返回 404
// @Summary 看板所属组织
// @Tags 看板
// @Success 200 {object} map[string]string "{orgId}"
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /api/sprint/{sprintId} [get]
func (h *SprintHandler) SprintOrg(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	owner, err := h.sprints.OrgOf(c.Request.Context(), c.Param("sprintId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	if owner != orgID {
		response.Fail(c, apperrors.ErrSprintNotFoundError)
		return
	}
	response.OK(c, gin.H{"orgId": owner})
}

// CreateSprint 在当前组织中创建看板
// @Summary 创建看板
// @Tags 看板
// @Router /api/sprints [post]
func (h *SprintHandler) CreateSprint(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.CreateSprint
	if !bindJSON(c, &req) {
		return
	}
	if req.OrgID != "" && req.OrgID != orgID {
		response.Fail(c, apperrors.ErrForbiddenAccess.WithDetails("orgId does not match the active organization"))
		return
	}
	req.OrgID = orgID

	s, err := h.sprints.CreateSprint(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, s)
}

// ListSprints 组织的看板列表
// @Summary 组织的看板列表
// @Tags 看板
// @Router /api/orgs/{orgId}/sprints [get]
func (h *SprintHandler) ListSprints(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	if c.Param("orgId") != orgID {
		response.Forbidden(c, "not a member of this organization")
		return
	}
	list, err := h.sprints.ListSprints(c.Request.Context(), orgID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, list)
}

// GetSprint 看板详情，包含按顺序排列的列和卡片
// @Summary 看板详情
// @Tags 看板
// @Router /api/sprints/{sprintId} [get]
func (h *SprintHandler) GetSprint(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	s, err := h.sprints.GetSprint(c.Request.Context(), orgID, c.Param("sprintId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, s)
}

// UpdateSprint 修改看板标题
// @Summary 修改看板标题
// @Tags 看板
// @Router /api/sprints/{sprintId} [patch]
func (h *SprintHandler) UpdateSprint(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.UpdateSprint
	if !bindJSON(c, &req) {
		return
	}
	req.ID = c.Param("sprintId")
	s, err := h.sprints.UpdateSprint(c.Request.Context(), orgID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, s)
}

// DeleteSprint 删除看板及其列和卡片
// @Summary 删除看板及其列和卡片
// @Tags 看板
// @Router /api/sprints/{sprintId} [delete]
func (h *SprintHandler) DeleteSprint(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	req := validation.DeleteSprint{ID: c.Param("sprintId")}
	if err := h.sprints.DeleteSprint(c.Request.Context(), orgID, &req); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// CreateList 新建列
// @Summary 新建列
// @Tags 看板
// @Router /api/lists [post]
func (h *SprintHandler) CreateList(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.CreateList
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.sprints.CreateList(c.Request.Context(), orgID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, l)
}

// UpdateList 修改列标题
// @Summary 修改列标题
// @Tags 看板
// @Router /api/lists/{listId} [patch]
func (h *SprintHandler) UpdateList(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.UpdateList
	if !bindJSON(c, &req) {
		return
	}
	req.ID = c.Param("listId")
	l, err := h.sprints.UpdateList(c.Request.Context(), orgID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, l)
}

// DeleteList 删除列，看板ID通过 sprintId 查询参数传入
// @Summary 删除列
// @Tags 看板
// @Router /api/lists/{listId} [delete]
func (h *SprintHandler) DeleteList(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	req := validation.DeleteList{ID: c.Param("listId"), SprintID: c.Query("sprintId")}
	if err := h.sprints.DeleteList(c.Request.Context(), orgID, &req); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// CopyList 复制列
// @Summary 复制列
// @Tags 看板
// @Router /api/lists/{listId}/copy [post]
func (h *SprintHandler) CopyList(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.CopyList
	if !bindJSON(c, &req) {
		return
	}
	req.ID = c.Param("listId")
	l, err := h.sprints.CopyList(c.Request.Context(), orgID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, l)
}

// ReorderLists 调整列顺序
// @Summary 列排序
// @Tags 看板
// @Router /api/sprints/{sprintId}/lists/order [put]
func (h *SprintHandler) ReorderLists(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.UpdateListOrder
	if !bindJSON(c, &req) {
		return
	}
	req.SprintID = c.Param("sprintId")
	lists, err := h.sprints.ReorderLists(c.Request.Context(), orgID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, lists)
}

// CreateCard 新建卡片
// @Summary 新建卡片
// @Tags 看板
// @Router /api/cards [post]
func (h *SprintHandler) CreateCard(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.CreateCard
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.sprints.CreateCard(c.Request.Context(), orgID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, card)
}

// UpdateCard 修改卡片
// @Summary 修改卡片
// @Tags 看板
// @Router /api/cards/{cardId} [patch]
func (h *SprintHandler) UpdateCard(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.UpdateCard
	if !bindJSON(c, &req) {
		return
	}
	req.ID = c.Param("cardId")
	card, err := h.sprints.UpdateCard(c.Request.Context(), orgID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, card)
}

// DeleteCard 删除卡片，看板ID通过 sprintId 查询参数传入
// @Summary 删除卡片
// @Tags 看板
// @Router /api/cards/{cardId} [delete]
func (h *SprintHandler) DeleteCard(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	req := validation.DeleteCard{ID: c.Param("cardId"), SprintID: c.Query("sprintId")}
	if err := h.sprints.DeleteCard(c.Request.Context(), orgID, &req); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// CopyCard 复制卡片
// @Summary 复制卡片
// @Tags 看板
// @Router /api/cards/{cardId}/copy [post]
func (h *SprintHandler) CopyCard(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.CopyCard
	if !bindJSON(c, &req) {
		return
	}
	req.ID = c.Param("cardId")
	card, err := h.sprints.CopyCard(c.Request.Context(), orgID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, card)
}

// ReorderCards 调整卡片顺序，可跨列移动
// @Summary 调整卡片顺序
// @Tags 看板
// @Router /api/sprints/{sprintId}/cards/order [put]
func (h *SprintHandler) ReorderCards(c *gin.Context) {
	orgID, ok := currentOrg(c)
	if !ok {
		return
	}
	var req validation.UpdateCardOrder
	if !bindJSON(c, &req) {
		return
	}
	req.SprintID = c.Param("sprintId")
	if err := h.sprints.ReorderCards(c.Request.Context(), orgID, &req); err != nil {
		response.Fail(c, err)
		return
	}
	s, err := h.sprints.GetSprint(c.Request.Context(), orgID, req.SprintID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, s)
}
