package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/internal/response"
	"github.com/weiwangfds/studyhub/internal/service/note"
	"github.com/weiwangfds/studyhub/internal/validation"
)

// NoteHandler 笔记（课程）和章节处理器
type NoteHandler struct {
	notes note.NoteService
}

// NewNoteHandler 创建笔记处理器实例
func NewNoteHandler(notes note.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// CreateNote 创建笔记，仅导师可用
// @Summary 创建笔记
// @Tags 笔记
// @Accept json
// @Produce json
// @Param note body validation.CreateNote true "标题"
// @Success 201 {object} database.Note
// @Failure 401 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req validation.CreateNote
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.notes.CreateNote(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, n)
}

// ListMine 我创建的笔记
// @Summary 我的笔记
// @Tags 笔记
// @Router /api/notes [get]
func (h *NoteHandler) ListMine(c *gin.Context) {
	notes, err := h.notes.ListMine(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, notes)
}

// ListCourses 已发布的课程，分页
// @Summary 课程列表
// @Tags 笔记
// @Param page query int false "页码"
// @Param pageSize query int false "每页条数"
// @Router /api/courses [get]
func (h *NoteHandler) ListCourses(c *gin.Context) {
	page, pageSize := note.NormalizePage(queryInt(c, "page", 1), queryInt(c, "pageSize", note.DefaultPageSize))
	notes, total, err := h.notes.ListPublished(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Page(c, notes, total, page, pageSize)
}

// GetNote 笔记详情，非作者只能看到已发布的内容
// @Summary 笔记详情
// @Tags 笔记
// @Router /api/notes/{noteId} [get]
func (h *NoteHandler) GetNote(c *gin.Context) {
	n, err := h.notes.GetNote(c.Request.Context(), currentUser(c), c.Param("noteId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, n)
}

// UpdateNote 修改笔记
// @Summary 修改笔记
// @Tags 笔记
// @Router /api/notes/{noteId} [patch]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	var req validation.UpdateNote
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.notes.UpdateNote(c.Request.Context(), currentUser(c), c.Param("noteId"), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, n)
}

// DeleteNote 删除笔记及其章节
// @Summary 删除笔记
// @Tags 笔记
// @Router /api/notes/{noteId} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	if err := h.notes.DeleteNote(c.Request.Context(), currentUser(c), c.Param("noteId")); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// Publish 发布笔记
// @Summary 发布笔记
// @Tags 笔记
// @Router /api/notes/{noteId}/publish [post]
func (h *NoteHandler) Publish(c *gin.Context) {
	n, err := h.notes.Publish(c.Request.Context(), currentUser(c), c.Param("noteId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, n)
}

// Unpublish 取消发布
// @Summary 取消发布
// @Tags 笔记
// @Router /api/notes/{noteId}/unpublish [post]
func (h *NoteHandler) Unpublish(c *gin.Context) {
	n, err := h.notes.Unpublish(c.Request.Context(), currentUser(c), c.Param("noteId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, n)
}

// CreateChapter 新建章节
// @Summary 新建章节
// @Tags 章节
// @Router /api/notes/{noteId}/chapters [post]
func (h *NoteHandler) CreateChapter(c *gin.Context) {
	var req validation.CreateChapter
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.notes.CreateChapter(c.Request.Context(), currentUser(c), c.Param("noteId"), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, ch)
}

// ListChapters 章节列表
// @Summary 章节列表
// @Tags 章节
// @Router /api/notes/{noteId}/chapters [get]
func (h *NoteHandler) ListChapters(c *gin.Context) {
	chapters, err := h.notes.ListChapters(c.Request.Context(), currentUser(c), c.Param("noteId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, chapters)
}

// ReorderChapters 调整章节顺序
// @Summary 章节排序
// @Tags 章节
// @Router /api/notes/{noteId}/chapters/reorder [put]
func (h *NoteHandler) ReorderChapters(c *gin.Context) {
	var req validation.ReorderChapters
	if !bindJSON(c, &req) {
		return
	}
	noteID := c.Param("noteId")
	ctx := c.Request.Context()
	if err := h.notes.ReorderChapters(ctx, currentUser(c), noteID, &req); err != nil {
		response.Fail(c, err)
		return
	}
	chapters, err := h.notes.ListChapters(ctx, currentUser(c), noteID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, chapters)
}

// UpdateChapter 修改章节
// @Summary 修改章节
// @Tags 章节
// @Router /api/notes/{noteId}/chapters/{chapterId} [patch]
func (h *NoteHandler) UpdateChapter(c *gin.Context) {
	var req validation.UpdateChapter
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.notes.UpdateChapter(c.Request.Context(), currentUser(c), c.Param("noteId"), c.Param("chapterId"), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ch)
}

// DeleteChapter 删除章节
// @Summary 删除章节
// @Tags 章节
// @Router /api/notes/{noteId}/chapters/{chapterId} [delete]
func (h *NoteHandler) DeleteChapter(c *gin.Context) {
	if err := h.notes.DeleteChapter(c.Request.Context(), currentUser(c), c.Param("noteId"), c.Param("chapterId")); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// PublishChapter 发布章节
// @Summary 发布章节
// @Tags 章节
// @Router /api/notes/{noteId}/chapters/{chapterId}/publish [post]
func (h *NoteHandler) PublishChapter(c *gin.Context) {
	ch, err := h.notes.PublishChapter(c.Request.Context(), currentUser(c), c.Param("noteId"), c.Param("chapterId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ch)
}

// UnpublishChapter 取消发布章节，笔记没有已发布章节时一并取消发布
// @Summary 取消发布章节
// @Tags 章节
// @Router /api/notes/{noteId}/chapters/{chapterId}/unpublish [post]
func (h *NoteHandler) UnpublishChapter(c *gin.Context) {
	ch, err := h.notes.UnpublishChapter(c.Request.Context(), currentUser(c), c.Param("noteId"), c.Param("chapterId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ch)
}

// SetProgress 标记章节完成情况，首次完成时获得经验值
// @Summary 学习进度
// @Tags 章节
// @Router /api/notes/{noteId}/chapters/{chapterId}/progress [put]
func (h *NoteHandler) SetProgress(c *gin.Context) {
	var req validation.ChapterProgress
	if !bindJSON(c, &req) {
		return
	}
	progress, err := h.notes.SetProgress(c.Request.Context(), currentUser(c), c.Param("noteId"), c.Param("chapterId"), req.IsCompleted)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, progress)
}
