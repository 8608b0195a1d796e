// 笔记服务的单元测试
// 覆盖创建、发布规则、章节排序和学习进度积分
package note

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/service/identity"
	"github.com/weiwangfds/studyhub/internal/service/profile"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

const (
	tutorID   = "user_tutor"
	studentID = "user_student"
)

// setupTestDB 设置测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Init(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// setupServices 创建笔记服务并准备一名导师和一名学生
func setupServices(t *testing.T) (NoteService, profile.ProfileService, *gorm.DB) {
	db := setupTestDB(t)
	profiles := profile.NewProfileService(db, &identity.StaticProvider{}, config.AuthConfig{Provider: "header"})

	ctx := context.Background()
	_, err := profiles.GetOrCreate(ctx, studentID)
	require.NoError(t, err)
	_, err = profiles.GetOrCreate(ctx, tutorID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&database.Profile{}).Where("user_id = ?", tutorID).Update("role", database.RoleTutor).Error)

	return NewNoteService(db, profiles), profiles, db
}

func TestCreateNote(t *testing.T) {
	svc, _, _ := setupServices(t)
	ctx := context.Background()

	t.Run("导师创建笔记", func(t *testing.T) {
		note, err := svc.CreateNote(ctx, tutorID, &validation.CreateNote{Title: "  Algebra 101 "})
		require.NoError(t, err)
		assert.NotEmpty(t, note.ID)
		assert.Equal(t, "Algebra 101", note.Title)
		assert.Equal(t, tutorID, note.CreatorID)
		assert.False(t, note.IsPublished)
	})

	t.Run("学生不能创建笔记", func(t *testing.T) {
		_, err := svc.CreateNote(ctx, studentID, &validation.CreateNote{Title: "Mine"})
		assert.True(t, errors.Is(err, apperrors.ErrTutorRequiredError))
	})

	t.Run("空标题", func(t *testing.T) {
		_, err := svc.CreateNote(ctx, tutorID, &validation.CreateNote{Title: "   "})
		appErr, ok := apperrors.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrInvalidParams, appErr.Code)
	})
}

func TestChaptersAndPublishing(t *testing.T) {
	svc, _, db := setupServices(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, tutorID, &validation.CreateNote{Title: "Physics"})
	require.NoError(t, err)

	_, err = svc.Publish(ctx, tutorID, note.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNoteNotPublishableError), "no chapters yet")

	first, err := svc.CreateChapter(ctx, tutorID, note.ID, &validation.CreateChapter{Title: "Motion"})
	require.NoError(t, err)
	second, err := svc.CreateChapter(ctx, tutorID, note.ID, &validation.CreateChapter{Title: "Forces"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)

	t.Run("只有创建者能修改", func(t *testing.T) {
		_, err := svc.CreateChapter(ctx, studentID, note.ID, &validation.CreateChapter{Title: "Hack"})
		assert.True(t, errors.Is(err, apperrors.ErrForbiddenAccess))
	})

	t.Run("发布需要已发布章节", func(t *testing.T) {
		_, err := svc.Publish(ctx, tutorID, note.ID)
		assert.True(t, errors.Is(err, apperrors.ErrNoteNotPublishableError))

		_, err = svc.PublishChapter(ctx, tutorID, note.ID, first.ID)
		require.NoError(t, err)
		published, err := svc.Publish(ctx, tutorID, note.ID)
		require.NoError(t, err)
		assert.True(t, published.IsPublished)
	})

	t.Run("学生只能看到已发布章节", func(t *testing.T) {
		chapters, err := svc.ListChapters(ctx, studentID, note.ID)
		require.NoError(t, err)
		require.Len(t, chapters, 1)
		assert.Equal(t, first.ID, chapters[0].ID)

		own, err := svc.ListChapters(ctx, tutorID, note.ID)
		require.NoError(t, err)
		assert.Len(t, own, 2)
	})

	t.Run("课程目录", func(t *testing.T) {
		notes, total, err := svc.ListPublished(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, notes, 1)
		assert.Len(t, notes[0].Chapters, 1)
	})

	t.Run("调整章节顺序", func(t *testing.T) {
		err := svc.ReorderChapters(ctx, tutorID, note.ID, &validation.ReorderChapters{Items: []validation.PositionItem{
			{ID: first.ID, Position: 2},
			{ID: second.ID, Position: 1},
		}})
		require.NoError(t, err)

		chapters, err := svc.ListChapters(ctx, tutorID, note.ID)
		require.NoError(t, err)
		require.Len(t, chapters, 2)
		assert.Equal(t, second.ID, chapters[0].ID)
		assert.Equal(t, first.ID, chapters[1].ID)

		err = svc.ReorderChapters(ctx, tutorID, note.ID, &validation.ReorderChapters{Items: []validation.PositionItem{
			{ID: first.ID, Position: 5},
			{ID: "missing", Position: 6},
		}})
		assert.True(t, errors.Is(err, apperrors.ErrChapterNotFoundError))

		var reloaded database.NoteChapter
		require.NoError(t, db.Where("id = ?", first.ID).First(&reloaded).Error)
		assert.Equal(t, 2, reloaded.Position, "failed reorder must roll back")
	})

	t.Run("删除最后一个已发布章节后取消发布", func(t *testing.T) {
		require.NoError(t, svc.DeleteChapter(ctx, tutorID, note.ID, first.ID))

		reloaded, err := svc.GetNote(ctx, tutorID, note.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsPublished)
		assert.Len(t, reloaded.Chapters, 1)

		_, err = svc.GetNote(ctx, studentID, note.ID)
		assert.True(t, errors.Is(err, apperrors.ErrNoteNotFoundError))
	})
}

func TestSetProgress(t *testing.T) {
	svc, profiles, db := setupServices(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, tutorID, &validation.CreateNote{Title: "Chemistry"})
	require.NoError(t, err)
	chapter, err := svc.CreateChapter(ctx, tutorID, note.ID, &validation.CreateChapter{Title: "Atoms"})
	require.NoError(t, err)

	_, err = svc.SetProgress(ctx, studentID, note.ID, chapter.ID, true)
	assert.True(t, errors.Is(err, apperrors.ErrChapterNotPublishedError))

	_, err = svc.PublishChapter(ctx, tutorID, note.ID, chapter.ID)
	require.NoError(t, err)
	_, err = svc.Publish(ctx, tutorID, note.ID)
	require.NoError(t, err)

	progress, err := svc.SetProgress(ctx, studentID, note.ID, chapter.ID, true)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)
	assert.NotNil(t, progress.CompletedAt)

	// 取消后再次完成不会重复奖励
	undone, err := svc.SetProgress(ctx, studentID, note.ID, chapter.ID, false)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, undone.ID)
	assert.False(t, undone.IsCompleted)
	assert.Nil(t, undone.CompletedAt)

	redone, err := svc.SetProgress(ctx, studentID, note.ID, chapter.ID, true)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, redone.ID)
	assert.True(t, redone.IsCompleted)

	_, err = svc.SetProgress(ctx, studentID, note.ID, chapter.ID, true)
	require.NoError(t, err)

	var rows int64
	db.Model(&database.ChapterProgress{}).Where("user_id = ? AND chapter_id = ?", studentID, chapter.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)

	p, err := profiles.Get(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, ChapterXP, p.XP)
}

func TestDeleteNote(t *testing.T) {
	svc, _, db := setupServices(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, tutorID, &validation.CreateNote{Title: "Biology"})
	require.NoError(t, err)
	_, err = svc.CreateChapter(ctx, tutorID, note.ID, &validation.CreateChapter{Title: "Cells"})
	require.NoError(t, err)

	assert.True(t, errors.Is(svc.DeleteNote(ctx, studentID, note.ID), apperrors.ErrForbiddenAccess))
	require.NoError(t, svc.DeleteNote(ctx, tutorID, note.ID))

	var chapters int64
	db.Model(&database.NoteChapter{}).Where("note_id = ?", note.ID).Count(&chapters)
	assert.Zero(t, chapters)

	_, err = svc.GetNote(ctx, tutorID, note.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNoteNotFoundError))

	mine, err := svc.ListMine(ctx, tutorID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
