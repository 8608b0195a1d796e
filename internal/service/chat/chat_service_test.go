package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Init(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestGroupMembership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "owner", &validation.CreateGroup{Name: "Calculus study group"})
	require.NoError(t, err)
	require.Len(t, group.Members, 1)
	assert.Equal(t, database.MemberAdmin, group.Members[0].Role)
	assert.NotEmpty(t, group.InviteCode)

	t.Run("非成员不能查看", func(t *testing.T) {
		_, err := svc.GetGroup(ctx, "stranger", group.ID)
		assert.True(t, errors.Is(err, apperrors.ErrNotGroupMemberError))

		_, err = svc.GetGroup(ctx, "owner", "missing")
		assert.True(t, errors.Is(err, apperrors.ErrGroupNotFoundError))
	})

	t.Run("邀请码加入", func(t *testing.T) {
		_, err := svc.JoinByInvite(ctx, "alice", "bad-code")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInviteError))

		joined, err := svc.JoinByInvite(ctx, "alice", group.InviteCode)
		require.NoError(t, err)
		assert.Len(t, joined.Members, 2)

		again, err := svc.JoinByInvite(ctx, "alice", group.InviteCode)
		require.NoError(t, err)
		assert.Len(t, again.Members, 2)

		_, err = svc.JoinByInvite(ctx, "bob", group.InviteCode)
		require.NoError(t, err)

		mine, err := svc.ListMyGroups(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})

	t.Run("重新生成邀请码", func(t *testing.T) {
		_, err := svc.RegenerateInvite(ctx, "alice", group.ID)
		assert.True(t, errors.Is(err, apperrors.ErrForbiddenAccess))

		updated, err := svc.RegenerateInvite(ctx, "owner", group.ID)
		require.NoError(t, err)
		assert.NotEqual(t, group.InviteCode, updated.InviteCode)

		_, err = svc.JoinByInvite(ctx, "carol", group.InviteCode)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInviteError))
	})

	t.Run("角色管理", func(t *testing.T) {
		_, err := svc.UpdateMemberRole(ctx, "alice", group.ID, "bob", database.MemberModerator)
		assert.True(t, errors.Is(err, apperrors.ErrForbiddenAccess))

		_, err = svc.UpdateMemberRole(ctx, "owner", group.ID, "bob", "superuser")
		appErr, ok := apperrors.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrInvalidParams, appErr.Code)

		member, err := svc.UpdateMemberRole(ctx, "owner", group.ID, "alice", database.MemberModerator)
		require.NoError(t, err)
		assert.Equal(t, database.MemberModerator, member.Role)

		_, err = svc.UpdateMemberRole(ctx, "owner", group.ID, "owner", database.MemberGuest)
		assert.True(t, errors.Is(err, apperrors.ErrForbiddenAccess))
	})

	t.Run("移除成员与退出", func(t *testing.T) {
		require.NoError(t, svc.RemoveMember(ctx, "alice", group.ID, "bob"))
		_, err := svc.GetGroup(ctx, "bob", group.ID)
		assert.True(t, errors.Is(err, apperrors.ErrNotGroupMemberError))

		assert.True(t, errors.Is(svc.RemoveMember(ctx, "alice", group.ID, "owner"), apperrors.ErrForbiddenAccess))
		assert.True(t, errors.Is(svc.Leave(ctx, "owner", group.ID), apperrors.ErrOwnerCannotLeaveError))

		require.NoError(t, svc.Leave(ctx, "alice", group.ID))
		assert.True(t, errors.Is(svc.Leave(ctx, "alice", group.ID), apperrors.ErrNotGroupMemberError))
	})
}

func TestMessages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "owner", &validation.CreateGroup{Name: "Physics"})
	require.NoError(t, err)
	_, err = svc.JoinByInvite(ctx, "alice", group.InviteCode)
	require.NoError(t, err)

	t.Run("非成员不能发送", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, "stranger", group.ID, &validation.SendMessage{Content: "hi"})
		assert.True(t, errors.Is(err, apperrors.ErrNotGroupMemberError))
	})

	t.Run("空消息被拒绝", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, "alice", group.ID, &validation.SendMessage{})
		appErr, ok := apperrors.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrInvalidParams, appErr.Code)
	})

	msg, err := svc.SendMessage(ctx, "alice", group.ID, &validation.SendMessage{Content: "Does anyone have the notes?"})
	require.NoError(t, err)

	t.Run("只有发送者能编辑", func(t *testing.T) {
		_, err := svc.EditMessage(ctx, "owner", group.ID, msg.ID, &validation.EditMessage{Content: "changed"})
		assert.True(t, errors.Is(err, apperrors.ErrForbiddenAccess))

		edited, err := svc.EditMessage(ctx, "alice", group.ID, msg.ID, &validation.EditMessage{Content: "Does anyone have chapter 2 notes?"})
		require.NoError(t, err)
		assert.True(t, edited.Edited)
		assert.Equal(t, "Does anyone have chapter 2 notes?", edited.Content)
	})

	t.Run("管理员软删除消息", func(t *testing.T) {
		deleted, err := svc.DeleteMessage(ctx, "owner", group.ID, msg.ID)
		require.NoError(t, err)
		assert.True(t, deleted.Deleted)
		assert.Equal(t, database.DeletedMessageContent, deleted.Content)

		_, err = svc.EditMessage(ctx, "alice", group.ID, msg.ID, &validation.EditMessage{Content: "again"})
		assert.True(t, errors.Is(err, apperrors.ErrMessageNotFoundError))
	})

	t.Run("访客不能删除他人消息", func(t *testing.T) {
		own, err := svc.SendMessage(ctx, "owner", group.ID, &validation.SendMessage{Content: "Welcome"})
		require.NoError(t, err)
		_, err = svc.DeleteMessage(ctx, "alice", group.ID, own.ID)
		assert.True(t, errors.Is(err, apperrors.ErrForbiddenAccess))
	})
}

func TestListMessagesCursor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "owner", &validation.CreateGroup{Name: "History"})
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		m := database.Message{GroupID: group.ID, SenderID: "owner", Content: fmt.Sprintf("message %02d", i)}
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(&m).Error)
	}

	first, err := svc.ListMessages(ctx, "owner", group.ID, "", 0)
	require.NoError(t, err)
	require.Len(t, first.Items, DefaultMessageBatch)
	assert.Equal(t, "message 24", first.Items[0].Content)
	assert.NotEmpty(t, first.NextCursor)

	second, err := svc.ListMessages(ctx, "owner", group.ID, first.NextCursor, 0)
	require.NoError(t, err)
	require.Len(t, second.Items, DefaultMessageBatch)
	assert.Equal(t, "message 14", second.Items[0].Content)

	third, err := svc.ListMessages(ctx, "owner", group.ID, second.NextCursor, 0)
	require.NoError(t, err)
	require.Len(t, third.Items, 5)
	assert.Equal(t, "message 00", third.Items[4].Content)
	assert.Empty(t, third.NextCursor)

	_, err = svc.ListMessages(ctx, "owner", group.ID, "bogus", 0)
	assert.True(t, errors.Is(err, apperrors.ErrMessageNotFoundError))

	_, err = svc.ListMessages(ctx, "stranger", group.ID, "", 0)
	assert.True(t, errors.Is(err, apperrors.ErrNotGroupMemberError))
}
