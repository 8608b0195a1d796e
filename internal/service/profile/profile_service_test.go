package profile

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
	"github.com/weiwangfds/studyhub/internal/service/mail"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

// setupTestDB 使用内存SQLite数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Init(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type fakeIdentity struct {
	users map[string]*identity.User
}

func (f *fakeIdentity) Lookup(ctx context.Context, userID string) (*identity.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func setupProfiles(t *testing.T) (ProfileService, *gorm.DB) {
	db := setupTestDB(t)
	idp := &fakeIdentity{users: map[string]*identity.User{
		"user_alice": {ID: "user_alice", Name: "Alice Liddell", Email: "alice@example.com", ImageURL: "https://img.example.com/alice.png"},
	}}
	svc := NewProfileService(db, idp, config.AuthConfig{Provider: "header", AdminUserIDs: []string{"user_admin"}})
	return svc, db
}

func TestGetOrCreate(t *testing.T) {
	svc, db := setupProfiles(t)
	ctx := context.Background()

	t.Run("创建时填充身份信息", func(t *testing.T) {
		p, err := svc.GetOrCreate(ctx, "user_alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice Liddell", p.Name)
		assert.Equal(t, "alice@example.com", p.Email)
		assert.Equal(t, database.RoleStudent, p.Role)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("重复调用不会插入新记录", func(t *testing.T) {
		first, err := svc.GetOrCreate(ctx, "user_alice")
		require.NoError(t, err)
		second, err := svc.GetOrCreate(ctx, "user_alice")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		db.Model(&database.Profile{}).Where("user_id = ?", "user_alice").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("身份查询失败时使用用户ID作为名称", func(t *testing.T) {
		p, err := svc.GetOrCreate(ctx, "user_unknown")
		require.NoError(t, err)
		assert.Equal(t, "user_unknown", p.Name)
	})

	t.Run("配置中的管理员", func(t *testing.T) {
		p, err := svc.GetOrCreate(ctx, "user_admin")
		require.NoError(t, err)
		assert.Equal(t, database.RoleAdmin, p.Role)
		assert.True(t, svc.IsAdmin(ctx, "user_admin"))
		assert.False(t, svc.IsAdmin(ctx, "user_alice"))
	})
}

func TestGetAndUpdate(t *testing.T) {
	svc, _ := setupProfiles(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "nobody")
	assert.True(t, errors.Is(err, apperrors.ErrProfileNotFoundError))

	name := "Alice"
	bio := "Math lover"
	p, err := svc.Update(ctx, "user_alice", &validation.UpdateProfile{Name: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "Math lover", p.Bio)
	assert.Equal(t, "alice@example.com", p.Email)
}

func TestAwardXP(t *testing.T) {
	svc, db := setupProfiles(t)
	ctx := context.Background()

	require.NoError(t, svc.AwardXP(ctx, "user_alice", 10))
	require.NoError(t, svc.AwardXP(ctx, "user_alice", 5))

	p, err := svc.Get(ctx, "user_alice")
	require.NoError(t, err)
	assert.Equal(t, 15, p.XP)

	err = AddXP(db, "missing", 10)
	assert.True(t, errors.Is(err, apperrors.ErrProfileNotFoundError))
}

func TestRequireTutor(t *testing.T) {
	svc, db := setupProfiles(t)
	ctx := context.Background()

	_, err := svc.RequireTutor(ctx, "user_alice")
	assert.True(t, errors.Is(err, apperrors.ErrTutorRequiredError))

	require.NoError(t, db.Model(&database.Profile{}).Where("user_id = ?", "user_alice").Update("role", database.RoleTutor).Error)
	p, err := svc.RequireTutor(ctx, "user_alice")
	require.NoError(t, err)
	assert.Equal(t, database.RoleTutor, p.Role)
}

func TestTutorOnboarding(t *testing.T) {
	profiles, db := setupProfiles(t)
	mailer := mail.NewConsoleMailer(mail.Addresses("StudyHub <no-reply@studyhub.local>")[0])
	svc := NewTutorService(db, profiles, mailer, []string{"admin@studyhub.local"})
	ctx := context.Background()

	req := &validation.TutorApplication{
		Bio:      "Ten years of teaching calculus and algebra.",
		Subjects: []string{"math", " physics "},
	}

	app, err := svc.Apply(ctx, "user_alice", req)
	require.NoError(t, err)
	assert.Equal(t, database.ApplicationPending, app.Status)
	assert.Equal(t, "math,physics", app.Subjects)

	t.Run("待审核时不能重复申请", func(t *testing.T) {
		_, err := svc.Apply(ctx, "user_alice", req)
		assert.True(t, errors.Is(err, apperrors.ErrApplicationExistsError))
	})

	t.Run("非管理员不能审核", func(t *testing.T) {
		_, err := svc.Review(ctx, "user_alice", app.ID, &validation.ReviewApplication{Approve: true})
		assert.True(t, errors.Is(err, apperrors.ErrAdminRequiredError))
		_, err = svc.ListApplications(ctx, "user_alice", "")
		assert.True(t, errors.Is(err, apperrors.ErrAdminRequiredError))
	})

	t.Run("管理员通过申请", func(t *testing.T) {
		pending, err := svc.ListApplications(ctx, "user_admin", database.ApplicationPending)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		reviewed, err := svc.Review(ctx, "user_admin", app.ID, &validation.ReviewApplication{Approve: true, Note: "Welcome"})
		require.NoError(t, err)
		assert.Equal(t, database.ApplicationApproved, reviewed.Status)

		p, err := profiles.Get(ctx, "user_alice")
		require.NoError(t, err)
		assert.Equal(t, database.RoleTutor, p.Role)

		mine, err := svc.MyApplication(ctx, "user_alice")
		require.NoError(t, err)
		assert.Equal(t, database.ApplicationApproved, mine.Status)
	})

	t.Run("已审核的申请不能再次审核", func(t *testing.T) {
		_, err := svc.Review(ctx, "user_admin", app.ID, &validation.ReviewApplication{Approve: false})
		assert.True(t, errors.Is(err, apperrors.ErrApplicationReviewedError))
	})

	t.Run("导师不能再次申请", func(t *testing.T) {
		_, err := svc.Apply(ctx, "user_alice", req)
		assert.True(t, errors.Is(err, apperrors.ErrApplicationExistsError))
	})

	sent := mailer.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "admin@studyhub.local", sent[0].To[0].Address)
	assert.Equal(t, "alice@example.com", sent[1].To[0].Address)
}

func TestFollow(t *testing.T) {
	profiles, db := setupProfiles(t)
	svc := NewFollowService(db, profiles)
	ctx := context.Background()

	for _, id := range []string{"u1", "u2", "u3"} {
		_, err := profiles.GetOrCreate(ctx, id)
		require.NoError(t, err)
	}

	assert.True(t, errors.Is(svc.Follow(ctx, "u1", "u1"), apperrors.ErrCannotFollowSelfError))
	assert.True(t, errors.Is(svc.Follow(ctx, "u1", "ghost"), apperrors.ErrProfileNotFoundError))

	require.NoError(t, svc.Follow(ctx, "u1", "u2"))
	require.NoError(t, svc.Follow(ctx, "u1", "u2"))
	require.NoError(t, svc.Follow(ctx, "u3", "u2"))

	ok, err := svc.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, ok)

	followers, err := svc.Followers(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := svc.Following(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "u2", following[0].UserID)

	require.NoError(t, svc.Unfollow(ctx, "u1", "u2"))
	require.NoError(t, svc.Unfollow(ctx, "u1", "u2"))
	ok, err = svc.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, ok)
}
