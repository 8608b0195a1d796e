package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/internal/response"
	"github.com/weiwangfds/studyhub/internal/service/profile"
	"github.com/weiwangfds/studyhub/internal/validation"
)

// ProfileHandler 用户资料、导师申请、关注和排行榜处理器
type ProfileHandler struct {
	profiles    profile.ProfileService
	tutors      profile.TutorService
	follows     profile.FollowService
	leaderboard profile.LeaderboardService
}

// NewProfileHandler 创建用户资料处理器实例
func NewProfileHandler(profiles profile.ProfileService, tutors profile.TutorService, follows profile.FollowService, leaderboard profile.LeaderboardService) *ProfileHandler {
	return &ProfileHandler{
		profiles:    profiles,
		tutors:      tutors,
		follows:     follows,
		leaderboard: leaderboard,
	}
}

// Me 当前用户资料，首次访问时创建
// @Summary 获取我的资料
// @Tags 用户
// @Router /api/profile [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	p, err := h.profiles.GetOrCreate(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, p)
}

// UpdateMe 修改当前用户资料
// @Summary 修改我的资料
// @Tags 用户
// @Router /api/profile [patch]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req validation.UpdateProfile
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.profiles.GetOrCreate(ctx, currentUser(c)); err != nil {
		response.Fail(c, err)
		return
	}
	p, err := h.profiles.Update(ctx, currentUser(c), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, p)
}

// Get 查看他人资料
// @Summary 获取用户资料
// @Tags 用户
// @Router /api/profiles/{userId} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, p)
}

// Apply 提交导师申请
// @Summary 申请成为导师
// @Tags 导师
// @Router /api/tutors/apply [post]
func (h *ProfileHandler) Apply(c *gin.Context) {
	var req validation.TutorApplication
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.tutors.Apply(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, app)
}

// MyApplication 查看自己最近的申请
// @Summary 查看自己最近的申请
// @Tags 导师
// @Router /api/tutors/application [get]
func (h *ProfileHandler) MyApplication(c *gin.Context) {
	app, err := h.tutors.MyApplication(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, app)
}

// ListApplications 管理员查看申请列表，可按 status 过滤
// @Summary 导师申请列表
// @Tags 导师
// @Router /api/tutors/applications [get]
func (h *ProfileHandler) ListApplications(c *gin.Context) {
	apps, err := h.tutors.ListApplications(c.Request.Context(), currentUser(c), c.Query("status"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, apps)
}

// Review 管理员审核申请
// @Summary 审核导师申请
// @Tags 导师
// @Router /api/tutors/applications/{id}/review [post]
func (h *ProfileHandler) Review(c *gin.Context) {
	var req validation.ReviewApplication
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.tutors.Review(c.Request.Context(), currentUser(c), c.Param("id"), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, app)
}

// Follow 关注用户
// @Summary 关注用户
// @Tags 关注
// @Router /api/follow/{userId} [post]
func (h *ProfileHandler) Follow(c *gin.Context) {
	if err := h.follows.Follow(c.Request.Context(), currentUser(c), c.Param("userId")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"following": true})
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关注
// @Router /api/follow/{userId} [delete]
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	if err := h.follows.Unfollow(c.Request.Context(), currentUser(c), c.Param("userId")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"following": false})
}

// FollowStatus 当前用户是否关注了对方
// @Summary 当前用户是否关注了对方
// @Tags 关注
// @Router /api/follow/{userId} [get]
func (h *ProfileHandler) FollowStatus(c *gin.Context) {
	following, err := h.follows.IsFollowing(c.Request.Context(), currentUser(c), c.Param("userId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"following": following})
}

// Followers 粉丝列表
// @Summary 粉丝列表
// @Tags 关注
// @Router /api/users/{userId}/followers [get]
func (h *ProfileHandler) Followers(c *gin.Context) {
	list, err := h.follows.Followers(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, list)
}

// Following 关注列表
// @Summary 关注列表
// @Tags 关注
// @Router /api/users/{userId}/following [get]
func (h *ProfileHandler) Following(c *gin.Context) {
	list, err := h.follows.Following(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, list)
}

// Leaderboard 经验值排行榜
// @Summary 排行榜
// @Tags 排行榜
// @Param limit query int false "返回条数，默认50"
// @Router /api/leaderboard [get]
func (h *ProfileHandler) Leaderboard(c *gin.Context) {
	entries, err := h.leaderboard.Leaderboard(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, entries)
}

// Rank 用户排名和等级颜色
// @Summary 用户排名
// @Tags 排行榜
// @Router /api/leaderboard/rank/{userId} [get]
func (h *ProfileHandler) Rank(c *gin.Context) {
	info, err := h.leaderboard.RankOf(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, info)
}
