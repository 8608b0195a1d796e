// Package router 组装中间件、处理器和 /api 路由
package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/weiwangfds/studyhub/config"
	_ "github.com/weiwangfds/studyhub/docs" // swagger docs
	"github.com/weiwangfds/studyhub/internal/handler"
	"github.com/weiwangfds/studyhub/internal/middleware"
	"github.com/weiwangfds/studyhub/internal/service/asset"
	"github.com/weiwangfds/studyhub/internal/service/assistant"
	"github.com/weiwangfds/studyhub/internal/service/chat"
	"github.com/weiwangfds/studyhub/internal/service/note"
	"github.com/weiwangfds/studyhub/internal/service/profile"
	"github.com/weiwangfds/studyhub/internal/service/sprint"
	"gorm.io/gorm"
)

// Services 路由依赖的业务服务
type Services struct {
	Profiles    profile.ProfileService
	Tutors      profile.TutorService
	Follows     profile.FollowService
	Leaderboard profile.LeaderboardService
	Notes       note.NoteService
	Sprints     sprint.SprintService
	Chat        chat.ChatService
	Assistant   assistant.AssistantService
	Assets      asset.AssetService
}

// Router 路由配置
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
}

// NewRouter 创建路由实例
func NewRouter(cfg *config.Config, db *gorm.DB, svc *Services) *Router {
	engine := gin.New()

	logs := middleware.NewLoggerMiddleware()
	auth := middleware.NewAuthMiddleware(cfg.Auth)

	engine.Use(gin.Recovery())
	engine.Use(logs.RequestID())
	engine.Use(logs.Logger())
	engine.Use(middleware.RequestLogger(nil))
	engine.Use(cors.New(corsConfig(cfg.Server.AllowOrigins)))
	engine.Use(middleware.Language())

	// 本地存储的上传文件由服务自身提供
	if cfg.Storage.Provider == "local" && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		engine.Static(cfg.Storage.PublicBaseURL, cfg.Storage.LocalPath)
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	health := handler.NewHealthHandler(db)
	profiles := handler.NewProfileHandler(svc.Profiles, svc.Tutors, svc.Follows, svc.Leaderboard)
	notes := handler.NewNoteHandler(svc.Notes)
	sprints := handler.NewSprintHandler(svc.Sprints)
	chats := handler.NewChatHandler(svc.Chat)
	ai := handler.NewAssistantHandler(svc.Assistant)
	assets := handler.NewAssetHandler(svc.Assets)

	api := engine.Group("/api")
	api.GET("/health-test", health.Health)
	api.GET("/health/db", health.Database)

	// 可匿名访问，登录后按当前用户返回内容
	public := api.Group("", auth.Authenticate())
	{
		public.GET("/profiles/:userId", profiles.Get)
		public.GET("/users/:userId/followers", profiles.Followers)
		public.GET("/users/:userId/following", profiles.Following)
		public.GET("/leaderboard", profiles.Leaderboard)
		public.GET("/leaderboard/rank/:userId", profiles.Rank)

		public.GET("/courses", notes.ListCourses)
		public.GET("/notes/:noteId", notes.GetNote)
		public.GET("/notes/:noteId/chapters", notes.ListChapters)
	}

	user := api.Group("", auth.Authenticate(), middleware.RequireAuth())
	{
		user.GET("/profile", profiles.Me)
		user.PATCH("/profile", profiles.UpdateMe)

		user.POST("/tutors/apply", profiles.Apply)
		user.GET("/tutors/application", profiles.MyApplication)
		user.GET("/tutors/applications", profiles.ListApplications)
		user.POST("/tutors/applications/:id/review", profiles.Review)

		user.GET("/follow/:userId", profiles.FollowStatus)
		user.POST("/follow/:userId", profiles.Follow)
		user.DELETE("/follow/:userId", profiles.Unfollow)

		user.POST("/notes", notes.CreateNote)
		user.GET("/notes", notes.ListMine)
		user.PATCH("/notes/:noteId", notes.UpdateNote)
		user.DELETE("/notes/:noteId", notes.DeleteNote)
		user.POST("/notes/:noteId/publish", notes.Publish)
		user.POST("/notes/:noteId/unpublish", notes.Unpublish)
		user.POST("/notes/:noteId/chapters", notes.CreateChapter)
		user.PUT("/notes/:noteId/chapters/reorder", notes.ReorderChapters)
		user.PATCH("/notes/:noteId/chapters/:chapterId", notes.UpdateChapter)
		user.DELETE("/notes/:noteId/chapters/:chapterId", notes.DeleteChapter)
		user.POST("/notes/:noteId/chapters/:chapterId/publish", notes.PublishChapter)
		user.POST("/notes/:noteId/chapters/:chapterId/unpublish", notes.UnpublishChapter)
		user.PUT("/notes/:noteId/chapters/:chapterId/progress", notes.SetProgress)

		user.GET("/sprint/:sprintId", sprints.SprintOrg)
		user.POST("/sprints", sprints.CreateSprint)
		user.GET("/orgs/:orgId/sprints", sprints.ListSprints)
		user.GET("/sprints/:sprintId", sprints.GetSprint)
		user.PATCH("/sprints/:sprintId", sprints.UpdateSprint)
		user.DELETE("/sprints/:sprintId", sprints.DeleteSprint)
		user.PUT("/sprints/:sprintId/lists/order", sprints.ReorderLists)
		user.PUT("/sprints/:sprintId/cards/order", sprints.ReorderCards)

		user.POST("/lists", sprints.CreateList)
		user.PATCH("/lists/:listId", sprints.UpdateList)
		user.DELETE("/lists/:listId", sprints.DeleteList)
		user.POST("/lists/:listId/copy", sprints.CopyList)

		user.POST("/cards", sprints.CreateCard)
		user.PATCH("/cards/:cardId", sprints.UpdateCard)
		user.DELETE("/cards/:cardId", sprints.DeleteCard)
		user.POST("/cards/:cardId/copy", sprints.CopyCard)

		user.POST("/groups", chats.CreateGroup)
		user.GET("/groups", chats.ListGroups)
		user.POST("/groups/join/:inviteCode", chats.Join)
		user.GET("/groups/:groupId", chats.GetGroup)
		user.POST("/groups/:groupId/leave", chats.Leave)
		user.POST("/groups/:groupId/invite", chats.RegenerateInvite)
		user.PATCH("/groups/:groupId/members/:userId", chats.UpdateMemberRole)
		user.DELETE("/groups/:groupId/members/:userId", chats.RemoveMember)
		user.GET("/groups/:groupId/messages", chats.ListMessages)
		user.POST("/groups/:groupId/messages", chats.SendMessage)
		user.PATCH("/groups/:groupId/messages/:messageId", chats.EditMessage)
		user.DELETE("/groups/:groupId/messages/:messageId", chats.DeleteMessage)

		user.POST("/ai-chat", ai.Chat)

		user.POST("/uploadthing/:endpoint", assets.Upload)
		user.GET("/assets", assets.List)
		user.DELETE("/assets/:assetId", assets.Delete)
	}

	return &Router{
		engine: engine,
		db:     db,
	}
}

// corsConfig 包含 * 时允许所有来源，此时不允许携带凭证
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept-Language", middleware.UserIDHeader, middleware.OrgIDHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        24 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// GetEngine 获取Gin引擎
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetDB 获取数据库连接
func (r *Router) GetDB() *gorm.DB {
	return r.db
}
