package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/service/assistant"
	"gorm.io/gorm"
)

var routeParam = regexp.MustCompile(`:(\w+)`)

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	svc    *Services
}

type fakeModel struct {
	reply string
	err   error
}

func (f *fakeModel) Generate(ctx context.Context, turns []assistant.Turn, opts assistant.Options) (string, error) {
	return f.reply, f.err
}

func setupServer(t *testing.T, configure func(*Services, *config.Config)) *testServer {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:   config.ServerConfig{AllowOrigins: []string{"*"}},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"},
		Auth:     config.AuthConfig{Provider: "header", AdminUserIDs: []string{"admin_1"}},
		Storage:  config.StorageConfig{Provider: "local", LocalPath: t.TempDir(), PublicBaseURL: "/uploads", PathPrefix: "assets"},
		Mail:     config.MailConfig{Provider: "console", FromAddress: "no-reply@studyhub.local"},
		AI:       config.AIConfig{Model: "gemini-2.5-flash", Timeout: 5},
	}
	db, err := database.Init(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	svc, err := BuildServices(context.Background(), cfg, db)
	require.NoError(t, err)
	if configure != nil {
		configure(svc, cfg)
	}
	return &testServer{
		engine: NewRouter(cfg, db, svc).GetEngine(),
		db:     db,
		cfg:    cfg,
		svc:    svc,
	}
}

// request 发送请求，userID 为空时不带身份
func (s *testServer) request(method, path string, body interface{}, userID, orgID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if orgID != "" {
		req.Header.Set("X-Org-ID", orgID)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := setupServer(t, nil)

	w := s.request(http.MethodGet, "/api/health-test", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "studyhub", body["service"])
	assert.NotEmpty(t, body["version"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.request(http.MethodGet, "/api/health/db", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerDocs(t *testing.T) {
	s := setupServer(t, nil)

	w := s.request(http.MethodGet, "/swagger/doc.json", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode(t, w)
	assert.Equal(t, "StudyHub API", doc["info"].(map[string]interface{})["title"])

	paths := doc["paths"].(map[string]interface{})
	for _, route := range s.engine.Routes() {
		if !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		path := routeParam.ReplaceAllString(route.Path, "{$1}")
		ops, ok := paths[path].(map[string]interface{})
		require.True(t, ok, "undocumented path %s", path)
		assert.Contains(t, ops, strings.ToLower(route.Method), "undocumented %s %s", route.Method, path)
	}

	w = s.request(http.MethodGet, "/swagger/index.html", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateNoteEndpoint(t *testing.T) {
	s := setupServer(t, nil)
	require.NoError(t, s.db.Create(&database.Profile{UserID: "tutor_1", Name: "Tutor", Role: database.RoleTutor}).Error)

	t.Run("未登录返回401", func(t *testing.T) {
		w := s.request(http.MethodPost, "/api/notes", map[string]string{"title": "Algebra"}, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("非导师返回401", func(t *testing.T) {
		w := s.request(http.MethodPost, "/api/notes", map[string]string{"title": "Algebra"}, "student_1", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.EqualValues(t, apperrors.ErrTutorRequired, decode(t, w)["code"])

		var count int64
		s.db.Model(&database.Note{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("导师创建成功", func(t *testing.T) {
		w := s.request(http.MethodPost, "/api/notes", map[string]string{"title": "Algebra"}, "tutor_1", "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "Algebra", body["title"])
		assert.Equal(t, "tutor_1", body["creatorId"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("标题为空返回400", func(t *testing.T) {
		w := s.request(http.MethodPost, "/api/notes", map[string]string{"title": ""}, "tutor_1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.NotEmpty(t, body["fields"])
	})
}

func TestSprintOrgEndpoint(t *testing.T) {
	s := setupServer(t, nil)

	w := s.request(http.MethodGet, "/api/sprint/missing", nil, "user_1", "org_1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(http.MethodPost, "/api/sprints", map[string]string{"title": "Finals week"}, "user_1", "org_1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sprintID := decode(t, w)["id"].(string)

	w = s.request(http.MethodGet, "/api/sprint/"+sprintID, nil, "user_1", "org_1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"orgId": "org_1"}, decode(t, w))

	w = s.request(http.MethodGet, "/api/sprint/"+sprintID, nil, "user_2", "org_2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(http.MethodGet, "/api/sprint/"+sprintID, nil, "user_1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodGet, "/api/sprint/"+sprintID, nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBoardEndpoints(t *testing.T) {
	s := setupServer(t, nil)

	w := s.request(http.MethodPost, "/api/sprints", map[string]string{"title": "ab"}, "user_1", "org_1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/sprints", map[string]string{"title": "Revision", "orgId": "org_9"}, "user_1", "org_1")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/api/sprints", map[string]string{"title": "Revision"}, "user_1", "org_1")
	require.Equal(t, http.StatusCreated, w.Code)
	sprintID := decode(t, w)["id"].(string)

	w = s.request(http.MethodPost, "/api/lists", map[string]string{"title": "Todo", "sprintId": sprintID}, "user_1", "org_1")
	require.Equal(t, http.StatusCreated, w.Code)
	listID := decode(t, w)["id"].(string)

	w = s.request(http.MethodPatch, "/api/lists/"+listID, map[string]string{"title": "ab", "sprintId": sprintID}, "user_1", "org_1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/cards", map[string]string{"title": "Flashcards", "listId": listID, "sprintId": sprintID}, "user_1", "org_1")
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, "/api/sprints/"+sprintID, nil, "user_1", "org_1")
	require.Equal(t, http.StatusOK, w.Code)
	lists := decode(t, w)["lists"].([]interface{})
	require.Len(t, lists, 1)
	assert.Len(t, lists[0].(map[string]interface{})["cards"], 1)

	w = s.request(http.MethodGet, "/api/orgs/org_2/sprints", nil, "user_1", "org_1")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(http.MethodDelete, "/api/lists/"+listID+"?sprintId="+sprintID, nil, "user_1", "org_1")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAIChatEndpoint(t *testing.T) {
	t.Run("成功返回回复", func(t *testing.T) {
		s := setupServer(t, func(svc *Services, cfg *config.Config) {
			svc.Assistant = assistant.NewAssistantService(&fakeModel{reply: "Mitochondria produce ATP."}, cfg.AI)
		})
		w := s.request(http.MethodPost, "/api/ai-chat", map[string]interface{}{
			"userMessage": "What do mitochondria do?",
			"history":     []map[string]string{{"role": "user", "content": "hi"}},
			"settings":    map[string]interface{}{"temperature": 0.3},
		}, "user_1", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, map[string]interface{}{"response": "Mitochondria produce ATP."}, decode(t, w))
	})

	t.Run("上游失败返回500", func(t *testing.T) {
		s := setupServer(t, func(svc *Services, cfg *config.Config) {
			svc.Assistant = assistant.NewAssistantService(&fakeModel{err: errors.New("upstream timeout")}, cfg.AI)
		})
		w := s.request(http.MethodPost, "/api/ai-chat", map[string]interface{}{"userMessage": "hi"}, "user_1", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "upstream timeout")
	})

	t.Run("未登录返回401", func(t *testing.T) {
		s := setupServer(t, nil)
		w := s.request(http.MethodPost, "/api/ai-chat", map[string]interface{}{"userMessage": "hi"}, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUploadEndpoint(t *testing.T) {
	s := setupServer(t, nil)

	upload := func(endpoint, name string, data []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, _ = part.Write(data)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/uploadthing/"+endpoint, &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("X-User-ID", "user_1")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		return w
	}

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	w := upload("courseImage", "cover.png", png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "cover.png", body["name"])
	assert.Equal(t, "image/png", body["type"])
	assert.EqualValues(t, len(png), body["size"])

	// 本地存储的文件可以通过静态路由访问
	get := httptest.NewRecorder()
	s.engine.ServeHTTP(get, httptest.NewRequest(http.MethodGet, body["url"].(string), nil))
	assert.Equal(t, http.StatusOK, get.Code)

	assert.Equal(t, http.StatusBadRequest, upload("avatar", "cover.png", png).Code)
	assert.Equal(t, http.StatusBadRequest, upload("chapterVideo", "cover.png", png).Code)

	w = s.request(http.MethodGet, "/api/assets", nil, "user_1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var assets []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assets))
	assert.Len(t, assets, 1)
}

func TestGroupChatEndpoints(t *testing.T) {
	s := setupServer(t, nil)

	w := s.request(http.MethodPost, "/api/groups", map[string]string{"name": "Biology"}, "owner_1", "")
	require.Equal(t, http.StatusCreated, w.Code)
	group := decode(t, w)
	groupID := group["id"].(string)
	invite := group["inviteCode"].(string)

	w = s.request(http.MethodPost, "/api/groups/"+groupID+"/messages", map[string]string{"content": "hi"}, "student_1", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/api/groups/join/"+invite, nil, "student_1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/api/groups/"+groupID+"/messages", map[string]string{"content": "hi"}, "student_1", "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, "/api/groups/"+groupID+"/messages", nil, "owner_1", "")
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["items"].([]interface{})
	assert.Len(t, items, 1)

	w = s.request(http.MethodPost, "/api/groups/"+groupID+"/leave", nil, "owner_1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	s := setupServer(t, nil)

	w := s.request(http.MethodGet, "/api/profile", nil, "user_1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user_1", decode(t, w)["userId"])

	w = s.request(http.MethodPatch, "/api/profile", map[string]string{"bio": "Chemistry student"}, "user_1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Chemistry student", decode(t, w)["bio"])

	w = s.request(http.MethodGet, "/api/profiles/nobody", nil, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(http.MethodGet, "/api/leaderboard/rank/user_1", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	rank := decode(t, w)
	assert.EqualValues(t, 1, rank["rank"])
	assert.Equal(t, "#FFD700", rank["color"])

	w = s.request(http.MethodGet, "/api/tutors/applications", nil, "user_1", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/api/follow/user_1", nil, "user_1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.False(t, all.AllowCredentials)

	some := corsConfig([]string{"https://app.example.com"})
	assert.False(t, some.AllowAllOrigins)
	assert.True(t, some.AllowCredentials)
	assert.Equal(t, []string{"https://app.example.com"}, some.AllowOrigins)
}
