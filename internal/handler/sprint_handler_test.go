package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/studyhub/config"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/middleware"
	"github.com/weiwangfds/studyhub/internal/service/sprint"
)

// orgLookup 只实现 OrgOf，其余方法被调用时会因为嵌入的 nil 接口而 panic
type orgLookup struct {
	sprint.SprintService
	orgs  map[string]string
	calls int
}

func (o *orgLookup) OrgOf(ctx context.Context, sprintID string) (string, error) {
	o.calls++
	org, ok := o.orgs[sprintID]
	if !ok {
		return "", apperrors.ErrSprintNotFoundError
	}
	return org, nil
}

func TestSprintOrgUsesOrgLookup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lookup := &orgLookup{orgs: map[string]string{"sprint_1": "org_1"}}
	h := NewSprintHandler(lookup)

	auth := middleware.NewAuthMiddleware(config.AuthConfig{Provider: "header"})
	r := gin.New()
	r.GET("/api/sprint/:sprintId", auth.Authenticate(), middleware.RequireAuth(), h.SprintOrg)

	get := func(sprintID, org string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/sprint/"+sprintID, nil)
		req.Header.Set(middleware.UserIDHeader, "user_1")
		if org != "" {
			req.Header.Set(middleware.OrgIDHeader, org)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get("sprint_1", "org_1")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"orgId": "org_1"}, body)

	assert.Equal(t, http.StatusNotFound, get("sprint_1", "org_2").Code)
	assert.Equal(t, http.StatusNotFound, get("missing", "org_1").Code)

	assert.Equal(t, http.StatusUnauthorized, get("sprint_1", "").Code)
	assert.Equal(t, 3, lookup.calls)
}
