// Package handler 提供 /api 下的HTTP处理器
// 处理器只负责解析请求和组装响应，业务规则和权限判断在服务层完成
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/internal/middleware"
	"github.com/weiwangfds/studyhub/internal/response"
)

// bindJSON 解析请求体，失败时直接写入 400 响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// currentUser 当前登录用户，路由已挂 RequireAuth 时一定非空
func currentUser(c *gin.Context) string {
	return middleware.CurrentUserID(c)
}

// currentOrg 当前组织，未选择组织时写入 401 响应并返回 false
func currentOrg(c *gin.Context) (string, bool) {
	orgID := middleware.CurrentOrgID(c)
	if orgID == "" {
		response.Unauthorized(c)
		return "", false
	}
	return orgID, true
}

// queryInt 读取整数查询参数，缺失或格式错误时返回默认值
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
