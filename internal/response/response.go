package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// 上下文键
const (
	RequestIDKey = "request_id"
	LanguageKey  = "lang"
)

// ErrorBody 错误响应格式
type ErrorBody struct {
	// 错误码，见 internal/errors
	Code int `json:"code" example:"1004"`
	// 错误消息（已按请求语言翻译）
	Message string `json:"message" example:"Resource Not Found"`
	// 详细错误信息
	Details string `json:"details,omitempty"`
	// 字段校验错误
	Fields interface{} `json:"fields,omitempty"`
	// 请求ID，用于链路追踪
	RequestID string `json:"request_id,omitempty"`
	// 时间戳
	Timestamp int64 `json:"timestamp" example:"1640995200"`
}

// PageData 分页数据结构体
type PageData struct {
	List       interface{} `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// OK 200 响应，响应体即数据本身
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204 响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Page 分页响应
func Page(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	c.JSON(http.StatusOK, PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// Fail 将错误转换为HTTP响应并记录日志
// AppError 按错误码映射状态码，其余错误一律返回 500 和通用消息
func Fail(c *gin.Context, err error) {
	lang := Language(c)

	appErr, ok := apperrors.GetAppError(err)
	if !ok {
		appErr = apperrors.Wrap(apperrors.ErrInternalServer, "", err)
	}
	status := appErr.HTTPStatus()

	entry := logger.WithFields(map[string]interface{}{
		"request_id": requestID(c),
		"path":       c.FullPath(),
		"code":       appErr.Code,
		"status":     status,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.Warn(appErr.Error())
	}

	body := ErrorBody{
		Code:      int(appErr.Code),
		Message:   apperrors.GetErrorMessageWithLang(appErr.Code, lang),
		Fields:    appErr.Fields,
		RequestID: requestID(c),
		Timestamp: time.Now().Unix(),
	}
	// 服务端错误不向客户端暴露内部细节
	if status < http.StatusInternalServerError {
		body.Details = appErr.Details
	}

	c.AbortWithStatusJSON(status, body)
}

// BadRequest 400错误响应
func BadRequest(c *gin.Context, details string) {
	Fail(c, apperrors.ErrInvalidParameters.WithDetails(details))
}

// Unauthorized 401错误响应
func Unauthorized(c *gin.Context) {
	Fail(c, apperrors.ErrUnauthorizedAccess)
}

// Forbidden 403错误响应
func Forbidden(c *gin.Context, details string) {
	Fail(c, apperrors.ErrForbiddenAccess.WithDetails(details))
}

// NotFound 404错误响应
func NotFound(c *gin.Context, details string) {
	Fail(c, apperrors.ErrResourceNotFound.WithDetails(details))
}

// Language 返回当前请求的语言，未设置时为空串（由 i18n 回退到默认语言）
func Language(c *gin.Context) string {
	if lang, exists := c.Get(LanguageKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return ""
}

// requestID 从gin上下文中获取请求ID
func requestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
