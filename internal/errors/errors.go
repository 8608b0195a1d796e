package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/weiwangfds/studyhub/internal/i18n"
)

// ErrorCode 错误码类型
type ErrorCode int

// 定义错误码常量
const (
	// 通用错误码 (1000-1999)
	ErrSuccess        ErrorCode = 0    // 成功
	ErrInternalServer ErrorCode = 1000 // 服务器内部错误
	ErrInvalidParams  ErrorCode = 1001 // 参数错误
	ErrUnauthorized   ErrorCode = 1002 // 未授权
	ErrForbidden      ErrorCode = 1003 // 禁止访问
	ErrNotFound       ErrorCode = 1004 // 资源未找到

	// 用户、导师与关注 (2000-2999)
	ErrProfileNotFound     ErrorCode = 2000
	ErrTutorRequired       ErrorCode = 2001
	ErrAdminRequired       ErrorCode = 2002
	ErrApplicationExists   ErrorCode = 2003
	ErrApplicationNotFound ErrorCode = 2004
	ErrApplicationReviewed ErrorCode = 2005
	ErrCannotFollowSelf    ErrorCode = 2006

	// 笔记与章节 (3000-3999)
	ErrNoteNotFound        ErrorCode = 3000
	ErrChapterNotFound     ErrorCode = 3001
	ErrNoteNotPublishable  ErrorCode = 3002
	ErrChapterNotPublished ErrorCode = 3003

	// 看板 (4000-4999)
	ErrSprintNotFound ErrorCode = 4000
	ErrListNotFound   ErrorCode = 4001
	ErrCardNotFound   ErrorCode = 4002

	// 群聊 (5000-5999)
	ErrGroupNotFound    ErrorCode = 5000
	ErrNotGroupMember   ErrorCode = 5001
	ErrMessageNotFound  ErrorCode = 5002
	ErrOwnerCannotLeave ErrorCode = 5003
	ErrInvalidInvite    ErrorCode = 5004

	// 文件上传 (6000-6999)
	ErrInvalidUploadEndpoint ErrorCode = 6000
	ErrFileTooLarge          ErrorCode = 6001
	ErrFileTypeNotAllowed    ErrorCode = 6002
	ErrAssetNotFound         ErrorCode = 6003
	ErrUploadFailed          ErrorCode = 6004
	ErrStorageNotSupported   ErrorCode = 6005

	// 智能助手 (7000-7999)
	ErrAssistantUnavailable ErrorCode = 7000
	ErrAssistantFailed      ErrorCode = 7001

	// 数据库相关错误码 (8000-8999)
	ErrDatabaseQuery       ErrorCode = 8000
	ErrDatabaseInsert      ErrorCode = 8001
	ErrDatabaseUpdate      ErrorCode = 8002
	ErrDatabaseDelete      ErrorCode = 8003
	ErrDatabaseTransaction ErrorCode = 8004
)

// AppError 应用错误结构体
type AppError struct {
	Code          ErrorCode `json:"code"`              // 错误码
	Message       string    `json:"message"`           // 错误消息
	Details       string    `json:"details,omitempty"` // 详细错误信息
	OriginalError error     `json:"-"`                 // 原始错误
	// Fields 参数校验失败时的字段级错误
	Fields interface{} `json:"fields,omitempty"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误，便于 errors.Is / errors.As 判断
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// Is 按错误码比较，使预定义错误可以直接用于 errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithDetails 返回带详细信息的副本，预定义错误不会被修改
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithFields 返回带字段错误的副本
func (e *AppError) WithFields(fields interface{}) *AppError {
	cp := *e
	cp.Fields = fields
	return &cp
}

// HTTPStatus 返回错误对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 使用默认消息和格式化详情创建应用错误
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: GetErrorMessage(code),
		Details: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装原始错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	appErr := &AppError{
		Code:          code,
		Message:       message,
		OriginalError: err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// WrapCode 使用默认消息包装原始错误
func WrapCode(code ErrorCode, err error) *AppError {
	return Wrap(code, GetErrorMessage(code), err)
}

// GetAppError 从错误链中提取应用错误
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is 是标准库 errors.Is 的转发，避免调用方同时导入两个 errors 包
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// 预定义的常用错误
var (
	ErrInternalServerError = New(ErrInternalServer, GetErrorMessage(ErrInternalServer))
	ErrInvalidParameters   = New(ErrInvalidParams, GetErrorMessage(ErrInvalidParams))
	ErrUnauthorizedAccess  = New(ErrUnauthorized, GetErrorMessage(ErrUnauthorized))
	ErrForbiddenAccess     = New(ErrForbidden, GetErrorMessage(ErrForbidden))
	ErrResourceNotFound    = New(ErrNotFound, GetErrorMessage(ErrNotFound))

	ErrProfileNotFoundError     = New(ErrProfileNotFound, GetErrorMessage(ErrProfileNotFound))
	ErrTutorRequiredError       = New(ErrTutorRequired, GetErrorMessage(ErrTutorRequired))
	ErrAdminRequiredError       = New(ErrAdminRequired, GetErrorMessage(ErrAdminRequired))
	ErrApplicationExistsError   = New(ErrApplicationExists, GetErrorMessage(ErrApplicationExists))
	ErrApplicationNotFoundError = New(ErrApplicationNotFound, GetErrorMessage(ErrApplicationNotFound))
	ErrApplicationReviewedError = New(ErrApplicationReviewed, GetErrorMessage(ErrApplicationReviewed))
	ErrCannotFollowSelfError    = New(ErrCannotFollowSelf, GetErrorMessage(ErrCannotFollowSelf))

	ErrNoteNotFoundError        = New(ErrNoteNotFound, GetErrorMessage(ErrNoteNotFound))
	ErrChapterNotFoundError     = New(ErrChapterNotFound, GetErrorMessage(ErrChapterNotFound))
	ErrNoteNotPublishableError  = New(ErrNoteNotPublishable, GetErrorMessage(ErrNoteNotPublishable))
	ErrChapterNotPublishedError = New(ErrChapterNotPublished, GetErrorMessage(ErrChapterNotPublished))

	ErrSprintNotFoundError = New(ErrSprintNotFound, GetErrorMessage(ErrSprintNotFound))
	ErrListNotFoundError   = New(ErrListNotFound, GetErrorMessage(ErrListNotFound))
	ErrCardNotFoundError   = New(ErrCardNotFound, GetErrorMessage(ErrCardNotFound))

	ErrGroupNotFoundError    = New(ErrGroupNotFound, GetErrorMessage(ErrGroupNotFound))
	ErrNotGroupMemberError   = New(ErrNotGroupMember, GetErrorMessage(ErrNotGroupMember))
	ErrMessageNotFoundError  = New(ErrMessageNotFound, GetErrorMessage(ErrMessageNotFound))
	ErrOwnerCannotLeaveError = New(ErrOwnerCannotLeave, GetErrorMessage(ErrOwnerCannotLeave))
	ErrInvalidInviteError    = New(ErrInvalidInvite, GetErrorMessage(ErrInvalidInvite))

	ErrInvalidUploadEndpointError = New(ErrInvalidUploadEndpoint, GetErrorMessage(ErrInvalidUploadEndpoint))
	ErrFileTooLargeError          = New(ErrFileTooLarge, GetErrorMessage(ErrFileTooLarge))
	ErrFileTypeNotAllowedError    = New(ErrFileTypeNotAllowed, GetErrorMessage(ErrFileTypeNotAllowed))
	ErrAssetNotFoundError         = New(ErrAssetNotFound, GetErrorMessage(ErrAssetNotFound))
	ErrStorageNotSupportedError   = New(ErrStorageNotSupported, GetErrorMessage(ErrStorageNotSupported))

	ErrAssistantUnavailableError = New(ErrAssistantUnavailable, GetErrorMessage(ErrAssistantUnavailable))
)

// 错误码到i18n键的映射
var errorCodeToKeyMap = map[ErrorCode]string{
	ErrSuccess:        "success",
	ErrInternalServer: "internal_server_error",
	ErrInvalidParams:  "invalid_params",
	ErrUnauthorized:   "unauthorized",
	ErrForbidden:      "forbidden",
	ErrNotFound:       "not_found",

	ErrProfileNotFound:     "profile_not_found",
	ErrTutorRequired:       "tutor_required",
	ErrAdminRequired:       "admin_required",
	ErrApplicationExists:   "application_exists",
	ErrApplicationNotFound: "application_not_found",
	ErrApplicationReviewed: "application_already_review",
	ErrCannotFollowSelf:    "cannot_follow_self",

	ErrNoteNotFound:        "note_not_found",
	ErrChapterNotFound:     "chapter_not_found",
	ErrNoteNotPublishable:  "note_not_publishable",
	ErrChapterNotPublished: "chapter_not_published",

	ErrSprintNotFound: "sprint_not_found",
	ErrListNotFound:   "list_not_found",
	ErrCardNotFound:   "card_not_found",

	ErrGroupNotFound:    "group_not_found",
	ErrNotGroupMember:   "not_group_member",
	ErrMessageNotFound:  "message_not_found",
	ErrOwnerCannotLeave: "owner_cannot_leave",
	ErrInvalidInvite:    "invalid_invite",

	ErrInvalidUploadEndpoint: "invalid_upload_endpoint",
	ErrFileTooLarge:          "file_too_large",
	ErrFileTypeNotAllowed:    "file_type_not_allowed",
	ErrAssetNotFound:         "asset_not_found",
	ErrUploadFailed:          "upload_failed",
	ErrStorageNotSupported:   "storage_not_supported",

	ErrAssistantUnavailable: "assistant_unavailable",
	ErrAssistantFailed:      "assistant_failed",

	ErrDatabaseQuery:       "database_query",
	ErrDatabaseInsert:      "database_insert",
	ErrDatabaseUpdate:      "database_update",
	ErrDatabaseDelete:      "database_delete",
	ErrDatabaseTransaction: "database_transaction",
}

// HTTPStatus 根据错误码返回HTTP状态码
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrSuccess:
		return http.StatusOK
	case ErrInvalidParams, ErrNoteNotPublishable, ErrCannotFollowSelf, ErrOwnerCannotLeave,
		ErrInvalidUploadEndpoint, ErrFileTypeNotAllowed, ErrApplicationReviewed:
		return http.StatusBadRequest
	case ErrUnauthorized, ErrTutorRequired:
		// 只有导师身份才算通过认证的接口，非导师与未登录同样返回 401
		return http.StatusUnauthorized
	case ErrForbidden, ErrAdminRequired, ErrNotGroupMember, ErrChapterNotPublished:
		return http.StatusForbidden
	case ErrNotFound, ErrProfileNotFound, ErrApplicationNotFound, ErrNoteNotFound, ErrChapterNotFound,
		ErrSprintNotFound, ErrListNotFound, ErrCardNotFound, ErrGroupNotFound, ErrMessageNotFound,
		ErrInvalidInvite, ErrAssetNotFound:
		return http.StatusNotFound
	case ErrApplicationExists:
		return http.StatusConflict
	case ErrFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrAssistantUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage 根据错误码获取错误消息（使用默认语言）
func GetErrorMessage(code ErrorCode) string {
	return GetErrorMessageWithLang(code, i18n.GetInstance().GetDefaultLanguage())
}

// GetErrorMessageWithLang 根据错误码和语言获取错误消息
func GetErrorMessageWithLang(code ErrorCode, lang string) string {
	key, exists := errorCodeToKeyMap[code]
	if !exists {
		key = "unknown_error"
	}
	return i18n.GetInstance().Translate(key, lang)
}
