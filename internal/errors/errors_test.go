package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/studyhub/internal/i18n"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		status int
	}{
		{ErrInvalidParams, http.StatusBadRequest},
		{ErrCannotFollowSelf, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrTutorRequired, http.StatusUnauthorized},
		{ErrAdminRequired, http.StatusForbidden},
		{ErrNotGroupMember, http.StatusForbidden},
		{ErrSprintNotFound, http.StatusNotFound},
		{ErrInvalidInvite, http.StatusNotFound},
		{ErrApplicationExists, http.StatusConflict},
		{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrAssistantUnavailable, http.StatusServiceUnavailable},
		{ErrAssistantFailed, http.StatusInternalServerError},
		{ErrDatabaseQuery, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.code), "code %d", tc.code)
	}
}

func TestWrapAndMatch(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := fmt.Errorf("load sprint: %w", WrapCode(ErrDatabaseQuery, cause))

	appErr, ok := GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, ErrDatabaseQuery, appErr.Code)
	assert.Equal(t, "connection reset", appErr.Details)
	assert.True(t, Is(err, cause))

	_, ok = GetAppError(cause)
	assert.False(t, ok)
}

func TestWithDetailsKeepsPredefined(t *testing.T) {
	detailed := ErrForbiddenAccess.WithDetails("only the sender can edit this message")

	assert.True(t, stderrors.Is(detailed, ErrForbiddenAccess))
	assert.Empty(t, ErrForbiddenAccess.Details)
	assert.Contains(t, detailed.Error(), "only the sender")
	assert.False(t, stderrors.Is(detailed, ErrResourceNotFound))
}

func TestMessagesAreTranslated(t *testing.T) {
	en := GetErrorMessageWithLang(ErrSprintNotFound, i18n.LangEnUS)
	zh := GetErrorMessageWithLang(ErrSprintNotFound, i18n.LangZhCN)
	assert.NotEmpty(t, en)
	assert.NotEqual(t, en, zh)

	for code := range errorCodeToKeyMap {
		assert.NotEqual(t, errorCodeToKeyMap[code], GetErrorMessageWithLang(code, i18n.LangEnUS), "missing translation for %d", code)
	}
}
