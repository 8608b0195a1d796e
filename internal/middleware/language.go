package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/internal/i18n"
	"github.com/weiwangfds/studyhub/internal/response"
)

// Language 根据 Accept-Language 识别语言
// 同时写入 gin 上下文和请求上下文，错误消息和参数校验消息都按此翻译
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.GetInstance().ParseAcceptLanguage(c.GetHeader("Accept-Language"))
		c.Set(response.LanguageKey, lang)
		c.Request = c.Request.WithContext(i18n.WithLanguage(c.Request.Context(), lang))
		c.Next()
	}
}
