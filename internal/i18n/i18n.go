// Package i18n 提供国际化支持
// 负责管理错误消息的语言包，并为参数校验提供 universal-translator 翻译器
package i18n

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// 支持的语言
const (
	LangZhCN = "zh-CN"
	LangEnUS = "en-US"
)

var (
	instance *I18n
	once     sync.Once

	// 语言包存储
	translations = map[string]map[string]string{
		LangZhCN: {
			"success":               "成功",
			"internal_server_error": "服务器内部错误",
			"invalid_params":        "参数错误",
			"unauthorized":          "未登录或登录已失效",
			"forbidden":             "禁止访问",
			"not_found":             "资源未找到",

			"profile_not_found":          "用户资料不存在",
			"tutor_required":             "仅导师可以执行该操作",
			"admin_required":             "仅管理员可以执行该操作",
			"application_exists":         "已存在待审核的导师申请",
			"application_not_found":      "导师申请不存在",
			"application_already_review": "导师申请已审核",
			"cannot_follow_self":         "不能关注自己",

			"note_not_found":        "笔记不存在",
			"chapter_not_found":     "章节不存在",
			"note_not_publishable":  "笔记缺少标题或已发布的章节，无法发布",
			"chapter_not_published": "章节尚未发布",

			"sprint_not_found": "迭代看板不存在",
			"list_not_found":   "列表不存在",
			"card_not_found":   "卡片不存在",

			"group_not_found":    "群组不存在",
			"not_group_member":   "你不是该群组成员",
			"message_not_found":  "消息不存在",
			"owner_cannot_leave": "群主不能退出群组",
			"invalid_invite":     "邀请码无效",

			"invalid_upload_endpoint": "不支持的上传类型",
			"file_too_large":          "文件大小超限",
			"file_type_not_allowed":   "文件类型不允许",
			"asset_not_found":         "文件不存在",
			"upload_failed":           "文件上传失败",
			"storage_not_supported":   "存储提供商不支持",

			"assistant_unavailable": "智能助手未配置",
			"assistant_failed":      "智能助手请求失败",

			"database_query":       "数据库查询错误",
			"database_insert":      "数据库插入错误",
			"database_update":      "数据库更新错误",
			"database_delete":      "数据库删除错误",
			"database_transaction": "数据库事务错误",

			"unknown_error": "未知错误",
		},
		LangEnUS: {
			"success":               "Success",
			"internal_server_error": "Internal Server Error",
			"invalid_params":        "Invalid Parameters",
			"unauthorized":          "Unauthorized",
			"forbidden":             "Forbidden",
			"not_found":             "Resource Not Found",

			"profile_not_found":          "Profile Not Found",
			"tutor_required":             "Only tutors can perform this action",
			"admin_required":             "Only administrators can perform this action",
			"application_exists":         "A tutor application is already pending",
			"application_not_found":      "Tutor Application Not Found",
			"application_already_review": "Tutor application has already been reviewed",
			"cannot_follow_self":         "You cannot follow yourself",

			"note_not_found":        "Note Not Found",
			"chapter_not_found":     "Chapter Not Found",
			"note_not_publishable":  "A note needs a title and at least one published chapter",
			"chapter_not_published": "Chapter is not published",

			"sprint_not_found": "Sprint Not Found",
			"list_not_found":   "List Not Found",
			"card_not_found":   "Card Not Found",

			"group_not_found":    "Group Not Found",
			"not_group_member":   "You are not a member of this group",
			"message_not_found":  "Message Not Found",
			"owner_cannot_leave": "The group owner cannot leave the group",
			"invalid_invite":     "Invalid Invite Code",

			"invalid_upload_endpoint": "Unsupported Upload Endpoint",
			"file_too_large":          "File Too Large",
			"file_type_not_allowed":   "File Type Not Allowed",
			"asset_not_found":         "File Not Found",
			"upload_failed":           "File Upload Failed",
			"storage_not_supported":   "Storage Provider Not Supported",

			"assistant_unavailable": "Assistant Is Not Configured",
			"assistant_failed":      "Assistant Request Failed",

			"database_query":       "Database Query Error",
			"database_insert":      "Database Insert Error",
			"database_update":      "Database Update Error",
			"database_delete":      "Database Delete Error",
			"database_transaction": "Database Transaction Error",

			"unknown_error": "Unknown Error",
		},
	}
)

// I18n 国际化管理器
type I18n struct {
	mu          sync.RWMutex
	translators map[string]ut.Translator
	defaultLang string
}

// GetInstance 获取I18n单例
func GetInstance() *I18n {
	once.Do(func() {
		instance = &I18n{
			translators: make(map[string]ut.Translator),
			defaultLang: LangEnUS,
		}
		instance.initTranslators()
	})
	return instance
}

// initTranslators 初始化翻译器
func (i *I18n) initTranslators() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())

	langMappings := map[string]string{
		LangZhCN: "zh",
		LangEnUS: "en",
	}

	for ourLang, localeLang := range langMappings {
		trans, found := uni.GetTranslator(localeLang)
		if !found {
			logger.Errorf("translator not found for %s (locale %s)", ourLang, localeLang)
			continue
		}
		i.translators[ourLang] = trans
	}
}

// Translate 根据键和语言获取翻译
func (i *I18n) Translate(key, lang string) string {
	lang = i.resolve(lang)
	if translation, found := translations[lang][key]; found {
		return translation
	}

	if def := i.GetDefaultLanguage(); lang != def {
		if translation, found := translations[def][key]; found {
			return translation
		}
	}

	logger.Warnf("missing translation: %s (%s)", key, lang)
	return key
}

// Translator 返回指定语言的校验翻译器，不支持的语言回退到默认语言
func (i *I18n) Translator(lang string) ut.Translator {
	return i.translators[i.resolve(lang)]
}

// SetDefaultLanguage 设置默认语言，不支持的语言会被忽略
func (i *I18n) SetDefaultLanguage(lang string) {
	if !i.IsSupportedLanguage(lang) {
		logger.Warnf("unsupported default language %q, keeping %s", lang, i.GetDefaultLanguage())
		return
	}
	i.mu.Lock()
	i.defaultLang = lang
	i.mu.Unlock()
}

// GetDefaultLanguage 获取默认语言
func (i *I18n) GetDefaultLanguage() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.defaultLang
}

// IsSupportedLanguage 检查语言是否支持
func (i *I18n) IsSupportedLanguage(lang string) bool {
	_, exists := i.translators[lang]
	return exists
}

// ParseAcceptLanguage 从 Accept-Language 请求头中选出第一个支持的语言
// 只比较主语言标签，例如 zh-TW 也会匹配 zh-CN
func (i *I18n) ParseAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		primary := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		switch primary {
		case "zh":
			return LangZhCN
		case "en":
			return LangEnUS
		}
	}
	return i.GetDefaultLanguage()
}

func (i *I18n) resolve(lang string) string {
	if i.IsSupportedLanguage(lang) {
		return lang
	}
	return i.GetDefaultLanguage()
}

type langKey struct{}

// WithLanguage 把请求语言放入上下文，服务层据此翻译校验消息
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LanguageFrom 读取上下文中的语言，未设置时返回空串
func LanguageFrom(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok {
		return lang
	}
	return ""
}
