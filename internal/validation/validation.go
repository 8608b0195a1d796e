// Package validation 封装 go-playground/validator
// 错误字段使用JSON标签名，错误消息按请求语言翻译
package validation

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/i18n"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors 校验错误集合
type ValidationErrors []FieldError

// Error 实现error接口
func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, fe := range v {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, "; ")
}

// AppError 转换为参数错误
func (v ValidationErrors) AppError() *apperrors.AppError {
	return apperrors.ErrInvalidParameters.WithDetails(v.Error()).WithFields([]FieldError(v))
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator 返回全局校验器
// 首次调用时注册JSON标签名和中英文翻译
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		in := i18n.GetInstance()
		if trans := in.Translator(i18n.LangEnUS); trans != nil {
			if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
				logger.Errorf("register en validation translations: %v", err)
			}
		}
		if trans := in.Translator(i18n.LangZhCN); trans != nil {
			if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
				logger.Errorf("register zh validation translations: %v", err)
			}
		}
	})
	return validate
}

// Validate 校验结构体
// 校验失败返回 ValidationErrors，其他错误原样返回
func Validate(lang string, v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	trans := i18n.GetInstance().Translator(lang)
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
		if trans != nil {
			msg = fe.Translate(trans)
		}
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: msg,
		})
	}
	return out
}

// Check 校验结构体并转换为AppError，便于服务层直接返回
func Check(lang string, v interface{}) error {
	err := Validate(lang, v)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(ValidationErrors); ok {
		return verrs.AppError()
	}
	return apperrors.WrapCode(apperrors.ErrInvalidParams, err)
}

// CheckContext 使用上下文中的请求语言校验
func CheckContext(ctx context.Context, v interface{}) error {
	return Check(i18n.LanguageFrom(ctx), v)
}
