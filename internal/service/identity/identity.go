// Package identity 从身份提供商读取用户基本信息
// 首次访问时用于填充用户资料
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// User 身份提供商中的用户
type User struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// Provider 身份提供商接口
type Provider interface {
	// Lookup 根据用户ID获取用户信息
	Lookup(ctx context.Context, userID string) (*User, error)
}

// New 根据认证配置创建身份提供商
// clerk 会设置全局密钥，后续的会话校验也依赖它
func New(cfg config.AuthConfig) Provider {
	switch cfg.Provider {
	case "clerk":
		clerk.SetKey(cfg.ClerkSecretKey)
		return &ClerkProvider{}
	default:
		logger.Warn("Using header identity provider, do not enable it in production")
		return &StaticProvider{}
	}
}

// ClerkProvider 通过 Clerk Backend API 查询用户
type ClerkProvider struct{}

// Lookup 实现 Provider
func (p *ClerkProvider) Lookup(ctx context.Context, userID string) (*User, error) {
	u, err := user.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("clerk user lookup %s: %w", userID, err)
	}
	return fromClerkUser(u), nil
}

// fromClerkUser 取姓名、主邮箱和头像
func fromClerkUser(u *clerk.User) *User {
	out := &User{ID: u.ID}

	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	out.Name = strings.Join(parts, " ")
	if out.Name == "" && u.Username != nil {
		out.Name = *u.Username
	}

	if u.ImageURL != nil {
		out.ImageURL = *u.ImageURL
	}

	for _, addr := range u.EmailAddresses {
		if addr == nil {
			continue
		}
		if out.Email == "" {
			out.Email = addr.EmailAddress
		}
		if u.PrimaryEmailAddressID != nil && addr.ID == *u.PrimaryEmailAddressID {
			out.Email = addr.EmailAddress
			break
		}
	}
	return out
}

// StaticProvider 不访问外部服务，以用户ID作为显示名称
type StaticProvider struct{}

// Lookup 实现 Provider
func (p *StaticProvider) Lookup(ctx context.Context, userID string) (*User, error) {
	return &User{ID: userID, Name: userID}, nil
}
