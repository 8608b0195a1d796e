package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Mode: "release"},
		Database: DatabaseConfig{Driver: "sqlite"},
		Auth:     AuthConfig{Provider: "header"},
		Storage:  StorageConfig{Provider: "local"},
		Mail:     MailConfig{Provider: "console"},
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STUDYHUB_AUTH_PROVIDER", "header")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "/uploads", cfg.Storage.PublicBaseURL)
	assert.Equal(t, "console", cfg.Mail.Provider)
	assert.Equal(t, 60, cfg.AI.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: 9000
  mode: debug
auth:
  provider: header
  admin_user_ids: ["user_a"]
storage:
  provider: local
  local_path: /tmp/studyhub
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))
	t.Setenv("STUDYHUB_SERVER_PORT", "9100")
	t.Setenv("STUDYHUB_MAIL_ADMIN_EMAILS", "a@example.com, b@example.com")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "/tmp/studyhub", cfg.Storage.LocalPath)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Mail.AdminEmails)
	assert.True(t, cfg.Auth.IsAdmin("user_a"))
	assert.False(t, cfg.Auth.IsAdmin("user_b"))
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"未知运行模式", func(c *Config) { c.Server.Mode = "prod" }},
		{"未知数据库", func(c *Config) { c.Database.Driver = "mysql" }},
		{"clerk缺少密钥", func(c *Config) { c.Auth.Provider = "clerk" }},
		{"未知认证方式", func(c *Config) { c.Auth.Provider = "jwt" }},
		{"未知存储", func(c *Config) { c.Storage.Provider = "s3" }},
		{"sendgrid缺少密钥", func(c *Config) { c.Mail.Provider = "sendgrid" }},
		{"未知邮件方式", func(c *Config) { c.Mail.Provider = "smtp" }},
		{"HTTPS缺少证书", func(c *Config) { c.Server.EnableHTTPS = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " c ", ""}))
	assert.Empty(t, splitList(nil))
}
