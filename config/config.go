// Package config 负责加载应用配置
// 配置来源依次为默认值、config.yaml 配置文件、.env 文件和 STUDYHUB_ 前缀的环境变量
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// EnvPrefix 环境变量前缀，例如 STUDYHUB_SERVER_PORT 对应 server.port
const EnvPrefix = "STUDYHUB"

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      logger.Config  `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	AI       AIConfig       `mapstructure:"ai"`
	Mail     MailConfig     `mapstructure:"mail"`
	I18n     I18nConfig     `mapstructure:"i18n"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Mode         string   `mapstructure:"mode"`          // gin 运行模式：debug、release、test
	Port         int      `mapstructure:"port"`          // HTTP端口
	HTTPSPort    int      `mapstructure:"https_port"`    // HTTPS端口
	EnableHTTPS  bool     `mapstructure:"enable_https"`  // 是否启用HTTPS
	EnableHTTP2  bool     `mapstructure:"enable_http2"`  // 是否启用HTTP/2（仅HTTPS下生效）
	TLSCertFile  string   `mapstructure:"tls_cert_file"` // 证书文件
	TLSKeyFile   string   `mapstructure:"tls_key_file"`  // 私钥文件
	ReadTimeout  int      `mapstructure:"read_timeout"`  // 读超时（秒）
	WriteTimeout int      `mapstructure:"write_timeout"` // 写超时（秒）
	AllowOrigins []string `mapstructure:"allow_origins"` // CORS允许的来源
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`            // sqlite 或 postgres
	DSN             string `mapstructure:"dsn"`               // 连接串
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`    // 最大空闲连接
	MaxOpenConns    int    `mapstructure:"max_open_conns"`    // 最大连接数
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 连接最大存活时间（秒）
	LogLevel        string `mapstructure:"log_level"`         // GORM日志级别：silent、error、warn、info
	Seed            bool   `mapstructure:"seed"`              // 启动时写入示例数据
}

// AuthConfig 身份认证配置
type AuthConfig struct {
	// Provider clerk 使用 Clerk 会话令牌；header 直接信任 X-User-ID 请求头，仅用于本地开发和测试
	Provider       string   `mapstructure:"provider"`
	ClerkSecretKey string   `mapstructure:"clerk_secret_key"`
	AdminUserIDs   []string `mapstructure:"admin_user_ids"`
}

// StorageConfig 上传文件存储配置
type StorageConfig struct {
	Provider      string `mapstructure:"provider"`        // local、aliyun、tencent、qiniu
	LocalPath     string `mapstructure:"local_path"`      // 本地存储目录
	PublicBaseURL string `mapstructure:"public_base_url"` // 对外访问地址前缀
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Endpoint      string `mapstructure:"endpoint"`
	PathPrefix    string `mapstructure:"path_prefix"` // 对象键前缀
	MaxFileSize   int64  `mapstructure:"max_file_size"`
}

// AIConfig 外部大模型配置
type AIConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	SystemPrompt string `mapstructure:"system_prompt"`
	Timeout      int    `mapstructure:"timeout"` // 单次请求超时（秒）
}

// MailConfig 邮件通知配置
type MailConfig struct {
	Provider       string   `mapstructure:"provider"` // console 或 sendgrid
	SendGridAPIKey string   `mapstructure:"sendgrid_api_key"`
	FromName       string   `mapstructure:"from_name"`
	FromAddress    string   `mapstructure:"from_address"`
	AdminEmails    []string `mapstructure:"admin_emails"`
}

// I18nConfig 国际化配置
type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

// Load 加载配置
// 参数:
//   - paths: 额外的配置文件搜索目录
//
// 返回值:
//   - *Config: 解析后的配置
//   - error: 配置文件格式错误或校验失败
func Load(paths ...string) (*Config, error) {
	// .env 文件是可选的
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/studyhub")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// 列表类型的环境变量以逗号分隔
	cfg.Server.AllowOrigins = splitList(cfg.Server.AllowOrigins)
	cfg.Auth.AdminUserIDs = splitList(cfg.Auth.AdminUserIDs)
	cfg.Mail.AdminEmails = splitList(cfg.Mail.AdminEmails)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode: %s", c.Server.Mode)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	switch c.Auth.Provider {
	case "clerk":
		if c.Auth.ClerkSecretKey == "" {
			return errors.New("auth.clerk_secret_key is required when auth.provider is clerk")
		}
	case "header":
	default:
		return fmt.Errorf("unsupported auth provider: %s", c.Auth.Provider)
	}

	switch c.Storage.Provider {
	case "local", "aliyun", "tencent", "qiniu":
	default:
		return fmt.Errorf("unsupported storage provider: %s", c.Storage.Provider)
	}

	switch c.Mail.Provider {
	case "console":
	case "sendgrid":
		if c.Mail.SendGridAPIKey == "" {
			return errors.New("mail.sendgrid_api_key is required when mail.provider is sendgrid")
		}
	default:
		return fmt.Errorf("unsupported mail provider: %s", c.Mail.Provider)
	}

	if c.Server.EnableHTTPS && (c.Server.TLSCertFile == "" || c.Server.TLSKeyFile == "") {
		return errors.New("server.tls_cert_file and server.tls_key_file are required when HTTPS is enabled")
	}
	return nil
}

// IsAdmin 判断用户是否为配置中的管理员
func (a AuthConfig) IsAdmin(userID string) bool {
	for _, id := range a.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.https_port", 8443)
	v.SetDefault("server.enable_https", false)
	v.SetDefault("server.enable_http2", true)
	v.SetDefault("server.tls_cert_file", "")
	v.SetDefault("server.tls_key_file", "")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/studyhub.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.seed", false)

	def := logger.DefaultConfig()
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.format", def.Format)
	v.SetDefault("log.output", def.Output)
	v.SetDefault("log.file_path", def.FilePath)

	v.SetDefault("auth.provider", "clerk")
	v.SetDefault("auth.clerk_secret_key", "")
	v.SetDefault("auth.admin_user_ids", []string{})

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_path", "data/uploads")
	v.SetDefault("storage.public_base_url", "/uploads")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.path_prefix", "assets")
	v.SetDefault("storage.max_file_size", 512*1024*1024)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.system_prompt", "You are a friendly study assistant helping students understand their course notes.")
	v.SetDefault("ai.timeout", 60)

	v.SetDefault("mail.provider", "console")
	v.SetDefault("mail.sendgrid_api_key", "")
	v.SetDefault("mail.from_name", "StudyHub")
	v.SetDefault("mail.from_address", "no-reply@studyhub.local")
	v.SetDefault("mail.admin_emails", []string{})

	v.SetDefault("i18n.default_language", "en-US")
}

// splitList 将 "a,b" 形式的单个元素展开
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
