// @title StudyHub API
// @version 1.0
// @description 学习社区后端：导师入驻、笔记课程、排行榜、学习小组群聊、看板、文件上传和学习助手

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// StudyHub 学习社区后端
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/database"
	"github.com/weiwangfds/studyhub/internal/i18n"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/router"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	// 加载配置前先用默认配置初始化日志
	if err := logger.Init(nil); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(&cfg.Log); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	i18n.GetInstance().SetDefaultLanguage(cfg.I18n.DefaultLanguage)
	gin.SetMode(cfg.Server.Mode)

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	services, err := router.BuildServices(context.Background(), cfg, db)
	if err != nil {
		logger.Fatalf("Failed to initialize services: %v", err)
	}
	r := router.NewRouter(cfg, db, services)

	srv := newServer(cfg.Server, r.GetEngine())
	go func() {
		logger.WithFields(map[string]interface{}{
			"addr":  srv.Addr,
			"https": cfg.Server.EnableHTTPS,
			"http2": cfg.Server.EnableHTTP2,
		}).Info("Server starting")

		var err error
		if cfg.Server.EnableHTTPS {
			err = srv.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	if err := database.Close(db); err != nil {
		logger.Errorf("Failed to close database: %v", err)
	}
	logger.Info("Server exited")
}

// newServer 创建HTTP服务器
// HTTPS 下通过 ALPN 协商 HTTP/2，明文下使用 h2c
func newServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	srv := &http.Server{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	if cfg.EnableHTTPS {
		srv.Addr = ":" + strconv.Itoa(cfg.HTTPSPort)
		srv.Handler = handler
		srv.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"h2", "http/1.1"},
		}
		if cfg.EnableHTTP2 {
			if err := http2.ConfigureServer(srv, &http2.Server{}); err != nil {
				logger.Fatalf("Failed to configure HTTP/2: %v", err)
			}
		}
		return srv
	}

	srv.Addr = ":" + strconv.Itoa(cfg.Port)
	if cfg.EnableHTTP2 {
		srv.Handler = h2c.NewHandler(handler, &http2.Server{})
	} else {
		srv.Handler = handler
	}
	return srv
}
