package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fyerfyer/resume-match-system/api"
	"github.com/fyerfyer/resume-match-system/api/handler"
	"github.com/fyerfyer/resume-match-system/api/middleware"
	appconfig "github.com/fyerfyer/resume-match-system/config"
	"github.com/fyerfyer/resume-match-system/internal/cache"
	"github.com/fyerfyer/resume-match-system/internal/database"
	"github.com/fyerfyer/resume-match-system/internal/llm"
	"github.com/fyerfyer/resume-match-system/internal/repository"
	"github.com/fyerfyer/resume-match-system/internal/services"
	"github.com/fyerfyer/resume-match-system/internal/tailor"
	"github.com/fyerfyer/resume-match-system/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	// 加载.env文件（存在时），便于本地开发放置API密钥
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	// 解析命令行参数
	var (
		configFile = flag.String("config", "", "Path to config file")
		mode       = flag.String("mode", "debug", "Run mode (debug/release)")
		port       = flag.Int("port", 0, "Server port, overrides config file")
	)
	flag.Parse()

	// 加载配置
	cfg, err := appconfig.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	// 设置Gin模式
	gin.SetMode(*mode)

	// 初始化日志
	logger := setupLogger(cfg.Log)
	logger.Info("Starting resume match system...")

	// 初始化数据库
	if err := setupDatabase(cfg, logger); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	// 创建文件存储服务
	fileStorage, err := setupStorage(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	// 创建大语言模型客户端
	llmClient, err := setupLLM(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize LLM client: %v", err)
	}

	// 创建缓存服务
	cacheService, err := setupCache(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}

	// 初始化业务服务
	analyzerService := services.NewAnalyzerService(
		llmClient,
		cacheService,
		services.WithAnalysisHistory(repository.NewAnalysisRepository()),
		services.WithCacheTTL(time.Duration(cfg.Cache.TTL)*time.Second),
		services.WithAnalyzerLogger(logger),
	)

	resumeService := services.NewResumeService(
		fileStorage,
		repository.NewResumeRepository(),
		services.WithResumeLogger(logger),
	)

	tailorService := services.NewTailorService(
		services.WithAnalyzer(analyzerService),
		services.WithTailor(tailor.New(
			tailor.WithMaxBulletEdits(cfg.Tailor.MaxBulletEdits),
			tailor.WithLogger(logger),
		)),
		services.WithTailorLogger(logger),
	)

	// 初始化API处理器
	analyzeHandler := handler.NewAnalyzeHandler(analyzerService, resumeService)
	resumeHandler := handler.NewResumeHandler(resumeService)
	tailorHandler := handler.NewTailorHandler(tailorService)
	downloadHandler := handler.NewDownloadHandler()

	// 设置路由
	r := api.SetupRouter(analyzeHandler, resumeHandler, tailorHandler, downloadHandler)

	// 启动HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// 优雅关闭
	go func() {
		// 启动服务
		logger.Infof("Server is running on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// 创建带超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// setupLogger 设置日志系统
// 配置了日志文件时同时写入滚动日志文件和标准输出
func setupLogger(cfg appconfig.LogConfig) *logrus.Logger {
	logger := middleware.GetLogger()

	// 设置日志级别
	switch cfg.Level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	// 配置滚动日志文件
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}
		logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
	}

	return logger
}

// setupStorage 设置文件存储服务
func setupStorage(cfg *appconfig.Config) (storage.Storage, error) {
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		// 确保存储目录存在
		if err := os.MkdirAll(cfg.Storage.Path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %v", err)
		}
	}

	return storage.NewStorage(storage.Config{
		Type: cfg.Storage.Type,
		Local: storage.LocalConfig{
			Path: cfg.Storage.Path,
		},
		Minio: storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
		},
	})
}

// setupLLM 设置大语言模型客户端
func setupLLM(cfg *appconfig.Config) (llm.Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required, set llm.api_key or ANTHROPIC_API_KEY")
	}

	opts := []llm.Option{
		llm.WithAPIKey(cfg.LLM.APIKey),
		llm.WithModel(cfg.LLM.Model),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
		llm.WithTimeout(time.Duration(cfg.LLM.Timeout) * time.Second),
		llm.WithMaxRetries(cfg.LLM.MaxRetries),
	}
	if cfg.LLM.Endpoint != "" {
		opts = append(opts, llm.WithBaseURL(cfg.LLM.Endpoint))
	}

	return llm.NewClient(cfg.LLM.Provider, opts...)
}

// setupCache 设置缓存服务
func setupCache(cfg *appconfig.Config) (cache.Cache, error) {
	cacheConfig := cache.Config{
		Type:            cfg.Cache.Type,
		DefaultTTL:      time.Duration(cfg.Cache.TTL) * time.Second,
		CleanupInterval: 10 * time.Minute,
	}

	// 如果配置了Redis，添加Redis配置
	if cfg.Cache.Type == "redis" {
		cacheConfig.RedisAddr = cfg.Cache.Address
		cacheConfig.RedisPassword = cfg.Cache.Password
		cacheConfig.RedisDB = cfg.Cache.DB
	}

	return cache.NewCache(cacheConfig)
}

// setupDatabase 设置数据库
func setupDatabase(cfg *appconfig.Config, logger *logrus.Logger) error {
	if cfg.Database.Type == "sqlite" {
		// 确保数据目录存在
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %v", err)
		}
	}

	return database.Setup(&database.Config{
		Type: cfg.Database.Type,
		DSN:  cfg.Database.DSN,
	}, logger)
}
