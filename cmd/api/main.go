package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hireflow/hireflow-backend/internal/config"
	"github.com/hireflow/hireflow-backend/internal/domain"
	"github.com/hireflow/hireflow-backend/internal/handler"
	"github.com/hireflow/hireflow-backend/internal/middleware"
	"github.com/hireflow/hireflow-backend/internal/repository"
	"github.com/hireflow/hireflow-backend/internal/routes"
	"github.com/hireflow/hireflow-backend/internal/service"
	"github.com/hireflow/hireflow-backend/internal/ws"
	"github.com/hireflow/hireflow-backend/pkg/jwt"
	pkglogger "github.com/hireflow/hireflow-backend/pkg/logger"
	pkgredis "github.com/hireflow/hireflow-backend/pkg/redis"
)

func main() {
	dotenvFiles := config.LoadDotEnv()

	cfg := config.Load()
	pkglogger.InitStructured(cfg.Env)
	pkglogger.GetLogger().Info().
		Str("env", cfg.Env).
		Strs("env_files", dotenvFiles).
		Msg("starting hireflow-backend")

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.GetLogger().Info().Msg("connected to MySQL")

	// Redis backs the shared timer and multi-instance event fanout; the
	// service degrades to single-instance push without it.
	redisClient, err := pkgredis.NewClient(
		cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPoolSize,
	)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("Redis unavailable, continuing without it")
		redisClient = nil
	} else {
		pkglogger.GetLogger().Info().Msg("connected to Redis")
	}

	wsHub := ws.NewHub(redisClient)
	go wsHub.Run()

	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTLifetime)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	talentRepo := repository.NewTalentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	dynamicRepo := repository.NewDynamicRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	timerRepo := repository.NewTimerRepository(redisClient)
	if redisClient == nil {
		timerRepo = repository.NewMemoryTimerRepository()
	}

	// Services
	historyService := service.NewHistoryService(historyRepo)
	aiService := service.NewAIService(cfg.AIProxyURL, cfg.AIProxyKey, cfg.AIModel)
	authService := service.NewAuthService(userRepo, jwtManager, historyService)
	jobService := service.NewJobService(jobRepo, historyService, wsHub)
	messageService := service.NewMessageService(messageRepo, userRepo, candidateRepo, historyService, wsHub)
	candidateService := service.NewCandidateService(
		candidateRepo, jobRepo, talentRepo, messageService, aiService, historyService, wsHub)
	talentService := service.NewTalentService(talentRepo, jobRepo, candidateRepo, historyService, wsHub)
	dynamicService := service.NewDynamicService(dynamicRepo, historyService, wsHub)
	archiveService := service.NewArchiveService(jobRepo, candidateRepo, talentRepo, historyService, wsHub)
	timerService := service.NewTimerService(timerRepo, wsHub, func() int64 { return time.Now().UnixMilli() })
	scheduler := service.NewReminderScheduler(candidateRepo, wsHub, cfg.ReminderInterval)

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	go scheduler.Run(schedulerCtx)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	jobHandler := handler.NewJobHandler(jobService)
	candidateHandler := handler.NewCandidateHandler(candidateService)
	talentHandler := handler.NewTalentHandler(talentService)
	messageHandler := handler.NewMessageHandler(messageService, aiService, candidateService, jobService)
	dynamicHandler := handler.NewDynamicHandler(dynamicService, timerService)
	historyHandler := handler.NewHistoryHandler(historyService)
	reminderHandler := handler.NewReminderHandler(scheduler)
	archiveHandler := handler.NewArchiveHandler(archiveService)
	portalHandler := handler.NewPortalHandler(jobService, candidateService, messageService, timerService)
	wsHandler := handler.NewWSHandler(wsHub, cfg.AllowedOrigins[0])

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "hireflow-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(
		router,
		authHandler,
		jobHandler,
		candidateHandler,
		talentHandler,
		messageHandler,
		dynamicHandler,
		historyHandler,
		reminderHandler,
		archiveHandler,
		portalHandler,
		wsHandler,
		jwtManager,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		pkglogger.GetLogger().Info().Int("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	pkglogger.GetLogger().Info().Msg("shutting down")

	stopScheduler()
	wsHub.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.GetLogger().Error().Err(err).Msg("forced shutdown")
	}
}

// initDB opens the MySQL connection and migrates the schema.
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	logMode := gormlogger.Warn
	if cfg.Env == "development" {
		logMode = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Job{},
		&domain.Candidate{},
		&domain.Talent{},
		&domain.Message{},
		&domain.ArchivedConversation{},
		&domain.Dynamic{},
		&domain.HistoryEvent{},
	); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
