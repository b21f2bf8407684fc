package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studylane/student-registry-api/api/swagger"
	"github.com/studylane/student-registry-api/internal/handler"
	"github.com/studylane/student-registry-api/internal/middleware"
	"github.com/studylane/student-registry-api/internal/repository"
	"github.com/studylane/student-registry-api/internal/service"
	"github.com/studylane/student-registry-api/pkg/config"
	"github.com/studylane/student-registry-api/pkg/database"
	"github.com/studylane/student-registry-api/pkg/logger"
	corsmiddleware "github.com/studylane/student-registry-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studylane/student-registry-api/pkg/middleware/requestid"
)

// @title Student Registry API
// @version 1.0.0
// @description Student registration management backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database); err != nil {
			logr.Sugar().Fatalw("failed to apply migrations", "error", err)
		}
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	repo := repository.NewStudentRepository(db)
	metrics := service.NewMetricsService()
	students := service.NewStudentService(repo, validator.New(), metrics, logr)

	studentHandler := handler.NewStudentHandler(students)
	exportHandler := handler.NewExportHandler(students, cfg.Export.Title)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Register)
		api.POST("/students/search", studentHandler.Search)
		if cfg.Export.Enabled {
			api.GET("/students/export", exportHandler.Export)
		}
		api.GET("/students/:id", studentHandler.Get)
		api.PUT("/students/:id", studentHandler.Update)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
