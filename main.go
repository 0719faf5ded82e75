package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adarshh247/ListIT-doIT/cache"
	"github.com/adarshh247/ListIT-doIT/config"
	"github.com/adarshh247/ListIT-doIT/db"
	"github.com/adarshh247/ListIT-doIT/handlers"
	"github.com/adarshh247/ListIT-doIT/middleware"
	"github.com/adarshh247/ListIT-doIT/routes"
	"github.com/adarshh247/ListIT-doIT/store"
	"github.com/adarshh247/ListIT-doIT/suggest"
	"github.com/adarshh247/ListIT-doIT/tracker"
	"github.com/adarshh247/ListIT-doIT/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	utils.InitLogger(cfg.LogFile)
	defer utils.Logger.Sync()
	utils.InitMetrics()
	utils.SetJWTSecret(cfg.JWTSecret)

	utils.Logger.Info("starting_application")

	// Redis is optional; without it caching and rate limiting pass through.
	if cfg.RedisAddr != "" {
		if err := cache.InitRedis(cfg.RedisAddr, utils.Logger); err != nil {
			utils.Logger.Warn("continuing_without_redis")
		}
	}
	defer cache.Close()

	persistence := selectBackend(cfg)

	habits := tracker.NewHabitStore(persistence, utils.Logger)
	tasks := tracker.NewTaskStore(persistence, utils.Logger)
	sectors := tracker.NewSectorStore(persistence, tasks, utils.Logger)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelLoad()
	for name, load := range map[string]func(context.Context) error{
		"habits":  habits.Load,
		"tasks":   tasks.Load,
		"sectors": sectors.Load,
	} {
		if err := load(loadCtx); err != nil {
			utils.Logger.Fatal("load_failed", zap.String("store", name), zap.Error(err))
		}
	}

	suggester := suggest.NewClient(cfg.SuggestURL, cfg.SuggestKey, cfg.SuggestModel, utils.Logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	if cfg.CSRFKey != "" {
		r.Use(middleware.CSRFProtection([]byte(cfg.CSRFKey)))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})

	auth := &routes.Auth{Persistence: persistence, Log: utils.Logger}
	r.POST("/api/register", middleware.RateLimit(10, time.Minute), auth.Register)
	r.POST("/api/login", middleware.RateLimit(20, time.Minute), auth.Login)

	habitHandler := &handlers.HabitHandler{Habits: habits}
	taskHandler := &handlers.TaskHandler{Tasks: tasks}
	sectorHandler := &handlers.SectorHandler{Sectors: sectors}
	suggestHandler := &handlers.SuggestHandler{Client: suggester}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/profile", auth.Profile)

		api.GET("/habits", habitHandler.List)
		api.POST("/habits", habitHandler.Create)
		api.POST("/habits/:id/toggle", habitHandler.Toggle)
		api.DELETE("/habits/:id", habitHandler.Delete)
		api.GET("/habits/:id/streak", habitHandler.Streak)
		api.GET("/habits/progress", habitHandler.Progress)

		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks", taskHandler.Create)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.POST("/tasks/:id/toggle", taskHandler.Toggle)
		api.POST("/tasks/:id/move", taskHandler.Move)
		api.DELETE("/tasks/:id", taskHandler.Delete)

		api.GET("/sectors", sectorHandler.List)
		api.POST("/sectors", sectorHandler.Create)
		api.PUT("/sectors/:name", sectorHandler.Rename)
		api.DELETE("/sectors/:name", sectorHandler.Delete)

		api.POST("/suggest", middleware.RateLimit(30, time.Minute), suggestHandler.Suggest)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	startServer(r, cfg.Port, func() {
		// Drain fire-and-forget writes so a clean shutdown loses nothing.
		habits.Flush()
		tasks.Flush()
		sectors.Flush()
	})
}

// selectBackend decides once, at startup, between the remote database and
// the local on-disk store. The stores never branch on the backend again.
func selectBackend(cfg *config.Config) store.Persistence {
	if cfg.DatabaseConfigured() {
		gdb, err := db.Connect(cfg.DSN(), 10)
		if err == nil {
			pg, err := store.NewPostgres(gdb)
			if err == nil {
				utils.Logger.Info("persistence_selected", zap.String("backend", "postgres"))
				return pg
			}
			utils.Logger.Error("postgres_migrate_failed", zap.Error(err))
		} else {
			utils.Logger.Error("postgres_connect_failed", zap.Error(err))
		}
		utils.Logger.Warn("falling_back_to_local_store")
	}

	path := filepath.Join(cfg.DataDir, "records")
	utils.Logger.Info("persistence_selected",
		zap.String("backend", "diskv"),
		zap.String("path", path),
	)
	return store.NewDiskv(path)
}

func startServer(router *gin.Engine, port string, drain func()) {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.Logger.Info("starting_http_server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("shutting_down_server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal("server_forced_shutdown", zap.Error(err))
	}

	drain()
	utils.Logger.Info("server_stopped")
}
