package main // Entry point package

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/config"
	"github.com/iliyamo/license-flow/internal/database"
	"github.com/iliyamo/license-flow/internal/handler"
	"github.com/iliyamo/license-flow/internal/middleware"
	"github.com/iliyamo/license-flow/internal/queue"
	"github.com/iliyamo/license-flow/internal/repository"
	"github.com/iliyamo/license-flow/internal/router"
	queue_publisher "github.com/iliyamo/license-flow/internal/service"
	"github.com/iliyamo/license-flow/internal/workflow"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	apps := repository.NewApplicationRepo(db)
	history := repository.NewHistoryRepo(db)
	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	flowMaps := repository.NewFlowMapRepo(db)

	store := repository.NewWorkflowStore(db, apps, history)
	engine := workflow.NewEngine(store, queue_publisher.NewActionNotifier())

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterApplications(e, handler.NewApplicationHandler(apps, history, engine), cfg.JWTSecret, cache)
	router.RegisterRoles(e, handler.NewRoleHandler(roles), cfg.JWTSecret, cache)
	router.RegisterUsers(e, handler.NewUserHandler(cfg, users), cfg.JWTSecret)
	router.RegisterFlowMaps(e, handler.NewFlowMapHandler(flowMaps), cfg.JWTSecret)

	// Background consumer writes accepted workflow actions to logs/.
	go func() {
		if err := queue.StartActionConsumer(); err != nil {
			log.Printf("action consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
