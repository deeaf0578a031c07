package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BelezaPro/agenda-core/internal/config"
	dbpkg "github.com/BelezaPro/agenda-core/internal/db"
	"github.com/BelezaPro/agenda-core/internal/events"
	infraRepo "github.com/BelezaPro/agenda-core/internal/infra/repository"
	"github.com/BelezaPro/agenda-core/internal/middleware"
	"github.com/BelezaPro/agenda-core/internal/routes"
	"github.com/BelezaPro/agenda-core/internal/scheduler"
	ucAgenda "github.com/BelezaPro/agenda-core/internal/usecase/agenda"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	publisher := events.NewPublisher(rdb)

	policyStore := infraRepo.NewPolicyGormStore(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	engine := ucAgenda.NewEngine(policyStore, publisher)

	// tick de liberação de agenda, idempotente por (tenant, dia)
	ticker := scheduler.NewReleaseTicker(
		engine,
		policyStore,
		scheduleRepo,
		time.Duration(cfg.ReleaseTickMinutes)*time.Minute,
	)
	go ticker.Run(context.Background())

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, publisher, engine, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
