package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/officinadeltaglio/barbershop-api/internal/config"
	"github.com/officinadeltaglio/barbershop-api/internal/db"
	"github.com/officinadeltaglio/barbershop-api/internal/jobs"
	"github.com/officinadeltaglio/barbershop-api/internal/middleware"
	"github.com/officinadeltaglio/barbershop-api/internal/routes"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()

	if !timezone.IsValid(cfg.Timezone) {
		log.Fatalf("invalid SHOP_TIMEZONE: %s", cfg.Timezone)
	}
	loc := timezone.Location(cfg.Timezone)

	database := db.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// Background sweeps: overdue bookings become no-shows every quarter
	// hour, the walk-in queue is closed out just after midnight.
	sweeper := jobs.NewSweeper(database, loc)
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc("*/15 * * * *", sweeper.MarkNoShows); err != nil {
		log.Fatalf("cron: %v", err)
	}
	if _, err := c.AddFunc("5 0 * * *", sweeper.CloseQueue); err != nil {
		log.Fatalf("cron: %v", err)
	}
	c.Start()
	defer c.Stop()

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(r, database, rdb, cfg)

	log.Printf("listening on %s (timezone %s)", cfg.Addr(), cfg.Timezone)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
