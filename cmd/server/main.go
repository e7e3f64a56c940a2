package main

import (
	"context"
	"log"

	"go-tour-booking/config"
	"go-tour-booking/internal/cache"
	"go-tour-booking/internal/database"
	"go-tour-booking/internal/handler"
	"go-tour-booking/internal/queue"
	"go-tour-booking/internal/repository"
	"go-tour-booking/internal/service"
	"go-tour-booking/internal/session"
	"go-tour-booking/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	tourRepo := repository.NewTourRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	catalogCache := cache.NewRedisCatalogCache(rdb, cache.DefaultCatalogTTL)
	catalogService := service.NewCatalogService(catalogRepo, catalogCache)
	tourService := service.NewTourService(tourRepo, catalogService)

	bookingQueue, err := queue.NewRedisStreamBookingQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize booking queue: %v", err)
	}

	sessions := session.NewStore()
	bookingService := service.NewBookingService(pool, bookingRepo, tourRepo, catalogService, sessions, bookingQueue)

	ctx := context.Background()
	bookingWorker := worker.NewBookingWorker(bookingService, bookingQueue)
	if err := bookingWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start booking worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewTourHandler(tourService, catalogService).RegisterRoutes(router)
	handler.NewDraftHandler(bookingService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)

	router.Run(":" + cfg.Server.Port)
}
