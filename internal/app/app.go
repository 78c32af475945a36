// Package app wires repositories, services and handlers into one router.
package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mavinci/internal/cache"
	"mavinci/internal/config"
	"mavinci/internal/domain/contact"
	"mavinci/internal/domain/employee"
	"mavinci/internal/domain/equipment"
	"mavinci/internal/domain/event"
	"mavinci/internal/domain/navigation"
	"mavinci/internal/domain/notification"
	"mavinci/internal/domain/offer"
	"mavinci/internal/domain/task"
	"mavinci/internal/middleware"
	"mavinci/internal/pkg/jwt"
	"mavinci/internal/pkg/response"
	"mavinci/internal/realtime"
	"mavinci/internal/storage"
)

type App struct {
	Router  *gin.Engine
	Hub     *realtime.Hub
	Cache   *cache.Store
	JWT     *jwt.Service
	Cleanup *notification.CleanupService
}

// Models lists every persisted entity in migration order.
func Models() []any {
	models := []any{&employee.Employee{}}
	models = append(models, contact.Models()...)
	models = append(models, event.Models()...)
	models = append(models, offer.Models()...)
	models = append(models, equipment.Models()...)
	models = append(models, task.Models()...)
	models = append(models, notification.Models()...)
	return models
}

func New(cfg *config.Config, db *gorm.DB) (*App, error) {
	store, err := cache.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := realtime.NewHub()
	files := storage.NewService(cfg.StorageDir, cfg.StorageURLBase, cfg.MaxUploadSize, cfg.SignedURLTTL, jwtService)

	employeeService := employee.NewService(employee.NewRepository(db), jwtService, cfg.ICalTokenTTL)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, employeeService, hub)

	offerService := offer.NewService(offer.NewRepository(db), files, hub)
	equipmentService := equipment.NewService(equipment.NewRepository(db), store, hub)
	taskService := task.NewService(task.NewRepository(db), files, hub, notificationService)
	contactService := contact.NewService(contact.NewRepository(db), store, hub)
	eventService := event.NewService(event.NewRepository(db), store, files, hub)

	// cached reads are tagged with the tables they were built from
	hub.OnChange(func(ch realtime.Change) {
		store.InvalidateTags(ch.Table)
	})
	hub.OnChange(taskService.ApplyRemote)

	r := gin.New()
	r.Use(middleware.RequestID())
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
		store.Subscribe(func(keys []string) {
			log.Printf("cache_invalidated keys=%v", keys)
		})
	}
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status":      "ok",
			"connections": hub.Connections(),
			"cache_items": store.Len(),
		})
	})

	v1 := r.Group("/api/v1")
	employeeHandler := employee.NewHandler(employeeService)
	employeeHandler.RegisterPublicRoutes(v1)
	storage.NewHandler(files).RegisterRoutes(v1)
	realtime.NewHandler(hub, jwtService, middleware.CheckOrigin(cfg.CORSOrigins)).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		employeeHandler.RegisterRoutes(protected)
		navigation.NewHandler(employeeService).RegisterRoutes(protected)
		notification.NewHandler(notificationService).RegisterRoutes(protected)
		offer.NewHandler(offerService).RegisterRoutes(protected)
		equipment.NewHandler(equipmentService).RegisterRoutes(protected)
		task.NewHandler(taskService).RegisterRoutes(protected)
		contact.NewHandler(contactService).RegisterRoutes(protected)
		event.NewHandler(eventService).RegisterRoutes(protected)
	}

	return &App{
		Router:  r,
		Hub:     hub,
		Cache:   store,
		JWT:     jwtService,
		Cleanup: notification.NewCleanupService(notificationRepo),
	}, nil
}
