package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/souviksingh11/farmmate/internal/audit"
	"github.com/souviksingh11/farmmate/internal/config"
	"github.com/souviksingh11/farmmate/internal/handlers"
	"github.com/souviksingh11/farmmate/internal/inference"
	infraRepo "github.com/souviksingh11/farmmate/internal/infra/repository"
	"github.com/souviksingh11/farmmate/internal/market"
	"github.com/souviksingh11/farmmate/internal/middleware"
	"github.com/souviksingh11/farmmate/internal/models"
	"github.com/souviksingh11/farmmate/internal/storage"
	ucFertilizer "github.com/souviksingh11/farmmate/internal/usecase/fertilizer"
	ucScan "github.com/souviksingh11/farmmate/internal/usecase/scan"
	"github.com/souviksingh11/farmmate/internal/weather"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, cache *redis.Client) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	recordRepo := infraRepo.NewRecordGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	inferenceClient := inference.NewClient(cfg.InferenceURL)
	marketClient := market.NewClient(cfg.DataGovAPIKey, cache)
	weatherClient := weather.NewClient(cfg.OpenWeatherAPIKey)

	// Keep the interface strictly nil when S3 is unconfigured, so
	// the scan pipeline skips the upload step entirely.
	var imageStore ucScan.ImageStore
	if store := storage.NewObjectStore(cfg); store != nil {
		imageStore = store
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createScanUC := ucScan.NewCreateScan(
		recordRepo,
		inferenceClient,
		imageStore,
		auditDispatcher,
	)
	listScansUC := ucScan.NewListScans(recordRepo)

	createPlanUC := ucFertilizer.NewCreatePlan(
		recordRepo,
		inferenceClient,
		auditDispatcher,
	)
	listPlansUC := ucFertilizer.NewListPlans(recordRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	userHandler := handlers.NewUserHandler(db, auditDispatcher)
	farmHandler := handlers.NewFarmHandler(recordRepo, auditDispatcher)
	scanHandler := handlers.NewScanHandler(createScanUC, listScansUC)
	fertilizerHandler := handlers.NewFertilizerHandler(createPlanUC, listPlansUC)
	marketHandler := handlers.NewMarketHandler(marketClient)
	weatherHandler := handlers.NewWeatherHandler(weatherClient)
	adminHandler := handlers.NewAdminHandler(recordRepo, db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (public)
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)
		api.POST("/auth/reset-password", authHandler.ResetPassword)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(db, cfg))
		{
			secured.GET("/auth/me", authHandler.Me)
			secured.POST("/auth/logout", authHandler.Logout)

			secured.PUT("/users/me", userHandler.UpdateProfile)
			secured.POST("/users/me/avatar", userHandler.UploadAvatar)
			secured.DELETE("/users/me/avatar", userHandler.RemoveAvatar)

			secured.GET("/farms", farmHandler.List)
			secured.POST("/farms", farmHandler.Create)
			secured.PUT("/farms/:id", farmHandler.Update)
			secured.DELETE("/farms/:id", farmHandler.Delete)

			secured.GET("/scans", scanHandler.List)
			secured.POST("/scans", scanHandler.Create)

			secured.GET("/fertilizer", fertilizerHandler.List)
			secured.POST("/fertilizer", fertilizerHandler.Create)

			secured.GET("/market/prices", marketHandler.Prices)
			secured.GET("/weather", weatherHandler.Get)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				admin.GET("/overview", adminHandler.Overview)
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/users/export", adminHandler.ExportUsers)
				admin.GET("/users/:id", adminHandler.UserDetail)
				admin.GET("/activity", adminHandler.Activity)
				admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}
}
