package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oculab/octascan-api/internal/analysis"
	"github.com/oculab/octascan-api/internal/handlers"
	"github.com/oculab/octascan-api/internal/middleware"
	"github.com/oculab/octascan-api/internal/models"
	"github.com/oculab/octascan-api/internal/seeds"
	"github.com/oculab/octascan-api/internal/services"
	"github.com/oculab/octascan-api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("JWT_SECRET is NOT SET.")
	}

	// --- Storage ---
	backend, err := store.Open()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	users := store.NewCollection[models.User](backend, "users")
	doctors := store.NewCollection[models.Doctor](backend, "doctors")
	reports := store.NewCollection[models.Report](backend, "reports")
	messages := store.NewCollection[models.Message](backend, "messages")
	session := store.NewSession(backend)

	if err := seeds.Run(users, doctors); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	// --- Services ---
	authSvc := services.NewAuthService(users, session)
	reportSvc := services.NewReportService(reports, doctors)
	messageSvc := services.NewMessageService(messages, reports, doctors)
	exportSvc := services.NewExportService()
	notifySvc := services.NewNotificationService()

	seed := int64(os.Getpid())
	h := handlers.NewHandler(
		authSvc, reportSvc, messageSvc, exportSvc, notifySvc,
		doctors, users,
		analysis.NewSimulatedClassifier(analysis.DefaultClassifyDelay, seed),
		analysis.NewSimulatedFluidQuantifier(analysis.DefaultFluidDelay, seed+1),
		analysis.NewSimulatedEnhancer(analysis.DefaultEnhanceDelay, analysis.DefaultEnhanceJitter, seed+2),
	)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware())
	{
		apiRoutes.POST("/logout", h.Logout)
		apiRoutes.GET("/me", h.GetCurrentUser)

		apiRoutes.GET("/doctors", h.GetDoctors)

		apiRoutes.POST("/analyze/diagnosis", h.AnalyzeDiagnosis)
		apiRoutes.POST("/analyze/fluid", h.AnalyzeFluid)
		apiRoutes.POST("/analyze/enhance", h.AnalyzeEnhance)

		apiRoutes.POST("/reports", h.CreateReport)
		apiRoutes.GET("/reports", h.GetReports)
		apiRoutes.GET("/reports/export", h.ExportReports)
		apiRoutes.GET("/reports/:id", h.GetReport)
		apiRoutes.PUT("/reports/:id/review", h.ReviewReport)
		apiRoutes.PUT("/reports/:id/finalize", h.FinalizeReport)
		apiRoutes.GET("/reports/:id/pdf", h.ReportPDF)

		apiRoutes.GET("/messages/contacts", h.GetContacts)
		apiRoutes.GET("/messages/unread/count", h.GetUnreadCount)
		apiRoutes.GET("/messages/:otherId", h.GetConversation)
		apiRoutes.POST("/messages", h.SendMessage)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
