package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"assethub/cmd"
	"assethub/internal/assetlog"
	"assethub/internal/assets"
	"assethub/internal/database"
	"assethub/internal/maintenance"
	"assethub/internal/middleware"
	"assethub/internal/organizations"
	"assethub/internal/reports"
	"assethub/internal/repository"
	"assethub/internal/requests"
	"assethub/internal/users"
	"assethub/pkg/security"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	r := repository.NewRepository(db)

	assetsRepo := assets.NewAssetsRepository(r)
	logsRepo := assetlog.NewRepository(r)
	usersRepo := users.NewUserRepository(r)
	requestsRepo := requests.NewRequestsRepository(r)
	organizationsRepo := organizations.NewOrganizationRepository(r)
	maintenanceRepo := maintenance.NewMaintenanceRepository(r)
	reportsRepo := reports.NewReportsRepository(r)

	assetService := assets.NewAssetService(r, assetsRepo, logsRepo, usersRepo)
	requestService := requests.NewService(r, requestsRepo, assetsRepo, logsRepo, usersRepo)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = false
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	security.NewLoginHandler(r).RegisterRoutes(router)
	assets.NewAssetHandler(assetsRepo, assetService).RegisterRoutes(router)
	requests.NewRequestHandler(requestsRepo, requestService).RegisterRoutes(router)
	users.NewUserHandler(usersRepo).RegisterRoutes(router)
	organizations.NewOrganizationHandler(organizationsRepo).RegisterRoutes(router)
	maintenance.NewMaintenanceHandler(maintenanceRepo, assetsRepo).RegisterRoutes(router)
	reports.NewReportsHandler(reportsRepo).RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
