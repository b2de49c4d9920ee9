package main

import (
	"fmt"
	"log"
	"os"

	"carrental-backend/config"
	"carrental-backend/logger"
	"carrental-backend/models"
	"carrental-backend/routes"
	"carrental-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger.Setup()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Admin{},
		&models.Manager{},
		&models.Client{},
		&models.Voiture{},
		&models.Reservation{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	services.NewReservationService(config.DB).StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
