package routes

import (
	"os"
	"strings"

	"carrental-backend/config"
	"carrental-backend/controllers"
	"carrental-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Auth
	r.POST("/admin/login", controllers.AdminLogin)
	r.POST("/manager/login", controllers.ManagerLogin)

	// Public catalog: the booking site browses cars without a session
	r.GET("/voiture", controllers.GetVoitures)
	r.GET("/voiture/:id", controllers.GetVoiture)
	r.GET("/voiture/:id/image", controllers.GetVoitureImage)

	// Back-office routes shared by both consoles
	staff := r.Group("", utils.AuthMiddleware("admin", "manager"))
	{
		clients := staff.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		reservations := staff.Group("/reservations")
		{
			reservations.POST("", controllers.CreateReservation)
			reservations.GET("", controllers.GetReservations)
			reservations.GET("/:id", controllers.GetReservation)
			reservations.PUT("/:id", controllers.UpdateReservation)
			reservations.PATCH("/:id/statut", controllers.ChangeReservationStatus)
			reservations.DELETE("/:id", controllers.DeleteReservation)
		}

		staff.POST("/voiture", controllers.CreateVoiture)
		staff.PUT("/voiture/:id", controllers.UpdateVoiture)
		staff.DELETE("/voiture/:id", controllers.DeleteVoiture)

		api := staff.Group("/api")
		{
			api.GET("/dashboard/stats", controllers.GetDashboardStats)
			api.GET("/dashboard/upcoming-reservations", controllers.GetUpcomingReservations)
			api.GET("/calendar/reservations", controllers.GetCalendarReservations)
		}
	}

	// Manager roster is admin-only
	managers := r.Group("/managers", utils.AuthMiddleware("admin"))
	{
		managers.POST("", controllers.CreateManager)
		managers.GET("", controllers.GetManagers)
		managers.GET("/:id", controllers.GetManager)
		managers.PUT("/:id", controllers.UpdateManager)
		managers.DELETE("/:id", controllers.DeleteManager)
	}

	return r
}
