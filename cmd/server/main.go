package main

import (
	"fmt"
	"log"
	"net/http"

	"pawhome/backend/internal/auth"
	"pawhome/backend/internal/config"
	"pawhome/backend/internal/database"
	"pawhome/backend/internal/handler"
	"pawhome/backend/internal/middleware"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "pawhome/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           PawHome API
// @version         1.0
// @description     This is the API for the PawHome pet-adoption service.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()
	router.Use(middleware.RequestID())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", handler.RegisterUser)
		api.POST("/login", handler.LoginUser)

		// Public pet listing
		api.GET("/pets", handler.ListPets)
		api.GET("/pets/:id", handler.GetPetByID)

		// Pet management (any authenticated user)
		petRoutes := api.Group("/pets")
		petRoutes.Use(auth.AuthMiddleware())
		{
			petRoutes.POST("", handler.CreatePet)
			petRoutes.PUT("/:id", handler.UpdatePet)
			petRoutes.PATCH("/:id", handler.UpdatePet)
			petRoutes.DELETE("/:id", handler.DeletePet)
		}

		// Adoption routes (authenticated)
		adoptRoutes := api.Group("")
		adoptRoutes.Use(auth.AuthMiddleware())
		{
			adoptRoutes.POST("/adopt-pet", handler.SubmitApplication)
			adoptRoutes.GET("/users-pet", handler.MyPets)
			adoptRoutes.GET("/adopter-pets", handler.AdopterPets)
		}

		// History falls back to the token's user when no userId is given
		api.GET("/adoption-history", auth.OptionalAuthMiddleware(), handler.AdoptionHistory)

		// Staff routes (protected by auth and role check)
		staffRoutes := api.Group("")
		staffRoutes.Use(auth.AuthMiddleware(), auth.StaffMiddleware())
		{
			// Application administration
			applications := staffRoutes.Group("/adoption-applications")
			{
				applications.GET("", handler.ListApplications)
				applications.GET("/:id", handler.GetApplication)
				applications.PUT("/:id", handler.UpdateApplicationStatus)
				applications.DELETE("/:id", handler.DeleteApplication)
			}

			// User administration
			users := staffRoutes.Group("/users")
			{
				users.GET("", handler.ListUsers)
				users.GET("/:id", handler.GetUserByID)
				users.PUT("/:id", handler.UpdateUser)
				users.DELETE("/:id", handler.DeleteUser)
			}

			// Dashboard analytics
			analytics := staffRoutes.Group("/analytics")
			{
				analytics.GET("/users", handler.UserStats)
				analytics.GET("/pets", handler.PetStats)
				analytics.GET("/adoption-applications", handler.ApplicationStats)
			}
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ServerAddress)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddress))
}
