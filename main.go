package main

import (
	"fmt"
	"log"
	"os"

	"candydash-backend/config"
	"candydash-backend/models"
	"candydash-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Customer{},
		&models.Route{},
		&models.RouteStop{},
		&models.Visit{},
		&models.Payment{},
	)
}

func main() {
	if os.Getenv("SECRET_KEY") == "" {
		log.Println("SECRET_KEY not set, using dev default")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
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
