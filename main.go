package main

import (
	"log"
	"os"

	db "ClinicSphere/config/db"
	redis "ClinicSphere/config/redis"
	"ClinicSphere/jobs"
	"ClinicSphere/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error in loading the ENV")
	}

	if err := db.Connect(); err != nil {
		log.Fatal("Error connecting to MongoDB: ", err)
	}
	redis.Connect()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(router)

	jobs.StartDailyScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Error starting server: ", err)
	}
}
