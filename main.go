package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("kbju/nutrition-api: ")
	log.SetFlags(0)

	// .env is optional — deployed environments set real env vars instead.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET must be set")
		os.Exit(1)
	}

	pool := getDBPool()
	defer pool.Close()

	h := &Handler{
		db:        pool,
		jwtSecret: []byte(os.Getenv("JWT_SECRET")),
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)

	// Browser client runs on its own origin during development.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	fmt.Printf("Listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
