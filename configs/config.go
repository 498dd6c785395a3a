package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
// Business logic never reads os.Getenv directly; the loaded struct is
// handed to the database layer and friends at startup.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string

	CloudinaryURL    string
	CloudinaryFolder string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	AdminEmail    string
	AdminPassword string
	AdminFullName string

	MatchRefreshSpec string
}

// C is the active configuration, set by Load.
var C *Config

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "rental_marketplace_media"),
		BrevoAPIKey:      os.Getenv("BREVO_API_KEY"),
		EmailSender:      os.Getenv("EMAIL_SENDER"),
		EmailSenderName:  os.Getenv("EMAIL_SENDER_NAME"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		AdminFullName:    getEnv("ADMIN_FULL_NAME", "Marketplace Admin"),
		MatchRefreshSpec: getEnv("MATCH_REFRESH_CRON", "*/15 * * * *"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	C = cfg
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
