package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
	ServerPort string
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local development.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "quiz_user"),
		DBPassword: getEnv("DB_PASSWORD", "quiz_password"),
		DBName:     getEnv("DB_NAME", "quizmaster"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", "quizmaster-dev-signing-key"),
		ServerPort: getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
