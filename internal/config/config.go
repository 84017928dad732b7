package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the dashboard reads from the environment.
// Loaded once at boot; pages never touch os.Getenv directly.
type Config struct {
	Addr       string // listen address for the dashboard
	APIBaseURL string // upstream REST API, e.g. https://digitalbackend-uobz.onrender.com/api/v1
}

// DevAPI holds the local backend's settings.
type DevAPI struct {
	Addr       string
	DBPath     string
	JWTSecret  string
	CORSOrigin string
}

// Load reads .env (when present) then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	return Config{
		Addr:       getEnv("ADDR", ":8080"),
		APIBaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:9090/api/v1"),
	}
}

// LoadDevAPI reads the devapi settings from the same .env.
func LoadDevAPI() DevAPI {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	return DevAPI{
		Addr:       getEnv("DEVAPI_ADDR", ":9090"),
		DBPath:     getEnv("DEVAPI_DB", "devapi.db"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:8080"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
