package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	// JWTSecret is the local fallback signing secret, used when the
	// remote secret store cannot be reached.
	JWTSecret        string
	SecretStoreURL   string
	SecretStoreToken string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSOrigin string
}

// LoadConfig reads configuration from a .env file (if present) and the
// process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "ecopulse"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		SecretStoreURL:   getEnv("SECRET_STORE_URL", ""),
		SecretStoreToken: getEnv("SECRET_STORE_TOKEN", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          redisDB,
		CORSOrigin:       getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
