package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Predictor PredictorConfig
	Session   SessionConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

// PredictorConfig points at the external ML scoring service. The candidate
// attributes (experience, education, ...) are fixed placeholders sent with
// every request. The predictor expects them, but they are never derived
// from the uploaded resume.
// TODO: replace the placeholder attributes once the predictor accepts per-user data.
type PredictorConfig struct {
	URL            string
	Timeout        time.Duration
	Experience     int
	Education      string
	Certifications string
	Projects       int
	Salary         int
}

type SessionConfig struct {
	Expiration time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_portal"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 5242880),
		},
		Predictor: PredictorConfig{
			URL:            getEnv("PREDICTOR_URL", "http://localhost:5000/predict"),
			Timeout:        getEnvAsDuration("PREDICTOR_TIMEOUT", "10s"),
			Experience:     getEnvAsInt("PREDICTOR_EXPERIENCE", 2),
			Education:      getEnv("PREDICTOR_EDUCATION", "B.Tech"),
			Certifications: getEnv("PREDICTOR_CERTIFICATIONS", "AWS Certified"),
			Projects:       getEnvAsInt("PREDICTOR_PROJECTS", 3),
			Salary:         getEnvAsInt("PREDICTOR_SALARY", 60000),
		},
		Session: SessionConfig{
			Expiration: getEnvAsDuration("SESSION_EXPIRATION", "24h"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
