package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort            string
	AppMode            string
	LogMode            string
	DataFile           string
	UploadDir          string
	PublicBaseURL      string
	StorageDriver      string
	MaxUploadMB        int
	ThumbnailWidth     int
	CORSOrigins        []string
	PhotographerHeader string

	S3 S3Config

	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	RateLimitPerMinute int
}

type S3Config struct {
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicBase string
	ACL        string
}

var (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		AppMode:            getEnv("APP_MODE", "debug"),
		LogMode:            getEnv("LOG_MODE", "development"),
		DataFile:           getEnv("DATA_FILE", "data/db.json"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:      strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		StorageDriver:      getEnv("STORAGE_DRIVER", StorageDriverLocal),
		MaxUploadMB:        nonNegative(getEnvAsInt("MAX_UPLOAD_MB", 50)),
		ThumbnailWidth:     nonNegative(getEnvAsInt("THUMBNAIL_WIDTH", 480)),
		CORSOrigins:        getEnvAsList("CORS_ORIGINS", []string{"*"}),
		PhotographerHeader: getEnv("PHOTOGRAPHER_HEADER", "X-Client-Type"),
		S3: S3Config{
			Region:     getEnv("S3_REGION", ""),
			Bucket:     getEnv("S3_BUCKET", ""),
			AccessKey:  getEnv("S3_ACCESS_KEY", ""),
			SecretKey:  getEnv("S3_SECRET_KEY", ""),
			Endpoint:   getEnv("S3_ENDPOINT", ""),
			PublicBase: strings.TrimRight(getEnv("S3_PUBLIC_BASE", ""), "/"),
			ACL:        getEnv("S3_ACL", ""),
		},
		RedisHost:          getEnv("REDIS_HOST", ""),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 0),
	}
}

// RateLimitEnabled reports whether client routes should be throttled through Redis.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisHost != "" && c.RateLimitPerMinute > 0
}

// UploadsBaseURL is the public prefix under which locally stored files are served.
func (c *Config) UploadsBaseURL() string {
	return c.PublicBaseURL + "/uploads"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// nonNegative clamps negative numeric settings to 0, which disables the feature.
func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
