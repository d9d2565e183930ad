package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DatabaseURL      string        `envconfig:"DATABASE_URL" required:"true"`
	DBMinConns       int32         `envconfig:"DB_MIN_CONNS" default:"1"`
	DBMaxConns       int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBCommandTimeout time.Duration `envconfig:"DB_COMMAND_TIMEOUT" default:"60s"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"8000"`

	// CORS: feste Origins plus ein Regex für Preview-Deployments
	AllowedOrigins     []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:8001,http://127.0.0.1:8001"`
	AllowedOriginRegex string   `envconfig:"CORS_ALLOWED_ORIGIN_REGEX" default:"^https://.*\\.netlify\\.app$"`
	AssetsDir          string   `envconfig:"ASSETS_DIR" default:"assets"`
	QueryDefaultLimit  int      `envconfig:"QUERY_DEFAULT_LIMIT" default:"200"`
	QueryMaxLimit      int      `envconfig:"QUERY_MAX_LIMIT" default:"10000"`

	DataDir            string `envconfig:"DATA_DIR" default:"processed"`
	LoaderChunkSize    int    `envconfig:"LOADER_CHUNK_SIZE" default:"1000"`
	LoaderCronSchedule string `envconfig:"LOADER_CRON_SCHEDULE"`

	// Optional: Arbeitsmappen aus einem S3-Bucket statt aus DATA_DIR lesen
	SourceS3Bucket string `envconfig:"SOURCE_S3_BUCKET"`
	SourceS3Prefix string `envconfig:"SOURCE_S3_PREFIX"`
	SourceS3URL    string `envconfig:"SOURCE_S3_URL"`
	SourceS3Region string `envconfig:"SOURCE_S3_REGION" default:"us-east-1"`
	SourceS3Key    string `envconfig:"SOURCE_S3_KEY"`
	SourceS3Secret string `envconfig:"SOURCE_S3_SECRET"`
}

// UseS3Source meldet, ob der Loader seine Eingabedateien aus S3 lesen soll.
func (c *Config) UseS3Source() bool {
	return c.SourceS3Bucket != ""
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return &c, err
	}
	if c.QueryDefaultLimit <= 0 {
		return &c, fmt.Errorf("QUERY_DEFAULT_LIMIT must be positive, got %d", c.QueryDefaultLimit)
	}
	if c.QueryMaxLimit <= 0 {
		return &c, fmt.Errorf("QUERY_MAX_LIMIT must be positive, got %d", c.QueryMaxLimit)
	}
	return &c, nil
}
