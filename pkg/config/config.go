package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Auth providers accepted in AUTH_PROVIDER.
const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	AuthProvider            string
	FirebaseCredentialsPath string
	JWTSecret               string
	UploadDir               string
	MaxUploadSize           string
	MinioEndpoint           string
	MinioAccessKey          string
	MinioSecretKey          string
	MinioBucket             string
	MinioUseSSL             bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         os.Getenv("POSTGRES_CONN_STR"),
		MongoURI:                os.Getenv("MONGO_URI"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "socialmedia"),
		AuthProvider:            getEnv("AUTH_PROVIDER", AuthProviderFirebase),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		UploadDir:               getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize:           getEnv("MAX_UPLOAD_SIZE", "10M"),
		MinioEndpoint:           os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:          os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:          os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:             getEnv("MINIO_BUCKET", "uploads"),
		MinioUseSSL:             getEnvBool("MINIO_USE_SSL", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PostgresConnStr == "" {
		return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}
	switch c.AuthProvider {
	case AuthProviderFirebase:
	case AuthProviderJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_PROVIDER=jwt")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesMinio reports whether uploads go to object storage instead of disk.
func (c *Config) UsesMinio() bool {
	return c.MinioEndpoint != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}
