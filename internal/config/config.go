package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	StorageDriver string // "dynamo" | "memory"
	DynamoTables  DynamoTables
	S3BucketName  string

	SessionSecret     string
	SessionExpiryDays int

	EmailDomain     string // institutional domain without the "@"
	CodeTTLMinutes  int
	MaxCodeAttempts int
	AdminEmails     []string

	SMTPHost     string // empty means no delivery channel configured
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion      string
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Identities    string
	Sessions      string
	Verifications string
	Listings      string
	Saved         string
	Exchanges     string
	Photos        string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		StorageDriver: getEnv("STORAGE_DRIVER", "dynamo"),
		DynamoTables: DynamoTables{
			Identities:    getEnv("DYNAMO_TABLE_IDENTITIES", "identities"),
			Sessions:      getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Verifications: getEnv("DYNAMO_TABLE_VERIFICATIONS", "pending_verifications"),
			Listings:      getEnv("DYNAMO_TABLE_LISTINGS", "listings"),
			Saved:         getEnv("DYNAMO_TABLE_SAVED", "saved_listings"),
			Exchanges:     getEnv("DYNAMO_TABLE_EXCHANGES", "exchanges"),
			Photos:        getEnv("DYNAMO_TABLE_PHOTOS", "listing_photos"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "clutch-photos"),

		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionExpiryDays: getEnvInt("SESSION_EXPIRY_DAYS", 30),

		EmailDomain:     getEnv("EMAIL_DOMAIN", "essex.ac.uk"),
		CodeTTLMinutes:  getEnvInt("CODE_TTL_MINUTES", 10),
		MaxCodeAttempts: getEnvInt("MAX_CODE_ATTEMPTS", 5),
		AdminEmails:     splitNonEmpty(getEnv("ADMIN_EMAILS", "")),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPFrom:     getEnv("SMTP_FROM", "Clutch <noreply@clutch-skillshare.app>"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Production reports whether this deployment must suppress dev-only behavior
// such as code disclosure.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
