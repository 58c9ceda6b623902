package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	// StorageBackend selects the store implementations: "dynamo" (default)
	// or "memory" for local development without AWS.
	StorageBackend string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	OTPTTL    time.Duration
	OTPLength int

	SNSRegion string
	SMSSender string // "sns" | "log"

	AllowedOrigins []string // CORS allowed origins

	// Demo credential seeded into the memory backend when both are set.
	DemoUserPhone    string
	DemoUserPassword string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	OneTimeCodes  string
	RefreshTokens string
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
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			OneTimeCodes:  getEnv("DYNAMO_TABLE_ONE_TIME_CODES", "one_time_codes"),
			RefreshTokens: getEnv("DYNAMO_TABLE_REFRESH_TOKENS", "refresh_tokens"),
		},

		StorageBackend: getEnv("STORAGE_BACKEND", "dynamo"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_TTL_HOURS", 168)) * time.Hour,

		OTPTTL:    time.Duration(getEnvInt("OTP_TTL_MINUTES", 5)) * time.Minute,
		OTPLength: getEnvInt("OTP_LENGTH", 6),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),
		SMSSender: getEnv("SMS_SENDER", "sns"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		DemoUserPhone:    getEnv("DEMO_USER_PHONE", ""),
		DemoUserPassword: getEnv("DEMO_USER_PASSWORD", ""),
	}
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
