package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// PasswordHashAlgorithm selects the stored password digest: "sha256" or "bcrypt".
	PasswordHashAlgorithm string
	// LoginRateLimit is a ulule/limiter formatted rate, e.g. "5-M".
	LoginRateLimit string

	// External OAuth Providers
	GoogleClientID       string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL    string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FacebookClientID     string `mapstructure:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `mapstructure:"FACEBOOK_CLIENT_SECRET"`
	FacebookRedirectURL  string `mapstructure:"FACEBOOK_REDIRECT_URL"`
	FrontendBaseURL      string `mapstructure:"FRONTEND_BASE_URL"`

	// Verification mail requests are published to NATSURL on MailSubject.
	// Without NATSURL they are only logged.
	NATSURL     string `mapstructure:"NATS_URL"`
	MailSubject string `mapstructure:"MAIL_SUBJECT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "citizen-accounts")
	viper.SetDefault("PASSWORD_HASH_ALGORITHM", "sha256")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FACEBOOK_CLIENT_ID", "")
	viper.SetDefault("FACEBOOK_CLIENT_SECRET", "")
	viper.SetDefault("FACEBOOK_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("MAIL_SUBJECT", "mail.verification")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "citizen-accounts"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FacebookClientID = viper.GetString("FACEBOOK_CLIENT_ID")
	cfg.FacebookClientSecret = viper.GetString("FACEBOOK_CLIENT_SECRET")
	cfg.FacebookRedirectURL = viper.GetString("FACEBOOK_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Google OAuth will not function.")
	}
	if cfg.FacebookClientID == "" || cfg.FacebookClientSecret == "" || cfg.FacebookRedirectURL == "" {
		log.Println("Warning: FACEBOOK_CLIENT_ID, FACEBOOK_CLIENT_SECRET or FACEBOOK_REDIRECT_URL not set. Facebook OAuth will not function.")
	}

	cfg.NATSURL = viper.GetString("NATS_URL")
	if cfg.NATSURL == "" {
		log.Println("Warning: NATS_URL not set. Verification mails will only be logged.")
	}
	cfg.MailSubject = viper.GetString("MAIL_SUBJECT")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.PasswordHashAlgorithm = viper.GetString("PASSWORD_HASH_ALGORITHM")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}
