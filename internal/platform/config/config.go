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
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Quote acquisition
	FetchTimeout       time.Duration
	FetchSchedule      string
	FetchTimezone      string
	FetchInsecureTLS   bool
	ExchangeRateAPIURL string
	BCBPtaxURL         string
	LMEScrapeURL       string
	MetalsAPIURL       string
	MetalsAPIKey       string

	// Uploads
	UploadDir string

	// Contact mail
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	ContactRecipient string
	ContactRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "olgacolor-back")
	viper.SetDefault("FETCH_TIMEOUT", "30s")
	viper.SetDefault("FETCH_SCHEDULE", "14:00,17:00")
	viper.SetDefault("FETCH_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("FETCH_INSECURE_TLS", false)
	viper.SetDefault("EXCHANGE_RATE_API_URL", "https://api.exchangerate-api.com/v4/latest/USD")
	viper.SetDefault("BCB_PTAX_URL", "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata/CotacaoMoedaDia(moeda=@moeda,dataCotacao=@dataCotacao)")
	viper.SetDefault("LME_SCRAPE_URL", "https://www.lme.com/en/Metals/Non-ferrous/LME-Aluminium")
	viper.SetDefault("METALS_API_URL", "https://metals-api.com/api/latest")
	viper.SetDefault("METALS_API_KEY", "")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("CONTACT_RECIPIENT", "")
	viper.SetDefault("CONTACT_RATE_LIMIT", "5-M")

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
		jwtIssuer = "olgacolor-back"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	fetchTimeoutStr := viper.GetString("FETCH_TIMEOUT")
	fetchTimeout, err := time.ParseDuration(fetchTimeoutStr)
	if err != nil {
		fetchTimeout = 30 * time.Second
		if fetchTimeoutStr != "" {
			log.Printf("Warning: Invalid value for FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", fetchTimeoutStr, fetchTimeout.String())
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.FetchTimeout = fetchTimeout
	cfg.FetchSchedule = viper.GetString("FETCH_SCHEDULE")
	cfg.FetchTimezone = viper.GetString("FETCH_TIMEZONE")
	cfg.FetchInsecureTLS = viper.GetBool("FETCH_INSECURE_TLS")
	cfg.ExchangeRateAPIURL = viper.GetString("EXCHANGE_RATE_API_URL")
	cfg.BCBPtaxURL = viper.GetString("BCB_PTAX_URL")
	cfg.LMEScrapeURL = viper.GetString("LME_SCRAPE_URL")
	cfg.MetalsAPIURL = viper.GetString("METALS_API_URL")
	cfg.MetalsAPIKey = viper.GetString("METALS_API_KEY")
	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetString("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	cfg.ContactRecipient = viper.GetString("CONTACT_RECIPIENT")
	cfg.ContactRateLimit = viper.GetString("CONTACT_RATE_LIMIT")

	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Contact mail delivery will not function.")
	}
	if cfg.MetalsAPIKey == "" {
		log.Println("Warning: METALS_API_KEY not set. The metals-api fallback adapter will be skipped.")
	}

	return cfg, nil
}
