package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	Mpesa MpesaConfig `yaml:"mpesa"`

	Payments struct {
		// RetainFailedPayments keeps payment rows whose callback reported
		// failure instead of deleting them. Off by default.
		RetainFailedPayments bool `yaml:"retain_failed_payments"`
	} `yaml:"payments"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

type MpesaConfig struct {
	Env            string `yaml:"env"` // sandbox or production
	ConsumerKey    string `yaml:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret"`
	Shortcode      string `yaml:"shortcode"`
	Passkey        string `yaml:"passkey"`
	CallbackURL    string `yaml:"callback_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// BaseURL resolves the Daraja endpoint for the configured environment.
func (m MpesaConfig) BaseURL() string {
	if m.Env == "production" {
		return "https://api.safaricom.co.ke"
	}
	return "https://sandbox.safaricom.co.ke"
}

func (m MpesaConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	// Environment variables may also come from a .env file during development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyEnvOverrides(&cfg)
		AppConfig = &cfg
		return
	}

	// Test / container mode: everything from the environment.
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Mpesa.Env = "sandbox"
	cfg.Mpesa.Shortcode = "174379"
	cfg.Mpesa.TimeoutSeconds = 30

	applyEnvOverrides(&cfg)
	AppConfig = &cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MPESA_CONSUMER_KEY"); v != "" {
		cfg.Mpesa.ConsumerKey = v
	}
	if v := os.Getenv("MPESA_CONSUMER_SECRET"); v != "" {
		cfg.Mpesa.ConsumerSecret = v
	}
	if v := os.Getenv("MPESA_SHORTCODE"); v != "" {
		cfg.Mpesa.Shortcode = v
	}
	if v := os.Getenv("MPESA_PASSKEY"); v != "" {
		cfg.Mpesa.Passkey = v
	}
	if v := os.Getenv("MPESA_CALLBACK_URL"); v != "" {
		cfg.Mpesa.CallbackURL = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
