package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server Server `yaml:"server"`

	Database Database `yaml:"database"`

	Session Session `yaml:"session"`

	OTP OTP `yaml:"otp"`

	Superadmin Superadmin `yaml:"superadmin"`

	Inventory Inventory `yaml:"inventory"`
}

type Server struct {
	Address string `yaml:"address"`
	Mode    string `yaml:"mode"`
}

type Session struct {
	CookieName     string `yaml:"cookie_name"`
	TimeoutMinutes int    `yaml:"timeout_minutes"`
}

type OTP struct {
	ValidityMinutes int `yaml:"validity_minutes"`
	CooldownSeconds int `yaml:"cooldown_seconds"`
}

// Superadmin configures the administrative login escape hatch. Logging in
// with the sentinel identifier skips the credential store entirely.
type Superadmin struct {
	Identifier string `yaml:"identifier"`
}

type Inventory struct {
	LowStockThreshold int `yaml:"low_stock_threshold"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func Load() (*Config, error) {
	configPath := "configs/development.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	// Database credentials can live outside the config file; secrets.env is
	// optional and never committed.
	_ = godotenv.Load("secrets.env")

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_HOSTNAME"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_USERNAME"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_DATABASE"); v != "" {
		cfg.Database.DBName = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "shoestore_session"
	}
	if cfg.Session.TimeoutMinutes <= 0 {
		cfg.Session.TimeoutMinutes = 30
	}
	if cfg.OTP.ValidityMinutes <= 0 {
		cfg.OTP.ValidityMinutes = 10
	}
	if cfg.OTP.CooldownSeconds <= 0 {
		cfg.OTP.CooldownSeconds = 30
	}
	if cfg.Inventory.LowStockThreshold <= 0 {
		cfg.Inventory.LowStockThreshold = 5
	}
}
