package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Storage      Storage
	Log          Log
	Auth         Auth
	Gemini       Gemini
	PracticePath string
}

type Server struct {
	Port           string
	Mode           string
	SessionSecret  string
	SessionSecure  bool
	AllowedOrigins []string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Storage struct {
	Dir         string
	MaxUploadMB int64
}

type Log struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Auth struct {
	RateLimitPerMinute uint
	SeedOwnerEmail     string
	SeedOwnerPassword  string
}

type Gemini struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("SESSION_SECRET", "change-me-in-production")
	viper.SetDefault("SESSION_SECURE", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("STORAGE_DIR", "./uploads")
	viper.SetDefault("STORAGE_MAX_UPLOAD_MB", 20)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "logs/lawdesk.log")
	viper.SetDefault("LOG_MAX_SIZE_MB", 10)
	viper.SetDefault("LOG_MAX_BACKUPS", 3)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 7)
	viper.SetDefault("AUTH_RATE_LIMIT_PER_MINUTE", 5)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_RPM", 10)
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	fileLoaded := true
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
		fileLoaded = false
	}

	config := load()

	if fileLoaded {
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("Config file changed")
			for _, fn := range reloadHooks {
				fn(load())
			}
		})
		viper.WatchConfig()
	}

	log.Info().Interface("config", config.Redacted()).Msg("Config loaded")
	return config, nil
}

func load() *Config {
	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("SERVER_MODE")
	config.Server.SessionSecret = viper.GetString("SESSION_SECRET")
	config.Server.SessionSecure = viper.GetBool("SESSION_SECURE")
	config.Server.AllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Storage.Dir = viper.GetString("STORAGE_DIR")
	config.Storage.MaxUploadMB = viper.GetInt64("STORAGE_MAX_UPLOAD_MB")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.File = viper.GetString("LOG_FILE")
	config.Log.MaxSizeMB = viper.GetInt("LOG_MAX_SIZE_MB")
	config.Log.MaxBackups = viper.GetInt("LOG_MAX_BACKUPS")
	config.Log.MaxAgeDays = viper.GetInt("LOG_MAX_AGE_DAYS")

	config.Auth.RateLimitPerMinute = viper.GetUint("AUTH_RATE_LIMIT_PER_MINUTE")
	config.Auth.SeedOwnerEmail = viper.GetString("SEED_OWNER_EMAIL")
	config.Auth.SeedOwnerPassword = viper.GetString("SEED_OWNER_PASSWORD")

	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")
	config.Gemini.RequestsPerMinute = viper.GetInt("GEMINI_RPM")

	config.PracticePath = viper.GetString("PRACTICE_CATALOG")
	return &config
}

var reloadHooks []func(*Config)

// OnReload registers fn to run with a freshly loaded Config whenever the
// watched .env file changes.
func OnReload(fn func(*Config)) {
	reloadHooks = append(reloadHooks, fn)
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "****"
	}
	c.Server.SessionSecret = mask(c.Server.SessionSecret)
	c.Database.Password = mask(c.Database.Password)
	c.Auth.SeedOwnerPassword = mask(c.Auth.SeedOwnerPassword)
	c.Gemini.APIKey = mask(c.Gemini.APIKey)
	return c
}

func (d Database) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
