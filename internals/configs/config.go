package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultPort          = "5000"
	defaultMongoHost     = "localhost"
	defaultMongoPort     = "27017"
	defaultMongoDatabase = "readingroom"
)

type Config struct {
	AppEnv string
	Port   string

	MongoURI      string
	MongoUsername string
	MongoPassword string
	MongoHost     string
	MongoPort     string
	MongoDatabase string

	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string

	MidtransServerKey string
	MidtransUseProd   bool

	CORSOrigins           []string
	TrustedProxies        []string
	TokenBlacklistTTLDays int

	RedisURL       string
	MetricsEnabled bool

	AdminEmail    string
	AdminPassword string
}

// =======================
// ENV LOADER
// =======================

// LoadEnv reads .env (outside Railway) and then the process environment.
func LoadEnv(log *zap.Logger) *Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Info("no .env file found, using system environment")
		} else {
			log.Info(".env file loaded")
		}
	} else {
		log.Info("running in Railway, using system environment")
	}

	cfg := FromLookup(os.LookupEnv)

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set")
	}
	if cfg.JWTRefreshSecret == "" {
		log.Warn("JWT_REFRESH_SECRET is not set")
	}
	if cfg.MidtransServerKey == "" {
		log.Warn("MIDTRANS_SERVER_KEY is not set, checkout is disabled")
	}

	// same variables the Node service printed at boot, minus the password
	log.Info("database environment",
		zap.Bool("MONGODB_URI", cfg.MongoURI != ""),
		zap.String("MONGODB_USERNAME", cfg.MongoUsername),
		zap.Bool("MONGODB_PASSWORD", cfg.MongoPassword != ""),
		zap.String("MONGODB_HOST", cfg.MongoHost),
		zap.String("MONGODB_PORT", cfg.MongoPort),
		zap.String("MONGODB_DATABASE", cfg.MongoDatabase),
	)
	return cfg
}

// FromLookup builds a Config from any env-style lookup function.
func FromLookup(lookup func(string) (string, bool)) *Config {
	get := func(key string, def ...string) string {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		if (!ok || v == "") && len(def) > 0 {
			return def[0]
		}
		return v
	}

	cfg := &Config{
		AppEnv: get("APP_ENV", "development"),
		Port:   get("PORT", defaultPort),

		MongoURI:      get("MONGODB_URI"),
		MongoUsername: get("MONGODB_USERNAME"),
		MongoPassword: get("MONGODB_PASSWORD"),
		MongoHost:     get("MONGODB_HOST", defaultMongoHost),
		MongoPort:     get("MONGODB_PORT", defaultMongoPort),
		MongoDatabase: get("MONGODB_DATABASE"),

		JWTSecret:        get("JWT_SECRET"),
		JWTRefreshSecret: get("JWT_REFRESH_SECRET"),
		GoogleClientID:   get("GOOGLE_CLIENT_ID"),

		MidtransServerKey: get("MIDTRANS_SERVER_KEY"),
		MidtransUseProd:   parseBool(get("MIDTRANS_USE_PROD")),

		CORSOrigins:           splitList(get("CORS_ORIGINS", "*")),
		TrustedProxies:        splitList(get("TRUSTED_PROXIES")),
		TokenBlacklistTTLDays: parseInt(get("TOKEN_BLACKLIST_TTL_DAYS"), 7),

		RedisURL:       get("REDIS_URL"),
		MetricsEnabled: parseBool(get("METRICS_ENABLED", "true")),

		AdminEmail:    get("ADMIN_EMAIL"),
		AdminPassword: get("ADMIN_PASSWORD"),
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = databaseFromURI(cfg.MongoURI)
	}
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// DATABASE URI
// =======================

// MongoConnectionURI prefers MONGODB_URI and otherwise assembles one from the parts.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%s", c.MongoHost, c.MongoPort),
		Path:   "/" + c.MongoDatabase,
	}
	if c.MongoUsername != "" {
		u.User = url.UserPassword(c.MongoUsername, c.MongoPassword)
		u.RawQuery = "authSource=admin"
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func databaseFromURI(uri string) string {
	if uri == "" {
		return defaultMongoDatabase
	}
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultMongoDatabase
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseInt(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return def
}
