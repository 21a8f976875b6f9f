package config

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	// AccessTokenTTL is the fixed lifetime of issued tokens.
	AccessTokenTTL = time.Hour
)

type Config struct {
	Environment     string
	ServiceName     string
	ServerPort      string
	ServerHost      string
	ShutdownTimeout time.Duration

	LogLevel               string
	LogFormat              string
	LogCorrelationIDHeader string

	StoreDriver     string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DatabaseURL     string
	MigrationsPath  string

	JWTSecret      string
	JWTAlgorithm   string
	JWTIssuer      string
	JWTAudience    string
	AccessTokenTTL time.Duration
	BcryptCost     int

	RabbitMQ        RabbitMQConfig
	ConsumerEnabled bool

	RedisURL               string
	RateLimitEnabled       bool
	RateLimitIPAttempts    int
	RateLimitIPWindow      time.Duration
	RateLimitUserAttempts  int
	RateLimitUserWindow    time.Duration
	RateLimitBlockDuration time.Duration

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP
	// headers are believed.
	TrustedProxies []netip.Prefix

	// ExposeErrorDetails adds the underlying error text to 500 responses.
	ExposeErrorDetails bool
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
	Prefetch int
	Queues   QueueConfig
}

type QueueConfig struct {
	EmployeeCreated string
	EmployeeUpdated string
	EmployeeDeleted string
	ManagerCreated  string
	ManagerUpdated  string
	ManagerDeleted  string
	UserLogin       string
}

// All lists every configured queue name.
func (q QueueConfig) All() []string {
	return []string{
		q.EmployeeCreated,
		q.EmployeeUpdated,
		q.EmployeeDeleted,
		q.ManagerCreated,
		q.ManagerUpdated,
		q.ManagerDeleted,
		q.UserLogin,
	}
}

// URL builds the amqp:// dial address.
func (r RabbitMQConfig) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(r.User, r.Password),
		Host:   net.JoinHostPort(r.Host, strconv.Itoa(r.Port)),
		Path:   "/" + strings.TrimPrefix(r.VHost, "/"),
	}
	if r.VHost == "/" || r.VHost == "" {
		u.Path = "/"
	}
	return u.String()
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

var (
	ErrMissingJWTSecret    = errors.New("JWT_SECRET is required")
	ErrInvalidJWTAlgorithm = errors.New("invalid JWT algorithm")
	ErrInsecureCORS        = errors.New("CORS_ALLOWED_ORIGINS=* cannot be combined with CORS_ALLOW_CREDENTIALS=true")
	ErrInvalidTrustedProxy = errors.New("TRUSTED_PROXIES must be a comma separated list of IPs or CIDRs")
	ErrInvalidStoreDriver  = errors.New("STORE_DRIVER must be one of mongo, postgres, memory")
	ErrMissingDatabaseURL  = errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
	ErrMissingMongoURI     = errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
	ErrMissingRedisURL     = errors.New("REDIS_URL is required when RATE_LIMIT_ENABLED=true")
	ErrInvalidPrefetch     = errors.New("RABBITMQ_PREFETCH must be positive")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	env := getEnvOrDefault("ENV", "development")

	cfg := &Config{
		Environment:     env,
		ServiceName:     getEnvOrDefault("SERVICE_NAME", "staff-auth-service"),
		ServerPort:      getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost:      getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		ShutdownTimeout: getEnvOrDefaultDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		LogCorrelationIDHeader: getEnvOrDefault("LOG_CORRELATION_ID_HEADER", "X-Correlation-ID"),

		StoreDriver:     strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreMongo)),
		MongoURI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnvOrDefault("MONGO_DATABASE", "AuthServiceDb"),
		MongoCollection: getEnvOrDefault("MONGO_COLLECTION", "employees"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  getEnvOrDefault("MIGRATIONS_PATH", "file://migrations"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTAlgorithm:   getEnvOrDefault("JWT_ALG", "HS256"),
		JWTIssuer:      getEnvOrDefault("JWT_ISSUER", "staff-auth-service"),
		JWTAudience:    getEnvOrDefault("JWT_AUDIENCE", "staff-auth-clients"),
		AccessTokenTTL: AccessTokenTTL,
		BcryptCost:     getEnvOrDefaultInt("BCRYPT_COST", 10),

		RabbitMQ: RabbitMQConfig{
			Enabled:  getEnvOrDefaultBool("RABBITMQ_ENABLED", true),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefaultInt("RABBITMQ_PORT", 5672),
			User:     getEnvOrDefault("RABBITMQ_USER", "guest"),
			Password: getEnvOrDefault("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnvOrDefault("RABBITMQ_VHOST", "/"),
			Prefetch: getEnvOrDefaultInt("RABBITMQ_PREFETCH", 10),
			Queues: QueueConfig{
				EmployeeCreated: getEnvOrDefault("RABBITMQ_QUEUE_EMPLOYEE_CREATED", "employee.created"),
				EmployeeUpdated: getEnvOrDefault("RABBITMQ_QUEUE_EMPLOYEE_UPDATED", "employee.updated"),
				EmployeeDeleted: getEnvOrDefault("RABBITMQ_QUEUE_EMPLOYEE_DELETED", "employee.deleted"),
				ManagerCreated:  getEnvOrDefault("RABBITMQ_QUEUE_MANAGER_CREATED", "manager.created"),
				ManagerUpdated:  getEnvOrDefault("RABBITMQ_QUEUE_MANAGER_UPDATED", "manager.updated"),
				ManagerDeleted:  getEnvOrDefault("RABBITMQ_QUEUE_MANAGER_DELETED", "manager.deleted"),
				UserLogin:       getEnvOrDefault("RABBITMQ_QUEUE_USER_LOGIN", "user.login"),
			},
		},
		ConsumerEnabled: getEnvOrDefaultBool("CONSUMER_ENABLED", false),

		RedisURL:               os.Getenv("REDIS_URL"),
		RateLimitEnabled:       getEnvOrDefaultBool("RATE_LIMIT_ENABLED", false),
		RateLimitIPAttempts:    getEnvOrDefaultInt("RATE_LIMIT_IP_ATTEMPTS", 5),
		RateLimitUserAttempts:  getEnvOrDefaultInt("RATE_LIMIT_USER_ATTEMPTS", 10),
		RateLimitIPWindow:      getEnvOrDefaultDuration("RATE_LIMIT_IP_WINDOW", 15*time.Minute),
		RateLimitUserWindow:    getEnvOrDefaultDuration("RATE_LIMIT_USER_WINDOW", time.Hour),
		RateLimitBlockDuration: getEnvOrDefaultDuration("RATE_LIMIT_BLOCK_DURATION", 30*time.Minute),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),

		ExposeErrorDetails: getEnvOrDefaultBool("EXPOSE_ERROR_DETAILS", env == "development"),
	}

	if cfg.JWTAlgorithm != "HS256" {
		return nil, ErrInvalidJWTAlgorithm
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	if cfg.CORSAllowCredentials && containsString(cfg.CORSAllowedOrigins, "*") {
		return nil, ErrInsecureCORS
	}

	trusted, err := parseTrustedProxies(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return nil, err
	}
	cfg.TrustedProxies = trusted

	switch cfg.StoreDriver {
	case StoreMongo:
		if cfg.MongoURI == "" {
			return nil, ErrMissingMongoURI
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, ErrMissingDatabaseURL
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidStoreDriver, cfg.StoreDriver)
	}

	if cfg.RateLimitEnabled && cfg.RedisURL == "" {
		return nil, ErrMissingRedisURL
	}
	if cfg.RabbitMQ.Prefetch <= 0 {
		return nil, ErrInvalidPrefetch
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// getEnvOrDefaultDuration reads plain integers as seconds and anything else
// as a Go duration.
func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return d
	}
	return defaultValue
}

// parseTrustedProxies accepts CIDRs and bare addresses; a bare address
// becomes a single-host prefix.
func parseTrustedProxies(value string) ([]netip.Prefix, error) {
	var res []netip.Prefix
	for _, p := range parseAllowedOrigins(value) {
		if strings.Contains(p, "/") {
			prefix, err := netip.ParsePrefix(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidTrustedProxy, p)
			}
			res = append(res, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTrustedProxy, p)
		}
		addr = addr.Unmap()
		res = append(res, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return res, nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func parseAllowedOrigins(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
