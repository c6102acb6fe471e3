package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Tables struct {
	Schema string
	Order  string
	Item   string
}

type Postgres struct {
	Host       string
	Port       string
	DB         string
	User       string
	Password   string
	SSLMode    string
	Migrate    bool
	TraceLevel string
}

type Cache struct {
	Backend       string
	Cap           int
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type Remote struct {
	UserURL    string
	ProductURL string
	Timeout    time.Duration
}

// Breaker is the policy of one named collaborator breaker.
type Breaker struct {
	WindowSize  uint32
	MinCalls    uint32
	FailureRate float64
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Notify struct {
	Transport    string
	URL          string
	Workers      int
	Queue        int
	Timeout      time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	AMQPURL      string
	AMQPQueue    string
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	HTTPAddr      string
	DefaultLocale string

	Pg      Postgres
	Tables  Tables
	Cache   Cache
	Remote  Remote
	Breaker Breaker
	Notify  Notify
	Retry   Retry
	Log     Log
}

const (
	CacheRedis  = "redis"
	CacheMemory = "memory"

	NotifyHTTP  = "http"
	NotifyKafka = "kafka"
	NotifyAMQP  = "amqp"
	NotifyNone  = "none"
)

// Load fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:      envDefault("HTTP_ADDR", ":8080"),
		DefaultLocale: envDefault("DEFAULT_LOCALE", "en"),

		Pg: Postgres{
			Host:       strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:       strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:         strings.TrimSpace(os.Getenv("PG_DB")),
			User:       strings.TrimSpace(os.Getenv("PG_USER")),
			Password:   strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:    strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
			Migrate:    envBool("PG_MIGRATE", true),
			TraceLevel: envDefault("PG_TRACE_LEVEL", "warn"),
		},

		Tables: Tables{
			Schema: envDefault("DB_SCHEMA", "ordering"),
			Order:  envDefault("TBL_ORDER", "orders"),
			Item:   envDefault("TBL_ITEM", "order_items"),
		},

		Cache: Cache{
			Backend:       strings.ToLower(envDefault("CACHE_BACKEND", CacheRedis)),
			Cap:           envInt("CACHE_CAP", 10000),
			TTL:           envDurationMS("CACHE_TTL", 24*time.Hour),
			RedisAddr:     envDefault("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       envInt("REDIS_DB", 0),
		},

		Remote: Remote{
			UserURL:    strings.TrimSpace(os.Getenv("USER_SERVICE_URL")),
			ProductURL: strings.TrimSpace(os.Getenv("PRODUCT_SERVICE_URL")),
			Timeout:    envDurationMS("REMOTE_TIMEOUT", 3*time.Second),
		},

		Breaker: Breaker{
			WindowSize:  envUint32("BREAKER_WINDOW", 10),
			MinCalls:    envUint32("BREAKER_MINCALLS", 5),
			FailureRate: envFloat64("BREAKER_FAILURERATE", 50),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 3),
		},

		Notify: Notify{
			Transport:    strings.ToLower(envDefault("NOTIFY_TRANSPORT", NotifyHTTP)),
			URL:          strings.TrimSpace(os.Getenv("NOTIFICATION_SERVICE_URL")),
			Workers:      envInt("NOTIFY_WORKERS", 4),
			Queue:        envInt("NOTIFY_QUEUE", 150),
			Timeout:      envDurationMS("NOTIFY_TIMEOUT", 5*time.Second),
			KafkaBrokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			KafkaTopic:   envDefault("KAFKA_TOPIC", "orders.created"),
			AMQPURL:      strings.TrimSpace(os.Getenv("AMQP_URL")),
			AMQPQueue:    envDefault("AMQP_QUEUE", "orders.created"),
		},

		Retry: Retry{
			Attempts:     envInt("RETRY_ATTEMPTS", 5),
			Base:         envDurationMS("RETRY_BASE", 200*time.Millisecond),
			Max:          envDurationMS("RETRY_MAX", 5*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},

		Log: Log{
			Level:  envDefault("LOG_LEVEL", "info"),
			Format: envDefault("LOG_FORMAT", "json"),
		},
	}

	// Validate required envs and basic sanity.
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"PG_HOST":             c.Pg.Host,
		"PG_DB":               c.Pg.DB,
		"PG_USER":             c.Pg.User,
		"PG_PASSWORD":         c.Pg.Password,
		"USER_SERVICE_URL":    c.Remote.UserURL,
		"PRODUCT_SERVICE_URL": c.Remote.ProductURL,
	}
	switch c.Notify.Transport {
	case NotifyHTTP:
		req["NOTIFICATION_SERVICE_URL"] = c.Notify.URL
	case NotifyKafka:
		req["KAFKA_BROKERS"] = strings.Join(c.Notify.KafkaBrokers, ",")
	case NotifyAMQP:
		req["AMQP_URL"] = c.Notify.AMQPURL
	case NotifyNone:
	default:
		return &invalidEnvError{Key: "NOTIFY_TRANSPORT", Value: c.Notify.Transport}
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	if c.Cache.Backend != CacheRedis && c.Cache.Backend != CacheMemory {
		return &invalidEnvError{Key: "CACHE_BACKEND", Value: c.Cache.Backend}
	}
	if c.Cache.Cap <= 0 {
		log.Printf("CACHE_CAP is %d, adjusting to 1", c.Cache.Cap)
	}
	if c.Breaker.FailureRate <= 0 || c.Breaker.FailureRate > 100 {
		return &invalidEnvError{Key: "BREAKER_FAILURERATE", Value: strconv.FormatFloat(c.Breaker.FailureRate, 'f', -1, 64)}
	}
	if c.Breaker.MinCalls > c.Breaker.WindowSize {
		log.Printf("BREAKER_MINCALLS (%d) > BREAKER_WINDOW (%d), adjusting min calls to window", c.Breaker.MinCalls, c.Breaker.WindowSize)
	}
	if c.Retry.Attempts < 0 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 0", c.Retry.Attempts)
	}
	if c.Retry.Base <= 0 {
		log.Printf("RETRY_BASE is %v, adjusting to 100ms", c.Retry.Base)
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

type invalidEnvError struct{ Key, Value string }

func (e *invalidEnvError) Error() string {
	return "invalid " + e.Key + "=" + strconv.Quote(e.Value)
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %t: %v", k, v, def, err)
		return def
	}
	return b
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "24h").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
