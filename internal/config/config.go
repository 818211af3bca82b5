package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Guard     GuardConfig
	Wallet    WalletConfig
	Chain     ChainConfig
	Contracts ContractsConfig
	Events    EventsConfig
	Sessions  SessionsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session token and credential parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// GuardConfig defines route guard behavior.
type GuardConfig struct {
	DenialDisplay time.Duration
}

// WalletConfig defines wallet session policies.
type WalletConfig struct {
	LogoutOnAccountChange bool
}

// ChainConfig defines how the service reaches the Ethereum node.
type ChainConfig struct {
	RPCURL               string
	SupportedChainIDs    []int64
	AccountsPollInterval time.Duration
	ReceiptPollInterval  time.Duration
	TxTimeout            time.Duration
	GasBufferPercent     int64
	BalanceBufferPercent int64
	RecentBlocks         int
	ExpectedAdmin        string
}

// ContractsConfig holds deployed contract addresses.
type ContractsConfig struct {
	University       string
	StudentRegistry  string
	EmployeeRegistry string
	Scholarship      string
	FeePayment       string
	Payroll          string
	FundAllocation   string
	Payments         string
}

// EventsConfig configures the external event publisher.
type EventsConfig struct {
	NATSURL     string
	TopicPrefix string
}

// SessionsConfig controls client session lifetime.
type SessionsConfig struct {
	IdleTTL      time.Duration
	ReapInterval time.Duration
}

const (
	defaultStudentRegistryAddress = "0x16E6f1F0785B2387A7E89a7113101AEFC5c57b7A"
	defaultScholarshipAddress     = "0x8C38686c83a2c0910D1111e9e80e4B2fd552E908"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	chainIDs, err := getEnvAsInt64List("CHAIN_SUPPORTED_IDS", []int64{1337, 5777, 5, 11155111})
	if err != nil {
		return nil, fmt.Errorf("invalid CHAIN_SUPPORTED_IDS: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	studentRegistry := getEnv("CONTRACT_STUDENT_REGISTRY_ADDRESS", defaultStudentRegistryAddress)

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "unifin-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 0),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		Guard: GuardConfig{
			DenialDisplay: time.Duration(getEnvAsInt("GUARD_DENIAL_DISPLAY_MS", 3000)) * time.Millisecond,
		},
		Wallet: WalletConfig{
			LogoutOnAccountChange: getEnvAsBool("WALLET_LOGOUT_ON_ACCOUNT_CHANGE", false),
		},
		Chain: ChainConfig{
			RPCURL:               getEnv("CHAIN_RPC_URL", "http://127.0.0.1:7545"),
			SupportedChainIDs:    chainIDs,
			AccountsPollInterval: getEnvAsDuration("CHAIN_ACCOUNTS_POLL_INTERVAL", 2*time.Second),
			ReceiptPollInterval:  getEnvAsDuration("CHAIN_RECEIPT_POLL_INTERVAL", time.Second),
			TxTimeout:            getEnvAsDuration("CHAIN_TX_TIMEOUT", 0),
			GasBufferPercent:     int64(getEnvAsInt("CHAIN_GAS_BUFFER_PERCENT", 20)),
			BalanceBufferPercent: int64(getEnvAsInt("CHAIN_BALANCE_BUFFER_PERCENT", 10)),
			RecentBlocks:         getEnvAsInt("CHAIN_RECENT_BLOCKS", 10),
			ExpectedAdmin:        getEnv("CHAIN_EXPECTED_ADMIN", ""),
		},
		Contracts: ContractsConfig{
			University:       getEnv("CONTRACT_UNIVERSITY_ADDRESS", studentRegistry),
			StudentRegistry:  studentRegistry,
			EmployeeRegistry: os.Getenv("CONTRACT_EMPLOYEE_REGISTRY_ADDRESS"),
			Scholarship:      getEnv("CONTRACT_SCHOLARSHIP_ADDRESS", defaultScholarshipAddress),
			FeePayment:       os.Getenv("CONTRACT_FEE_PAYMENT_ADDRESS"),
			Payroll:          os.Getenv("CONTRACT_PAYROLL_ADDRESS"),
			FundAllocation:   os.Getenv("CONTRACT_FUND_ALLOCATION_ADDRESS"),
			Payments:         os.Getenv("CONTRACT_PAYMENTS_ADDRESS"),
		},
		Events: EventsConfig{
			NATSURL:     os.Getenv("EVENTS_NATS_URL"),
			TopicPrefix: getEnv("EVENTS_TOPIC_PREFIX", "unifin"),
		},
		Sessions: SessionsConfig{
			IdleTTL:      getEnvAsDuration("SESSION_IDLE_TTL", 2*time.Hour),
			ReapInterval: getEnvAsDuration("SESSION_REAP_INTERVAL", time.Minute),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt64List(key string, fallback []int64) ([]int64, error) {
	val := os.Getenv(key)
	if strings.TrimSpace(val) == "" {
		return fallback, nil
	}
	parts := strings.Split(val, ",")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
