package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fooddelivery/internal/pkg/errs"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	defaultHTTPPort = "8080"
)

type Config struct {
	HTTPPort string
	AppEnv   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SessionStore  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaHost               string
	KafkaNotificationsTopic string

	PaymentSessionTTL    time.Duration
	SessionPurgeSchedule string
	MerchantVPA          string
	MerchantName         string
}

// IsDevelopment reports whether internal error details may be exposed to clients.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// KafkaBrokers splits the comma separated KAFKA_HOST value.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// DSN returns the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// LoadConfig reads the configuration through getenv. Empty optional values fall
// back to defaults; malformed values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:                getenv("HTTP_PORT"),
		AppEnv:                  getenv("APP_ENV"),
		DBHost:                  getenv("DB_HOST"),
		DBPort:                  getenv("DB_PORT"),
		DBUser:                  getenv("DB_USER"),
		DBPassword:              getenv("DB_PASSWORD"),
		DBName:                  getenv("DB_NAME"),
		DBSslMode:               getenv("DB_SSLMODE"),
		SessionStore:            strings.ToLower(getenv("SESSION_STORE")),
		RedisAddr:               getenv("REDIS_ADDR"),
		RedisPassword:           getenv("REDIS_PASSWORD"),
		KafkaHost:               getenv("KAFKA_HOST"),
		KafkaNotificationsTopic: getenv("KAFKA_NOTIFICATIONS_TOPIC"),
		SessionPurgeSchedule:    getenv("SESSION_PURGE_SCHEDULE"),
		MerchantVPA:             getenv("MERCHANT_VPA"),
		MerchantName:            getenv("MERCHANT_NAME"),
	}
	if config.HTTPPort == "" {
		config.HTTPPort = defaultHTTPPort
	}
	if config.DBSslMode == "" {
		config.DBSslMode = "disable"
	}
	if config.SessionStore == "" {
		config.SessionStore = SessionStoreMemory
	}

	var sessionStoreErr error
	switch config.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if config.RedisAddr == "" {
			sessionStoreErr = errs.NewValueIsRequiredError("REDIS_ADDR")
		}
	default:
		sessionStoreErr = errs.NewValueIsInvalidErrorWithCause(
			"SESSION_STORE", fmt.Errorf("%q is neither %s nor %s", config.SessionStore, SessionStoreMemory, SessionStoreRedis))
	}

	var redisDBErr error
	if raw := getenv("REDIS_DB"); raw != "" {
		config.RedisDB, redisDBErr = strconv.Atoi(raw)
		if redisDBErr != nil {
			redisDBErr = errs.NewValueIsInvalidErrorWithCause("REDIS_DB", redisDBErr)
		}
	}

	var ttlErr error
	if raw := getenv("PAYMENT_SESSION_TTL"); raw != "" {
		config.PaymentSessionTTL, ttlErr = time.ParseDuration(raw)
		if ttlErr == nil && config.PaymentSessionTTL <= 0 {
			ttlErr = errors.New("must be positive")
		}
		if ttlErr != nil {
			ttlErr = errs.NewValueIsInvalidErrorWithCause("PAYMENT_SESSION_TTL", ttlErr)
		}
	}

	var kafkaErr error
	if config.KafkaHost != "" && config.KafkaNotificationsTopic == "" {
		kafkaErr = errs.NewValueIsRequiredError("KAFKA_NOTIFICATIONS_TOPIC")
	}

	if err := errors.Join(sessionStoreErr, redisDBErr, ttlErr, kafkaErr); err != nil {
		return Config{}, err
	}
	return config, nil
}
