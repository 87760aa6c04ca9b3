package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

// BookingConfig carries the scheduling policy: how slots are quantized, how
// long a seating runs, how far ahead guests may book and how far forward the
// next-available search scans.
type BookingConfig struct {
	TimeZone          string
	SlotInterval      time.Duration
	SlotDuration      time.Duration
	SearchHorizon     time.Duration
	BookingWindowDays int
	PendingTTL        time.Duration
	MaxPartySize      int
	RateLimitPerMin   int
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPort, err := envInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: serverHost,
		Port: serverPort,
	}

	postgresHost := os.Getenv("POSTGRES_HOST")
	if postgresHost == "" {
		postgresHost = "localhost"
	}

	postgresPort, err := envInt("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	postgresSSLMode := os.Getenv("POSTGRES_SSLMODE")
	if postgresSSLMode == "" {
		postgresSSLMode = "disable"
	}

	postgresCfg := PostgresConfig{
		User:     postgresUser,
		Password: postgresPassword,
		Name:     postgresDB,
		Host:     postgresHost,
		Port:     postgresPort,
		SSLMode:  postgresSSLMode,
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisCfg := RedisConfig{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	}

	bookingCfg, err := bookingFromEnv()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Config{
		Server:   serverCfg,
		Postgres: postgresCfg,
		Redis:    redisCfg,
		Booking:  bookingCfg,
	}, nil
}

func bookingFromEnv() (BookingConfig, error) {
	tz := os.Getenv("VENUE_TIMEZONE")
	if tz == "" {
		tz = "America/Chicago"
	}

	slotIntervalMin, err := envInt("SLOT_INTERVAL_MIN", 15)
	if err != nil {
		return BookingConfig{}, err
	}

	slotDurationMin, err := envInt("SLOT_DURATION_MIN", 90)
	if err != nil {
		return BookingConfig{}, err
	}

	horizonDays, err := envInt("SEARCH_HORIZON_DAYS", 7)
	if err != nil {
		return BookingConfig{}, err
	}

	windowDays, err := envInt("BOOKING_WINDOW_DAYS", 60)
	if err != nil {
		return BookingConfig{}, err
	}

	pendingTTLMin, err := envInt("PENDING_TTL_MIN", 15)
	if err != nil {
		return BookingConfig{}, err
	}

	maxParty, err := envInt("MAX_PARTY_SIZE", 12)
	if err != nil {
		return BookingConfig{}, err
	}

	ratePerMin, err := envInt("RESERVATION_RATE_LIMIT_PER_MIN", 10)
	if err != nil {
		return BookingConfig{}, err
	}

	return BookingConfig{
		TimeZone:          tz,
		SlotInterval:      time.Duration(slotIntervalMin) * time.Minute,
		SlotDuration:      time.Duration(slotDurationMin) * time.Minute,
		SearchHorizon:     time.Duration(horizonDays) * 24 * time.Hour,
		BookingWindowDays: windowDays,
		PendingTTL:        time.Duration(pendingTTLMin) * time.Minute,
		MaxPartySize:      maxParty,
		RateLimitPerMin:   ratePerMin,
	}, nil
}

func envInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return v, nil
}
