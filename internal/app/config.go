package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/metinatakli/seat-reservation-engine/internal/projection"
	"github.com/metinatakli/seat-reservation-engine/internal/reaper"
	"github.com/metinatakli/seat-reservation-engine/internal/reservation"
	"github.com/shopspring/decimal"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port             int
	Env              string
	Store            string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	Kafka            KafkaConfig
	Stripe           StripeConfig
	Booking          BookingConfig
	Reaper           ReaperConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
	Migrate      bool
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessUrl    string
	FailureUrl    string
}

type BookingConfig struct {
	HoldTTL          time.Duration
	UnpaidGrace      time.Duration
	DefaultSeatPrice decimal.Decimal
	SeatMapTTL       time.Duration
}

type ReaperConfig struct {
	Enabled     bool
	Concurrency int
	Intervals   reaper.Intervals
}

// ParseFlags reads the configuration from args. The second return value
// reports whether -version was given.
func ParseFlags(name string, args []string) (Config, bool, error) {
	var (
		cfg          Config
		brokers      string
		defaultPrice string
	)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", 3000, "server port")
	fs.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.Store, "store", StorePostgres, "Reservation store (postgres|memory)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	fs.BoolVar(&cfg.DB.Migrate, "db-migrate", false, "Apply pending database migrations on startup")

	fs.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	fs.StringVar(&brokers, "kafka-brokers", "", "Comma separated Kafka brokers for booking events")
	fs.StringVar(&cfg.Kafka.Topic, "kafka-topic", "booking-events", "Kafka topic for booking events")

	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")
	fs.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", "", "Stripe webhook secret")
	fs.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", "https://example.com/success.html", "Stripe payment success page")
	fs.StringVar(&cfg.Stripe.FailureUrl, "stripe-failure-url", "https://example.com/failure.html", "Stripe payment failure page")

	fs.DurationVar(&cfg.Booking.HoldTTL, "hold-ttl", reservation.DefaultHoldTTL, "How long a seat hold lives")
	fs.DurationVar(&cfg.Booking.UnpaidGrace, "unpaid-grace", reaper.DefaultUnpaidGrace, "How long a booking may stay unpaid")
	fs.StringVar(&defaultPrice, "default-seat-price", reservation.DefaultSeatPrice.String(), "Price of seats whose tier is not priced")
	fs.DurationVar(&cfg.Booking.SeatMapTTL, "seat-map-ttl", projection.DefaultTTL, "Upper bound on the seat map cache lifetime")

	fs.BoolVar(&cfg.Reaper.Enabled, "reaper-enabled", false, "Run the expiry reaper inside the API process")
	fs.IntVar(&cfg.Reaper.Concurrency, "reaper-concurrency", reaper.DefaultConcurrency, "Units swept in parallel per sweep")
	fs.DurationVar(&cfg.Reaper.Intervals.Holds, "reaper-holds-interval", reaper.DefaultHoldSweepInterval, "Expired hold sweep interval")
	fs.DurationVar(&cfg.Reaper.Intervals.Bookings, "reaper-bookings-interval", reaper.DefaultBookingSweepInterval, "Unpaid booking sweep interval")
	fs.DurationVar(&cfg.Reaper.Intervals.Schedules, "reaper-schedules-interval", reaper.DefaultScheduleSweepInterval, "Ended schedule sweep interval")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	if brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}

	cfg.Booking.DefaultSeatPrice, err = decimal.NewFromString(defaultPrice)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid -default-seat-price: %w", err)
	}

	if *displayVersion {
		return cfg, true, nil
	}

	return cfg, false, cfg.validate()
}

func (c Config) validate() error {
	var errs []error

	switch c.Store {
	case StorePostgres:
		if c.DB.DSN == "" {
			errs = append(errs, errors.New("-db-dsn is required with the postgres store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}

	if c.Booking.HoldTTL <= 0 {
		errs = append(errs, errors.New("-hold-ttl must be positive"))
	}

	if c.Booking.UnpaidGrace <= 0 {
		errs = append(errs, errors.New("-unpaid-grace must be positive"))
	}

	if c.Booking.DefaultSeatPrice.IsNegative() {
		errs = append(errs, errors.New("-default-seat-price must not be negative"))
	}

	if c.Reaper.Intervals.Holds <= 0 || c.Reaper.Intervals.Bookings <= 0 || c.Reaper.Intervals.Schedules <= 0 {
		errs = append(errs, errors.New("reaper intervals must be positive"))
	}

	return errors.Join(errs...)
}
