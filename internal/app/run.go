package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/events"
	"github.com/metinatakli/seat-reservation-engine/internal/payment"
	"github.com/metinatakli/seat-reservation-engine/internal/projection"
	"github.com/metinatakli/seat-reservation-engine/internal/reaper"
	"github.com/metinatakli/seat-reservation-engine/internal/repository"
	"github.com/metinatakli/seat-reservation-engine/internal/reservation"
	appvalidator "github.com/metinatakli/seat-reservation-engine/internal/validator"
	"github.com/metinatakli/seat-reservation-engine/migrations"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
)

// infrastructure holds the resources shared by the API and the reaper
// processes. Optional parts are nil when not configured.
type infrastructure struct {
	store     domain.Store
	db        *pgxpool.Pool
	redis     *redis.Client
	seatMap   *projection.SeatMap
	publisher events.Publisher
	kafka     *events.KafkaPublisher
}

func newInfrastructure(cfg Config, logger *slog.Logger, clk clockwork.Clock) (*infrastructure, error) {
	infra := &infrastructure{publisher: events.NoopPublisher{}}

	switch cfg.Store {
	case StoreMemory:
		store := repository.NewMemoryStore()
		if err := repository.SeedDemo(store, clk.Now()); err != nil {
			return nil, err
		}
		logger.Warn("using the in-memory store with demo data, reservations are lost on restart")
		infra.store = store
	default:
		if cfg.DB.Migrate {
			if err := MigrateDatabase(cfg.DB.DSN); err != nil {
				return nil, err
			}
			logger.Info("database migrations applied")
		}

		db, err := NewDatabasePool(cfg)
		if err != nil {
			return nil, err
		}
		infra.db = db
		infra.store = repository.NewPostgresStore(db)
	}

	if cfg.Redis.URL != "" {
		redisClient, err := NewRedisClient(cfg)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.redis = redisClient
		infra.seatMap = projection.NewSeatMap(redisClient, cfg.Booking.SeatMapTTL)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		infra.kafka = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		infra.publisher = infra.kafka
	}

	return infra, nil
}

func (i *infrastructure) Close() error {
	var errs []error

	if i.kafka != nil {
		errs = append(errs, i.kafka.Close())
	}
	if i.redis != nil {
		errs = append(errs, i.redis.Close())
	}
	if i.db != nil {
		i.db.Close()
	}

	return errors.Join(errs...)
}

func (i *infrastructure) engine(cfg Config, logger *slog.Logger, clk clockwork.Clock) *reservation.Engine {
	opts := []reservation.Option{
		reservation.WithHoldTTL(cfg.Booking.HoldTTL),
		reservation.WithDefaultSeatPrice(cfg.Booking.DefaultSeatPrice),
		reservation.WithPublisher(i.publisher),
	}

	if i.seatMap != nil {
		opts = append(opts, reservation.WithProjector(i.seatMap))
	}

	return reservation.New(i.store, clk, logger.With("component", "engine"), opts...)
}

func (i *infrastructure) reaper(cfg Config, logger *slog.Logger, clk clockwork.Clock) *reaper.Reaper {
	opts := []reaper.Option{
		reaper.WithUnpaidGrace(cfg.Booking.UnpaidGrace),
		reaper.WithConcurrency(cfg.Reaper.Concurrency),
		reaper.WithPublisher(i.publisher),
	}

	if i.seatMap != nil {
		opts = append(opts, reaper.WithInvalidator(i.seatMap))
	}

	return reaper.New(i.store, clk, logger.With("component", "reaper"), opts...)
}

func MigrateDatabase(dsn string) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	db := pgxstd.OpenDB(*config)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("pgx migration driver error: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migration source error: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx", driver)
	if err != nil {
		return fmt.Errorf("migrate.New error: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Run starts the reservation API.
func Run(args []string) error {
	cfg, displayVersion, err := ParseFlags("api", args)
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := newLogger()

	tel, err := startTelemetry(context.Background(), cfg, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Error("failed to flush telemetry", "error", err)
		}
	}()

	logger = tel.Logger(logger)

	clk := clockwork.NewRealClock()

	infra, err := newInfrastructure(cfg, logger, clk)
	if err != nil {
		return err
	}
	defer infra.Close()

	sweeper := infra.reaper(cfg, logger, clk)

	var paymentProvider domain.PaymentProvider = payment.NewMockPaymentProvider(cfg.Stripe.SuccessUrl)
	if cfg.Stripe.SecretKey != "" {
		paymentProvider = payment.NewStripePaymentProvider(cfg.Stripe.FailureUrl, cfg.Stripe.SuccessUrl)
	}

	var webhookParser WebhookParser
	if cfg.Stripe.WebhookSecret != "" {
		webhookParser = payment.NewWebhookParser(cfg.Stripe.WebhookSecret)
	}

	var seatMap SeatMapCache
	if infra.seatMap != nil {
		seatMap = infra.seatMap
	}

	app := NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		NewSessionManager(infra.redis),
		infra.engine(cfg, logger, clk),
		seatMap,
		sweeper,
		paymentProvider,
		webhookParser,
	)

	var background func(ctx context.Context)
	if cfg.Reaper.Enabled {
		background = func(ctx context.Context) {
			scheduler := reaper.NewScheduler(clk, logger.With("component", "scheduler"))
			sweeper.Schedule(scheduler, cfg.Reaper.Intervals)

			if err := scheduler.Run(ctx); err != nil {
				logger.Error("reaper scheduler stopped", "error", err)
			}
		}
	}

	return app.Serve(background)
}

// RunReaper runs the expiry reaper as a standalone process.
func RunReaper(args []string) error {
	cfg, displayVersion, err := ParseFlags("reaper", args)
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	logger := newLogger()

	tel, err := startTelemetry(context.Background(), cfg, "seat-reservation-reaper")
	if err != nil {
		return err
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Error("failed to flush telemetry", "error", err)
		}
	}()

	logger = tel.Logger(logger)

	clk := clockwork.NewRealClock()

	infra, err := newInfrastructure(cfg, logger, clk)
	if err != nil {
		return err
	}
	defer infra.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := reaper.NewScheduler(clk, logger.With("component", "scheduler"))
	infra.reaper(cfg, logger, clk).Schedule(scheduler, cfg.Reaper.Intervals)

	logger.Info("starting reaper",
		"env", cfg.Env,
		"holds", cfg.Reaper.Intervals.Holds,
		"bookings", cfg.Reaper.Intervals.Bookings,
		"schedules", cfg.Reaper.Intervals.Schedules)

	err = scheduler.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("stopped reaper")

	return nil
}
