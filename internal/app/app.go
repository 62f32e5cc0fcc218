package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/seat-reservation-engine/internal/availability"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/payment"
	"github.com/metinatakli/seat-reservation-engine/internal/reaper"
	"github.com/metinatakli/seat-reservation-engine/internal/reservation"
	"github.com/metinatakli/seat-reservation-engine/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

const serviceName = "seat-reservation-api"

var (
	version = vcs.Version()
)

type Engine interface {
	AcquireHold(ctx context.Context, req reservation.HoldRequest) (*reservation.HoldGrant, error)
	ReleaseHold(ctx context.Context, req reservation.HoldRequest) error
	CommitBooking(ctx context.Context, req reservation.CommitRequest) (*domain.Booking, error)
	ListAvailableSeats(ctx context.Context, scheduleID int) ([]domain.Seat, error)
	SeatMap(ctx context.Context, scheduleID int) (availability.Snapshot, error)
	RecordPayment(ctx context.Context, bookingID uuid.UUID, status domain.PaymentStatus) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID, holderID int) (*domain.Booking, error)
	ListBookings(ctx context.Context, holderID int, pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error)
}

type SeatMapCache interface {
	Load(ctx context.Context, scheduleID int) (*availability.Snapshot, error)
}

type Sweeper interface {
	RunOnce(ctx context.Context) (reaper.SweepReport, error)
}

type WebhookParser interface {
	Parse(payload []byte, signatureHeader string) (*payment.Outcome, error)
}

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager

	engine          Engine
	seatMap         SeatMapCache
	sweeper         Sweeper
	paymentProvider domain.PaymentProvider
	webhookParser   WebhookParser
}

// NewApp wires the HTTP application. seatMap and webhookParser may be nil,
// which disables the seat map cache and the Stripe webhook respectively.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	engine Engine,
	seatMap SeatMapCache,
	sweeper Sweeper,
	paymentProvider domain.PaymentProvider,
	webhookParser WebhookParser) *Application {

	return &Application{
		config:          cfg,
		logger:          logger,
		validator:       validator,
		sessionManager:  sessionManager,
		engine:          engine,
		seatMap:         seatMap,
		sweeper:         sweeper,
		paymentProvider: paymentProvider,
		webhookParser:   webhookParser,
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	if client != nil {
		sessionManager.Store = goredisstore.New(client)
	}
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains it.
// background, when set, runs alongside the server and is cancelled on
// shutdown.
func (app *Application) Serve(background func(ctx context.Context)) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backgroundDone := make(chan struct{})
	if background != nil {
		go func() {
			defer close(backgroundDone)
			background(ctx)
		}()
	} else {
		close(backgroundDone)
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		cancel()

		ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelShutdown()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "store", app.config.Store)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	<-backgroundDone

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
