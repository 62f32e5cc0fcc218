package integration_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/seat-reservation-engine/internal/app"
	"github.com/metinatakli/seat-reservation-engine/internal/payment"
	"github.com/metinatakli/seat-reservation-engine/internal/projection"
	"github.com/metinatakli/seat-reservation-engine/internal/reaper"
	"github.com/metinatakli/seat-reservation-engine/internal/repository"
	"github.com/metinatakli/seat-reservation-engine/internal/reservation"
	appvalidator "github.com/metinatakli/seat-reservation-engine/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App            *app.Application
	Config         app.Config
	Logger         *slog.Logger
	DB             *pgxpool.Pool
	RedisClient    *redis.Client
	SessionManager *scs.SessionManager
	Clock          *clockwork.FakeClock
	Engine         *reservation.Engine
	Reaper         *reaper.Reaper
	SeatMap        *projection.SeatMap
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := appvalidator.NewValidator()
	clk := clockwork.NewFakeClockAt(time.Now().UTC().Truncate(time.Second))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	store := repository.NewPostgresStore(db)
	seatMap := projection.NewSeatMap(redisClient, cfg.Booking.SeatMapTTL)

	engine := reservation.New(store, clk, logger,
		reservation.WithHoldTTL(cfg.Booking.HoldTTL),
		reservation.WithDefaultSeatPrice(cfg.Booking.DefaultSeatPrice),
		reservation.WithProjector(seatMap),
	)

	sweeper := reaper.New(store, clk, logger,
		reaper.WithUnpaidGrace(cfg.Booking.UnpaidGrace),
		reaper.WithConcurrency(cfg.Reaper.Concurrency),
		reaper.WithInvalidator(seatMap),
	)

	paymentProvider := payment.NewMockPaymentProvider(cfg.Stripe.SuccessUrl)

	application := app.NewApp(
		cfg,
		logger,
		validator,
		sessionManager,
		engine,
		seatMap,
		sweeper,
		paymentProvider,
		nil,
	)

	return &TestApp{
		App:            application,
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		RedisClient:    redisClient,
		SessionManager: sessionManager,
		Clock:          clk,
		Engine:         engine,
		Reaper:         sweeper,
		SeatMap:        seatMap,
	}, nil
}

func (a *TestApp) Close() {
	a.RedisClient.Close()
	a.DB.Close()
}
