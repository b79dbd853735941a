package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"bookstore/internal/admincache"
	"bookstore/internal/config"
	"bookstore/internal/db"
	"bookstore/internal/httpserver"
	"bookstore/internal/mailer"
	"bookstore/internal/metrics"
	bookrepo "bookstore/internal/repository/book"
	favrepo "bookstore/internal/repository/favorite"
	orderrepo "bookstore/internal/repository/order"
	refrepo "bookstore/internal/repository/reference"
	reviewrepo "bookstore/internal/repository/review"
	tokenrepo "bookstore/internal/repository/token"
	userrepo "bookstore/internal/repository/user"
	"bookstore/internal/service/account"
	cartsvc "bookstore/internal/service/cart"
	catalogsvc "bookstore/internal/service/catalog"
	checkoutsvc "bookstore/internal/service/checkout"
	ordersvc "bookstore/internal/service/order"
	reviewsvc "bookstore/internal/service/review"
	usersvc "bookstore/internal/service/user"
	"bookstore/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("load config")
	}
	logger := newLogger(cfg.Logging)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to db")
	}
	defer pool.Close()

	var store session.Store
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("connect to redis")
		}
		store = session.NewRedisStore(client, cfg.Session.TTL)
		logger.Info().Str("addr", cfg.Redis.Addr()).Msg("session store: redis")
	} else {
		store = session.NewMemoryStore()
		logger.Info().Msg("session store: in-memory")
	}

	var mail mailer.Mailer = mailer.Noop{}
	if cfg.SMTP.Addr != "" {
		mail = mailer.NewSMTP(cfg.SMTP.Addr, cfg.SMTP.From, logger)
	}

	m := metrics.New()

	books := bookrepo.NewPostgres(pool, logger)
	refs := refrepo.NewPostgres(pool, logger)
	users := userrepo.NewPostgres(pool, logger)
	orders := orderrepo.NewPostgres(pool, logger)
	reviews := reviewrepo.NewPostgres(pool, logger)
	favorites := favrepo.NewPostgres(pool)
	tokens := tokenrepo.NewPostgres(pool)

	accountService := account.New(users, tokens, mail, m, logger)
	catalogService := catalogsvc.New(books, refs, logger)
	cartService := cartsvc.New(store, m)
	checkoutService := checkoutsvc.New(books, orders, store, mail, m, logger)
	orderService := ordersvc.New(orders, logger)
	userService := usersvc.New(users, books, orders, logger)
	reviewService := reviewsvc.New(reviews, favorites, logger)
	adminCheck := admincache.New(users.IsAdmin)

	srv := httpserver.New(cfg.Server.Addr(), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, logger, pool.Ping, httpserver.Deps{
		AccountSvc:    accountService,
		CatalogSvc:    catalogService,
		CartSvc:       cartService,
		CheckoutSvc:   checkoutService,
		OrderSvc:      orderService,
		UserSvc:       userService,
		ReviewSvc:     reviewService,
		AdminCheck:    adminCheck,
		SessionCookie: cfg.Session.CookieName,
		SessionTTL:    cfg.Session.TTL,
		CORSOrigins:   cfg.Server.CORSOrigins,
		MetricsHTTP:   gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr()).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = os.Stderr
	logger := zerolog.New(out)
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
