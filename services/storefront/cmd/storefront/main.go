package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Skotchmaster/cellar_society/internal/repo"
	"github.com/Skotchmaster/cellar_society/internal/schema"
	"github.com/Skotchmaster/cellar_society/internal/search"
	"github.com/Skotchmaster/cellar_society/internal/service"
	"github.com/Skotchmaster/cellar_society/internal/session"
	pkgdb "github.com/Skotchmaster/cellar_society/pkg/db"
	"github.com/Skotchmaster/cellar_society/pkg/events"
	"github.com/Skotchmaster/cellar_society/pkg/logging"
	"github.com/Skotchmaster/cellar_society/pkg/metrics"
	middleware "github.com/Skotchmaster/cellar_society/pkg/middleware/auth"
	"github.com/Skotchmaster/cellar_society/pkg/middleware/cors"
	"github.com/Skotchmaster/cellar_society/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/cellar_society/pkg/middleware/logging"
	"github.com/Skotchmaster/cellar_society/pkg/telemetry"
	"github.com/Skotchmaster/cellar_society/pkg/tokens"

	storecfg "github.com/Skotchmaster/cellar_society/services/storefront/internal/config"
	"github.com/Skotchmaster/cellar_society/services/storefront/internal/httpserver"
)

func main() {
	if err := godotenv.Load("services/storefront/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := storecfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	baseCtx := logging.IntoContext(context.Background(), logger)

	shutdownTracer, err := telemetry.InitTracerProvider(baseCtx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}

	ctx, cancel := context.WithTimeout(baseCtx, 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	err = schema.Migrate(ctx, db)
	cancel()
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var sessions session.Store = session.NewMemoryStore(session.DefaultTTL)
	var redisStore *session.RedisStore
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(baseCtx, 5*time.Second)
		redisStore, err = session.NewRedisStoreFromURL(ctx, cfg.RedisURL, session.DefaultTTL)
		cancel()
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		sessions = redisStore
	} else {
		logger.Warn("session_store_in_memory", "reason", "REDIS_URL not set")
	}

	producer := events.New(cfg.KafkaBrokers)
	m := metrics.New("cellar_storefront")

	deps := service.Deps{Repo: repo.New(db), Events: producer, Metrics: m}
	catalog := &service.CatalogService{Deps: deps}
	if cfg.ESURL != "" {
		es, err := search.NewClient(baseCtx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unavailable", "error", err)
		} else {
			catalog.Search = &search.Index{ES: es, Name: cfg.ESIndex}
		}
	}

	issuer := tokens.Issuer{Secret: cfg.SessionSecret, Audience: storecfg.SessionAudience, TTL: cfg.SessionTTL}
	handler := &httpserver.StorefrontHTTP{
		Accounts:          &service.AccountService{Deps: deps},
		Catalog:           catalog,
		Orders:            &service.OrderService{Deps: deps},
		Messages:          &service.MessageService{Deps: deps},
		Sessions:          sessions,
		Issuer:            issuer,
		CookieName:        storecfg.SessionCookieName,
		VisitorCookieName: storecfg.VisitorCookieName,
		SecureCookie:      cfg.SecureCookie,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	cors.Use(e, cfg.CORSOrigins)

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.SecureCookie
	csrfCfg.SkipPaths = []string{"/login", "/register", "/health/live", "/health/ready", "/metrics"}

	httpserver.Register(e, &httpserver.Deps{
		Handler: handler,
		Session: middleware.NewSessionMiddleware(issuer, storecfg.SessionCookieName, cfg.SecureCookie),
		Metrics: m,
		Ready:   func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
		CSRF:    &csrfCfg,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           otelhttp.NewHandler(e, cfg.ServiceName),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if err := producer.Close(); err != nil {
		slog.Warn("producer_close_failed", "error", err)
	}
	if redisStore != nil {
		_ = redisStore.Close()
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Warn("tracer_shutdown_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		slog.Warn("db_close_failed", "error", err)
	}

	log.Println("storefront stopped")
}
