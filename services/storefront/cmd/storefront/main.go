package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/sakhi_shop/pkg/events"
	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
	"github.com/Skotchmaster/sakhi_shop/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/sakhi_shop/pkg/middleware/logging"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/backend"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
	storecfg "github.com/Skotchmaster/sakhi_shop/services/storefront/internal/config"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/httpserver"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/service"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/view"
)

func main() {
	cfg := storecfg.Load("services/storefront/.env")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	if cfg.EphemeralSecret {
		logger.Warn("session_secret_generated", "reason", "SESSION_SECRET is empty, sessions will not survive a restart")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	res, err := backend.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("cart backend %s: %v", cfg.CartBackend, err)
	}
	logger.Info("cart_backend_ready", "backend", cfg.CartBackend)

	var producer events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		logger.Info("kafka_producer_ready", "brokers", cfg.KafkaBrokers, "topic", cfg.CartTopic)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	cat := catalog.Default()
	svc := &service.CartService{Catalog: cat, Events: producer, Topic: cfg.CartTopic}
	carts := &httpserver.Carts{Backend: res.Carts, SecureCookie: cfg.CookieSecure}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.AccessLog(logger, loggingmw.Options{
		QuietPrefixes: []string{"/health/"},
		SessionKey:    httpserver.SessionKey,
	}))

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CSRFSecure
	csrfCfg.SkipPrefixes = []string{"/api/", "/health/"}
	e.Use(csrf.Middleware(csrfCfg))

	httpserver.Register(e, &httpserver.Deps{
		Pages:   &httpserver.PagesHTTP{Catalog: cat, Svc: svc, Carts: carts},
		Cart:    &httpserver.CartHTTP{Svc: svc, Carts: carts},
		Catalog: &httpserver.CatalogHTTP{Catalog: cat},
		Sessions: &httpserver.Sessions{
			Secret: cfg.SessionSecret,
			TTL:    cfg.CartTTL,
			Secure: cfg.CookieSecure,
		},
		Ready: res.Ready,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("storefront_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	if err := res.Close(); err != nil {
		logger.Error("backend_close_error", "error", err)
	}

	logger.Info("storefront stopped")
}
