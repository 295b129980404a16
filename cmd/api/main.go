package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"conectaleads/docs"
	"conectaleads/internal/cache"
	"conectaleads/internal/config"
	"conectaleads/internal/database"
	"conectaleads/internal/database/migration"
	"conectaleads/internal/events"
	handlers "conectaleads/internal/http/handler"
	"conectaleads/internal/http/middleware"
	"conectaleads/internal/logging"
	"conectaleads/internal/metrics"
	"conectaleads/internal/mq"
	"conectaleads/internal/otel"
	"conectaleads/internal/repository/postgres"
	"conectaleads/internal/service"
	"conectaleads/internal/storage"
)

// @title ConectaLeads API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	log := logging.Stdout(loc).With(zap.String("service", cfg.AppName))
	defer func() { _ = log.Sync() }()

	if err := run(cfg, loc, log); err != nil {
		log.Fatal("api_stopped", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, loc *time.Location, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.AppName, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		return err
	}

	probes := []handlers.Pinger{objStore}
	var c cache.Cache = cache.Noop{}
	if cfg.Redis.Enabled() {
		rc, err := cache.NewRedis(cfg.Redis, cfg.AppName, log)
		if err != nil {
			return err
		}
		defer rc.Close()
		c, probes = rc, append(probes, rc)
	}

	leadRepo := postgres.NewLeadPostgres(db)
	brokerRepo := postgres.NewBrokerPostgres(db)
	batchRepo := postgres.NewImportBatchPostgres(db)
	notificationRepo := postgres.NewNotificationPostgres(db)
	reportRepo := postgres.NewReportPostgres(db)

	notifications := events.NewNotificationHandler(notificationRepo, log)
	var pub events.Publisher
	var consumer *mq.Consumer
	if cfg.Rabbit.Enabled() {
		p, err := mq.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange, cfg.AppName)
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p

		consumer = mq.NewConsumer(cfg.Rabbit, events.Bindings, cfg.AppName+"-api", notifications, log)
		if err := consumer.Connect(); err != nil {
			return err
		}
		defer consumer.Close()
	} else {
		pub = events.NewDirect(notifications)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	importMetrics, err := metrics.NewImport(reg)
	if err != nil {
		return err
	}
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	ttl := cfg.Redis.TTL()
	svcs := handlers.Services{
		Leads: service.NewLeadService(leadRepo, pub, c, log),
		Imports: service.NewImportService(service.ImportDeps{
			Store:    objStore,
			Batches:  batchRepo,
			Leads:    leadRepo,
			Events:   pub,
			Cache:    c,
			Metrics:  importMetrics,
			MaxBytes: cfg.Import.MaxBytes,
			Log:      log,
		}),
		Brokers:       service.NewBrokerService(brokerRepo, objStore, pub, c, ttl, log),
		Dashboard:     service.NewDashboardService(reportRepo, leadRepo, c, ttl, loc),
		Reports:       service.NewReportService(reportRepo, c, ttl),
		Notifications: service.NewNotificationService(notificationRepo),
		Probes:        probes,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// multipart overhead on top of the CSV limit
		BodyLimit: int(cfg.Import.MaxBytes) + 1<<20,
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(app, db, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api_listening", zap.String("addr", ":"+cfg.Port))
		return app.Listen(":" + cfg.Port)
	})
	if consumer != nil {
		g.Go(func() error {
			err := consumer.Run(gctx)
			if gctx.Err() != nil {
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("api_shutting_down")
		return app.ShutdownWithTimeout(10 * time.Second)
	})
	return g.Wait()
}
