// Command server runs the inquiry desk REST API.
//
// @title                       Inquiry Desk API
// @version                     1.0
// @description                 CRM back office: inquiries, catalogue, follow-ups, notifications and analytics.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/api"
	"github.com/indocrm/inquiry-desk/internal/api/handler"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
	"github.com/indocrm/inquiry-desk/internal/core/service"
	"github.com/indocrm/inquiry-desk/internal/infrastructure/db/mongo"
	"github.com/indocrm/inquiry-desk/internal/infrastructure/db/redis"
	httpserver "github.com/indocrm/inquiry-desk/internal/infrastructure/http"
	"github.com/indocrm/inquiry-desk/internal/infrastructure/http/handlers"
	"github.com/indocrm/inquiry-desk/internal/infrastructure/mailqueue"
	"github.com/indocrm/inquiry-desk/internal/infrastructure/queue"
	"github.com/indocrm/inquiry-desk/internal/infrastructure/search/elastic"
	"github.com/indocrm/inquiry-desk/internal/pkg/config"
	"github.com/indocrm/inquiry-desk/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "inquiry-desk",
	})

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		}); err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Optional integrations ---
	var mail ports.MailQueue = mailqueue.NewLogMailer(log)
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := mailqueue.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.MailTopic)
		if err != nil {
			return err
		}
		defer publisher.Close()
		mail = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.MailTopic).Msg("mail queue: kafka")
	}

	var index ports.InquiryIndex
	if cfg.Search.URL != "" {
		idx, err := elastic.NewInquiryIndex(cfg.Search.URL, cfg.Search.InquiryIndex)
		if err == nil {
			err = idx.EnsureIndex(ctx)
		}
		if err != nil {
			log.Warn().Err(err).Msg("inquiry search: elasticsearch unavailable, using mongodb")
		} else {
			index = idx
			log.Info().Str("index", cfg.Search.InquiryIndex).Msg("inquiry search: elasticsearch")
		}
	}

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	roleRepo := mongo.NewRoleRepository(db)
	brandRepo := mongo.NewBrandRepository(db)
	productRepo := mongo.NewProductRepository(db)
	consumerRepo := mongo.NewConsumerRepository(db)
	consultantRepo := mongo.NewConsultantRepository(db)
	inquiryRepo := mongo.NewInquiryRepository(db)
	followUpRepo := mongo.NewFollowUpRepository(db)
	notificationRepo := mongo.NewNotificationRepository(db)

	// --- Background workers ---
	notificationService := service.NewNotificationService(notificationRepo, logger.Component("notifications"))
	dispatcher := queue.NewDispatcher(cfg.Workers.NotifyWorkers, notificationService, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, redis.NewOTPStore(rdb), mail, service.AuthConfig{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		OTPTTL:        cfg.Auth.OTPTTL,
		ResetTokenTTL: cfg.Auth.ResetTokenTTL,
	}, logger.Component("auth"))
	userService := service.NewUserService(userRepo, roleRepo, logger.Component("users"))
	roleService := service.NewRoleService(roleRepo, userRepo, logger.Component("roles"))
	followUpService := service.NewFollowUpService(followUpRepo, userRepo, dispatcher, mail, logger.Component("follow-ups"))
	inquiryService := service.NewInquiryService(service.InquiryDeps{
		Inquiries:   inquiryRepo,
		Consumers:   consumerRepo,
		Products:    productRepo,
		Consultants: consultantRepo,
		Users:       userRepo,
		FollowUps:   followUpRepo,
		Notifier:    dispatcher,
		Index:       index,
	}, logger.Component("inquiries"))
	analyticsService := service.NewAnalyticsService(
		mongo.NewAnalyticsRepository(db),
		redis.NewSummaryCache(rdb),
		cfg.Analytics.CacheTTL,
		logger.Component("analytics"),
	)

	reminders := &queue.ReminderLoop{
		Service:  followUpService,
		Interval: cfg.Workers.ReminderInterval,
		Lead:     cfg.Workers.ReminderLead,
		Log:      logger.Component("reminder"),
	}
	go reminders.Run(ctx)

	// --- HTTP ---
	e := httpserver.NewRouter(api.Handlers{
		Auth:          handler.NewAuthHandler(authService, userService),
		Users:         handler.NewUserHandler(userService),
		Roles:         handler.NewRoleHandler(roleService),
		Brands:        handler.NewBrandHandler(service.NewBrandService(brandRepo, log)),
		Products:      handler.NewProductHandler(service.NewProductService(productRepo, brandRepo, log)),
		Consumers:     handler.NewConsumerHandler(service.NewConsumerService(consumerRepo, log)),
		Consultants:   handler.NewConsultantHandler(service.NewConsultantService(consultantRepo, log)),
		Inquiries:     handler.NewInquiryHandler(inquiryService),
		FollowUps:     handler.NewFollowUpHandler(followUpService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Analytics:     handler.NewAnalyticsHandler(analyticsService),
	}, httpserver.Options{
		Log:       log,
		JWTSecret: cfg.JWTSecret,
		Users:     userRepo,
		Checks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
	})

	return serve(ctx, e, ":"+cfg.Port, log)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, h http.Handler, addr string, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
