package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creedava-api/domain/repository"
	"creedava-api/infrastructure/cache"
	linkedinclient "creedava-api/infrastructure/clients/linkedin"
	"creedava-api/infrastructure/configuration"
	"creedava-api/infrastructure/googlesheet"
	"creedava-api/infrastructure/logger"
	"creedava-api/infrastructure/persistence"
	"creedava-api/infrastructure/pubsub"
	"creedava-api/infrastructure/servicebus"
	httpHandler "creedava-api/interfaces/http"
	"creedava-api/server"
	"creedava-api/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	crmDb, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("CRM database not available - continuing without lead features")
		crmDb = nil
	}

	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB not available - token store disabled")
		mongoDb = nil
	} else {
		if err := mongoDb.Ping(ctx, nil); err != nil {
			logger.GetLogger().WithField("error", err).Warn("MongoDB ping failed - token store disabled")
			mongoDb = nil
		} else {
			logger.GetLogger().Info("MongoDB connected successfully")
		}
	}

	redisClient, err := cache.NewCache()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - posts served uncached")
		redisClient = nil
	}

	pubSubClient := pubsub.NewPubSub(ctx)
	azServiceBusClient := servicebus.NewServiceBus()
	leadSheet := googlesheet.NewLeadSheet(ctx)

	// LinkedIn wiring.
	linkedInConfig := configuration.C.LinkedIn
	linkedInClient := linkedinclient.NewClient(linkedinclient.Config{
		ClientID:     linkedInConfig.ClientID,
		ClientSecret: linkedInConfig.ClientSecret,
		RedirectURL:  linkedInConfig.RedirectURI,
		AuthBaseURL:  linkedInConfig.AuthBaseURL,
		APIBaseURL:   linkedInConfig.APIBaseURL,
		Version:      linkedInConfig.Version,
	})
	tokenRepository := persistence.NewLinkedInTokenRepository(mongoDb, configuration.C.Database.Mongo.Name)
	cacheRepository := cache.NewLinkedInCacheRepository(redisClient)
	linkedInUsecase := usecase.NewLinkedInUsecase(tokenRepository, cacheRepository, linkedInClient, linkedInConfig.ClientID)
	linkedInHandler := httpHandler.NewLinkedInHandler(linkedInUsecase)

	// CRM wiring: leads and scheduled posts live in SQL.
	analyticsPublisher := pubsub.NewAnalyticsPublisher(pubSubClient)
	notificationBus := servicebus.NewNotificationBus(azServiceBusClient)

	var leadRepository repository.ILead
	var socialPostRepository repository.ISocialPost
	if crmDb != nil {
		if os.Getenv("ENV") != "production" && os.Getenv("ENV") != "prod" && os.Getenv("DB_VENDOR") != "mssql" {
			if err := persistence.EnsureLeadSchema(crmDb); err != nil {
				logger.GetLogger().WithField("error", err).Error("failed ensuring lead schema")
			}
			if err := persistence.EnsureSocialPostSchema(crmDb); err != nil {
				logger.GetLogger().WithField("error", err).Error("failed ensuring social post schema")
			}
			leadRepository = persistence.NewLeadRepository(crmDb)
		} else {
			leadRepository = persistence.NewLeadRepositoryMssql(crmDb)
		}
		socialPostRepository = persistence.NewSocialPostRepository(crmDb)
	}

	leadUsecase := usecase.NewLeadUsecase(leadRepository, analyticsPublisher, notificationBus, leadSheet)
	leadHandler := httpHandler.NewLeadHandler(leadUsecase)

	chatUsecase := usecase.NewChatUsecase()
	chatHandler := httpHandler.NewChatHandler(chatUsecase)

	socialPostUsecase := usecase.NewSocialPostUsecase(socialPostRepository, linkedInUsecase)
	socialPostHandler := httpHandler.NewSocialPostHandler(socialPostUsecase)

	router := server.InitiateRouter(linkedInHandler, leadHandler, chatHandler, socialPostHandler)

	// Background publisher for scheduled posts (simple ticker loop)
	if socialPostRepository != nil {
		g.Go(func() error {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					procCtx, cancelProc := context.WithTimeout(ctx, 30*time.Second)
					if _, err := socialPostUsecase.ProcessDue(procCtx); err != nil {
						logger.GetLogger().WithField("error", err).Error("scheduled post processing failed")
					}
					cancelProc()
				}
			}
		})
	}

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
		} else {
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateDatabase picks the CRM database vendor: MSSQL in production or when
// DB_VENDOR=mssql, PostgreSQL otherwise.
func InitiateDatabase() (*sql.DB, error) {
	env := os.Getenv("ENV")
	if v := os.Getenv("DB_VENDOR"); v == "mssql" {
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot connect to MSSQL (DB_VENDOR=mssql)")
			return nil, err
		}
		return db, nil
	}
	if env == "production" || env == "prod" {
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot connect to MSSQL (production)")
			return nil, err
		}
		return db, nil
	}
	return persistence.NewPostgreSQLDB()
}
