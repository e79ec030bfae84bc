package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	token_adapter "dar360-service/internal/adapters/jwt"
	logger_adapter "dar360-service/internal/adapters/logger"
	"dar360-service/internal/adapters/notifier"
	postgres_adapter "dar360-service/internal/adapters/postgres"
	rabbitmq_adapter "dar360-service/internal/adapters/rabbitmq"
	"dar360-service/internal/adapters/rest"
	"dar360-service/internal/configs"
	"dar360-service/internal/constants"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/usecase"
	fluentlogger "dar360-service/pkg/fluent_logger"
	"dar360-service/pkg/postgres"
	"dar360-service/pkg/rabbitmq/rabbitmq_common"
	"dar360-service/pkg/rabbitmq/rabbitmq_consumer"
	"dar360-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accessTokenTTL = 24 * time.Hour

type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	apiServer     *rest.Server
	eventConsumer *rabbitmq_adapter.EventConsumerAdapter

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// Loggers first, everything else reports through them.
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	userRepo, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	resetTokenRepo, err := postgres_adapter.NewResetTokenRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create reset token repository: %w", err)
	}
	propertyRepo, err := postgres_adapter.NewPropertyRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create property repository: %w", err)
	}
	viewingRepo, err := postgres_adapter.NewViewingRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create viewing repository: %w", err)
	}
	contractRepo, err := postgres_adapter.NewContractRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create contract repository: %w", err)
	}
	applicationRepo, err := postgres_adapter.NewApplicationRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create application repository: %w", err)
	}
	maintenanceRepo, err := postgres_adapter.NewMaintenanceRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create maintenance repository: %w", err)
	}
	commissionRepo, err := postgres_adapter.NewCommissionRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create commission repository: %w", err)
	}
	paymentRepo, err := postgres_adapter.NewPaymentRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create payment repository: %w", err)
	}
	savedRepo, err := postgres_adapter.NewSavedPropertyRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create saved property repository: %w", err)
	}
	appLogger.Info("All repositories initialized.", nil)

	tokenService, err := token_adapter.NewTokenService(configs.JWTSecret())
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	sseNotifier := notifier.NewSSENotifier(baseLogger)
	appLogger.Info("SSE Notifier initialized.", nil)

	// With RabbitMQ enabled events flow through the broker and back into
	// the notifier; without it they go straight to the notifier.
	var publisher port.EventPublisherPort
	var eventConsumer *rabbitmq_adapter.EventConsumerAdapter
	if appConfig.RabbitMQ.Enabled {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.EventsExchange,
			ExchangeType:             "topic",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
		}, connManager)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}

		publisher, err = rabbitmq_adapter.NewEventPublisherAdapter(producer)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create event publisher adapter: %w", err)
		}

		consumerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_consumer"})
		consumer, err := rabbitmq_consumer.NewConsumer(rabbitmq_consumer.ConsumerConfig{
			Config:                 rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			QueueName:              constants.QueueEventsSSE,
			DeclareQueue:           true,
			DurableQueue:           true,
			ExchangeNameForBind:    constants.EventsExchange,
			DeclareExchangeForBind: true,
			ExchangeTypeForBind:    "topic",
			DurableExchangeForBind: true,
			RoutingKeyForBind:      constants.RoutingKeyEvents,
			PrefetchCount:          5,
			ConsumerTag:            "dar360-sse-fanout",
			Logger:                 rabbitmq_adapter.NewPkgLoggerBridge(consumerLogger),
		}, connManager)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create event consumer: %w", err)
		}

		eventConsumer, err = rabbitmq_adapter.NewEventConsumerAdapter(consumer, sseNotifier, baseLogger)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create event consumer adapter: %w", err)
		}
		appLogger.Info("RabbitMQ event pipeline initialized.", nil)
	} else {
		publisher = notifier.NewDirectPublisher(sseNotifier)
		appLogger.Info("RabbitMQ disabled, events are delivered in-process.", nil)
	}

	// Use cases.
	registerUC := usecase.NewRegisterUserUseCase(userRepo, tokenService, accessTokenTTL)
	loginUC := usecase.NewLoginUserUseCase(userRepo, tokenService, accessTokenTTL)
	validateUC := usecase.NewValidateTokenUseCase(tokenService)
	changePasswordUC := usecase.NewChangePasswordUseCase(userRepo)
	forgotPasswordUC := usecase.NewForgotPasswordUseCase(userRepo, resetTokenRepo)
	resetPasswordUC := usecase.NewResetPasswordUseCase(userRepo, resetTokenRepo)

	getUserUC := usecase.NewGetUserUseCase(userRepo)
	updateUserUC := usecase.NewUpdateUserUseCase(userRepo)
	listUsersUC := usecase.NewListUsersUseCase(userRepo)
	verifyReraUC := usecase.NewVerifyReraUseCase(userRepo)

	createPropertyUC := usecase.NewCreatePropertyUseCase(propertyRepo, publisher)
	listPropertiesUC := usecase.NewListPropertiesUseCase(propertyRepo)
	getPropertyUC := usecase.NewGetPropertyUseCase(propertyRepo)
	updatePropertyUC := usecase.NewUpdatePropertyUseCase(propertyRepo)
	deletePropertyUC := usecase.NewDeletePropertyUseCase(propertyRepo, contractRepo)
	addImagesUC := usecase.NewAddPropertyImagesUseCase(propertyRepo)
	sharePropertyUC := usecase.NewSharePropertyUseCase(propertyRepo, appConfig.Rest.PublicBaseURL)

	scheduleViewingUC := usecase.NewScheduleViewingUseCase(viewingRepo, propertyRepo, publisher)
	listViewingsUC := usecase.NewListViewingsUseCase(viewingRepo)
	getViewingUC := usecase.NewGetViewingUseCase(viewingRepo)
	updateViewingUC := usecase.NewUpdateViewingUseCase(viewingRepo)
	logOutcomeUC := usecase.NewLogViewingOutcomeUseCase(viewingRepo, propertyRepo, publisher)
	cancelViewingUC := usecase.NewCancelViewingUseCase(viewingRepo)

	createContractUC := usecase.NewCreateContractUseCase(contractRepo, propertyRepo)
	listContractsUC := usecase.NewListContractsUseCase(contractRepo)
	getContractUC := usecase.NewGetContractUseCase(contractRepo)
	updateContractUC := usecase.NewUpdateContractUseCase(contractRepo)
	sendOTPUC := usecase.NewSendSignatureOTPUseCase(contractRepo)
	verifyOTPUC := usecase.NewVerifySignatureOTPUseCase(contractRepo, propertyRepo, publisher, appConfig.Business.CommissionRate)
	generatePDFUC := usecase.NewGenerateContractPDFUseCase(contractRepo, propertyRepo, appConfig.Rest.PublicBaseURL)

	submitApplicationUC := usecase.NewSubmitApplicationUseCase(applicationRepo, propertyRepo, userRepo)
	listApplicationsUC := usecase.NewListApplicationsUseCase(applicationRepo)
	decideApplicationUC := usecase.NewDecideApplicationUseCase(applicationRepo, propertyRepo, userRepo, publisher)

	createMaintenanceUC := usecase.NewCreateMaintenanceRequestUseCase(maintenanceRepo, propertyRepo)
	listMaintenanceUC := usecase.NewListMaintenanceUseCase(maintenanceRepo)
	getMaintenanceUC := usecase.NewGetMaintenanceUseCase(maintenanceRepo)
	updateMaintenanceUC := usecase.NewUpdateMaintenanceUseCase(maintenanceRepo, publisher)

	listCommissionsUC := usecase.NewListCommissionsUseCase(commissionRepo)
	updateCommissionUC := usecase.NewUpdateCommissionStatusUseCase(commissionRepo)

	listPaymentsUC := usecase.NewListContractPaymentsUseCase(paymentRepo, contractRepo)
	markPaidUC := usecase.NewMarkChequePaidUseCase(paymentRepo)

	savePropertyUC := usecase.NewSavePropertyUseCase(savedRepo, propertyRepo)
	unsavePropertyUC := usecase.NewUnsavePropertyUseCase(savedRepo)
	listSavedUC := usecase.NewListSavedPropertiesUseCase(savedRepo)
	listSavedIDsUC := usecase.NewListSavedPropertyIDsUseCase(savedRepo)
	appLogger.Info("All use cases initialized.", nil)

	handlers := rest.Handlers{
		Auth: rest.NewAuthHandlers(registerUC, loginUC, changePasswordUC,
			forgotPasswordUC, resetPasswordUC, getUserUC, updateUserUC),
		Users:        rest.NewUserHandlers(getUserUC, updateUserUC, listUsersUC, verifyReraUC),
		Properties:   rest.NewPropertyHandlers(createPropertyUC, listPropertiesUC, getPropertyUC, updatePropertyUC, deletePropertyUC, addImagesUC, sharePropertyUC),
		Viewings:     rest.NewViewingHandlers(scheduleViewingUC, listViewingsUC, getViewingUC, updateViewingUC, logOutcomeUC, cancelViewingUC),
		Contracts:    rest.NewContractHandlers(createContractUC, listContractsUC, getContractUC, updateContractUC, sendOTPUC, verifyOTPUC, generatePDFUC),
		Applications: rest.NewApplicationHandlers(submitApplicationUC, listApplicationsUC, decideApplicationUC),
		Maintenance:  rest.NewMaintenanceHandlers(createMaintenanceUC, listMaintenanceUC, getMaintenanceUC, updateMaintenanceUC),
		Commissions:  rest.NewCommissionHandlers(listCommissionsUC, updateCommissionUC),
		Payments:     rest.NewPaymentHandlers(listPaymentsUC, markPaidUC),
		Saved:        rest.NewSavedPropertyHandlers(savePropertyUC, unsavePropertyUC, listSavedUC, listSavedIDsUC),
		Events:       rest.NewEventHandlers(sseNotifier),
	}

	apiServer := rest.NewServer(appConfig.Rest.PORT, appConfig.Rest.AllowedOrigins, handlers, validateUC, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:        appConfig,
		dbPool:        dbPool,
		apiServer:     apiServer,
		eventConsumer: eventConsumer,
		logger:        appLogger,
		fluentClient:  fluentClient,
	}, nil
}

func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.eventConsumer != nil {
			a.eventConsumer.Close()
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("HTTP server start error: %w", err)
		}
	}()

	if a.eventConsumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listenerLogger := a.logger.WithFields(port.Fields{"listener": "SSE Events Listener"})
			listenerLogger.Info("Starting listener...", nil)

			if err := a.eventConsumer.Start(appCtx); err != nil {
				listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
				errorsCh <- fmt.Errorf("sse events listener error: %w", err)
			} else {
				listenerLogger.Info("Listener stopped gracefully.", nil)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
