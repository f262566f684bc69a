package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/delivery/http/controllers"
	"telecare-service/internal/app/delivery/http/middlewares"
	"telecare-service/internal/app/delivery/http/routers"
	"telecare-service/internal/app/drivers/database"
	"telecare-service/internal/app/drivers/logger"
	driverMailer "telecare-service/internal/app/drivers/mailer"
	"telecare-service/internal/app/drivers/messaging"
	driverStorage "telecare-service/internal/app/drivers/storage"
	"telecare-service/internal/app/services/core/appointments"
	"telecare-service/internal/app/services/core/notifications"
	"telecare-service/internal/app/services/shared/conferencing"
	"telecare-service/internal/app/services/shared/locker"
	"telecare-service/internal/app/services/shared/mailer"
	"telecare-service/internal/app/services/shared/redis"
	"telecare-service/internal/app/services/shared/storage"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)

	minioClient := driverStorage.NewMinio(bootstrap.DriverConfig)
	attachmentStorage := storage.NewMinioStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)

	// Conferencing
	tokenCache := conferencing.NewTokenCache(bootstrap.InternalConfig, bootstrap.Logger)
	conferenceService := conferencing.NewConferenceService(bootstrap.InternalConfig, tokenCache, bootstrap.Logger)

	// Notifications
	queueService, err := notifications.NewQueueService(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.Notification.QueueName,
		bootstrap.InternalConfig.Notification.DeadLetterQueueName,
		bootstrap.InternalConfig.Notification.MaxQueue,
	)
	if err != nil {
		log.Fatalf("Failed to initialize notification queue: %v", err)
	}
	dispatcher := notifications.NewNotificationDispatcher(queueService, bootstrap.Logger)

	smtpClient := driverMailer.NewSMTPClient(bootstrap.DriverConfig)
	mailerService := mailer.NewMailerService(smtpClient)
	worker := notifications.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, lockService, queueService, mailerService)
	bootstrap.WorkerStop = worker.Start(context.Background())

	// Appointments
	appointmentRepository, err := appointments.NewAppointmentMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	if err != nil {
		log.Fatalf("Failed to ensure appointment indexes: %v", err)
	}
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		conferenceService,
		dispatcher,
		attachmentStorage,
		lockService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentController := controllers.NewAppointmentController(
		bootstrap.Logger,
		appointmentUsecase,
		bootstrap.InternalConfig.App.RequestBodyLimitInMegabyte,
		bootstrap.InternalConfig.App.RequestTimeoutInSeconds,
	)

	middlewareInstance := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewareInstance, appointmentController)
}
