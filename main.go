package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawease/config"
	"lawease/cron"
	"lawease/database"
	bookingRepo "lawease/database/repository/booking"
	consultationRepo "lawease/database/repository/consultation"
	contactRepo "lawease/database/repository/contact"
	lawyerRepo "lawease/database/repository/lawyer"
	reviewRepo "lawease/database/repository/review"
	userRepoPkg "lawease/database/repository/user"
	"lawease/handlers"
	"lawease/middleware"
	"lawease/routes"
	"lawease/services/booking"
	"lawease/services/contact"
	ai "lawease/services/intelligence"
	"lawease/services/lawyer"
	"lawease/services/mentor"
	"lawease/services/notification"
	"lawease/services/payment"
	"lawease/services/review"
	"lawease/services/storage"
	"lawease/services/tasks"
	"lawease/services/user"
	"lawease/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	database.InitMongo()
	utils.InitRedis()
	utils.StartHealthMonitor(database.DB, database.MongoClient,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()})

	// repositories.
	userRepo := userRepoPkg.NewGormUserRepo(database.DB)
	lawyers := lawyerRepo.NewGormLawyerRepo(database.DB)
	bookings := bookingRepo.NewGormBookingRepo(database.DB)
	reviews := reviewRepo.NewGormReviewRepo(database.DB)
	consultations := consultationRepo.NewMongoConsultationRepo(database.MongoDatabase())
	contacts := contactRepo.NewMongoContactRepo(database.MongoDatabase())

	// email delivery and background work.
	emailClient := notification.NewHTTPEmailClient(config.AppConfig.EmailAPIURL, config.AppConfig.EmailAPIKey, config.HTTPTimeout())
	var dispatcher notification.Dispatcher = &notification.DirectDispatcher{Client: emailClient}
	var reminders tasks.ReminderScheduler
	var queueClient *asynq.Client
	if config.AppConfig.QueueEnabled {
		queueClient = asynq.NewClient(cron.RedisOpt())
		dispatcher = &notification.QueueDispatcher{Queue: queueClient}
		reminders = tasks.NewAsynqReminderScheduler(queueClient)
	}
	notifier, err := notification.NewDefaultNotificationService(dispatcher,
		config.AppConfig.EmailFrom, config.AppConfig.SupportEmail, config.AppConfig.AppBaseURL, logger.Named("notification"))
	if err != nil {
		logger.Fatal("main: failed to initialize notification service", zap.Error(err))
	}

	// optional SaaS collaborators. Interfaces stay nil when unconfigured.
	var images storage.ImageStorage
	switch config.AppConfig.StorageType {
	case "s3":
		s3Store, err := storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket:    config.AppConfig.S3Bucket,
			Region:    config.AppConfig.S3Region,
			AccessKey: config.AppConfig.AWSAccessKeyID,
			SecretKey: config.AppConfig.AWSSecretKey,
		})
		if err != nil {
			logger.Warn("main: s3 storage disabled", zap.Error(err))
		} else {
			images = s3Store
		}
	default:
		cld, err := storage.NewCloudinaryStorage(config.AppConfig.CloudinaryName, config.AppConfig.CloudinaryKey, config.AppConfig.CloudinarySecret)
		if err != nil {
			logger.Warn("main: cloudinary storage disabled", zap.Error(err))
		} else {
			images = cld
		}
	}

	var llm ai.LLMClient
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("main: gemini client disabled", zap.Error(err))
		} else {
			defer gemini.Close()
			llm = gemini
		}
	}

	var voice ai.VoiceSessionClient
	if config.AppConfig.VoiceAPIKey != "" {
		voice = ai.NewHTTPVoiceClient(config.AppConfig.VoiceAPIURL, config.AppConfig.VoiceAPIKey,
			config.AppConfig.VoiceAgentID, config.HTTPTimeout())
	}

	bookingOpts := []booking.Option{
		booking.WithFeeRate(config.AppConfig.PlatformFeeRate),
		booking.WithLocation(config.Location()),
		booking.WithLogger(logger.Named("booking")),
	}
	if reminders != nil {
		bookingOpts = append(bookingOpts, booking.WithReminders(reminders))
	}
	if config.AppConfig.StripeKey != "" {
		gateway, err := payment.NewStripeGateway(config.AppConfig.StripeKey)
		if err != nil {
			logger.Warn("main: stripe payments disabled", zap.Error(err))
		} else {
			bookingOpts = append(bookingOpts, booking.WithPayments(gateway))
		}
	}

	// services.
	tokenCache := utils.NewRedisTokenCache(utils.GetAuthCacheClient())
	tokenTTL := time.Duration(config.AppConfig.TokenTTLHours) * time.Hour
	userService := user.NewUserService(userRepo, tokenCache, tokenTTL, logger.Named("user"))
	lawyerService := lawyer.NewLawyerService(lawyers, userRepo, reviews, images,
		lawyer.NewRedisDirectoryCache(utils.GetCacheClient(), utils.LawyerListCacheTTL),
		lawyer.Config{
			DefaultCurrency: config.AppConfig.DefaultCurrency,
			ImageFolder:     config.AppConfig.ImageFolder,
		}, logger.Named("lawyer"))
	bookingService := booking.NewBookingService(bookings, lawyers, userRepo, notifier, bookingOpts...)
	reviewService := review.NewReviewService(reviews, bookings, lawyers, logger.Named("review"))
	mentorService := mentor.NewMentorService(consultations, llm, voice, logger.Named("mentor"))
	contactService := contact.NewContactService(contacts, notifier, logger.Named("contact"))

	var worker *asynq.Server
	if config.AppConfig.QueueEnabled {
		worker = cron.InitWorker(emailClient, bookingService, logger.Named("worker"))
	}

	sessionStore := middleware.NewSessionStore(config.AppConfig.SessionSecret, config.IsProduction(), tokenTTL)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		TokenCache:   tokenCache,
		SessionStore: sessionStore,

		Auth:    handlers.NewAuthHandler(userService, sessionStore),
		Lawyer:  handlers.NewLawyerHandler(lawyerService),
		Booking: handlers.NewBookingHandler(bookingService),
		Review:  handlers.NewReviewHandler(reviewService),
		Mentor:  handlers.NewMentorHandler(mentorService),
		Contact: handlers.NewContactHandler(contactService),
		Admin:   handlers.NewAdminHandler(lawyerService),
	}

	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	database.Close(ctx)

	logger.Sugar().Info("main: server stopped gracefully")
}
