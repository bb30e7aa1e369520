package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkpress/internal/config"
	"inkpress/internal/database"
	"inkpress/internal/handler"
	"inkpress/internal/mail"
	"inkpress/internal/queue"
	appredis "inkpress/internal/redis"
	"inkpress/internal/repository"
	"inkpress/internal/service"
	"inkpress/internal/worker"
)

// Run wires the whole process: config, Postgres, Redis, repositories,
// services, the notification worker pool and the HTTP server. Blocks until
// SIGINT/SIGTERM, then shuts down gracefully.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := appredis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	log.Println("Connected to Redis successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	followRepo := repository.NewFollowRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Notification outbox
	publisher := queue.NewPublisher(redisClient.Client)
	consumer := queue.NewConsumer(redisClient.Client)

	// Services
	resolver := service.NewResolverService(userRepo, postRepo, commentRepo, topicRepo)
	userService := service.NewUserService(userRepo, cfg)
	postService := service.NewPostService(postRepo, topicRepo, followRepo, historyRepo, publisher)
	commentService := service.NewCommentService(commentRepo, postRepo, publisher)
	followService := service.NewFollowService(followRepo, userRepo, publisher)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, postRepo)
	topicService := service.NewTopicService(topicRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	historyService := service.NewHistoryService(historyRepo)

	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}

	// Notification workers
	mailer := mail.NewSendGridClient(cfg.SendGridAPIKey, cfg.SenderEmail)
	workerHandler := worker.NewHandler(userRepo, notificationRepo, mailer)
	manager := worker.NewManager(consumer, workerHandler, worker.ManagerConfig{
		WorkerCount: cfg.WorkerCount,
	})
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start notification workers: %w", err)
	}
	defer manager.Stop()

	// Handlers and router
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService),
		UserHandler:         handler.NewUserHandler(userService, postService, bookmarkService, historyService, mediaService, resolver),
		PostHandler:         handler.NewPostHandler(postService, topicService, resolver),
		CommentHandler:      handler.NewCommentHandler(commentService, resolver),
		BookmarkHandler:     handler.NewBookmarkHandler(bookmarkService, resolver),
		FollowHandler:       handler.NewFollowHandler(followService, resolver),
		TopicHandler:        handler.NewTopicHandler(topicService, postService, resolver),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		MediaHandler:        handler.NewMediaHandler(mediaService),
		JWTSecret:           cfg.JWTSecret,
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
