package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/streamtube/streamtube/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/streamtube/streamtube/internal/authentication"
	"github.com/streamtube/streamtube/internal/comment"
	"github.com/streamtube/streamtube/internal/dashboard"
	"github.com/streamtube/streamtube/internal/like"
	"github.com/streamtube/streamtube/internal/playlist"
	"github.com/streamtube/streamtube/internal/storage"
	"github.com/streamtube/streamtube/internal/subscription"
	"github.com/streamtube/streamtube/internal/tweet"
	"github.com/streamtube/streamtube/internal/user"
	"github.com/streamtube/streamtube/internal/utils"
	"github.com/streamtube/streamtube/internal/video"
	"go.uber.org/zap"
)

// @title           StreamTube API
// @version         1.0
// @description     Media sharing backend with session, video, comment and channel endpoints.
//
// @host      localhost:8000
// @BasePath  /api/v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config
	cfg, err := utils.LoadConfig(".env")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// init database
	db, err := utils.InitDatabase(cfg.Database.DSN())
	if err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}
	if err := db.AutoMigrate(
		&user.User{},
		&user.WatchHistoryEntry{},
		&video.Video{},
		&comment.Comment{},
		&tweet.Tweet{},
		&like.Like{},
		&subscription.Subscription{},
		&playlist.Playlist{},
		&playlist.PlaylistVideo{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// init logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// init blob storage
	blobs, err := storage.NewS3Store(&cfg.Storage, logger)
	if err != nil {
		panic("Failed to initialize blob storage: " + err.Error())
	}

	// init Gin router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.Server.CORSOrigin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	//
	// SWAGGER (protected by Basic Auth, not JWT)
	//
	swaggerGroup := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
		cfg.Admin.Username: cfg.Admin.Password,
	}))
	swaggerGroup.GET("", ginSwagger.WrapHandler(swaggerFiles.Handler))
	swaggerGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	//
	// WIRE UP SERVICES
	//
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, blobs, logger)
	authService := authentication.NewService(userRepo, cfg.Token, logger)

	videoRepo := video.NewRepository(db)
	videoService := video.NewService(videoRepo, blobs, userService, logger)

	commentRepo := comment.NewRepository(db)
	commentService := comment.NewService(commentRepo, videoRepo, logger)

	tweetRepo := tweet.NewRepository(db)
	tweetService := tweet.NewService(tweetRepo, logger)

	likeRepo := like.NewRepository(db, logger)
	likeService := like.NewService(likeRepo, videoRepo, commentRepo, tweetRepo, logger)

	subscriptionRepo := subscription.NewRepository(db, logger)
	subscriptionService := subscription.NewService(subscriptionRepo, userRepo, logger)

	playlistRepo := playlist.NewRepository(db, logger)
	playlistService := playlist.NewService(playlistRepo, videoRepo, logger)

	dashboardRepo := dashboard.NewRepository(db, logger)
	dashboardService := dashboard.NewService(dashboardRepo, videoService, logger)

	api := router.Group("/api/v1")

	api.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := api.Group("/")
	protected.Use(authentication.AuthMiddleware(cfg.Token.AccessTokenSecret, logger))

	authentication.NewHandler(api, protected, authService, cfg.Token, logger)
	user.NewHandler(api, protected, userService, authentication.CurrentUserID, logger)
	video.NewHandler(protected, videoService, authentication.CurrentUserID, logger)
	comment.NewHandler(protected, commentService, authentication.CurrentUserID, logger)
	tweet.NewHandler(protected, tweetService, authentication.CurrentUserID, logger)
	like.NewHandler(protected, likeService, authentication.CurrentUserID, logger)
	subscription.NewHandler(protected, subscriptionService, authentication.CurrentUserID, logger)
	playlist.NewHandler(protected, playlistService, authentication.CurrentUserID, logger)
	dashboard.NewHandler(protected, dashboardService, authentication.CurrentUserID, logger)

	//
	// START SERVER
	//
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped gracefully")
	}
}
