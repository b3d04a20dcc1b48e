package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pinboard/internal/app"
	"pinboard/internal/bootstrap"
	"pinboard/internal/cache"
	"pinboard/internal/platform/rabbitmq"
	"pinboard/internal/repository"
	"pinboard/internal/transport/http/handler"
	"pinboard/internal/transport/http/middleware"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(a *bootstrap.App) *gin.Engine {
	gin.SetMode(a.Config.App.GinMode)

	userRepo := repository.NewUserRepository(a.MySQL)
	tokenRepo := repository.NewTokenRepository(a.MySQL)
	pinRepo := repository.NewPinRepository(a.MySQL)
	commentRepo := repository.NewCommentRepository(a.MySQL)

	explore := cache.NewExploreCache(
		a.Redis,
		time.Duration(a.Config.Redis.RandomPinsTTLSeconds)*time.Second,
		time.Duration(a.Config.Redis.TagsTTLSeconds)*time.Second,
	)
	mailPublisher := rabbitmq.NewMailPublisher(a.MQConn, a.Config.RabbitMQ.MailQueue)

	authService := app.NewAuthService(
		userRepo,
		tokenRepo,
		mailPublisher,
		a.Config.Auth.JWTSecret,
		app.TokenTTLs{
			Access: time.Duration(a.Config.Auth.AccessExpireHour) * time.Hour,
			Verify: time.Duration(a.Config.Auth.VerifyExpireMin) * time.Minute,
			Reset:  time.Duration(a.Config.Auth.ResetExpireMin) * time.Minute,
		},
		a.Config.App.BaseURL,
	)
	userService := app.NewUserService(userRepo)

	var uploader app.ImageUploader
	if a.Images != nil {
		uploader = a.Images
	}
	pinService := app.NewPinService(pinRepo, userRepo, explore, uploader)
	commentService := app.NewCommentService(commentRepo, pinRepo, userRepo)
	searchService := app.NewSearchService(pinRepo, userRepo, explore)

	userHandler := handler.NewUserHandler(authService)
	authHandler := handler.NewAuthHandler(authService, userService)
	pinHandler := handler.NewPinHandler(pinService)
	commentHandler := handler.NewCommentHandler(commentService)
	searchHandler := handler.NewSearchHandler(searchService)
	uploadHandler := handler.NewUploadHandler(uploader)
	healthHandler := handler.NewHealthHandler(a.Config.App.Name, a.StartedAt)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.Deserialize(a.Config.Auth.JWTSecret))

	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	api.POST("/upload", middleware.RequireAuth(), uploadHandler.Upload)

	users := api.Group("/users")
	{
		users.POST("/create", userHandler.Create)
		users.PATCH("/verify-account/:userId/:token", userHandler.VerifyAccount)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/recover-password", authHandler.RecoverPassword)
		auth.PATCH("/reset-password/:id/:token", authHandler.ResetPassword)
		auth.GET("/profile/:userName", authHandler.GetProfile)
		auth.GET("/followers/:id", authHandler.Followers)
		auth.GET("/following/:id", authHandler.Following)

		auth.GET("/", middleware.RequireAuth(), authHandler.Authenticate)
		auth.PATCH("/update/:id", middleware.RequireAuth(), authHandler.UpdateUser)
		auth.PUT("/follow/:userId", middleware.RequireAuth(), authHandler.Follow)
		auth.PUT("/unfollow/:userId", middleware.RequireAuth(), authHandler.Unfollow)
	}

	pins := api.Group("/pins")
	{
		pins.GET("/", middleware.RequireAuth(), pinHandler.Fetch)
		pins.GET("/random-explore", pinHandler.RandomExplore)
		pins.GET("/user/:id", pinHandler.ByUser)
		pins.GET("/liked/:id", pinHandler.LikedByUser)
		pins.GET("/:id", pinHandler.GetSingle)
		pins.GET("/:id/related", pinHandler.Related)

		pins.POST("/create", middleware.RequireAuth(), pinHandler.Create)
		pins.GET("/followed", middleware.RequireAuth(), pinHandler.FollowedFeed)
		pins.PUT("/like/:id", middleware.RequireAuth(), pinHandler.Like)
		pins.PUT("/dislike/:id", middleware.RequireAuth(), pinHandler.Dislike)
		pins.PATCH("/:id/update", middleware.RequireAuth(), pinHandler.Update)
		pins.DELETE("/:id", middleware.RequireAuth(), pinHandler.Delete)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:id", commentHandler.ByPin)

		comments.POST("/:id/add", middleware.RequireAuth(), commentHandler.Add)
		comments.PUT("/like/:id", middleware.RequireAuth(), commentHandler.Like)
		comments.PUT("/dislike/:id", middleware.RequireAuth(), commentHandler.Dislike)
		comments.PATCH("/:id", middleware.RequireAuth(), commentHandler.Update)
		comments.DELETE("/delete/:id", middleware.RequireAuth(), commentHandler.Delete)
	}

	search := api.Group("/search")
	{
		search.GET("/", searchHandler.Search)
		search.GET("/tags", searchHandler.Tags)
		search.DELETE("/:id/tags/:index", middleware.RequireAuth(), searchHandler.DeleteTag)
	}

	return router
}
