package http

import (
	"github.com/gin-gonic/gin"

	"dailydiet/internal/bootstrap"
	"dailydiet/internal/telemetry"
	"dailydiet/internal/transport/http/handler"
	"dailydiet/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(
		middleware.Recovery(app.Logger),
		middleware.RequestLogger(app.Logger),
		middleware.Instrument(),
	)

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(telemetry.Handler()))

	userHandler := handler.NewUserHandler(app.AuthService, app.Logger)
	authHandler := handler.NewAuthHandler(app.AuthService, app.Logger)
	mealHandler := handler.NewMealHandler(app.MealService, app.MetricsService, app.Logger)

	guard := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	router.POST("/users", userHandler.Register)
	router.GET("/users/me", guard, userHandler.Me)
	router.POST("/auth/login", authHandler.Login)

	meals := router.Group("/meals")
	meals.Use(guard)
	meals.GET("", mealHandler.List)
	meals.POST("", mealHandler.Create)
	meals.GET("/metrics", mealHandler.Metrics)
	meals.GET("/:id", mealHandler.Get)
	meals.PUT("/:id", mealHandler.Update)
	meals.DELETE("/:id", mealHandler.Delete)

	return router
}
