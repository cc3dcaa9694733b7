// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"fairway/internal/delivery/http/middleware"
	"fairway/internal/delivery/http/router/handler"
	deliverymiddleware "fairway/internal/delivery/middleware"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProfileHandler   *handler.ProfileHandler
	CourseHandler    *handler.CourseHandler
	RoundHandler     *handler.RoundHandler
	DashboardHandler *handler.DashboardHandler
	PageHandler      *handler.PageHandler
	StreamHandler    *handler.StreamHandler

	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *deliverymiddleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.params.RequestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Navigation resolution is public: the guard itself decides what an
	// anonymous visitor may see.
	e.GET("/navigate", r.params.PageHandler.Resolve)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/google", r.params.AuthHandler.SignInWithGoogle)
		authGroup.POST("/phone/request", r.params.AuthHandler.RequestPhoneCode)
		authGroup.POST("/phone/confirm", r.params.AuthHandler.ConfirmPhoneCode)
		authGroup.POST("/signout", r.params.AuthHandler.SignOut)
		authGroup.GET("/session", r.params.AuthHandler.Session)
	}

	// Everything below requires a valid session token.
	apiGroup := e.Group("/api")
	apiGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		apiGroup.GET("/dashboard", r.params.DashboardHandler.Dashboard)

		apiGroup.GET("/courses", r.params.CourseHandler.ListCourses)
		apiGroup.POST("/courses", r.params.CourseHandler.AddCourse)
		apiGroup.GET("/courses/:id", r.params.CourseHandler.GetCourse)
		apiGroup.PUT("/courses/:id", r.params.CourseHandler.UpdateCourse)
		apiGroup.DELETE("/courses/:id", r.params.CourseHandler.DeleteCourse)

		apiGroup.GET("/rounds", r.params.RoundHandler.ListRounds)
		apiGroup.POST("/rounds", r.params.RoundHandler.AddRound)
		apiGroup.POST("/rounds/photos", r.params.RoundHandler.UploadPhoto)

		apiGroup.GET("/profile", r.params.ProfileHandler.GetProfile)
		apiGroup.PATCH("/profile", r.params.ProfileHandler.UpdateProfile)
		apiGroup.POST("/profile/photo", r.params.ProfileHandler.UploadProfilePhoto)
		apiGroup.DELETE("/profile", r.params.ProfileHandler.DeleteAccount)

		apiGroup.GET("/stream", r.params.StreamHandler.Stream)
	}
}
