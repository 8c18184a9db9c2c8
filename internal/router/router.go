package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"beingiitian/internal/auth"
	"beingiitian/internal/handler"
	"beingiitian/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	courseHandler *handler.CourseHandler,
	paymentHandler *handler.PaymentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/courses", courseHandler.ListPublished)
	api.GET("/courses/:slug", courseHandler.GetBySlug)

	// Routes requiring a valid session cookie, any role
	secured := api.Group("", auth.RequireSession(jwtService))
	secured.GET("/auth/me", authHandler.Me)
	secured.POST("/payments/orders", paymentHandler.CreateOrder)
	secured.POST("/payments/verify", paymentHandler.Verify)
	secured.GET("/enrollments", paymentHandler.ListEnrollments)

	// Admin-only routes
	admin := api.Group("/admin", auth.RequireSession(jwtService), auth.RequireRoles(model.RoleAdmin))
	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)
	admin.GET("/stats", userHandler.Stats)
	admin.GET("/courses", courseHandler.ListAll)
	admin.POST("/courses", courseHandler.Create)
	admin.GET("/courses/:id", courseHandler.Get)
	admin.PUT("/courses/:id", courseHandler.Update)
	admin.DELETE("/courses/:id", courseHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
