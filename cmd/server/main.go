package main

import (
	"log"
	"net/http"

	_ "beingiitian/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"beingiitian/internal/auth"
	"beingiitian/internal/cache"
	"beingiitian/internal/config"
	"beingiitian/internal/db"
	"beingiitian/internal/handler"
	"beingiitian/internal/model"
	"beingiitian/internal/repository"
	"beingiitian/internal/router"
	"beingiitian/internal/service"
)

// @title BeingIITian API
// @version 1.0
// @description Education platform API with cookie-session authentication, a course catalog, and role-based admin surface.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.MentorProfile{},
		&model.AdminProfile{},
		&model.Course{},
		&model.Enrollment{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	enrollmentRepo := repository.NewEnrollmentRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	cookieManager := auth.NewCookieManager(cfg.IsProduction())

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, courseRepo, cacheClient)
	courseService := service.NewCourseService(courseRepo, cacheClient)
	paymentService := service.NewPaymentService(userRepo, courseRepo, paymentRepo, enrollmentRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cookieManager)
	userHandler := handler.NewUserHandler(userService)
	courseHandler := handler.NewCourseHandler(courseService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	router.Register(e, jwtService, authHandler, userHandler, courseHandler, paymentHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
