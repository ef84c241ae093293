package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"studysphere/internal/config"
	"studysphere/internal/database"
	"studysphere/internal/guard"
	"studysphere/internal/middleware"
	"studysphere/internal/modules/admin"
	"studysphere/internal/modules/auth"
	"studysphere/internal/modules/booking"
	"studysphere/internal/modules/material"
	"studysphere/internal/modules/notify"
	"studysphere/internal/modules/payment"
	"studysphere/internal/modules/session"
	jwtsvc "studysphere/internal/pkg/jwt"
	"studysphere/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewGatewayPaymentRepository(db)
	materialRepo := repository.NewMaterialRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notify.NewHub()
	defer hub.Close()
	notifyService := notify.NewService(hub, log.Printf)
	notifyHandler := notify.NewHandler(hub, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	sessionService := session.NewService(sessionRepo, userRepo, bookingRepo, notifyService)
	sessionHandler := session.NewHandler(sessionService)

	// The booking and payment services reference each other: enrollment
	// defers paid sessions to the gateway, and the confirmed callback
	// records the booking.
	bookingService := booking.NewService(bookingRepo, sessionRepo, nil)
	paymentService := payment.NewService(paymentRepo, bookingService, payment.GatewayConfig{
		MerchantLogin: cfg.GatewayMerchantLogin,
		Password1:     cfg.GatewayPassword1,
		Password2:     cfg.GatewayPassword2,
		BaseURL:       cfg.GatewayBaseURL,
		ResultURL:     cfg.GatewayResultURL,
		SuccessURL:    cfg.GatewaySuccessURL,
		IsTest:        cfg.GatewayIsTest,
	}, log.Printf)
	bookingService.SetPaymentInitiator(paymentService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)

	materialService := material.NewService(materialRepo, sessionRepo, bookingRepo)
	materialHandler := material.NewHandler(materialService)

	adminService := admin.NewService(userRepo, sessionRepo, bookingRepo)
	adminHandler := admin.NewHandler(adminService, sessionService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		// Public: signup/login, catalog browsing, gateway callbacks and
		// the websocket endpoint (it authenticates via query token).
		authHandler.RegisterPublicRoutes(v1)
		sessionHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)
		notifyHandler.RegisterRoutes(v1)

		// Any authenticated role.
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j), middleware.RequireCapability(guard.CapAnyAuthenticated, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			materialHandler.RegisterAuthenticatedRoutes(protected)
		}

		studentGroup := v1.Group("/")
		studentGroup.Use(middleware.JWTAuth(j), middleware.RequireCapability(guard.CapStudent, userRepo))
		{
			bookingHandler.RegisterRoutes(studentGroup)
		}

		tutorGroup := v1.Group("/")
		tutorGroup.Use(middleware.JWTAuth(j), middleware.RequireCapability(guard.CapTutor, userRepo))
		{
			sessionHandler.RegisterTutorRoutes(tutorGroup)
			materialHandler.RegisterTutorRoutes(tutorGroup)
		}

		adminGroup := v1.Group("/")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly(userRepo))
		{
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
