package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/config"
	"github.com/chefoverseas/docketify-server/internal/database"
	"github.com/chefoverseas/docketify-server/internal/handler"
	"github.com/chefoverseas/docketify-server/internal/middleware"
	"github.com/chefoverseas/docketify-server/internal/queue"
	"github.com/chefoverseas/docketify-server/internal/repository"
	"github.com/chefoverseas/docketify-server/internal/router"
	"github.com/chefoverseas/docketify-server/internal/service"
	"github.com/chefoverseas/docketify-server/internal/utils"
)

func main() {
	// A local .env is a convenience for development; in production the
	// variables come from the environment itself.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Repositories over the shared pool.
	users := repository.NewUserRepo(db)
	otps := repository.NewOtpRepo(db)
	userSessions := repository.NewUserSessionRepo(db)
	adminAccounts := repository.NewAdminAccountRepo(db)
	adminSessions := repository.NewAdminSessionRepo(db)
	dockets := repository.NewDocketRepo(db)
	contracts := repository.NewContractRepo(db)

	// Core services.
	notifier := queue.NewAmqpNotifier()
	otpSvc := service.NewOTPService(users, otps, notifier,
		cfg.OtpCodeLength, time.Duration(cfg.OtpTTLMin)*time.Minute)
	sessionSvc := service.NewSessionService(users, userSessions, adminAccounts, adminSessions,
		cfg.JWTSecret,
		time.Duration(cfg.UserSessionTTLMin)*time.Minute,
		time.Duration(cfg.AdminSessionTTLMin)*time.Minute)
	docketSvc := service.NewDocketService(users, dockets)

	bootstrapAdmin(cfg, adminAccounts)

	// The delivery worker drains otp.notify and hands codes to the
	// SMS/email gateway; it reconnects on its own and never takes the
	// server down.
	go func() {
		if err := queue.StartOtpDeliveryWorker(); err != nil {
			log.Printf("otp delivery worker stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)

	// Rate limiting protects the anonymous OTP endpoints; when Redis
	// is unreachable the limiter degrades to a pass-through.
	var limiter echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	} else {
		log.Printf("redis unavailable; otp rate limiting disabled")
	}

	authHandler := handler.NewAuthHandler(otpSvc, sessionSvc, users)
	adminAuthHandler := handler.NewAdminAuthHandler(sessionSvc)
	docketHandler := handler.NewDocketHandler(docketSvc, contracts)
	adminUserHandler := handler.NewAdminUserHandler(users, docketSvc, contracts)

	router.RegisterAuth(e, authHandler, limiter)
	router.RegisterCandidate(e, authHandler, docketHandler, sessionSvc)
	router.RegisterAdmin(e, adminAuthHandler, adminUserHandler, sessionSvc)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// bootstrapAdmin upserts the configured administrator account so a
// fresh deployment is usable without manual SQL.  Skipped when the
// bootstrap variables are not set.
func bootstrapAdmin(cfg config.Config, accounts *repository.AdminAccountRepo) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash bootstrap admin password: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := accounts.Upsert(ctx, cfg.AdminEmail, hash); err != nil {
		log.Fatalf("bootstrap admin account: %v", err)
	}
	log.Printf("admin account %s ready", cfg.AdminEmail)
}
