package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "edfund-backend/internal/adapter/http"
	mw "edfund-backend/internal/adapter/middleware"
	"edfund-backend/internal/adapter/notify"
	"edfund-backend/internal/adapter/repository/mysql"
	"edfund-backend/internal/config"
	"edfund-backend/internal/infrastructure/cache"
	"edfund-backend/internal/infrastructure/db"
	"edfund-backend/internal/usecase/intake"
	"edfund-backend/internal/usecase/payment"
	"edfund-backend/internal/usecase/review"
	watchuc "edfund-backend/internal/usecase/watch"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	broker := notify.NewRedisBroker(rdb)
	repo := mysql.NewLoanRepository(gdb, broker)

	intakeUC := intake.NewUsecase(repo)
	reviewUC := review.NewUsecase(repo)
	watchUC := watchuc.NewUsecase(repo, broker, time.Duration(cfg.WatchTickSecs)*time.Second)
	paymentUC := payment.NewUsecase(repo, payment.Config{
		Address:   cfg.UPIAddress,
		PayeeName: cfg.UPIPayeeName,
	})

	h := httpadp.NewHandler()
	applicant := httpadp.NewApplicantHandler(intakeUC, watchUC, paymentUC)
	admin := httpadp.NewAdminHandler(reviewUC, watchUC, httpadp.AdminConfig{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: time.Duration(cfg.TokenTTLMins) * time.Minute,
	})
	watch := httpadp.NewWatchHandler(watchUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	// ops
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// applicant surface
	api := e.Group("/api")
	api.POST("/applications", applicant.Apply)
	api.GET("/applications", applicant.Lookup)
	api.POST("/applications/top-up", applicant.TopUp)
	api.GET("/applications/:id/payment-link", applicant.PaymentLink)
	api.GET("/watch", watch.ApplicantWatch)

	// administrator surface
	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", admin.Login)

	authed := adminGroup.Group("", mw.AdminAuth([]byte(cfg.JWTSecret)))
	authed.GET("/loans", admin.List)
	authed.GET("/watch", watch.AdminWatch)

	actions := authed.Group("/loans", mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	actions.POST("/:id/approve", admin.Approve)
	actions.POST("/:id/reject", admin.Reject)
	actions.POST("/:id/disburse", admin.Disburse)
	actions.POST("/:id/complete", admin.Complete)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
