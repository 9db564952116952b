package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "admissions-backend/internal/adapter/http"
	appmw "admissions-backend/internal/adapter/middleware"
	"admissions-backend/internal/adapter/repository/mysql"
	"admissions-backend/internal/config"
	"admissions-backend/internal/hash"
	"admissions-backend/internal/infrastructure/blob"
	"admissions-backend/internal/infrastructure/cache"
	"admissions-backend/internal/infrastructure/db"
	"admissions-backend/internal/schema"
	"admissions-backend/internal/usecase/access"
	"admissions-backend/internal/usecase/admission"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	// schema failures are fatal: operator must resolve before serving
	if err := schema.Ensure(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	photos, err := blob.NewLocal(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	hasher, err := hash.Select(cfg.HashScheme)
	if err != nil {
		log.Fatal(err)
	}
	if hasher.Scheme() == hash.SchemeSHA256 {
		log.Println("warning: running with the degraded sha256 hash scheme")
	}
	if cfg.EscrowEnabled {
		log.Println("plaintext escrow enabled (set ESCROW_ENABLED=false to disable)")
	}

	appRepo := mysql.NewApplicationRepository(gdb)
	credRepo := mysql.NewCredentialRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	admissions := admission.NewUsecase(appRepo, credRepo, tx, hasher, photos, cfg.EscrowEnabled)
	accessUC := access.NewUsecase(credRepo, appRepo, hasher, cfg.EscrowEnabled)

	h := httpadp.NewHandler()
	ah := httpadp.NewAdmissionHandler(admissions)
	ch := httpadp.NewAccessHandler(accessUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/admissions", ah.CreateAdmission, idemp)
	e.GET("/admissions", ah.ListAdmissions)
	e.GET("/admissions/:id", ah.GetAdmission)
	e.POST("/admissions/:id/approve", ah.Approve, idemp)
	e.POST("/admissions/:id/disapprove", ah.Disapprove, idemp)
	e.POST("/admissions/:id/credentials/regenerate", ah.RegenerateCredential, idemp)
	e.POST("/admissions/:id/credentials/recover", ch.RecoverCredential)

	e.POST("/check-admission", ch.CheckAdmission)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
