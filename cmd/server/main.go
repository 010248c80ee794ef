package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/showdesk/internal/config"
	"github.com/evergreenmedia/showdesk/internal/database"
	"github.com/evergreenmedia/showdesk/internal/handler"
	"github.com/evergreenmedia/showdesk/internal/queue"
	"github.com/evergreenmedia/showdesk/internal/repository"
	"github.com/evergreenmedia/showdesk/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; middleware degrades

	users := repository.NewUserRepo(db)
	shows := repository.NewShowRepo(db)
	ledger := repository.NewLedgerRepo(db)

	h := router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users),
		Shows:   handler.NewShowHandler(shows),
		Partner: handler.NewPartnerHandler(cfg, users, shows),
		Ledger:  handler.NewLedgerHandler(ledger),
		CSV:     handler.NewCSVHandler(shows),
	}

	// The audit consumer tails show.changed and appends to
	// logs/show-audit.log. It reconnects forever on its own.
	go func() {
		if err := queue.StartAuditConsumer(cfg.AMQPURL); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, h, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
