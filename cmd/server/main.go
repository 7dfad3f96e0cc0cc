package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/jortega-dev/job-board-api/internal/config"
	"github.com/jortega-dev/job-board-api/internal/database"
	"github.com/jortega-dev/job-board-api/internal/handler"
	"github.com/jortega-dev/job-board-api/internal/queue"
	"github.com/jortega-dev/job-board-api/internal/repository"
	"github.com/jortega-dev/job-board-api/internal/router"
	"github.com/jortega-dev/job-board-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	companies := repository.NewCompanyRepo(db)
	offers := repository.NewOfferRepo(db)
	skills := repository.NewSkillRepo(db)
	apps := repository.NewApplicationRepo(db)

	events := queue.NewPublisher(cfg.AMQPURL)
	authSvc := service.NewAuthService(users, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)
	companySvc := service.NewCompanyService(companies, users)
	offerSvc := service.NewOfferService(offers, skills, companies, events)
	appSvc := service.NewApplicationService(apps, offers, events)

	if cfg.AMQPURL != "" {
		go queue.StartActivityConsumer(cfg.AMQPURL)
	} else {
		log.Printf("AMQP_URL not set; domain events disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Companies:    handler.NewCompanyHandler(companySvc),
		Offers:       handler.NewOfferHandler(offerSvc),
		Applications: handler.NewApplicationHandler(appSvc),
		Skills:       handler.NewSkillHandler(skills),
	}, cfg.JWTSecret, authSvc, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
