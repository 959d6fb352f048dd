package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dayne-web/internal/adapter/api"
	"dayne-web/internal/adapter/web"
	"dayne-web/internal/config"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	h, err := web.NewHandler(client, time.Duration(cfg.ManageTokenTTLDays)*24*time.Hour)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())

	h.Register(e)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s (loan API at %s)", addr, cfg.APIBaseURL)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
