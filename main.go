package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/go-chi/oauth"
	"github.com/robfig/cron/v3"

	"github.com/mbolis/survey-studio/app"
	"github.com/mbolis/survey-studio/config"
	"github.com/mbolis/survey-studio/httpx"
	"github.com/mbolis/survey-studio/log"
	"github.com/mbolis/survey-studio/repository"
	"github.com/mbolis/survey-studio/routes"
	"github.com/mbolis/survey-studio/routes/middlewares"
	"github.com/mbolis/survey-studio/store"
)

const (
	// idle rate limiter entries older than this are dropped by the hourly sweep
	limiterIdle = 2 * time.Hour
	sweepSpec   = "@every 1h"
)

func main() {
	fmt.Println(color.CyanString("Survey Studio"))
	color.HiBlack("=============\n")

	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetJSON(cfg.LogJSON)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	kv, err := store.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal("main.store.open:", err)
	}
	defer kv.Close()
	log.Infof("storage: %s", cfg.Storage)

	tokens := repository.NewTokenRepo(kv, cfg.RefreshTTL)
	bearerServer := oauth.NewBearerServer(
		cfg.TokenSecret,
		cfg.TokenTTL,
		httpx.CredentialsVerifier(cfg, tokens),
		nil,
	)

	app := app.App{
		BearerServer: bearerServer,
		Config:       cfg,
		Surveys:      repository.NewSurveyRepo(kv),
		Submissions:  repository.NewSubmissionRepo(kv),
		Tokens:       tokens,
	}
	limiter := middlewares.NewRateLimiter(cfg.SubmitRate)

	quartz := cron.New(cron.WithLogger(cron.PrintfLogger(log.Logger)))
	if err := schedule(quartz, app, limiter); err != nil {
		log.Fatal("main.cron:", err)
	}
	quartz.Start()
	defer quartz.Stop()

	handler := routes.Wire(app, limiter)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func schedule(quartz *cron.Cron, app app.App, limiter *middlewares.RateLimiter) error {
	_, err := quartz.AddFunc(sweepSpec, func() { sweep(app, limiter) })
	return err
}

func sweep(app app.App, limiter *middlewares.RateLimiter) {
	removed, err := app.Tokens.Sweep(context.Background())
	if err != nil {
		log.Errorf("sweep.tokens: %s", err)
	} else if removed > 0 {
		log.Debugf("sweep.tokens: %d expired", removed)
	}

	if dropped := limiter.Sweep(limiterIdle); dropped > 0 {
		log.Debugf("sweep.limiters: %d idle", dropped)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	errorLog := log.Writer(log.ErrorLevel)
	defer errorLog.Close()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ErrorLog:     stdlog.New(errorLog, "", 0),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
