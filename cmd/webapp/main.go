package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"hoteldesk/internal/adapters/backoffice"
	server "hoteldesk/internal/adapters/http_server"
	"hoteldesk/internal/adapters/observability"
	redisad "hoteldesk/internal/adapters/redis"
	"hoteldesk/internal/app"
	"hoteldesk/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	tokens := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionKey)
	defer func() { _ = tokens.Close() }()

	// The client notifies the session when the backend rejects the token so
	// the guard redirects to login on the next request. Wire-up order means
	// session must exist before the client does, hence the indirection.
	var session *app.Session
	client, err := backoffice.New(cfg.APIBase, tokens, func() {
		if session != nil {
			session.HandleAuthFailure()
		}
	}, cfg.APITimeout, cfg.APIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("backoffice client init failed")
	}
	session = app.NewSession(client, tokens)

	initCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := session.Init(initCtx); err != nil {
		log.Fatal().Err(err).Msg("session init failed")
	}
	cancel()

	// page controllers
	hotels := app.NewHotelListController(client)
	detail := app.NewHotelDetailController(client, client)
	adjustments := app.NewRateAdjustmentsController(client, client)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Session:     session,
		Hotels:      hotels,
		Detail:      detail,
		Adjustments: adjustments,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Str("api", cfg.APIBase).Msg("webapp listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
