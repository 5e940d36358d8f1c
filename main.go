package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "ridemarket/internal/config"
	router "ridemarket/internal/http"
	"ridemarket/internal/http/handlers"
	"ridemarket/internal/mq"
	"ridemarket/internal/repositories"
	"ridemarket/internal/services"
	"ridemarket/internal/store"
	"ridemarket/internal/ticket"
	"ridemarket/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	log := utils.Logger()
	defer func() { _ = log.Sync() }()

	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	st := store.New()
	seed, source, err := loadSeed(env)
	if err != nil {
		log.Fatalw("load seed failed", "source", source, "error", err)
	}
	if err := st.Load(seed); err != nil {
		log.Fatalw("seed rejected", "source", source, "error", err)
	}
	log.Infow("store seeded", "source", source, "trips", len(seed.Trips), "bookings", len(seed.Bookings))

	signer, err := ticket.NewSigner(env.TicketSigner, []byte(env.TicketSignerKey))
	if err != nil {
		log.Fatalw("invalid ticket signer", "error", err)
	}

	var publisher mq.Publisher = mq.NopPublisher{}
	if env.AMQPURL != "" {
		p, err := mq.NewAMQPPublisher(env.AMQPURL, env.EventsExchange)
		if err != nil {
			log.Fatalw("connect rabbitmq failed", "error", err)
		}
		publisher = p
		log.Infow("publishing events", "exchange", env.EventsExchange)
	}
	defer func() { _ = publisher.Close() }()

	r := router.NewRouter(env, handlers.Handlers{
		Runtime:     services.Runtime{Store: st, Publisher: publisher},
		Signer:      signer,
		OneTimeScan: env.TicketOneTimeScan,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infow("server listening", "addr", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
		return
	}
	log.Infow("server stopped")
}

// loadSeed picks the seed source: YAML file, then MySQL, then built-in data.
func loadSeed(env intconfig.Env) (store.Seed, string, error) {
	now := utils.NowUTC()
	switch {
	case env.SeedFile != "":
		seed, err := store.LoadSeedFile(env.SeedFile, now)
		return seed, "file", err
	case env.SeedDSN != "":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		db, err := intconfig.ConnectSeedDB(ctx, env.SeedDSN)
		if err != nil {
			return store.Seed{}, "mysql", err
		}
		defer db.Close()
		seed, err := repositories.SeedRepository{DB: db}.Load(ctx, now)
		return seed, "mysql", err
	default:
		return store.DefaultSeed(now), "builtin", nil
	}
}
