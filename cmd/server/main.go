package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/peetznvr/prsi-414/internal/config"
	"github.com/peetznvr/prsi-414/internal/game"
	"github.com/peetznvr/prsi-414/internal/history"
	"github.com/peetznvr/prsi-414/internal/ws"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	hist := history.NewPublisher(cfg.RedisAddr)
	if hist != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := hist.Ping(ctx); err != nil {
			log.WithError(err).Warn("redis unreachable, action history disabled")
			hist = nil
		}
		cancel()
		defer hist.Close()
	}

	table := game.New(log, hist)
	hub := ws.NewHub(table, cfg.MinPlayers, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.WithField("addr", cfg.Addr).Info("listening")
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
