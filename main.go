package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"helpdesk_server/config"
	"helpdesk_server/internal/bootstrap"
)

func main() {
	// Load .env file if exists (for local development)
	_ = godotenv.Load()

	mode := flag.String("mode", "all", "Run mode: api, retriever, all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// Logger not built yet
		panic(err)
	}

	log := bootstrap.NewLogger(cfg)

	deps, cleanup, err := bootstrap.NewDependencies(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dependencies")
	}
	defer cleanup()

	runAPI := *mode == "api" || *mode == "all"
	runRetriever := *mode == "retriever" || *mode == "all"
	if !runAPI && !runRetriever {
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}

	var worker interface {
		Start()
		Stop()
	}
	if runRetriever {
		w := bootstrap.NewRetrieverWorker(cfg, deps)
		w.Start()
		worker = w
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if runAPI {
		app := bootstrap.NewAPI(cfg, deps)

		go func() {
			<-sigChan
			log.Info().Msg("shutting down...")
			if worker != nil {
				worker.Stop()
			}
			if err := app.Shutdown(); err != nil {
				log.Error().Err(err).Msg("error shutting down HTTP server")
			}
		}()

		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("starting API server")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
		return
	}

	// Retriever-only mode: block until signalled.
	<-sigChan
	log.Info().Msg("shutting down...")
	worker.Stop()
}
