package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Hassnain829/Ai-Sales-Representative/internal/analysis"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/config"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/handler"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/service/ai"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/service/inference"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/service/pipeline"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/service/respond"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/service/training"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/storage/postgres"
	"github.com/Hassnain829/Ai-Sales-Representative/internal/telephony"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Model handles are created once here and injected; they are never
	// rebuilt per request.
	classifier := inference.NewClient(cfg.Inference.Endpoint, cfg.Inference.APIKey, cfg.Inference.Timeout)
	analyzer := analysis.NewAnalyzer(classifier, cfg.Analysis.Candidates, cfg.Analysis.Timeout)

	var textGen respond.TextGenerator
	if cfg.Generation.Enabled() {
		generator, err := ai.NewGenerator(ctx, cfg.Generation)
		if err != nil {
			log.Printf("warning: failed to initialize generative model: %v", err)
			log.Println("continuing with template and fallback tiers only")
		} else {
			textGen = generator
			log.Println("generative response tier initialized")
		}
	} else {
		log.Println("generation credentials not configured, generative tier disabled")
	}

	responder := respond.NewGenerator(textGen, respond.Config{
		Confidence: cfg.Generation.Confidence,
		MaxLength:  cfg.Generation.MaxLength,
		Timeout:    cfg.Generation.Timeout,
	})

	deps := handler.Deps{
		Inference: classifier,
	}

	pipelineDeps := pipeline.Deps{
		Analyzer:  analyzer,
		Responder: responder,
	}

	if cfg.Database.Enabled() {
		db, err := postgres.Open(cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		schemaCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		if err := store.EnsureSchema(schemaCtx); err != nil {
			log.Printf("warning: failed to verify database schema: %v", err)
		} else {
			log.Println("database tables verified")
		}
		cancel()

		pipelineDeps.Recorder = store
		deps.History = store
		deps.Training = training.NewService(store)
		deps.DB = store
	} else {
		log.Println("DATABASE_URL not set, conversation records will not be persisted")
	}

	deps.Pipeline = pipeline.New(pipelineDeps)

	if cfg.Telephony.Enabled() {
		deps.Dialer = telephony.NewTwilioDialer(cfg.Telephony)
		log.Println("telephony dialer initialized")
	} else {
		log.Println("telephony credentials not configured, outbound calls disabled")
	}

	router := handler.NewRouter(deps)
	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("sales agent API listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
