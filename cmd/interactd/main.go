package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pharmakit/interaction-checker/internal/common"
	"github.com/pharmakit/interaction-checker/internal/explain"
	"github.com/pharmakit/interaction-checker/internal/explain/openai"
	"github.com/pharmakit/interaction-checker/internal/server"
	"github.com/pharmakit/interaction-checker/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", "err", err)
		os.Exit(1)
	}

	st, err := store.Load(cfg.Data.Path)
	if err != nil {
		logger.Error("loading drug table", "path", cfg.Data.Path, "err", err)
		os.Exit(1)
	}
	logger.Info("store.loaded",
		"path", st.Path(),
		"drugs", st.Len(),
		"attribute_columns", len(st.AttributeColumns()),
	)

	var explainer explain.Explainer = explain.Disabled{}
	if cfg.LLM.APIKey != "" {
		explainer = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		logger.Info("explainer.enabled", "model", cfg.LLM.Model)
	} else {
		logger.Info("explainer.disabled", "reason", "no OPENAI_API_KEY")
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(st, explainer, logger)

	// A /check/explain request runs up to one adapter call per drug
	// pair, sequentially; the write deadline must cover the worst case.
	maxPairs := server.MaxCheckDrugs * (server.MaxCheckDrugs - 1) / 2
	writeTimeout := time.Duration(maxPairs)*cfg.LLM.Timeout + 15*time.Second

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(cfg.Server.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http.serving", "addr", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
