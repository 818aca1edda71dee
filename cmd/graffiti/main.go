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

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/shouni/go-http-kit/pkg/httpkit"

	"github.com/shouni/gemini-graffiti-kit/pkg/config"
	"github.com/shouni/gemini-graffiti-kit/pkg/generator"
	"github.com/shouni/gemini-graffiti-kit/pkg/intake"
	"github.com/shouni/gemini-graffiti-kit/pkg/session"
	"github.com/shouni/gemini-graffiti-kit/pkg/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("サーバーが異常終了しました", "error", err)
		os.Exit(1)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		TimeFormat: time.Kitchen,
		Level:      level,
	}))
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("サーバーを起動します",
		"addr", cfg.ListenAddr,
		"model", cfg.Model,
		"aspect_ratio", cfg.AspectRatio,
		"api_key", cfg.MaskedAPIKey(),
	)

	aiClient, err := generator.NewGenAIClient(ctx, generator.ClientConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL})
	if err != nil {
		return err
	}

	var coreOpts []generator.CoreOption
	if cfg.CompressPayload {
		coreOpts = append(coreOpts, generator.WithCompression(cfg.CompressionQuality))
	}
	core, err := generator.NewGeminiImageCore(aiClient, coreOpts...)
	if err != nil {
		return err
	}

	gen, err := generator.NewGeminiGenerator(core, cfg.Model,
		generator.WithPrompt(cfg.Prompt),
		generator.WithSystemPrompt(cfg.SystemPrompt),
		generator.WithAspectRatio(cfg.AspectRatio),
		generator.WithSeed(cfg.Seed),
	)
	if err != nil {
		return err
	}

	store := web.NewSessionStore(func() (*session.Controller, error) {
		return session.NewController(gen, session.WithTimeout(cfg.GenerationTimeout))
	}, cfg.SessionTTL)

	loader := intake.NewLoader(httpkit.New(cfg.FetchTimeout), cfg.MaxUploadBytes)

	srv, err := web.NewServer(store, loader)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           web.NewRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("サーバーを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
