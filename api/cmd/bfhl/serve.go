package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bfhl/api/internal/ai"
	"bfhl/api/internal/ai/gemini"
	"bfhl/api/internal/ai/openai"
	"bfhl/api/internal/config"
	"bfhl/api/internal/handle"
	"bfhl/api/internal/httpserver"
	"bfhl/api/internal/logger"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig, flagEnvFiles...)
	if err != nil {
		return err
	}
	if p := strings.TrimSpace(flagPort); p != "" {
		cfg.Port = p
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	for _, w := range cfg.Warnings {
		log.Warn("config", zap.String("warning", w))
	}

	gw, err := newGateway(cfg)
	if err != nil {
		return err
	}
	log.Info("ai gateway ready",
		zap.String("provider", gw.Engine().Name()),
		zap.String("model", gw.Engine().GetModel()),
		zap.String("gemini_transport", cfg.GeminiTransport),
		zap.Duration("timeout", cfg.AITimeout),
	)

	srv := httpserver.New(handle.New(cfg, gw, log), log)

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// newGateway binds the gateway to the configured provider once, at startup.
func newGateway(cfg *config.Config) (*ai.Gateway, error) {
	var gem ai.Engine = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	if cfg.GeminiTransport == "sdk" {
		gem = gemini.NewSDK(cfg.GeminiAPIKey, cfg.GeminiModel).WithBaseURL(cfg.GeminiBaseURL)
	}
	engines := &ai.Engines{
		Gemini: gem,
		OpenAI: openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
	}
	eng, err := engines.GetEngine(cfg.AIProvider)
	if err != nil {
		return nil, err
	}
	return ai.NewGateway(eng, cfg.AITimeout), nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
