// Package main is the entry point for rpgmap.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/rpgmap/internal/cli"
	"github.com/samdwyer/rpgmap/internal/telemetry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)

	// Load .env file for local development. Not fatal: variables may be set
	// directly.
	if err := godotenv.Load(); err != nil {
		c.Logger.Debug(".env file not loaded", "err", err)
	}

	setupOTelEnv()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		c.Logger.Warn("telemetry setup failed; continuing without tracing", "err", err)
	} else {
		defer func() {
			// The run context may already be cancelled; flush regardless.
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				c.Logger.Warn("error shutting down telemetry", "err", err)
			}
		}()
	}

	return c.RootCommand().ExecuteContext(ctx)
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set
// and no endpoint has been configured explicitly.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_RPGMAP_API_KEY")
	if apiKey == "" || os.Getenv(telemetry.EndpointEnv) != "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_RPGMAP_DATASET")
	if dataset == "" {
		dataset = "rpgmap"
	}
	os.Setenv(telemetry.EndpointEnv, "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
