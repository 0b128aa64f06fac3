// Package main is the entry point for Boardwalk.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/joho/godotenv"

	"github.com/samdwyer/boardwalk/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_BOARDWALK_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	// Exporter setup can hit transient network failures on cold starts;
	// retry briefly before giving up on observability.
	shutdown, err := backoff.Retry(ctx,
		func() (func(context.Context) error, error) {
			return telemetry.Setup(ctx)
		},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
		backoff.WithMaxElapsedTime(5*time.Second),
	)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Session will run without observability")
		// Continue without telemetry - the game still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	Execute(ctx)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_BOARDWALK_API_KEY")
	dataset := os.Getenv("HONEYCOMB_BOARDWALK_DATASET")
	if dataset == "" {
		dataset = "boardwalk" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
