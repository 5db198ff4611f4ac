package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/eringen/inkpost"
	"github.com/eringen/inkpost/lambdaapi"
)

func main() {
	_ = os.Setenv("AWS_SDK_LOAD_CONFIG", "1")

	cfg, err := inkpost.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := inkpost.SetupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("setup logging")
	}
	if cfg.S3Bucket != "" {
		cfg.ContentBackend = "s3"
	}
	// Lambda file systems are read-only outside /tmp.
	cfg.BootstrapSamples = false

	app := inkpost.New(cfg)
	if err := app.OpenContent(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("open content")
	}
	log.Info().Str("backend", cfg.ContentBackend).Msg("lambda ready")
	lambda.Start(lambdaapi.New(app.Content).Handle)
}
