package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/eringen/inkpost"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "version":
		fmt.Printf("inkpost %s\n", version)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	cfg, err := inkpost.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := inkpost.SetupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "serve":
		err = runServe(ctx, cfg)
	case "init":
		err = runInit(cfg, os.Stdout)
	case "list":
		err = runList(ctx, cfg, os.Stdout)
	case "tags":
		err = runTags(ctx, cfg, os.Stdout)
	case "years":
		err = runYears(ctx, cfg, os.Stdout)
	case "search":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: inkpost search <query>")
			os.Exit(1)
		}
		err = runSearch(ctx, cfg, strings.Join(os.Args[2:], " "), os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("command failed")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`inkpost - A Markdown blog served with Go, Echo, and templ

Usage:
  inkpost <command> [arguments]

Commands:
  serve            Start the web server
  init             Write the sample posts into CONTENT_DIR
  list             List posts, newest first
  tags             List every tag
  years            List the years that have posts
  search <query>   Search titles, excerpts and tags
  version          Print the inkpost version
  help             Show this help message

Configuration is read from inkpost.yaml and the environment
(SITE_NAME, CONTENT_DIR, CONTENT_BACKEND, S3_BUCKET, ...).

Examples:
  inkpost init
  CONTENT_DIR=./posts inkpost serve
  inkpost search markdown`)
}
