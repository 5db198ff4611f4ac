package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eringen/inkpost"
	"github.com/eringen/inkpost/content"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, cfg inkpost.SiteConfig) error {
	app := inkpost.New(cfg)
	defer app.Close()

	errc := make(chan error, 1)
	go func() { errc <- app.Start(ctx) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}

// runInit writes the sample posts into an empty content directory.
func runInit(cfg inkpost.SiteConfig, out io.Writer) error {
	if cfg.ContentBackend != "fs" {
		return errors.New("init only supports the fs content backend")
	}
	store := content.NewDirStore(cfg.ContentDir)
	if err := store.EnsureSampleContent(); err != nil {
		return err
	}
	fmt.Fprintf(out, "content ready in %s\n", store.Root())
	return nil
}

// openContent builds the read pipeline for the query commands. Sample
// content is never written as a side effect of reading.
func openContent(ctx context.Context, cfg inkpost.SiteConfig) (content.Querier, error) {
	cfg.BootstrapSamples = false
	app := inkpost.New(cfg)
	if err := app.OpenContent(ctx); err != nil {
		return nil, err
	}
	return app.Content, nil
}

func runList(ctx context.Context, cfg inkpost.SiteConfig, out io.Writer) error {
	q, err := openContent(ctx, cfg)
	if err != nil {
		return err
	}
	posts, err := q.AllPosts(ctx)
	if err != nil {
		return err
	}
	return printPosts(out, posts)
}

func runTags(ctx context.Context, cfg inkpost.SiteConfig, out io.Writer) error {
	q, err := openContent(ctx, cfg)
	if err != nil {
		return err
	}
	tags, err := q.AllTags(ctx)
	if err != nil {
		return err
	}
	for _, t := range tags {
		fmt.Fprintln(out, t)
	}
	return nil
}

func runYears(ctx context.Context, cfg inkpost.SiteConfig, out io.Writer) error {
	q, err := openContent(ctx, cfg)
	if err != nil {
		return err
	}
	years, err := q.ArchiveYears(ctx)
	if err != nil {
		return err
	}
	for _, y := range years {
		fmt.Fprintln(out, y)
	}
	return nil
}

func runSearch(ctx context.Context, cfg inkpost.SiteConfig, query string, out io.Writer) error {
	q, err := openContent(ctx, cfg)
	if err != nil {
		return err
	}
	posts, err := q.AllPosts(ctx)
	if err != nil {
		return err
	}
	return printPosts(out, content.Search(posts, query))
}

func printPosts(out io.Writer, posts []content.Post) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Date, p.Slug, p.Title)
	}
	return tw.Flush()
}
