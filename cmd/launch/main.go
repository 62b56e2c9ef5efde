package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"crossgate/internal/config"
	"crossgate/internal/launcher"
	"crossgate/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	idToken := flag.String("id-token", os.Getenv("CROSSGATE_ID_TOKEN"), "identity token of the current session")
	flag.Parse()

	if *idToken == "" {
		return fmt.Errorf("an identity token is required (-id-token or CROSSGATE_ID_TOKEN)")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	client := launcher.NewClient(cfg.Launch.SourceURL)
	l := launcher.NewLauncher(
		cfg.Launch.TargetBaseURL,
		cfg.Launch.TargetApp,
		client,
		launcher.NewBrowserNavigator(),
		zlog,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ssoURL, err := l.Launch(ctx, *idToken)
	if err != nil {
		return fmt.Errorf("launch failed: %w", err)
	}

	fmt.Printf("opened %s\n", ssoURL)
	return nil
}
