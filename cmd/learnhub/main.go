/*
Package main is the entry point for the LearnHub terminal client.

It is responsible for loading configuration, initializing the global logging
system, wiring the platform client and its services, restoring a saved
session, and dispatching the requested command. OS interrupt signals
(SIGINT, SIGTERM) cancel the running command's context.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"learnhub/internal/api"
	"learnhub/internal/app/course"
	"learnhub/internal/app/feedback"
	"learnhub/internal/app/user"
	"learnhub/internal/auth"
	"learnhub/internal/cli"
	"learnhub/internal/configs"
	"learnhub/internal/pkg/errs"
	"learnhub/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Debug().
		Str("environment", cfg.Environment).
		Str("api_url", cfg.BaseURL.String()).
		Str("token_file", cfg.TokenFile).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens := auth.NewFileTokenStore(cfg.TokenFile)
	client := api.NewClient(cfg.BaseURL, cfg.HTTPTimeout, tokens, cfg.RequestRate, cfg.RequestBurst)

	users := user.NewService(client)
	courses := course.NewService(client)
	feedbacks := feedback.NewService(client)

	// The session subscribes to the client's auth-failure hook, so any 401
	// anywhere tears the local session down.
	session := auth.NewSession(tokens, users, client)

	// Restore a saved session before dispatching; a stale token is cleared
	// here and the command runs signed out.
	if err := session.Initialize(ctx); err != nil {
		logx.Logger().Warn().Err(err).Msg("Session restore failed.")
	}

	app := &cli.App{
		Config:   cfg,
		Client:   client,
		Tokens:   tokens,
		Session:  session,
		Users:    users,
		Courses:  courses,
		Feedback: feedbacks,
		Stdout:   os.Stdout,
		Stdin:    os.Stdin,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		if errors.Is(err, cli.ErrHelp) {
			os.Exit(2)
		}
		if errs.CodeOf(err) == errs.ErrUnauthorized {
			fmt.Fprintln(os.Stdout, "Your session has expired. Please sign in again with: learnhub login")
			os.Exit(1)
		}
		app.PrintError(err)
		os.Exit(1)
	}
}
