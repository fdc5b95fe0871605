// Eywa exposes hotel search and booking as MCP tools.
//
// Usage:
//
//	eywa [stdio]                      serve MCP over stdin/stdout
//	eywa serve --port 8080            serve the tools over HTTP
//	eywa call hotel/search --args '{...}'
//	eywa version
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/app"
	"github.com/alex-user-go/eywa/internal/config"
	"github.com/alex-user-go/eywa/internal/obs"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cliApp := &cli.App{
		Name:    "eywa",
		Usage:   "Hotel search and booking tools for AI agents",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Action:  runStdio,
		Commands: []*cli.Command{
			{
				Name:   "stdio",
				Usage:  "Serve MCP over stdin/stdout (default)",
				Action: runStdio,
			},
			{
				Name:  "serve",
				Usage: "Serve the tools over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Usage:   "HTTP listen port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:      "call",
				Usage:     "Run one tool call and print the JSON result",
				ArgsUsage: "<tool>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "args",
						Aliases: []string{"a"},
						Value:   "{}",
						Usage:   "Tool arguments as a JSON object",
					},
				},
				Action: runCall,
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, c.App.Version)
					return nil
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and wires the service. The returned cleanup
// flushes the logger and releases connections.
func bootstrap() (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := obs.NewLogger(cfg.Server.Env, cfg.Server.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	a, err := app.New(cfg, version, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return a, cleanup, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func runStdio(c *cli.Context) error {
	a, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext(c.Context)
	defer stop()

	return a.ServeStdio(ctx, os.Stdin, os.Stdout)
}

func runServe(c *cli.Context) error {
	if port := c.String("port"); port != "" {
		if err := os.Setenv("PORT", port); err != nil {
			return err
		}
	}

	a, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext(c.Context)
	defer stop()

	return a.ServeHTTP(ctx)
}

func runCall(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return cli.Exit("tool name is required, e.g. eywa call hotel/search", 2)
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(c.String("args")), &args); err != nil {
		return fmt.Errorf("parse --args: %w", err)
	}

	a, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	res := a.Tools().Call(c.Context, name, args)
	fmt.Fprintln(c.App.Writer, res.Text)
	if res.IsError {
		return cli.Exit("", 1)
	}
	return nil
}
