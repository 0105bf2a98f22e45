// Package main provides wastatectl, an operator tool for wastate sessions:
// list session prefixes, tear a session down, and inspect stored credentials.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/MrEthical07/wastate/internal/confloader"
	"github.com/MrEthical07/wastate/redisstate"
)

const commandTimeout = 30 * time.Second

func main() {
	app := &cli.App{
		Name:  "wastatectl",
		Usage: "Inspect and manage wastate sessions in Redis",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config (env WASTATE_* overrides)",
			},
			&cli.StringFlag{
				Name:    "layout",
				Aliases: []string{"l"},
				Value:   "flat",
				Usage:   "Storage layout: flat or grouped",
			},
		},
		Commands: []*cli.Command{
			sessionsCommand(),
			credsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func sessionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "Manage stored sessions",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all session prefixes",
				Action: sessionsList,
			},
			{
				Name:      "teardown",
				Usage:     "Delete all data for a session",
				ArgsUsage: "PREFIX",
				Action:    sessionsTeardown,
			},
		},
	}
}

func credsCommand() *cli.Command {
	return &cli.Command{
		Name:  "creds",
		Usage: "Inspect stored credentials",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a session's credentials summary",
				ArgsUsage: "PREFIX",
				Action:    credsShow,
			},
		},
	}
}

func sessionsList(c *cli.Context) error {
	client, _, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(c.Context, commandTimeout)
	defer cancel()

	var prefixes []string
	switch layout(c) {
	case "flat":
		prefixes, err = redisstate.ListFlatSessions(ctx, client)
	case "grouped":
		prefixes, err = redisstate.ListGroupedSessions(ctx, client)
	default:
		return fmt.Errorf("unknown layout %q", layout(c))
	}
	if err != nil {
		return err
	}

	for _, prefix := range prefixes {
		fmt.Println(prefix)
	}
	return nil
}

func sessionsTeardown(c *cli.Context) error {
	prefix := c.Args().First()
	if prefix == "" {
		return fmt.Errorf("usage: wastatectl sessions teardown PREFIX")
	}

	client, logger, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(c.Context, commandTimeout)
	defer cancel()

	switch layout(c) {
	case "flat":
		err = redisstate.TeardownFlat(ctx, client, prefix)
	case "grouped":
		err = redisstate.TeardownGrouped(ctx, client, prefix)
	default:
		return fmt.Errorf("unknown layout %q", layout(c))
	}
	if err != nil {
		return err
	}

	logger.Info("session removed", "prefix", prefix, "layout", layout(c))
	return nil
}

func credsShow(c *cli.Context) error {
	prefix := c.Args().First()
	if prefix == "" {
		return fmt.Errorf("usage: wastatectl creds show PREFIX")
	}

	client, logger, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(c.Context, commandTimeout)
	defer cancel()

	var store redisstate.Store
	switch layout(c) {
	case "flat":
		store, err = redisstate.OpenFlat(ctx, client, prefix, redisstate.WithLogger(logger))
	case "grouped":
		store, err = redisstate.OpenGrouped(ctx, client, prefix, redisstate.WithLogger(logger))
	default:
		return fmt.Errorf("unknown layout %q", layout(c))
	}
	if err != nil {
		return err
	}

	// Private key material stays out of operator output.
	creds := store.Creds()
	fmt.Printf("device id:        %s\n", creds.DeviceID)
	fmt.Printf("registration id:  %d\n", creds.RegistrationID)
	fmt.Printf("registered:       %t\n", creds.Registered)
	fmt.Printf("next pre-key id:  %d\n", creds.NextPreKeyID)
	fmt.Printf("account sync ctr: %d\n", creds.AccountSyncCounter)
	return nil
}

func layout(c *cli.Context) string {
	return c.String("layout")
}

func setup(c *cli.Context) (*redis.Client, hclog.Logger, func(), error) {
	cfg, err := confloader.Load(c.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "wastatectl",
		Level: hclog.LevelFromString(cfg.Log.Level),
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return client, logger, func() { client.Close() }, nil
}
