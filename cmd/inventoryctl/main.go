package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/Skotchmaster/inventory/internal/config"
	"github.com/Skotchmaster/inventory/internal/console"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/pkg/client"
)

func main() {
	config.LoadEnvFile(".env")

	storage := client.NewFileStorage(config.EnvDefault("INVENTORY_STATE", defaultStatePath()))
	api := client.NewClient(config.EnvDefault("INVENTORY_URL", "http://localhost:8080"), storage)
	ui := console.NewApp(
		api,
		client.NewAuthContext(api, storage),
		os.Stdin,
		os.Stdout,
		logging.NewWithWriter(os.Stderr, config.EnvDefault("LOG_LEVEL", "error")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(ui).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".inventory.json"
	}
	return filepath.Join(dir, "inventory", "local.json")
}

func describe(err error) string {
	switch {
	case errors.Is(err, console.ErrLoginRequired):
		return "login required: run inventoryctl login"
	case errors.Is(err, console.ErrForbidden):
		return "admin role required"
	}
	return err.Error()
}
