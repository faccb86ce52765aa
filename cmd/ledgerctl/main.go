// Command ledgerctl runs maintenance tasks against the ledger store.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/balance_ledger/internal/core/services"
	"github.com/SscSPs/balance_ledger/internal/platform/config"
	"github.com/SscSPs/balance_ledger/internal/platform/rates"
	"github.com/SscSPs/balance_ledger/internal/platform/storage"
	"github.com/alecthomas/kong"
)

var cli struct {
	Migrate bool `help:"Apply pending migrations before running the command."`
	Commands
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("ledgerctl"),
		kong.Description("Maintenance commands for the balance ledger."),
		kong.UsageOnError(),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	kctx.FatalIfErrorf(err)

	catalogue, err := rates.Load(cfg.RatesFile, cfg.BaseCurrency)
	kctx.FatalIfErrorf(err)

	ctx := context.Background()
	repos, closeStore, err := storage.Open(ctx, cfg, logger, cli.Migrate)
	kctx.FatalIfErrorf(err)
	defer closeStore()

	container, err := services.NewServiceContainer(cfg, repos, services.Catalogue{
		Currencies: catalogue.Currencies,
		Rates:      catalogue.Rates,
	})
	kctx.FatalIfErrorf(err)

	err = kctx.Run(&app{ctx: ctx, services: container, out: kctx.Stdout})
	if err != nil {
		closeStore()
	}
	kctx.FatalIfErrorf(err)
}
