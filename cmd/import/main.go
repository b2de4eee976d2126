package main

import (
	"context"
	"errors"
	"os"

	"backend-roamio/internal/catalog"
	"backend-roamio/internal/config"
	"backend-roamio/internal/db"
	"backend-roamio/internal/importer"
	"backend-roamio/internal/logging"

	"github.com/jackc/pgx/v5"
)

var errUsage = errors.New("usage: import <dataset.csv|dataset.xlsx>")

var (
	loadConfig      = config.Load
	connectPostgres = db.ConnectPostgres
	exit            = os.Exit
)

func main() {
	cfg := loadConfig()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(context.Background(), cfg, os.Args[1:]); err != nil {
		logging.Error().Err(err).Msg("import failed")
		exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	pool, err := connectPostgres(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return importTx(ctx, pool, args[0])
}

// beginner is satisfied by *pgxpool.Pool.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// importTx loads the whole file in one transaction; a failing row leaves
// the catalog untouched.
func importTx(ctx context.Context, conn beginner, path string) (err error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = importInto(ctx, catalog.NewService(tx), path); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func importInto(ctx context.Context, store importer.Creator, path string) error {
	report, err := importer.New(store).ImportFile(ctx, path)
	if err != nil {
		return err
	}
	evt := logging.Info().Str("file", path).Int("skipped", report.Skipped)
	for _, kind := range catalog.Kinds {
		evt = evt.Int(kind.Table(), report.Imported[kind])
	}
	evt.Msg("import complete")
	return nil
}

