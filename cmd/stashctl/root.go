package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stash/internal/bootstrap"
	"github.com/kailas-cloud/stash/internal/config"
	"github.com/kailas-cloud/stash/internal/db"
	"github.com/kailas-cloud/stash/internal/domain/item"
	logpkg "github.com/kailas-cloud/stash/internal/logger"
	itemrepo "github.com/kailas-cloud/stash/internal/repository/item"
	searchuc "github.com/kailas-cloud/stash/internal/usecase/search"
	"github.com/kailas-cloud/stash/internal/version"
)

// app holds flags shared by every subcommand.
type app struct {
	out        io.Writer
	configPath string
	file       string
	noColor    bool
	logLevel   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "stashctl",
		Short: "Search saved links, files and notes",
		Long: `stashctl runs the stash search engine locally.

Items come from a JSON export (--file) or from the configured store.

Examples:
  stashctl search react --file items.json
  stashctl search --type note --tags work,ideas
  stashctl suggest interv --no-results
  stashctl items --limit 10
  stashctl import items.json`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.noColor {
				color.NoColor = true
			}
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: config/<ENV>.yaml)")
	pf.StringVarP(&a.file, "file", "f", "", "read items from a JSON export instead of the store")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newSearchCmd(a),
		newSuggestCmd(a),
		newItemsCmd(a),
		newImportCmd(a),
	)
	return root
}

// loadConfig reads --config, the ENV config file, or falls back to defaults
// when working from an export file.
func (a *app) loadConfig() (config.Config, error) {
	if a.configPath != "" {
		return config.LoadFile(a.configPath)
	}
	cfg, err := config.Load(config.GetEnv())
	if err != nil {
		if a.file == "" {
			return config.Config{}, err
		}
		cfg = config.Config{}
		cfg.ApplyDefaults()
	}
	return cfg, nil
}

func (a *app) logger() *zap.Logger {
	l, err := logpkg.New("cli", a.logLevel)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// loadConfigForStore ignores --file: the store is always the target.
func (a *app) loadConfigForStore() (config.Config, error) {
	if a.configPath != "" {
		return config.LoadFile(a.configPath)
	}
	return config.Load(config.GetEnv())
}

// openRepo connects to the configured store. The caller closes the store.
func (a *app) openRepo(ctx context.Context, cfg config.Config, logger *zap.Logger) (*itemrepo.Repo, db.Store, error) {
	store, err := bootstrap.OpenStore(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("store unreachable: %w", err)
	}
	return itemrepo.New(store, cfg.Storage.KeyPrefix, nil, logger), store, nil
}

// loadItems returns the working set from --file or the store.
func (a *app) loadItems(ctx context.Context, cfg config.Config, logger *zap.Logger) ([]item.Item, error) {
	if a.file != "" {
		return itemrepo.ReadFile(a.file)
	}
	repo, store, err := a.openRepo(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return repo.List(ctx)
}

// engine builds a search service loaded with the working set.
func (a *app) engine(ctx context.Context) (*searchuc.Service, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := a.logger()
	items, err := a.loadItems(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	svc := searchuc.New(bootstrap.SearchOptions(cfg.Search, searchuc.WithLogger(logger))...)
	svc.SetContent(items)
	return svc, nil
}
