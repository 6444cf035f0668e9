package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/voidshard/beanbook/pkg/config"
	"github.com/voidshard/beanbook/pkg/domain"
	"github.com/voidshard/beanbook/pkg/logger"
	"github.com/voidshard/beanbook/pkg/source"
	"github.com/voidshard/beanbook/pkg/store"
	"github.com/voidshard/beanbook/pkg/taxonomy"
)

// setup loads the configuration and returns a context carrying the logger.
func (g *globals) setup() (context.Context, *config.Config, error) {
	if err := config.LoadEnvFile(g.EnvFile); err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", g.EnvFile, err)
	}
	cfg := config.Load()
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.LogLevel)
	return logger.WithContext(context.Background(), log), cfg, nil
}

func (g *globals) records() source.Source {
	return &source.JSONFiles{
		AccountsPath:     g.Accounts,
		LimitsPath:       g.Limits,
		TransactionsPath: g.Transactions,
		PaychecksPath:    g.Paychecks,
	}
}

func (g *globals) readTaxonomy(path, flag string, read func(string) (taxonomy.Taxonomy, error)) (taxonomy.Taxonomy, error) {
	if path == "" {
		return taxonomy.Taxonomy{}, fmt.Errorf("--%s is required", flag)
	}
	return read(path)
}

// emit writes entries to every --out store. Without --out it does nothing.
func (g *globals) emit(ctx context.Context, cfg *config.Config, entries []*domain.Entry) error {
	if len(g.Out) == 0 {
		return nil
	}
	stores := make([]store.Store, 0, len(g.Out))
	for _, out := range g.Out {
		s, err := store.Open(out, cfg)
		if err != nil {
			return err
		}
		stores = append(stores, s)
	}
	return store.WriteAll(ctx, entries, stores...)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}
