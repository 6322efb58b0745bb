package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/novapath/trident/internal/bank"
	"github.com/novapath/trident/internal/guidance"
	"github.com/novapath/trident/internal/llm"
	"github.com/novapath/trident/internal/logging"
	"github.com/novapath/trident/internal/metrics"
	"github.com/novapath/trident/internal/ordering"
	"github.com/novapath/trident/internal/session"
	"github.com/novapath/trident/internal/store"
)

// deps is everything a command needs to host sessions.
type deps struct {
	dbPath   string
	store    *store.Store
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	sessions *session.Service
	guidance *guidance.Service
}

type depsOptions struct {
	// logToFile sends logs next to the database instead of stderr.
	logToFile bool
	// registry receives the metrics; a private registry is used when nil.
	registry *prometheus.Registry
}

// openDeps opens the store and question bank and builds the services.
// Bank problems are configuration errors and abort the command.
func openDeps(ctx context.Context, opts depsOptions) (*deps, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	logCfg := cfg.Log
	if opts.logToFile && logCfg.File == "" {
		logCfg.File = logging.FileBeside(dbPath)
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	b, err := bank.Load(resolveBankPath(), cfg.Catalog())
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	reg := opts.registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m, err := metrics.New(reg)
	if err != nil {
		st.Close()
		return nil, err
	}

	d := &deps{
		dbPath:   dbPath,
		store:    st,
		logger:   logger,
		registry: reg,
		metrics:  m,
	}

	cache := ordering.NewCache(b, cfg.Cache.Size)
	d.sessions = session.NewService(cache, st.ProgressRepo(), st.EventRepo(), m, logger.Named("session"))

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger.Named("llm"))
	switch {
	case errors.Is(err, llm.ErrDisabled):
		logger.Info("llm provider not configured, guidance uses built-in content")
		provider = nil
	case err != nil:
		logger.Warn("llm provider unavailable, guidance uses built-in content", zap.Error(err))
		provider = nil
	}
	d.guidance = guidance.NewService(provider, guidance.DefaultConfig(), logger.Named("guidance"), m)

	logger.Debug("dependencies ready",
		zap.String("db", dbPath),
		zap.String("bank", resolveBankPath()),
		zap.String("bank_version", b.Version()),
		zap.Int("questions", b.Catalog().TotalQuestions()),
	)
	return d, nil
}

func (d *deps) Close() error {
	_ = d.logger.Sync()
	return d.store.Close()
}
