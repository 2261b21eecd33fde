package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/lectern/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lectern/internal/adapters/driven/reader/extractive"
	"github.com/custodia-labs/lectern/internal/adapters/driven/reader/huggingface"
	"github.com/custodia-labs/lectern/internal/adapters/driven/staging/filesystem"
	"github.com/custodia-labs/lectern/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lectern/internal/adapters/driven/storage/mongo"
	"github.com/custodia-labs/lectern/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lectern/internal/adapters/driving/cli"
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/core/services"
	"github.com/custodia-labs/lectern/internal/extractors"
	"github.com/custodia-labs/lectern/internal/logger"
	"github.com/custodia-labs/lectern/internal/postprocessors"
)

// bootstrap builds the services from the config directory and environment.
func bootstrap(ctx context.Context, opts cli.BootstrapOptions) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	if opts.SettingsOnly {
		return &cli.Services{Settings: settingsService}, nil, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}

	svcs, closer, err := wire(ctx, *settings)
	if err != nil {
		return nil, nil, err
	}
	svcs.Settings = settingsService
	return svcs, closer, nil
}

// wire assembles the core services for settings.
func wire(ctx context.Context, settings domain.Settings) (*cli.Services, func(), error) {
	store, closeStore, err := openStore(ctx, settings.Store)
	if err != nil {
		return nil, nil, err
	}

	registry, err := extractors.NewDefaultRegistry(settings.Extract)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("extractors: %w", err)
	}

	pipeline, err := postprocessors.NewDefaultPipeline(settings.Preprocess)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("preprocess pipeline: %w", err)
	}

	ingest := services.NewIngestService(
		registry,
		services.NewPreprocessor(pipeline),
		store,
		filesystem.New(settings.UploadsDir),
	)

	return &cli.Services{
		QA:      services.NewQAService(services.NewRetriever(store), newReader(settings.Reader), settings.QA),
		Ingest:  ingest,
		Courses: services.NewCourseService(store),
		Watcher: services.NewWatchService(ingest, registry, services.DefaultDebounce),
	}, closeStore, nil
}

func openStore(ctx context.Context, s domain.StoreSettings) (driven.PassageStore, func(), error) {
	logger.Debug("opening %s store", s.Backend)

	switch s.Backend {
	case domain.StoreBackendMemory:
		return memory.NewPassageStore(), func() {}, nil

	case domain.StoreBackendSQLite:
		store, err := sqlite.NewStore(s.SQLiteDir)
		if err != nil {
			return nil, nil, err
		}
		return store, closer("sqlite", store.Close), nil

	case domain.StoreBackendMongo:
		store, err := mongo.NewStore(ctx, s.MongoURI, s.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return store, closer("mongo", store.Close), nil
	}

	return nil, nil, fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidInput, s.Backend)
}

func closer(name string, fn func() error) func() {
	return func() {
		if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("closing %s store: %v", name, err)
		}
	}
}

func newReader(s domain.ReaderSettings) driven.Reader {
	if s.Backend == domain.ReaderBackendHuggingFace {
		return huggingface.New(huggingface.Config{
			Endpoint:      s.Endpoint,
			APIToken:      s.APIToken,
			ContextWindow: s.ContextWindow,
		})
	}
	return extractive.New(extractive.WithContextWindow(s.ContextWindow))
}
