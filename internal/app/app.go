// Package app builds the long-lived pieces shared by the API server and the
// CLI from a Config: the dataset provider, the selection store and the
// optional Firebase clients.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	fb "firebase.google.com/go/v4"

	"github.com/i-am-zach/uiuc-grade-stats/internal/config"
	"github.com/i-am-zach/uiuc-grade-stats/internal/database"
	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/firebase"
	"github.com/i-am-zach/uiuc-grade-stats/internal/metrics"
	"github.com/i-am-zach/uiuc-grade-stats/internal/selection"
)

type App struct {
	Config  *config.Config
	Metrics *metrics.Metrics
	Data    *dataset.Provider
	Store   *selection.Store

	// Storage is set only when a component is configured to use Firebase.
	Storage *firebase.CloudStorage

	closers []func() error
}

// New wires every component. The dataset is not fetched yet; call
// a.Data.Load when it is needed.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config:  cfg,
		Metrics: metrics.New(),
	}

	var fbApp *fb.App
	if cfg.NeedsFirebase() {
		var err error
		fbApp, err = firebase.NewApp(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.BucketName(firebase.BucketForEnvironment))
		if err != nil {
			return nil, err
		}
	}

	src, err := a.datasetSource(ctx, fbApp)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Data = dataset.NewProvider(src, a.Metrics)

	kv, err := a.selectionKV(ctx, fbApp)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Store, err = selection.Open(ctx, kv, cfg.Store.Key)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Metrics.Selections.Set(float64(len(a.Store.List())))

	return a, nil
}

func (a *App) datasetSource(ctx context.Context, fbApp *fb.App) (dataset.Source, error) {
	cfg := a.Config
	switch cfg.Dataset.Source {
	case config.SourceFile:
		return &dataset.FileSource{Path: cfg.Dataset.Path}, nil
	case config.SourceStorage:
		storage, err := a.cloudStorage(ctx, fbApp)
		if err != nil {
			return nil, err
		}
		return storage.DatasetSource(cfg.Dataset.Object), nil
	default:
		return dataset.NewHTTPSource(cfg.Dataset.URL), nil
	}
}

func (a *App) selectionKV(ctx context.Context, fbApp *fb.App) (selection.KV, error) {
	cfg := a.Config
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := database.Open(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open selection database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return db, nil
	case config.BackendFirestore:
		db, err := firebase.NewFirestore(ctx, fbApp)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return firebase.NewSelectionKV(db), nil
	default:
		return selection.NewFileKV(filepath.Clean(cfg.Store.Path)), nil
	}
}

// CloudStorage returns the Firebase storage client, creating it on first use.
func (a *App) CloudStorage(ctx context.Context) (*firebase.CloudStorage, error) {
	if a.Storage != nil {
		return a.Storage, nil
	}
	fbApp, err := firebase.NewApp(ctx, a.Config.Firebase.CredentialsFile, a.Config.Firebase.BucketName(firebase.BucketForEnvironment))
	if err != nil {
		return nil, err
	}
	return a.cloudStorage(ctx, fbApp)
}

func (a *App) cloudStorage(ctx context.Context, fbApp *fb.App) (*firebase.CloudStorage, error) {
	if a.Storage != nil {
		return a.Storage, nil
	}
	storage, err := firebase.NewCloudStorage(ctx, fbApp, a.Config.Firebase.BucketName(firebase.BucketForEnvironment))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}
	a.Storage = storage
	return storage, nil
}

// LoadDatasetAsync starts the one-time dataset fetch in the background.
func (a *App) LoadDatasetAsync(ctx context.Context) {
	go func() {
		if _, err := a.Data.Load(ctx); err != nil {
			log.Printf("Dataset unavailable: %v", err)
		}
	}()
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
