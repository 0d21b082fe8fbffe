package main

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"

	"github.com/carbocation/variantatlas/compileinfo"
	"github.com/carbocation/variantatlas/loader"
	"github.com/carbocation/variantatlas/variant"
)

type Global struct {
	log           *zerolog.Logger
	storageClient *storage.Client
	cache         *loader.Cache
	metrics       *metrics

	Site   string
	Config Config
	Build  compileinfo.CompileInfo
}

// NewGlobal wires the loader cache to cfg. storageClient may be nil when no
// data root is a gs:// URL.
func NewGlobal(cfg Config, log *zerolog.Logger, storageClient *storage.Client) *Global {
	g := &Global{
		log:           log,
		storageClient: storageClient,
		metrics:       newMetrics(),
		Site:          cfg.Site,
		Config:        cfg,
		Build:         compileinfo.Get(),
	}

	g.cache = loader.NewCache(loader.Options{
		Roots:   cfg.DataRoots,
		Storage: storageClient,
		Logger:  log,
	})

	return g
}

// Table returns the memoized variant table, loading it if needed. Only the
// call that performed a load records it.
func (g *Global) Table(ctx context.Context) (*variant.Table, error) {
	table, loaded, err := g.cache.Fetch(ctx)
	if loaded {
		g.metrics.observeLoad(table.Len(), err)
		if err != nil {
			g.log.Error().Err(err).Msg("Could not load variant data")
		}
	}

	return table, err
}
