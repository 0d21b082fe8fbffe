package main

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/interpose/middleware"
	"github.com/justinas/alice"
)

func router(config *Global) (http.Handler, error) {
	router := mux.NewRouter()
	router.Use(config.metrics.instrument)

	POST := router.Methods("POST").Subrouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	h := &handler{Global: config, router: router}

	GET.HandleFunc("/", h.Index).Name("index")
	GET.HandleFunc("/api/variants", h.APIVariants).Name("api-variants")
	GET.HandleFunc("/api/variants/{row}", h.APIVariant).Name("api-variant")
	GET.HandleFunc("/map/{row}.png", h.WorldMapPNG).Name("map")
	GET.HandleFunc("/bars/{row}.png", h.FrequencyBarsPNG).Name("bars")
	GET.HandleFunc("/coverage.png", h.CoveragePNG).Name("coverage")
	GET.HandleFunc("/export.xlsx", h.ExportXLSX).Name("export")
	GET.HandleFunc("/version", h.Version).Name("version")
	GET.HandleFunc("/healthz", h.Healthz).Name("healthz")
	GET.Handle("/metrics", config.metrics.Handler()).Name("metrics")

	//
	// POST
	//
	POST.Handle("/", http.NotFoundHandler())
	POST.HandleFunc("/reload", h.Reload).Name("reload")

	// Static assets
	assetFilesystem, err := fs.Sub(embeddedTemplates, "templates/static")
	if err != nil {
		return nil, err
	}

	// Static assets
	GET.PathPrefix(h.Assets()).Handler(
		middleware.MaxAgeHandler(60*60*24*364,
			http.StripPrefix(h.Assets(), http.FileServer(http.FS(assetFilesystem))))).Name("assets")

	standard := alice.New(
		// Log all requests to STDOUT
		middleware.GorillaLog(),
	)

	return standard.Then(router), nil
}
