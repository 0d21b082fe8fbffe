package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/carbocation/variantatlas/loader"
	"github.com/carbocation/variantatlas/render"
	"github.com/carbocation/variantatlas/variant"
)

func JSONError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	w.Header().Set("Content-Type", "application/json")
	unifiedError(h, w, r, err, code...)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(struct {
		Success bool
		Message string
	}{
		false,
		err.Error(),
	})
}

func HTTPError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	usedCode := unifiedError(h, w, r, err, code...)

	output := struct {
		StatusCode     int
		StatusCodeText string
		Error          string
	}{
		StatusCode:     usedCode,
		StatusCodeText: http.StatusText(usedCode),
		Error:          err.Error(),
	}

	/*
		Built from the Render() function, but not calling Render()
		to avoid possibility of infinite loop
	*/
	page := Page{
		Title:  "Error",
		Site:   h.Global.Site,
		Assets: h.Assets(),
		Data:   output,
	}

	if err := h.Template("error.html").Execute(w, page); err != nil {
		fmt.Fprintf(w, "Error (%d) (%v) with %+v", output.StatusCode, err, page)
	}
}

func unifiedError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) int {
	usedCode := http.StatusInternalServerError
	if len(code) > 0 {
		usedCode = code[0]
	}
	w.WriteHeader(usedCode)

	ev := h.log.Warn()
	if usedCode >= http.StatusInternalServerError {
		ev = h.log.Error()
	}
	ev.Str("host", r.Host).Str("path", r.URL.Path).Int("status", usedCode).Err(err).Msg("Request failed")

	return usedCode
}

// StatusFor maps the errors the dashboard can run into onto HTTP status
// codes.
func StatusFor(err error) int {
	var parseErr *loader.ParseError

	switch {
	case errors.Is(err, loader.ErrMissingDataFile), errors.As(err, &parseErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, variant.ErrNoSuchRow),
		errors.Is(err, errMissingRsid),
		errors.Is(err, errNoFrequencyData),
		errors.Is(err, render.ErrNoPoints),
		errors.Is(err, errBadRow):
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

var (
	errMissingRsid     = errors.New("this variant has no rsid, so no population frequencies can be shown")
	errNoFrequencyData = errors.New("gnomAD has no population frequency data for this variant")
	errBadRow          = errors.New("row must be a non-negative integer")
)
