package main

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/carbocation/variantatlas/render"
	"github.com/carbocation/variantatlas/variant"
)

type legendEntry struct {
	Label string
	Color string
}

type indexPage struct {
	LoadError string

	Source       string
	Query        variant.Query
	FilterActive bool
	Total        int
	Count        int
	Choices      []variant.Choice
	Truncated    bool

	Selected int
	Detail   *variant.Detail

	MapURL      string
	BarsURL     string
	CoverageURL string
	ExportURL   string
	Legend      []legendEntry
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)
	page := indexPage{
		Query:        q,
		FilterActive: q.Active(),
		Legend:       coverageLegend(),
	}

	table, err := h.Global.Table(r.Context())
	if err != nil {
		page.LoadError = err.Error()
		opts := NewRenderOpts()
		opts.StatusCode = StatusFor(err)
		Render(h, w, r, h.Global.Site, "index.html", page, opts)
		return
	}

	filtered := q.Apply(table)
	page.Source = table.Source
	page.Total = table.Len()
	page.Count = filtered.Len()
	page.Choices = variant.BuildLabels(filtered, h.Config.LabelLimit, h.Config.EllipsisMode())
	page.Truncated = filtered.Len() > len(page.Choices)
	page.ExportURL = h.routeURL("export", encodeQuery(q))

	if len(page.Choices) == 0 {
		Render(h, w, r, h.Global.Site, "index.html", page, nil)
		return
	}

	row, given, err := parseRow(r.URL.Query().Get("row"))
	if err != nil {
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}
	if !given {
		row = page.Choices[0].Index
	}
	if row >= len(page.Choices) {
		// Only rows offered in the select box can be shown.
		err := fmt.Errorf("row %d is not among the first %d matches: %w", row, len(page.Choices), variant.ErrNoSuchRow)
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}

	record, err := variant.Select(filtered, row)
	if err != nil {
		HTTPError(h, w, r, fmt.Errorf("row %d: %w", row, err), StatusFor(err))
		return
	}

	detail := variant.Assess(row, record)
	page.Selected = row
	page.Detail = &detail

	switch detail.Status {
	case variant.StatusOK:
		page.MapURL = h.routeURL("map", encodeQuery(q), "row", strconv.Itoa(row))
		page.BarsURL = h.routeURL("bars", encodeQuery(q), "row", strconv.Itoa(row))
	case variant.StatusNoFrequencyData:
		page.CoverageURL = h.routeURL("coverage", "")
	}

	Render(h, w, r, h.Global.Site, "index.html", page, nil)
}

// routeURL builds the path of a named route, with rawQuery appended as is.
func (h *handler) routeURL(name, rawQuery string, pairs ...string) string {
	route := h.router.Get(name)
	if route == nil {
		return ""
	}

	u, err := route.URL(pairs...)
	if err != nil {
		h.log.Warn().Err(err).Str("route", name).Msg("Could not build URL")
		return ""
	}

	return u.Path + rawQuery
}

func coverageLegend() []legendEntry {
	var out []legendEntry
	for _, c := range variant.Fallback().Coverage {
		out = append(out, legendEntry{Label: c.Coverage, Color: render.Hex(render.CoverageColors[c.Coverage])})
	}

	return out
}

// detail resolves the {row} path variable against the table filtered by the
// request's disease and gene searches.
func (h *handler) detail(r *http.Request) (variant.Detail, error) {
	table, err := h.Global.Table(r.Context())
	if err != nil {
		return variant.Detail{}, err
	}

	row, given, err := parseRow(mux.Vars(r)["row"])
	if err != nil {
		return variant.Detail{}, err
	}
	if !given {
		return variant.Detail{}, errBadRow
	}

	record, err := variant.Select(queryFromRequest(r).Apply(table), row)
	if err != nil {
		return variant.Detail{}, fmt.Errorf("row %d: %w", row, err)
	}

	return variant.Assess(row, record), nil
}

// plottable returns the detail's points, or why there are none.
func plottable(d variant.Detail) ([]variant.PopulationPoint, error) {
	switch d.Status {
	case variant.StatusMissingRsid:
		return nil, errMissingRsid
	case variant.StatusNoFrequencyData:
		return nil, errNoFrequencyData
	}

	return d.Points, nil
}

func (h *handler) WorldMapPNG(w http.ResponseWriter, r *http.Request) {
	d, err := h.detail(r)
	if err != nil {
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}

	points, err := plottable(d)
	if err != nil {
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}

	opts := render.DefaultMapOptions()
	opts.Title = fmt.Sprintf("RSID: %s population distribution (source: gnomAD)", d.RSID)

	var buf bytes.Buffer
	if err := render.EncodeWorldMapPNG(&buf, points, opts); err != nil {
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}

	h.metrics.renders.WithLabelValues("map").Inc()
	writeBytes(w, "image/png", buf.Bytes())
}

func (h *handler) FrequencyBarsPNG(w http.ResponseWriter, r *http.Request) {
	d, err := h.detail(r)
	if err != nil {
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}

	points, err := plottable(d)
	if err != nil {
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := render.FrequencyBars(&buf, points); err != nil {
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}

	h.metrics.renders.WithLabelValues("bars").Inc()
	writeBytes(w, "image/png", buf.Bytes())
}

func (h *handler) CoveragePNG(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	opts := render.DefaultMapOptions()
	opts.Title = "Research coverage of public population databases (illustrative)"
	if err := render.EncodeCoverageMapPNG(&buf, variant.Fallback().Coverage, opts); err != nil {
		HTTPError(h, w, r, err)
		return
	}

	h.metrics.renders.WithLabelValues("coverage").Inc()
	writeBytes(w, "image/png", buf.Bytes())
}

func (h *handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	table, err := h.Global.Table(r.Context())
	if err != nil {
		HTTPError(h, w, r, err, StatusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := render.WriteXLSX(&buf, queryFromRequest(r).Apply(table), 0); err != nil {
		HTTPError(h, w, r, err)
		return
	}

	h.metrics.renders.WithLabelValues("xlsx").Inc()
	w.Header().Set("Content-Disposition", `attachment; filename="variants.xlsx"`)
	writeBytes(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

type variantsResponse struct {
	Source       string           `json:"source"`
	Total        int              `json:"total"`
	Count        int              `json:"count"`
	FilterActive bool             `json:"filter_active"`
	Truncated    bool             `json:"truncated"`
	Choices      []variant.Choice `json:"choices"`
}

func (h *handler) APIVariants(w http.ResponseWriter, r *http.Request) {
	table, err := h.Global.Table(r.Context())
	if err != nil {
		JSONError(h, w, r, err, StatusFor(err))
		return
	}

	q := queryFromRequest(r)
	filtered := q.Apply(table)
	choices := variant.BuildLabels(filtered, h.Config.LabelLimit, h.Config.EllipsisMode())

	RenderJSON(h, w, r, variantsResponse{
		Source:       table.Source,
		Total:        table.Len(),
		Count:        filtered.Len(),
		FilterActive: q.Active(),
		Truncated:    filtered.Len() > len(choices),
		Choices:      choices,
	})
}

func (h *handler) APIVariant(w http.ResponseWriter, r *http.Request) {
	d, err := h.detail(r)
	if err != nil {
		JSONError(h, w, r, err, StatusFor(err))
		return
	}

	RenderJSON(h, w, r, d)
}

func (h *handler) Version(w http.ResponseWriter, r *http.Request) {
	RenderJSON(h, w, r, h.Global.Build)
}

func (h *handler) Healthz(w http.ResponseWriter, r *http.Request) {
	loadedAt, loaded := h.cache.LoadedAt()

	out := struct {
		Status     string     `json:"status"`
		Loaded     bool       `json:"loaded"`
		LoadedAt   *time.Time `json:"loaded_at,omitempty"`
		Goroutines int        `json:"goroutines"`
	}{
		Status:     "ok",
		Loaded:     loaded,
		Goroutines: runtime.NumGoroutine(),
	}
	if loaded {
		out.LoadedAt = &loadedAt
	}

	RenderJSON(h, w, r, out)
}

// Reload drops the memoized table and loads it again.
func (h *handler) Reload(w http.ResponseWriter, r *http.Request) {
	h.cache.Reset()

	table, err := h.Global.Table(r.Context())
	if err != nil {
		JSONError(h, w, r, err, StatusFor(err))
		return
	}

	h.log.Info().Str("path", table.Source).Int("rows", table.Len()).Msg("Reloaded variant data")

	RenderJSON(h, w, r, struct {
		Success bool
		Source  string
		Rows    int
	}{
		true,
		table.Source,
		table.Len(),
	})
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
