package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/chart"
	"github.com/odyssey-erp/inventory-web/internal/form"
	"github.com/odyssey-erp/inventory-web/internal/platform/httpx"
	"github.com/odyssey-erp/inventory-web/internal/shared"
	"github.com/odyssey-erp/inventory-web/internal/view"
)

// PDFRenderer converts HTML into PDF.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html []byte) ([]byte, error)
}

// Handler serves the reports page and its exports.
type Handler struct {
	logger    *slog.Logger
	client    *backend.Client
	templates *view.Engine
	csrf      *shared.CSRFManager
	pdf       PDFRenderer
}

// NewHandler constructs the reports handler.
func NewHandler(logger *slog.Logger, client *backend.Client, templates *view.Engine, csrf *shared.CSRFManager, pdf PDFRenderer) *Handler {
	return &Handler{logger: logger, client: client, templates: templates, csrf: csrf, pdf: pdf}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports", h.showIndex)
	r.Get("/reports/{type}", h.showReport)
}

type card struct {
	Type   string
	Title  string
	Active bool
}

type pageData struct {
	Cards    []card
	Selected string
	Title    string
	Chart    *chart.Canvas
	Rows     []row
	Exports  bool
}

type row struct {
	Label string
	Value string
}

func (h *Handler) showIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageData{Cards: cards("")})
}

func (h *Handler) showReport(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "type")
	ext := path.Ext(raw)
	reportType := strings.TrimSuffix(raw, ext)

	switch ext {
	case "":
		h.showChart(w, r, reportType)
	case ".csv", ".pdf":
		if !chart.KnownReport(reportType) {
			httpx.Problem(w, http.StatusNotFound, "Unknown report type: "+reportType)
			return
		}
		if ext == ".csv" {
			h.exportCSV(w, r, reportType)
		} else {
			h.exportPDF(w, r, reportType)
		}
	default:
		http.NotFound(w, r)
	}
}

// showChart renders any report type the backend accepts. Unknown types use an
// untitled chart, and a backend rejection becomes a banner.
func (h *Handler) showChart(w http.ResponseWriter, r *http.Request, reportType string) {
	res := h.client.Report(r.Context(), reportType)
	data := pageData{Cards: cards(reportType), Selected: reportType}
	if alert, failed := form.LoadAlert(res, "Error loading report: ", "Error loading report data"); failed {
		h.render(w, r, http.StatusOK, data, alert)
		return
	}
	page, err := h.chartPage(reportType, res.Value)
	if err != nil {
		h.logger.Error("render report chart", slog.String("type", reportType), slog.Any("error", err))
		h.render(w, r, http.StatusOK, data, shared.Alert{Kind: shared.AlertDanger, Message: "Error loading report data"})
		return
	}
	page.Cards = data.Cards
	h.render(w, r, http.StatusOK, page)
}

// chartPage swaps the report canvas to the configuration of reportType.
func (h *Handler) chartPage(reportType string, series backend.ReportSeries) (pageData, error) {
	format := h.templates.Formatter()
	cfg := chart.ForReport(reportType)
	canvas := chart.NewCanvas(format)
	if err := canvas.Swap(cfg, chart.Series{Labels: series.Labels, Data: series.Data}); err != nil {
		return pageData{}, err
	}
	rows := make([]row, 0, series.Len())
	for i, label := range series.Labels {
		value := format.Number(series.Data[i])
		if cfg.Format == chart.FormatCurrency {
			value = format.CurrencyFloat(series.Data[i])
		}
		rows = append(rows, row{Label: label, Value: value})
	}
	return pageData{
		Selected: reportType,
		Title:    cfg.Title,
		Chart:    canvas,
		Rows:     rows,
		Exports:  true,
	}, nil
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request, reportType string) {
	res := h.client.Report(r.Context(), reportType)
	if !h.exportable(w, res) {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportType+".csv"))
	if err := WriteCSV(w, res.Value); err != nil {
		h.logger.Error("write report csv", slog.String("type", reportType), slog.Any("error", err))
	}
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request, reportType string) {
	if h.pdf == nil {
		httpx.RespondError(w, httpx.ErrUnavailable, "PDF export is unavailable")
		return
	}
	res := h.client.Report(r.Context(), reportType)
	if !h.exportable(w, res) {
		return
	}
	page, err := h.chartPage(reportType, res.Value)
	if err != nil {
		h.logger.Error("render report chart", slog.String("type", reportType), slog.Any("error", err))
		httpx.RespondError(w, err, "Error rendering report chart")
		return
	}
	var buf bytes.Buffer
	doc := pdfDocument{
		Title:       page.Title,
		GeneratedAt: h.templates.Formatter().Timestamp(time.Now()),
		Chart:       page.Chart.HTML(),
		Rows:        page.Rows,
	}
	if err := h.templates.Execute(&buf, "pages/report_pdf.html", doc); err != nil {
		h.logger.Error("render report pdf html", slog.Any("error", err))
		httpx.RespondError(w, err, "Error rendering report document")
		return
	}
	pdf, err := h.pdf.RenderHTML(r.Context(), buf.Bytes())
	if err != nil {
		h.logger.Error("gotenberg render failed", slog.String("type", reportType), slog.Any("error", err))
		kind := httpx.ErrUpstream
		if errors.Is(err, ErrRendererDisabled) {
			kind = httpx.ErrUnavailable
		}
		httpx.RespondError(w, kind, "PDF export is unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportType+".pdf"))
	_, _ = w.Write(pdf)
}

func (h *Handler) exportable(w http.ResponseWriter, res backend.Result[backend.ReportSeries]) bool {
	switch {
	case res.OK():
		return true
	case res.Rejected():
		httpx.Problem(w, res.Status, "Error loading report: "+res.Message)
	default:
		httpx.RespondError(w, httpx.ErrUpstream, "Error loading report data")
	}
	return false
}

type pdfDocument struct {
	Title       string
	GeneratedAt string
	Chart       template.HTML
	Rows        []row
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData, alerts ...shared.Alert) {
	sess := shared.SessionFrom(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	viewData := view.TemplateData{
		Title:       "Reports",
		CSRFToken:   csrfToken,
		Alerts:      shared.CollectAlerts(sess, alerts...),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, "pages/reports.html", viewData); err != nil {
		h.logger.Error("render reports", slog.Any("error", err))
	}
}

func cards(selected string) []card {
	out := make([]card, 0, len(chart.ReportTypes))
	for _, t := range chart.ReportTypes {
		out = append(out, card{Type: t, Title: chart.ForReport(t).Title, Active: t == selected})
	}
	return out
}
