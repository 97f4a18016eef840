package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/chart"
	"github.com/odyssey-erp/inventory-web/internal/form"
	"github.com/odyssey-erp/inventory-web/internal/shared"
	"github.com/odyssey-erp/inventory-web/internal/view"
)

// RecentLimit caps the recent movements table.
const RecentLimit = 5

// Handler serves the dashboard.
type Handler struct {
	logger    *slog.Logger
	client    *backend.Client
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs the dashboard handler.
func NewHandler(logger *slog.Logger, client *backend.Client, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, client: client, templates: templates, csrf: csrf}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	r.Get("/dashboard", h.showDashboard)
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	page, alerts := h.build(r)
	sess := shared.SessionFrom(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	viewData := view.TemplateData{
		Title:       "Dashboard",
		CSRFToken:   csrfToken,
		Alerts:      shared.CollectAlerts(sess, alerts...),
		CurrentPath: r.URL.Path,
		Data:        page,
	}
	if err := h.templates.Render(w, "pages/dashboard.html", viewData); err != nil {
		h.logger.Error("render dashboard", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// build runs the two-step load: the summary first, then the value series when
// the summary lists any category.
func (h *Handler) build(r *http.Request) (Page, []shared.Alert) {
	format := h.templates.Formatter()
	page := newPage(format)
	if err := page.mount(); err != nil {
		h.logger.Error("mount dashboard charts", slog.Any("error", err))
	}

	summary := h.client.Dashboard(r.Context())
	if alert, failed := form.LoadAlert(summary, "", "Error loading dashboard data"); failed {
		return page, []shared.Alert{alert}
	}
	page.applySummary(summary.Value, format)

	labels, values := summary.Value.Categories()
	if len(labels) == 0 {
		return page, nil
	}
	if err := page.CategoryChart.Update(chart.Series{Labels: labels, Data: values}); err != nil {
		h.logger.Error("update category chart", slog.Any("error", err))
	}

	value := h.client.InventoryValue(r.Context())
	if !value.OK() {
		h.logger.Warn("inventory value unavailable", slog.String("outcome", string(value.Outcome)), slog.String("message", value.Message))
		return page, nil
	}
	if err := page.ValueChart.Update(chart.Series{Labels: value.Value.Labels, Data: value.Value.Data}); err != nil {
		h.logger.Error("update value chart", slog.Any("error", err))
	}
	return page, nil
}
