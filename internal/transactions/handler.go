package transactions

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/form"
	"github.com/odyssey-erp/inventory-web/internal/shared"
	"github.com/odyssey-erp/inventory-web/internal/view"
)

// Handler serves the read-only movement history.
type Handler struct {
	logger    *slog.Logger
	client    *backend.Client
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs the transactions handler.
func NewHandler(logger *slog.Logger, client *backend.Client, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, client: client, templates: templates, csrf: csrf}
}

// MountRoutes registers transaction routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/transactions", h.showList)
}

type pageData struct {
	Query   Query
	Table   Table
	Loaded  bool
	Columns int
}

func (h *Handler) showList(w http.ResponseWriter, r *http.Request) {
	q := ParseQuery(r.URL.Query())
	data := pageData{Query: q, Columns: TableColumns}

	var alerts []shared.Alert
	res := h.client.Transactions(r.Context(), backend.ID(q.ItemID))
	if alert, failed := form.LoadAlert(res, "", "Error loading transactions"); failed {
		alerts = append(alerts, alert)
	} else {
		data.Table = BuildTable(res.Value, h.templates.Formatter(), q)
		data.Loaded = true
	}

	sess := shared.SessionFrom(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	viewData := view.TemplateData{
		Title:       "Transactions",
		CSRFToken:   csrfToken,
		Alerts:      shared.CollectAlerts(sess, alerts...),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, "pages/transactions.html", viewData); err != nil {
		h.logger.Error("render transactions", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
