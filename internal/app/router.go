package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/inventory-web/internal/dashboard"
	"github.com/odyssey-erp/inventory-web/internal/inventory"
	"github.com/odyssey-erp/inventory-web/internal/observability"
	"github.com/odyssey-erp/inventory-web/internal/platform/httpx"
	"github.com/odyssey-erp/inventory-web/internal/reports"
	"github.com/odyssey-erp/inventory-web/internal/shared"
	"github.com/odyssey-erp/inventory-web/internal/transactions"
	"github.com/odyssey-erp/inventory-web/internal/view"
	"github.com/odyssey-erp/inventory-web/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	Templates           *view.Engine
	SessionManager      *shared.SessionManager
	CSRFManager         *shared.CSRFManager
	DashboardHandler    *dashboard.Handler
	InventoryHandler    *inventory.Handler
	TransactionsHandler *transactions.Handler
	ReportsHandler      *reports.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(middlewareConfigFrom(params)) {
		r.Use(mw)
	}

	if !InTestMode() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if params.DashboardHandler != nil {
		params.DashboardHandler.MountRoutes(r)
	}
	if params.InventoryHandler != nil {
		params.InventoryHandler.MountRoutes(r)
	}
	if params.TransactionsHandler != nil {
		params.TransactionsHandler.MountRoutes(r)
	}
	if params.ReportsHandler != nil {
		params.ReportsHandler.MountRoutes(r)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, params, http.StatusNotFound, "The page you requested does not exist.")
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

func renderError(w http.ResponseWriter, r *http.Request, params RouterParams, status int, message string) {
	sess := shared.SessionFrom(r.Context())
	csrfToken, _ := params.CSRFManager.EnsureToken(r.Context(), sess)
	data := view.TemplateData{
		Title:       http.StatusText(status),
		CSRFToken:   csrfToken,
		Alerts:      shared.CollectAlerts(sess),
		CurrentPath: r.URL.Path,
		Data:        map[string]any{"Status": status, "Message": message},
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := params.Templates.Render(w, "pages/error.html", data); err != nil {
		params.Logger.Error("render error page", slog.Any("error", err))
	}
}

func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
