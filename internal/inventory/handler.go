package inventory

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/form"
	"github.com/odyssey-erp/inventory-web/internal/shared"
	"github.com/odyssey-erp/inventory-web/internal/view"
)

// Handler wires HTTP endpoints for the inventory page.
type Handler struct {
	logger    *slog.Logger
	client    *backend.Client
	templates *view.Engine
	csrf      *shared.CSRFManager
	sessions  *shared.SessionManager
}

// NewHandler constructs the inventory handler.
func NewHandler(logger *slog.Logger, client *backend.Client, templates *view.Engine, csrf *shared.CSRFManager, sessions *shared.SessionManager) *Handler {
	return &Handler{logger: logger, client: client, templates: templates, csrf: csrf, sessions: sessions}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/inventory", h.showList)
	r.Post("/inventory", h.handleCreate)
	r.Get("/inventory/{id}/edit", h.showEdit)
	r.Post("/inventory/{id}", h.handleUpdate)
	r.Get("/inventory/{id}/delete", h.showDelete)
	r.Post("/inventory/{id}/delete", h.handleDelete)
	r.Get("/inventory/{id}/transaction", h.showTransaction)
	r.Post("/inventory/{id}/transactions", h.handleTransaction)
}

type pageData struct {
	Filters      Filters
	Categories   []string
	StockOptions []option
	Table        Table
	Loaded       bool
	Deferred     bool
	Columns      int
	Dialog       dialog
}

type dialog struct {
	Name       string
	Error      string
	ItemID     string
	Item       ItemForm
	Move       TransactionForm
	DeleteName string
	Return     string
}

type deleteTarget struct {
	ID   string
	Name string
}

func (d dialog) Open() bool {
	return d.Name != ""
}

func (h *Handler) showList(w http.ResponseWriter, r *http.Request) {
	filters := ParseFilters(r.URL.Query())
	data, alerts := h.load(r.Context(), filters)
	if r.URL.Query().Get("modal") == "add" {
		data.Dialog = dialog{Name: "add", Return: filters.Encode()}
	}
	h.render(w, r, http.StatusOK, data, alerts...)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	filters := parseReturn(r.PostFormValue("return"))
	modal := form.NewModal[ItemForm](true)
	_ = modal.OpenBlank()
	modal.Fields = parseItemForm(r)

	out := form.Submit(r.Context(), modal, ItemForm.Validate, func(ctx context.Context, f ItemForm) backend.Result[backend.InventoryItem] {
		return h.client.CreateItem(ctx, f.Input())
	})
	if out.Kind == form.Succeeded {
		h.logger.Info("inventory item created", slog.String("id", out.Value.ID.String()), slog.String("sku", out.Value.SKU))
		h.redirect(w, r, filters.ListURL(), out.Alert(addMessages))
		return
	}
	h.renderFailure(w, r, filters, out.Kind, dialog{Name: "add", Error: modal.Error, Item: modal.Fields}, out.Alert(addMessages))
}

func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	filters := parseReturn(r.URL.Query().Get("return"))
	item := h.client.Item(r.Context(), backend.ID(id))
	data, alerts := h.load(r.Context(), filters)
	if alert, failed := form.LoadAlert(item, "Error loading item: ", "Error loading item details"); failed {
		alerts = append(alerts, alert)
	} else {
		modal := form.NewModal[ItemForm](false)
		_ = modal.OpenWith(itemFormFrom(item.Value))
		data.Dialog = dialog{Name: "edit", ItemID: id, Item: modal.Fields}
	}
	h.render(w, r, http.StatusOK, data, alerts...)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	filters := parseReturn(r.PostFormValue("return"))
	modal := form.NewModal[ItemForm](false)
	_ = modal.OpenWith(parseItemForm(r))

	out := form.Submit(r.Context(), modal, ItemForm.Validate, func(ctx context.Context, f ItemForm) backend.Result[backend.InventoryItem] {
		return h.client.UpdateItem(ctx, backend.ID(id), f.Input())
	})
	if out.Kind == form.Succeeded {
		h.logger.Info("inventory item updated", slog.String("id", id))
		h.redirect(w, r, filters.ListURL(), out.Alert(editMessages))
		return
	}
	h.renderFailure(w, r, filters, out.Kind, dialog{Name: "edit", ItemID: id, Error: modal.Error, Item: modal.Fields}, out.Alert(editMessages))
}

func (h *Handler) showDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()
	filters := parseReturn(q.Get("return"))
	data, alerts := h.load(r.Context(), filters)
	data.Dialog = dialog{Name: "delete", ItemID: id, DeleteName: q.Get("name")}
	h.render(w, r, http.StatusOK, data, alerts...)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	filters := parseReturn(r.PostFormValue("return"))
	modal := form.NewModal[deleteTarget](false)
	_ = modal.OpenWith(deleteTarget{ID: id, Name: r.PostFormValue("name")})

	out := form.Submit(r.Context(), modal, nil, func(ctx context.Context, t deleteTarget) backend.Result[string] {
		return h.client.DeleteItem(ctx, backend.ID(t.ID))
	})
	if out.Kind == form.Succeeded {
		h.logger.Info("inventory item deleted", slog.String("id", id))
		h.redirect(w, r, filters.ListURL(), out.Alert(deleteMessages))
		return
	}
	h.renderFailure(w, r, filters, out.Kind, dialog{Name: "delete", ItemID: id, Error: modal.Error, DeleteName: modal.Fields.Name}, out.Alert(deleteMessages))
}

func (h *Handler) showTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()
	filters := parseReturn(q.Get("return"))
	data, alerts := h.load(r.Context(), filters)
	data.Dialog = dialog{Name: "transaction", ItemID: id, Move: TransactionForm{ItemID: id, ItemName: q.Get("name"), Type: string(backend.StockIn)}}
	h.render(w, r, http.StatusOK, data, alerts...)
}

func (h *Handler) handleTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	filters := parseReturn(r.PostFormValue("return"))
	modal := form.NewModal[TransactionForm](true)
	_ = modal.OpenWith(parseTransactionForm(r, id))

	out := form.Submit(r.Context(), modal, TransactionForm.Validate, func(ctx context.Context, f TransactionForm) backend.Result[backend.Transaction] {
		return h.client.RecordTransaction(ctx, f.Input())
	})
	if out.Kind == form.Succeeded {
		h.logger.Info("stock movement recorded",
			slog.String("item_id", id),
			slog.String("type", string(out.Value.Type)),
			slog.Int("new_quantity", out.Value.NewQuantity))
		h.redirect(w, r, filters.ListURL(), out.Alert(transactionMessages))
		return
	}
	h.renderFailure(w, r, filters, out.Kind, dialog{Name: "transaction", ItemID: id, Error: modal.Error, Move: modal.Fields}, out.Alert(transactionMessages))
}

// load fetches categories and the filtered item list concurrently.
func (h *Handler) load(ctx context.Context, filters Filters) (pageData, []shared.Alert) {
	var (
		cats  backend.Result[[]string]
		items backend.Result[[]backend.InventoryItem]
		g     errgroup.Group
	)
	g.Go(func() error {
		cats = h.client.Categories(ctx)
		return nil
	})
	g.Go(func() error {
		items = h.client.Items(ctx, filters.Query())
		return nil
	})
	_ = g.Wait()

	data := pageData{Filters: filters, StockOptions: stockOptions, Columns: TableColumns}
	var alerts []shared.Alert
	if alert, failed := form.LoadAlert(cats, "", "Error loading categories"); failed {
		alerts = append(alerts, alert)
	} else {
		data.Categories = cats.Value
	}
	if alert, failed := form.LoadAlert(items, "", "Error loading inventory items"); failed {
		alerts = append(alerts, alert)
	} else {
		data.Table = BuildTable(items.Value, h.templates.Formatter(), filters)
		data.Loaded = true
	}
	return data, alerts
}

// renderFailure re-renders the page with the dialog still open. It makes no
// backend call: categories come from the ones the dialog echoed back.
func (h *Handler) renderFailure(w http.ResponseWriter, r *http.Request, filters Filters, kind form.OutcomeKind, d dialog, alert shared.Alert) {
	d.Return = filters.Encode()
	data := pageData{
		Filters:      filters,
		Categories:   knownCategories(r),
		StockOptions: stockOptions,
		Deferred:     true,
		Columns:      TableColumns,
		Dialog:       d,
	}
	status := http.StatusBadGateway
	switch kind {
	case form.Invalid:
		status = http.StatusUnprocessableEntity
	case form.Rejected:
		status = http.StatusBadRequest
	}
	h.render(w, r, status, data, alert)
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target string, alert shared.Alert) {
	if sess := shared.SessionFrom(r.Context()); sess != nil {
		sess.AddAlert(alert)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData, alerts ...shared.Alert) {
	sess := shared.SessionFrom(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	if data.Dialog.Open() && data.Dialog.Return == "" {
		data.Dialog.Return = data.Filters.Encode()
	}
	viewData := view.TemplateData{
		Title:       "Inventory",
		CSRFToken:   csrfToken,
		Alerts:      shared.CollectAlerts(sess, alerts...),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, "pages/inventory.html", viewData); err != nil {
		h.logger.Error("render inventory", slog.Any("error", err))
	}
}
